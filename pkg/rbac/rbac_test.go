package rbac_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/genxsop/genxsop/pkg/rbac"
)

var allModules = []rbac.Module{
	rbac.ModuleDashboard, rbac.ModuleDemand, rbac.ModuleSupply, rbac.ModuleInventory,
	rbac.ModuleForecasting, rbac.ModuleScenarios, rbac.ModuleSOPCycle, rbac.ModuleKPI,
	rbac.ModuleProducts, rbac.ModuleSettings,
}

func TestCanAccessModule_EmptyRoleDeniedEverywhere(t *testing.T) {
	for _, m := range allModules {
		assert.False(t, rbac.CanAccessModule("", m), "empty role must be denied for %s", m)
	}
}

func TestCanAccessModule_OpenModules(t *testing.T) {
	// dashboard, kpi and settings are open to all eight roles
	for _, role := range rbac.AllRoles {
		assert.True(t, rbac.CanAccessModule(role, rbac.ModuleDashboard), "role %s", role)
		assert.True(t, rbac.CanAccessModule(role, rbac.ModuleKPI), "role %s", role)
		assert.True(t, rbac.CanAccessModule(role, rbac.ModuleSettings), "role %s", role)
	}
}

func TestCanAccessModule_AllowListTable(t *testing.T) {
	cases := []struct {
		role    rbac.Role
		module  rbac.Module
		allowed bool
	}{
		{rbac.RoleAdmin, rbac.ModuleProducts, true},
		{rbac.RoleViewer, rbac.ModuleProducts, false},
		{rbac.RoleExecutive, rbac.ModuleProducts, false},

		{rbac.RoleViewer, rbac.ModuleDemand, false},
		{rbac.RoleDemandPlanner, rbac.ModuleDemand, true},
		{rbac.RoleInventoryManager, rbac.ModuleDemand, false},

		{rbac.RoleSupplyPlanner, rbac.ModuleSupply, true},
		{rbac.RoleDemandPlanner, rbac.ModuleSupply, false},

		{rbac.RoleInventoryManager, rbac.ModuleInventory, true},
		{rbac.RoleFinanceAnalyst, rbac.ModuleInventory, false},

		{rbac.RoleFinanceAnalyst, rbac.ModuleForecasting, true},
		{rbac.RoleViewer, rbac.ModuleForecasting, false},

		{rbac.RoleSOPCoordinator, rbac.ModuleSOPCycle, true},
		{rbac.RoleDemandPlanner, rbac.ModuleSOPCycle, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, rbac.CanAccessModule(tc.role, tc.module),
			"role=%s module=%s", tc.role, tc.module)
	}
}

func TestCan_PermissionTable(t *testing.T) {
	cases := []struct {
		role    rbac.Role
		perm    rbac.Permission
		allowed bool
	}{
		{rbac.RoleAdmin, rbac.PermDemandPlanApprove, true},
		{rbac.RoleExecutive, rbac.PermDemandPlanApprove, true},
		{rbac.RoleDemandPlanner, rbac.PermDemandPlanApprove, false},

		{rbac.RoleDemandPlanner, rbac.PermDemandPlanWrite, true},
		{rbac.RoleExecutive, rbac.PermDemandPlanWrite, false},

		{rbac.RoleInventoryManager, rbac.PermInventoryUpdate, true},
		{rbac.RoleViewer, rbac.PermInventoryUpdate, false},

		{rbac.RoleFinanceAnalyst, rbac.PermForecastGenerate, true},
		{rbac.RoleInventoryManager, rbac.PermForecastGenerate, false},

		{rbac.RoleSOPCoordinator, rbac.PermSOPManage, true},
		{rbac.RoleExecutive, rbac.PermSOPManage, false},

		{rbac.RoleAdmin, rbac.PermProductsManage, true},
		{rbac.RoleSupplyPlanner, rbac.PermProductsManage, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, rbac.Can(tc.role, tc.perm),
			"role=%s perm=%s", tc.role, tc.perm)
	}
}

func TestCan_EmptyRoleDenied(t *testing.T) {
	assert.False(t, rbac.Can("", rbac.PermDemandPlanWrite))
	assert.False(t, rbac.Can("", rbac.PermKPIManage))
}

func TestRoleValid(t *testing.T) {
	for _, r := range rbac.AllRoles {
		assert.True(t, r.Valid())
	}
	assert.False(t, rbac.Role("superuser").Valid())
	assert.False(t, rbac.Role("").Valid())
}
