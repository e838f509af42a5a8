// Package rbac holds the static role-based access tables shared by the API's
// route middleware and by sopctl (which only uses them to hide affordances;
// the server side remains the source of truth).
package rbac

// Role is one of the eight fixed user roles.
type Role string

const (
	RoleAdmin            Role = "admin"
	RoleExecutive        Role = "executive"
	RoleDemandPlanner    Role = "demand_planner"
	RoleSupplyPlanner    Role = "supply_planner"
	RoleInventoryManager Role = "inventory_manager"
	RoleFinanceAnalyst   Role = "finance_analyst"
	RoleSOPCoordinator   Role = "sop_coordinator"
	RoleViewer           Role = "viewer"
)

// AllRoles in declaration order.
var AllRoles = []Role{
	RoleAdmin,
	RoleExecutive,
	RoleDemandPlanner,
	RoleSupplyPlanner,
	RoleInventoryManager,
	RoleFinanceAnalyst,
	RoleSOPCoordinator,
	RoleViewer,
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

// Module is a functional area of the application.
type Module string

const (
	ModuleDashboard   Module = "dashboard"
	ModuleDemand      Module = "demand"
	ModuleSupply      Module = "supply"
	ModuleInventory   Module = "inventory"
	ModuleForecasting Module = "forecasting"
	ModuleScenarios   Module = "scenarios"
	ModuleSOPCycle    Module = "sop_cycle"
	ModuleKPI         Module = "kpi"
	ModuleProducts    Module = "products"
	ModuleSettings    Module = "settings"
)

// Permission is an action-level grant.
type Permission string

const (
	PermDemandPlanWrite   Permission = "demand.plan.write"
	PermDemandPlanApprove Permission = "demand.plan.approve"
	PermSupplyPlanWrite   Permission = "supply.plan.write"
	PermSupplyPlanApprove Permission = "supply.plan.approve"
	PermScenarioWrite     Permission = "scenario.write"
	PermScenarioApprove   Permission = "scenario.approve"
	PermForecastGenerate  Permission = "forecast.generate"
	PermInventoryUpdate   Permission = "inventory.update"
	PermKPIManage         Permission = "kpi.manage"
	PermProductsManage    Permission = "products.manage"
	PermSOPManage         Permission = "sop.manage"
	PermUsersManage       Permission = "users.manage"
)

// moduleAccess decides route access and sidebar/command visibility.
// Viewer is limited to dashboard + kpi (+ settings for account self-management).
var moduleAccess = map[Module][]Role{
	ModuleDashboard: AllRoles,
	ModuleKPI:       AllRoles,
	ModuleSettings:  AllRoles,

	ModuleDemand:      {RoleAdmin, RoleExecutive, RoleDemandPlanner, RoleSupplyPlanner, RoleSOPCoordinator},
	ModuleSupply:      {RoleAdmin, RoleExecutive, RoleSupplyPlanner, RoleSOPCoordinator},
	ModuleInventory:   {RoleAdmin, RoleExecutive, RoleInventoryManager, RoleSupplyPlanner, RoleSOPCoordinator},
	ModuleForecasting: {RoleAdmin, RoleExecutive, RoleDemandPlanner, RoleSupplyPlanner, RoleFinanceAnalyst, RoleSOPCoordinator},
	ModuleScenarios:   {RoleAdmin, RoleExecutive, RoleDemandPlanner, RoleSupplyPlanner, RoleFinanceAnalyst, RoleSOPCoordinator},
	ModuleSOPCycle:    {RoleAdmin, RoleExecutive, RoleSOPCoordinator},
	ModuleProducts:    {RoleAdmin},
}

// permissions decides action availability (e.g. approve buttons / subcommands).
var permissions = map[Permission][]Role{
	PermDemandPlanWrite:   {RoleAdmin, RoleDemandPlanner, RoleSupplyPlanner, RoleSOPCoordinator},
	PermDemandPlanApprove: {RoleAdmin, RoleExecutive},

	PermSupplyPlanWrite:   {RoleAdmin, RoleSupplyPlanner, RoleSOPCoordinator},
	PermSupplyPlanApprove: {RoleAdmin, RoleExecutive},

	PermScenarioWrite:   {RoleAdmin, RoleDemandPlanner, RoleSupplyPlanner, RoleFinanceAnalyst, RoleSOPCoordinator},
	PermScenarioApprove: {RoleAdmin, RoleExecutive},

	PermForecastGenerate: {RoleAdmin, RoleDemandPlanner, RoleSupplyPlanner, RoleFinanceAnalyst, RoleSOPCoordinator},

	PermInventoryUpdate: {RoleAdmin, RoleInventoryManager, RoleSupplyPlanner},
	PermKPIManage:       {RoleAdmin, RoleExecutive},
	PermProductsManage:  {RoleAdmin},

	PermSOPManage: {RoleAdmin, RoleSOPCoordinator},

	PermUsersManage: {RoleAdmin},
}

// CanAccessModule reports whether role may enter module. Empty role is always denied.
func CanAccessModule(role Role, module Module) bool {
	if role == "" {
		return false
	}
	return contains(moduleAccess[module], role)
}

// Can reports whether role holds the action-level permission. Empty role is always denied.
func Can(role Role, permission Permission) bool {
	if role == "" {
		return false
	}
	return contains(permissions[permission], role)
}

// ModuleRoles returns the allow-list for a module (used by the route middleware).
func ModuleRoles(module Module) []Role {
	return moduleAccess[module]
}

// PermissionRoles returns the allow-list for a permission.
func PermissionRoles(permission Permission) []Role {
	return permissions[permission]
}

func contains(list []Role, r Role) bool {
	for _, x := range list {
		if x == r {
			return true
		}
	}
	return false
}
