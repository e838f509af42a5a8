package usecase_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genxsop/genxsop/internal/application/dto"
	"github.com/genxsop/genxsop/internal/application/usecase"
	"github.com/genxsop/genxsop/internal/domain"
	"github.com/genxsop/genxsop/internal/domain/entity"
)

func newScenarioUC() (*usecase.ScenarioUseCase, *fakeScenarioRepo) {
	repo := newFakeScenarioRepo()
	return usecase.NewScenarioUseCase(repo), repo
}

func TestScenarioCreate_DefaultsTypeToWhatIf(t *testing.T) {
	uc, _ := newScenarioUC()
	resp, err := uc.Create(context.Background(), dto.CreateScenarioRequest{
		Name: "Demand +10%",
		Parameters: dto.ScenarioParameters{
			DemandChangePct: decimal.NewFromInt(10),
		},
	}, 7)
	require.NoError(t, err)
	assert.Equal(t, entity.ScenarioWhatIf, resp.ScenarioType)
	assert.Equal(t, entity.PlanDraft, resp.Status)
}

func TestScenarioRun_ComputesImpactsFromBaselines(t *testing.T) {
	uc, _ := newScenarioUC()
	created, err := uc.Create(context.Background(), dto.CreateScenarioRequest{
		Name: "Demand +10%, price +2%",
		Parameters: dto.ScenarioParameters{
			DemandChangePct:   decimal.NewFromInt(10),
			SupplyCapacityPct: decimal.NewFromInt(5),
			PriceChangePct:    decimal.NewFromInt(2),
		},
	}, 7)
	require.NoError(t, err)

	resp, err := uc.Run(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ScenarioCompleted, resp.Status)

	// revenue: 12.5M * (0.10 + 0.02) = 1.5M
	require.NotNil(t, resp.RevenueImpact)
	assert.True(t, resp.RevenueImpact.Equal(decimal.NewFromInt(1500000)),
		"revenue impact was %s", resp.RevenueImpact)

	// margin: 3.8M * (0.10*0.8 + 0.02) = 380000
	require.NotNil(t, resp.MarginImpact)
	assert.True(t, resp.MarginImpact.Equal(decimal.NewFromInt(380000)),
		"margin impact was %s", resp.MarginImpact)

	// inventory: 2.1M * 0.10*0.5 = 105000
	require.NotNil(t, resp.InventoryImpact)
	assert.True(t, resp.InventoryImpact.Equal(decimal.NewFromInt(105000)),
		"inventory impact was %s", resp.InventoryImpact)

	// service: 94.2 - 0.10*5 + 0.05*3 = 93.85
	require.NotNil(t, resp.ServiceLevelImpact)
	assert.True(t, resp.ServiceLevelImpact.Equal(decimal.RequireFromString("93.85")),
		"service level impact was %s", resp.ServiceLevelImpact)

	// the results document carries capacity utilization too
	var results dto.ScenarioRunResults
	require.NoError(t, json.Unmarshal(resp.Results, &results))
	assert.True(t, results.CapacityUtilizationChange.Equal(decimal.NewFromInt(5)))
}

func TestScenarioRun_ZeroParametersYieldZeroImpacts(t *testing.T) {
	uc, _ := newScenarioUC()
	created, err := uc.Create(context.Background(), dto.CreateScenarioRequest{Name: "Baseline"}, 7)
	require.NoError(t, err)

	resp, err := uc.Run(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, resp.RevenueImpact)
	assert.True(t, resp.RevenueImpact.IsZero())
	require.NotNil(t, resp.ServiceLevelImpact)
	assert.True(t, resp.ServiceLevelImpact.Equal(decimal.RequireFromString("94.2")))
}

func TestScenarioCompare_MissingIDsDropped(t *testing.T) {
	uc, _ := newScenarioUC()
	a, err := uc.Create(context.Background(), dto.CreateScenarioRequest{Name: "A"}, 7)
	require.NoError(t, err)
	b, err := uc.Create(context.Background(), dto.CreateScenarioRequest{Name: "B"}, 7)
	require.NoError(t, err)
	_, err = uc.Run(context.Background(), b.ID)
	require.NoError(t, err)

	rows, err := uc.Compare(context.Background(), []int64{a.ID, b.ID, 999})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// unrun scenarios compare with zero impacts
	assert.True(t, rows[0].RevenueImpact.IsZero())
	assert.Equal(t, "B", rows[1].Name)
}

func TestScenarioApprovalFlow(t *testing.T) {
	uc, _ := newScenarioUC()
	created, err := uc.Create(context.Background(), dto.CreateScenarioRequest{Name: "S"}, 7)
	require.NoError(t, err)

	resp, err := uc.Submit(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PlanSubmitted, resp.Status)

	resp, err = uc.Approve(context.Background(), created.ID, 99)
	require.NoError(t, err)
	assert.Equal(t, entity.PlanApproved, resp.Status)
	require.NotNil(t, resp.ApprovedBy)
	assert.Equal(t, int64(99), *resp.ApprovedBy)
}

func TestScenarioGet_MissingIsNotFound(t *testing.T) {
	uc, _ := newScenarioUC()
	_, err := uc.Get(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
