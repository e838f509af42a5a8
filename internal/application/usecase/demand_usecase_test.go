package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genxsop/genxsop/internal/application/dto"
	"github.com/genxsop/genxsop/internal/application/usecase"
	"github.com/genxsop/genxsop/internal/domain"
	"github.com/genxsop/genxsop/internal/domain/entity"
)

func newDemandUC() (*usecase.DemandUseCase, *fakeDemandRepo) {
	repo := newFakeDemandRepo()
	return usecase.NewDemandUseCase(repo), repo
}

func draftPlan(t *testing.T, uc *usecase.DemandUseCase) *dto.DemandPlanResponse {
	t.Helper()
	resp, err := uc.Create(context.Background(), dto.CreateDemandPlanRequest{
		ProductID:   10,
		Period:      time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		ForecastQty: decimal.NewFromInt(100),
	}, 7)
	require.NoError(t, err)
	return resp
}

func TestDemandCreate_DefaultsRegionAndChannel(t *testing.T) {
	uc, _ := newDemandUC()
	resp := draftPlan(t, uc)

	assert.Equal(t, "Global", resp.Region)
	assert.Equal(t, "All", resp.Channel)
	assert.Equal(t, entity.PlanDraft, resp.Status)
	assert.Equal(t, 1, resp.Version)
	require.NotNil(t, resp.CreatedBy)
	assert.Equal(t, int64(7), *resp.CreatedBy)
}

func TestDemandSubmit_FromDraft(t *testing.T) {
	uc, _ := newDemandUC()
	plan := draftPlan(t, uc)

	resp, err := uc.Submit(context.Background(), plan.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PlanSubmitted, resp.Status)
}

func TestDemandSubmit_TwiceRejected(t *testing.T) {
	uc, _ := newDemandUC()
	plan := draftPlan(t, uc)

	_, err := uc.Submit(context.Background(), plan.ID)
	require.NoError(t, err)
	_, err = uc.Submit(context.Background(), plan.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestDemandApprove_OnlyFromSubmitted(t *testing.T) {
	uc, _ := newDemandUC()
	plan := draftPlan(t, uc)

	_, err := uc.Approve(context.Background(), plan.ID, 99, "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = uc.Submit(context.Background(), plan.ID)
	require.NoError(t, err)

	resp, err := uc.Approve(context.Background(), plan.ID, 99, "looks right")
	require.NoError(t, err)
	assert.Equal(t, entity.PlanApproved, resp.Status)
	require.NotNil(t, resp.ApprovedBy)
	assert.Equal(t, int64(99), *resp.ApprovedBy)
	assert.Contains(t, resp.Notes, "[Approved] looks right")
}

func TestDemandReject_ReturnsToDraft(t *testing.T) {
	uc, _ := newDemandUC()
	plan := draftPlan(t, uc)

	_, err := uc.Submit(context.Background(), plan.ID)
	require.NoError(t, err)

	resp, err := uc.Reject(context.Background(), plan.ID, "numbers look stale")
	require.NoError(t, err)
	assert.Equal(t, entity.PlanDraft, resp.Status)
	assert.Contains(t, resp.Notes, "[Rejected] numbers look stale")

	// the planner can rework and resubmit
	_, err = uc.Submit(context.Background(), plan.ID)
	assert.NoError(t, err)
}

func TestDemandAdjust_BumpsVersion(t *testing.T) {
	uc, _ := newDemandUC()
	plan := draftPlan(t, uc)

	resp, err := uc.Adjust(context.Background(), plan.ID, decimal.NewFromInt(115), "promo uplift")
	require.NoError(t, err)
	require.NotNil(t, resp.AdjustedQty)
	assert.True(t, resp.AdjustedQty.Equal(decimal.NewFromInt(115)))
	assert.Equal(t, 2, resp.Version)
	assert.Equal(t, "promo uplift", resp.Notes)
}

func TestDemandUpdate_LockedPlanRejected(t *testing.T) {
	uc, repo := newDemandUC()
	plan := draftPlan(t, uc)
	repo.plans[plan.ID].Status = entity.PlanLocked

	notes := "late edit"
	_, err := uc.Update(context.Background(), plan.ID, dto.UpdateDemandPlanRequest{Notes: &notes})
	assert.ErrorIs(t, err, domain.ErrPlanLocked)

	_, err = uc.Adjust(context.Background(), plan.ID, decimal.NewFromInt(50), "")
	assert.ErrorIs(t, err, domain.ErrPlanLocked)
}

func TestDemandDelete_ApprovedPlanRejected(t *testing.T) {
	uc, repo := newDemandUC()
	plan := draftPlan(t, uc)
	repo.plans[plan.ID].Status = entity.PlanApproved

	err := uc.Delete(context.Background(), plan.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	repo.plans[plan.ID].Status = entity.PlanDraft
	assert.NoError(t, uc.Delete(context.Background(), plan.ID))
	assert.Empty(t, repo.plans)
}

func TestDemandGet_MissingPlanIsNotFound(t *testing.T) {
	uc, _ := newDemandUC()
	_, err := uc.Get(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
