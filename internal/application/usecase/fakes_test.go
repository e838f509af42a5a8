package usecase_test

import (
	"context"
	"time"

	"github.com/genxsop/genxsop/internal/domain/entity"
	"github.com/genxsop/genxsop/internal/domain/repository"
)

// In-memory repository fakes for usecase tests.

type fakeDemandRepo struct {
	nextID int64
	plans  map[int64]*entity.DemandPlan
}

func newFakeDemandRepo() *fakeDemandRepo {
	return &fakeDemandRepo{plans: make(map[int64]*entity.DemandPlan)}
}

func (r *fakeDemandRepo) Create(_ context.Context, p *entity.DemandPlan) error {
	r.nextID++
	p.ID = r.nextID
	cp := *p
	r.plans[p.ID] = &cp
	return nil
}

func (r *fakeDemandRepo) GetByID(_ context.Context, id int64) (*entity.DemandPlan, error) {
	p, ok := r.plans[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeDemandRepo) Update(_ context.Context, p *entity.DemandPlan) error {
	cp := *p
	r.plans[p.ID] = &cp
	return nil
}

func (r *fakeDemandRepo) Delete(_ context.Context, id int64) error {
	delete(r.plans, id)
	return nil
}

func (r *fakeDemandRepo) List(_ context.Context, _ repository.PlanFilter, _, _ int) ([]*entity.DemandPlan, int, error) {
	out := make([]*entity.DemandPlan, 0, len(r.plans))
	for _, p := range r.plans {
		cp := *p
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeDemandRepo) CountByStatus(_ context.Context, status string) (int, error) {
	n := 0
	for _, p := range r.plans {
		if p.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *fakeDemandRepo) ListByPeriod(_ context.Context, period time.Time) ([]*entity.DemandPlan, error) {
	out := make([]*entity.DemandPlan, 0)
	for _, p := range r.plans {
		if p.Period.Equal(period) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeDemandRepo) ListWithActuals(_ context.Context, productID int64) ([]*entity.DemandPlan, error) {
	out := make([]*entity.DemandPlan, 0)
	for _, p := range r.plans {
		if p.ProductID == productID && p.ActualQty != nil {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeScenarioRepo struct {
	nextID    int64
	scenarios map[int64]*entity.Scenario
}

func newFakeScenarioRepo() *fakeScenarioRepo {
	return &fakeScenarioRepo{scenarios: make(map[int64]*entity.Scenario)}
}

func (r *fakeScenarioRepo) Create(_ context.Context, s *entity.Scenario) error {
	r.nextID++
	s.ID = r.nextID
	cp := *s
	r.scenarios[s.ID] = &cp
	return nil
}

func (r *fakeScenarioRepo) GetByID(_ context.Context, id int64) (*entity.Scenario, error) {
	s, ok := r.scenarios[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeScenarioRepo) Update(_ context.Context, s *entity.Scenario) error {
	cp := *s
	r.scenarios[s.ID] = &cp
	return nil
}

func (r *fakeScenarioRepo) Delete(_ context.Context, id int64) error {
	delete(r.scenarios, id)
	return nil
}

func (r *fakeScenarioRepo) List(_ context.Context, status string, _, _ int) ([]*entity.Scenario, int, error) {
	out := make([]*entity.Scenario, 0, len(r.scenarios))
	for _, s := range r.scenarios {
		if status != "" && s.Status != status {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeScenarioRepo) GetByIDs(_ context.Context, ids []int64) ([]*entity.Scenario, error) {
	out := make([]*entity.Scenario, 0, len(ids))
	for _, id := range ids {
		if s, ok := r.scenarios[id]; ok {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeScenarioRepo) CountOpen(_ context.Context) (int, error) {
	n := 0
	for _, s := range r.scenarios {
		if s.Status == entity.PlanDraft || s.Status == entity.PlanSubmitted {
			n++
		}
	}
	return n, nil
}
