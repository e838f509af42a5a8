package repository

import (
	"context"

	"github.com/genxsop/genxsop/internal/domain/entity"
)

// ScenarioRepository is the persistence port for Scenario.
type ScenarioRepository interface {
	Create(ctx context.Context, s *entity.Scenario) error
	GetByID(ctx context.Context, id int64) (*entity.Scenario, error)
	Update(ctx context.Context, s *entity.Scenario) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, status string, page, pageSize int) ([]*entity.Scenario, int, error)
	// GetByIDs fetches scenarios for side-by-side comparison, preserving only
	// those that exist.
	GetByIDs(ctx context.Context, ids []int64) ([]*entity.Scenario, error)
	CountOpen(ctx context.Context) (int, error)
}
