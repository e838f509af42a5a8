package repository

import (
	"context"
	"time"

	"github.com/genxsop/genxsop/internal/domain/entity"
)

// KPIFilter narrows metric listings.
type KPIFilter struct {
	Category string
	Period   *time.Time
	Name     string
}

// KPIRepository is the persistence port for KPIMetric.
type KPIRepository interface {
	Create(ctx context.Context, m *entity.KPIMetric) error
	// Update rewrites target/variance fields of an existing measurement.
	Update(ctx context.Context, m *entity.KPIMetric) error
	GetByID(ctx context.Context, id int64) (*entity.KPIMetric, error)
	List(ctx context.Context, f KPIFilter, page, pageSize int) ([]*entity.KPIMetric, int, error)
	// GetLatestByName returns the newest metric with that name, or nil.
	GetLatestByName(ctx context.Context, name string) (*entity.KPIMetric, error)
	// ListSince returns metrics for a category (all when empty) from a period onward,
	// oldest first; feeds the trends endpoint.
	ListSince(ctx context.Context, category string, since time.Time) ([]*entity.KPIMetric, error)
	// ListLatestWithTargets returns the newest metric per name among those that
	// carry a target; feeds alerting.
	ListLatestWithTargets(ctx context.Context) ([]*entity.KPIMetric, error)
}
