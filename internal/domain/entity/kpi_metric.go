package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// KPI categories.
const (
	KPIDemand    = "demand"
	KPISupply    = "supply"
	KPIInventory = "inventory"
	KPIFinancial = "financial"
	KPIService   = "service"
)

// KPI trends, derived from value vs previous value.
const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

// KPIMetric is one measured value of a named metric for a period.
// Variance fields are derived at creation time when a target is present.
type KPIMetric struct {
	ID             int64
	MetricName     string
	MetricCategory string
	Period         time.Time
	Value          decimal.Decimal
	Target         *decimal.Decimal
	PreviousValue  *decimal.Decimal
	Variance       *decimal.Decimal
	VariancePct    *decimal.Decimal
	Trend          string
	Unit           string
	CreatedAt      time.Time
}
