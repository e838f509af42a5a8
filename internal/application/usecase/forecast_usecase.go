package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/genxsop/genxsop/internal/application/dto"
	"github.com/genxsop/genxsop/internal/domain"
	"github.com/genxsop/genxsop/internal/domain/entity"
	"github.com/genxsop/genxsop/internal/domain/repository"
)

// minForecastHistory is the fewest actuals any model can train on.
const minForecastHistory = 3

// ForecastTxRunner runs fn inside a database transaction, handing it a
// forecast repository bound to that transaction. Regenerating a product's
// forecasts is a delete-then-insert per period and must be atomic.
type ForecastTxRunner interface {
	Run(ctx context.Context, fn func(forecasts repository.ForecastRepository) error) error
}

// ForecastUseCase generates and serves statistical demand forecasts. Training
// data comes from demand plan actuals.
type ForecastUseCase struct {
	forecasts repository.ForecastRepository
	demand    repository.DemandPlanRepository
	products  repository.ProductRepository
	tx        ForecastTxRunner
}

func NewForecastUseCase(
	forecasts repository.ForecastRepository,
	demand repository.DemandPlanRepository,
	products repository.ProductRepository,
	tx ForecastTxRunner,
) *ForecastUseCase {
	return &ForecastUseCase{forecasts: forecasts, demand: demand, products: products, tx: tx}
}

// Generate runs a model for a product and upserts the predicted periods.
// An empty model type auto-selects by history length.
func (uc *ForecastUseCase) Generate(ctx context.Context, in dto.GenerateForecastRequest, userID int64) (*dto.GenerateForecastResponse, error) {
	product, err := uc.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	history, err := uc.trainingHistory(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if len(history) < minForecastHistory {
		return nil, fmt.Errorf("%w: forecast generation needs %d periods of actuals, have %d",
			domain.ErrInsufficientData, minForecastHistory, len(history))
	}

	var strategy forecastStrategy
	if in.ModelType == "" {
		strategy = bestStrategy(len(history))
	} else {
		strategy = strategyFor(in.ModelType)
		if strategy == nil {
			return nil, fmt.Errorf("%w: model %q is not runnable", domain.ErrInvalidInput, in.ModelType)
		}
	}

	horizon := in.PeriodsAhead
	if horizon <= 0 {
		horizon = 3
	}

	points := strategy.Forecast(history, horizon)
	now := time.Now()
	trainingDate := now
	created := make([]dto.ForecastResponse, 0, len(points))
	err = uc.tx.Run(ctx, func(forecasts repository.ForecastRepository) error {
		for _, p := range points {
			if err := forecasts.DeleteByProductModelPeriod(ctx, in.ProductID, strategy.ModelID(), p.Period); err != nil {
				return err
			}
			confidence := p.Confidence
			f := &entity.Forecast{
				ProductID:    in.ProductID,
				ModelType:    strategy.ModelID(),
				Period:       p.Period,
				PredictedQty: p.PredictedQty,
				LowerBound:   &p.LowerBound,
				UpperBound:   &p.UpperBound,
				Confidence:   &confidence,
				ModelVersion: "1",
				TrainingDate: &trainingDate,
				CreatedAt:    now,
			}
			if err := forecasts.Create(ctx, f); err != nil {
				return err
			}
			created = append(created, dto.ForecastToResponse(f))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.GenerateForecastResponse{
		ProductID:     in.ProductID,
		ModelType:     strategy.ModelID(),
		PeriodsAhead:  horizon,
		HistoryPoints: len(history),
		Forecasts:     created,
	}, nil
}

// List returns stored forecasts matching the filter.
func (uc *ForecastUseCase) List(ctx context.Context, in dto.ForecastFilterRequest) ([]dto.ForecastResponse, error) {
	list, err := uc.forecasts.List(ctx, repository.ForecastFilter{
		ProductID:  in.ProductID,
		ModelType:  in.ModelType,
		PeriodFrom: in.PeriodFrom,
		PeriodTo:   in.PeriodTo,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ForecastResponse, 0, len(list))
	for _, f := range list {
		out = append(out, dto.ForecastToResponse(f))
	}
	return out, nil
}

// Get fetches one forecast record.
func (uc *ForecastUseCase) Get(ctx context.Context, id int64) (*dto.ForecastResponse, error) {
	f, err := uc.forecasts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.ForecastToResponse(f)
	return &resp, nil
}

// Accuracy aggregates average MAPE per model over stored forecasts that carry
// an error figure.
func (uc *ForecastUseCase) Accuracy(ctx context.Context, productID *int64) ([]dto.ForecastAccuracyResponse, error) {
	list, err := uc.forecasts.List(ctx, repository.ForecastFilter{ProductID: productID})
	if err != nil {
		return nil, err
	}

	type stat struct {
		sum   decimal.Decimal
		count int
	}
	stats := map[string]*stat{}
	order := []string{}
	for _, f := range list {
		if f.MAPE == nil {
			continue
		}
		s, ok := stats[f.ModelType]
		if !ok {
			s = &stat{}
			stats[f.ModelType] = s
			order = append(order, f.ModelType)
		}
		s.sum = s.sum.Add(*f.MAPE)
		s.count++
	}

	out := make([]dto.ForecastAccuracyResponse, 0, len(order))
	for _, model := range order {
		s := stats[model]
		out = append(out, dto.ForecastAccuracyResponse{
			ProductID:   productID,
			ModelType:   model,
			AvgMAPE:     s.sum.Div(decimal.NewFromInt(int64(s.count))).Round(4),
			SampleCount: s.count,
		})
	}
	return out, nil
}

// Models lists the registry, flagging which models can run in-process.
func (uc *ForecastUseCase) Models() []dto.ForecastModelInfo {
	out := make([]dto.ForecastModelInfo, 0, len(modelRegistry))
	for _, m := range modelRegistry {
		out = append(out, dto.ForecastModelInfo{
			ModelType:   m.ID,
			Name:        m.Name,
			Description: m.Description,
			Available:   m.Strategy != nil,
			MinHistory:  m.MinHistory,
		})
	}
	return out
}

// Anomaly is one historical demand point far outside the norm.
type Anomaly struct {
	Period          time.Time       `json:"period"`
	Value           decimal.Decimal `json:"value"`
	Mean            decimal.Decimal `json:"mean"`
	ZScore          decimal.Decimal `json:"z_score"`
	Severity        string          `json:"severity"`
	Direction       string          `json:"direction"`
	SuggestedAction string          `json:"suggested_action"`
}

// anomalyZThreshold flags points more than 2.5 population standard deviations
// from the mean; beyond 3.5 the severity is high.
const (
	anomalyZThreshold    = 2.5
	anomalyHighThreshold = 3.5
	minAnomalyHistory    = 6
)

// DetectAnomalies z-scores the demand history of a product. Fewer than six
// observations yields no verdicts.
func (uc *ForecastUseCase) DetectAnomalies(ctx context.Context, productID int64) ([]Anomaly, error) {
	history, err := uc.trainingHistory(ctx, productID)
	if err != nil {
		return nil, err
	}
	if len(history) < minAnomalyHistory {
		return []Anomaly{}, nil
	}

	var sum float64
	for _, h := range history {
		sum += h.Value
	}
	mean := sum / float64(len(history))
	var ss float64
	for _, h := range history {
		ss += (h.Value - mean) * (h.Value - mean)
	}
	std := math.Sqrt(ss / float64(len(history)))
	if std == 0 {
		return []Anomaly{}, nil
	}

	out := []Anomaly{}
	for _, h := range history {
		z := math.Abs((h.Value - mean) / std)
		if z <= anomalyZThreshold {
			continue
		}
		severity := "medium"
		if z > anomalyHighThreshold {
			severity = "high"
		}
		direction := "drop"
		action := "Investigate demand drop"
		if h.Value > mean {
			direction = "spike"
			action = "Investigate demand spike"
		}
		out = append(out, Anomaly{
			Period:          h.Period,
			Value:           decimal.NewFromFloat(h.Value).Round(2),
			Mean:            decimal.NewFromFloat(mean).Round(2),
			ZScore:          decimal.NewFromFloat(z).Round(2),
			Severity:        severity,
			Direction:       direction,
			SuggestedAction: action,
		})
	}
	return out, nil
}

// trainingHistory converts demand actuals into strategy input, oldest first.
func (uc *ForecastUseCase) trainingHistory(ctx context.Context, productID int64) ([]historyPoint, error) {
	plans, err := uc.demand.ListWithActuals(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]historyPoint, 0, len(plans))
	for _, p := range plans {
		if p.ActualQty == nil {
			continue
		}
		v, _ := p.ActualQty.Float64()
		out = append(out, historyPoint{Period: p.Period, Value: v})
	}
	return out, nil
}
