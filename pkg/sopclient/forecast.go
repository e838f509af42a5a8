package sopclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Forecast is one predicted period for a product/model pair.
type Forecast struct {
	ID           int64  `json:"id"`
	ProductID    int64  `json:"product_id"`
	ModelType    string `json:"model_type"`
	Period       string `json:"period"`
	PredictedQty Number `json:"predicted_qty"`
	LowerBound   Number `json:"lower_bound"`
	UpperBound   Number `json:"upper_bound"`
	Confidence   Number `json:"confidence"`
	MAPE         Number `json:"mape"`
	ModelVersion string `json:"model_version,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// ModelAccuracy is the client-side accuracy row. The backend only supplies
// avg_mape and sample_count; the remaining figures default to 0 so display
// logic stays total.
type ModelAccuracy struct {
	ModelType   string  `json:"model_type"`
	MAPE        float64 `json:"mape"`
	Bias        float64 `json:"bias"`
	RMSE        float64 `json:"rmse"`
	MAE         float64 `json:"mae"`
	HitRate     float64 `json:"hit_rate"`
	PeriodCount int     `json:"period_count"`
}

// ModelInfo describes one forecasting model tier.
type ModelInfo struct {
	ModelType   string `json:"model_type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	MinHistory  int    `json:"min_history"`
}

// Anomaly is a flagged spike or drop in a product's demand history.
type Anomaly struct {
	Period    string `json:"period"`
	ActualQty Number `json:"value"`
	Mean      Number `json:"mean"`
	ZScore    Number `json:"z_score"`
	Severity  string `json:"severity"`
	Direction string `json:"direction"`
	Action    string `json:"suggested_action"`
}

// GenerateOptions selects the product, model and horizon for a run. An empty
// ModelType lets the server auto-select by history length.
type GenerateOptions struct {
	ProductID    int64
	ModelType    string
	PeriodsAhead int
}

// ForecastListOptions filter stored forecasts.
type ForecastListOptions struct {
	ProductID int64
	ModelType string
}

// ForecastService covers the forecasting endpoints.
type ForecastService struct {
	c *Client
}

func NewForecastService(c *Client) *ForecastService {
	return &ForecastService{c: c}
}

// generateEnvelope is the backend's generation response, flattened by
// Generate into a plain forecast sequence carrying the model type.
type generateEnvelope struct {
	ProductID     int64      `json:"product_id"`
	ModelType     string     `json:"model_type"`
	PeriodsAhead  int        `json:"periods_ahead"`
	HistoryPoints int        `json:"history_points"`
	Forecasts     []Forecast `json:"forecasts"`
}

// Generate runs a model and returns the flat forecast list. Each record
// carries the model type the server actually ran (which may differ from the
// requested one under auto-selection).
func (s *ForecastService) Generate(ctx context.Context, opts GenerateOptions) ([]Forecast, error) {
	body := map[string]any{"product_id": opts.ProductID}
	if opts.ModelType != "" {
		body["model_type"] = opts.ModelType
	}
	if opts.PeriodsAhead > 0 {
		body["periods_ahead"] = opts.PeriodsAhead
	}

	var env generateEnvelope
	if err := s.c.postJSON(ctx, "/forecasts/generate", nil, body, &env); err != nil {
		return nil, err
	}
	out := make([]Forecast, 0, len(env.Forecasts))
	for _, f := range env.Forecasts {
		if f.ModelType == "" {
			f.ModelType = env.ModelType
		}
		if f.ProductID == 0 {
			f.ProductID = env.ProductID
		}
		out = append(out, f)
	}
	return out, nil
}

// Results lists stored forecasts, normalizing the backend's bare array into
// the envelope shape.
func (s *ForecastService) Results(ctx context.Context, opts ForecastListOptions) (*Page[Forecast], error) {
	q := url.Values{}
	if opts.ProductID > 0 {
		q.Set("product_id", strconv.FormatInt(opts.ProductID, 10))
	}
	if opts.ModelType != "" {
		q.Set("model_type", opts.ModelType)
	}
	raw, err := s.c.do(ctx, http.MethodGet, "/forecasts", q, nil)
	if err != nil {
		return nil, err
	}
	return decodePage[Forecast](raw, 0)
}

// Result fetches a single forecast.
func (s *ForecastService) Result(ctx context.Context, id int64) (*Forecast, error) {
	var f Forecast
	if err := s.c.getJSON(ctx, "/forecasts/"+strconv.FormatInt(id, 10), nil, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Models lists the advertised model tiers.
func (s *ForecastService) Models(ctx context.Context) ([]ModelInfo, error) {
	var models []ModelInfo
	if err := s.c.getJSON(ctx, "/forecasts/models", nil, &models); err != nil {
		return nil, err
	}
	return models, nil
}

// accuracyRow is the backend accuracy shape.
type accuracyRow struct {
	ModelType   string `json:"model_type"`
	AvgMAPE     Number `json:"avg_mape"`
	SampleCount int    `json:"sample_count"`
}

// Accuracy fetches per-model accuracy and remaps it to the client shape,
// zero-filling the figures the backend does not compute.
func (s *ForecastService) Accuracy(ctx context.Context, productID int64) ([]ModelAccuracy, error) {
	q := url.Values{}
	if productID > 0 {
		q.Set("product_id", strconv.FormatInt(productID, 10))
	}
	var rows []accuracyRow
	if err := s.c.getJSON(ctx, "/forecasts/accuracy", q, &rows); err != nil {
		return nil, err
	}
	out := make([]ModelAccuracy, 0, len(rows))
	for _, r := range rows {
		out = append(out, ModelAccuracy{
			ModelType:   r.ModelType,
			MAPE:        r.AvgMAPE.Or(0),
			Bias:        0,
			RMSE:        0,
			MAE:         0,
			HitRate:     0,
			PeriodCount: r.SampleCount,
		})
	}
	return out, nil
}

// Anomalies scans a product's demand history for outliers.
func (s *ForecastService) Anomalies(ctx context.Context, productID int64) ([]Anomaly, error) {
	q := url.Values{}
	q.Set("product_id", strconv.FormatInt(productID, 10))
	var anomalies []Anomaly
	if err := s.c.getJSON(ctx, "/forecasts/anomalies", q, &anomalies); err != nil {
		return nil, err
	}
	return anomalies, nil
}
