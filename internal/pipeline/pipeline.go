package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/arjunks/enercast/internal/billing"
	"github.com/arjunks/enercast/internal/inference"
	"github.com/arjunks/enercast/internal/recommend"
	"github.com/arjunks/enercast/internal/simulate"
	"github.com/arjunks/enercast/internal/store"
	"github.com/arjunks/enercast/internal/weather"
)

var (
	// ErrInvalidRequest marks client input rejected before any external
	// call is made.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrPrediction wraps any failure during inference or aggregation.
	// The whole request fails; there is no partial mode.
	ErrPrediction = errors.New("prediction failed")
)

const dateLayout = "2006-01-02"

// WeatherSource provides averaged daily weather for a location and window.
type WeatherSource interface {
	DailyAverages(ctx context.Context, location string, start, end time.Time) (weather.Table, error)
}

// Recommender turns a consumption summary prompt into advice lines.
type Recommender interface {
	Lines(ctx context.Context, prompt string) []string
}

// Runner wires the full prediction pipeline: weather fetch, simulation,
// inference, denormalization, billing, recommendations. One Run per
// request, sequential and synchronous. Model is shared read-only across
// concurrent runs; everything else is per-request state.
type Runner struct {
	Weather     WeatherSource
	Model       inference.Predictor
	Schedule    *billing.Schedule
	Tariff      *billing.TariffClient // optional legacy bill path
	Recommender Recommender           // optional; nil falls back to rule-based tips
	Audit       *store.Store          // optional write-only audit log
}

// Request is a single prediction request.
type Request struct {
	Location   string
	Appliances map[string]simulate.Config
	Dates      []string // calendar dates, "2006-01-02"
	Phase      billing.Phase
}

// Daily is one day of the dense predicted series.
type Daily struct {
	Date         time.Time `json:"date"`
	PredictedUse float64   `json:"predicted_use"`
}

// Monthly is a calendar-month consumption total.
type Monthly struct {
	Year         int        `json:"year"`
	Month        time.Month `json:"month"`
	PredictedUse float64    `json:"predicted_use"`
}

// MonthlyBill is the bill for one calendar month.
type MonthlyBill struct {
	Year   int        `json:"year"`
	Month  time.Month `json:"month"`
	Amount float64    `json:"amount"`
}

// Bill is the monetary breakdown derived from the monthly series.
type Bill struct {
	Amount  float64       `json:"amount"`
	Source  string        `json:"source"` // "schedule" or "tariff-service"
	Monthly []MonthlyBill `json:"monthly"`
}

// Result is the complete outcome of one pipeline run.
type Result struct {
	TotalUse        float64     `json:"total_use"`
	Daily           []Daily     `json:"daily"`
	Monthly         []Monthly   `json:"monthly"`
	Dates           []time.Time `json:"dates"`
	Bill            Bill        `json:"bill"`
	Recommendations []string    `json:"recommendations"`
}

// Run executes the pipeline for one request. Validation happens before any
// external call; a weather failure aborts the request (simulation cannot
// proceed without weather), while tariff and recommendation failures
// degrade to defaults.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	dates, err := validate(req)
	if err != nil {
		return nil, err
	}

	table, err := r.Weather.DailyAverages(ctx, req.Location, dates[0], dates[len(dates)-1])
	if err != nil {
		return nil, fmt.Errorf("could not fetch weather data: %w", err)
	}

	rows := simulate.Simulate(req.Appliances, table, dates)

	matrix, err := inference.Build(rows, r.Model.FeatureNames())
	if err != nil {
		return nil, err
	}

	normalized, err := r.Model.Predict(ctx, matrix)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPrediction, err)
	}

	predicted := make([]Daily, len(normalized))
	for i, p := range normalized {
		date := matrix.Dates[i]
		ceiling := simulate.Ceiling(req.Appliances, date)
		predicted[i] = Daily{
			Date:         date,
			PredictedUse: simulate.Denormalize(p, ceiling, 0),
		}
	}

	daily, monthly, total := Densify(predicted)

	result := &Result{
		TotalUse: total,
		Daily:    daily,
		Monthly:  monthly,
		Dates:    coveredDates(daily),
	}
	result.Bill = r.bill(ctx, monthly, req.Phase)
	result.Recommendations = r.recommendations(ctx, result)

	r.audit(req, table, result)

	return result, nil
}

func validate(req Request) ([]time.Time, error) {
	if _, _, err := weather.ParseLocation(req.Location); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if len(req.Dates) < 2 {
		return nil, fmt.Errorf("%w: at least two target dates are required", ErrInvalidRequest)
	}

	dates := make([]time.Time, len(req.Dates))
	for i, s := range req.Dates {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return nil, fmt.Errorf("%w: unparseable date %q", ErrInvalidRequest, s)
		}
		dates[i] = t
	}

	// The simulator requires ascending dates; sort once at the boundary.
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}

// bill charges each calendar month independently. The remote tariff client,
// when configured, replaces the local schedule and degrades to 0 per month
// on failure.
func (r *Runner) bill(ctx context.Context, monthly []Monthly, phase billing.Phase) Bill {
	if phase == "" {
		phase = billing.PhaseSingle
	}

	b := Bill{Source: "schedule"}
	if r.Tariff != nil {
		b.Source = "tariff-service"
	}

	for _, m := range monthly {
		var amount float64
		if r.Tariff != nil {
			amount = r.Tariff.BillAmount(ctx, m.PredictedUse, phase)
		} else {
			amount, _ = r.Schedule.Amount(m.PredictedUse, phase).Round(2).Float64()
		}
		b.Monthly = append(b.Monthly, MonthlyBill{Year: m.Year, Month: m.Month, Amount: amount})
		b.Amount += amount
	}

	return b
}

func (r *Runner) recommendations(ctx context.Context, result *Result) []string {
	if r.Recommender == nil {
		return recommend.Tips(result.TotalUse)
	}

	prompt := fmt.Sprintf(
		"A household is predicted to use %.1f kWh of electricity over %d days (%.1f kWh per day on average). "+
			"Give three short, practical recommendations for reducing their consumption.",
		result.TotalUse, len(result.Daily), result.TotalUse/float64(max(len(result.Daily), 1)))
	return r.Recommender.Lines(ctx, prompt)
}

// audit writes the request to the write-only log tables. Audit failures are
// logged and never fail the request.
func (r *Runner) audit(req Request, table weather.Table, result *Result) {
	if r.Audit == nil {
		return
	}

	locationID, err := r.Audit.SaveLocation(req.Location)
	if err != nil {
		log.Printf("audit: saving location: %v", err)
		return
	}
	if err := r.Audit.SaveAppliances(locationID, req.Appliances); err != nil {
		log.Printf("audit: saving appliances: %v", err)
	}
	if err := r.Audit.SaveWeather(locationID, table); err != nil {
		log.Printf("audit: saving weather: %v", err)
	}
	predictionID, err := r.Audit.SavePrediction(locationID, result.TotalUse, result.Daily)
	if err != nil {
		log.Printf("audit: saving prediction: %v", err)
		return
	}
	if err := r.Audit.SaveBill(predictionID, result.Bill.Amount, result.Bill.Source); err != nil {
		log.Printf("audit: saving bill: %v", err)
	}
	if err := r.Audit.SaveRecommendations(locationID, result.Recommendations); err != nil {
		log.Printf("audit: saving recommendations: %v", err)
	}
}

func coveredDates(daily []Daily) []time.Time {
	dates := make([]time.Time, len(daily))
	for i, d := range daily {
		dates[i] = d.Date
	}
	return dates
}
