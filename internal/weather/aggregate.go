package weather

import (
	"context"
	"time"
)

// HourlySource provides hourly historical samples for a coordinate range.
type HourlySource interface {
	Hourly(ctx context.Context, lat, lon float64, start, end time.Time) ([]Sample, error)
}

// Aggregator turns hourly historical weather into per-calendar-day averages.
type Aggregator struct {
	source HourlySource
}

// NewAggregator creates an aggregator over an hourly source.
func NewAggregator(source HourlySource) *Aggregator {
	return &Aggregator{source: source}
}

// DailyAverages fetches hourly weather for the window exactly one year
// before [start, end] and averages each metric per (month, day). Future
// dates have no recorded weather, so the prior year's window is used as
// the historical analogue.
func (a *Aggregator) DailyAverages(ctx context.Context, location string, start, end time.Time) (Table, error) {
	lat, lon, err := ParseLocation(location)
	if err != nil {
		return nil, err
	}

	samples, err := a.source.Hourly(ctx, lat, lon, start.AddDate(-1, 0, 0), end.AddDate(-1, 0, 0))
	if err != nil {
		return nil, err
	}

	return Average(samples), nil
}

// Average buckets hourly samples by (month, day), ignoring year, and
// computes the arithmetic mean of each metric per bucket.
func Average(samples []Sample) Table {
	sums := make(map[MonthDay]Daily)
	counts := make(map[MonthDay]int)

	for _, s := range samples {
		key := MonthDay{s.Time.Month(), s.Time.Day()}
		sum := sums[key]
		sum.Temperature += s.Temperature
		sum.Humidity += s.Humidity
		sum.WindSpeed += s.WindSpeed
		sum.Visibility += s.Visibility
		sum.Pressure += s.Pressure
		sum.CloudCover += s.CloudCover
		sum.WindBearing += s.WindBearing
		sum.PrecipIntensity += s.PrecipIntensity
		sum.PrecipProbability += s.PrecipProbability
		sums[key] = sum
		counts[key]++
	}

	table := make(Table, len(sums))
	for key, sum := range sums {
		n := float64(counts[key])
		table[key] = Daily{
			Temperature:       sum.Temperature / n,
			Humidity:          sum.Humidity / n,
			WindSpeed:         sum.WindSpeed / n,
			Visibility:        sum.Visibility / n,
			Pressure:          sum.Pressure / n,
			CloudCover:        sum.CloudCover / n,
			WindBearing:       sum.WindBearing / n,
			PrecipIntensity:   sum.PrecipIntensity / n,
			PrecipProbability: sum.PrecipProbability / n,
		}
	}

	return table
}
