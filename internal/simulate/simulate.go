package simulate

import (
	"math"
	"time"

	"github.com/arjunks/enercast/internal/weather"
)

// Row is one simulated feature row for a single calendar date. Values holds
// every appliance, weather, and calendar column.
type Row struct {
	Date   time.Time
	Values map[string]float64
}

// Simulate builds one feature row per target date from the declared
// appliance set and the averaged daily weather. Dates must be sorted
// ascending; behavior with unsorted input is undefined. An empty date list
// produces an empty result.
func Simulate(appliances map[string]Config, table weather.Table, dates []time.Time) []Row {
	rows := make([]Row, 0, len(dates))

	for _, date := range dates {
		day := table.Lookup(date)

		values := make(map[string]float64, len(ApplianceColumns)+len(WeatherColumns)+len(CalendarColumns))
		for _, col := range ApplianceColumns {
			values[col] = 0
		}

		for name, cfg := range appliances {
			col, ok := Canonical(name)
			if !ok {
				// Unknown appliance: no model column, zero contribution.
				continue
			}
			if !cfg.UsedOn(date) {
				continue
			}

			base := cfg.UsageHours() * float64(cfg.Count) * cfg.PowerKW
			values[col] = round2(base * weatherMultiplier(col, day))
		}

		values["temperature"] = day.Temperature
		values["humidity"] = day.Humidity
		values["visibility"] = day.Visibility
		values["pressure"] = day.Pressure
		values["windSpeed"] = day.WindSpeed
		values["cloudCover"] = day.CloudCover
		values["windBearing"] = day.WindBearing
		values["precipIntensity"] = day.PrecipIntensity
		values["precipProbability"] = day.PrecipProbability

		values["month"] = float64(date.Month())
		values["day"] = float64(date.Day())
		values["hour"] = 0
		values["weekday"] = float64(weekdayIndex(date))

		rows = append(rows, Row{Date: date, Values: values})
	}

	return rows
}

// weatherMultiplier scales an appliance's draw for the day's conditions.
func weatherMultiplier(col string, day weather.Daily) float64 {
	switch col {
	case ColAirConditioner:
		if day.Temperature > 30 {
			return 1.5
		}
		if day.Temperature < 15 {
			return 0.8
		}
	case ColFans:
		if day.Temperature > 25 {
			return 1.2
		}
	case ColHeater:
		if day.Temperature < 10 {
			return 1.5
		}
	case ColLights:
		if day.CloudCover > 70 {
			return 1.1
		}
	}
	return 1
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
