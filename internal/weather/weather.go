package weather

import "time"

// Daily holds the averaged weather metrics for one calendar day.
type Daily struct {
	Temperature       float64 // degrees C
	Humidity          float64 // percentage 0-100
	WindSpeed         float64 // meters per second
	Visibility        float64 // meters
	Pressure          float64 // hPa
	CloudCover        float64 // percentage 0-100
	WindBearing       float64 // degrees
	PrecipIntensity   float64 // mm
	PrecipProbability float64 // percentage 0-100
}

// Defaults is used when no historical data exists for a calendar day.
var Defaults = Daily{
	Temperature: 25,
	Humidity:    50,
	WindSpeed:   5,
	Visibility:  0,
	Pressure:    1013,
	CloudCover:  10,
	WindBearing: 180,
}

// MonthDay keys averaged weather by calendar day, ignoring year.
type MonthDay struct {
	Month time.Month
	Day   int
}

// Table maps calendar days to their averaged weather.
type Table map[MonthDay]Daily

// Lookup returns the averaged weather for t's calendar day, falling back
// to Defaults when the day has no historical data.
func (t Table) Lookup(date time.Time) Daily {
	if d, ok := t[MonthDay{date.Month(), date.Day()}]; ok {
		return d
	}
	return Defaults
}

// Sample is one hourly observation from the historical source.
type Sample struct {
	Time time.Time
	Daily
}
