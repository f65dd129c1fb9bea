package simulate

import (
	"strconv"
	"strings"
	"time"
)

// Canonical appliance column names, in the order the model was trained on.
const (
	ColDishwasher       = "Dishwasher"
	ColAirConditioner   = "AirConditioner"
	ColHeater           = "Heater"
	ColComputerDevices  = "ComputerDevices"
	ColRefrigerator     = "Refrigerator"
	ColWashingMachine   = "WashingMachine"
	ColFans             = "Fans"
	ColChimney          = "Chimney"
	ColFoodProcessor    = "FoodProcessor"
	ColInductionCooktop = "InductionCooktop"
	ColLights           = "Lights"
	ColWaterPump        = "WaterPump"
	ColMicrowave        = "Microwave"
	ColTV               = "TV"
)

// ApplianceColumns lists the appliance feature columns in training order.
var ApplianceColumns = []string{
	ColDishwasher, ColAirConditioner, ColHeater, ColComputerDevices,
	ColRefrigerator, ColWashingMachine, ColFans, ColChimney,
	ColFoodProcessor, ColInductionCooktop, ColLights, ColWaterPump,
	ColMicrowave, ColTV,
}

// WeatherColumns lists the weather feature columns in training order.
var WeatherColumns = []string{
	"temperature", "humidity", "visibility", "pressure", "windSpeed",
	"cloudCover", "windBearing", "precipIntensity", "precipProbability",
}

// CalendarColumns lists the date feature columns in training order.
var CalendarColumns = []string{"month", "day", "hour", "weekday"}

// NaturalColumns returns the full feature layout of a simulated row, used
// when the model does not expose its own column names.
func NaturalColumns() []string {
	cols := make([]string, 0, len(ApplianceColumns)+len(WeatherColumns)+len(CalendarColumns))
	cols = append(cols, ApplianceColumns...)
	cols = append(cols, WeatherColumns...)
	cols = append(cols, CalendarColumns...)
	return cols
}

// aliases maps common intake spellings onto canonical columns. Keys are
// lowercased with spaces stripped.
var aliases = map[string]string{
	"ac":             ColAirConditioner,
	"airconditioner": ColAirConditioner,
	"aircon":         ColAirConditioner,
	"fridge":         ColRefrigerator,
	"refrigerator":   ColRefrigerator,
	"fan":            ColFans,
	"fans":           ColFans,
	"light":          ColLights,
	"lights":         ColLights,
	"bulbs":          ColLights,
	"television":     ColTV,
	"tv":             ColTV,
	"computer":       ColComputerDevices,
	"computers":      ColComputerDevices,
	"pc":             ColComputerDevices,
	"washingmachine": ColWashingMachine,
	"washer":         ColWashingMachine,
	"geyser":         ColHeater,
	"waterheater":    ColHeater,
	"heater":         ColHeater,
	"motor":          ColWaterPump,
	"waterpump":      ColWaterPump,
	"mixer":          ColFoodProcessor,
	"mixergrinder":   ColFoodProcessor,
	"foodprocessor":  ColFoodProcessor,
	"induction":      ColInductionCooktop,
	"cooktop":        ColInductionCooktop,
	"oven":           ColMicrowave,
	"microwave":      ColMicrowave,
	"microwaveoven":  ColMicrowave,
	"dishwasher":     ColDishwasher,
	"chimney":        ColChimney,
}

// Canonical resolves a user-supplied appliance name to its model column.
// Unrecognized names return ok=false; they contribute nothing to the
// simulated row but still count toward the demand ceiling under their raw
// name.
func Canonical(name string) (string, bool) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", ""))
	col, ok := aliases[key]
	return col, ok
}

// Config describes one appliance in a prediction request.
type Config struct {
	PowerKW   float64  // rated power draw, kW
	Count     int      // number of identical units
	UsageTime string   // daily usage duration, e.g. "3h"
	Days      []string // weekday names the appliance runs on
	Times     []string // optional time-of-day buckets (Morning/Noon/Evening/Night)
}

// UsageHours parses the daily usage duration. Malformed durations yield 0
// hours rather than an error; partial client input should degrade, not fail
// the whole request.
func (c Config) UsageHours() float64 {
	s := strings.TrimSpace(c.UsageTime)
	s = strings.TrimSuffix(strings.TrimSuffix(s, "h"), "H")
	h, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || h < 0 {
		return 0
	}
	return h
}

// UsedOn reports whether the appliance runs on date's weekday.
func (c Config) UsedOn(date time.Time) bool {
	name := date.Weekday().String()
	for _, d := range c.Days {
		if strings.EqualFold(strings.TrimSpace(d), name) {
			return true
		}
	}
	return false
}

// BucketHours maps a named time-of-day bucket to its [start, end) hours.
// The night bucket wraps past midnight.
func BucketHours(name string) (start, end int, ok bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "morning":
		return 6, 12, true
	case "noon":
		return 12, 17, true
	case "evening":
		return 17, 21, true
	case "night":
		return 21, 6, true
	}
	return 0, 0, false
}

// weekdayIndex converts Go weekdays to the model's convention (Monday=0).
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
