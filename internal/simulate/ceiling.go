package simulate

import "time"

// Ceiling computes the maximum possible consumption for one calendar day:
// the sum of power × count × usage hours over every declared appliance that
// actually runs that day. The raw declared set is used, including names the
// model vocabulary does not recognize; the model was trained on consumption
// normalized by this same per-day maximum, so the ceiling must reflect
// everything the household declared.
//
// An appliance contributes 0 when the date's weekday is not among its usage
// days or its usage duration does not parse.
func Ceiling(appliances map[string]Config, date time.Time) float64 {
	total := 0.0
	for _, cfg := range appliances {
		if !cfg.UsedOn(date) {
			continue
		}
		hours := cfg.UsageHours()
		if hours == 0 {
			continue
		}
		total += cfg.PowerKW * float64(cfg.Count) * hours
	}
	return total
}

// Denormalize converts a normalized model output in [0,1] back to kWh using
// the day's ceiling and a caller-supplied floor.
func Denormalize(normalized, ceiling, floor float64) float64 {
	return normalized*(ceiling-floor) + floor
}
