package simulate

import (
	"testing"
	"time"

	"github.com/arjunks/enercast/internal/weather"
)

// 2024-03-04 is a Monday.
var monday = time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

func TestSimulateFanScenario(t *testing.T) {
	appliances := map[string]Config{
		"Fans": {PowerKW: 0.1, Count: 2, UsageTime: "5h", Days: []string{"Monday"}},
	}
	table := weather.Table{
		{Month: time.March, Day: 4}: {Temperature: 26},
	}

	rows := Simulate(appliances, table, []time.Time{monday})
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}

	// 0.1 kW x 2 units x 5 h, x1.2 because 26 C > 25 C.
	if got := rows[0].Values[ColFans]; got != 1.2 {
		t.Errorf("Fans = %v, want 1.2", got)
	}
}

func TestSimulateWeatherMultipliers(t *testing.T) {
	tests := []struct {
		name      string
		appliance string
		column    string
		day       weather.Daily
		want      float64
	}{
		{
			name:      "air conditioner hot day",
			appliance: "AirConditioner",
			column:    ColAirConditioner,
			day:       weather.Daily{Temperature: 31},
			want:      1.5, // 1 x 1 x 1 x 1.5
		},
		{
			name:      "air conditioner cold day",
			appliance: "AirConditioner",
			column:    ColAirConditioner,
			day:       weather.Daily{Temperature: 14},
			want:      0.8,
		},
		{
			name:      "air conditioner mild day",
			appliance: "AirConditioner",
			column:    ColAirConditioner,
			day:       weather.Daily{Temperature: 20},
			want:      1,
		},
		{
			name:      "heater cold day",
			appliance: "Heater",
			column:    ColHeater,
			day:       weather.Daily{Temperature: 9},
			want:      1.5,
		},
		{
			name:      "heater mild day",
			appliance: "Heater",
			column:    ColHeater,
			day:       weather.Daily{Temperature: 15},
			want:      1,
		},
		{
			name:      "lights overcast day",
			appliance: "Lights",
			column:    ColLights,
			day:       weather.Daily{Temperature: 20, CloudCover: 80},
			want:      1.1,
		},
		{
			name:      "lights clear day",
			appliance: "Lights",
			column:    ColLights,
			day:       weather.Daily{Temperature: 20, CloudCover: 30},
			want:      1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appliances := map[string]Config{
				tt.appliance: {PowerKW: 1, Count: 1, UsageTime: "1h", Days: []string{"Monday"}},
			}
			table := weather.Table{{Month: time.March, Day: 4}: tt.day}

			rows := Simulate(appliances, table, []time.Time{monday})
			if got := rows[0].Values[tt.column]; got != tt.want {
				t.Errorf("%s = %v, want %v", tt.column, got, tt.want)
			}
		})
	}
}

func TestSimulateUnrecognizedAppliances(t *testing.T) {
	appliances := map[string]Config{
		"Arc Welder": {PowerKW: 5, Count: 1, UsageTime: "8h", Days: []string{"Monday"}},
		"Teleporter": {PowerKW: 9, Count: 1, UsageTime: "1h", Days: []string{"Monday"}},
	}
	table := weather.Table{}

	rows := Simulate(appliances, table, []time.Time{monday})
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}

	// All appliance columns stay 0, weather and calendar columns still fill.
	for _, col := range ApplianceColumns {
		if rows[0].Values[col] != 0 {
			t.Errorf("%s = %v, want 0", col, rows[0].Values[col])
		}
	}
	if got := rows[0].Values["temperature"]; got != weather.Defaults.Temperature {
		t.Errorf("temperature = %v, want default %v", got, weather.Defaults.Temperature)
	}
	if got := rows[0].Values["month"]; got != 3 {
		t.Errorf("month = %v, want 3", got)
	}
	if got := rows[0].Values["weekday"]; got != 0 {
		t.Errorf("weekday = %v, want 0 (Monday)", got)
	}
	if got := rows[0].Values["hour"]; got != 0 {
		t.Errorf("hour = %v, want 0", got)
	}
}

func TestSimulateSkipsUnusedWeekdays(t *testing.T) {
	appliances := map[string]Config{
		"TV": {PowerKW: 0.2, Count: 1, UsageTime: "4h", Days: []string{"Sunday"}},
	}

	rows := Simulate(appliances, weather.Table{}, []time.Time{monday})
	if got := rows[0].Values[ColTV]; got != 0 {
		t.Errorf("TV on a Monday = %v, want 0", got)
	}
}

func TestSimulateEmptyDates(t *testing.T) {
	rows := Simulate(map[string]Config{}, weather.Table{}, nil)
	if len(rows) != 0 {
		t.Errorf("got %d rows for empty date list, want 0", len(rows))
	}
}

func TestUsageHours(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"5h", 5},
		{"2.5h", 2.5},
		{"3", 3},
		{" 4 h ", 4},
		{"7H", 7},
		{"banana", 0},
		{"", 0},
		{"-2h", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cfg := Config{UsageTime: tt.input}
			if got := cfg.UsageHours(); got != tt.want {
				t.Errorf("UsageHours(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBucketHours(t *testing.T) {
	tests := []struct {
		input      string
		start, end int
		ok         bool
	}{
		{"Morning", 6, 12, true},
		{"noon", 12, 17, true},
		{"Evening", 17, 21, true},
		{"Night", 21, 6, true},
		{"Teatime", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			start, end, ok := BucketHours(tt.input)
			if start != tt.start || end != tt.end || ok != tt.ok {
				t.Errorf("BucketHours(%q) = (%d, %d, %v), want (%d, %d, %v)",
					tt.input, start, end, ok, tt.start, tt.end, tt.ok)
			}
		})
	}
}

func TestCanonical(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"Fans", ColFans, true},
		{"fan", ColFans, true},
		{"AC", ColAirConditioner, true},
		{"Air Conditioner", ColAirConditioner, true},
		{"Fridge", ColRefrigerator, true},
		{"Television", ColTV, true},
		{"washing machine", ColWashingMachine, true},
		{"Arc Welder", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := Canonical(tt.input)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Canonical(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}
