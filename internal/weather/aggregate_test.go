package weather

import (
	"context"
	"math"
	"testing"
	"time"
)

func TestAverage(t *testing.T) {
	day1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	samples := []Sample{
		{Time: day1, Daily: Daily{Temperature: 20, Humidity: 40}},
		{Time: day1.Add(1 * time.Hour), Daily: Daily{Temperature: 22, Humidity: 60}},
		{Time: day1.Add(2 * time.Hour), Daily: Daily{Temperature: 24, Humidity: 80}},
		// Same calendar day, different year: must land in the same bucket.
		{Time: day1.AddDate(-1, 0, 0), Daily: Daily{Temperature: 26, Humidity: 20}},
		// Different calendar day.
		{Time: day1.AddDate(0, 0, 1), Daily: Daily{Temperature: 10, Humidity: 90}},
	}

	table := Average(samples)

	if len(table) != 2 {
		t.Fatalf("got %d buckets, want 2", len(table))
	}

	march1 := table[MonthDay{time.March, 1}]
	if got, want := march1.Temperature, (20.0+22+24+26)/4; !almostEqual(got, want) {
		t.Errorf("March 1 temperature = %v, want %v", got, want)
	}
	if got, want := march1.Humidity, (40.0+60+80+20)/4; !almostEqual(got, want) {
		t.Errorf("March 1 humidity = %v, want %v", got, want)
	}

	march2 := table[MonthDay{time.March, 2}]
	if got := march2.Temperature; !almostEqual(got, 10) {
		t.Errorf("March 2 temperature = %v, want 10", got)
	}
}

func TestTableLookupDefaults(t *testing.T) {
	table := Table{
		{time.March, 1}: {Temperature: 30},
	}

	known := table.Lookup(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	if known.Temperature != 30 {
		t.Errorf("known day temperature = %v, want 30", known.Temperature)
	}

	missing := table.Lookup(time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC))
	if missing != Defaults {
		t.Errorf("missing day = %+v, want defaults %+v", missing, Defaults)
	}
	if Defaults.Temperature != 25 || Defaults.Pressure != 1013 || Defaults.WindBearing != 180 {
		t.Errorf("unexpected defaults: %+v", Defaults)
	}
}

type fakeSource struct {
	gotStart time.Time
	gotEnd   time.Time
	samples  []Sample
	err      error
}

func (f *fakeSource) Hourly(ctx context.Context, lat, lon float64, start, end time.Time) ([]Sample, error) {
	f.gotStart, f.gotEnd = start, end
	return f.samples, f.err
}

func TestDailyAveragesShiftsWindowBackOneYear(t *testing.T) {
	src := &fakeSource{samples: []Sample{
		{Time: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), Daily: Daily{Temperature: 20}},
	}}
	agg := NewAggregator(src)

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	table, err := agg.DailyAverages(context.Background(), "lat:10.0, lon:76.0", start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := start.AddDate(-1, 0, 0); !src.gotStart.Equal(want) {
		t.Errorf("fetch start = %v, want %v", src.gotStart, want)
	}
	if want := end.AddDate(-1, 0, 0); !src.gotEnd.Equal(want) {
		t.Errorf("fetch end = %v, want %v", src.gotEnd, want)
	}
	if len(table) != 1 {
		t.Errorf("got %d buckets, want 1", len(table))
	}
}

func TestDailyAveragesRejectsBadLocation(t *testing.T) {
	src := &fakeSource{}
	agg := NewAggregator(src)

	_, err := agg.DailyAverages(context.Background(), "10.0,76.0", time.Now(), time.Now())
	if err == nil {
		t.Fatal("expected error for malformed location")
	}
	if !src.gotStart.IsZero() {
		t.Error("fetch happened despite malformed location")
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
