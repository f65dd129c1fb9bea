package pipeline

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDensifyFillsGaps(t *testing.T) {
	predicted := []Daily{
		{Date: day(2024, 3, 1), PredictedUse: 5.0},
		{Date: day(2024, 3, 3), PredictedUse: 7.0},
	}

	daily, monthly, total := Densify(predicted)

	if len(daily) != 3 {
		t.Fatalf("got %d days, want 3", len(daily))
	}
	if !daily[1].Date.Equal(day(2024, 3, 2)) || daily[1].PredictedUse != 0 {
		t.Errorf("gap day = %+v, want 2024-03-02 with 0", daily[1])
	}
	if total != 12.0 {
		t.Errorf("total = %v, want 12.0", total)
	}
	if len(monthly) != 1 || monthly[0].PredictedUse != 12.0 {
		t.Errorf("monthly = %+v, want one March entry of 12.0", monthly)
	}
}

func TestDensifySpanningMonths(t *testing.T) {
	predicted := []Daily{
		{Date: day(2024, 1, 30), PredictedUse: 2.0},
		{Date: day(2024, 2, 2), PredictedUse: 3.0},
	}

	daily, monthly, total := Densify(predicted)

	// Jan 30, 31, Feb 1, 2.
	if len(daily) != 4 {
		t.Fatalf("got %d days, want 4", len(daily))
	}
	if len(monthly) != 2 {
		t.Fatalf("got %d months, want 2", len(monthly))
	}
	if monthly[0].Month != time.January || monthly[0].PredictedUse != 2.0 {
		t.Errorf("January = %+v, want 2.0", monthly[0])
	}
	if monthly[1].Month != time.February || monthly[1].PredictedUse != 3.0 {
		t.Errorf("February = %+v, want 3.0", monthly[1])
	}

	// Sum of monthly totals equals the sum of all daily values.
	monthSum := monthly[0].PredictedUse + monthly[1].PredictedUse
	if monthSum != total {
		t.Errorf("monthly sum %v != total %v", monthSum, total)
	}
}

func TestDensifyUnorderedInput(t *testing.T) {
	predicted := []Daily{
		{Date: day(2024, 3, 3), PredictedUse: 7.0},
		{Date: day(2024, 3, 1), PredictedUse: 5.0},
	}

	daily, _, total := Densify(predicted)
	if len(daily) != 3 || total != 12.0 {
		t.Errorf("got %d days, total %v; want 3 days, total 12.0", len(daily), total)
	}
	if !daily[0].Date.Equal(day(2024, 3, 1)) {
		t.Errorf("first day = %v, want 2024-03-01", daily[0].Date)
	}
}

func TestDensifyEmpty(t *testing.T) {
	daily, monthly, total := Densify(nil)
	if daily != nil || monthly != nil || total != 0 {
		t.Errorf("Densify(nil) = (%v, %v, %v), want empty", daily, monthly, total)
	}
}
