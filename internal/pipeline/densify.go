package pipeline

// Densify reconciles a ragged predicted series into a dense daily calendar
// covering [min(date), max(date)] inclusive. Dates with no prediction are
// filled with 0: a date that was never simulated is assumed to have zero
// consumption, not unknown consumption. The filled series is then grouped
// by calendar year-month, so the sum of the monthly totals always equals
// the sum of the daily values.
func Densify(predicted []Daily) (daily []Daily, monthly []Monthly, total float64) {
	if len(predicted) == 0 {
		return nil, nil, 0
	}

	byDate := make(map[string]float64, len(predicted))
	first, last := predicted[0].Date, predicted[0].Date
	for _, p := range predicted {
		byDate[p.Date.Format(dateLayout)] = p.PredictedUse
		if p.Date.Before(first) {
			first = p.Date
		}
		if p.Date.After(last) {
			last = p.Date
		}
	}

	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		use := byDate[d.Format(dateLayout)]
		daily = append(daily, Daily{Date: d, PredictedUse: use})
		total += use

		if n := len(monthly); n > 0 && monthly[n-1].Year == d.Year() && monthly[n-1].Month == d.Month() {
			monthly[n-1].PredictedUse += use
		} else {
			monthly = append(monthly, Monthly{Year: d.Year(), Month: d.Month(), PredictedUse: use})
		}
	}

	return daily, monthly, total
}
