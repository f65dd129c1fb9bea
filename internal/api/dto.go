package api

import (
	"time"

	"github.com/arjunks/enercast/internal/billing"
	"github.com/arjunks/enercast/internal/pipeline"
	"github.com/arjunks/enercast/internal/simulate"
)

// applianceInput is the wire shape of one appliance. Older clients sent the
// usage duration under "usage"; the rename to "usageTime" happens here at
// the API boundary, outside the core.
type applianceInput struct {
	Power       float64  `json:"power"`
	Count       int      `json:"count"`
	UsageTime   string   `json:"usageTime"`
	LegacyUsage string   `json:"usage"`
	Days        []string `json:"days"`
	Times       []string `json:"times"`
}

func (in applianceInput) toConfig() simulate.Config {
	usage := in.UsageTime
	if usage == "" {
		usage = in.LegacyUsage
	}
	count := in.Count
	if count < 1 {
		count = 1
	}
	var times []string
	for _, t := range in.Times {
		if _, _, ok := simulate.BucketHours(t); ok {
			times = append(times, t)
		}
	}
	return simulate.Config{
		PowerKW:   in.Power,
		Count:     count,
		UsageTime: usage,
		Days:      in.Days,
		Times:     times,
	}
}

type predictRequest struct {
	Location   string                    `json:"location"`
	Appliances map[string]applianceInput `json:"appliances"`
	Dates      []string                  `json:"dates"`
	Phase      string                    `json:"phase"`
}

func (req predictRequest) toPipeline() pipeline.Request {
	appliances := make(map[string]simulate.Config, len(req.Appliances))
	for name, in := range req.Appliances {
		appliances[name] = in.toConfig()
	}
	return pipeline.Request{
		Location:   req.Location,
		Appliances: appliances,
		Dates:      req.Dates,
		Phase:      billing.Phase(req.Phase),
	}
}

type dailyDTO struct {
	Date         string  `json:"date"`
	PredictedUse float64 `json:"predicted_use"`
}

type monthlyDTO struct {
	Month        string  `json:"month"` // "2006-01"
	PredictedUse float64 `json:"predicted_use"`
}

type monthlyBillDTO struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

type billDTO struct {
	Amount  float64          `json:"amount"`
	Source  string           `json:"source"`
	Monthly []monthlyBillDTO `json:"monthly"`
}

type predictionDTO struct {
	TotalUse float64      `json:"total_use"`
	Daily    []dailyDTO   `json:"daily"`
	Monthly  []monthlyDTO `json:"monthly"`
	Dates    []string     `json:"dates"`
}

type predictResponse struct {
	Prediction      predictionDTO `json:"prediction"`
	BillAmount      float64       `json:"billAmount"`
	Bill            billDTO       `json:"bill"`
	Recommendations []string      `json:"recommendations"`
}

func newPredictResponse(result *pipeline.Result) predictResponse {
	resp := predictResponse{
		Prediction: predictionDTO{
			TotalUse: result.TotalUse,
			Daily:    make([]dailyDTO, 0, len(result.Daily)),
			Monthly:  make([]monthlyDTO, 0, len(result.Monthly)),
			Dates:    make([]string, 0, len(result.Dates)),
		},
		BillAmount: result.Bill.Amount,
		Bill: billDTO{
			Amount:  result.Bill.Amount,
			Source:  result.Bill.Source,
			Monthly: make([]monthlyBillDTO, 0, len(result.Bill.Monthly)),
		},
		Recommendations: result.Recommendations,
	}

	for _, d := range result.Daily {
		resp.Prediction.Daily = append(resp.Prediction.Daily, dailyDTO{
			Date:         d.Date.Format("2006-01-02"),
			PredictedUse: d.PredictedUse,
		})
	}
	for _, m := range result.Monthly {
		resp.Prediction.Monthly = append(resp.Prediction.Monthly, monthlyDTO{
			Month:        monthKey(m.Year, m.Month),
			PredictedUse: m.PredictedUse,
		})
	}
	for _, d := range result.Dates {
		resp.Prediction.Dates = append(resp.Prediction.Dates, d.Format("2006-01-02"))
	}
	for _, b := range result.Bill.Monthly {
		resp.Bill.Monthly = append(resp.Bill.Monthly, monthlyBillDTO{
			Month:  monthKey(b.Year, b.Month),
			Amount: b.Amount,
		})
	}

	return resp
}

func monthKey(year int, month time.Month) string {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}
