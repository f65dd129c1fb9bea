package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const archiveAPIBase = "https://archive-api.open-meteo.com/v1/archive"

// ErrUnexpectedResponse is returned when the weather source answers without
// an hourly data block.
var ErrUnexpectedResponse = errors.New("weather response missing hourly data")

// HistoryClient fetches hourly historical weather from the Open-Meteo
// archive API.
type HistoryClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewHistoryClient creates a new archive API client.
func NewHistoryClient() *HistoryClient {
	return &HistoryClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    archiveAPIBase,
	}
}

// archiveResponse represents the API response. Metrics decode as pointers
// because the archive serves null for hours it has no record of.
type archiveResponse struct {
	Hourly struct {
		Time              []string   `json:"time"`
		Temperature2m     []*float64 `json:"temperature_2m"`
		RelativeHumidity  []*float64 `json:"relative_humidity_2m"`
		WindSpeed10m      []*float64 `json:"wind_speed_10m"`
		Visibility        []*float64 `json:"visibility"`
		SurfacePressure   []*float64 `json:"surface_pressure"`
		CloudCover        []*float64 `json:"cloud_cover"`
		WindDirection10m  []*float64 `json:"wind_direction_10m"`
		Precipitation     []*float64 `json:"precipitation"`
		PrecipProbability []*float64 `json:"precipitation_probability"`
	} `json:"hourly"`
}

// Hourly fetches hourly samples of the 9 weather metrics for a location
// over [start, end].
func (c *HistoryClient) Hourly(ctx context.Context, lat, lon float64, start, end time.Time) ([]Sample, error) {
	params := url.Values{}
	params.Add("latitude", fmt.Sprintf("%.4f", lat))
	params.Add("longitude", fmt.Sprintf("%.4f", lon))
	params.Add("start_date", start.Format("2006-01-02"))
	params.Add("end_date", end.Format("2006-01-02"))
	params.Add("hourly", "temperature_2m,relative_humidity_2m,wind_speed_10m,visibility,surface_pressure,cloud_cover,wind_direction_10m,precipitation,precipitation_probability")
	params.Add("timezone", "UTC")

	fullURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching weather history: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("weather API returned status %d: %s", resp.StatusCode, string(body))
	}

	var archive archiveResponse
	if err := json.NewDecoder(resp.Body).Decode(&archive); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	h := archive.Hourly
	if len(h.Time) == 0 {
		return nil, ErrUnexpectedResponse
	}

	samples := make([]Sample, 0, len(h.Time))
	for i := range h.Time {
		t, err := time.Parse("2006-01-02T15:04", h.Time[i])
		if err != nil {
			continue
		}

		samples = append(samples, Sample{
			Time: t,
			Daily: Daily{
				Temperature:       deref(h.Temperature2m, i),
				Humidity:          deref(h.RelativeHumidity, i),
				WindSpeed:         deref(h.WindSpeed10m, i),
				Visibility:        deref(h.Visibility, i),
				Pressure:          deref(h.SurfacePressure, i),
				CloudCover:        deref(h.CloudCover, i),
				WindBearing:       deref(h.WindDirection10m, i),
				PrecipIntensity:   deref(h.Precipitation, i),
				PrecipProbability: deref(h.PrecipProbability, i),
			},
		})
	}

	return samples, nil
}

// deref reads a nullable hourly value, treating null and short arrays as 0.
func deref(vals []*float64, i int) float64 {
	if i >= len(vals) || vals[i] == nil {
		return 0
	}
	return *vals[i]
}
