package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// TariffClient queries a remote utility bill calculator. This is the legacy
// bill-amount path: when it is configured it replaces the local schedule,
// and any failure degrades to 0 for that period rather than failing the
// request.
type TariffClient struct {
	httpClient *http.Client
	baseURL    string
	purpose    string
	frequency  string
}

// NewTariffClient creates a client for a remote tariff service.
// Purpose is the utility's tariff/purpose code (e.g. "domestic"),
// frequency the billing cycle (e.g. "bimonthly").
func NewTariffClient(baseURL, purpose, frequency string) *TariffClient {
	return &TariffClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		purpose:    purpose,
		frequency:  frequency,
	}
}

type tariffResponse struct {
	Error      bool    `json:"error"`
	TotalValue float64 `json:"totalValue"`
}

// BillAmount asks the remote service for the bill over a number of units.
// Every failure path returns 0; the prediction itself must not fail because
// a tariff lookup did.
func (c *TariffClient) BillAmount(ctx context.Context, units float64, phase Phase) float64 {
	params := url.Values{}
	params.Add("purpose", c.purpose)
	params.Add("frequency", c.frequency)
	params.Add("units", strconv.FormatFloat(units, 'f', 2, 64))
	params.Add("phase", string(phase))

	fullURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", fullURL, nil)
	if err != nil {
		log.Printf("tariff request failed: %v", err)
		return 0
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("tariff fetch failed: %v", err)
		return 0
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("tariff service returned status %d", resp.StatusCode)
		return 0
	}

	var tr tariffResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		log.Printf("decoding tariff response: %v", err)
		return 0
	}
	if tr.Error {
		log.Printf("tariff service reported an error for %.2f units", units)
		return 0
	}

	return tr.TotalValue
}
