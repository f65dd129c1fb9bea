package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// Client talks to the model-serving process over HTTP. The model itself is
// an opaque artifact; this client only knows the serving contract: GET
// /features for the trained column names and POST /predict for inference.
type Client struct {
	httpClient *http.Client
	baseURL    string

	namesOnce sync.Once
	names     []string
}

// NewClient creates a model client for a serving endpoint such as
// "http://localhost:8501".
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
	}
}

type featuresResponse struct {
	Features []string `json:"features"`
}

type predictRequest struct {
	Columns []string    `json:"columns"`
	Rows    [][]float64 `json:"rows"`
}

type predictResponse struct {
	Predictions []float64 `json:"predictions"`
}

// FeatureNames fetches the model's expected column names once and caches
// them. A serving process that does not expose its schema yields nil, and
// callers fall back to the natural column layout.
func (c *Client) FeatureNames() []string {
	c.namesOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/features", nil)
		if err != nil {
			return
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return
		}

		var fr featuresResponse
		if err := json.NewDecoder(resp.Body).Decode(&fr); err != nil {
			return
		}
		c.names = fr.Features
	})
	return c.names
}

// Predict sends the feature matrix to the serving process and returns one
// normalized value per row.
func (c *Client) Predict(ctx context.Context, m *Matrix) ([]float64, error) {
	payload, err := json.Marshal(predictRequest{Columns: m.Columns, Rows: m.Rows})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/predict", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling model: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("model returned status %d: %s", resp.StatusCode, string(body))
	}

	var pr predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if len(pr.Predictions) != len(m.Rows) {
		return nil, fmt.Errorf("model returned %d predictions for %d rows", len(pr.Predictions), len(m.Rows))
	}

	return pr.Predictions, nil
}
