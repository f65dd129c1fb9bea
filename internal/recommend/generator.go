package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"
)

// TextClient asks a generative-text API for energy-saving advice. The
// recommendation path is decorative: missing credentials or any upstream
// failure produce a single explanatory line, never an error.
type TextClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewTextClient creates a client for a text-generation endpoint.
func NewTextClient(baseURL, apiKey string) *TextClient {
	return &TextClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Text string `json:"text"`
}

// Lines sends a prompt and splits the generated text into display lines.
func (c *TextClient) Lines(ctx context.Context, prompt string) []string {
	if c.apiKey == "" {
		return []string{"Recommendations are unavailable: no text-generation API key is configured."}
	}

	payload, err := json.Marshal(generateRequest{Prompt: prompt})
	if err != nil {
		return fallbackLines()
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return fallbackLines()
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("recommendation fetch failed: %v", err)
		return fallbackLines()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("recommendation service returned status %d", resp.StatusCode)
		return fallbackLines()
	}

	var gr generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return fallbackLines()
	}

	return SplitLines(gr.Text)
}

func fallbackLines() []string {
	return []string{"Recommendations are unavailable right now."}
}

// SplitLines breaks generated text into trimmed, non-empty display lines.
func SplitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return fallbackLines()
	}
	return lines
}

// Tips returns rule-based advice keyed off total predicted consumption,
// used when no text-generation client is configured.
func Tips(totalKWh float64) []string {
	tips := []string{}
	if totalKWh > 100 {
		tips = append(tips, "Use energy-efficient appliances.")
	}
	if totalKWh > 200 {
		tips = append(tips, "Shift usage to off-peak hours.")
	}
	if len(tips) == 0 {
		tips = append(tips, "Your predicted consumption looks efficient.")
	}
	return tips
}
