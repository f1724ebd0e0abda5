package detector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

var (
	detectDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "eduai",
		Subsystem: "detector",
		Name:      "request_duration_seconds",
		Help:      "Duration of AI-detection requests",
	})

	detectFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "eduai",
		Subsystem: "detector",
		Name:      "request_failures_total",
		Help:      "Number of failed AI-detection requests",
	})
)

// SentenceScore is the detector's probability for one sentence.
type SentenceScore struct {
	Sentence string  `json:"sentence"`
	Score    float64 `json:"score"`
}

// Result is the detector's document-level verdict with optional sentence scores.
type Result struct {
	Score          float64         `json:"score"`
	SentenceScores []SentenceScore `json:"sentence_scores"`
}

// API describes the detection operation consumed by the facade.
type API interface {
	Detect(ctx context.Context, text string) (Result, error)
}

// Config defines configuration options for the detection client.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// Client talks to a Sapling-style AI-detection endpoint. The API key travels
// in the request body rather than a header.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  zerolog.Logger
}

// New builds a detection client from the provided configuration.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("detector base url is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("detector api key is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    httpClient,
		logger:  cfg.Logger.With().Str("component", "detector_client").Logger(),
	}, nil
}

// Detect submits text for AI-content analysis with sentence scores enabled.
func (c *Client) Detect(ctx context.Context, text string) (Result, error) {
	payload := struct {
		Key        string `json:"key"`
		Text       string `json:"text"`
		SentScores bool   `json:"sent_scores"`
	}{
		Key:        c.apiKey,
		Text:       text,
		SentScores: true,
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return Result{}, fmt.Errorf("encode detection request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/aidetect", bytes.NewReader(encoded))
	if err != nil {
		return Result{}, fmt.Errorf("build detection request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	detectDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		detectFailures.Inc()
		return Result{}, fmt.Errorf("detection request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		detectFailures.Inc()
		return Result{}, fmt.Errorf("read detection response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detectFailures.Inc()

		var failure struct {
			Msg string `json:"msg"`
		}
		if decodeErr := json.Unmarshal(body, &failure); decodeErr == nil && failure.Msg != "" {
			c.logger.Warn().Int("status", resp.StatusCode).Str("msg", failure.Msg).Msg("detector rejected request")
			return Result{}, fmt.Errorf("%s", failure.Msg)
		}
		return Result{}, fmt.Errorf("AI detection failed with status %d", resp.StatusCode)
	}

	var result Result
	if err := json.Unmarshal(body, &result); err != nil {
		detectFailures.Inc()
		return Result{}, fmt.Errorf("decode detection response: %w", err)
	}

	return result, nil
}
