package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/reviewhub/reviews-backend/internal/metrics"
	"github.com/reviewhub/reviews-backend/internal/models"
	"github.com/reviewhub/reviews-backend/pkg/logger"
)

// SentimentAnalyzer classifies review text. Implementations must never
// fail the caller: classification is best-effort and a degraded result
// is an unknown label, not an error.
type SentimentAnalyzer interface {
	Analyze(ctx context.Context, text string) models.Sentiment
}

// SentimentClient calls the external classifier over HTTP with a
// bounded timeout. Any timeout, transport error, non-200 status or
// malformed body degrades to {unknown, nil} so review submission never
// depends on the classifier's uptime.
type SentimentClient struct {
	baseURL string
	apiKey  string
	hc      *http.Client
}

func NewSentimentClient(baseURL, apiKey string, timeout time.Duration) *SentimentClient {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &SentimentClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		hc:      &http.Client{Timeout: timeout},
	}
}

type analyzeRequest struct {
	Text string `json:"text"`
}

func (c *SentimentClient) Analyze(ctx context.Context, text string) models.Sentiment {
	result, err := c.analyze(ctx, text)
	if err != nil {
		logger.Warn("sentiment classification degraded: ", err)
		metrics.SentimentRequests.WithLabelValues("degraded").Inc()
		return models.Sentiment{Label: models.SentimentUnknown}
	}
	metrics.SentimentRequests.WithLabelValues("ok").Inc()
	return result
}

func (c *SentimentClient) analyze(ctx context.Context, text string) (models.Sentiment, error) {
	body, err := json.Marshal(analyzeRequest{Text: text})
	if err != nil {
		return models.Sentiment{}, fmt.Errorf("encode request: %w", err)
	}

	url := fmt.Sprintf("%s/analyze", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return models.Sentiment{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Internal-API-Key", c.apiKey)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return models.Sentiment{}, fmt.Errorf("call classifier: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Sentiment{}, fmt.Errorf("classifier status %d", resp.StatusCode)
	}

	var result models.Sentiment
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return models.Sentiment{}, fmt.Errorf("decode response: %w", err)
	}

	switch result.Label {
	case models.SentimentPositive, models.SentimentNeutral, models.SentimentNegative:
		return result, nil
	}
	return models.Sentiment{}, fmt.Errorf("classifier returned unrecognized label %q", result.Label)
}
