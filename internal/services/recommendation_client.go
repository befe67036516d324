package services

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/ZigaLarissa/EduAssist/internal/models"
	"github.com/pkg/errors"
)

// ErrNoRecommendation is returned when the recommender has no suitable resource
var ErrNoRecommendation = errors.New("no suitable resource was found for this assignment")

// Recommender suggests learning resources for homework
type Recommender interface {
	Recommend(ctx context.Context, req *models.RecommendationRequest) (*models.Recommendation, error)
}

// RecommendationClient calls the external recommendation service
type RecommendationClient struct {
	endpoint   string
	httpClient *http.Client
}

func NewRecommendationClient(baseURL string, timeout time.Duration) *RecommendationClient {
	return &RecommendationClient{
		endpoint:   baseURL + "/recommend",
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *RecommendationClient) Recommend(ctx context.Context, in *models.RecommendationRequest) (*models.Recommendation, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "call recommendation service")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNoRecommendation
	case resp.StatusCode != http.StatusOK:
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.Errorf("failed to get resource recommendation: %d %s", resp.StatusCode, bytes.TrimSpace(detail))
	}

	var rec models.Recommendation
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return nil, errors.Wrap(err, "decode recommendation")
	}
	if rec.ResourceURL == "" {
		return nil, ErrNoRecommendation
	}
	return &rec, nil
}
