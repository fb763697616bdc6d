package faceverify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Comparator scores how well a candidate photo matches a reference photo.
// Scores are 0-100. An error means the comparison could not be performed;
// it never means "no match".
type Comparator interface {
	Compare(ctx context.Context, referenceURL, candidateURL string) (float64, error)
}

// Client talks to the face comparison API over HTTP. Each call is bounded by
// the client timeout and retried with exponential backoff on transient
// failures; a 4xx response is not retried.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	maxElapsed time.Duration
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		maxElapsed: 15 * time.Second,
	}
}

type compareRequest struct {
	ReferenceURL string `json:"reference_url"`
	CandidateURL string `json:"candidate_url"`
}

type compareResponse struct {
	Confidence float64 `json:"confidence"`
}

func (c *Client) Compare(ctx context.Context, referenceURL, candidateURL string) (float64, error) {
	payload, err := json.Marshal(compareRequest{
		ReferenceURL: referenceURL,
		CandidateURL: candidateURL,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to encode compare request: %w", err)
	}

	var confidence float64
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/compare", bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			var body compareResponse
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				return backoff.Permanent(fmt.Errorf("failed to decode compare response: %w", err))
			}
			confidence = body.Confidence
			return nil
		case resp.StatusCode >= 500:
			return fmt.Errorf("face comparison API returned %d", resp.StatusCode)
		default:
			return backoff.Permanent(fmt.Errorf("face comparison API returned %d", resp.StatusCode))
		}
	}

	policy := backoff.WithContext(backoff.NewExponentialBackOff(backoff.WithMaxElapsedTime(c.maxElapsed)), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return 0, fmt.Errorf("face comparison failed: %w", err)
	}

	return confidence, nil
}
