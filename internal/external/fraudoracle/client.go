// Package fraudoracle is the HTTP client for the external fraud scoring
// service used by the verification pipeline.
package fraudoracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ticketescrow/internal/domain/verification"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

type scoreResp struct {
	Passed    bool     `json:"passed"`
	RiskScore int      `json:"risk_score"`
	Warnings  []string `json:"warnings"`
}

func (c *Client) Score(ctx context.Context, req verification.ScoreRequest) (verification.FraudCheckResult, error) {
	j, err := json.Marshal(req)
	if err != nil {
		return verification.FraudCheckResult{}, fmt.Errorf("marshal: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/score", bytes.NewReader(j))
	if err != nil {
		return verification.FraudCheckResult{}, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return verification.FraudCheckResult{}, fmt.Errorf("http: %w", err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode/100 != 2 {
		return verification.FraudCheckResult{}, fmt.Errorf("oracle %s: %s", resp.Status, string(raw))
	}

	var out scoreResp
	if err := json.Unmarshal(raw, &out); err != nil {
		return verification.FraudCheckResult{}, fmt.Errorf("unmarshal: %w", err)
	}

	return verification.FraudCheckResult{
		Passed:    out.Passed,
		RiskScore: out.RiskScore,
		Warnings:  out.Warnings,
	}, nil
}
