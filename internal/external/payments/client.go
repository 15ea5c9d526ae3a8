// Package payments is the HTTP client for the payment provider backing the
// escrow rails. Every call carries an idempotency key so replays after a
// partial failure are safe.
package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"ticketescrow/internal/domain/gateway"
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

type holdReq struct {
	OrderID  string          `json:"order_id"`
	BuyerID  string          `json:"buyer_id"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

type holdResp struct {
	PaymentRef  string `json:"payment_ref"`
	RedirectURL string `json:"redirect_url"`
}

func (c *Client) Hold(ctx context.Context, req gateway.HoldRequest) (gateway.HoldResult, error) {
	var out holdResp
	err := c.post(ctx, "/holds", req.IdempotencyKey, holdReq{
		OrderID:  req.OrderID,
		BuyerID:  req.BuyerID,
		Amount:   req.Amount,
		Currency: req.Currency,
	}, &out)
	if err != nil {
		return gateway.HoldResult{}, err
	}
	return gateway.HoldResult{PaymentRef: out.PaymentRef, RedirectURL: out.RedirectURL}, nil
}

type captureReq struct {
	OrderID    string          `json:"order_id"`
	PaymentRef string          `json:"payment_ref"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
}

type captureResp struct {
	TxID   string `json:"tx_id"`
	Status string `json:"status"`
}

func (c *Client) Capture(ctx context.Context, req gateway.CaptureRequest) (gateway.CaptureResult, error) {
	var out captureResp
	err := c.post(ctx, "/captures", req.IdempotencyKey, captureReq{
		OrderID:    req.OrderID,
		PaymentRef: req.PaymentRef,
		Amount:     req.Amount,
		Currency:   req.Currency,
	}, &out)
	if err != nil {
		return gateway.CaptureResult{}, err
	}

	status := gateway.CaptureStatusFailed
	if out.Status == "success" {
		status = gateway.CaptureStatusSuccess
	}
	return gateway.CaptureResult{ProviderTxID: out.TxID, Status: status}, nil
}

type payoutReq struct {
	OrderID  string          `json:"order_id"`
	PartyID  string          `json:"party_id"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

type payoutResp struct {
	TxID string `json:"tx_id"`
}

func (c *Client) Release(ctx context.Context, req gateway.ReleaseRequest) (gateway.ReleaseResult, error) {
	var out payoutResp
	err := c.post(ctx, "/releases", req.IdempotencyKey, payoutReq{
		OrderID:  req.OrderID,
		PartyID:  req.SellerID,
		Amount:   req.Amount,
		Currency: req.Currency,
	}, &out)
	if err != nil {
		return gateway.ReleaseResult{}, err
	}
	return gateway.ReleaseResult{ProviderTxID: out.TxID}, nil
}

func (c *Client) Refund(ctx context.Context, req gateway.RefundRequest) (gateway.RefundResult, error) {
	var out payoutResp
	err := c.post(ctx, "/refunds", req.IdempotencyKey, payoutReq{
		OrderID:  req.OrderID,
		PartyID:  req.BuyerID,
		Amount:   req.Amount,
		Currency: req.Currency,
	}, &out)
	if err != nil {
		return gateway.RefundResult{}, err
	}
	return gateway.RefundResult{ProviderTxID: out.TxID}, nil
}

func (c *Client) post(ctx context.Context, path, idempotencyKey string, body, out any) error {
	j, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(j))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Idempotency-Key", idempotencyKey)

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return fmt.Errorf("http: %w", err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("provider %s: %s", resp.Status, string(raw))
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	return nil
}
