// Package gateway defines the port to the payment rails. The provider is
// opaque to the escrow core: it can hold, capture, release and refund.
package gateway

import (
	"context"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=port.go -destination=mock_gateway.go -package=gateway

type HoldRequest struct {
	OrderID        string
	BuyerID        string
	Amount         decimal.Decimal
	Currency       string
	IdempotencyKey string
}

type HoldResult struct {
	PaymentRef  string
	RedirectURL string
}

type CaptureRequest struct {
	OrderID        string
	PaymentRef     string
	Amount         decimal.Decimal
	Currency       string
	IdempotencyKey string
}

type CaptureStatus string

const (
	CaptureStatusSuccess CaptureStatus = "success"
	CaptureStatusFailed  CaptureStatus = "failed"
)

type CaptureResult struct {
	ProviderTxID string
	Status       CaptureStatus
}

type ReleaseRequest struct {
	OrderID        string
	SellerID       string
	Amount         decimal.Decimal
	Currency       string
	IdempotencyKey string
}

type ReleaseResult struct {
	ProviderTxID string
}

type RefundRequest struct {
	OrderID        string
	BuyerID        string
	Amount         decimal.Decimal
	Currency       string
	IdempotencyKey string
}

type RefundResult struct {
	ProviderTxID string
}

// PaymentRails is the escrow-side view of the payment provider.
type PaymentRails interface {
	Hold(ctx context.Context, req HoldRequest) (HoldResult, error)
	Capture(ctx context.Context, req CaptureRequest) (CaptureResult, error)
	Release(ctx context.Context, req ReleaseRequest) (ReleaseResult, error)
	Refund(ctx context.Context, req RefundRequest) (RefundResult, error)
}
