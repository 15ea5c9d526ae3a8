package transfer

import (
	"context"
	"time"
)

//go:generate mockgen -source=repo_port.go -destination=mock_repo.go -package=transfer

type TxTransferRepo interface {
	GetTransferByOrderID(ctx context.Context, orderID string) (*Transfer, error)

	// UpdateTransferStatus applies the transition with the optimistic status
	// precondition; apperror.ErrStatusConflict when the row moved on.
	UpdateTransferStatus(ctx context.Context, orderID string, expected, next Status) error

	SetProof(ctx context.Context, orderID string, proofURLs []string, notes string, submittedAt, buyerDeadline time.Time) error
	SetBuyerActionAt(ctx context.Context, orderID string, at time.Time) error

	// Expired transfers for the deadline sweep.
	ListAwaitingProofExpired(ctx context.Context, asOf time.Time) ([]Transfer, error)
	ListProofSubmittedExpired(ctx context.Context, asOf time.Time) ([]Transfer, error)
}

type TransferRepo interface {
	TxTransferRepo
	InTransaction(ctx context.Context, fn func(tx TxTransferRepo) error) error
}
