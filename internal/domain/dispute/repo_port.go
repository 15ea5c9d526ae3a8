package dispute

import (
	"context"
	"time"
)

//go:generate mockgen -source=repo_port.go -destination=mock_repo.go -package=dispute

type TxDisputeRepo interface {
	GetDisputeByID(ctx context.Context, disputeID string) (*Dispute, error)
	GetDisputeByOrderID(ctx context.Context, orderID string) (*Dispute, error)
	GetDisputes(ctx context.Context, query *DisputesQuery) ([]Dispute, error)
	CountDisputes(ctx context.Context, query *DisputesQuery) (int, error)
	CreateDispute(ctx context.Context, d Dispute) error

	// UpdateDisputeStatus applies the transition only when the row still
	// holds the expected status.
	UpdateDisputeStatus(ctx context.Context, disputeID string, expected, next Status) error

	SetStatement(ctx context.Context, disputeID string, party Party, st Statement) error
	AppendEvidence(ctx context.Context, disputeID string, party Party, evidence []string) error
	SetDefaultedParty(ctx context.Context, disputeID string, party Party) error
	SetResponseDeadline(ctx context.Context, disputeID string, deadline time.Time) error
	SetResolution(ctx context.Context, disputeID string, res Resolution) error
	SetDisputeSettled(ctx context.Context, disputeID string, at time.Time) error

	// Disputes whose response deadline has lapsed, for the sweep.
	ListResponseExpired(ctx context.Context, asOf time.Time) ([]Dispute, error)

	// Resolved disputes whose refund/release never landed, for the
	// settlement retry sweep.
	ListUnsettledResolved(ctx context.Context, asOf time.Time) ([]Dispute, error)
}

type DisputeRepo interface {
	TxDisputeRepo
	InTransaction(ctx context.Context, fn func(tx TxDisputeRepo) error) error
}

// Resolution is the persisted outcome record.
type Resolution struct {
	Status     Status
	Outcome    Outcome
	Notes      string
	Allocation Allocation
	ResolvedBy string
	ResolvedAt time.Time
}

type DisputesQuery struct {
	IDs        []string
	OrderIDs   []string
	BuyerIDs   []string
	SellerIDs  []string
	Statuses   []Status
	Pagination *PaginationQuery
}

type PaginationQuery struct {
	PageSize   int
	PageNumber int
}
