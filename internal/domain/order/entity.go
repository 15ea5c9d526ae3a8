package order

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Order is one escrowed purchase of a listing. Financial fields are fixed at
// purchase time and never reprice.
type Order struct {
	ID                 string          `json:"order_id"`
	ListingID          string          `json:"listing_id"`
	BuyerID            string          `json:"buyer_id"`
	SellerID           string          `json:"seller_id"` // denormalized from listing at purchase time
	Quantity           int             `json:"quantity"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	PlatformFee        decimal.Decimal `json:"platform_fee"`
	BuyerProtectionFee decimal.Decimal `json:"buyer_protection_fee"`
	Total              decimal.Decimal `json:"total"`
	SellerPayout       decimal.Decimal `json:"seller_payout"`
	Status             Status          `json:"status"`
	PaymentRef         string          `json:"-"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

type Status string

const (
	StatusPending         Status = "pending"
	StatusConfirmed       Status = "confirmed"
	StatusTransferPending Status = "transfer_pending"
	StatusTransferred     Status = "transferred"
	StatusCompleted       Status = "completed"
	StatusDisputed        Status = "disputed"
	StatusRefunded        Status = "refunded"
	StatusCancelled       Status = "cancelled"
)

var AvailableStatuses = []Status{
	StatusPending, StatusConfirmed, StatusTransferPending, StatusTransferred,
	StatusCompleted, StatusDisputed, StatusRefunded, StatusCancelled,
}

// CanTransitionTo encodes the legal escrow transitions. Anything else is a
// conflict, never a silent no-op.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return slices.Contains([]Status{StatusConfirmed, StatusCancelled}, next)
	case StatusConfirmed:
		return slices.Contains([]Status{StatusTransferPending, StatusCancelled}, next)
	case StatusTransferPending:
		return slices.Contains([]Status{StatusTransferred, StatusDisputed}, next)
	case StatusTransferred:
		return next == StatusCompleted
	case StatusDisputed:
		return slices.Contains([]Status{StatusRefunded, StatusCompleted, StatusCancelled}, next)
	default:
		// completed, refunded, cancelled are terminal
		return false
	}
}

// IsTerminal reports whether no further transition is legal.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusRefunded, StatusCancelled:
		return true
	default:
		return false
	}
}

func NewStatus(raw string) (Status, error) {
	if slices.Contains(AvailableStatuses, Status(raw)) {
		return Status(raw), nil
	}
	return "", fmt.Errorf("invalid order status: %q", raw)
}

// Message is one entry of the free-text thread attached to an order.
// Append-only, visible to both parties.
type Message struct {
	ID       string    `json:"message_id"`
	OrderID  string    `json:"order_id"`
	SenderID string    `json:"sender_id"`
	Body     string    `json:"body"`
	SentAt   time.Time `json:"sent_at"`
}

type Pagination struct {
	PageSize   int
	PageNumber int
}

type OrdersQuery struct {
	IDs        []string
	BuyerIDs   []string
	SellerIDs  []string
	Statuses   []Status
	Pagination *Pagination
	SortBy     *string
	SortOrder  *string
}

func (q *OrdersQuery) Validate() error {
	if q.SortBy != nil && *q.SortBy != "created_at" && *q.SortBy != "updated_at" {
		return fmt.Errorf("invalid sort by: %s", *q.SortBy)
	}
	if q.SortOrder != nil && *q.SortOrder != "asc" && *q.SortOrder != "desc" {
		return fmt.Errorf("invalid sort order: %s", *q.SortOrder)
	}
	return nil
}

type OrdersQueryBuilder struct {
	query *OrdersQuery
}

func NewOrdersQueryBuilder() *OrdersQueryBuilder {
	return &OrdersQueryBuilder{query: &OrdersQuery{}}
}

func (b *OrdersQueryBuilder) Build() (*OrdersQuery, error) {
	if err := b.query.Validate(); err != nil {
		return nil, err
	}
	return b.query, nil
}

func (b *OrdersQueryBuilder) WithIDs(ids ...string) *OrdersQueryBuilder {
	b.query.IDs = ids
	return b
}

func (b *OrdersQueryBuilder) WithBuyerIDs(buyerIDs ...string) *OrdersQueryBuilder {
	b.query.BuyerIDs = buyerIDs
	return b
}

func (b *OrdersQueryBuilder) WithSellerIDs(sellerIDs ...string) *OrdersQueryBuilder {
	b.query.SellerIDs = sellerIDs
	return b
}

func (b *OrdersQueryBuilder) WithStatuses(statuses ...Status) *OrdersQueryBuilder {
	b.query.Statuses = statuses
	return b
}

func (b *OrdersQueryBuilder) WithSort(sortBy, sortOrder string) *OrdersQueryBuilder {
	b.query.SortBy = &sortBy
	b.query.SortOrder = &sortOrder
	return b
}

func (b *OrdersQueryBuilder) WithPagination(p Pagination) *OrdersQueryBuilder {
	b.query.Pagination = &p
	return b
}
