package order

import (
	"context"
	"time"

	"ticketescrow/internal/domain/listing"
)

//go:generate mockgen -source=repo_port.go -destination=mock_repo.go -package=order

// TxOrderRepo is the order persistence surface, usable inside or outside a
// transaction. Purchase spans the orders, listings and transfers tables, so
// the inventory reservation and transfer creation live here rather than in
// the listing repo.
type TxOrderRepo interface {
	GetOrders(ctx context.Context, query *OrdersQuery) ([]Order, error)
	CountOrders(ctx context.Context, query *OrdersQuery) (int, error)
	CreateOrder(ctx context.Context, o Order) error

	// UpdateOrderStatus applies the transition only when the row still holds
	// the expected status; returns apperror.ErrStatusConflict otherwise.
	UpdateOrderStatus(ctx context.Context, orderID string, expected, next Status) error

	SetPaymentRef(ctx context.Context, orderID, paymentRef string) error

	// GetListingForUpdate locks the listing row for the purchase transaction.
	GetListingForUpdate(ctx context.Context, listingID string) (listing.Listing, error)

	// DecrementListingQuantity atomically reserves qty tickets; returns
	// apperror.ErrOversell when availability is insufficient. Listings that
	// hit zero are deactivated in the same statement.
	DecrementListingQuantity(ctx context.Context, listingID string, qty int) error
	RestoreListingQuantity(ctx context.Context, listingID string, qty int) error

	// OpenTransferWindow creates the hand-over record for a freshly confirmed
	// order, with the seller's proof deadline started.
	OpenTransferWindow(ctx context.Context, orderID string, deadline time.Time) error

	CreateMessage(ctx context.Context, m Message) error
	GetMessages(ctx context.Context, orderID string) ([]Message, error)
}

type OrderRepo interface {
	TxOrderRepo
	InTransaction(ctx context.Context, fn func(tx TxOrderRepo) error) error
}
