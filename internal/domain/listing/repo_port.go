package listing

import (
	"context"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=repo_port.go -destination=mock_repo.go -package=listing

// TxListingRepo is the listing persistence surface, usable inside or outside
// a transaction.
type TxListingRepo interface {
	GetListings(ctx context.Context, query *ListingsQuery) ([]Listing, error)
	CountListings(ctx context.Context, query *ListingsQuery) (int, error)
	CountActiveBySeller(ctx context.Context, sellerID string) (int, error)
	CreateListing(ctx context.Context, l Listing) error

	IncrementViewCount(ctx context.Context, listingID string) error
	SetVerificationLevel(ctx context.Context, listingID string, level VerificationLevel) error
	Deactivate(ctx context.Context, listingID string) error
}

type ListingRepo interface {
	TxListingRepo
	InTransaction(ctx context.Context, fn func(tx TxListingRepo) error) error
}

// SellerTier is the read-only trust profile from the reputation service.
type SellerTier struct {
	Tier              string          `json:"tier"`
	MaxAskingPrice    decimal.Decimal `json:"max_asking_price"`
	MaxActiveListings int             `json:"max_active_listings"`
}

// TierProvider resolves a seller's trust tier. Computed externally; this core
// only reads it.
type TierProvider interface {
	SellerTier(ctx context.Context, sellerID string) (SellerTier, error)
}
