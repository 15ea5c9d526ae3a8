package verification

import (
	"context"
	"time"

	"ticketescrow/internal/domain/listing"
)

//go:generate mockgen -source=repo_port.go -destination=mock_repo.go -package=verification

// TxVerificationRepo is the verification persistence surface. Review spans
// the verification_requests and listings tables, so the listing level write
// lives here too.
type TxVerificationRepo interface {
	GetRequestByID(ctx context.Context, requestID string) (*Request, error)
	// GetOpenRequestByListingID returns the listing's current cycle, nil when
	// none is open (never started, or the last one was rejected/approved).
	GetOpenRequestByListingID(ctx context.Context, listingID string) (*Request, error)
	CreateRequest(ctx context.Context, r Request) error

	AddProofs(ctx context.Context, requestID string, proofs []Proof) error
	SetConfirmationDetails(ctx context.Context, requestID string, details ConfirmationDetails) error
	SetFraudCheckResult(ctx context.Context, requestID string, result FraudCheckResult) error
	MarkSubmitted(ctx context.Context, requestID string, at time.Time) error

	// SetReview applies the reviewer verdict only when the row still holds
	// the expected status; returns apperror.ErrStatusConflict otherwise.
	SetReview(ctx context.Context, requestID string, expected Status, review Review) error

	// Submitted open requests ordered by submission time, oldest first.
	ListQueue(ctx context.Context, pageSize, pageNumber int) ([]Request, error)
	CountQueue(ctx context.Context) (int, error)

	GetListing(ctx context.Context, listingID string) (listing.Listing, error)
	SetListingVerificationLevel(ctx context.Context, listingID string, level listing.VerificationLevel) error
}

type VerificationRepo interface {
	TxVerificationRepo
	InTransaction(ctx context.Context, fn func(tx TxVerificationRepo) error) error
}

// Review is the persisted reviewer verdict.
type Review struct {
	Status          Status
	RejectionReason string
	ReviewedBy      string
	ReviewedAt      time.Time
}

// Scorer is the external fraud oracle.
type Scorer interface {
	Score(ctx context.Context, req ScoreRequest) (FraudCheckResult, error)
}

// ScoreRequest is what the oracle sees: the listing, the claimed purchase
// record and which proof artifacts were provided.
type ScoreRequest struct {
	ListingID  string              `json:"listing_id"`
	SellerID   string              `json:"seller_id"`
	EventName  string              `json:"event_name"`
	Details    ConfirmationDetails `json:"confirmation_details"`
	ProofTypes []ProofType         `json:"proof_types"`
}
