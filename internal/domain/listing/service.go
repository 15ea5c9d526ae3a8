package listing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"ticketescrow/internal/controller/apperror"
	"ticketescrow/internal/domain/pricing"
	"ticketescrow/internal/messaging"
)

type Service struct {
	repo    ListingRepo
	tiers   TierProvider
	emitter *messaging.Emitter

	maxActivePerSeller int
}

func NewService(repo ListingRepo, tiers TierProvider, emitter *messaging.Emitter, maxActivePerSeller int) *Service {
	return &Service{
		repo:               repo,
		tiers:              tiers,
		emitter:            emitter,
		maxActivePerSeller: maxActivePerSeller,
	}
}

// Create validates pricing against the markup ceiling and the seller's tier
// ceiling, enforces the active-listing quota, and persists the listing.
func (s *Service) Create(ctx context.Context, req NewListing) (Listing, error) {
	quote, err := pricing.Compute(req.OriginalPrice, req.AskingPrice, int64(req.Quantity))
	if err != nil {
		return Listing{}, fmt.Errorf("%w: %s", apperror.ErrValidation, err)
	}
	if quote.IsOverLimit {
		return Listing{}, fmt.Errorf("%w: markup %s%%, max allowed price %s",
			apperror.ErrMarkupTooHigh, quote.MarkupPct, quote.MaxAllowedPrice)
	}

	tier, err := s.tiers.SellerTier(ctx, req.SellerID)
	if err != nil {
		return Listing{}, fmt.Errorf("%w: resolve seller tier: %s", apperror.ErrExternalDependency, err)
	}
	if tier.MaxAskingPrice.IsPositive() && req.AskingPrice.GreaterThan(tier.MaxAskingPrice) {
		return Listing{}, fmt.Errorf("%w: tier %s allows up to %s",
			apperror.ErrPriceOverTier, tier.Tier, tier.MaxAskingPrice)
	}

	quota := s.maxActivePerSeller
	if tier.MaxActiveListings > 0 && tier.MaxActiveListings < quota {
		quota = tier.MaxActiveListings
	}

	now := time.Now().UTC()
	created := Listing{
		ID:                uuid.New().String(),
		SellerID:          req.SellerID,
		EventName:         req.EventName,
		Venue:             req.Venue,
		EventDate:         req.EventDate,
		TicketType:        req.TicketType,
		Quantity:          req.Quantity,
		OriginalPrice:     req.OriginalPrice,
		AskingPrice:       req.AskingPrice,
		VerificationLevel: LevelUnverified,
		Active:            true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err = s.repo.InTransaction(ctx, func(tx TxListingRepo) error {
		active, err := tx.CountActiveBySeller(ctx, req.SellerID)
		if err != nil {
			return fmt.Errorf("count active listings: %w", err)
		}
		if active >= quota {
			return fmt.Errorf("%w: %d active, quota %d", apperror.ErrQuotaExceeded, active, quota)
		}
		if err := tx.CreateListing(ctx, created); err != nil {
			return fmt.Errorf("create listing: %w", err)
		}
		return nil
	})
	if err != nil {
		return Listing{}, err
	}

	s.emitter.Emit(ctx, "listing.created", created.ID, req.SellerID, created)
	return created, nil
}

// Page is a paginated search result.
type Page struct {
	Listings   []Listing `json:"listings"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	Total      int       `json:"total"`
	TotalPages int       `json:"totalPages"`
}

func (s *Service) Search(ctx context.Context, query ListingsQuery) (Page, error) {
	if query.Pagination == nil {
		query.Pagination = &Pagination{PageSize: 20, PageNumber: 1}
	}

	total, err := s.repo.CountListings(ctx, &query)
	if err != nil {
		return Page{}, fmt.Errorf("count listings: %w", err)
	}

	listings, err := s.repo.GetListings(ctx, &query)
	if err != nil {
		return Page{}, fmt.Errorf("search listings: %w", err)
	}

	totalPages := (total + query.Pagination.PageSize - 1) / query.Pagination.PageSize
	return Page{
		Listings:   listings,
		Page:       query.Pagination.PageNumber,
		Limit:      query.Pagination.PageSize,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// Get returns one listing and counts the view.
func (s *Service) Get(ctx context.Context, listingID string) (Listing, error) {
	l, err := getListingByID(ctx, s.repo, listingID)
	if err != nil {
		return Listing{}, err
	}

	if err := s.repo.IncrementViewCount(ctx, listingID); err != nil {
		// View counting is best-effort.
		slog.WarnContext(ctx, "increment view count", "listing_id", listingID, "error", err)
	}
	return l, nil
}

// Withdraw deactivates a listing. Only the owning seller may withdraw.
func (s *Service) Withdraw(ctx context.Context, listingID, sellerID string) error {
	err := s.repo.InTransaction(ctx, func(tx TxListingRepo) error {
		l, err := getListingByID(ctx, tx, listingID)
		if err != nil {
			return err
		}
		if l.SellerID != sellerID {
			return apperror.ErrForbidden
		}
		if !l.Active {
			return fmt.Errorf("%w: listing already inactive", apperror.ErrStatusConflict)
		}
		if err := tx.Deactivate(ctx, listingID); err != nil {
			return fmt.Errorf("deactivate listing: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.emitter.Emit(ctx, "listing.withdrawn", listingID, sellerID, nil)
	return nil
}

// SetVerificationLevel is called by the verification pipeline only.
func (s *Service) SetVerificationLevel(ctx context.Context, listingID string, level VerificationLevel) error {
	if err := s.repo.SetVerificationLevel(ctx, listingID, level); err != nil {
		return fmt.Errorf("set verification level: %w", err)
	}
	return nil
}

func getListingByID(ctx context.Context, repo TxListingRepo, id string) (Listing, error) {
	query, err := NewListingsQueryBuilder().WithIDs(id).Build()
	if err != nil {
		return Listing{}, err
	}

	listings, err := repo.GetListings(ctx, query)
	if err != nil {
		return Listing{}, fmt.Errorf("get listing: %w", err)
	}
	if len(listings) == 0 {
		return Listing{}, apperror.ErrListingNotFound
	}
	return listings[0], nil
}
