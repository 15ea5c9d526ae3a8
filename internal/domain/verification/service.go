package verification

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"ticketescrow/internal/controller/apperror"
	"ticketescrow/internal/domain/listing"
	"ticketescrow/internal/messaging"
)

type Service struct {
	repo    VerificationRepo
	scorer  Scorer
	emitter *messaging.Emitter
}

func NewService(repo VerificationRepo, scorer Scorer, emitter *messaging.Emitter) *Service {
	return &Service{repo: repo, scorer: scorer, emitter: emitter}
}

// ProofUpload is one artifact in an upload call.
type ProofUpload struct {
	Type string `json:"type" binding:"required"`
	URL  string `json:"url" binding:"required"`
}

// UploadProofs attaches proof artifacts to the listing's open verification
// cycle, starting a new one if none is open. The first upload moves the
// listing to pending; after a rejection this is how the seller resubmits.
func (s *Service) UploadProofs(ctx context.Context, listingID, sellerID string, uploads []ProofUpload, details *ConfirmationDetails) (*Request, error) {
	if len(uploads) == 0 {
		return nil, fmt.Errorf("%w: at least one proof is required", apperror.ErrValidation)
	}

	now := time.Now().UTC()
	proofs := make([]Proof, 0, len(uploads))
	for _, u := range uploads {
		pt, err := NewProofType(u.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperror.ErrValidation, err)
		}
		proofs = append(proofs, Proof{Type: pt, URL: u.URL, UploadedAt: now})
	}

	var requestID string
	err := s.repo.InTransaction(ctx, func(tx TxVerificationRepo) error {
		l, err := tx.GetListing(ctx, listingID)
		if err != nil {
			return err
		}
		if l.SellerID != sellerID {
			return apperror.ErrForbidden
		}

		req, err := tx.GetOpenRequestByListingID(ctx, listingID)
		if err != nil {
			return fmt.Errorf("get open request: %w", err)
		}
		if req == nil {
			created := Request{
				ID:        uuid.New().String(),
				ListingID: listingID,
				SellerID:  sellerID,
				Proofs:    proofs,
				Details:   details,
				Status:    StatusPending,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := tx.CreateRequest(ctx, created); err != nil {
				return fmt.Errorf("create request: %w", err)
			}
			requestID = created.ID
			return tx.SetListingVerificationLevel(ctx, listingID, listing.LevelPending)
		}

		requestID = req.ID
		if err := tx.AddProofs(ctx, req.ID, proofs); err != nil {
			return fmt.Errorf("add proofs: %w", err)
		}
		if details != nil {
			if err := tx.SetConfirmationDetails(ctx, req.ID, *details); err != nil {
				return fmt.Errorf("store confirmation details: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitter.Emit(ctx, "verification.proofs_uploaded", requestID, sellerID, map[string]any{
		"listing_id":  listingID,
		"proof_count": len(proofs),
	})
	return s.getRequestByID(ctx, requestID)
}

// RunFraudCheck scores the listing's open request through the oracle and
// records the result. It never changes the request status: a pass only
// unlocks submission to the human queue.
func (s *Service) RunFraudCheck(ctx context.Context, listingID, sellerID string) (*Request, error) {
	req, err := s.openRequestFor(ctx, listingID, sellerID)
	if err != nil {
		return nil, err
	}
	if req.Details == nil {
		return nil, fmt.Errorf("%w: confirmation details are required before a fraud check", apperror.ErrValidation)
	}

	l, err := s.repo.GetListing(ctx, listingID)
	if err != nil {
		return nil, err
	}

	types := make([]ProofType, 0, len(req.Proofs))
	for _, p := range req.Proofs {
		types = append(types, p.Type)
	}
	result, err := s.scorer.Score(ctx, ScoreRequest{
		ListingID:  listingID,
		SellerID:   sellerID,
		EventName:  l.EventName,
		Details:    *req.Details,
		ProofTypes: types,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: fraud check: %s", apperror.ErrExternalDependency, err)
	}
	result.CheckedAt = time.Now().UTC()

	if err := s.repo.SetFraudCheckResult(ctx, req.ID, result); err != nil {
		return nil, fmt.Errorf("store fraud check result: %w", err)
	}

	s.emitter.Emit(ctx, "verification.fraud_checked", req.ID, sellerID, map[string]any{
		"listing_id": listingID,
		"passed":     result.Passed,
		"risk_score": result.RiskScore,
	})
	return s.getRequestByID(ctx, req.ID)
}

// SubmitForReview moves the open request into the reviewer queue. All
// required proof types must be present and the fraud check must have passed.
func (s *Service) SubmitForReview(ctx context.Context, listingID, sellerID string) (*Request, error) {
	req, err := s.openRequestFor(ctx, listingID, sellerID)
	if err != nil {
		return nil, err
	}
	if req.SubmittedAt != nil {
		return nil, fmt.Errorf("%w: already submitted for review", apperror.ErrStatusConflict)
	}
	if missing := req.MissingRequiredProofs(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %v", apperror.ErrProofsMissing, missing)
	}
	if req.FraudCheck == nil {
		return nil, fmt.Errorf("%w: fraud check has not been run", apperror.ErrValidation)
	}
	if !req.FraudCheck.Passed {
		return nil, fmt.Errorf("%w: fraud check did not pass", apperror.ErrValidation)
	}

	if err := s.repo.MarkSubmitted(ctx, req.ID, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("mark submitted: %w", err)
	}

	s.emitter.Emit(ctx, "verification.submitted", req.ID, sellerID, map[string]any{"listing_id": listingID})
	return s.getRequestByID(ctx, req.ID)
}

// QueuePage is the reviewer's paginated queue, oldest submission first.
type QueuePage struct {
	Requests   []Request `json:"requests"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	Total      int       `json:"total"`
	TotalPages int       `json:"totalPages"`
}

func (s *Service) Queue(ctx context.Context, pageSize, pageNumber int) (QueuePage, error) {
	total, err := s.repo.CountQueue(ctx)
	if err != nil {
		return QueuePage{}, fmt.Errorf("count queue: %w", err)
	}
	requests, err := s.repo.ListQueue(ctx, pageSize, pageNumber)
	if err != nil {
		return QueuePage{}, fmt.Errorf("list queue: %w", err)
	}

	totalPages := (total + pageSize - 1) / pageSize
	return QueuePage{Requests: requests, Page: pageNumber, Limit: pageSize, Total: total, TotalPages: totalPages}, nil
}

// ReviewRequest is the reviewer's verdict on a queued request.
type ReviewRequest struct {
	Action string `json:"action" binding:"required,oneof=approve reject flag"`
	// Level is required on approve; one of basic, verified, premium.
	Level  string `json:"level"`
	Reason string `json:"reason"`
}

// Review applies a reviewer verdict. Approval stamps the chosen level onto
// the listing; rejection drops the listing back to unverified and closes the
// cycle so the seller can resubmit; flagging parks the request for deeper
// review without touching the listing.
func (s *Service) Review(ctx context.Context, requestID, reviewerID string, verdict ReviewRequest) (*Request, error) {
	var next Status
	var level listing.VerificationLevel
	switch verdict.Action {
	case "approve":
		level = listing.VerificationLevel(verdict.Level)
		if !slices.Contains(listing.ApprovalLevels, level) {
			return nil, fmt.Errorf("%w: approval level must be one of %v", apperror.ErrValidation, listing.ApprovalLevels)
		}
		next = StatusApproved
	case "reject":
		if verdict.Reason == "" {
			return nil, fmt.Errorf("%w: rejection reason is required", apperror.ErrValidation)
		}
		next = StatusRejected
	case "flag":
		next = StatusFlagged
	default:
		return nil, fmt.Errorf("%w: invalid action %q", apperror.ErrValidation, verdict.Action)
	}

	err := s.repo.InTransaction(ctx, func(tx TxVerificationRepo) error {
		req, err := tx.GetRequestByID(ctx, requestID)
		if err != nil {
			return fmt.Errorf("get request: %w", err)
		}
		if req == nil {
			return apperror.ErrVerificationNotFound
		}
		if req.SubmittedAt == nil {
			return fmt.Errorf("%w: request has not been submitted for review", apperror.ErrStatusConflict)
		}
		if !req.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w: request is %s", apperror.ErrStatusConflict, req.Status)
		}

		review := Review{
			Status:          next,
			RejectionReason: verdict.Reason,
			ReviewedBy:      reviewerID,
			ReviewedAt:      time.Now().UTC(),
		}
		if err := tx.SetReview(ctx, requestID, req.Status, review); err != nil {
			return err
		}

		switch next {
		case StatusApproved:
			return tx.SetListingVerificationLevel(ctx, req.ListingID, level)
		case StatusRejected:
			return tx.SetListingVerificationLevel(ctx, req.ListingID, listing.LevelUnverified)
		default:
			return nil
		}
	})
	if err != nil {
		return nil, err
	}

	s.emitter.Emit(ctx, "verification.reviewed", requestID, reviewerID, map[string]any{
		"action": verdict.Action,
		"level":  verdict.Level,
	})
	return s.getRequestByID(ctx, requestID)
}

func (s *Service) openRequestFor(ctx context.Context, listingID, sellerID string) (*Request, error) {
	req, err := s.repo.GetOpenRequestByListingID(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("get open request: %w", err)
	}
	if req == nil {
		return nil, apperror.ErrVerificationNotFound
	}
	if req.SellerID != sellerID {
		return nil, apperror.ErrForbidden
	}
	return req, nil
}

func (s *Service) getRequestByID(ctx context.Context, requestID string) (*Request, error) {
	req, err := s.repo.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("get request: %w", err)
	}
	if req == nil {
		return nil, apperror.ErrVerificationNotFound
	}
	return req, nil
}
