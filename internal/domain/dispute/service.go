package dispute

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"ticketescrow/internal/controller/apperror"
	"ticketescrow/internal/domain/gateway"
	"ticketescrow/internal/domain/order"
	"ticketescrow/internal/domain/pricing"
	"ticketescrow/internal/messaging"
	"ticketescrow/pkg/metrics"
)

// NewFromIssueReport builds the dispute a buyer's issue report opens. The
// buyer's description is their initial statement; the seller is on the
// response clock.
func NewFromIssueReport(orderID string, reason Reason, description string, now, responseDeadline time.Time) Dispute {
	submitted := now
	return Dispute{
		ID:          uuid.New().String(),
		OrderID:     orderID,
		Reason:      reason,
		Description: description,
		OpenedBy:    PartyBuyer,
		Buyer: Statement{
			Text:        description,
			SubmittedAt: &submitted,
		},
		Status:           StatusOpen,
		ResponseDeadline: responseDeadline,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// TxRepo spans disputes and orders: a resolution moves both in one commit.
type TxRepo interface {
	TxDisputeRepo
	order.TxOrderRepo
}

type Repo interface {
	TxRepo
	InTransaction(ctx context.Context, fn func(tx TxRepo) error) error
}

type Service struct {
	repo    Repo
	rails   gateway.PaymentRails
	emitter *messaging.Emitter

	responseDeadline time.Duration
}

func NewService(repo Repo, rails gateway.PaymentRails, emitter *messaging.Emitter, responseDeadline time.Duration) *Service {
	return &Service{repo: repo, rails: rails, emitter: emitter, responseDeadline: responseDeadline}
}

func (s *Service) GetDisputeByID(ctx context.Context, disputeID string) (*Dispute, error) {
	d, err := s.repo.GetDisputeByID(ctx, disputeID)
	if err != nil {
		return nil, fmt.Errorf("get dispute: %w", err)
	}
	if d == nil {
		return nil, apperror.ErrDisputeNotFound
	}
	return d, nil
}

// GetForActor returns the dispute only to the order's parties.
func (s *Service) GetForActor(ctx context.Context, disputeID, actorID string) (*Dispute, error) {
	d, err := s.GetDisputeByID(ctx, disputeID)
	if err != nil {
		return nil, err
	}
	if _, err := s.partyOf(ctx, s.repo, d, actorID); err != nil {
		return nil, err
	}
	return d, nil
}

// Page is a paginated dispute list.
type Page struct {
	Disputes   []Dispute `json:"disputes"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	Total      int       `json:"total"`
	TotalPages int       `json:"totalPages"`
}

// ListForActor returns disputes on orders where the actor is a party.
func (s *Service) ListForActor(ctx context.Context, actorID, role string, p PaginationQuery) (Page, error) {
	query := &DisputesQuery{Pagination: &p}
	switch role {
	case "seller":
		query.SellerIDs = []string{actorID}
	default:
		query.BuyerIDs = []string{actorID}
	}

	total, err := s.repo.CountDisputes(ctx, query)
	if err != nil {
		return Page{}, fmt.Errorf("count disputes: %w", err)
	}
	disputes, err := s.repo.GetDisputes(ctx, query)
	if err != nil {
		return Page{}, fmt.Errorf("list disputes: %w", err)
	}

	totalPages := (total + p.PageSize - 1) / p.PageSize
	return Page{Disputes: disputes, Page: p.PageNumber, Limit: p.PageSize, Total: total, TotalPages: totalPages}, nil
}

// ListQueue returns unresolved disputes for reviewers.
func (s *Service) ListQueue(ctx context.Context, p PaginationQuery) (Page, error) {
	query := &DisputesQuery{
		Statuses:   []Status{StatusOpen, StatusUnderReview, StatusAwaitingSeller, StatusAwaitingBuyer, StatusEscalated},
		Pagination: &p,
	}

	total, err := s.repo.CountDisputes(ctx, query)
	if err != nil {
		return Page{}, fmt.Errorf("count dispute queue: %w", err)
	}
	disputes, err := s.repo.GetDisputes(ctx, query)
	if err != nil {
		return Page{}, fmt.Errorf("list dispute queue: %w", err)
	}

	totalPages := (total + p.PageSize - 1) / p.PageSize
	return Page{Disputes: disputes, Page: p.PageNumber, Limit: p.PageSize, Total: total, TotalPages: totalPages}, nil
}

// Respond records a party's one-off initial statement. Statements are
// write-once; further material goes through AddEvidence.
func (s *Service) Respond(ctx context.Context, disputeID, actorID, statement string, evidence []string) (*Dispute, error) {
	if statement == "" {
		return nil, fmt.Errorf("%w: statement is required", apperror.ErrValidation)
	}

	err := s.repo.InTransaction(ctx, func(tx TxRepo) error {
		d, err := tx.GetDisputeByID(ctx, disputeID)
		if err != nil {
			return fmt.Errorf("get dispute: %w", err)
		}
		if d == nil {
			return apperror.ErrDisputeNotFound
		}
		if !d.Status.AcceptsPartyInput() {
			return fmt.Errorf("%w: dispute is %s", apperror.ErrStatusConflict, d.Status)
		}

		party, err := s.partyOf(ctx, tx, d, actorID)
		if err != nil {
			return err
		}
		if d.statementOf(party).SubmittedAt != nil {
			return fmt.Errorf("%w: statement already submitted; add evidence instead", apperror.ErrStatusConflict)
		}

		now := time.Now().UTC()
		st := Statement{Text: statement, Evidence: evidence, SubmittedAt: &now}
		if err := tx.SetStatement(ctx, disputeID, party, st); err != nil {
			return fmt.Errorf("store statement: %w", err)
		}

		// The non-opening party responding moves the dispute under review.
		if d.Status == StatusOpen || d.Status == AwaitingStatus(party) {
			if err := tx.UpdateDisputeStatus(ctx, disputeID, d.Status, StatusUnderReview); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitter.Emit(ctx, "dispute.responded", disputeID, actorID, nil)
	return s.GetDisputeByID(ctx, disputeID)
}

// AddEvidence appends to a party's evidence list. Statements cannot be
// edited retroactively.
func (s *Service) AddEvidence(ctx context.Context, disputeID, actorID string, evidence []string) (*Dispute, error) {
	if len(evidence) == 0 {
		return nil, fmt.Errorf("%w: evidence is required", apperror.ErrValidation)
	}

	err := s.repo.InTransaction(ctx, func(tx TxRepo) error {
		d, err := tx.GetDisputeByID(ctx, disputeID)
		if err != nil {
			return fmt.Errorf("get dispute: %w", err)
		}
		if d == nil {
			return apperror.ErrDisputeNotFound
		}
		if !d.Status.AcceptsPartyInput() {
			return fmt.Errorf("%w: dispute is %s", apperror.ErrStatusConflict, d.Status)
		}

		party, err := s.partyOf(ctx, tx, d, actorID)
		if err != nil {
			return err
		}
		if err := tx.AppendEvidence(ctx, disputeID, party, evidence); err != nil {
			return fmt.Errorf("append evidence: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitter.Emit(ctx, "dispute.evidence_added", disputeID, actorID, nil)
	return s.GetDisputeByID(ctx, disputeID)
}

// RequestStatement is the reviewer putting one party on the response clock:
// the dispute moves to the matching awaiting status with a fresh deadline.
// Respond clears it; silence past the deadline escalates with that party
// recorded as defaulted.
func (s *Service) RequestStatement(ctx context.Context, disputeID, reviewerID string, party Party) (*Dispute, error) {
	target := AwaitingStatus(party)
	deadline := time.Now().UTC().Add(s.responseDeadline)

	err := s.repo.InTransaction(ctx, func(tx TxRepo) error {
		d, err := tx.GetDisputeByID(ctx, disputeID)
		if err != nil {
			return fmt.Errorf("get dispute: %w", err)
		}
		if d == nil {
			return apperror.ErrDisputeNotFound
		}
		if !d.Status.CanTransitionTo(target) {
			return fmt.Errorf("%w: dispute is %s", apperror.ErrStatusConflict, d.Status)
		}
		if d.statementOf(party).SubmittedAt != nil {
			return fmt.Errorf("%w: %s already submitted their statement", apperror.ErrStatusConflict, party)
		}

		if err := tx.UpdateDisputeStatus(ctx, disputeID, d.Status, target); err != nil {
			return err
		}
		return tx.SetResponseDeadline(ctx, disputeID, deadline)
	})
	if err != nil {
		return nil, err
	}

	s.emitter.Emit(ctx, "dispute.statement_requested", disputeID, reviewerID, map[string]any{
		"party":             party,
		"response_deadline": deadline,
	})
	return s.GetDisputeByID(ctx, disputeID)
}

// Resolve is the reviewer's binding decision. It validates the money split,
// persists the outcome and moves the order to its terminal status, releasing
// or refunding through the rails as the split dictates.
func (s *Service) Resolve(ctx context.Context, disputeID, reviewerID string, req ResolveRequest) (*Dispute, error) {
	targetStatus, err := req.Outcome.StatusFor()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperror.ErrValidation, err)
	}

	var (
		alloc Allocation
		o     order.Order
	)
	err = s.repo.InTransaction(ctx, func(tx TxRepo) error {
		d, err := tx.GetDisputeByID(ctx, disputeID)
		if err != nil {
			return fmt.Errorf("get dispute: %w", err)
		}
		if d == nil {
			return apperror.ErrDisputeNotFound
		}
		if !d.Status.CanTransitionTo(targetStatus) {
			return fmt.Errorf("%w: dispute is %s", apperror.ErrStatusConflict, d.Status)
		}

		o, err = s.orderOf(ctx, tx, d)
		if err != nil {
			return err
		}

		alloc, err = ResolveAllocation(req, o.Total, o.SellerPayout, o.PlatformFee)
		if err != nil {
			return err
		}

		res := Resolution{
			Status:     targetStatus,
			Outcome:    req.Outcome,
			Notes:      req.Notes,
			Allocation: alloc,
			ResolvedBy: reviewerID,
			ResolvedAt: time.Now().UTC(),
		}
		if err := tx.UpdateDisputeStatus(ctx, disputeID, d.Status, targetStatus); err != nil {
			return err
		}
		if err := tx.SetResolution(ctx, disputeID, res); err != nil {
			return fmt.Errorf("store resolution: %w", err)
		}

		return tx.UpdateOrderStatus(ctx, o.ID, order.StatusDisputed, orderStatusFor(req.Outcome))
	})
	if err != nil {
		return nil, err
	}

	metrics.DisputesResolvedTotal.WithLabelValues(string(req.Outcome)).Inc()
	metrics.OrderTransitionsTotal.WithLabelValues(
		string(order.StatusDisputed), string(orderStatusFor(req.Outcome)), reviewerID).Inc()
	s.emitter.Emit(ctx, "dispute.resolved", disputeID, reviewerID, map[string]any{
		"outcome":              req.Outcome,
		"refund_amount":        alloc.RefundAmount,
		"seller_payout_amount": alloc.SellerPayoutAmount,
	})

	s.settle(ctx, disputeID, o, alloc)

	return s.GetDisputeByID(ctx, disputeID)
}

// orderStatusFor maps a dispute outcome onto the order's terminal status:
// any outcome refunding the buyer lands on refunded, a seller-favor outcome
// completes the order, a no-allocation close cancels it.
func orderStatusFor(outcome Outcome) order.Status {
	switch outcome {
	case OutcomeSellerFavor:
		return order.StatusCompleted
	case OutcomeClosed:
		return order.StatusCancelled
	default:
		return order.StatusRefunded
	}
}

// settle moves the money after the resolution has committed and marks the
// dispute settled once every transfer landed. Rails calls are idempotent per
// order; a failure leaves settled_at unset and the settlement sweep replays
// the whole split, the recorded resolution is already binding.
func (s *Service) settle(ctx context.Context, disputeID string, o order.Order, alloc Allocation) {
	settled := true
	if alloc.RefundAmount.IsPositive() {
		if _, err := s.rails.Refund(ctx, gateway.RefundRequest{
			OrderID:        o.ID,
			BuyerID:        o.BuyerID,
			Amount:         alloc.RefundAmount,
			Currency:       pricing.Currency,
			IdempotencyKey: "refund-" + o.ID,
		}); err != nil {
			slog.ErrorContext(ctx, "refund after resolution", "dispute_id", disputeID, "order_id", o.ID, "error", err)
			settled = false
		}
	}
	if alloc.SellerPayoutAmount.IsPositive() {
		if _, err := s.rails.Release(ctx, gateway.ReleaseRequest{
			OrderID:        o.ID,
			SellerID:       o.SellerID,
			Amount:         alloc.SellerPayoutAmount,
			Currency:       pricing.Currency,
			IdempotencyKey: "release-" + o.ID,
		}); err != nil {
			slog.ErrorContext(ctx, "release after resolution", "dispute_id", disputeID, "order_id", o.ID, "error", err)
			settled = false
		}
	}
	if !settled {
		return
	}

	if err := s.repo.SetDisputeSettled(ctx, disputeID, time.Now().UTC()); err != nil {
		// The next settlement pass replays the idempotent moves and marks it.
		slog.ErrorContext(ctx, "mark dispute settled", "dispute_id", disputeID, "error", err)
	}
}

// RetrySettlements replays the money moves for resolved disputes whose
// refund or release never landed. Runs on the sweep interval until each
// settlement sticks.
func (s *Service) RetrySettlements(ctx context.Context, asOf time.Time) error {
	unsettled, err := s.repo.ListUnsettledResolved(ctx, asOf)
	if err != nil {
		return fmt.Errorf("list unsettled disputes: %w", err)
	}

	for _, d := range unsettled {
		o, err := s.orderOf(ctx, s.repo, &d)
		if err != nil {
			slog.ErrorContext(ctx, "sweep: load resolved order", "dispute_id", d.ID, "error", err)
			continue
		}

		slog.WarnContext(ctx, "retrying dispute settlement",
			"dispute_id", d.ID, "order_id", o.ID, "outcome", d.Resolution,
			"actor", messaging.SystemActor)
		metrics.SweepTransitionsTotal.WithLabelValues("settlement_retry").Inc()

		s.settle(ctx, d.ID, o, d.SettlementAllocation())
	}
	return nil
}

// ExpireResponseTimeouts escalates disputes whose awaited party never
// responded. The non-responder is recorded so the reviewer weighs their case
// accordingly. Idempotent via the status precondition.
func (s *Service) ExpireResponseTimeouts(ctx context.Context, asOf time.Time) error {
	expired, err := s.repo.ListResponseExpired(ctx, asOf)
	if err != nil {
		return fmt.Errorf("list expired disputes: %w", err)
	}

	for _, d := range expired {
		defaulted, onClock := d.Status.AwaitingParty()
		if !onClock {
			// An open dispute keeps the non-opener on the initial clock.
			defaulted = d.OpenedBy.Other()
			if d.statementOf(defaulted).SubmittedAt != nil {
				// They responded; the deadline only guards silence.
				continue
			}
		}

		err := s.repo.InTransaction(ctx, func(tx TxRepo) error {
			if err := tx.UpdateDisputeStatus(ctx, d.ID, d.Status, StatusEscalated); err != nil {
				return err
			}
			return tx.SetDefaultedParty(ctx, d.ID, defaulted)
		})
		if err != nil {
			if errors.Is(err, apperror.ErrStatusConflict) {
				metrics.StatusConflictsTotal.WithLabelValues("dispute").Inc()
				continue
			}
			return fmt.Errorf("escalate dispute %s: %w", d.ID, err)
		}

		slog.WarnContext(ctx, "dispute response deadline lapsed: escalated",
			"dispute_id", d.ID, "order_id", d.OrderID, "defaulted_party", defaulted,
			"actor", messaging.SystemActor)
		metrics.SweepTransitionsTotal.WithLabelValues("dispute_response_timeout").Inc()
		s.emitter.Emit(ctx, "dispute.escalated", d.ID, messaging.SystemActor, map[string]any{
			"defaulted_party": defaulted,
		})
	}
	return nil
}

func (d *Dispute) statementOf(p Party) Statement {
	if p == PartySeller {
		return d.Seller
	}
	return d.Buyer
}

// partyOf resolves which side of the disputed order the actor is, or
// forbids.
func (s *Service) partyOf(ctx context.Context, repo order.TxOrderRepo, d *Dispute, actorID string) (Party, error) {
	o, err := s.orderOf(ctx, repo, d)
	if err != nil {
		return "", err
	}
	switch actorID {
	case o.BuyerID:
		return PartyBuyer, nil
	case o.SellerID:
		return PartySeller, nil
	default:
		return "", apperror.ErrForbidden
	}
}

func (s *Service) orderOf(ctx context.Context, repo order.TxOrderRepo, d *Dispute) (order.Order, error) {
	query, err := order.NewOrdersQueryBuilder().WithIDs(d.OrderID).Build()
	if err != nil {
		return order.Order{}, err
	}
	orders, err := repo.GetOrders(ctx, query)
	if err != nil {
		return order.Order{}, fmt.Errorf("get disputed order: %w", err)
	}
	if len(orders) == 0 {
		return order.Order{}, apperror.ErrOrderNotFound
	}
	return orders[0], nil
}
