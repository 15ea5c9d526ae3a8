package transfer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ticketescrow/internal/controller/apperror"
	"ticketescrow/internal/domain/dispute"
	"ticketescrow/internal/domain/gateway"
	"ticketescrow/internal/domain/order"
	"ticketescrow/internal/domain/pricing"
	"ticketescrow/internal/messaging"
	"ticketescrow/pkg/metrics"
)

// TxRepo is the transaction surface of the transfer workflow: every
// transition here touches the transfer and its order together, and an issue
// report opens the dispute in the same commit.
type TxRepo interface {
	TxTransferRepo
	order.TxOrderRepo
	dispute.TxDisputeRepo
}

type Repo interface {
	TxRepo
	InTransaction(ctx context.Context, fn func(tx TxRepo) error) error
}

type Service struct {
	repo    Repo
	rails   gateway.PaymentRails
	emitter *messaging.Emitter

	buyerResponseDeadline   time.Duration
	disputeResponseDeadline time.Duration
	buyerAutoConfirm        bool
}

func NewService(
	repo Repo,
	rails gateway.PaymentRails,
	emitter *messaging.Emitter,
	buyerResponseDeadline, disputeResponseDeadline time.Duration,
	buyerAutoConfirm bool,
) *Service {
	return &Service{
		repo:                    repo,
		rails:                   rails,
		emitter:                 emitter,
		buyerResponseDeadline:   buyerResponseDeadline,
		disputeResponseDeadline: disputeResponseDeadline,
		buyerAutoConfirm:        buyerAutoConfirm,
	}
}

// Get returns the transfer for an order, visible to its parties only.
func (s *Service) Get(ctx context.Context, orderID, actorID string) (*Transfer, error) {
	o, err := s.getOrder(ctx, s.repo, orderID)
	if err != nil {
		return nil, err
	}
	if o.BuyerID != actorID && o.SellerID != actorID {
		return nil, apperror.ErrForbidden
	}

	t, err := s.repo.GetTransferByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	if t == nil {
		return nil, apperror.ErrTransferNotFound
	}
	return t, nil
}

// SubmitProof records the seller's hand-over evidence and starts the buyer's
// response window. Seller-only; order must be confirmed.
func (s *Service) SubmitProof(ctx context.Context, orderID, actorID string, proofURLs []string, notes string) (*Transfer, error) {
	if len(proofURLs) == 0 {
		return nil, fmt.Errorf("%w: at least one proof URL is required", apperror.ErrValidation)
	}

	now := time.Now().UTC()
	buyerDeadline := now.Add(s.buyerResponseDeadline)

	err := s.repo.InTransaction(ctx, func(tx TxRepo) error {
		o, err := s.getOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if o.SellerID != actorID {
			return apperror.ErrForbidden
		}
		if !o.Status.CanTransitionTo(order.StatusTransferPending) {
			return fmt.Errorf("%w: order is %s", apperror.ErrStatusConflict, o.Status)
		}

		if err := tx.UpdateTransferStatus(ctx, orderID, StatusAwaitingProof, StatusProofSubmitted); err != nil {
			return err
		}
		if err := tx.SetProof(ctx, orderID, proofURLs, notes, now, buyerDeadline); err != nil {
			return fmt.Errorf("store proof: %w", err)
		}
		return tx.UpdateOrderStatus(ctx, orderID, order.StatusConfirmed, order.StatusTransferPending)
	})
	if err != nil {
		return nil, err
	}

	metrics.OrderTransitionsTotal.WithLabelValues(
		string(order.StatusConfirmed), string(order.StatusTransferPending), actorID).Inc()
	s.emitter.Emit(ctx, "transfer.proof_submitted", orderID, actorID, map[string]any{
		"proof_urls":        proofURLs,
		"response_deadline": buyerDeadline,
	})

	return s.repo.GetTransferByOrderID(ctx, orderID)
}

// ConfirmReceipt is the buyer accepting the hand-over: the order moves to
// transferred and the escrowed payout is released to the seller.
func (s *Service) ConfirmReceipt(ctx context.Context, orderID, actorID string) error {
	var o order.Order
	err := s.repo.InTransaction(ctx, func(tx TxRepo) error {
		var err error
		o, err = s.getOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if o.BuyerID != actorID {
			return apperror.ErrForbidden
		}
		if !o.Status.CanTransitionTo(order.StatusTransferred) {
			return fmt.Errorf("%w: order is %s", apperror.ErrStatusConflict, o.Status)
		}

		if err := tx.UpdateTransferStatus(ctx, orderID, StatusProofSubmitted, StatusConfirmed); err != nil {
			return err
		}
		if err := tx.SetBuyerActionAt(ctx, orderID, time.Now().UTC()); err != nil {
			return fmt.Errorf("record buyer action: %w", err)
		}
		return tx.UpdateOrderStatus(ctx, orderID, order.StatusTransferPending, order.StatusTransferred)
	})
	if err != nil {
		return err
	}

	metrics.OrderTransitionsTotal.WithLabelValues(
		string(order.StatusTransferPending), string(order.StatusTransferred), actorID).Inc()
	s.emitter.Emit(ctx, "transfer.confirmed", orderID, actorID, nil)

	return s.releasePayout(ctx, o, actorID)
}

// releasePayout releases escrowed funds and completes the order. The release
// is idempotent per order; if it fails the order stays in transferred and
// RetryPendingReleases drains it on the sweep interval.
func (s *Service) releasePayout(ctx context.Context, o order.Order, actor string) error {
	_, err := s.rails.Release(ctx, gateway.ReleaseRequest{
		OrderID:        o.ID,
		SellerID:       o.SellerID,
		Amount:         o.SellerPayout,
		Currency:       pricing.Currency,
		IdempotencyKey: "release-" + o.ID,
	})
	if err != nil {
		return fmt.Errorf("%w: release payout: %s", apperror.ErrExternalDependency, err)
	}

	if err := s.repo.UpdateOrderStatus(ctx, o.ID, order.StatusTransferred, order.StatusCompleted); err != nil {
		return err
	}

	metrics.OrderTransitionsTotal.WithLabelValues(
		string(order.StatusTransferred), string(order.StatusCompleted), actor).Inc()
	s.emitter.Emit(ctx, "order.completed", o.ID, actor, nil)
	return nil
}

// RetryPendingReleases re-attempts the payout for orders stuck in
// transferred because the release failed after the receipt confirmation
// committed. The idempotency key makes a duplicate release harmless.
func (s *Service) RetryPendingReleases(ctx context.Context, asOf time.Time) error {
	query, err := order.NewOrdersQueryBuilder().WithStatuses(order.StatusTransferred).Build()
	if err != nil {
		return err
	}
	stuck, err := s.repo.GetOrders(ctx, query)
	if err != nil {
		return fmt.Errorf("list transferred orders: %w", err)
	}

	for _, o := range stuck {
		if o.UpdatedAt.After(asOf) {
			// Just confirmed; the in-flight release gets first go.
			continue
		}

		slog.WarnContext(ctx, "retrying payout release", "order_id", o.ID,
			"seller_id", o.SellerID, "actor", messaging.SystemActor)
		metrics.SweepTransitionsTotal.WithLabelValues("release_retry").Inc()

		if err := s.releasePayout(ctx, o, messaging.SystemActor); err != nil {
			if errors.Is(err, apperror.ErrStatusConflict) {
				metrics.StatusConflictsTotal.WithLabelValues("order").Inc()
				continue
			}
			slog.ErrorContext(ctx, "sweep: release retry", "order_id", o.ID, "error", err)
		}
	}
	return nil
}

// ReportIssue is the buyer rejecting the hand-over: the order moves to
// disputed and a dispute opens in the same transaction, with the seller on
// the response clock.
func (s *Service) ReportIssue(ctx context.Context, orderID, actorID string, reason dispute.Reason, description string) (*dispute.Dispute, error) {
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", apperror.ErrValidation)
	}

	now := time.Now().UTC()
	var opened dispute.Dispute

	err := s.repo.InTransaction(ctx, func(tx TxRepo) error {
		o, err := s.getOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if o.BuyerID != actorID {
			return apperror.ErrForbidden
		}
		if !o.Status.CanTransitionTo(order.StatusDisputed) {
			return fmt.Errorf("%w: order is %s", apperror.ErrStatusConflict, o.Status)
		}

		if existing, err := tx.GetDisputeByOrderID(ctx, orderID); err != nil {
			return fmt.Errorf("check existing dispute: %w", err)
		} else if existing != nil {
			return fmt.Errorf("%w: dispute already open for this order", apperror.ErrStatusConflict)
		}

		if err := tx.UpdateTransferStatus(ctx, orderID, StatusProofSubmitted, StatusIssueReported); err != nil {
			return err
		}
		if err := tx.SetBuyerActionAt(ctx, orderID, now); err != nil {
			return fmt.Errorf("record buyer action: %w", err)
		}
		if err := tx.UpdateOrderStatus(ctx, orderID, order.StatusTransferPending, order.StatusDisputed); err != nil {
			return err
		}

		opened = dispute.NewFromIssueReport(o.ID, reason, description, now, now.Add(s.disputeResponseDeadline))
		if err := tx.CreateDispute(ctx, opened); err != nil {
			return fmt.Errorf("open dispute: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.OrderTransitionsTotal.WithLabelValues(
		string(order.StatusTransferPending), string(order.StatusDisputed), actorID).Inc()
	s.emitter.Emit(ctx, "dispute.opened", orderID, actorID, opened)

	return &opened, nil
}

// ExpireSellerProofTimeouts cancels orders whose seller never submitted proof
// before the deadline and refunds the buyer in full. The transfer only moves
// to cancelled once the refund lands, so a transfer whose refund failed stays
// in the expired list and the next pass retries it. Idempotent: the status
// preconditions make a second pass over a finished row a no-op.
func (s *Service) ExpireSellerProofTimeouts(ctx context.Context, asOf time.Time) error {
	expired, err := s.repo.ListAwaitingProofExpired(ctx, asOf)
	if err != nil {
		return fmt.Errorf("list expired proofs: %w", err)
	}

	for _, t := range expired {
		if !t.Status.CanTransitionTo(StatusCancelled) {
			continue
		}
		o, err := s.getOrder(ctx, s.repo, t.OrderID)
		if err != nil {
			slog.ErrorContext(ctx, "sweep: load order", "order_id", t.OrderID, "error", err)
			continue
		}

		switch o.Status {
		case order.StatusConfirmed:
			// Claim the transition first; a concurrent proof submission loses
			// the race here and we move on.
			if err := s.repo.UpdateOrderStatus(ctx, o.ID, order.StatusConfirmed, order.StatusCancelled); err != nil {
				if errors.Is(err, apperror.ErrStatusConflict) {
					metrics.StatusConflictsTotal.WithLabelValues("order").Inc()
					continue
				}
				return fmt.Errorf("cancel order %s: %w", o.ID, err)
			}

			slog.WarnContext(ctx, "seller proof deadline lapsed: order cancelled, buyer refunded",
				"order_id", o.ID, "seller_id", o.SellerID, "deadline", t.ResponseDeadline,
				"actor", messaging.SystemActor)
			metrics.SweepTransitionsTotal.WithLabelValues("seller_proof_timeout").Inc()
			s.emitter.Emit(ctx, "order.cancelled", o.ID, messaging.SystemActor, map[string]any{
				"cause": "seller_proof_timeout",
			})

		case order.StatusCancelled:
			// Claimed on an earlier pass but the refund never landed.
			slog.WarnContext(ctx, "retrying refund after seller default",
				"order_id", o.ID, "actor", messaging.SystemActor)

		default:
			metrics.StatusConflictsTotal.WithLabelValues("order").Inc()
			continue
		}

		if err := s.refundBuyer(ctx, o); err != nil {
			slog.ErrorContext(ctx, "sweep: refund after seller default", "order_id", o.ID, "error", err)
			continue
		}
		if err := s.repo.UpdateTransferStatus(ctx, o.ID, StatusAwaitingProof, StatusCancelled); err != nil {
			slog.ErrorContext(ctx, "sweep: close refunded transfer", "order_id", o.ID, "error", err)
		}
	}
	return nil
}

func (s *Service) refundBuyer(ctx context.Context, o order.Order) error {
	_, err := s.rails.Refund(ctx, gateway.RefundRequest{
		OrderID:        o.ID,
		BuyerID:        o.BuyerID,
		Amount:         o.Total,
		Currency:       pricing.Currency,
		IdempotencyKey: "refund-" + o.ID,
	})
	return err
}

// ExpireBuyerResponseTimeouts auto-confirms receipt for transfers the buyer
// ignored past their deadline. Buyer inaction favors the seller; this is
// financially significant, configurable, and loudly logged.
func (s *Service) ExpireBuyerResponseTimeouts(ctx context.Context, asOf time.Time) error {
	expired, err := s.repo.ListProofSubmittedExpired(ctx, asOf)
	if err != nil {
		return fmt.Errorf("list expired buyer responses: %w", err)
	}

	for _, t := range expired {
		if !t.Status.CanTransitionTo(StatusConfirmed) {
			continue
		}
		if !s.buyerAutoConfirm {
			slog.WarnContext(ctx, "buyer response deadline lapsed but auto-confirm is disabled",
				"order_id", t.OrderID, "deadline", t.ResponseDeadline)
			continue
		}

		var o order.Order
		err := s.repo.InTransaction(ctx, func(tx TxRepo) error {
			var err error
			o, err = s.getOrder(ctx, tx, t.OrderID)
			if err != nil {
				return err
			}
			if err := tx.UpdateTransferStatus(ctx, t.OrderID, StatusProofSubmitted, StatusConfirmed); err != nil {
				return err
			}
			return tx.UpdateOrderStatus(ctx, t.OrderID, order.StatusTransferPending, order.StatusTransferred)
		})
		if err != nil {
			if errors.Is(err, apperror.ErrStatusConflict) {
				metrics.StatusConflictsTotal.WithLabelValues("transfer").Inc()
				continue
			}
			return fmt.Errorf("auto-confirm order %s: %w", t.OrderID, err)
		}

		slog.WarnContext(ctx, "buyer response deadline lapsed: receipt auto-confirmed in seller favor",
			"order_id", o.ID, "buyer_id", o.BuyerID, "deadline", t.ResponseDeadline,
			"actor", messaging.SystemActor)
		metrics.SweepTransitionsTotal.WithLabelValues("buyer_response_timeout").Inc()
		s.emitter.Emit(ctx, "transfer.auto_confirmed", o.ID, messaging.SystemActor, nil)

		if err := s.releasePayout(ctx, o, messaging.SystemActor); err != nil {
			slog.ErrorContext(ctx, "sweep: release after auto-confirm", "order_id", o.ID, "error", err)
		}
	}
	return nil
}

func (s *Service) getOrder(ctx context.Context, repo order.TxOrderRepo, orderID string) (order.Order, error) {
	query, err := order.NewOrdersQueryBuilder().WithIDs(orderID).Build()
	if err != nil {
		return order.Order{}, err
	}
	orders, err := repo.GetOrders(ctx, query)
	if err != nil {
		return order.Order{}, fmt.Errorf("get order: %w", err)
	}
	if len(orders) == 0 {
		return order.Order{}, apperror.ErrOrderNotFound
	}
	return orders[0], nil
}
