package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"ticketescrow/internal/controller/apperror"
	"ticketescrow/internal/domain/gateway"
	"ticketescrow/internal/domain/listing"
	"ticketescrow/internal/domain/pricing"
	"ticketescrow/internal/messaging"
	"ticketescrow/pkg/metrics"
)

type Service struct {
	repo    OrderRepo
	tiers   listing.TierProvider
	rails   gateway.PaymentRails
	emitter *messaging.Emitter

	transferProofDeadline time.Duration
	pendingOrderTTL       time.Duration
}

func NewService(
	repo OrderRepo,
	tiers listing.TierProvider,
	rails gateway.PaymentRails,
	emitter *messaging.Emitter,
	transferProofDeadline, pendingOrderTTL time.Duration,
) *Service {
	return &Service{
		repo:                  repo,
		tiers:                 tiers,
		rails:                 rails,
		emitter:               emitter,
		transferProofDeadline: transferProofDeadline,
		pendingOrderTTL:       pendingOrderTTL,
	}
}

// PurchaseResult is returned to the buyer so the client can complete payment.
type PurchaseResult struct {
	Order       Order  `json:"order"`
	PaymentRef  string `json:"payment_ref"`
	RedirectURL string `json:"redirect_url"`
}

// Purchase creates an escrow order in pending and places a payment hold.
// Quantity is reserved atomically against the listing, so two concurrent
// purchases of the last ticket produce one order and one oversell rejection.
func (s *Service) Purchase(ctx context.Context, buyerID, listingID string, quantity int) (PurchaseResult, error) {
	if quantity < 1 {
		return PurchaseResult{}, fmt.Errorf("%w: quantity must be at least 1", apperror.ErrValidation)
	}

	var created Order
	err := s.repo.InTransaction(ctx, func(tx TxOrderRepo) error {
		l, err := tx.GetListingForUpdate(ctx, listingID)
		if err != nil {
			return err
		}
		if !l.Active {
			return fmt.Errorf("%w: listing is not active", apperror.ErrValidation)
		}
		if l.SellerID == buyerID {
			return fmt.Errorf("%w: sellers cannot buy their own listing", apperror.ErrValidation)
		}

		quote, err := pricing.Compute(l.OriginalPrice, l.AskingPrice, int64(quantity))
		if err != nil {
			return fmt.Errorf("%w: %s", apperror.ErrValidation, err)
		}
		if quote.IsOverLimit {
			return fmt.Errorf("%w: max allowed price %s", apperror.ErrMarkupTooHigh, quote.MaxAllowedPrice)
		}

		tier, err := s.tiers.SellerTier(ctx, l.SellerID)
		if err != nil {
			return fmt.Errorf("%w: resolve seller tier: %s", apperror.ErrExternalDependency, err)
		}
		if tier.MaxAskingPrice.IsPositive() && l.AskingPrice.GreaterThan(tier.MaxAskingPrice) {
			return fmt.Errorf("%w: tier %s allows up to %s", apperror.ErrPriceOverTier, tier.Tier, tier.MaxAskingPrice)
		}

		if err := tx.DecrementListingQuantity(ctx, listingID, quantity); err != nil {
			if errors.Is(err, apperror.ErrOversell) {
				metrics.OversellRejectionsTotal.Inc()
			}
			return err
		}

		now := time.Now().UTC()
		created = Order{
			ID:                 uuid.New().String(),
			ListingID:          l.ID,
			BuyerID:            buyerID,
			SellerID:           l.SellerID,
			Quantity:           quantity,
			Subtotal:           quote.Subtotal,
			PlatformFee:        quote.PlatformFee,
			BuyerProtectionFee: quote.BuyerProtectionFee,
			Total:              quote.BuyerTotal,
			SellerPayout:       quote.SellerReceives,
			Status:             StatusPending,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if err := tx.CreateOrder(ctx, created); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		return nil
	})
	if err != nil {
		return PurchaseResult{}, err
	}

	hold, err := s.rails.Hold(ctx, gateway.HoldRequest{
		OrderID:        created.ID,
		BuyerID:        buyerID,
		Amount:         created.Total,
		Currency:       pricing.Currency,
		IdempotencyKey: "hold-" + created.ID,
	})
	if err != nil {
		// The hold never happened: release the reservation and void the order
		// so no inconsistent pending order survives the provider failure.
		if compErr := s.compensateFailedHold(ctx, created); compErr != nil {
			slog.ErrorContext(ctx, "compensate failed hold", "order_id", created.ID, "error", compErr)
		}
		return PurchaseResult{}, fmt.Errorf("%w: payment hold: %s", apperror.ErrExternalDependency, err)
	}

	if err := s.repo.SetPaymentRef(ctx, created.ID, hold.PaymentRef); err != nil {
		return PurchaseResult{}, fmt.Errorf("store payment ref: %w", err)
	}

	metrics.OrderTransitionsTotal.WithLabelValues("", string(StatusPending), buyerID).Inc()
	s.emitter.Emit(ctx, "order.created", created.ID, buyerID, created)

	return PurchaseResult{Order: created, PaymentRef: hold.PaymentRef, RedirectURL: hold.RedirectURL}, nil
}

func (s *Service) compensateFailedHold(ctx context.Context, o Order) error {
	return s.repo.InTransaction(ctx, func(tx TxOrderRepo) error {
		if err := tx.UpdateOrderStatus(ctx, o.ID, StatusPending, StatusCancelled); err != nil {
			return err
		}
		return tx.RestoreListingQuantity(ctx, o.ListingID, o.Quantity)
	})
}

// Capture confirms the buyer's payment and opens the transfer window.
// Only the buyer of the order may capture; the order must still be pending.
func (s *Service) Capture(ctx context.Context, orderID, actorID string) (Order, error) {
	o, err := s.GetOrderByID(ctx, orderID)
	if err != nil {
		return Order{}, err
	}
	if o.BuyerID != actorID {
		return Order{}, apperror.ErrForbidden
	}
	if !o.Status.CanTransitionTo(StatusConfirmed) {
		return Order{}, fmt.Errorf("%w: order is %s, expected %s", apperror.ErrStatusConflict, o.Status, StatusPending)
	}

	res, err := s.rails.Capture(ctx, gateway.CaptureRequest{
		OrderID:        o.ID,
		PaymentRef:     o.PaymentRef,
		Amount:         o.Total,
		Currency:       pricing.Currency,
		IdempotencyKey: "capture-" + o.ID,
	})
	if err != nil || res.Status != gateway.CaptureStatusSuccess {
		if err == nil {
			err = fmt.Errorf("capture status %s", res.Status)
		}
		return Order{}, fmt.Errorf("%w: payment capture: %s", apperror.ErrExternalDependency, err)
	}

	deadline := time.Now().UTC().Add(s.transferProofDeadline)
	err = s.repo.InTransaction(ctx, func(tx TxOrderRepo) error {
		if err := tx.UpdateOrderStatus(ctx, o.ID, StatusPending, StatusConfirmed); err != nil {
			return err
		}
		return tx.OpenTransferWindow(ctx, o.ID, deadline)
	})
	if err != nil {
		// Capture is idempotent per order, so a lost race here is safe to
		// surface as a conflict and retry.
		return Order{}, err
	}

	o.Status = StatusConfirmed
	metrics.OrderTransitionsTotal.WithLabelValues(string(StatusPending), string(StatusConfirmed), actorID).Inc()
	s.emitter.Emit(ctx, "order.confirmed", o.ID, actorID, o)

	return o, nil
}

// ExpirePendingOrders cancels orders the buyer never captured within the
// pending TTL and puts their tickets back on the listing. The hold is voided
// first; if the provider call fails the order stays pending and the next
// pass retries it.
func (s *Service) ExpirePendingOrders(ctx context.Context, asOf time.Time) error {
	query, err := NewOrdersQueryBuilder().WithStatuses(StatusPending).Build()
	if err != nil {
		return err
	}
	pending, err := s.repo.GetOrders(ctx, query)
	if err != nil {
		return fmt.Errorf("list pending orders: %w", err)
	}

	cutoff := asOf.Add(-s.pendingOrderTTL)
	for _, o := range pending {
		if o.CreatedAt.After(cutoff) {
			continue
		}

		if o.PaymentRef != "" {
			// Refunding an uncaptured hold voids it at the provider.
			if _, err := s.rails.Refund(ctx, gateway.RefundRequest{
				OrderID:        o.ID,
				BuyerID:        o.BuyerID,
				Amount:         o.Total,
				Currency:       pricing.Currency,
				IdempotencyKey: "refund-" + o.ID,
			}); err != nil {
				slog.ErrorContext(ctx, "sweep: void expired hold", "order_id", o.ID, "error", err)
				continue
			}
		}

		err := s.repo.InTransaction(ctx, func(tx TxOrderRepo) error {
			if err := tx.UpdateOrderStatus(ctx, o.ID, StatusPending, StatusCancelled); err != nil {
				return err
			}
			return tx.RestoreListingQuantity(ctx, o.ListingID, o.Quantity)
		})
		if err != nil {
			if errors.Is(err, apperror.ErrStatusConflict) {
				// The buyer captured between the list and the claim.
				metrics.StatusConflictsTotal.WithLabelValues("order").Inc()
				continue
			}
			return fmt.Errorf("expire order %s: %w", o.ID, err)
		}

		slog.WarnContext(ctx, "pending order expired: hold voided, tickets restored",
			"order_id", o.ID, "buyer_id", o.BuyerID, "actor", messaging.SystemActor)
		metrics.SweepTransitionsTotal.WithLabelValues("pending_order_timeout").Inc()
		s.emitter.Emit(ctx, "order.cancelled", o.ID, messaging.SystemActor, map[string]any{
			"cause": "pending_order_timeout",
		})
	}
	return nil
}

func (s *Service) GetOrderByID(ctx context.Context, id string) (Order, error) {
	return getOrderByID(ctx, s.repo, id)
}

func getOrderByID(ctx context.Context, repo TxOrderRepo, id string) (Order, error) {
	query, err := NewOrdersQueryBuilder().WithIDs(id).Build()
	if err != nil {
		return Order{}, err
	}

	orders, err := repo.GetOrders(ctx, query)
	if err != nil {
		return Order{}, fmt.Errorf("get order: %w", err)
	}
	if len(orders) == 0 {
		return Order{}, apperror.ErrOrderNotFound
	}
	return orders[0], nil
}

// GetForActor returns the order only to its buyer or seller.
func (s *Service) GetForActor(ctx context.Context, orderID, actorID string) (Order, error) {
	o, err := s.GetOrderByID(ctx, orderID)
	if err != nil {
		return Order{}, err
	}
	if o.BuyerID != actorID && o.SellerID != actorID {
		return Order{}, apperror.ErrForbidden
	}
	return o, nil
}

// Page is a paginated order list.
type Page struct {
	Orders     []Order `json:"orders"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	Total      int     `json:"total"`
	TotalPages int     `json:"totalPages"`
}

// ListForActor returns the actor's orders in the requested role.
func (s *Service) ListForActor(ctx context.Context, actorID, role string, p Pagination) (Page, error) {
	builder := NewOrdersQueryBuilder().WithPagination(p).WithSort("created_at", "desc")
	switch role {
	case "seller":
		builder = builder.WithSellerIDs(actorID)
	default:
		builder = builder.WithBuyerIDs(actorID)
	}
	query, err := builder.Build()
	if err != nil {
		return Page{}, fmt.Errorf("%w: %s", apperror.ErrValidation, err)
	}

	total, err := s.repo.CountOrders(ctx, query)
	if err != nil {
		return Page{}, fmt.Errorf("count orders: %w", err)
	}
	orders, err := s.repo.GetOrders(ctx, query)
	if err != nil {
		return Page{}, fmt.Errorf("list orders: %w", err)
	}

	totalPages := (total + p.PageSize - 1) / p.PageSize
	return Page{Orders: orders, Page: p.PageNumber, Limit: p.PageSize, Total: total, TotalPages: totalPages}, nil
}

// AddMessage appends to the order thread. Both parties may write.
func (s *Service) AddMessage(ctx context.Context, orderID, senderID, body string) (Message, error) {
	if body == "" {
		return Message{}, fmt.Errorf("%w: message body is required", apperror.ErrValidation)
	}

	o, err := s.GetOrderByID(ctx, orderID)
	if err != nil {
		return Message{}, err
	}
	if o.BuyerID != senderID && o.SellerID != senderID {
		return Message{}, apperror.ErrForbidden
	}

	m := Message{
		ID:       uuid.New().String(),
		OrderID:  orderID,
		SenderID: senderID,
		Body:     body,
		SentAt:   time.Now().UTC(),
	}
	if err := s.repo.CreateMessage(ctx, m); err != nil {
		return Message{}, fmt.Errorf("create message: %w", err)
	}

	s.emitter.Emit(ctx, "order.message", orderID, senderID, m)
	return m, nil
}

func (s *Service) GetMessages(ctx context.Context, orderID, actorID string) ([]Message, error) {
	o, err := s.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.BuyerID != actorID && o.SellerID != actorID {
		return nil, apperror.ErrForbidden
	}

	messages, err := s.repo.GetMessages(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get messages: %w", err)
	}
	return messages, nil
}
