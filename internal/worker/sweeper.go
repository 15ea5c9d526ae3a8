// Package worker runs the deadline sweep: the periodic pass that expires
// pending orders, seller proof windows, buyer response windows and dispute
// response windows, and drains the money moves an earlier pass left behind.
// Every pass is idempotent; the optimistic status preconditions and the
// per-order idempotency keys make a rerun over the same rows a no-op.
package worker

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// OrderExpirer is the order-side sweep surface.
type OrderExpirer interface {
	ExpirePendingOrders(ctx context.Context, asOf time.Time) error
}

// TransferExpirer is the transfer-side sweep surface.
type TransferExpirer interface {
	ExpireSellerProofTimeouts(ctx context.Context, asOf time.Time) error
	ExpireBuyerResponseTimeouts(ctx context.Context, asOf time.Time) error
	RetryPendingReleases(ctx context.Context, asOf time.Time) error
}

// DisputeExpirer is the dispute-side sweep surface.
type DisputeExpirer interface {
	ExpireResponseTimeouts(ctx context.Context, asOf time.Time) error
	RetrySettlements(ctx context.Context, asOf time.Time) error
}

type Sweeper struct {
	orders    OrderExpirer
	transfers TransferExpirer
	disputes  DisputeExpirer
	interval  time.Duration
}

func NewSweeper(orders OrderExpirer, transfers TransferExpirer, disputes DisputeExpirer, interval time.Duration) *Sweeper {
	return &Sweeper{orders: orders, transfers: transfers, disputes: disputes, interval: interval}
}

// Run sweeps on the configured interval until the context is cancelled.
// Individual pass failures are logged, not fatal: the next tick retries.
func (s *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.InfoContext(ctx, "deadline sweeper started", "interval", s.interval)
	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "deadline sweeper stopped")
			return nil
		case <-ticker.C:
			if err := s.Sweep(ctx); err != nil {
				slog.ErrorContext(ctx, "deadline sweep", "error", err)
			}
		}
	}
}

// Sweep runs the expiry and retry passes once, concurrently.
func (s *Sweeper) Sweep(ctx context.Context) error {
	now := time.Now().UTC()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.orders.ExpirePendingOrders(gctx, now) })
	g.Go(func() error { return s.transfers.ExpireSellerProofTimeouts(gctx, now) })
	g.Go(func() error { return s.transfers.ExpireBuyerResponseTimeouts(gctx, now) })
	g.Go(func() error { return s.transfers.RetryPendingReleases(gctx, now) })
	g.Go(func() error { return s.disputes.ExpireResponseTimeouts(gctx, now) })
	g.Go(func() error { return s.disputes.RetrySettlements(gctx, now) })
	return g.Wait()
}
