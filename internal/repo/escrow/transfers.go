package escrow_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"ticketescrow/internal/controller/apperror"
	"ticketescrow/internal/domain/transfer"
)

const transferColumns = "order_id, status, seller_proof_urls, seller_notes, " +
	"proof_submitted_at, buyer_action_at, response_deadline, created_at, updated_at"

func (r *repo) GetTransferByOrderID(ctx context.Context, orderID string) (*transfer.Transfer, error) {
	query, args, err := r.builder.Select(transferColumns).
		From("transfers").
		Where(squirrel.Eq{"order_id": orderID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select query: %w", err)
	}

	t, err := scanTransfer(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	return t, nil
}

func (r *repo) OpenTransferWindow(ctx context.Context, orderID string, deadline time.Time) error {
	now := time.Now().UTC()
	query, args, err := r.builder.Insert("transfers").
		Columns("order_id", "status", "response_deadline", "created_at", "updated_at").
		Values(orderID, transfer.StatusAwaitingProof, deadline, now, now).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("open transfer window: %w", err)
	}
	return nil
}

func (r *repo) UpdateTransferStatus(ctx context.Context, orderID string, expected, next transfer.Status) error {
	query, args, err := r.builder.Update("transfers").
		Set("status", next).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"order_id": orderID, "status": expected}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update transfer status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transfer for order %s is no longer %s", apperror.ErrStatusConflict, orderID, expected)
	}
	return nil
}

func (r *repo) SetProof(ctx context.Context, orderID string, proofURLs []string, notes string, submittedAt, buyerDeadline time.Time) error {
	query, args, err := r.builder.Update("transfers").
		Set("seller_proof_urls", proofURLs).
		Set("seller_notes", notes).
		Set("proof_submitted_at", submittedAt).
		Set("response_deadline", buyerDeadline).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"order_id": orderID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("set proof: %w", err)
	}
	return nil
}

func (r *repo) SetBuyerActionAt(ctx context.Context, orderID string, at time.Time) error {
	query, args, err := r.builder.Update("transfers").
		Set("buyer_action_at", at).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"order_id": orderID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("set buyer action time: %w", err)
	}
	return nil
}

func (r *repo) ListAwaitingProofExpired(ctx context.Context, asOf time.Time) ([]transfer.Transfer, error) {
	return r.listExpired(ctx, transfer.StatusAwaitingProof, asOf)
}

func (r *repo) ListProofSubmittedExpired(ctx context.Context, asOf time.Time) ([]transfer.Transfer, error) {
	return r.listExpired(ctx, transfer.StatusProofSubmitted, asOf)
}

func (r *repo) listExpired(ctx context.Context, status transfer.Status, asOf time.Time) ([]transfer.Transfer, error) {
	query, args, err := r.builder.Select(transferColumns).
		From("transfers").
		Where(squirrel.Eq{"status": status}).
		Where(squirrel.LtOrEq{"response_deadline": asOf}).
		OrderBy("response_deadline ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query expired transfers: %w", err)
	}
	defer rows.Close()

	var transfers []transfer.Transfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transfer row: %w", err)
		}
		transfers = append(transfers, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transfer rows: %w", err)
	}
	return transfers, nil
}

func scanTransfer(row pgx.Row) (*transfer.Transfer, error) {
	var t transfer.Transfer
	var rawStatus string
	err := row.Scan(&t.OrderID, &rawStatus, &t.SellerProofURLs, &t.SellerNotes,
		&t.ProofSubmittedAt, &t.BuyerActionAt, &t.ResponseDeadline, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}

	status, err := transfer.NewStatus(rawStatus)
	if err != nil {
		return nil, fmt.Errorf("invalid status in database: %w", err)
	}
	t.Status = status

	return &t, nil
}
