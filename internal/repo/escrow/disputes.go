package escrow_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"ticketescrow/internal/controller/apperror"
	"ticketescrow/internal/domain/dispute"
)

const disputeColumns = "disputes.id, disputes.order_id, disputes.reason, disputes.description, " +
	"disputes.opened_by, disputes.buyer_statement, disputes.buyer_evidence, disputes.buyer_submitted_at, " +
	"disputes.seller_statement, disputes.seller_evidence, disputes.seller_submitted_at, " +
	"disputes.status, disputes.response_deadline, disputes.defaulted_party, " +
	"disputes.resolution, disputes.resolution_notes, disputes.refund_amount, disputes.seller_payout_amount, " +
	"disputes.resolved_by, disputes.resolved_at, disputes.settled_at, disputes.created_at, disputes.updated_at"

func (r *repo) GetDisputeByID(ctx context.Context, disputeID string) (*dispute.Dispute, error) {
	return r.getDispute(ctx, squirrel.Eq{"disputes.id": disputeID})
}

func (r *repo) GetDisputeByOrderID(ctx context.Context, orderID string) (*dispute.Dispute, error) {
	return r.getDispute(ctx, squirrel.Eq{"disputes.order_id": orderID})
}

func (r *repo) getDispute(ctx context.Context, where squirrel.Eq) (*dispute.Dispute, error) {
	query, args, err := r.builder.Select(disputeColumns).
		From("disputes").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select query: %w", err)
	}

	d, err := scanDispute(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get dispute: %w", err)
	}
	return d, nil
}

func (r *repo) GetDisputes(ctx context.Context, query *dispute.DisputesQuery) ([]dispute.Dispute, error) {
	q := r.applyDisputeFilters(r.builder.Select(disputeColumns).From("disputes"), query).
		OrderBy("disputes.created_at DESC")

	if query.Pagination != nil {
		offset := (query.Pagination.PageNumber - 1) * query.Pagination.PageSize
		q = q.Limit(uint64(query.Pagination.PageSize)).Offset(uint64(offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query disputes: %w", err)
	}
	defer rows.Close()

	var disputes []dispute.Dispute
	for rows.Next() {
		d, err := scanDispute(rows)
		if err != nil {
			return nil, fmt.Errorf("scan dispute row: %w", err)
		}
		disputes = append(disputes, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dispute rows: %w", err)
	}
	return disputes, nil
}

func (r *repo) CountDisputes(ctx context.Context, query *dispute.DisputesQuery) (int, error) {
	q := r.applyDisputeFilters(r.builder.Select("COUNT(*)").From("disputes"), query)
	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count disputes: %w", err)
	}
	return count, nil
}

func (r *repo) CreateDispute(ctx context.Context, d dispute.Dispute) error {
	query, args, err := r.builder.Insert("disputes").
		Columns("id", "order_id", "reason", "description", "opened_by",
			"buyer_statement", "buyer_evidence", "buyer_submitted_at",
			"seller_statement", "seller_evidence", "seller_submitted_at",
			"status", "response_deadline", "created_at", "updated_at").
		Values(d.ID, d.OrderID, d.Reason, d.Description, d.OpenedBy,
			d.Buyer.Text, d.Buyer.Evidence, d.Buyer.SubmittedAt,
			d.Seller.Text, d.Seller.Evidence, d.Seller.SubmittedAt,
			d.Status, d.ResponseDeadline, d.CreatedAt, d.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("create dispute: %w", err)
	}
	return nil
}

func (r *repo) UpdateDisputeStatus(ctx context.Context, disputeID string, expected, next dispute.Status) error {
	query, args, err := r.builder.Update("disputes").
		Set("status", next).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": disputeID, "status": expected}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update dispute status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: dispute %s is no longer %s", apperror.ErrStatusConflict, disputeID, expected)
	}
	return nil
}

func (r *repo) SetStatement(ctx context.Context, disputeID string, party dispute.Party, st dispute.Statement) error {
	prefix := partyPrefix(party)
	query, args, err := r.builder.Update("disputes").
		Set(prefix+"_statement", st.Text).
		Set(prefix+"_evidence", st.Evidence).
		Set(prefix+"_submitted_at", st.SubmittedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": disputeID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("set statement: %w", err)
	}
	return nil
}

func (r *repo) AppendEvidence(ctx context.Context, disputeID string, party dispute.Party, evidence []string) error {
	col := partyPrefix(party) + "_evidence"
	query, args, err := r.builder.Update("disputes").
		Set(col, squirrel.Expr("COALESCE("+col+", '{}') || ?", evidence)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": disputeID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("append evidence: %w", err)
	}
	return nil
}

func (r *repo) SetDefaultedParty(ctx context.Context, disputeID string, party dispute.Party) error {
	query, args, err := r.builder.Update("disputes").
		Set("defaulted_party", party).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": disputeID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("set defaulted party: %w", err)
	}
	return nil
}

func (r *repo) SetResponseDeadline(ctx context.Context, disputeID string, deadline time.Time) error {
	query, args, err := r.builder.Update("disputes").
		Set("response_deadline", deadline).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": disputeID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("set response deadline: %w", err)
	}
	return nil
}

func (r *repo) SetDisputeSettled(ctx context.Context, disputeID string, at time.Time) error {
	query, args, err := r.builder.Update("disputes").
		Set("settled_at", at).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": disputeID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("set dispute settled: %w", err)
	}
	return nil
}

func (r *repo) SetResolution(ctx context.Context, disputeID string, res dispute.Resolution) error {
	query, args, err := r.builder.Update("disputes").
		Set("resolution", res.Outcome).
		Set("resolution_notes", res.Notes).
		Set("refund_amount", res.Allocation.RefundAmount).
		Set("seller_payout_amount", res.Allocation.SellerPayoutAmount).
		Set("resolved_by", res.ResolvedBy).
		Set("resolved_at", res.ResolvedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": disputeID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("set resolution: %w", err)
	}
	return nil
}

func (r *repo) ListResponseExpired(ctx context.Context, asOf time.Time) ([]dispute.Dispute, error) {
	query := &dispute.DisputesQuery{
		Statuses: []dispute.Status{
			dispute.StatusOpen, dispute.StatusAwaitingSeller, dispute.StatusAwaitingBuyer,
		},
	}
	q := r.applyDisputeFilters(r.builder.Select(disputeColumns).From("disputes"), query).
		Where(squirrel.LtOrEq{"disputes.response_deadline": asOf}).
		OrderBy("disputes.response_deadline ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query expired disputes: %w", err)
	}
	defer rows.Close()

	var disputes []dispute.Dispute
	for rows.Next() {
		d, err := scanDispute(rows)
		if err != nil {
			return nil, fmt.Errorf("scan dispute row: %w", err)
		}
		disputes = append(disputes, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dispute rows: %w", err)
	}
	return disputes, nil
}

func (r *repo) ListUnsettledResolved(ctx context.Context, asOf time.Time) ([]dispute.Dispute, error) {
	query := &dispute.DisputesQuery{
		Statuses: []dispute.Status{
			dispute.StatusResolvedBuyer, dispute.StatusResolvedSeller, dispute.StatusResolvedPartial,
		},
	}
	q := r.applyDisputeFilters(r.builder.Select(disputeColumns).From("disputes"), query).
		Where("disputes.settled_at IS NULL").
		Where(squirrel.LtOrEq{"disputes.resolved_at": asOf}).
		OrderBy("disputes.resolved_at ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query unsettled disputes: %w", err)
	}
	defer rows.Close()

	var disputes []dispute.Dispute
	for rows.Next() {
		d, err := scanDispute(rows)
		if err != nil {
			return nil, fmt.Errorf("scan dispute row: %w", err)
		}
		disputes = append(disputes, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dispute rows: %w", err)
	}
	return disputes, nil
}

// applyDisputeFilters adds WHERE conditions; buyer/seller scoping joins the
// orders table since parties live on the order.
func (r *repo) applyDisputeFilters(q squirrel.SelectBuilder, query *dispute.DisputesQuery) squirrel.SelectBuilder {
	if len(query.BuyerIDs) > 0 || len(query.SellerIDs) > 0 {
		q = q.Join("orders ON orders.id = disputes.order_id")
		if len(query.BuyerIDs) > 0 {
			q = q.Where(squirrel.Eq{"orders.buyer_id": query.BuyerIDs})
		}
		if len(query.SellerIDs) > 0 {
			q = q.Where(squirrel.Eq{"orders.seller_id": query.SellerIDs})
		}
	}
	if len(query.IDs) > 0 {
		q = q.Where(squirrel.Eq{"disputes.id": query.IDs})
	}
	if len(query.OrderIDs) > 0 {
		q = q.Where(squirrel.Eq{"disputes.order_id": query.OrderIDs})
	}
	if len(query.Statuses) > 0 {
		q = q.Where(squirrel.Eq{"disputes.status": query.Statuses})
	}
	return q
}

func partyPrefix(p dispute.Party) string {
	if p == dispute.PartySeller {
		return "seller"
	}
	return "buyer"
}

func scanDispute(row pgx.Row) (*dispute.Dispute, error) {
	var (
		d              dispute.Dispute
		rawStatus      string
		buyerText      *string
		sellerText     *string
		defaultedParty *string
		resolution     *string
		notes          *string
		resolvedBy     *string
	)
	err := row.Scan(&d.ID, &d.OrderID, &d.Reason, &d.Description, &d.OpenedBy,
		&buyerText, &d.Buyer.Evidence, &d.Buyer.SubmittedAt,
		&sellerText, &d.Seller.Evidence, &d.Seller.SubmittedAt,
		&rawStatus, &d.ResponseDeadline, &defaultedParty,
		&resolution, &notes, &d.RefundAmount, &d.SellerPayoutAmount,
		&resolvedBy, &d.ResolvedAt, &d.SettledAt, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}

	status, err := dispute.NewStatus(rawStatus)
	if err != nil {
		return nil, fmt.Errorf("invalid status in database: %w", err)
	}
	d.Status = status

	if buyerText != nil {
		d.Buyer.Text = *buyerText
	}
	if sellerText != nil {
		d.Seller.Text = *sellerText
	}
	if defaultedParty != nil {
		p := dispute.Party(*defaultedParty)
		d.DefaultedParty = &p
	}
	if resolution != nil {
		d.Resolution = dispute.Outcome(*resolution)
	}
	if notes != nil {
		d.ResolutionNotes = *notes
	}
	if resolvedBy != nil {
		d.ResolvedBy = *resolvedBy
	}

	return &d, nil
}
