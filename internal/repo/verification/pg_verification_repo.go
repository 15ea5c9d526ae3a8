package verification_repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"ticketescrow/internal/controller/apperror"
	"ticketescrow/internal/domain/listing"
	"ticketescrow/internal/domain/verification"
	"ticketescrow/pkg/postgres"
)

const requestColumns = "id, listing_id, seller_id, proofs, confirmation_details, " +
	"fraud_check, status, submitted_at, rejection_reason, reviewed_by, reviewed_at, " +
	"created_at, updated_at"

// PgVerificationRepo is the verification request repository. Proof artifacts
// and oracle results are stored as jsonb documents; the review write also
// stamps the listing, so the listing level update lives here.
type PgVerificationRepo struct {
	pg *postgres.Postgres
	repo
}

func NewPgVerificationRepo(pg *postgres.Postgres) verification.VerificationRepo {
	return &PgVerificationRepo{
		pg:   pg,
		repo: repo{db: pg.Pool, builder: pg.Builder},
	}
}

func (r *PgVerificationRepo) InTransaction(ctx context.Context, fn func(tx verification.TxVerificationRepo) error) error {
	return r.pg.InTransaction(ctx, func(tx postgres.Executor) error {
		return fn(&repo{db: tx, builder: r.pg.Builder})
	})
}

type repo struct {
	db      postgres.Executor
	builder squirrel.StatementBuilderType
}

func (r *repo) GetRequestByID(ctx context.Context, requestID string) (*verification.Request, error) {
	return r.getRequest(ctx, squirrel.Eq{"id": requestID})
}

func (r *repo) GetOpenRequestByListingID(ctx context.Context, listingID string) (*verification.Request, error) {
	return r.getRequest(ctx, squirrel.Eq{
		"listing_id": listingID,
		"status":     []verification.Status{verification.StatusPending, verification.StatusFlagged},
	})
}

func (r *repo) getRequest(ctx context.Context, where squirrel.Eq) (*verification.Request, error) {
	query, args, err := r.builder.Select(requestColumns).
		From("verification_requests").
		Where(where).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select query: %w", err)
	}

	req, err := scanRequest(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get verification request: %w", err)
	}
	return req, nil
}

func (r *repo) CreateRequest(ctx context.Context, req verification.Request) error {
	proofs, err := json.Marshal(req.Proofs)
	if err != nil {
		return fmt.Errorf("marshal proofs: %w", err)
	}
	var details []byte
	if req.Details != nil {
		if details, err = json.Marshal(req.Details); err != nil {
			return fmt.Errorf("marshal confirmation details: %w", err)
		}
	}

	query, args, err := r.builder.Insert("verification_requests").
		Columns("id", "listing_id", "seller_id", "proofs", "confirmation_details",
			"status", "created_at", "updated_at").
		Values(req.ID, req.ListingID, req.SellerID, proofs, details,
			req.Status, req.CreatedAt, req.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("create verification request: %w", err)
	}
	return nil
}

func (r *repo) AddProofs(ctx context.Context, requestID string, proofs []verification.Proof) error {
	payload, err := json.Marshal(proofs)
	if err != nil {
		return fmt.Errorf("marshal proofs: %w", err)
	}

	query, args, err := r.builder.Update("verification_requests").
		Set("proofs", squirrel.Expr("proofs || ?::jsonb", payload)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": requestID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("add proofs: %w", err)
	}
	return nil
}

func (r *repo) SetConfirmationDetails(ctx context.Context, requestID string, details verification.ConfirmationDetails) error {
	payload, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("marshal confirmation details: %w", err)
	}

	query, args, err := r.builder.Update("verification_requests").
		Set("confirmation_details", payload).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": requestID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("set confirmation details: %w", err)
	}
	return nil
}

func (r *repo) SetFraudCheckResult(ctx context.Context, requestID string, result verification.FraudCheckResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal fraud check result: %w", err)
	}

	query, args, err := r.builder.Update("verification_requests").
		Set("fraud_check", payload).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": requestID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("set fraud check result: %w", err)
	}
	return nil
}

func (r *repo) MarkSubmitted(ctx context.Context, requestID string, at time.Time) error {
	query, args, err := r.builder.Update("verification_requests").
		Set("submitted_at", at).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": requestID}).
		Where(squirrel.Eq{"submitted_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("mark submitted: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: request %s was already submitted", apperror.ErrStatusConflict, requestID)
	}
	return nil
}

func (r *repo) SetReview(ctx context.Context, requestID string, expected verification.Status, review verification.Review) error {
	query, args, err := r.builder.Update("verification_requests").
		Set("status", review.Status).
		Set("rejection_reason", review.RejectionReason).
		Set("reviewed_by", review.ReviewedBy).
		Set("reviewed_at", review.ReviewedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": requestID, "status": expected}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: request %s is no longer %s", apperror.ErrStatusConflict, requestID, expected)
	}
	return nil
}

func (r *repo) ListQueue(ctx context.Context, pageSize, pageNumber int) ([]verification.Request, error) {
	offset := (pageNumber - 1) * pageSize
	query, args, err := r.queueQuery(r.builder.Select(requestColumns)).
		OrderBy("submitted_at ASC").
		Limit(uint64(pageSize)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query review queue: %w", err)
	}
	defer rows.Close()

	var requests []verification.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan request row: %w", err)
		}
		requests = append(requests, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate request rows: %w", err)
	}
	return requests, nil
}

func (r *repo) CountQueue(ctx context.Context) (int, error) {
	query, args, err := r.queueQuery(r.builder.Select("COUNT(*)")).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count review queue: %w", err)
	}
	return count, nil
}

func (r *repo) queueQuery(q squirrel.SelectBuilder) squirrel.SelectBuilder {
	return q.From("verification_requests").
		Where(squirrel.Eq{"status": []verification.Status{
			verification.StatusPending, verification.StatusFlagged,
		}}).
		Where(squirrel.NotEq{"submitted_at": nil})
}

func (r *repo) GetListing(ctx context.Context, listingID string) (listing.Listing, error) {
	query, args, err := r.builder.Select("id", "seller_id", "event_name", "venue",
		"event_date", "ticket_type", "quantity", "original_price", "asking_price",
		"verification_level", "active", "view_count", "created_at", "updated_at").
		From("listings").
		Where(squirrel.Eq{"id": listingID}).
		ToSql()
	if err != nil {
		return listing.Listing{}, fmt.Errorf("build select query: %w", err)
	}

	var l listing.Listing
	err = r.db.QueryRow(ctx, query, args...).Scan(&l.ID, &l.SellerID, &l.EventName,
		&l.Venue, &l.EventDate, &l.TicketType, &l.Quantity, &l.OriginalPrice,
		&l.AskingPrice, &l.VerificationLevel, &l.Active, &l.ViewCount, &l.CreatedAt,
		&l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return listing.Listing{}, apperror.ErrListingNotFound
		}
		return listing.Listing{}, fmt.Errorf("get listing: %w", err)
	}
	return l, nil
}

func (r *repo) SetListingVerificationLevel(ctx context.Context, listingID string, level listing.VerificationLevel) error {
	query, args, err := r.builder.Update("listings").
		Set("verification_level", level).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": listingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("set listing verification level: %w", err)
	}
	return nil
}

func scanRequest(row pgx.Row) (*verification.Request, error) {
	var (
		req             verification.Request
		rawStatus       string
		proofs          []byte
		details         []byte
		fraudCheck      []byte
		rejectionReason *string
		reviewedBy      *string
	)
	err := row.Scan(&req.ID, &req.ListingID, &req.SellerID, &proofs, &details,
		&fraudCheck, &rawStatus, &req.SubmittedAt, &rejectionReason, &reviewedBy,
		&req.ReviewedAt, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return nil, err
	}

	status, err := verification.NewStatus(rawStatus)
	if err != nil {
		return nil, fmt.Errorf("invalid status in database: %w", err)
	}
	req.Status = status

	if err := json.Unmarshal(proofs, &req.Proofs); err != nil {
		return nil, fmt.Errorf("unmarshal proofs: %w", err)
	}
	if len(details) > 0 {
		req.Details = &verification.ConfirmationDetails{}
		if err := json.Unmarshal(details, req.Details); err != nil {
			return nil, fmt.Errorf("unmarshal confirmation details: %w", err)
		}
	}
	if len(fraudCheck) > 0 {
		req.FraudCheck = &verification.FraudCheckResult{}
		if err := json.Unmarshal(fraudCheck, req.FraudCheck); err != nil {
			return nil, fmt.Errorf("unmarshal fraud check result: %w", err)
		}
	}
	if rejectionReason != nil {
		req.RejectionReason = *rejectionReason
	}
	if reviewedBy != nil {
		req.ReviewedBy = *reviewedBy
	}

	return &req, nil
}
