package listing_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"ticketescrow/internal/domain/listing"
	"ticketescrow/pkg/postgres"
)

const listingColumns = "id, seller_id, event_name, venue, event_date, ticket_type, " +
	"quantity, original_price, asking_price, verification_level, active, view_count, " +
	"created_at, updated_at"

// verificationPriority ranks listings for the default search order: higher
// trust first.
const verificationPriority = `CASE verification_level
	WHEN 'premium' THEN 4
	WHEN 'verified' THEN 3
	WHEN 'basic' THEN 2
	WHEN 'pending' THEN 1
	ELSE 0
END`

// PgListingRepo is the listing repository.
type PgListingRepo struct {
	pg *postgres.Postgres
	repo
}

func NewPgListingRepo(pg *postgres.Postgres) listing.ListingRepo {
	return &PgListingRepo{
		pg:   pg,
		repo: repo{db: pg.Pool, builder: pg.Builder},
	}
}

func (r *PgListingRepo) InTransaction(ctx context.Context, fn func(repo listing.TxListingRepo) error) error {
	return r.pg.InTransaction(ctx, func(tx postgres.Executor) error {
		txRepo := &repo{db: tx, builder: r.pg.Builder}
		return fn(txRepo)
	})
}

type repo struct {
	db      postgres.Executor
	builder squirrel.StatementBuilderType
}

func (r *repo) GetListings(ctx context.Context, query *listing.ListingsQuery) ([]listing.Listing, error) {
	sql, args := r.buildListingsQuery(query)
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query listings: %w", err)
	}
	defer rows.Close()

	return parseListingRows(rows)
}

func (r *repo) CountListings(ctx context.Context, query *listing.ListingsQuery) (int, error) {
	q := r.applyListingFilters(r.builder.Select("COUNT(*)").From("listings"), query)
	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count listings: %w", err)
	}
	return count, nil
}

func (r *repo) CountActiveBySeller(ctx context.Context, sellerID string) (int, error) {
	sql, args, err := r.builder.Select("COUNT(*)").
		From("listings").
		Where(squirrel.Eq{"seller_id": sellerID, "active": true}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count active listings: %w", err)
	}
	return count, nil
}

func (r *repo) CreateListing(ctx context.Context, l listing.Listing) error {
	query, args, err := r.builder.Insert("listings").
		Columns("id", "seller_id", "event_name", "venue", "event_date", "ticket_type",
			"quantity", "original_price", "asking_price", "verification_level", "active",
			"view_count", "created_at", "updated_at").
		Values(l.ID, l.SellerID, l.EventName, l.Venue, l.EventDate, l.TicketType,
			l.Quantity, l.OriginalPrice, l.AskingPrice, l.VerificationLevel, l.Active,
			l.ViewCount, l.CreatedAt, l.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("create listing: %w", err)
	}
	return nil
}

func (r *repo) IncrementViewCount(ctx context.Context, listingID string) error {
	query, args, err := r.builder.Update("listings").
		Set("view_count", squirrel.Expr("view_count + 1")).
		Where(squirrel.Eq{"id": listingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("increment view count: %w", err)
	}
	return nil
}

func (r *repo) SetVerificationLevel(ctx context.Context, listingID string, level listing.VerificationLevel) error {
	query, args, err := r.builder.Update("listings").
		Set("verification_level", level).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": listingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("set verification level: %w", err)
	}
	return nil
}

func (r *repo) Deactivate(ctx context.Context, listingID string) error {
	query, args, err := r.builder.Update("listings").
		Set("active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": listingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("deactivate listing: %w", err)
	}
	return nil
}

func (r *repo) applyListingFilters(q squirrel.SelectBuilder, query *listing.ListingsQuery) squirrel.SelectBuilder {
	if len(query.IDs) > 0 {
		q = q.Where(squirrel.Eq{"id": query.IDs})
	}
	if len(query.SellerIDs) > 0 {
		q = q.Where(squirrel.Eq{"seller_id": query.SellerIDs})
	}
	if query.ActiveOnly {
		q = q.Where(squirrel.Eq{"active": true})
	}
	if query.EventName != nil {
		q = q.Where(squirrel.ILike{"event_name": "%" + *query.EventName + "%"})
	}
	if query.MaxPrice != nil {
		q = q.Where(squirrel.LtOrEq{"asking_price": *query.MaxPrice})
	}
	return q
}

func (r *repo) buildListingsQuery(q *listing.ListingsQuery) (string, []interface{}) {
	query := r.applyListingFilters(r.builder.Select(listingColumns).From("listings"), q)

	if q.SortBy != nil && q.SortOrder != nil {
		query = query.OrderBy(fmt.Sprintf("%s %s", *q.SortBy, *q.SortOrder))
	} else {
		// Default ranking: trust level first, then recency.
		query = query.OrderBy(verificationPriority+" DESC", "created_at DESC")
	}

	if q.Pagination != nil {
		offset := (q.Pagination.PageNumber - 1) * q.Pagination.PageSize
		query = query.Limit(uint64(q.Pagination.PageSize)).Offset(uint64(offset))
	}

	sql, args, _ := query.ToSql()
	return sql, args
}

func parseListingRows(rows pgx.Rows) ([]listing.Listing, error) {
	var listings []listing.Listing
	for rows.Next() {
		var l listing.Listing
		err := rows.Scan(&l.ID, &l.SellerID, &l.EventName, &l.Venue, &l.EventDate,
			&l.TicketType, &l.Quantity, &l.OriginalPrice, &l.AskingPrice,
			&l.VerificationLevel, &l.Active, &l.ViewCount, &l.CreatedAt, &l.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan listing row: %w", err)
		}
		listings = append(listings, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate listing rows: %w", err)
	}
	return listings, nil
}
