package escrow_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"ticketescrow/internal/controller/apperror"
	"ticketescrow/internal/domain/listing"
	"ticketescrow/internal/domain/order"
)

const orderColumns = "id, listing_id, buyer_id, seller_id, quantity, subtotal, " +
	"platform_fee, buyer_protection_fee, total, seller_payout, status, payment_ref, " +
	"created_at, updated_at"

func (r *repo) GetOrders(ctx context.Context, query *order.OrdersQuery) ([]order.Order, error) {
	sql, args := r.buildOrdersQuery(query)
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	return parseOrderRows(rows)
}

func (r *repo) CountOrders(ctx context.Context, query *order.OrdersQuery) (int, error) {
	q := r.applyOrderFilters(r.builder.Select("COUNT(*)").From("orders"), query)
	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return count, nil
}

func (r *repo) CreateOrder(ctx context.Context, o order.Order) error {
	query, args, err := r.builder.Insert("orders").
		Columns("id", "listing_id", "buyer_id", "seller_id", "quantity", "subtotal",
			"platform_fee", "buyer_protection_fee", "total", "seller_payout", "status",
			"payment_ref", "created_at", "updated_at").
		Values(o.ID, o.ListingID, o.BuyerID, o.SellerID, o.Quantity, o.Subtotal,
			o.PlatformFee, o.BuyerProtectionFee, o.Total, o.SellerPayout, o.Status,
			o.PaymentRef, o.CreatedAt, o.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

// UpdateOrderStatus applies the transition only when the row still holds the
// expected status. Zero affected rows means a concurrent writer won.
func (r *repo) UpdateOrderStatus(ctx context.Context, orderID string, expected, next order.Status) error {
	query, args, err := r.builder.Update("orders").
		Set("status", next).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": orderID, "status": expected}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: order %s is no longer %s", apperror.ErrStatusConflict, orderID, expected)
	}
	return nil
}

func (r *repo) SetPaymentRef(ctx context.Context, orderID, paymentRef string) error {
	query, args, err := r.builder.Update("orders").
		Set("payment_ref", paymentRef).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": orderID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("set payment ref: %w", err)
	}
	return nil
}

func (r *repo) GetListingForUpdate(ctx context.Context, listingID string) (listing.Listing, error) {
	query, args, err := r.builder.Select("id", "seller_id", "event_name", "venue",
		"event_date", "ticket_type", "quantity", "original_price", "asking_price",
		"verification_level", "active", "view_count", "created_at", "updated_at").
		From("listings").
		Where(squirrel.Eq{"id": listingID}).
		Suffix("FOR UPDATE").
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
		return listing.Listing{}, fmt.Errorf("get listing for update: %w", err)
	}
	return l, nil
}

// DecrementListingQuantity reserves qty tickets in one statement. The
// quantity guard makes concurrent purchases of the last ticket race on the
// row: one wins, the other sees zero affected rows. Listings hitting zero
// are deactivated in the same write.
func (r *repo) DecrementListingQuantity(ctx context.Context, listingID string, qty int) error {
	query, args, err := r.builder.Update("listings").
		Set("quantity", squirrel.Expr("quantity - ?", qty)).
		Set("active", squirrel.Expr("quantity - ? > 0", qty)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": listingID, "active": true}).
		Where(squirrel.GtOrEq{"quantity": qty}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("decrement listing quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: listing %s has fewer than %d tickets available", apperror.ErrOversell, listingID, qty)
	}
	return nil
}

// RestoreListingQuantity returns reserved tickets after a failed or expired
// purchase. A listing deactivated by selling out comes back; one the seller
// withdrew stays inactive.
func (r *repo) RestoreListingQuantity(ctx context.Context, listingID string, qty int) error {
	query, args, err := r.builder.Update("listings").
		Set("quantity", squirrel.Expr("quantity + ?", qty)).
		Set("active", squirrel.Expr("active OR quantity = 0")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": listingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("restore listing quantity: %w", err)
	}
	return nil
}

func (r *repo) CreateMessage(ctx context.Context, m order.Message) error {
	query, args, err := r.builder.Insert("order_messages").
		Columns("id", "order_id", "sender_id", "body", "sent_at").
		Values(m.ID, m.OrderID, m.SenderID, m.Body, m.SentAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	return nil
}

func (r *repo) GetMessages(ctx context.Context, orderID string) ([]order.Message, error) {
	query, args, err := r.builder.Select("id", "order_id", "sender_id", "body", "sent_at").
		From("order_messages").
		Where(squirrel.Eq{"order_id": orderID}).
		OrderBy("sent_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var messages []order.Message
	for rows.Next() {
		var m order.Message
		if err := rows.Scan(&m.ID, &m.OrderID, &m.SenderID, &m.Body, &m.SentAt); err != nil {
			return nil, fmt.Errorf("scan message row: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate message rows: %w", err)
	}
	return messages, nil
}

func (r *repo) applyOrderFilters(q squirrel.SelectBuilder, query *order.OrdersQuery) squirrel.SelectBuilder {
	if len(query.IDs) > 0 {
		q = q.Where(squirrel.Eq{"id": query.IDs})
	}
	if len(query.BuyerIDs) > 0 {
		q = q.Where(squirrel.Eq{"buyer_id": query.BuyerIDs})
	}
	if len(query.SellerIDs) > 0 {
		q = q.Where(squirrel.Eq{"seller_id": query.SellerIDs})
	}
	if len(query.Statuses) > 0 {
		q = q.Where(squirrel.Eq{"status": query.Statuses})
	}
	return q
}

func (r *repo) buildOrdersQuery(q *order.OrdersQuery) (string, []interface{}) {
	query := r.applyOrderFilters(r.builder.Select(orderColumns).From("orders"), q)

	if q.SortBy != nil && q.SortOrder != nil {
		query = query.OrderBy(fmt.Sprintf("%s %s", *q.SortBy, *q.SortOrder))
	}

	if q.Pagination != nil {
		offset := (q.Pagination.PageNumber - 1) * q.Pagination.PageSize
		query = query.Limit(uint64(q.Pagination.PageSize)).Offset(uint64(offset))
	}

	sql, args, _ := query.ToSql()
	return sql, args
}

func parseOrderRows(rows pgx.Rows) ([]order.Order, error) {
	var orders []order.Order
	for rows.Next() {
		var o order.Order
		var rawStatus string
		err := rows.Scan(&o.ID, &o.ListingID, &o.BuyerID, &o.SellerID, &o.Quantity,
			&o.Subtotal, &o.PlatformFee, &o.BuyerProtectionFee, &o.Total,
			&o.SellerPayout, &rawStatus, &o.PaymentRef, &o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}

		status, err := order.NewStatus(rawStatus)
		if err != nil {
			return nil, fmt.Errorf("invalid status in database: %w", err)
		}
		o.Status = status

		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}
	return orders, nil
}
