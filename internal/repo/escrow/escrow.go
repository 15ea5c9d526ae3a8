// Package escrow_repo persists the escrow side of the system: orders, their
// transfers and disputes, plus the listing inventory writes that must commit
// with them. One shared query core backs three domain-facing repositories so
// a workflow transaction can span all of these tables.
package escrow_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"ticketescrow/internal/domain/dispute"
	"ticketescrow/internal/domain/order"
	"ticketescrow/internal/domain/transfer"
	"ticketescrow/pkg/postgres"
)

type repo struct {
	db      postgres.Executor
	builder squirrel.StatementBuilderType
}

// PgOrderRepo exposes the escrow store as the order repository.
type PgOrderRepo struct {
	pg *postgres.Postgres
	repo
}

func NewPgOrderRepo(pg *postgres.Postgres) order.OrderRepo {
	return &PgOrderRepo{pg: pg, repo: repo{db: pg.Pool, builder: pg.Builder}}
}

func (r *PgOrderRepo) InTransaction(ctx context.Context, fn func(tx order.TxOrderRepo) error) error {
	return r.pg.InTransaction(ctx, func(tx postgres.Executor) error {
		return fn(&repo{db: tx, builder: r.pg.Builder})
	})
}

// PgTransferRepo exposes the escrow store as the transfer workflow
// repository, whose transactions also touch orders and disputes.
type PgTransferRepo struct {
	pg *postgres.Postgres
	repo
}

func NewPgTransferRepo(pg *postgres.Postgres) transfer.Repo {
	return &PgTransferRepo{pg: pg, repo: repo{db: pg.Pool, builder: pg.Builder}}
}

func (r *PgTransferRepo) InTransaction(ctx context.Context, fn func(tx transfer.TxRepo) error) error {
	return r.pg.InTransaction(ctx, func(tx postgres.Executor) error {
		return fn(&repo{db: tx, builder: r.pg.Builder})
	})
}

// PgDisputeRepo exposes the escrow store as the dispute repository, whose
// resolution transactions also move the order.
type PgDisputeRepo struct {
	pg *postgres.Postgres
	repo
}

func NewPgDisputeRepo(pg *postgres.Postgres) dispute.Repo {
	return &PgDisputeRepo{pg: pg, repo: repo{db: pg.Pool, builder: pg.Builder}}
}

func (r *PgDisputeRepo) InTransaction(ctx context.Context, fn func(tx dispute.TxRepo) error) error {
	return r.pg.InTransaction(ctx, func(tx postgres.Executor) error {
		return fn(&repo{db: tx, builder: r.pg.Builder})
	})
}
