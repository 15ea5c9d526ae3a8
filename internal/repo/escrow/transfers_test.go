package escrow_repo

import (
	"context"
	"testing"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketescrow/internal/controller/apperror"
	"ticketescrow/internal/domain/transfer"
)

func TestGetTransferByOrderID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &repo{db: mock, builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)}
	ctx := context.Background()

	t.Run("should return the transfer for the order", func(t *testing.T) {
		now := time.Now()
		deadline := now.Add(24 * time.Hour)

		rows := mock.NewRows([]string{"order_id", "status", "seller_proof_urls", "seller_notes",
			"proof_submitted_at", "buyer_action_at", "response_deadline", "created_at", "updated_at"}).
			AddRow("order-1", "awaiting_proof", []string(nil), "",
				(*time.Time)(nil), (*time.Time)(nil), deadline, now, now)

		mock.ExpectQuery(`SELECT order_id, status, seller_proof_urls, seller_notes, proof_submitted_at, buyer_action_at, response_deadline, created_at, updated_at FROM transfers WHERE order_id = \$1`).
			WithArgs("order-1").
			WillReturnRows(rows)

		result, err := repo.GetTransferByOrderID(ctx, "order-1")

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, "order-1", result.OrderID)
		assert.Equal(t, transfer.StatusAwaitingProof, result.Status)
	})

	t.Run("should return nil when no transfer exists", func(t *testing.T) {
		rows := mock.NewRows([]string{"order_id", "status", "seller_proof_urls", "seller_notes",
			"proof_submitted_at", "buyer_action_at", "response_deadline", "created_at", "updated_at"})

		mock.ExpectQuery(`SELECT .* FROM transfers WHERE order_id = \$1`).
			WithArgs("order-9").
			WillReturnRows(rows)

		result, err := repo.GetTransferByOrderID(ctx, "order-9")

		require.NoError(t, err)
		assert.Nil(t, result)
	})
}

func TestOpenTransferWindow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &repo{db: mock, builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)}
	ctx := context.Background()

	t.Run("should insert the hand-over record with the proof deadline", func(t *testing.T) {
		deadline := time.Now().UTC().Add(24 * time.Hour)

		mock.ExpectExec(`INSERT INTO transfers \(order_id,status,response_deadline,created_at,updated_at\) VALUES \(\$1,\$2,\$3,\$4,\$5\)`).
			WithArgs("order-1", transfer.StatusAwaitingProof, deadline, pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := repo.OpenTransferWindow(ctx, "order-1", deadline)

		require.NoError(t, err)
	})

	t.Run("should handle database error", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO transfers`).
			WillReturnError(assert.AnError)

		err := repo.OpenTransferWindow(ctx, "order-1", time.Now())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "open transfer window")
	})
}

func TestUpdateTransferStatus(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &repo{db: mock, builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)}
	ctx := context.Background()

	t.Run("should apply the transition when the expected status holds", func(t *testing.T) {
		mock.ExpectExec(`UPDATE transfers SET status = \$1, updated_at = NOW\(\) WHERE order_id = \$2 AND status = \$3`).
			WithArgs(transfer.StatusProofSubmitted, "order-1", transfer.StatusAwaitingProof).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.UpdateTransferStatus(ctx, "order-1", transfer.StatusAwaitingProof, transfer.StatusProofSubmitted)

		require.NoError(t, err)
	})

	t.Run("should report a conflict when a concurrent writer won", func(t *testing.T) {
		mock.ExpectExec(`UPDATE transfers SET status = \$1, updated_at = NOW\(\) WHERE order_id = \$2 AND status = \$3`).
			WithArgs(transfer.StatusProofSubmitted, "order-1", transfer.StatusAwaitingProof).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.UpdateTransferStatus(ctx, "order-1", transfer.StatusAwaitingProof, transfer.StatusProofSubmitted)

		require.Error(t, err)
		assert.ErrorIs(t, err, apperror.ErrStatusConflict)
	})
}
