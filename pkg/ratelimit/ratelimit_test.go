package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter_Allow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("first call in window sets TTL and is allowed", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		limiter := New(client, time.Minute)

		mock.ExpectIncr("ratelimit:seller-1:create_listing").SetVal(1)
		mock.ExpectExpire("ratelimit:seller-1:create_listing", time.Minute).SetVal(true)

		ok, err := limiter.Allow(ctx, "seller-1", "create_listing", 5)

		require.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("call over limit is rejected", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		limiter := New(client, time.Minute)

		mock.ExpectIncr("ratelimit:buyer-2:purchase").SetVal(6)

		ok, err := limiter.Allow(ctx, "buyer-2", "purchase", 5)

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("redis failure fails open", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		limiter := New(client, time.Minute)

		mock.ExpectIncr("ratelimit:buyer-2:purchase").SetErr(errors.New("connection refused"))

		ok, err := limiter.Allow(ctx, "buyer-2", "purchase", 5)

		assert.Error(t, err)
		assert.True(t, ok)
	})
}
