package dispute

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		from    Status
		to      Status
		allowed bool
	}{
		{"open moves under review", StatusOpen, StatusUnderReview, true},
		{"open escalates", StatusOpen, StatusEscalated, true},
		{"reviewer may decide an open dispute", StatusOpen, StatusResolvedBuyer, true},
		{"under review puts the seller on the clock", StatusUnderReview, StatusAwaitingSeller, true},
		{"under review puts the buyer on the clock", StatusUnderReview, StatusAwaitingBuyer, true},
		{"awaiting seller returns under review", StatusAwaitingSeller, StatusUnderReview, true},
		{"awaiting buyer escalates", StatusAwaitingBuyer, StatusEscalated, true},
		{"escalated resolves partial", StatusEscalated, StatusResolvedPartial, true},
		{"under review closes without allocation", StatusUnderReview, StatusClosed, true},
		{"resolved is terminal", StatusResolvedBuyer, StatusUnderReview, false},
		{"resolved cannot flip outcome", StatusResolvedSeller, StatusResolvedBuyer, false},
		{"closed is terminal", StatusClosed, StatusEscalated, false},
		{"escalated cannot reopen", StatusEscalated, StatusOpen, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestStatus_AwaitingParty(t *testing.T) {
	t.Parallel()

	t.Run("should name the party on the response clock", func(t *testing.T) {
		party, onClock := StatusAwaitingSeller.AwaitingParty()
		assert.True(t, onClock)
		assert.Equal(t, PartySeller, party)

		party, onClock = StatusAwaitingBuyer.AwaitingParty()
		assert.True(t, onClock)
		assert.Equal(t, PartyBuyer, party)
	})

	t.Run("should report no clock outside the awaiting statuses", func(t *testing.T) {
		_, onClock := StatusOpen.AwaitingParty()
		assert.False(t, onClock)

		_, onClock = StatusEscalated.AwaitingParty()
		assert.False(t, onClock)
	})
}
