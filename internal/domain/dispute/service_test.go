package dispute

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"ticketescrow/internal/controller/apperror"
	"ticketescrow/internal/domain/gateway"
	"ticketescrow/internal/domain/order"
	"ticketescrow/internal/messaging"
)

func disputeService(t *testing.T) (*Service, *MockRepo, *gateway.MockPaymentRails) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockRepo := NewMockRepo(ctrl)
	mockRails := gateway.NewMockPaymentRails(ctrl)
	service := NewService(mockRepo, mockRails, messaging.NewEmitter(nil, nil), 48*time.Hour)

	return service, mockRepo, mockRails
}

func disputedOrder() order.Order {
	return order.Order{
		ID:           "order-1",
		BuyerID:      "buyer-1",
		SellerID:     "seller-1",
		Subtotal:     decimal.NewFromInt(120),
		PlatformFee:  decimal.NewFromInt(24),
		Total:        decimal.NewFromInt(135),
		SellerPayout: decimal.NewFromInt(108),
		Status:       order.StatusDisputed,
	}
}

func openDispute() *Dispute {
	submitted := time.Now().UTC().Add(-time.Hour)
	return &Dispute{
		ID:          "dispute-1",
		OrderID:     "order-1",
		Reason:      ReasonNotReceived,
		Description: "QR code never arrived",
		OpenedBy:    PartyBuyer,
		Buyer: Statement{
			Text:        "QR code never arrived",
			SubmittedAt: &submitted,
		},
		Status:           StatusOpen,
		ResponseDeadline: time.Now().UTC().Add(47 * time.Hour),
	}
}

func expectDisputedOrder(mockRepo *MockRepo, ctx context.Context, o order.Order) {
	expectedQuery, _ := order.NewOrdersQueryBuilder().WithIDs(o.ID).Build()
	mockRepo.EXPECT().GetOrders(ctx, expectedQuery).Return([]order.Order{o}, nil)
}

func expectInTx(mockRepo *MockRepo, ctx context.Context) {
	mockRepo.EXPECT().InTransaction(ctx, gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(tx TxRepo) error) error {
			return fn(mockRepo)
		})
}

func TestService_Respond(t *testing.T) {
	t.Parallel()

	service, mockRepo, _ := disputeService(t)
	ctx := context.Background()

	t.Run("should store the seller's statement and move the dispute under review", func(t *testing.T) {
		// given
		d := openDispute()
		o := disputedOrder()

		expectInTx(mockRepo, ctx)
		mockRepo.EXPECT().GetDisputeByID(ctx, d.ID).Return(d, nil)
		expectDisputedOrder(mockRepo, ctx, o)
		mockRepo.EXPECT().SetStatement(ctx, d.ID, PartySeller, gomock.Any()).DoAndReturn(
			func(ctx context.Context, disputeID string, party Party, st Statement) error {
				assert.Equal(t, "transferred in the official app", st.Text)
				assert.NotNil(t, st.SubmittedAt)
				return nil
			})
		mockRepo.EXPECT().UpdateDisputeStatus(ctx, d.ID, StatusOpen, StatusUnderReview).Return(nil)

		responded := *d
		responded.Status = StatusUnderReview
		mockRepo.EXPECT().GetDisputeByID(ctx, d.ID).Return(&responded, nil)

		// when
		result, err := service.Respond(ctx, d.ID, o.SellerID, "transferred in the official app", nil)

		// then
		assert.NoError(t, err)
		assert.Equal(t, StatusUnderReview, result.Status)
	})

	t.Run("should require a statement", func(t *testing.T) {
		// when
		_, err := service.Respond(ctx, "dispute-1", "seller-1", "", nil)

		// then
		assert.ErrorIs(t, err, apperror.ErrValidation)
	})

	t.Run("should keep statements write-once", func(t *testing.T) {
		// given
		d := openDispute()
		submitted := time.Now().UTC()
		d.Seller = Statement{Text: "already answered", SubmittedAt: &submitted}
		o := disputedOrder()

		expectInTx(mockRepo, ctx)
		mockRepo.EXPECT().GetDisputeByID(ctx, d.ID).Return(d, nil)
		expectDisputedOrder(mockRepo, ctx, o)

		// when
		_, err := service.Respond(ctx, d.ID, o.SellerID, "second try", nil)

		// then
		assert.ErrorIs(t, err, apperror.ErrStatusConflict)
	})

	t.Run("should forbid outsiders", func(t *testing.T) {
		// given
		d := openDispute()
		o := disputedOrder()

		expectInTx(mockRepo, ctx)
		mockRepo.EXPECT().GetDisputeByID(ctx, d.ID).Return(d, nil)
		expectDisputedOrder(mockRepo, ctx, o)

		// when
		_, err := service.Respond(ctx, d.ID, "stranger", "let me in", nil)

		// then
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("should conflict once the dispute is resolved", func(t *testing.T) {
		// given
		d := openDispute()
		d.Status = StatusResolvedBuyer

		expectInTx(mockRepo, ctx)
		mockRepo.EXPECT().GetDisputeByID(ctx, d.ID).Return(d, nil)

		// when
		_, err := service.Respond(ctx, d.ID, "seller-1", "too late", nil)

		// then
		assert.ErrorIs(t, err, apperror.ErrStatusConflict)
	})
}

func TestService_AddEvidence(t *testing.T) {
	t.Parallel()

	service, mockRepo, _ := disputeService(t)
	ctx := context.Background()

	t.Run("should append evidence for a party", func(t *testing.T) {
		// given
		d := openDispute()
		o := disputedOrder()
		evidence := []string{"https://img.example/chat.png"}

		expectInTx(mockRepo, ctx)
		mockRepo.EXPECT().GetDisputeByID(ctx, d.ID).Return(d, nil)
		expectDisputedOrder(mockRepo, ctx, o)
		mockRepo.EXPECT().AppendEvidence(ctx, d.ID, PartyBuyer, evidence).Return(nil)
		mockRepo.EXPECT().GetDisputeByID(ctx, d.ID).Return(d, nil)

		// when
		_, err := service.AddEvidence(ctx, d.ID, o.BuyerID, evidence)

		// then
		assert.NoError(t, err)
	})

	t.Run("should require evidence", func(t *testing.T) {
		// when
		_, err := service.AddEvidence(ctx, "dispute-1", "buyer-1", nil)

		// then
		assert.ErrorIs(t, err, apperror.ErrValidation)
	})

	t.Run("should conflict once the dispute is resolved", func(t *testing.T) {
		// given
		d := openDispute()
		d.Status = StatusClosed

		expectInTx(mockRepo, ctx)
		mockRepo.EXPECT().GetDisputeByID(ctx, d.ID).Return(d, nil)

		// when
		_, err := service.AddEvidence(ctx, d.ID, "buyer-1", []string{"https://img.example/x.png"})

		// then
		assert.ErrorIs(t, err, apperror.ErrStatusConflict)
	})
}

func TestService_Resolve(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("should refund the buyer in full on a buyer-favor outcome", func(t *testing.T) {
		// given
		service, mockRepo, mockRails := disputeService(t)
		d := openDispute()
		d.Status = StatusUnderReview
		o := disputedOrder()

		expectInTx(mockRepo, ctx)
		mockRepo.EXPECT().GetDisputeByID(ctx, d.ID).Return(d, nil)
		expectDisputedOrder(mockRepo, ctx, o)
		mockRepo.EXPECT().UpdateDisputeStatus(ctx, d.ID, StatusUnderReview, StatusResolvedBuyer).Return(nil)
		mockRepo.EXPECT().SetResolution(ctx, d.ID, gomock.Any()).DoAndReturn(
			func(ctx context.Context, disputeID string, res Resolution) error {
				assert.Equal(t, OutcomeBuyerFavor, res.Outcome)
				assert.True(t, res.Allocation.RefundAmount.Equal(o.Total))
				assert.True(t, res.Allocation.SellerPayoutAmount.IsZero())
				assert.Equal(t, "reviewer-1", res.ResolvedBy)
				return nil
			})
		mockRepo.EXPECT().UpdateOrderStatus(ctx, o.ID, order.StatusDisputed, order.StatusRefunded).Return(nil)

		mockRails.EXPECT().Refund(ctx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, req gateway.RefundRequest) (gateway.RefundResult, error) {
				assert.True(t, req.Amount.Equal(o.Total))
				return gateway.RefundResult{ProviderTxID: "tx-1"}, nil
			})
		mockRepo.EXPECT().SetDisputeSettled(ctx, d.ID, gomock.Any()).Return(nil)

		resolved := *d
		resolved.Status = StatusResolvedBuyer
		mockRepo.EXPECT().GetDisputeByID(ctx, d.ID).Return(&resolved, nil)

		// when
		result, err := service.Resolve(ctx, d.ID, "reviewer-1", ResolveRequest{Outcome: OutcomeBuyerFavor})

		// then
		assert.NoError(t, err)
		assert.Equal(t, StatusResolvedBuyer, result.Status)
	})

	t.Run("should release the escrowed payout on a seller-favor outcome", func(t *testing.T) {
		// given
		service, mockRepo, mockRails := disputeService(t)
		d := openDispute()
		d.Status = StatusEscalated
		o := disputedOrder()

		expectInTx(mockRepo, ctx)
		mockRepo.EXPECT().GetDisputeByID(ctx, d.ID).Return(d, nil)
		expectDisputedOrder(mockRepo, ctx, o)
		mockRepo.EXPECT().UpdateDisputeStatus(ctx, d.ID, StatusEscalated, StatusResolvedSeller).Return(nil)
		mockRepo.EXPECT().SetResolution(ctx, d.ID, gomock.Any()).Return(nil)
		mockRepo.EXPECT().UpdateOrderStatus(ctx, o.ID, order.StatusDisputed, order.StatusCompleted).Return(nil)

		mockRails.EXPECT().Release(ctx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, req gateway.ReleaseRequest) (gateway.ReleaseResult, error) {
				assert.True(t, req.Amount.Equal(o.SellerPayout))
				return gateway.ReleaseResult{ProviderTxID: "tx-2"}, nil
			})
		mockRepo.EXPECT().SetDisputeSettled(ctx, d.ID, gomock.Any()).Return(nil)

		mockRepo.EXPECT().GetDisputeByID(ctx, d.ID).Return(d, nil)

		// when
		_, err := service.Resolve(ctx, d.ID, "reviewer-1", ResolveRequest{Outcome: OutcomeSellerFavor})

		// then
		assert.NoError(t, err)
	})

	t.Run("should split the money both ways on a partial outcome", func(t *testing.T) {
		// given
		service, mockRepo, mockRails := disputeService(t)
		d := openDispute()
		d.Status = StatusUnderReview
		o := disputedOrder()
		refund := decimal.NewFromInt(50)
		payout := decimal.NewFromInt(50)

		expectInTx(mockRepo, ctx)
		mockRepo.EXPECT().GetDisputeByID(ctx, d.ID).Return(d, nil)
		expectDisputedOrder(mockRepo, ctx, o)
		mockRepo.EXPECT().UpdateDisputeStatus(ctx, d.ID, StatusUnderReview, StatusResolvedPartial).Return(nil)
		mockRepo.EXPECT().SetResolution(ctx, d.ID, gomock.Any()).Return(nil)
		mockRepo.EXPECT().UpdateOrderStatus(ctx, o.ID, order.StatusDisputed, order.StatusRefunded).Return(nil)

		mockRails.EXPECT().Refund(ctx, gomock.Any()).Return(gateway.RefundResult{}, nil)
		mockRails.EXPECT().Release(ctx, gomock.Any()).Return(gateway.ReleaseResult{}, nil)
		mockRepo.EXPECT().SetDisputeSettled(ctx, d.ID, gomock.Any()).Return(nil)

		mockRepo.EXPECT().GetDisputeByID(ctx, d.ID).Return(d, nil)

		// when
		_, err := service.Resolve(ctx, d.ID, "reviewer-1", ResolveRequest{
			Outcome:            OutcomePartial,
			RefundAmount:       &refund,
			SellerPayoutAmount: &payout,
		})

		// then
		assert.NoError(t, err)
	})

	t.Run("should accept a decision on a dispute still open", func(t *testing.T) {
		// given
		service, mockRepo, mockRails := disputeService(t)
		d := openDispute()
		o := disputedOrder()

		expectInTx(mockRepo, ctx)
		mockRepo.EXPECT().GetDisputeByID(ctx, d.ID).Return(d, nil)
		expectDisputedOrder(mockRepo, ctx, o)
		mockRepo.EXPECT().UpdateDisputeStatus(ctx, d.ID, StatusOpen, StatusResolvedBuyer).Return(nil)
		mockRepo.EXPECT().SetResolution(ctx, d.ID, gomock.Any()).Return(nil)
		mockRepo.EXPECT().UpdateOrderStatus(ctx, o.ID, order.StatusDisputed, order.StatusRefunded).Return(nil)
		mockRails.EXPECT().Refund(ctx, gomock.Any()).Return(gateway.RefundResult{ProviderTxID: "tx-3"}, nil)
		mockRepo.EXPECT().SetDisputeSettled(ctx, d.ID, gomock.Any()).Return(nil)
		mockRepo.EXPECT().GetDisputeByID(ctx, d.ID).Return(d, nil)

		// when
		_, err := service.Resolve(ctx, d.ID, "reviewer-1", ResolveRequest{Outcome: OutcomeBuyerFavor})

		// then
		assert.NoError(t, err)
	})

	t.Run("should leave the dispute unsettled when the refund fails", func(t *testing.T) {
		// given
		service, mockRepo, mockRails := disputeService(t)
		d := openDispute()
		d.Status = StatusUnderReview
		o := disputedOrder()

		expectInTx(mockRepo, ctx)
		mockRepo.EXPECT().GetDisputeByID(ctx, d.ID).Return(d, nil)
		expectDisputedOrder(mockRepo, ctx, o)
		mockRepo.EXPECT().UpdateDisputeStatus(ctx, d.ID, StatusUnderReview, StatusResolvedBuyer).Return(nil)
		mockRepo.EXPECT().SetResolution(ctx, d.ID, gomock.Any()).Return(nil)
		mockRepo.EXPECT().UpdateOrderStatus(ctx, o.ID, order.StatusDisputed, order.StatusRefunded).Return(nil)
		mockRails.EXPECT().Refund(ctx, gomock.Any()).
			Return(gateway.RefundResult{}, errors.New("provider down"))
		// No SetDisputeSettled: the settlement sweep owes a retry.
		mockRepo.EXPECT().GetDisputeByID(ctx, d.ID).Return(d, nil)

		// when
		_, err := service.Resolve(ctx, d.ID, "reviewer-1", ResolveRequest{Outcome: OutcomeBuyerFavor})

		// then
		assert.NoError(t, err)
	})

	t.Run("should conflict when already resolved", func(t *testing.T) {
		// given
		service, mockRepo, _ := disputeService(t)
		d := openDispute()
		d.Status = StatusResolvedSeller

		expectInTx(mockRepo, ctx)
		mockRepo.EXPECT().GetDisputeByID(ctx, d.ID).Return(d, nil)

		// when
		_, err := service.Resolve(ctx, d.ID, "reviewer-1", ResolveRequest{Outcome: OutcomeBuyerFavor})

		// then
		assert.ErrorIs(t, err, apperror.ErrStatusConflict)
	})

	t.Run("should reject an unknown outcome before touching the repo", func(t *testing.T) {
		// given
		service, _, _ := disputeService(t)

		// when
		_, err := service.Resolve(ctx, "dispute-1", "reviewer-1", ResolveRequest{Outcome: "flip_a_coin"})

		// then
		assert.ErrorIs(t, err, apperror.ErrValidation)
	})
}

func TestService_RequestStatement(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("should put the seller on the response clock", func(t *testing.T) {
		// given
		service, mockRepo, _ := disputeService(t)
		d := openDispute()
		d.Status = StatusUnderReview

		expectInTx(mockRepo, ctx)
		mockRepo.EXPECT().GetDisputeByID(ctx, d.ID).Return(d, nil)
		mockRepo.EXPECT().UpdateDisputeStatus(ctx, d.ID, StatusUnderReview, StatusAwaitingSeller).Return(nil)
		mockRepo.EXPECT().SetResponseDeadline(ctx, d.ID, gomock.Any()).DoAndReturn(
			func(ctx context.Context, disputeID string, deadline time.Time) error {
				assert.True(t, deadline.After(time.Now().UTC().Add(47*time.Hour)))
				return nil
			})

		awaiting := *d
		awaiting.Status = StatusAwaitingSeller
		mockRepo.EXPECT().GetDisputeByID(ctx, d.ID).Return(&awaiting, nil)

		// when
		result, err := service.RequestStatement(ctx, d.ID, "reviewer-1", PartySeller)

		// then
		assert.NoError(t, err)
		assert.Equal(t, StatusAwaitingSeller, result.Status)
	})

	t.Run("should conflict once the dispute is resolved", func(t *testing.T) {
		// given
		service, mockRepo, _ := disputeService(t)
		d := openDispute()
		d.Status = StatusResolvedBuyer

		expectInTx(mockRepo, ctx)
		mockRepo.EXPECT().GetDisputeByID(ctx, d.ID).Return(d, nil)

		// when
		_, err := service.RequestStatement(ctx, d.ID, "reviewer-1", PartySeller)

		// then
		assert.ErrorIs(t, err, apperror.ErrStatusConflict)
	})

	t.Run("should conflict when the party already submitted their statement", func(t *testing.T) {
		// given
		service, mockRepo, _ := disputeService(t)
		d := openDispute()
		d.Status = StatusUnderReview

		expectInTx(mockRepo, ctx)
		mockRepo.EXPECT().GetDisputeByID(ctx, d.ID).Return(d, nil)

		// when
		_, err := service.RequestStatement(ctx, d.ID, "reviewer-1", PartyBuyer)

		// then
		assert.ErrorIs(t, err, apperror.ErrStatusConflict)
	})
}

func TestService_RetrySettlements(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	asOf := time.Now().UTC()

	t.Run("should replay the split and mark the dispute settled", func(t *testing.T) {
		// given
		service, mockRepo, mockRails := disputeService(t)
		o := disputedOrder()
		o.Status = order.StatusRefunded
		d := openDispute()
		d.Status = StatusResolvedBuyer
		d.Resolution = OutcomeBuyerFavor
		d.RefundAmount = &o.Total

		mockRepo.EXPECT().ListUnsettledResolved(ctx, asOf).Return([]Dispute{*d}, nil)
		expectDisputedOrder(mockRepo, ctx, o)
		mockRails.EXPECT().Refund(ctx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, req gateway.RefundRequest) (gateway.RefundResult, error) {
				assert.True(t, req.Amount.Equal(o.Total))
				assert.Equal(t, "refund-order-1", req.IdempotencyKey)
				return gateway.RefundResult{ProviderTxID: "tx-4"}, nil
			})
		mockRepo.EXPECT().SetDisputeSettled(ctx, d.ID, gomock.Any()).Return(nil)

		// when
		err := service.RetrySettlements(ctx, asOf)

		// then
		assert.NoError(t, err)
	})

	t.Run("should leave the dispute unsettled when the rails fail again", func(t *testing.T) {
		// given
		service, mockRepo, mockRails := disputeService(t)
		o := disputedOrder()
		d := openDispute()
		d.Status = StatusResolvedSeller
		d.Resolution = OutcomeSellerFavor
		d.SellerPayoutAmount = &o.SellerPayout

		mockRepo.EXPECT().ListUnsettledResolved(ctx, asOf).Return([]Dispute{*d}, nil)
		expectDisputedOrder(mockRepo, ctx, o)
		mockRails.EXPECT().Release(ctx, gomock.Any()).
			Return(gateway.ReleaseResult{}, errors.New("provider down"))

		// when
		err := service.RetrySettlements(ctx, asOf)

		// then
		assert.NoError(t, err)
	})

	t.Run("should do nothing when every resolution has settled", func(t *testing.T) {
		// given
		service, mockRepo, _ := disputeService(t)
		mockRepo.EXPECT().ListUnsettledResolved(ctx, asOf).Return(nil, nil)

		// when
		err := service.RetrySettlements(ctx, asOf)

		// then
		assert.NoError(t, err)
	})
}

func TestService_ExpireResponseTimeouts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	asOf := time.Now().UTC()

	t.Run("should escalate and record the silent party", func(t *testing.T) {
		// given
		service, mockRepo, _ := disputeService(t)
		d := openDispute()
		d.ResponseDeadline = asOf.Add(-time.Hour)

		mockRepo.EXPECT().ListResponseExpired(ctx, asOf).Return([]Dispute{*d}, nil)
		expectInTx(mockRepo, ctx)
		mockRepo.EXPECT().UpdateDisputeStatus(ctx, d.ID, StatusOpen, StatusEscalated).Return(nil)
		mockRepo.EXPECT().SetDefaultedParty(ctx, d.ID, PartySeller).Return(nil)

		// when
		err := service.ExpireResponseTimeouts(ctx, asOf)

		// then
		assert.NoError(t, err)
	})

	t.Run("should record the buyer as defaulted when they ignored a statement request", func(t *testing.T) {
		// given
		service, mockRepo, _ := disputeService(t)
		d := openDispute()
		d.Status = StatusAwaitingBuyer
		d.ResponseDeadline = asOf.Add(-time.Hour)

		mockRepo.EXPECT().ListResponseExpired(ctx, asOf).Return([]Dispute{*d}, nil)
		expectInTx(mockRepo, ctx)
		mockRepo.EXPECT().UpdateDisputeStatus(ctx, d.ID, StatusAwaitingBuyer, StatusEscalated).Return(nil)
		mockRepo.EXPECT().SetDefaultedParty(ctx, d.ID, PartyBuyer).Return(nil)

		// when
		err := service.ExpireResponseTimeouts(ctx, asOf)

		// then
		assert.NoError(t, err)
	})

	t.Run("should not escalate when the awaited party already responded", func(t *testing.T) {
		// given
		service, mockRepo, _ := disputeService(t)
		d := openDispute()
		d.ResponseDeadline = asOf.Add(-time.Hour)
		submitted := asOf.Add(-30 * time.Minute)
		d.Seller = Statement{Text: "responded in time", SubmittedAt: &submitted}

		mockRepo.EXPECT().ListResponseExpired(ctx, asOf).Return([]Dispute{*d}, nil)

		// when
		err := service.ExpireResponseTimeouts(ctx, asOf)

		// then
		assert.NoError(t, err)
	})

	t.Run("should skip a dispute that moved on concurrently", func(t *testing.T) {
		// given
		service, mockRepo, _ := disputeService(t)
		d := openDispute()
		d.ResponseDeadline = asOf.Add(-time.Hour)

		mockRepo.EXPECT().ListResponseExpired(ctx, asOf).Return([]Dispute{*d}, nil)
		expectInTx(mockRepo, ctx)
		mockRepo.EXPECT().UpdateDisputeStatus(ctx, d.ID, StatusOpen, StatusEscalated).
			Return(apperror.ErrStatusConflict)

		// when
		err := service.ExpireResponseTimeouts(ctx, asOf)

		// then
		assert.NoError(t, err)
	})
}
