package transfer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"ticketescrow/internal/controller/apperror"
	"ticketescrow/internal/domain/dispute"
	"ticketescrow/internal/domain/gateway"
	"ticketescrow/internal/domain/order"
	"ticketescrow/internal/messaging"
)

func transferService(t *testing.T, autoConfirm bool) (*Service, *MockRepo, *gateway.MockPaymentRails) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockRepo := NewMockRepo(ctrl)
	mockRails := gateway.NewMockPaymentRails(ctrl)
	service := NewService(mockRepo, mockRails, messaging.NewEmitter(nil, nil), 24*time.Hour, 48*time.Hour, autoConfirm)

	return service, mockRepo, mockRails
}

func confirmedOrder() order.Order {
	return order.Order{
		ID:           "order-1",
		ListingID:    "listing-1",
		BuyerID:      "buyer-1",
		SellerID:     "seller-1",
		Quantity:     1,
		Total:        decimal.NewFromInt(135),
		SellerPayout: decimal.NewFromInt(108),
		Status:       order.StatusConfirmed,
	}
}

func expectGetOrder(mockRepo *MockRepo, ctx context.Context, o order.Order) {
	expectedQuery, _ := order.NewOrdersQueryBuilder().WithIDs(o.ID).Build()
	mockRepo.EXPECT().GetOrders(ctx, expectedQuery).Return([]order.Order{o}, nil)
}

func expectInTx(mockRepo *MockRepo, ctx context.Context) {
	mockRepo.EXPECT().InTransaction(ctx, gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(tx TxRepo) error) error {
			return fn(mockRepo)
		})
}

func TestService_SubmitProof(t *testing.T) {
	t.Parallel()

	service, mockRepo, _ := transferService(t, true)
	ctx := context.Background()

	t.Run("should record proof and start the buyer response window", func(t *testing.T) {
		// given
		o := confirmedOrder()
		proofs := []string{"https://img.example/ticket.png"}

		expectInTx(mockRepo, ctx)
		expectGetOrder(mockRepo, ctx, o)
		mockRepo.EXPECT().UpdateTransferStatus(ctx, o.ID, StatusAwaitingProof, StatusProofSubmitted).Return(nil)
		mockRepo.EXPECT().SetProof(ctx, o.ID, proofs, "sent via app", gomock.Any(), gomock.Any()).Return(nil)
		mockRepo.EXPECT().UpdateOrderStatus(ctx, o.ID, order.StatusConfirmed, order.StatusTransferPending).Return(nil)
		mockRepo.EXPECT().GetTransferByOrderID(ctx, o.ID).Return(&Transfer{
			OrderID:         o.ID,
			Status:          StatusProofSubmitted,
			SellerProofURLs: proofs,
		}, nil)

		// when
		result, err := service.SubmitProof(ctx, o.ID, o.SellerID, proofs, "sent via app")

		// then
		assert.NoError(t, err)
		assert.Equal(t, StatusProofSubmitted, result.Status)
	})

	t.Run("should require at least one proof URL", func(t *testing.T) {
		// when
		_, err := service.SubmitProof(ctx, "order-1", "seller-1", nil, "")

		// then
		assert.ErrorIs(t, err, apperror.ErrValidation)
	})

	t.Run("should forbid anyone but the seller", func(t *testing.T) {
		// given
		o := confirmedOrder()
		expectInTx(mockRepo, ctx)
		expectGetOrder(mockRepo, ctx, o)

		// when
		_, err := service.SubmitProof(ctx, o.ID, o.BuyerID, []string{"https://img.example/x.png"}, "")

		// then
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("should conflict on a second submission", func(t *testing.T) {
		// given
		o := confirmedOrder()
		expectInTx(mockRepo, ctx)
		expectGetOrder(mockRepo, ctx, o)
		mockRepo.EXPECT().UpdateTransferStatus(ctx, o.ID, StatusAwaitingProof, StatusProofSubmitted).
			Return(apperror.ErrStatusConflict)

		// when
		_, err := service.SubmitProof(ctx, o.ID, o.SellerID, []string{"https://img.example/x.png"}, "")

		// then
		assert.ErrorIs(t, err, apperror.ErrStatusConflict)
	})
}

func TestService_ConfirmReceipt(t *testing.T) {
	t.Parallel()

	service, mockRepo, mockRails := transferService(t, true)
	ctx := context.Background()

	t.Run("should complete the order and release the payout", func(t *testing.T) {
		// given
		o := confirmedOrder()
		o.Status = order.StatusTransferPending

		expectInTx(mockRepo, ctx)
		expectGetOrder(mockRepo, ctx, o)
		mockRepo.EXPECT().UpdateTransferStatus(ctx, o.ID, StatusProofSubmitted, StatusConfirmed).Return(nil)
		mockRepo.EXPECT().SetBuyerActionAt(ctx, o.ID, gomock.Any()).Return(nil)
		mockRepo.EXPECT().UpdateOrderStatus(ctx, o.ID, order.StatusTransferPending, order.StatusTransferred).Return(nil)

		mockRails.EXPECT().Release(ctx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, req gateway.ReleaseRequest) (gateway.ReleaseResult, error) {
				assert.Equal(t, o.SellerID, req.SellerID)
				assert.True(t, req.Amount.Equal(o.SellerPayout))
				assert.Equal(t, "release-order-1", req.IdempotencyKey)
				return gateway.ReleaseResult{ProviderTxID: "tx-9"}, nil
			})
		mockRepo.EXPECT().UpdateOrderStatus(ctx, o.ID, order.StatusTransferred, order.StatusCompleted).Return(nil)

		// when
		err := service.ConfirmReceipt(ctx, o.ID, o.BuyerID)

		// then
		assert.NoError(t, err)
	})

	t.Run("should forbid anyone but the buyer", func(t *testing.T) {
		// given
		o := confirmedOrder()
		expectInTx(mockRepo, ctx)
		expectGetOrder(mockRepo, ctx, o)

		// when
		err := service.ConfirmReceipt(ctx, o.ID, o.SellerID)

		// then
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("should leave the order transferred when the release fails", func(t *testing.T) {
		// given
		o := confirmedOrder()
		o.Status = order.StatusTransferPending

		expectInTx(mockRepo, ctx)
		expectGetOrder(mockRepo, ctx, o)
		mockRepo.EXPECT().UpdateTransferStatus(ctx, o.ID, StatusProofSubmitted, StatusConfirmed).Return(nil)
		mockRepo.EXPECT().SetBuyerActionAt(ctx, o.ID, gomock.Any()).Return(nil)
		mockRepo.EXPECT().UpdateOrderStatus(ctx, o.ID, order.StatusTransferPending, order.StatusTransferred).Return(nil)
		mockRails.EXPECT().Release(ctx, gomock.Any()).
			Return(gateway.ReleaseResult{}, errors.New("provider down"))

		// when
		err := service.ConfirmReceipt(ctx, o.ID, o.BuyerID)

		// then
		assert.ErrorIs(t, err, apperror.ErrExternalDependency)
	})
}

func TestService_ReportIssue(t *testing.T) {
	t.Parallel()

	service, mockRepo, _ := transferService(t, true)
	ctx := context.Background()

	t.Run("should move the order to disputed and open the dispute atomically", func(t *testing.T) {
		// given
		o := confirmedOrder()
		o.Status = order.StatusTransferPending

		expectInTx(mockRepo, ctx)
		expectGetOrder(mockRepo, ctx, o)
		mockRepo.EXPECT().GetDisputeByOrderID(ctx, o.ID).Return(nil, nil)
		mockRepo.EXPECT().UpdateTransferStatus(ctx, o.ID, StatusProofSubmitted, StatusIssueReported).Return(nil)
		mockRepo.EXPECT().SetBuyerActionAt(ctx, o.ID, gomock.Any()).Return(nil)
		mockRepo.EXPECT().UpdateOrderStatus(ctx, o.ID, order.StatusTransferPending, order.StatusDisputed).Return(nil)
		mockRepo.EXPECT().CreateDispute(ctx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, d dispute.Dispute) error {
				assert.Equal(t, o.ID, d.OrderID)
				assert.Equal(t, dispute.StatusOpen, d.Status)
				assert.Equal(t, dispute.PartyBuyer, d.OpenedBy)
				assert.Equal(t, dispute.ReasonNotReceived, d.Reason)
				return nil
			})

		// when
		opened, err := service.ReportIssue(ctx, o.ID, o.BuyerID, dispute.ReasonNotReceived, "QR code never arrived")

		// then
		assert.NoError(t, err)
		assert.Equal(t, dispute.StatusOpen, opened.Status)
		assert.NotEmpty(t, opened.ID)
	})

	t.Run("should require a description", func(t *testing.T) {
		// when
		_, err := service.ReportIssue(ctx, "order-1", "buyer-1", dispute.ReasonOther, "")

		// then
		assert.ErrorIs(t, err, apperror.ErrValidation)
	})

	t.Run("should conflict when the order cannot be disputed", func(t *testing.T) {
		// given
		o := confirmedOrder()
		o.Status = order.StatusCompleted

		expectInTx(mockRepo, ctx)
		expectGetOrder(mockRepo, ctx, o)

		// when
		_, err := service.ReportIssue(ctx, o.ID, o.BuyerID, dispute.ReasonNotReceived, "QR code never arrived")

		// then
		assert.ErrorIs(t, err, apperror.ErrStatusConflict)
	})

	t.Run("should conflict when a dispute is already open", func(t *testing.T) {
		// given
		o := confirmedOrder()
		o.Status = order.StatusTransferPending

		expectInTx(mockRepo, ctx)
		expectGetOrder(mockRepo, ctx, o)
		mockRepo.EXPECT().GetDisputeByOrderID(ctx, o.ID).
			Return(&dispute.Dispute{ID: "dispute-1", OrderID: o.ID}, nil)

		// when
		_, err := service.ReportIssue(ctx, o.ID, o.BuyerID, dispute.ReasonInvalidTicket, "scanned as used")

		// then
		assert.ErrorIs(t, err, apperror.ErrStatusConflict)
	})
}

func TestService_ExpireSellerProofTimeouts(t *testing.T) {
	t.Parallel()

	service, mockRepo, mockRails := transferService(t, true)
	ctx := context.Background()
	asOf := time.Now().UTC()

	t.Run("should cancel the order, refund the buyer and close the transfer", func(t *testing.T) {
		// given
		o := confirmedOrder()
		expired := Transfer{OrderID: o.ID, Status: StatusAwaitingProof, ResponseDeadline: asOf.Add(-time.Hour)}

		mockRepo.EXPECT().ListAwaitingProofExpired(ctx, asOf).Return([]Transfer{expired}, nil)
		expectGetOrder(mockRepo, ctx, o)
		mockRepo.EXPECT().UpdateOrderStatus(ctx, o.ID, order.StatusConfirmed, order.StatusCancelled).Return(nil)
		mockRails.EXPECT().Refund(ctx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, req gateway.RefundRequest) (gateway.RefundResult, error) {
				assert.Equal(t, o.BuyerID, req.BuyerID)
				assert.True(t, req.Amount.Equal(o.Total))
				assert.Equal(t, "refund-order-1", req.IdempotencyKey)
				return gateway.RefundResult{ProviderTxID: "tx-7"}, nil
			})
		mockRepo.EXPECT().UpdateTransferStatus(ctx, o.ID, StatusAwaitingProof, StatusCancelled).Return(nil)

		// when
		err := service.ExpireSellerProofTimeouts(ctx, asOf)

		// then
		assert.NoError(t, err)
	})

	t.Run("should keep the transfer open when the refund fails", func(t *testing.T) {
		// given
		o := confirmedOrder()
		expired := Transfer{OrderID: o.ID, Status: StatusAwaitingProof, ResponseDeadline: asOf.Add(-time.Hour)}

		mockRepo.EXPECT().ListAwaitingProofExpired(ctx, asOf).Return([]Transfer{expired}, nil)
		expectGetOrder(mockRepo, ctx, o)
		mockRepo.EXPECT().UpdateOrderStatus(ctx, o.ID, order.StatusConfirmed, order.StatusCancelled).Return(nil)
		mockRails.EXPECT().Refund(ctx, gomock.Any()).
			Return(gateway.RefundResult{}, errors.New("provider down"))
		// No UpdateTransferStatus: the transfer stays awaiting_proof so the
		// next pass picks it up again.

		// when
		err := service.ExpireSellerProofTimeouts(ctx, asOf)

		// then
		assert.NoError(t, err)
	})

	t.Run("should retry the refund for an already-cancelled order", func(t *testing.T) {
		// given
		o := confirmedOrder()
		o.Status = order.StatusCancelled
		expired := Transfer{OrderID: o.ID, Status: StatusAwaitingProof, ResponseDeadline: asOf.Add(-time.Hour)}

		mockRepo.EXPECT().ListAwaitingProofExpired(ctx, asOf).Return([]Transfer{expired}, nil)
		expectGetOrder(mockRepo, ctx, o)
		mockRails.EXPECT().Refund(ctx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, req gateway.RefundRequest) (gateway.RefundResult, error) {
				assert.Equal(t, "refund-order-1", req.IdempotencyKey)
				return gateway.RefundResult{ProviderTxID: "tx-8"}, nil
			})
		mockRepo.EXPECT().UpdateTransferStatus(ctx, o.ID, StatusAwaitingProof, StatusCancelled).Return(nil)

		// when
		err := service.ExpireSellerProofTimeouts(ctx, asOf)

		// then
		assert.NoError(t, err)
	})

	t.Run("should skip an order that moved on concurrently", func(t *testing.T) {
		// given
		o := confirmedOrder()
		expired := Transfer{OrderID: o.ID, Status: StatusAwaitingProof, ResponseDeadline: asOf.Add(-time.Hour)}

		mockRepo.EXPECT().ListAwaitingProofExpired(ctx, asOf).Return([]Transfer{expired}, nil)
		expectGetOrder(mockRepo, ctx, o)
		mockRepo.EXPECT().UpdateOrderStatus(ctx, o.ID, order.StatusConfirmed, order.StatusCancelled).
			Return(apperror.ErrStatusConflict)

		// when
		err := service.ExpireSellerProofTimeouts(ctx, asOf)

		// then
		assert.NoError(t, err)
	})

	t.Run("should do nothing when no deadlines lapsed", func(t *testing.T) {
		// given
		mockRepo.EXPECT().ListAwaitingProofExpired(ctx, asOf).Return(nil, nil)

		// when
		err := service.ExpireSellerProofTimeouts(ctx, asOf)

		// then
		assert.NoError(t, err)
	})
}

func TestService_RetryPendingReleases(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	asOf := time.Now().UTC()
	stuckQuery, _ := order.NewOrdersQueryBuilder().WithStatuses(order.StatusTransferred).Build()

	t.Run("should release the payout and complete a stuck order", func(t *testing.T) {
		// given
		service, mockRepo, mockRails := transferService(t, true)
		o := confirmedOrder()
		o.Status = order.StatusTransferred
		o.UpdatedAt = asOf.Add(-time.Hour)

		mockRepo.EXPECT().GetOrders(ctx, stuckQuery).Return([]order.Order{o}, nil)
		mockRails.EXPECT().Release(ctx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, req gateway.ReleaseRequest) (gateway.ReleaseResult, error) {
				assert.Equal(t, o.SellerID, req.SellerID)
				assert.True(t, req.Amount.Equal(o.SellerPayout))
				assert.Equal(t, "release-order-1", req.IdempotencyKey)
				return gateway.ReleaseResult{ProviderTxID: "tx-11"}, nil
			})
		mockRepo.EXPECT().UpdateOrderStatus(ctx, o.ID, order.StatusTransferred, order.StatusCompleted).Return(nil)

		// when
		err := service.RetryPendingReleases(ctx, asOf)

		// then
		assert.NoError(t, err)
	})

	t.Run("should skip an order confirmed after the sweep cutoff", func(t *testing.T) {
		// given
		service, mockRepo, _ := transferService(t, true)
		o := confirmedOrder()
		o.Status = order.StatusTransferred
		o.UpdatedAt = asOf.Add(time.Second)

		mockRepo.EXPECT().GetOrders(ctx, stuckQuery).Return([]order.Order{o}, nil)

		// when
		err := service.RetryPendingReleases(ctx, asOf)

		// then
		assert.NoError(t, err)
	})

	t.Run("should leave the order for the next pass when the release fails again", func(t *testing.T) {
		// given
		service, mockRepo, mockRails := transferService(t, true)
		o := confirmedOrder()
		o.Status = order.StatusTransferred
		o.UpdatedAt = asOf.Add(-time.Hour)

		mockRepo.EXPECT().GetOrders(ctx, stuckQuery).Return([]order.Order{o}, nil)
		mockRails.EXPECT().Release(ctx, gomock.Any()).
			Return(gateway.ReleaseResult{}, errors.New("provider down"))

		// when
		err := service.RetryPendingReleases(ctx, asOf)

		// then
		assert.NoError(t, err)
	})

	t.Run("should skip an order completed concurrently", func(t *testing.T) {
		// given
		service, mockRepo, mockRails := transferService(t, true)
		o := confirmedOrder()
		o.Status = order.StatusTransferred
		o.UpdatedAt = asOf.Add(-time.Hour)

		mockRepo.EXPECT().GetOrders(ctx, stuckQuery).Return([]order.Order{o}, nil)
		mockRails.EXPECT().Release(ctx, gomock.Any()).Return(gateway.ReleaseResult{ProviderTxID: "tx-12"}, nil)
		mockRepo.EXPECT().UpdateOrderStatus(ctx, o.ID, order.StatusTransferred, order.StatusCompleted).
			Return(apperror.ErrStatusConflict)

		// when
		err := service.RetryPendingReleases(ctx, asOf)

		// then
		assert.NoError(t, err)
	})
}

func TestService_ExpireBuyerResponseTimeouts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	asOf := time.Now().UTC()

	t.Run("should auto-confirm in the seller's favor and release the payout", func(t *testing.T) {
		// given
		service, mockRepo, mockRails := transferService(t, true)
		o := confirmedOrder()
		o.Status = order.StatusTransferPending
		expired := Transfer{OrderID: o.ID, Status: StatusProofSubmitted, ResponseDeadline: asOf.Add(-time.Hour)}

		mockRepo.EXPECT().ListProofSubmittedExpired(ctx, asOf).Return([]Transfer{expired}, nil)
		expectInTx(mockRepo, ctx)
		expectGetOrder(mockRepo, ctx, o)
		mockRepo.EXPECT().UpdateTransferStatus(ctx, o.ID, StatusProofSubmitted, StatusConfirmed).Return(nil)
		mockRepo.EXPECT().UpdateOrderStatus(ctx, o.ID, order.StatusTransferPending, order.StatusTransferred).Return(nil)
		mockRails.EXPECT().Release(ctx, gomock.Any()).Return(gateway.ReleaseResult{ProviderTxID: "tx-5"}, nil)
		mockRepo.EXPECT().UpdateOrderStatus(ctx, o.ID, order.StatusTransferred, order.StatusCompleted).Return(nil)

		// when
		err := service.ExpireBuyerResponseTimeouts(ctx, asOf)

		// then
		assert.NoError(t, err)
	})

	t.Run("should leave transfers untouched when auto-confirm is disabled", func(t *testing.T) {
		// given
		service, mockRepo, _ := transferService(t, false)
		expired := Transfer{OrderID: "order-1", Status: StatusProofSubmitted, ResponseDeadline: asOf.Add(-time.Hour)}
		mockRepo.EXPECT().ListProofSubmittedExpired(ctx, asOf).Return([]Transfer{expired}, nil)

		// when
		err := service.ExpireBuyerResponseTimeouts(ctx, asOf)

		// then
		assert.NoError(t, err)
	})

	t.Run("should skip a transfer the buyer acted on concurrently", func(t *testing.T) {
		// given
		service, mockRepo, _ := transferService(t, true)
		o := confirmedOrder()
		o.Status = order.StatusTransferPending
		expired := Transfer{OrderID: o.ID, Status: StatusProofSubmitted, ResponseDeadline: asOf.Add(-time.Hour)}

		mockRepo.EXPECT().ListProofSubmittedExpired(ctx, asOf).Return([]Transfer{expired}, nil)
		expectInTx(mockRepo, ctx)
		expectGetOrder(mockRepo, ctx, o)
		mockRepo.EXPECT().UpdateTransferStatus(ctx, o.ID, StatusProofSubmitted, StatusConfirmed).
			Return(apperror.ErrStatusConflict)

		// when
		err := service.ExpireBuyerResponseTimeouts(ctx, asOf)

		// then
		assert.NoError(t, err)
	})
}

func TestService_Get(t *testing.T) {
	t.Parallel()

	service, mockRepo, _ := transferService(t, true)
	ctx := context.Background()

	t.Run("should return the transfer to a party", func(t *testing.T) {
		// given
		o := confirmedOrder()
		expectGetOrder(mockRepo, ctx, o)
		mockRepo.EXPECT().GetTransferByOrderID(ctx, o.ID).
			Return(&Transfer{OrderID: o.ID, Status: StatusAwaitingProof}, nil)

		// when
		result, err := service.Get(ctx, o.ID, o.BuyerID)

		// then
		assert.NoError(t, err)
		assert.Equal(t, StatusAwaitingProof, result.Status)
	})

	t.Run("should forbid outsiders", func(t *testing.T) {
		// given
		o := confirmedOrder()
		expectGetOrder(mockRepo, ctx, o)

		// when
		_, err := service.Get(ctx, o.ID, "stranger")

		// then
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("should report not found before the window opens", func(t *testing.T) {
		// given
		o := confirmedOrder()
		expectGetOrder(mockRepo, ctx, o)
		mockRepo.EXPECT().GetTransferByOrderID(ctx, o.ID).Return(nil, nil)

		// when
		_, err := service.Get(ctx, o.ID, o.SellerID)

		// then
		assert.ErrorIs(t, err, apperror.ErrTransferNotFound)
	})
}
