package verification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"ticketescrow/internal/controller/apperror"
	"ticketescrow/internal/domain/listing"
	"ticketescrow/internal/messaging"
)

func verificationService(t *testing.T) (*Service, *MockVerificationRepo, *MockScorer) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockRepo := NewMockVerificationRepo(ctrl)
	mockScorer := NewMockScorer(ctrl)
	service := NewService(mockRepo, mockScorer, messaging.NewEmitter(nil, nil))

	return service, mockRepo, mockScorer
}

func sellerListing() listing.Listing {
	return listing.Listing{
		ID:                "listing-1",
		SellerID:          "seller-1",
		EventName:         "Glastonbury 2026",
		VerificationLevel: listing.LevelUnverified,
		Active:            true,
	}
}

func details() *ConfirmationDetails {
	return &ConfirmationDetails{
		OrderReference: "TM-12345",
		PurchaserEmail: "seller@example.com",
		Platform:       "ticketmaster",
	}
}

func openRequest() *Request {
	now := time.Now().UTC().Add(-time.Hour)
	return &Request{
		ID:        "request-1",
		ListingID: "listing-1",
		SellerID:  "seller-1",
		Proofs: []Proof{
			{Type: ProofConfirmationEmail, URL: "https://files.example/email.pdf", UploadedAt: now},
			{Type: ProofTicketScreenshot, URL: "https://files.example/shot.png", UploadedAt: now},
		},
		Details:   details(),
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func expectInTx(mockRepo *MockVerificationRepo, ctx context.Context) {
	mockRepo.EXPECT().InTransaction(ctx, gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(tx TxVerificationRepo) error) error {
			return fn(mockRepo)
		})
}

func TestService_UploadProofs(t *testing.T) {
	t.Parallel()

	service, mockRepo, _ := verificationService(t)
	ctx := context.Background()

	uploads := []ProofUpload{{Type: "confirmation_email", URL: "https://files.example/email.pdf"}}

	t.Run("should start a new cycle and move the listing to pending", func(t *testing.T) {
		// given
		l := sellerListing()
		expectInTx(mockRepo, ctx)
		mockRepo.EXPECT().GetListing(ctx, l.ID).Return(l, nil)
		mockRepo.EXPECT().GetOpenRequestByListingID(ctx, l.ID).Return(nil, nil)

		var createdID string
		mockRepo.EXPECT().CreateRequest(ctx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, r Request) error {
				assert.Equal(t, StatusPending, r.Status)
				assert.Len(t, r.Proofs, 1)
				createdID = r.ID
				return nil
			})
		mockRepo.EXPECT().SetListingVerificationLevel(ctx, l.ID, listing.LevelPending).Return(nil)
		mockRepo.EXPECT().GetRequestByID(ctx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, id string) (*Request, error) {
				assert.Equal(t, createdID, id)
				return &Request{ID: id, Status: StatusPending}, nil
			})

		// when
		result, err := service.UploadProofs(ctx, l.ID, l.SellerID, uploads, nil)

		// then
		assert.NoError(t, err)
		assert.Equal(t, StatusPending, result.Status)
	})

	t.Run("should append proofs to the open cycle", func(t *testing.T) {
		// given
		l := sellerListing()
		req := openRequest()
		expectInTx(mockRepo, ctx)
		mockRepo.EXPECT().GetListing(ctx, l.ID).Return(l, nil)
		mockRepo.EXPECT().GetOpenRequestByListingID(ctx, l.ID).Return(req, nil)
		mockRepo.EXPECT().AddProofs(ctx, req.ID, gomock.Any()).Return(nil)
		mockRepo.EXPECT().SetConfirmationDetails(ctx, req.ID, *details()).Return(nil)
		mockRepo.EXPECT().GetRequestByID(ctx, req.ID).Return(req, nil)

		// when
		_, err := service.UploadProofs(ctx, l.ID, l.SellerID, uploads, details())

		// then
		assert.NoError(t, err)
	})

	t.Run("should reject an unknown proof type", func(t *testing.T) {
		// when
		_, err := service.UploadProofs(ctx, "listing-1", "seller-1",
			[]ProofUpload{{Type: "selfie", URL: "https://files.example/x.png"}}, nil)

		// then
		assert.ErrorIs(t, err, apperror.ErrValidation)
	})

	t.Run("should require at least one proof", func(t *testing.T) {
		// when
		_, err := service.UploadProofs(ctx, "listing-1", "seller-1", nil, nil)

		// then
		assert.ErrorIs(t, err, apperror.ErrValidation)
	})

	t.Run("should forbid non-owners", func(t *testing.T) {
		// given
		l := sellerListing()
		expectInTx(mockRepo, ctx)
		mockRepo.EXPECT().GetListing(ctx, l.ID).Return(l, nil)

		// when
		_, err := service.UploadProofs(ctx, l.ID, "someone-else", uploads, nil)

		// then
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})
}

func TestService_RunFraudCheck(t *testing.T) {
	t.Parallel()

	service, mockRepo, mockScorer := verificationService(t)
	ctx := context.Background()

	t.Run("should record the oracle verdict without changing the status", func(t *testing.T) {
		// given
		l := sellerListing()
		req := openRequest()
		mockRepo.EXPECT().GetOpenRequestByListingID(ctx, l.ID).Return(req, nil)
		mockRepo.EXPECT().GetListing(ctx, l.ID).Return(l, nil)
		mockScorer.EXPECT().Score(ctx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, sr ScoreRequest) (FraudCheckResult, error) {
				assert.Equal(t, l.EventName, sr.EventName)
				assert.ElementsMatch(t, []ProofType{ProofConfirmationEmail, ProofTicketScreenshot}, sr.ProofTypes)
				return FraudCheckResult{Passed: true, RiskScore: 12}, nil
			})
		mockRepo.EXPECT().SetFraudCheckResult(ctx, req.ID, gomock.Any()).DoAndReturn(
			func(ctx context.Context, id string, result FraudCheckResult) error {
				assert.True(t, result.Passed)
				assert.False(t, result.CheckedAt.IsZero())
				return nil
			})
		mockRepo.EXPECT().GetRequestByID(ctx, req.ID).Return(req, nil)

		// when
		_, err := service.RunFraudCheck(ctx, l.ID, l.SellerID)

		// then
		assert.NoError(t, err)
	})

	t.Run("should require confirmation details first", func(t *testing.T) {
		// given
		req := openRequest()
		req.Details = nil
		mockRepo.EXPECT().GetOpenRequestByListingID(ctx, req.ListingID).Return(req, nil)

		// when
		_, err := service.RunFraudCheck(ctx, req.ListingID, req.SellerID)

		// then
		assert.ErrorIs(t, err, apperror.ErrValidation)
	})

	t.Run("should surface an oracle outage", func(t *testing.T) {
		// given
		l := sellerListing()
		req := openRequest()
		mockRepo.EXPECT().GetOpenRequestByListingID(ctx, l.ID).Return(req, nil)
		mockRepo.EXPECT().GetListing(ctx, l.ID).Return(l, nil)
		mockScorer.EXPECT().Score(ctx, gomock.Any()).Return(FraudCheckResult{}, assert.AnError)

		// when
		_, err := service.RunFraudCheck(ctx, l.ID, l.SellerID)

		// then
		assert.ErrorIs(t, err, apperror.ErrExternalDependency)
	})
}

func TestService_SubmitForReview(t *testing.T) {
	t.Parallel()

	service, mockRepo, _ := verificationService(t)
	ctx := context.Background()

	t.Run("should queue a complete passing request", func(t *testing.T) {
		// given
		req := openRequest()
		req.FraudCheck = &FraudCheckResult{Passed: true, RiskScore: 10}
		mockRepo.EXPECT().GetOpenRequestByListingID(ctx, req.ListingID).Return(req, nil)
		mockRepo.EXPECT().MarkSubmitted(ctx, req.ID, gomock.Any()).Return(nil)
		mockRepo.EXPECT().GetRequestByID(ctx, req.ID).Return(req, nil)

		// when
		_, err := service.SubmitForReview(ctx, req.ListingID, req.SellerID)

		// then
		assert.NoError(t, err)
	})

	t.Run("should refuse when required proofs are missing", func(t *testing.T) {
		// given
		req := openRequest()
		req.Proofs = req.Proofs[:1] // screenshot missing
		req.FraudCheck = &FraudCheckResult{Passed: true}
		mockRepo.EXPECT().GetOpenRequestByListingID(ctx, req.ListingID).Return(req, nil)

		// when
		_, err := service.SubmitForReview(ctx, req.ListingID, req.SellerID)

		// then
		assert.ErrorIs(t, err, apperror.ErrProofsMissing)
	})

	t.Run("should refuse without a fraud check", func(t *testing.T) {
		// given
		req := openRequest()
		mockRepo.EXPECT().GetOpenRequestByListingID(ctx, req.ListingID).Return(req, nil)

		// when
		_, err := service.SubmitForReview(ctx, req.ListingID, req.SellerID)

		// then
		assert.ErrorIs(t, err, apperror.ErrValidation)
	})

	t.Run("should refuse when the fraud check failed", func(t *testing.T) {
		// given
		req := openRequest()
		req.FraudCheck = &FraudCheckResult{Passed: false, RiskScore: 93}
		mockRepo.EXPECT().GetOpenRequestByListingID(ctx, req.ListingID).Return(req, nil)

		// when
		_, err := service.SubmitForReview(ctx, req.ListingID, req.SellerID)

		// then
		assert.ErrorIs(t, err, apperror.ErrValidation)
	})

	t.Run("should conflict on a double submission", func(t *testing.T) {
		// given
		req := openRequest()
		submitted := time.Now().UTC()
		req.SubmittedAt = &submitted
		req.FraudCheck = &FraudCheckResult{Passed: true}
		mockRepo.EXPECT().GetOpenRequestByListingID(ctx, req.ListingID).Return(req, nil)

		// when
		_, err := service.SubmitForReview(ctx, req.ListingID, req.SellerID)

		// then
		assert.ErrorIs(t, err, apperror.ErrStatusConflict)
	})
}

func TestService_Review(t *testing.T) {
	t.Parallel()

	service, mockRepo, _ := verificationService(t)
	ctx := context.Background()

	submittedRequest := func() *Request {
		req := openRequest()
		submitted := time.Now().UTC().Add(-time.Hour)
		req.SubmittedAt = &submitted
		req.FraudCheck = &FraudCheckResult{Passed: true}
		return req
	}

	t.Run("should stamp the approved level onto the listing", func(t *testing.T) {
		// given
		req := submittedRequest()
		expectInTx(mockRepo, ctx)
		mockRepo.EXPECT().GetRequestByID(ctx, req.ID).Return(req, nil)
		mockRepo.EXPECT().SetReview(ctx, req.ID, StatusPending, gomock.Any()).DoAndReturn(
			func(ctx context.Context, id string, expected Status, review Review) error {
				assert.Equal(t, StatusApproved, review.Status)
				assert.Equal(t, "reviewer-1", review.ReviewedBy)
				return nil
			})
		mockRepo.EXPECT().SetListingVerificationLevel(ctx, req.ListingID, listing.LevelVerified).Return(nil)
		mockRepo.EXPECT().GetRequestByID(ctx, req.ID).Return(req, nil)

		// when
		_, err := service.Review(ctx, req.ID, "reviewer-1", ReviewRequest{Action: "approve", Level: "verified"})

		// then
		assert.NoError(t, err)
	})

	t.Run("should reject with a reason and reset the listing", func(t *testing.T) {
		// given
		req := submittedRequest()
		expectInTx(mockRepo, ctx)
		mockRepo.EXPECT().GetRequestByID(ctx, req.ID).Return(req, nil)
		mockRepo.EXPECT().SetReview(ctx, req.ID, StatusPending, gomock.Any()).DoAndReturn(
			func(ctx context.Context, id string, expected Status, review Review) error {
				assert.Equal(t, StatusRejected, review.Status)
				assert.Equal(t, "screenshot is cropped", review.RejectionReason)
				return nil
			})
		mockRepo.EXPECT().SetListingVerificationLevel(ctx, req.ListingID, listing.LevelUnverified).Return(nil)
		mockRepo.EXPECT().GetRequestByID(ctx, req.ID).Return(req, nil)

		// when
		_, err := service.Review(ctx, req.ID, "reviewer-1",
			ReviewRequest{Action: "reject", Reason: "screenshot is cropped"})

		// then
		assert.NoError(t, err)
	})

	t.Run("should flag without touching the listing", func(t *testing.T) {
		// given
		req := submittedRequest()
		expectInTx(mockRepo, ctx)
		mockRepo.EXPECT().GetRequestByID(ctx, req.ID).Return(req, nil)
		mockRepo.EXPECT().SetReview(ctx, req.ID, StatusPending, gomock.Any()).Return(nil)
		mockRepo.EXPECT().GetRequestByID(ctx, req.ID).Return(req, nil)

		// when
		_, err := service.Review(ctx, req.ID, "reviewer-1", ReviewRequest{Action: "flag"})

		// then
		assert.NoError(t, err)
	})

	t.Run("should require a valid approval level", func(t *testing.T) {
		// when
		_, err := service.Review(ctx, "request-1", "reviewer-1",
			ReviewRequest{Action: "approve", Level: "platinum"})

		// then
		assert.ErrorIs(t, err, apperror.ErrValidation)
	})

	t.Run("should require a rejection reason", func(t *testing.T) {
		// when
		_, err := service.Review(ctx, "request-1", "reviewer-1", ReviewRequest{Action: "reject"})

		// then
		assert.ErrorIs(t, err, apperror.ErrValidation)
	})

	t.Run("should conflict on an unsubmitted request", func(t *testing.T) {
		// given
		req := openRequest()
		expectInTx(mockRepo, ctx)
		mockRepo.EXPECT().GetRequestByID(ctx, req.ID).Return(req, nil)

		// when
		_, err := service.Review(ctx, req.ID, "reviewer-1", ReviewRequest{Action: "flag"})

		// then
		assert.ErrorIs(t, err, apperror.ErrStatusConflict)
	})

	t.Run("should conflict on an already reviewed request", func(t *testing.T) {
		// given
		req := submittedRequest()
		req.Status = StatusApproved
		expectInTx(mockRepo, ctx)
		mockRepo.EXPECT().GetRequestByID(ctx, req.ID).Return(req, nil)

		// when
		_, err := service.Review(ctx, req.ID, "reviewer-1", ReviewRequest{Action: "approve", Level: "basic"})

		// then
		assert.ErrorIs(t, err, apperror.ErrStatusConflict)
	})
}

func TestRequest_MissingRequiredProofs(t *testing.T) {
	t.Parallel()

	t.Run("should list the required types not yet uploaded", func(t *testing.T) {
		// given
		req := &Request{Proofs: []Proof{{Type: ProofQRCode}}}

		// when
		missing := req.MissingRequiredProofs()

		// then
		assert.ElementsMatch(t, []ProofType{ProofConfirmationEmail, ProofTicketScreenshot}, missing)
	})

	t.Run("should be empty once every required type is present", func(t *testing.T) {
		// given
		req := openRequest()

		// when then
		assert.Empty(t, req.MissingRequiredProofs())
	})
}
