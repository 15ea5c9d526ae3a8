package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ticketescrow/internal/domain/verification"
)

type VerificationHandler struct {
	service *verification.Service
}

func NewVerificationHandler(s *verification.Service) VerificationHandler {
	return VerificationHandler{service: s}
}

type uploadRequest struct {
	ListingID string                             `json:"listing_id" binding:"required"`
	Proofs    []verification.ProofUpload         `json:"proofs" binding:"required,min=1,dive"`
	Details   *verification.ConfirmationDetails  `json:"confirmation_details"`
}

func (h *VerificationHandler) Upload(c *gin.Context) {
	var req uploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	res, err := h.service.UploadProofs(c.Request.Context(), req.ListingID, actorID(c), req.Proofs, req.Details)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

type listingRef struct {
	ListingID string `json:"listing_id" binding:"required"`
}

func (h *VerificationHandler) FraudCheck(c *gin.Context) {
	var req listingRef
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	res, err := h.service.RunFraudCheck(c.Request.Context(), req.ListingID, actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *VerificationHandler) Submit(c *gin.Context) {
	var req listingRef
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	res, err := h.service.SubmitForReview(c.Request.Context(), req.ListingID, actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *VerificationHandler) Queue(c *gin.Context) {
	var params listParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	params.defaults()

	page, err := h.service.Queue(c.Request.Context(), params.Limit, params.Page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

type reviewRequest struct {
	RequestID string `json:"request_id" binding:"required"`
	verification.ReviewRequest
}

func (h *VerificationHandler) Review(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	res, err := h.service.Review(c.Request.Context(), req.RequestID, actorID(c), req.ReviewRequest)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
