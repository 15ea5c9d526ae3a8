package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ticketescrow/internal/domain/dispute"
	"ticketescrow/internal/domain/transfer"
)

type TransferHandler struct {
	service *transfer.Service
}

func NewTransferHandler(s *transfer.Service) TransferHandler {
	return TransferHandler{service: s}
}

type transferRequest struct {
	OrderID string `json:"order_id" binding:"required"`
	Action  string `json:"action" binding:"required,oneof=submit_proof confirm_receipt report_issue"`

	// submit_proof
	ProofURLs []string `json:"proof_urls"`
	Notes     string   `json:"notes"`

	// report_issue
	Reason      string `json:"reason"`
	Description string `json:"description"`
}

// Act dispatches the transfer verb. The service enforces which party may
// perform which action.
func (h *TransferHandler) Act(c *gin.Context) {
	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	ctx := c.Request.Context()
	actor := actorID(c)

	switch transfer.Action(req.Action) {
	case transfer.ActionSubmitProof:
		t, err := h.service.SubmitProof(ctx, req.OrderID, actor, req.ProofURLs, req.Notes)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, t)

	case transfer.ActionConfirmReceipt:
		if err := h.service.ConfirmReceipt(ctx, req.OrderID, actor); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)

	case transfer.ActionReportIssue:
		reason, err := dispute.NewReason(req.Reason)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		d, err := h.service.ReportIssue(ctx, req.OrderID, actor, reason, req.Description)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, d)
	}
}

func (h *TransferHandler) Get(c *gin.Context) {
	t, err := h.service.Get(c.Request.Context(), c.Param("order_id"), actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, t)
}
