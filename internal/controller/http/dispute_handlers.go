package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ticketescrow/internal/domain/dispute"
)

type DisputeHandler struct {
	service *dispute.Service
}

func NewDisputeHandler(s *dispute.Service) DisputeHandler {
	return DisputeHandler{service: s}
}

type disputeActionRequest struct {
	DisputeID string   `json:"dispute_id" binding:"required"`
	Action    string   `json:"action" binding:"required,oneof=respond add_evidence"`
	Statement string   `json:"statement"`
	Evidence  []string `json:"evidence"`
}

// Act dispatches the party-side dispute verbs.
func (h *DisputeHandler) Act(c *gin.Context) {
	var req disputeActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	ctx := c.Request.Context()
	actor := actorID(c)

	var (
		d   *dispute.Dispute
		err error
	)
	switch req.Action {
	case "respond":
		d, err = h.service.Respond(ctx, req.DisputeID, actor, req.Statement, req.Evidence)
	case "add_evidence":
		d, err = h.service.AddEvidence(ctx, req.DisputeID, actor, req.Evidence)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, d)
}

func (h *DisputeHandler) Get(c *gin.Context) {
	d, err := h.service.GetForActor(c.Request.Context(), c.Param("dispute_id"), actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, d)
}

func (h *DisputeHandler) List(c *gin.Context) {
	var params listParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	params.defaults()

	page, err := h.service.ListForActor(c.Request.Context(), actorID(c), params.Role, dispute.PaginationQuery{
		PageSize:   params.Limit,
		PageNumber: params.Page,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// Queue lists unresolved disputes for reviewers.
func (h *DisputeHandler) Queue(c *gin.Context) {
	var params listParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	params.defaults()

	page, err := h.service.ListQueue(c.Request.Context(), dispute.PaginationQuery{
		PageSize:   params.Limit,
		PageNumber: params.Page,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

type requestStatementRequest struct {
	Party string `json:"party" binding:"required,oneof=buyer seller"`
}

// RequestStatement is the reviewer asking one party for a statement, putting
// them on the response clock.
func (h *DisputeHandler) RequestStatement(c *gin.Context) {
	var req requestStatementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	d, err := h.service.RequestStatement(c.Request.Context(), c.Param("dispute_id"), actorID(c), dispute.Party(req.Party))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, d)
}

// Resolve is the reviewer's binding decision on a dispute.
func (h *DisputeHandler) Resolve(c *gin.Context) {
	var req dispute.ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	d, err := h.service.Resolve(c.Request.Context(), c.Param("dispute_id"), actorID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, d)
}
