package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ticketescrow/internal/domain/order"
)

type OrderHandler struct {
	service *order.Service
}

func NewOrderHandler(s *order.Service) OrderHandler {
	return OrderHandler{service: s}
}

type purchaseRequest struct {
	ListingID string `json:"listing_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

func (h *OrderHandler) Purchase(c *gin.Context) {
	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	res, err := h.service.Purchase(c.Request.Context(), actorID(c), req.ListingID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

// Capture confirms the held payment once the buyer completed the provider
// flow, opening the transfer window.
func (h *OrderHandler) Capture(c *gin.Context) {
	o, err := h.service.Capture(c.Request.Context(), c.Param("order_id"), actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) Get(c *gin.Context) {
	o, err := h.service.GetForActor(c.Request.Context(), c.Param("order_id"), actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, o)
}

type listParams struct {
	Role  string `form:"role" binding:"omitempty,oneof=buyer seller"`
	Page  int    `form:"page" binding:"omitempty,min=1"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

func (p *listParams) defaults() {
	if p.Role == "" {
		p.Role = "buyer"
	}
	if p.Page == 0 {
		p.Page = 1
	}
	if p.Limit == 0 {
		p.Limit = 20
	}
}

func (h *OrderHandler) List(c *gin.Context) {
	var params listParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	params.defaults()

	page, err := h.service.ListForActor(c.Request.Context(), actorID(c), params.Role, order.Pagination{
		PageSize:   params.Limit,
		PageNumber: params.Page,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

type messageRequest struct {
	Body string `json:"body" binding:"required"`
}

func (h *OrderHandler) AddMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	m, err := h.service.AddMessage(c.Request.Context(), c.Param("order_id"), actorID(c), req.Body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, m)
}

func (h *OrderHandler) GetMessages(c *gin.Context) {
	messages, err := h.service.GetMessages(c.Request.Context(), c.Param("order_id"), actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
