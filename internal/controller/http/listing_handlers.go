package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"ticketescrow/internal/domain/listing"
)

type ListingHandler struct {
	service *listing.Service
}

func NewListingHandler(s *listing.Service) ListingHandler {
	return ListingHandler{service: s}
}

func (h *ListingHandler) Create(c *gin.Context) {
	var req listing.NewListing
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	req.SellerID = actorID(c)

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

type listingSearchParams struct {
	EventName string `form:"event"`
	MaxPrice  string `form:"max_price"`
	SellerID  string `form:"seller_id"`
	SortBy    string `form:"sort_by" binding:"omitempty,oneof=event_date asking_price view_count created_at"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

func (h *ListingHandler) Search(c *gin.Context) {
	var params listingSearchParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if params.Page == 0 {
		params.Page = 1
	}
	if params.Limit == 0 {
		params.Limit = 20
	}

	builder := listing.NewListingsQueryBuilder().
		ActiveOnly().
		WithPagination(listing.Pagination{PageSize: params.Limit, PageNumber: params.Page})
	if params.EventName != "" {
		builder = builder.WithEventName(params.EventName)
	}
	if params.SellerID != "" {
		builder = builder.WithSellerIDs(params.SellerID)
	}
	if params.MaxPrice != "" {
		maxPrice, err := decimal.NewFromString(params.MaxPrice)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid max_price"})
			return
		}
		builder = builder.WithMaxPrice(maxPrice)
	}
	if params.SortBy != "" {
		order := params.SortOrder
		if order == "" {
			order = "desc"
		}
		builder = builder.WithSort(listing.SortField(params.SortBy), order)
	}

	query, err := builder.Build()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	page, err := h.service.Search(c.Request.Context(), *query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *ListingHandler) Get(c *gin.Context) {
	l, err := h.service.Get(c.Request.Context(), c.Param("listing_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, l)
}

func (h *ListingHandler) Withdraw(c *gin.Context) {
	err := h.service.Withdraw(c.Request.Context(), c.Param("listing_id"), actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
