package listing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// VerificationLevel is the trust tier attached to a listing based on
// submitted proof and reviewer approval.
type VerificationLevel string

const (
	LevelUnverified VerificationLevel = "unverified"
	LevelPending    VerificationLevel = "pending"
	LevelBasic      VerificationLevel = "basic"
	LevelVerified   VerificationLevel = "verified"
	LevelPremium    VerificationLevel = "premium"
)

// Priority orders levels for search ranking: unverified < pending < basic <
// verified < premium.
func (v VerificationLevel) Priority() int {
	switch v {
	case LevelPending:
		return 1
	case LevelBasic:
		return 2
	case LevelVerified:
		return 3
	case LevelPremium:
		return 4
	default:
		return 0
	}
}

// ApprovalLevels are the levels a reviewer may assign on approval.
var ApprovalLevels = []VerificationLevel{LevelBasic, LevelVerified, LevelPremium}

type Listing struct {
	ID                string            `json:"listing_id"`
	SellerID          string            `json:"seller_id"`
	EventName         string            `json:"event_name"`
	Venue             string            `json:"venue"`
	EventDate         time.Time         `json:"event_date"`
	TicketType        string            `json:"ticket_type"`
	Quantity          int               `json:"quantity"`
	OriginalPrice     decimal.Decimal   `json:"original_price"`
	AskingPrice       decimal.Decimal   `json:"asking_price"`
	VerificationLevel VerificationLevel `json:"verification_level"`
	Active            bool              `json:"active"`
	ViewCount         int               `json:"view_count"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// NewListing is the seller's create request.
type NewListing struct {
	SellerID      string          `json:"-"`
	EventName     string          `json:"event_name" binding:"required"`
	Venue         string          `json:"venue" binding:"required"`
	EventDate     time.Time       `json:"event_date" binding:"required"`
	TicketType    string          `json:"ticket_type" binding:"required"`
	Quantity      int             `json:"quantity" binding:"required,min=1"`
	OriginalPrice decimal.Decimal `json:"original_price" binding:"required"`
	AskingPrice   decimal.Decimal `json:"asking_price" binding:"required"`
}

// SortField is a whitelisted listing sort key.
type SortField string

const (
	SortByEventDate  SortField = "event_date"
	SortByPrice      SortField = "asking_price"
	SortByPopularity SortField = "view_count"
	SortByNewest     SortField = "created_at"
)

type Pagination struct {
	PageSize   int
	PageNumber int
}

type ListingsQuery struct {
	IDs        []string
	SellerIDs  []string
	ActiveOnly bool
	EventName  *string
	MaxPrice   *decimal.Decimal
	SortBy     *SortField
	SortOrder  *string
	Pagination *Pagination
}

func (q *ListingsQuery) Validate() error {
	if q.SortBy != nil {
		switch *q.SortBy {
		case SortByEventDate, SortByPrice, SortByPopularity, SortByNewest:
		default:
			return fmt.Errorf("invalid sort by: %s", *q.SortBy)
		}
	}
	if q.SortOrder != nil && *q.SortOrder != "asc" && *q.SortOrder != "desc" {
		return fmt.Errorf("invalid sort order: %s", *q.SortOrder)
	}
	return nil
}

type ListingsQueryBuilder struct {
	query *ListingsQuery
}

func NewListingsQueryBuilder() *ListingsQueryBuilder {
	return &ListingsQueryBuilder{query: &ListingsQuery{}}
}

func (b *ListingsQueryBuilder) Build() (*ListingsQuery, error) {
	if err := b.query.Validate(); err != nil {
		return nil, err
	}
	return b.query, nil
}

func (b *ListingsQueryBuilder) WithIDs(ids ...string) *ListingsQueryBuilder {
	b.query.IDs = ids
	return b
}

func (b *ListingsQueryBuilder) WithSellerIDs(sellerIDs ...string) *ListingsQueryBuilder {
	b.query.SellerIDs = sellerIDs
	return b
}

func (b *ListingsQueryBuilder) ActiveOnly() *ListingsQueryBuilder {
	b.query.ActiveOnly = true
	return b
}

func (b *ListingsQueryBuilder) WithEventName(name string) *ListingsQueryBuilder {
	b.query.EventName = &name
	return b
}

func (b *ListingsQueryBuilder) WithMaxPrice(price decimal.Decimal) *ListingsQueryBuilder {
	b.query.MaxPrice = &price
	return b
}

func (b *ListingsQueryBuilder) WithSort(sortBy SortField, sortOrder string) *ListingsQueryBuilder {
	b.query.SortBy = &sortBy
	b.query.SortOrder = &sortOrder
	return b
}

func (b *ListingsQueryBuilder) WithPagination(p Pagination) *ListingsQueryBuilder {
	b.query.Pagination = &p
	return b
}
