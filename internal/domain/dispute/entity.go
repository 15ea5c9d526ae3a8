package dispute

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Party identifies which side of the order acted.
type Party string

const (
	PartyBuyer  Party = "buyer"
	PartySeller Party = "seller"
)

func (p Party) Other() Party {
	if p == PartyBuyer {
		return PartySeller
	}
	return PartyBuyer
}

// Statement is one party's case: a single initial statement plus an
// append-only evidence list.
type Statement struct {
	Text        string     `json:"text"`
	Evidence    []string   `json:"evidence"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}

type Dispute struct {
	ID          string `json:"dispute_id"`
	OrderID     string `json:"order_id"`
	Reason      Reason `json:"reason"`
	Description string `json:"description"`
	OpenedBy    Party  `json:"opened_by"`

	Buyer  Statement `json:"buyer"`
	Seller Statement `json:"seller"`

	Status           Status    `json:"status"`
	ResponseDeadline time.Time `json:"response_deadline"`
	// DefaultedParty is set when the non-opening party let the response
	// deadline lapse; the reviewer weighs their case accordingly.
	DefaultedParty *Party `json:"defaulted_party,omitempty"`

	Resolution         Outcome          `json:"resolution,omitempty"`
	ResolutionNotes    string           `json:"resolution_notes,omitempty"`
	RefundAmount       *decimal.Decimal `json:"refund_amount,omitempty"`
	SellerPayoutAmount *decimal.Decimal `json:"seller_payout_amount,omitempty"`
	ResolvedBy         string           `json:"resolved_by,omitempty"`
	ResolvedAt         *time.Time       `json:"resolved_at,omitempty"`
	// SettledAt is recorded once every refund/release the resolution dictates
	// has landed on the rails; unset means the settlement sweep still owes a
	// retry.
	SettledAt *time.Time `json:"settled_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Status string

const (
	StatusOpen            Status = "open"
	StatusUnderReview     Status = "under_review"
	StatusAwaitingSeller  Status = "awaiting_seller"
	StatusAwaitingBuyer   Status = "awaiting_buyer"
	StatusEscalated       Status = "escalated"
	StatusResolvedBuyer   Status = "resolved_buyer_favor"
	StatusResolvedSeller  Status = "resolved_seller_favor"
	StatusResolvedPartial Status = "resolved_partial"
	StatusClosed          Status = "closed"
)

var AvailableStatuses = []Status{
	StatusOpen, StatusUnderReview, StatusAwaitingSeller, StatusAwaitingBuyer,
	StatusEscalated, StatusResolvedBuyer, StatusResolvedSeller,
	StatusResolvedPartial, StatusClosed,
}

// awaiting status for the party whose response is pending.
func AwaitingStatus(p Party) Status {
	if p == PartySeller {
		return StatusAwaitingSeller
	}
	return StatusAwaitingBuyer
}

// AwaitingParty reports which party is on the response clock for the
// awaiting statuses.
func (s Status) AwaitingParty() (Party, bool) {
	switch s {
	case StatusAwaitingSeller:
		return PartySeller, true
	case StatusAwaitingBuyer:
		return PartyBuyer, true
	default:
		return "", false
	}
}

// CanTransitionTo encodes the legal dispute transitions. The reviewer's
// binding decision may land from any unresolved status; resolved statuses
// are terminal.
func (s Status) CanTransitionTo(next Status) bool {
	resolved := []Status{StatusResolvedBuyer, StatusResolvedSeller, StatusResolvedPartial, StatusClosed}
	switch s {
	case StatusOpen:
		return slices.Contains(append([]Status{StatusUnderReview, StatusAwaitingSeller, StatusAwaitingBuyer, StatusEscalated}, resolved...), next)
	case StatusUnderReview:
		return slices.Contains(append([]Status{StatusAwaitingSeller, StatusAwaitingBuyer, StatusEscalated}, resolved...), next)
	case StatusAwaitingSeller, StatusAwaitingBuyer:
		return slices.Contains(append([]Status{StatusUnderReview, StatusEscalated}, resolved...), next)
	case StatusEscalated:
		return slices.Contains(resolved, next)
	default:
		return false
	}
}

// IsResolved reports whether an outcome has been recorded.
func (s Status) IsResolved() bool {
	switch s {
	case StatusResolvedBuyer, StatusResolvedSeller, StatusResolvedPartial, StatusClosed:
		return true
	default:
		return false
	}
}

// AcceptsPartyInput reports whether parties may still respond or add evidence.
func (s Status) AcceptsPartyInput() bool {
	switch s {
	case StatusOpen, StatusUnderReview, StatusAwaitingSeller, StatusAwaitingBuyer, StatusEscalated:
		return true
	default:
		return false
	}
}

func NewStatus(raw string) (Status, error) {
	if slices.Contains(AvailableStatuses, Status(raw)) {
		return Status(raw), nil
	}
	return "", fmt.Errorf("invalid dispute status: %q", raw)
}

// Reason classifies why the buyer reported an issue.
type Reason string

const (
	ReasonNotReceived   Reason = "ticket_not_received"
	ReasonInvalidTicket Reason = "ticket_invalid"
	ReasonWrongTicket   Reason = "wrong_ticket"
	ReasonDuplicateSale Reason = "duplicate_sale"
	ReasonOther         Reason = "other"
)

var AvailableReasons = []Reason{
	ReasonNotReceived, ReasonInvalidTicket, ReasonWrongTicket, ReasonDuplicateSale, ReasonOther,
}

func NewReason(raw string) (Reason, error) {
	if slices.Contains(AvailableReasons, Reason(raw)) {
		return Reason(raw), nil
	}
	return "", fmt.Errorf("invalid dispute reason: %q", raw)
}

// Outcome is the reviewer's binding decision.
type Outcome string

const (
	OutcomeBuyerFavor  Outcome = "resolved_buyer_favor"
	OutcomeSellerFavor Outcome = "resolved_seller_favor"
	OutcomePartial     Outcome = "resolved_partial"
	OutcomeClosed      Outcome = "closed" // no allocation recorded
)

// StatusFor maps an outcome onto the dispute status it produces.
func (o Outcome) StatusFor() (Status, error) {
	switch o {
	case OutcomeBuyerFavor:
		return StatusResolvedBuyer, nil
	case OutcomeSellerFavor:
		return StatusResolvedSeller, nil
	case OutcomePartial:
		return StatusResolvedPartial, nil
	case OutcomeClosed:
		return StatusClosed, nil
	default:
		return "", fmt.Errorf("invalid outcome: %q", o)
	}
}
