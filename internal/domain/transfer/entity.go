package transfer

import (
	"fmt"
	"slices"
	"time"
)

// Transfer is the 1:1 hand-over sub-workflow of a confirmed order.
type Transfer struct {
	OrderID          string     `json:"order_id"`
	Status           Status     `json:"status"`
	SellerProofURLs  []string   `json:"seller_proof_urls"`
	SellerNotes      string     `json:"seller_notes"`
	ProofSubmittedAt *time.Time `json:"proof_submitted_at,omitempty"`
	BuyerActionAt    *time.Time `json:"buyer_action_at,omitempty"`
	ResponseDeadline time.Time  `json:"response_deadline"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type Status string

const (
	StatusAwaitingProof  Status = "awaiting_proof"
	StatusProofSubmitted Status = "proof_submitted"
	StatusConfirmed      Status = "confirmed"
	StatusIssueReported  Status = "issue_reported"
	// StatusCancelled closes the hand-over after a seller default: the order
	// is cancelled and the buyer's refund has landed.
	StatusCancelled Status = "cancelled"
)

var AvailableStatuses = []Status{
	StatusAwaitingProof, StatusProofSubmitted, StatusConfirmed, StatusIssueReported, StatusCancelled,
}

func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusAwaitingProof:
		return slices.Contains([]Status{StatusProofSubmitted, StatusCancelled}, next)
	case StatusProofSubmitted:
		return slices.Contains([]Status{StatusConfirmed, StatusIssueReported}, next)
	default:
		return false
	}
}

func NewStatus(raw string) (Status, error) {
	if slices.Contains(AvailableStatuses, Status(raw)) {
		return Status(raw), nil
	}
	return "", fmt.Errorf("invalid transfer status: %q", raw)
}

// Action is the buyer/seller verb on POST /transfer.
type Action string

const (
	ActionSubmitProof    Action = "submit_proof"
	ActionConfirmReceipt Action = "confirm_receipt"
	ActionReportIssue    Action = "report_issue"
)
