package verification

import (
	"fmt"
	"slices"
	"time"
)

// ProofType classifies an uploaded proof artifact. A request needs every
// required type before it can go to the review queue; the optional types
// strengthen the case.
type ProofType string

const (
	ProofConfirmationEmail ProofType = "confirmation_email"
	ProofTicketScreenshot  ProofType = "ticket_screenshot"
	ProofQRCode            ProofType = "qr_code"
	ProofPurchaseReceipt   ProofType = "purchase_receipt"
)

var AvailableProofTypes = []ProofType{
	ProofConfirmationEmail, ProofTicketScreenshot, ProofQRCode, ProofPurchaseReceipt,
}

var RequiredProofTypes = []ProofType{ProofConfirmationEmail, ProofTicketScreenshot}

func NewProofType(raw string) (ProofType, error) {
	if slices.Contains(AvailableProofTypes, ProofType(raw)) {
		return ProofType(raw), nil
	}
	return "", fmt.Errorf("invalid proof type: %q", raw)
}

// Proof is one uploaded artifact. The file itself lives in external storage;
// only the reference is kept here.
type Proof struct {
	Type       ProofType `json:"type"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// ConfirmationDetails is the seller's original purchase record, fed into the
// fraud check.
type ConfirmationDetails struct {
	OrderReference string `json:"order_reference" binding:"required"`
	PurchaserEmail string `json:"purchaser_email" binding:"required,email"`
	Platform       string `json:"platform" binding:"required"`
	TransferCode   string `json:"transfer_code"`
}

// FraudCheckResult is the oracle's verdict. A pass admits the request to the
// review queue; it never approves by itself.
type FraudCheckResult struct {
	Passed    bool      `json:"passed"`
	RiskScore int       `json:"risk_score"`
	Warnings  []string  `json:"warnings,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusFlagged  Status = "flagged"
)

var AvailableStatuses = []Status{StatusPending, StatusApproved, StatusRejected, StatusFlagged}

func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return slices.Contains([]Status{StatusApproved, StatusRejected, StatusFlagged}, next)
	case StatusFlagged:
		return next == StatusApproved || next == StatusRejected
	default:
		return false
	}
}

// IsOpen reports whether the request still belongs to the current submission
// cycle. A rejected request is closed: new proofs start a fresh request.
func (s Status) IsOpen() bool {
	return s == StatusPending || s == StatusFlagged
}

func NewStatus(raw string) (Status, error) {
	if slices.Contains(AvailableStatuses, Status(raw)) {
		return Status(raw), nil
	}
	return "", fmt.Errorf("invalid verification status: %q", raw)
}

// Request is one verification cycle for a listing.
type Request struct {
	ID        string `json:"request_id"`
	ListingID string `json:"listing_id"`
	SellerID  string `json:"seller_id"`

	Proofs     []Proof              `json:"proofs"`
	Details    *ConfirmationDetails `json:"confirmation_details,omitempty"`
	FraudCheck *FraudCheckResult    `json:"fraud_check,omitempty"`

	Status Status `json:"status"`
	// SubmittedAt is set when the seller submits for review; the queue is
	// ordered by it. Nil while the seller is still assembling proofs.
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`

	RejectionReason string     `json:"rejection_reason,omitempty"`
	ReviewedBy      string     `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MissingRequiredProofs lists the required types not yet uploaded.
func (r *Request) MissingRequiredProofs() []ProofType {
	var missing []ProofType
	for _, required := range RequiredProofTypes {
		if !slices.ContainsFunc(r.Proofs, func(p Proof) bool { return p.Type == required }) {
			missing = append(missing, required)
		}
	}
	return missing
}
