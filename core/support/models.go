package support

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Status of a course material submission. A record only moves forward
// through Draft -> Submitted -> Validated | Rejected; Validated and
// Rejected are terminal.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusSubmitted Status = "SUBMITTED"
	StatusValidated Status = "VALIDATED"
	StatusRejected  Status = "REJECTED"
)

// Support is a course material submission.
//
// OwnerID is set once at creation and never mutated afterward.
// ValidatedOn is set iff Status == StatusValidated.
type Support struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description,omitempty"`
	FileURL      string      `json:"file_url"`
	Level        string      `json:"level,omitempty"`
	Subject      string      `json:"subject,omitempty"`
	OwnerID      int         `json:"owner_id"`
	SubmittedOn  time.Time   `json:"submitted_on"`
	Status       Status      `json:"status"`
	ValidatedOn  null.Time   `json:"validated_on,omitempty"`
	ReviewerNote null.String `json:"reviewer_note,omitempty"`
}

// NewSupport contains information needed to create a new Support.
type NewSupport struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	FileURL     string `json:"file_url" validate:"required,url"`
	Level       string `json:"level"`
	Subject     string `json:"subject"`
}

// UpdateSupport contains the fields an owner may edit while the record is
// still a draft. OwnerID is not among them.
type UpdateSupport struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	FileURL     string `json:"file_url" validate:"omitempty,url"`
	Level       string `json:"level"`
	Subject     string `json:"subject"`
}

// ReviewNote is the reviewer's free-text note accompanying a validation
// or rejection.
type ReviewNote struct {
	Note string `json:"note"`
}
