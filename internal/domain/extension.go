package domain

import "time"

type ExtensionStatus string

const (
	ExtensionStatusPending  ExtensionStatus = "PENDING"
	ExtensionStatusApproved ExtensionStatus = "APPROVED"
	ExtensionStatusRejected ExtensionStatus = "REJECTED"
)

// ExtensionRequest records a borrower's ask to push a rental's end date out
// past the auto-approve window. Resolved once by the owner, never mutated
// afterwards.
type ExtensionRequest struct {
	ID                  int64           `json:"id"`
	RentalID            int64           `json:"rental_id"`
	RequestedEndDate    time.Time       `json:"requested_end_date"`
	AdditionalCostPaise int64           `json:"additional_cost_paise"`
	Status              ExtensionStatus `json:"status"`
	CreatedOn           string          `json:"created_on"`
	ResolvedOn          *string         `json:"resolved_on,omitempty"`
}
