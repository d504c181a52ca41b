package domain

import "time"

type RentalStatus string

const (
	RentalStatusPending   RentalStatus = "PENDING"
	RentalStatusActive    RentalStatus = "ACTIVE"
	RentalStatusCompleted RentalStatus = "COMPLETED"
	RentalStatusCancelled RentalStatus = "CANCELLED"
)

// Terminal reports whether no further transition may leave this status.
func (s RentalStatus) Terminal() bool {
	return s == RentalStatusCompleted || s == RentalStatusCancelled
}

type Rental struct {
	ID         int64 `json:"id"`
	ProductID  int64 `json:"product_id"`
	BorrowerID int64 `json:"borrower_id"`
	OwnerID    int64 `json:"owner_id"`
	// Date-only; time of day is irrelevant to the lifecycle.
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	// Price snapshot fields, captured from the product at creation time.
	// All later cost math uses these snapshots, never live product prices.
	PricePaise       int64        `json:"price_paise"`
	Period           RatePeriod   `json:"period"`
	TotalAmountPaise int64        `json:"total_amount_paise"`
	DepositPaise     int64        `json:"deposit_paise"`
	Status           RentalStatus `json:"status"`
	// Optimistic concurrency token; bumped on every mutating update.
	Version   int64  `json:"version"`
	CreatedOn string `json:"created_on"`
	UpdatedOn string `json:"updated_on"`
}
