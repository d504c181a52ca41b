package domain

type ProductStatus string

const (
	ProductStatusAvailable   ProductStatus = "AVAILABLE"
	ProductStatusUnavailable ProductStatus = "UNAVAILABLE"
)

type RatePeriod string

const (
	RatePeriodHour  RatePeriod = "hour"
	RatePeriodDay   RatePeriod = "day"
	RatePeriodWeek  RatePeriod = "week"
	RatePeriodMonth RatePeriod = "month"
)

func (p RatePeriod) Valid() bool {
	switch p {
	case RatePeriodHour, RatePeriodDay, RatePeriodWeek, RatePeriodMonth:
		return true
	}
	return false
}

type Product struct {
	ID           int64         `json:"id"`
	OwnerID      int64         `json:"owner_id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	PricePaise   int64         `json:"price_paise"`
	Period       RatePeriod    `json:"period"`
	DepositPaise int64         `json:"deposit_paise"`
	Images       []string      `json:"images"`
	Status       ProductStatus `json:"status"`
	CreatedOn    string        `json:"created_on"`
}
