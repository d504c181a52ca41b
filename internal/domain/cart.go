package domain

import "time"

// CartItem is a client-held tuple; carts are not persisted server side.
type CartItem struct {
	ProductID  int64      `json:"product_id"`
	PricePaise int64      `json:"price_paise"`
	Quantity   int64      `json:"quantity"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
}
