package domain

// PriceQuote is the output of the dynamic pricing calculation. OldRate and
// DiscountLabel are only populated when a discount tier applies; they exist
// for display and are omitted from JSON otherwise.
type PriceQuote struct {
	Days          int    `json:"days"`
	DailyRate     int    `json:"dailyRate"`
	Total         int    `json:"total"`
	OldRate       *int   `json:"oldRate,omitempty"`
	DiscountLabel string `json:"discountLabel,omitempty"`
}

// PaymentOutcome is the typed result of a charge attempt. A decline is a
// normal outcome, not an error.
type PaymentOutcome struct {
	Approved bool   `json:"approved"`
	Reason   string `json:"reason,omitempty"`
}
