package models

// UnavailableDate is one calendar day a provider has blocked off.
// Date is held in canonical YYYY-MM-DD form.
type UnavailableDate struct {
	ID   string `json:"_id"`
	Date string `json:"date"`
}
