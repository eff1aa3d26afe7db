package domain

import "time"

// Currency is an exchange rate against PLN, keyed by a three-letter
// uppercase ISO code. Rates are written by the upsert endpoint (normally fed
// by an external rate importer) and read by payment conversion.
type Currency struct {
	Code string
	Rate float64

	UpdatedAt time.Time
}

// Payment is an amount recorded in a foreign currency together with its PLN
// conversion at creation time.
type Payment struct {
	ID           PaymentID
	Amount       float64
	CurrencyCode string
	AmountPLN    float64

	CreatedAt time.Time
}
