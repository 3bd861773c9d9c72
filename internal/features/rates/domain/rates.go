package domain

// Rates maps a currency code to its conversion rate relative to a base
// currency.
type Rates map[string]float64
