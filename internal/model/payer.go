package model

// Payer represents an entity that paid the worker during the tax year.
type Payer struct {
	ID          string
	Name        string
	TIN         string // taxpayer identification number, may be masked
	Address     string
	TotalPaid   float64
	Expects1099 bool
}
