// Package model defines the core domain records used throughout the application.
package model

import "time"

// GigIncome represents a single income event from any gig platform or payer.
type GigIncome struct {
	Date          time.Time
	ID            string
	PayerID       string
	PayerName     string
	Description   string
	PaymentMethod string // e.g., DIRECT_DEPOSIT, CASH, CHECK, APP
	GrossAmount   float64
	Tips          float64
	PerDiem       float64
	OtherIncome   float64
	Fees          float64 // platform/processing fees withheld from gross
	Paid          bool
}

// TotalReceived returns the amount actually received for the gig after fees.
func (g *GigIncome) TotalReceived() float64 {
	return g.GrossAmount + g.Tips + g.PerDiem + g.OtherIncome - g.Fees
}
