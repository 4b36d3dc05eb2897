package model

import "time"

// Mileage represents a single business trip deducted at the standard rate.
type Mileage struct {
	Date          time.Time
	ID            string
	Purpose       string
	BusinessMiles float64
	// StandardRate is the IRS per-mile rate for the trip's tax year. Zero
	// means the caller-supplied default applies.
	StandardRate float64
	// CalculatedDeduction is BusinessMiles * StandardRate when precomputed
	// upstream; zero means it is derived during aggregation.
	CalculatedDeduction float64
}
