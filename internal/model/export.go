package model

import "time"

// exportDateFormat is the display format used in every export artifact.
const exportDateFormat = "2006-01-02"

// ExportRow is a flattened, display-ready projection of a domain record.
// Serializers look fields up by column name, so every export type exposes
// the same map-based contract.
type ExportRow interface {
	Fields() map[string]any
}

// GigExportRow is the flattened projection of a GigIncome record.
type GigExportRow struct {
	Date          string
	Payer         string
	Description   string
	GrossAmount   float64
	Tips          float64
	PerDiem       float64
	OtherIncome   float64
	Fees          float64
	TotalReceived float64
	PaymentMethod string
	Paid          string
}

// NewGigExportRow flattens a gig income record for export.
func NewGigExportRow(g GigIncome) GigExportRow {
	paid := "No"
	if g.Paid {
		paid = "Yes"
	}
	return GigExportRow{
		Date:          g.Date.Format(exportDateFormat),
		Payer:         g.PayerName,
		Description:   g.Description,
		GrossAmount:   g.GrossAmount,
		Tips:          g.Tips,
		PerDiem:       g.PerDiem,
		OtherIncome:   g.OtherIncome,
		Fees:          g.Fees,
		TotalReceived: g.TotalReceived(),
		PaymentMethod: g.PaymentMethod,
		Paid:          paid,
	}
}

// Fields implements ExportRow.
func (r GigExportRow) Fields() map[string]any {
	return map[string]any{
		"Date":           r.Date,
		"Payer":          r.Payer,
		"Description":    r.Description,
		"Gross Amount":   r.GrossAmount,
		"Tips":           r.Tips,
		"Per Diem":       r.PerDiem,
		"Other Income":   r.OtherIncome,
		"Fees":           r.Fees,
		"Total Received": r.TotalReceived,
		"Payment Method": r.PaymentMethod,
		"Paid":           r.Paid,
	}
}

// ExpenseExportRow is the flattened projection of an Expense record.
type ExpenseExportRow struct {
	Date             string
	Merchant         string
	Description      string
	Category         string
	Amount           float64
	DeductibleAmount float64
}

// NewExpenseExportRow flattens an expense record for export. The deductible
// amount reflects the meals limitation when it applies.
func NewExpenseExportRow(e Expense, deductible float64) ExpenseExportRow {
	return ExpenseExportRow{
		Date:             e.Date.Format(exportDateFormat),
		Merchant:         e.Merchant,
		Description:      e.Description,
		Category:         string(e.LineCode),
		Amount:           e.Amount,
		DeductibleAmount: deductible,
	}
}

// Fields implements ExportRow.
func (r ExpenseExportRow) Fields() map[string]any {
	return map[string]any{
		"Date":              r.Date,
		"Merchant":          r.Merchant,
		"Description":       r.Description,
		"Category":          r.Category,
		"Amount":            r.Amount,
		"Deductible Amount": r.DeductibleAmount,
	}
}

// MileageExportRow is the flattened projection of a Mileage record.
type MileageExportRow struct {
	Date          string
	Purpose       string
	BusinessMiles float64
	StandardRate  float64
	Deduction     float64
}

// NewMileageExportRow flattens a mileage record for export. rate is the
// resolved per-mile rate the aggregation used for this trip, so the per-row
// deduction agrees with the summary's car and truck line. A precomputed
// deduction wins when present.
func NewMileageExportRow(m Mileage, rate float64) MileageExportRow {
	deduction := m.CalculatedDeduction
	if deduction == 0 {
		deduction = m.BusinessMiles * rate
	}
	return MileageExportRow{
		Date:          m.Date.Format(exportDateFormat),
		Purpose:       m.Purpose,
		BusinessMiles: m.BusinessMiles,
		StandardRate:  rate,
		Deduction:     deduction,
	}
}

// Fields implements ExportRow.
func (r MileageExportRow) Fields() map[string]any {
	return map[string]any{
		"Date":           r.Date,
		"Purpose":        r.Purpose,
		"Business Miles": r.BusinessMiles,
		"Standard Rate":  r.StandardRate,
		"Deduction":      r.Deduction,
	}
}

// PayerExportRow is the flattened projection of a Payer record.
type PayerExportRow struct {
	Name        string
	TIN         string
	Address     string
	TotalPaid   float64
	Expects1099 string
}

// NewPayerExportRow flattens a payer record for export.
func NewPayerExportRow(p Payer) PayerExportRow {
	expects := "No"
	if p.Expects1099 {
		expects = "Yes"
	}
	return PayerExportRow{
		Name:        p.Name,
		TIN:         p.TIN,
		Address:     p.Address,
		TotalPaid:   p.TotalPaid,
		Expects1099: expects,
	}
}

// Fields implements ExportRow.
func (r PayerExportRow) Fields() map[string]any {
	return map[string]any{
		"Name":         r.Name,
		"TIN":          r.TIN,
		"Address":      r.Address,
		"Total Paid":   r.TotalPaid,
		"Expects 1099": r.Expects1099,
	}
}

// FormatExportDate formats a timestamp the way export artifacts expect.
func FormatExportDate(t time.Time) string {
	return t.Format(exportDateFormat)
}
