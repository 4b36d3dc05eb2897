// Package export turns domain records and a Schedule C summary into the
// downloadable artifacts: CSV files, an XLSX workbook, and a printable HTML
// summary. All three derive every dollar figure from the same summary
// object, so the formats agree to the cent.
package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gigledger/gigledger/internal/model"
	"github.com/gigledger/gigledger/internal/money"
	"github.com/gigledger/gigledger/internal/schedulec"
)

// Fixed column orders for the per-dataset CSV exports. These are a stable
// contract for downstream CPA tooling and are not configurable.
var (
	GigHeaders = []string{
		"Date", "Payer", "Description", "Gross Amount", "Tips", "Per Diem",
		"Other Income", "Fees", "Total Received", "Payment Method", "Paid",
	}
	ExpenseHeaders = []string{
		"Date", "Merchant", "Description", "Category", "Amount",
		"Deductible Amount",
	}
	MileageHeaders = []string{
		"Date", "Purpose", "Business Miles", "Standard Rate", "Deduction",
	}
	PayerHeaders = []string{
		"Name", "TIN", "Address", "Total Paid", "Expects 1099",
	}
	SummaryHeaders = []string{
		"Tax Year", "Gross Receipts", "Returns and Allowances",
		"Total Income", "Total Expenses", "Net Profit",
		"SE Tax Basis", "Estimated SE Tax", "Estimated Federal Tax",
		"Estimated State Tax", "Total Estimated Tax", "Set-Aside Suggested",
	}
)

// ToCSV serializes rows into CSV text: one header line, then one line per
// row with fields in header order, looked up by column name. The same
// escaping function handles every export type.
func ToCSV(headers []string, rows []model.ExportRow) string {
	var b strings.Builder

	for i, h := range headers {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(escapeField(h))
	}
	b.WriteByte('\n')

	for _, row := range rows {
		fields := row.Fields()
		for i, h := range headers {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(escapeField(stringifyField(fields[h])))
		}
		b.WriteByte('\n')
	}

	return b.String()
}

// escapeField wraps a field in double quotes, doubling any embedded quote,
// iff the field contains a comma, a double quote, or a newline. Every CSV
// produced by this package goes through this one function.
func escapeField(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// stringifyField renders a field value for CSV output. Missing fields and
// nils become empty strings: export correctness favors completeness over
// hard failure.
func stringifyField(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(money.RoundCents(x), 'f', 2, 64)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// GigsCSV serializes gig income records.
func GigsCSV(gigs []model.GigIncome) string {
	rows := make([]model.ExportRow, 0, len(gigs))
	for _, g := range gigs {
		rows = append(rows, model.NewGigExportRow(g))
	}
	return ToCSV(GigHeaders, rows)
}

// ExpensesCSV serializes expense records, including the deductible amount
// after the meals limitation.
func ExpensesCSV(expenses []model.Expense) string {
	rows := make([]model.ExportRow, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, model.NewExpenseExportRow(e, schedulec.DeductibleAmount(e)))
	}
	return ToCSV(ExpenseHeaders, rows)
}

// MileageCSV serializes mileage records. rateOverride, when nonzero, takes
// precedence over each trip's own rate, matching the aggregation's rate
// resolution.
func MileageCSV(trips []model.Mileage, rateOverride float64) string {
	rows := make([]model.ExportRow, 0, len(trips))
	for _, m := range trips {
		rate := schedulec.ResolveMileageRate(rateOverride, m.StandardRate)
		rows = append(rows, model.NewMileageExportRow(m, rate))
	}
	return ToCSV(MileageHeaders, rows)
}

// PayersCSV serializes payer records.
func PayersCSV(payers []model.Payer) string {
	rows := make([]model.ExportRow, 0, len(payers))
	for _, p := range payers {
		rows = append(rows, model.NewPayerExportRow(p))
	}
	return ToCSV(PayerHeaders, rows)
}

// summaryRow adapts a Schedule C summary to the row contract so the
// single-row summary CSV shares the serializer with every other export.
type summaryRow struct {
	s model.ScheduleCSummary
}

// Fields implements model.ExportRow.
func (r summaryRow) Fields() map[string]any {
	return map[string]any{
		"Tax Year":               r.s.TaxYear,
		"Gross Receipts":         r.s.GrossReceipts,
		"Returns and Allowances": r.s.ReturnsAndAllowances,
		"Total Income":           r.s.TotalIncome,
		"Total Expenses":         r.s.TotalExpenses,
		"Net Profit":             r.s.NetProfit,
		"SE Tax Basis":           r.s.TaxEstimate.SETaxBasis,
		"Estimated SE Tax":       r.s.TaxEstimate.EstimatedSETax,
		"Estimated Federal Tax":  r.s.TaxEstimate.EstimatedFederalTax,
		"Estimated State Tax":    r.s.TaxEstimate.EstimatedStateTax,
		"Total Estimated Tax":    r.s.TaxEstimate.TotalEstimatedTax,
		"Set-Aside Suggested":    r.s.TaxEstimate.SetAsideSuggested,
	}
}

// SummaryCSV serializes the Schedule C summary as a single-row CSV.
func SummaryCSV(summary model.ScheduleCSummary) string {
	return ToCSV(SummaryHeaders, []model.ExportRow{summaryRow{s: summary}})
}
