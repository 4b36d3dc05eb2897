package export

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/gigledger/gigledger/internal/model"
	"github.com/gigledger/gigledger/internal/money"
)

// summaryTemplate is the self-contained printable document. The embedded
// CSS targets the browser print dialog; no external assets are referenced.
var summaryTemplate = template.Must(template.New("summary").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Schedule C Summary {{.TaxYear}}</title>
<style>
  body { font-family: Georgia, "Times New Roman", serif; color: #1a1a1a; margin: 2rem auto; max-width: 48rem; }
  h1 { font-size: 1.5rem; border-bottom: 2px solid #1a1a1a; padding-bottom: 0.4rem; }
  h2 { font-size: 1.1rem; margin-top: 1.6rem; text-transform: uppercase; letter-spacing: 0.05em; }
  .meta { color: #555; font-size: 0.85rem; }
  table { width: 100%; border-collapse: collapse; margin-top: 0.6rem; }
  td { padding: 0.3rem 0.5rem; border-bottom: 1px solid #ddd; }
  td.amount { text-align: right; font-variant-numeric: tabular-nums; white-space: nowrap; }
  tr.total td { border-top: 2px solid #1a1a1a; border-bottom: none; font-weight: bold; }
  .loss { color: #8b0000; }
  .estimates { border: 2px solid #1a1a1a; padding: 1rem 1.2rem; margin-top: 2rem; page-break-inside: avoid; }
  .disclaimer { font-size: 0.78rem; color: #555; margin-top: 0.8rem; }
  @media print {
    body { margin: 0.5in; max-width: none; }
    .estimates { break-inside: avoid; }
  }
</style>
</head>
<body>
<h1>Schedule C Summary &mdash; Tax Year {{.TaxYear}}</h1>
<p class="meta">{{if .TaxpayerName}}Prepared for {{.TaxpayerName}} &middot; {{end}}Generated {{.GeneratedDate}}</p>

<h2>Part I &mdash; Income</h2>
<table>
  <tr><td>Gross receipts</td><td class="amount">{{.GrossReceipts}}</td></tr>
  <tr><td>Returns and allowances</td><td class="amount">{{.ReturnsAndAllowances}}</td></tr>
  <tr class="total"><td>Total income</td><td class="amount">{{.TotalIncome}}</td></tr>
</table>

<h2>Part II &mdash; Expenses</h2>
<table>
{{range .ExpenseLines}}  <tr><td>{{.Label}}</td><td class="amount">{{.Amount}}</td></tr>
{{end}}  <tr class="total"><td>Total expenses</td><td class="amount">{{.TotalExpenses}}</td></tr>
</table>

<table>
  <tr class="total"><td>Net profit{{if .IsLoss}} (loss){{end}}</td><td class="amount{{if .IsLoss}} loss{{end}}">{{.NetProfit}}</td></tr>
</table>

<div class="estimates">
  <h2>Tax Estimates{{if .Approximate}} (approximate){{end}}</h2>
  <table>
    <tr><td>Self-employment tax basis</td><td class="amount">{{.SETaxBasis}}</td></tr>
    <tr><td>Estimated self-employment tax</td><td class="amount">{{.EstimatedSETax}}</td></tr>
    <tr><td>Estimated federal income tax</td><td class="amount">{{.EstimatedFederalTax}}</td></tr>
    <tr><td>Estimated state income tax{{if .StateTaxUnknown}} (not estimated){{end}}</td><td class="amount">{{.EstimatedStateTax}}</td></tr>
    <tr class="total"><td>Total estimated tax</td><td class="amount">{{.TotalEstimatedTax}}</td></tr>
    <tr><td>Suggested set-aside</td><td class="amount">{{.SetAsideSuggested}}</td></tr>
    <tr><td>Effective rate</td><td class="amount">{{.EffectiveRate}}</td></tr>
  </table>
  <p class="disclaimer">These figures are informational estimates only and do
  not constitute tax advice. Consult a tax professional before filing.</p>
</div>
</body>
</html>
`))

// summaryView is the template's view model: every currency value already
// formatted as localized USD with exactly two decimals.
type summaryView struct {
	TaxYear       int
	TaxpayerName  string
	GeneratedDate string

	GrossReceipts        string
	ReturnsAndAllowances string
	TotalIncome          string

	ExpenseLines []expenseLineView

	TotalExpenses string
	NetProfit     string
	IsLoss        bool

	SETaxBasis          string
	EstimatedSETax      string
	EstimatedFederalTax string
	EstimatedStateTax   string
	TotalEstimatedTax   string
	SetAsideSuggested   string
	EffectiveRate       string
	Approximate         bool
	StateTaxUnknown     bool
}

type expenseLineView struct {
	Label  string
	Amount string
}

// RenderSummary renders the Schedule C summary as a complete print-styled
// HTML document. Zero-valued expense categories are omitted; losses are
// shown in accounting parentheses.
func RenderSummary(summary model.ScheduleCSummary, taxYear int, taxpayerName string, generated time.Time) (string, error) {
	view := summaryView{
		TaxYear:              taxYear,
		TaxpayerName:         taxpayerName,
		GeneratedDate:        generated.Format("January 2, 2006"),
		GrossReceipts:        money.FormatUSD(summary.GrossReceipts),
		ReturnsAndAllowances: money.FormatUSD(summary.ReturnsAndAllowances),
		TotalIncome:          money.FormatUSD(summary.TotalIncome),
		TotalExpenses:        money.FormatUSD(summary.TotalExpenses),
		NetProfit:            money.FormatUSDAccounting(summary.NetProfit),
		IsLoss:               summary.NetProfit < 0,
		SETaxBasis:           money.FormatUSD(summary.TaxEstimate.SETaxBasis),
		EstimatedSETax:       money.FormatUSD(summary.TaxEstimate.EstimatedSETax),
		EstimatedFederalTax:  money.FormatUSD(summary.TaxEstimate.EstimatedFederalTax),
		EstimatedStateTax:    money.FormatUSD(summary.TaxEstimate.EstimatedStateTax),
		TotalEstimatedTax:    money.FormatUSD(summary.TaxEstimate.TotalEstimatedTax),
		SetAsideSuggested:    money.FormatUSD(summary.TaxEstimate.SetAsideSuggested),
		EffectiveRate:        effectiveRate(summary),
		Approximate:          summary.TaxEstimate.Approximate,
		StateTaxUnknown:      summary.TaxEstimate.StateTaxUnknown,
	}

	for _, line := range summary.ExpenseLines() {
		if line.Amount == 0 {
			continue
		}
		view.ExpenseLines = append(view.ExpenseLines, expenseLineView{
			Label:  line.Label,
			Amount: money.FormatUSD(line.Amount),
		})
	}

	var b strings.Builder
	if err := summaryTemplate.Execute(&b, view); err != nil {
		return "", fmt.Errorf("failed to render summary: %w", err)
	}
	return b.String(), nil
}

// effectiveRate displays total estimated tax over net profit. A zero or
// negative base would divide to NaN/Inf, so it degrades to a plain label
// instead of poisoning the document.
func effectiveRate(summary model.ScheduleCSummary) string {
	if summary.NetProfit <= 0 || summary.TaxEstimate.TotalEstimatedTax <= 0 {
		return "estimated"
	}
	return money.FormatPercent(summary.TaxEstimate.TotalEstimatedTax / summary.NetProfit)
}
