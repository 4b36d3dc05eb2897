package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/gigledger/gigledger/internal/model"
	"github.com/gigledger/gigledger/internal/money"
	"github.com/gigledger/gigledger/internal/schedulec"
)

// Sheet names, fixed so the workbook is a stable contract for CPA tooling.
const (
	SheetSummary  = "Schedule C Summary"
	SheetGigs     = "Gigs"
	SheetExpenses = "Expenses"
	SheetMileage  = "Mileage"
	SheetPayers   = "Payers"
)

// SheetOrder is the tab order of the generated workbook.
var SheetOrder = []string{SheetSummary, SheetGigs, SheetExpenses, SheetMileage, SheetPayers}

// maxColumnWidth caps derived column widths, in characters.
const maxColumnWidth = 50

// WorkbookInput carries everything the assembler needs: the canonical
// summary plus the raw collections backing the data sheets.
type WorkbookInput struct {
	Summary  model.ScheduleCSummary
	Gigs     []model.GigIncome
	Expenses []model.Expense
	Trips    []model.Mileage
	Payers   []model.Payer

	// MileageRate, when nonzero, overrides every trip's own rate.
	MileageRate float64
}

// BuildWorkbookData assembles the five-sheet workbook as array-of-arrays
// sheet data. If the supplied summary looks absent or zeroed, a simplified
// summary is recomputed from the raw rows so the workbook is still useful
// when the caller skipped the aggregation step.
func BuildWorkbookData(input WorkbookInput) map[string][][]any {
	summary := input.Summary
	if summary.GrossReceipts <= 0 {
		summary = recomputeSummary(input.Gigs, input.Expenses, input.Trips, input.MileageRate)
	}

	return map[string][][]any{
		SheetSummary:  summarySheet(summary),
		SheetGigs:     rowSheet(GigHeaders, gigRows(input.Gigs)),
		SheetExpenses: rowSheet(ExpenseHeaders, expenseRows(input.Expenses)),
		SheetMileage:  rowSheet(MileageHeaders, mileageRows(input.Trips, input.MileageRate)),
		SheetPayers:   rowSheet(PayerHeaders, payerRows(input.Payers)),
	}
}

// recomputeSummary is the workbook's self-contained fallback aggregation.
// It shares the line-code table and rate resolution with the canonical
// calculator but applies a simplified income policy: tips count as income
// and fees reduce gross receipts. The canonical path in schedulec.Calculate
// is authoritative; this exists so the spreadsheet export degrades
// gracefully, and the two must stay in sync on classification.
func recomputeSummary(gigs []model.GigIncome, expenses []model.Expense, trips []model.Mileage, rateOverride float64) model.ScheduleCSummary {
	var gross, fees float64
	for i := range gigs {
		gross += gigs[i].GrossAmount + gigs[i].Tips + gigs[i].PerDiem + gigs[i].OtherIncome
		fees += gigs[i].Fees
	}

	byBucket := make(map[schedulec.Bucket]float64)
	for _, e := range expenses {
		if e.LineCode == model.LineMeals {
			pct := schedulec.DefaultMealsPercent
			if e.MealsPercentAllowed != nil {
				pct = *e.MealsPercentAllowed
			}
			byBucket[schedulec.BucketMealsAllowed] += e.Amount * pct
			continue
		}
		bucket, ok := schedulec.LineCodeBuckets[e.LineCode]
		if !ok {
			bucket = schedulec.BucketOther
		}
		byBucket[bucket] += e.Amount
	}

	for i := range trips {
		rate := schedulec.ResolveMileageRate(rateOverride, trips[i].StandardRate)
		byBucket[schedulec.BucketCarTruck] += trips[i].BusinessMiles * rate
	}

	var totalExpenses float64
	for _, v := range byBucket {
		totalExpenses += v
	}

	totalIncome := money.RoundCents(gross - fees)
	totalExpenses = money.RoundCents(totalExpenses)

	return model.ScheduleCSummary{
		GrossReceipts:        money.RoundCents(gross),
		ReturnsAndAllowances: money.RoundCents(fees),
		TotalIncome:          totalIncome,
		Advertising:          money.RoundCents(byBucket[schedulec.BucketAdvertising]),
		CarTruck:             money.RoundCents(byBucket[schedulec.BucketCarTruck]),
		Commissions:          money.RoundCents(byBucket[schedulec.BucketCommissions]),
		ContractLabor:        money.RoundCents(byBucket[schedulec.BucketContractLabor]),
		Depletion:            money.RoundCents(byBucket[schedulec.BucketDepletion]),
		Depreciation:         money.RoundCents(byBucket[schedulec.BucketDepreciation]),
		EmployeeBenefits:     money.RoundCents(byBucket[schedulec.BucketEmployeeBenefits]),
		Insurance:            money.RoundCents(byBucket[schedulec.BucketInsurance]),
		Interest:             money.RoundCents(byBucket[schedulec.BucketInterest]),
		LegalProfessional:    money.RoundCents(byBucket[schedulec.BucketLegalProfessional]),
		OfficeExpense:        money.RoundCents(byBucket[schedulec.BucketOfficeExpense]),
		RentLease:            money.RoundCents(byBucket[schedulec.BucketRentLease]),
		Repairs:              money.RoundCents(byBucket[schedulec.BucketRepairs]),
		Supplies:             money.RoundCents(byBucket[schedulec.BucketSupplies]),
		TaxesLicenses:        money.RoundCents(byBucket[schedulec.BucketTaxesLicenses]),
		Travel:               money.RoundCents(byBucket[schedulec.BucketTravel]),
		MealsAllowed:         money.RoundCents(byBucket[schedulec.BucketMealsAllowed]),
		Utilities:            money.RoundCents(byBucket[schedulec.BucketUtilities]),
		Wages:                money.RoundCents(byBucket[schedulec.BucketWages]),
		OtherExpenses:        money.RoundCents(byBucket[schedulec.BucketOther]),
		TotalExpenses:        totalExpenses,
		NetProfit:            money.RoundCents(totalIncome - totalExpenses),
	}
}

// summarySheet renders the summary as label/value pairs, one expense line
// per named category.
func summarySheet(s model.ScheduleCSummary) [][]any {
	rows := [][]any{
		{"Schedule C Summary"},
		{},
		{"Part I: Income"},
		{"Gross Receipts", money.RoundCents(s.GrossReceipts)},
		{"Returns and Allowances", money.RoundCents(s.ReturnsAndAllowances)},
		{"Total Income", money.RoundCents(s.TotalIncome)},
		{},
		{"Part II: Expenses"},
	}
	for _, line := range s.ExpenseLines() {
		rows = append(rows, []any{line.Label, money.RoundCents(line.Amount)})
	}
	rows = append(rows,
		[]any{"Total Expenses", money.RoundCents(s.TotalExpenses)},
		[]any{},
		[]any{"Net Profit", money.RoundCents(s.NetProfit)},
		[]any{},
		[]any{"Tax Estimates"},
		[]any{"SE Tax Basis", money.RoundCents(s.TaxEstimate.SETaxBasis)},
		[]any{"Estimated SE Tax", money.RoundCents(s.TaxEstimate.EstimatedSETax)},
		[]any{"Estimated Federal Tax", money.RoundCents(s.TaxEstimate.EstimatedFederalTax)},
		[]any{"Estimated State Tax", money.RoundCents(s.TaxEstimate.EstimatedStateTax)},
		[]any{"Total Estimated Tax", money.RoundCents(s.TaxEstimate.TotalEstimatedTax)},
		[]any{"Set-Aside Suggested", money.RoundCents(s.TaxEstimate.SetAsideSuggested)},
	)
	return rows
}

// rowSheet renders a header row plus one row per export record, with
// currency cells rounded to cents. Missing fields become empty cells.
func rowSheet(headers []string, rows []model.ExportRow) [][]any {
	out := make([][]any, 0, len(rows)+1)

	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	out = append(out, header)

	for _, row := range rows {
		fields := row.Fields()
		cells := make([]any, len(headers))
		for i, h := range headers {
			switch v := fields[h].(type) {
			case nil:
				cells[i] = ""
			case float64:
				cells[i] = money.RoundCents(v)
			default:
				cells[i] = v
			}
		}
		out = append(out, cells)
	}
	return out
}

func gigRows(gigs []model.GigIncome) []model.ExportRow {
	rows := make([]model.ExportRow, 0, len(gigs))
	for _, g := range gigs {
		rows = append(rows, model.NewGigExportRow(g))
	}
	return rows
}

func expenseRows(expenses []model.Expense) []model.ExportRow {
	rows := make([]model.ExportRow, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, model.NewExpenseExportRow(e, schedulec.DeductibleAmount(e)))
	}
	return rows
}

func mileageRows(trips []model.Mileage, rateOverride float64) []model.ExportRow {
	rows := make([]model.ExportRow, 0, len(trips))
	for _, m := range trips {
		rate := schedulec.ResolveMileageRate(rateOverride, m.StandardRate)
		rows = append(rows, model.NewMileageExportRow(m, rate))
	}
	return rows
}

func payerRows(payers []model.Payer) []model.ExportRow {
	rows := make([]model.ExportRow, 0, len(payers))
	for _, p := range payers {
		rows = append(rows, model.NewPayerExportRow(p))
	}
	return rows
}

// ColumnWidths derives a width per column from the longest stringified
// cell, capped at maxColumnWidth characters.
func ColumnWidths(sheet [][]any) []float64 {
	var widths []float64
	for _, row := range sheet {
		for i, cell := range row {
			w := float64(len(stringifyField(cell))) + 2
			if w > maxColumnWidth {
				w = maxColumnWidth
			}
			for len(widths) <= i {
				widths = append(widths, 0)
			}
			if w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// WriteWorkbook materializes the assembled sheets as an .xlsx file.
func WriteWorkbook(path string, data map[string][][]any) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for _, name := range SheetOrder {
		sheet, ok := data[name]
		if !ok {
			continue
		}
		index, err := f.NewSheet(name)
		if err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", name, err)
		}
		if name == SheetOrder[0] {
			f.SetActiveSheet(index)
		}

		for r, row := range sheet {
			for c, cell := range row {
				ref, err := excelize.CoordinatesToCellName(c+1, r+1)
				if err != nil {
					return fmt.Errorf("failed to resolve cell %d,%d: %w", c+1, r+1, err)
				}
				if err := f.SetCellValue(name, ref, cell); err != nil {
					return fmt.Errorf("failed to set cell %s: %w", ref, err)
				}
			}
		}

		for i, w := range ColumnWidths(sheet) {
			col, err := excelize.ColumnNumberToName(i + 1)
			if err != nil {
				return fmt.Errorf("failed to resolve column %d: %w", i+1, err)
			}
			if err := f.SetColWidth(name, col, col, w); err != nil {
				return fmt.Errorf("failed to set column width: %w", err)
			}
		}
	}

	// NewFile seeds a default sheet that is not part of the contract.
	_ = f.DeleteSheet("Sheet1")

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
