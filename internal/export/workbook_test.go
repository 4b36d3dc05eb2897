package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/gigledger/gigledger/internal/model"
	"github.com/gigledger/gigledger/internal/schedulec"
)

func testWorkbookInput() WorkbookInput {
	return WorkbookInput{
		Summary: schedulec.Calculate(testCalculationInput()),
		Gigs:    testCalculationInput().Gigs,
		Expenses: []model.Expense{
			{Date: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), Merchant: "Diner", LineCode: model.LineMeals, Amount: 100},
		},
		Trips: []model.Mileage{
			{Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), BusinessMiles: 50, StandardRate: 0.67},
		},
		Payers: []model.Payer{
			{Name: "Acme Events", TotalPaid: 1175, Expects1099: true},
		},
	}
}

func testCalculationInput() model.CalculationInput {
	return model.CalculationInput{
		TaxYear:     2025,
		IncludeTips: true,
		Gigs: []model.GigIncome{
			{Date: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), PayerName: "Acme Events", GrossAmount: 1000, Tips: 100, PerDiem: 50, OtherIncome: 25, Fees: 250},
		},
		Expenses: []model.Expense{
			{LineCode: model.LineMeals, Amount: 100},
		},
		Trips: []model.Mileage{
			{BusinessMiles: 50, StandardRate: 0.67},
		},
	}
}

func TestBuildWorkbookDataHasFiveSheets(t *testing.T) {
	data := BuildWorkbookData(testWorkbookInput())

	require.Len(t, data, 5)
	for _, name := range SheetOrder {
		assert.Contains(t, data, name)
	}
}

func TestBuildWorkbookDataSheetsHaveHeaders(t *testing.T) {
	data := BuildWorkbookData(testWorkbookInput())

	assert.Equal(t, "Date", data[SheetGigs][0][0])
	assert.Equal(t, "Date", data[SheetExpenses][0][0])
	assert.Equal(t, "Date", data[SheetMileage][0][0])
	assert.Equal(t, "Name", data[SheetPayers][0][0])
	assert.Equal(t, "Schedule C Summary", data[SheetSummary][0][0])
}

// findSummaryValue locates a labeled value in the summary sheet.
func findSummaryValue(t *testing.T, sheet [][]any, label string) float64 {
	t.Helper()
	for _, row := range sheet {
		if len(row) >= 2 && row[0] == label {
			v, ok := row[1].(float64)
			require.True(t, ok, "value for %q is not a float", label)
			return v
		}
	}
	t.Fatalf("label %q not found in summary sheet", label)
	return 0
}

func TestBuildWorkbookDataUsesProvidedSummary(t *testing.T) {
	input := testWorkbookInput()
	data := BuildWorkbookData(input)

	got := findSummaryValue(t, data[SheetSummary], "Net Profit")
	assert.InDelta(t, input.Summary.NetProfit, got, 1e-9)
}

func TestBuildWorkbookDataRecomputesZeroSummary(t *testing.T) {
	input := testWorkbookInput()
	input.Summary = model.ScheduleCSummary{} // looks absent, triggers fallback

	data := BuildWorkbookData(input)

	gross := findSummaryValue(t, data[SheetSummary], "Gross Receipts")
	assert.InDelta(t, 1175.0, gross, 1e-9, "fallback recomputes from raw rows")

	meals := findSummaryValue(t, data[SheetSummary], "Deductible meals (50% limit applied)")
	assert.InDelta(t, 50.0, meals, 1e-9, "fallback applies the meals limitation")
}

func TestRecomputeSummaryConservation(t *testing.T) {
	input := testWorkbookInput()
	s := recomputeSummary(input.Gigs, input.Expenses, input.Trips, 0)

	assert.InDelta(t, s.TotalIncome-s.TotalExpenses, s.NetProfit, 0.005)
	assert.InDelta(t, 33.5, s.CarTruck, 1e-9)
}

func TestRecomputeSummaryItemizesAllBuckets(t *testing.T) {
	// Every named line stays itemized in the fallback; nothing folds into
	// the Other bucket except genuinely unclassified expenses.
	expenses := []model.Expense{
		{LineCode: model.LineAdvertising, Amount: 10},
		{LineCode: model.LineUtilities, Amount: 5},
		{LineCode: "MYSTERY", Amount: 3},
	}

	s := recomputeSummary(nil, expenses, nil, 0)
	assert.InDelta(t, 10.0, s.Advertising, 1e-9)
	assert.InDelta(t, 5.0, s.Utilities, 1e-9)
	assert.InDelta(t, 3.0, s.OtherExpenses, 1e-9)
}

func TestRecomputeSummaryHonorsRateOverride(t *testing.T) {
	trips := []model.Mileage{{BusinessMiles: 100, StandardRate: 0.65}}
	s := recomputeSummary(nil, nil, trips, 0.70)
	assert.InDelta(t, 70.0, s.CarTruck, 1e-9)
}

func TestRecomputeSummaryAgreesWithCanonicalClassification(t *testing.T) {
	// Both paths consult the same line-code table, so the same expenses
	// must land in the same buckets.
	expenses := []model.Expense{
		{LineCode: model.LineSupplies, Amount: 40},
		{LineCode: model.LineCommissions, Amount: 15},
		{LineCode: model.LineMeals, Amount: 100},
	}

	canonical := schedulec.Calculate(model.CalculationInput{Expenses: expenses, IncludeTips: true})
	fallback := recomputeSummary(nil, expenses, nil, 0)

	assert.InDelta(t, canonical.Supplies, fallback.Supplies, 1e-9)
	assert.InDelta(t, canonical.Commissions, fallback.Commissions, 1e-9)
	assert.InDelta(t, canonical.MealsAllowed, fallback.MealsAllowed, 1e-9)
	assert.InDelta(t, canonical.TotalExpenses, fallback.TotalExpenses, 1e-9)
}

func TestColumnWidths(t *testing.T) {
	sheet := [][]any{
		{"short", strings.Repeat("x", 100)},
		{"a considerably longer cell value", "y"},
	}

	widths := ColumnWidths(sheet)
	require.Len(t, widths, 2)
	assert.InDelta(t, float64(len("a considerably longer cell value"))+2, widths[0], 1e-9)
	assert.InDelta(t, float64(maxColumnWidth), widths[1], 1e-9, "widths are capped")
}

func TestWriteWorkbook(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export.xlsx")

	data := BuildWorkbookData(testWorkbookInput())
	require.NoError(t, WriteWorkbook(path, data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.ElementsMatch(t, SheetOrder, f.GetSheetList())

	cell, err := f.GetCellValue(SheetGigs, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Date", cell)
}
