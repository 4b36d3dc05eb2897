package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gigledger/gigledger/internal/model"
	"github.com/gigledger/gigledger/internal/schedulec"
)

func TestEscapeField(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain field stays bare", in: "Lyft", want: "Lyft"},
		{name: "comma forces quoting", in: "Wedding, Reception", want: `"Wedding, Reception"`},
		{name: "embedded quote doubles", in: `the "big" gig`, want: `"the ""big"" gig"`},
		{name: "newline forces quoting", in: "line1\nline2", want: "\"line1\nline2\""},
		{name: "empty stays empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeField(tt.in))
		})
	}
}

func TestToCSVHeaderAndOrder(t *testing.T) {
	gig := model.GigIncome{
		Date:          time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC),
		PayerName:     "Wedding, Reception Co",
		Description:   "DJ set",
		GrossAmount:   850,
		Tips:          120.5,
		PaymentMethod: "CHECK",
		Paid:          true,
	}

	out := GigsCSV([]model.GigIncome{gig})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)

	assert.Equal(t, "Date,Payer,Description,Gross Amount,Tips,Per Diem,Other Income,Fees,Total Received,Payment Method,Paid", lines[0])
	assert.Equal(t, `2025-06-14,"Wedding, Reception Co",DJ set,850.00,120.50,0.00,0.00,0.00,970.50,CHECK,Yes`, lines[1])
}

func TestToCSVMissingFieldIsEmpty(t *testing.T) {
	// A header with no matching field degrades to an empty cell.
	row := model.NewPayerExportRow(model.Payer{Name: "Acme"})
	out := ToCSV([]string{"Name", "Nonexistent Column"}, []model.ExportRow{row})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Acme,", lines[1])
}

func TestExpensesCSVDeductibleAmount(t *testing.T) {
	out := ExpensesCSV([]model.Expense{
		{
			Date:     time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
			Merchant: "Diner",
			LineCode: model.LineMeals,
			Amount:   100,
		},
	})

	assert.Contains(t, out, "100.00,50.00", "meals row carries both raw and deductible amounts")
}

func TestMileageCSV(t *testing.T) {
	out := MileageCSV([]model.Mileage{
		{
			Date:          time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC),
			Purpose:       "client site",
			BusinessMiles: 50,
			StandardRate:  0.67,
		},
	}, 0)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "2025-05-02,client site,50.00,0.67,33.50", lines[1])
}

func TestMileageCSVAgreesWithSummary(t *testing.T) {
	// The per-row deduction must use the same rate resolution as the
	// aggregation, so the mileage file and the summary's car and truck
	// line never disagree.
	tests := []struct {
		name     string
		trip     model.Mileage
		override float64
		wantRow  string
		wantCar  float64
	}{
		{
			name:    "missing trip rate falls to default",
			trip:    model.Mileage{BusinessMiles: 100},
			wantRow: "0001-01-01,,100.00,0.67,67.00",
			wantCar: 67,
		},
		{
			name:     "override beats trip rate",
			trip:     model.Mileage{BusinessMiles: 100, StandardRate: 0.65},
			override: 0.70,
			wantRow:  "0001-01-01,,100.00,0.70,70.00",
			wantCar:  70,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trips := []model.Mileage{tt.trip}
			out := MileageCSV(trips, tt.override)
			lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
			require.Len(t, lines, 2)
			assert.Equal(t, tt.wantRow, lines[1])

			summary := schedulec.Calculate(model.CalculationInput{Trips: trips, MileageRate: tt.override})
			assert.InDelta(t, tt.wantCar, summary.CarTruck, 1e-9)
		})
	}
}

func TestSummaryCSVSingleRow(t *testing.T) {
	summary := model.ScheduleCSummary{
		TaxYear:       2025,
		GrossReceipts: 1175,
		TotalIncome:   925,
		TotalExpenses: 53.6,
		NetProfit:     871.4,
	}

	out := SummaryCSV(summary)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Tax Year,Gross Receipts,"))
	assert.Contains(t, lines[1], "871.40")
}

func TestCSVEndsWithNewline(t *testing.T) {
	out := PayersCSV(nil)
	assert.True(t, strings.HasSuffix(out, "\n"))
	assert.Equal(t, 1, strings.Count(out, "\n"), "empty dataset still emits the header line")
}
