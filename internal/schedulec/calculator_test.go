package schedulec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gigledger/gigledger/internal/model"
	"github.com/gigledger/gigledger/internal/money"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCalculateEmptyInput(t *testing.T) {
	summary := Calculate(model.CalculationInput{TaxYear: 2025})

	assert.Zero(t, summary.GrossReceipts)
	assert.Zero(t, summary.TotalIncome)
	assert.Zero(t, summary.TotalExpenses)
	assert.Zero(t, summary.NetProfit)
	assert.Zero(t, summary.TaxEstimate.SETaxBasis)
	assert.Zero(t, summary.TaxEstimate.TotalEstimatedTax)
	assert.Equal(t, 2025, summary.TaxYear)
}

func TestCalculateDeterministic(t *testing.T) {
	input := model.CalculationInput{
		TaxYear:     2025,
		IncludeTips: true,
		Gigs: []model.GigIncome{
			{Date: date("2025-03-01"), GrossAmount: 1250.33, Tips: 87.12, Fees: 41.99},
			{Date: date("2025-04-15"), GrossAmount: 900.01, PerDiem: 75, OtherIncome: 12.5},
		},
		Expenses: []model.Expense{
			{Date: date("2025-03-02"), LineCode: model.LineSupplies, Amount: 134.56},
			{Date: date("2025-03-09"), LineCode: model.LineMeals, Amount: 89.99},
		},
		Trips: []model.Mileage{
			{Date: date("2025-03-03"), BusinessMiles: 123.4, StandardRate: 0.67},
		},
	}

	first := Calculate(input)
	second := Calculate(input)
	assert.Equal(t, first, second, "identical inputs must yield identical summaries")
}

func TestCalculateIncome(t *testing.T) {
	gigs := []model.GigIncome{
		{GrossAmount: 1000, Tips: 100, PerDiem: 50, OtherIncome: 25, Fees: 250},
	}

	tests := []struct {
		name                     string
		includeTips              bool
		feesAsDeduction          bool
		wantGrossReceipts        float64
		wantReturnsAndAllowances float64
		wantTotalIncome          float64
		wantCommissions          float64
	}{
		{
			name:                     "fees reduce income",
			includeTips:              true,
			wantGrossReceipts:        1175,
			wantReturnsAndAllowances: 250,
			wantTotalIncome:          925,
			wantCommissions:          0,
		},
		{
			name:              "fees as deduction",
			includeTips:       true,
			feesAsDeduction:   true,
			wantGrossReceipts: 1175,
			wantTotalIncome:   1175,
			wantCommissions:   250,
		},
		{
			name:                     "tips excluded",
			wantGrossReceipts:        1075,
			wantReturnsAndAllowances: 250,
			wantTotalIncome:          825,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := Calculate(model.CalculationInput{
				Gigs:                   gigs,
				IncludeTips:            tt.includeTips,
				IncludeFeesAsDeduction: tt.feesAsDeduction,
			})
			assert.InDelta(t, tt.wantGrossReceipts, summary.GrossReceipts, 1e-9)
			assert.InDelta(t, tt.wantReturnsAndAllowances, summary.ReturnsAndAllowances, 1e-9)
			assert.InDelta(t, tt.wantTotalIncome, summary.TotalIncome, 1e-9)
			assert.InDelta(t, tt.wantCommissions, summary.Commissions, 1e-9)
		})
	}
}

func TestCalculateMealsLimitation(t *testing.T) {
	summary := Calculate(model.CalculationInput{
		Expenses: []model.Expense{
			{LineCode: model.LineMeals, Amount: 100},
		},
	})

	assert.InDelta(t, 50.0, summary.MealsAllowed, 1e-9, "meals deduct at 50% by default")
	assert.Zero(t, summary.OtherExpenses, "meals never land in a generic bucket")
	assert.InDelta(t, 50.0, summary.TotalExpenses, 1e-9)
}

func TestCalculateMealsOverride(t *testing.T) {
	full := 1.0
	summary := Calculate(model.CalculationInput{
		Expenses: []model.Expense{
			{LineCode: model.LineMeals, Amount: 80, MealsPercentAllowed: &full},
		},
	})
	assert.InDelta(t, 80.0, summary.MealsAllowed, 1e-9)
}

func TestCalculateMileage(t *testing.T) {
	summary := Calculate(model.CalculationInput{
		Trips: []model.Mileage{
			{BusinessMiles: 50, StandardRate: 0.67},
			{BusinessMiles: 30, StandardRate: 0.67},
		},
	})

	assert.InDelta(t, 53.60, summary.CarTruck, 1e-9)
	assert.InDelta(t, 53.60, summary.TotalExpenses, 1e-9)
}

func TestCalculateMileageRatePrecedence(t *testing.T) {
	tests := []struct {
		name         string
		overrideRate float64
		tripRate     float64
		wantCarTruck float64
	}{
		{name: "input override wins", overrideRate: 0.70, tripRate: 0.67, wantCarTruck: 70},
		{name: "trip rate when no override", tripRate: 0.65, wantCarTruck: 65},
		{name: "default rate when nothing set", wantCarTruck: 67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := Calculate(model.CalculationInput{
				MileageRate: tt.overrideRate,
				Trips: []model.Mileage{
					{BusinessMiles: 100, StandardRate: tt.tripRate},
				},
			})
			assert.InDelta(t, tt.wantCarTruck, summary.CarTruck, 1e-9)
		})
	}
}

func TestCalculatePreservesLoss(t *testing.T) {
	summary := Calculate(model.CalculationInput{
		Gigs: []model.GigIncome{
			{GrossAmount: 100},
		},
		Expenses: []model.Expense{
			{LineCode: model.LineSupplies, Amount: 500},
		},
	})

	assert.InDelta(t, -400.0, summary.NetProfit, 1e-9, "a loss is valid and must not be clamped")
	assert.Zero(t, summary.TaxEstimate.SETaxBasis, "a loss produces zero SE basis, not a negative value")
	assert.Zero(t, summary.TaxEstimate.TotalEstimatedTax)
	assert.Zero(t, summary.TaxEstimate.SetAsideSuggested)
}

func TestCalculateConservation(t *testing.T) {
	summary := Calculate(model.CalculationInput{
		IncludeTips: true,
		Gigs: []model.GigIncome{
			{GrossAmount: 3333.33, Tips: 11.11, Fees: 7.77},
			{GrossAmount: 1234.56, PerDiem: 99.99},
		},
		Expenses: []model.Expense{
			{LineCode: model.LineMeals, Amount: 123.45},
			{LineCode: model.LineSupplies, Amount: 67.89},
			{LineCode: "MYSTERY", Amount: 10.01},
		},
		Trips: []model.Mileage{
			{BusinessMiles: 321.7, StandardRate: 0.67},
		},
	})

	assert.Equal(t, money.Cents(summary.NetProfit), money.Cents(summary.TotalIncome)-money.Cents(summary.TotalExpenses),
		"total income minus total expenses must equal net profit to the cent")
}

func TestCalculateUnknownLineCode(t *testing.T) {
	summary := Calculate(model.CalculationInput{
		Expenses: []model.Expense{
			{LineCode: "NOT_A_REAL_LINE", Amount: 42},
		},
	})
	assert.InDelta(t, 42.0, summary.OtherExpenses, 1e-9)
}

func TestCalculateRoundingIdempotent(t *testing.T) {
	summary := Calculate(model.CalculationInput{
		IncludeTips: true,
		Gigs:        []model.GigIncome{{GrossAmount: 1000.005, Tips: 0.015}},
		Expenses:    []model.Expense{{LineCode: model.LineMeals, Amount: 33.33}},
	})

	again := summary
	roundSummary(&again)
	assert.Equal(t, summary, again, "rounding an already-rounded summary must not change it")
}

func TestCalculateExternalBreakdown(t *testing.T) {
	summary := Calculate(model.CalculationInput{
		Gigs: []model.GigIncome{{GrossAmount: 10000}},
		Breakdown: &model.TaxBreakdown{
			SelfEmployment: 1412.96,
			FederalIncome:  980.55,
			StateIncome:    432.10,
			Total:          2825.61,
		},
	})

	est := summary.TaxEstimate
	assert.InDelta(t, 1412.96, est.EstimatedSETax, 1e-9)
	assert.InDelta(t, 980.55, est.EstimatedFederalTax, 1e-9)
	assert.InDelta(t, 432.10, est.EstimatedStateTax, 1e-9)
	assert.InDelta(t, 2825.61, est.TotalEstimatedTax, 1e-9)
	assert.InDelta(t, 2825.61, est.SetAsideSuggested, 1e-9)
	assert.False(t, est.Approximate, "an external breakdown is the accurate path")
	assert.False(t, est.StateTaxUnknown)
}

func TestCalculateExternalBreakdownDerivesMissingTotal(t *testing.T) {
	// A breakdown with components but no total is an unfilled field, not a
	// zero liability.
	summary := Calculate(model.CalculationInput{
		Gigs: []model.GigIncome{{GrossAmount: 10000}},
		Breakdown: &model.TaxBreakdown{
			SelfEmployment: 1000,
			FederalIncome:  500,
			StateIncome:    250,
		},
	})

	est := summary.TaxEstimate
	assert.InDelta(t, 1750.0, est.TotalEstimatedTax, 1e-9)
	assert.InDelta(t, 1750.0, est.SetAsideSuggested, 1e-9)
	assert.False(t, est.Approximate)
}

func TestCalculateSimplifiedEstimate(t *testing.T) {
	summary := Calculate(model.CalculationInput{
		Gigs: []model.GigIncome{{GrossAmount: 10000}},
	})

	est := summary.TaxEstimate
	require.InDelta(t, 9235.0, est.SETaxBasis, 1e-9)

	// 9235 * (0.124 + 0.029) = 1412.955 -> 1412.96
	assert.InDelta(t, 1412.96, est.EstimatedSETax, 1e-9)
	// 9235 * 0.12
	assert.InDelta(t, 1108.20, est.EstimatedFederalTax, 1e-9)
	assert.Zero(t, est.EstimatedStateTax)
	assert.InDelta(t, 2521.16, est.TotalEstimatedTax, 1e-9)
	assert.InDelta(t, est.TotalEstimatedTax, est.SetAsideSuggested, 1e-9)
	assert.True(t, est.Approximate)
	assert.True(t, est.StateTaxUnknown, "zero state tax from the fallback is flagged, not silent")
}

func TestCalculateSocialSecurityCap(t *testing.T) {
	// Profit large enough that the SE basis exceeds the wage base.
	summary := Calculate(model.CalculationInput{
		Gigs: []model.GigIncome{{GrossAmount: 300000}},
	})

	basis := summary.TaxEstimate.SETaxBasis
	require.Greater(t, basis, float64(SocialSecurityWageBase))

	wantSE := SocialSecurityWageBase*SocialSecurityRate + basis*MedicareRate
	assert.InDelta(t, wantSE, summary.TaxEstimate.EstimatedSETax, 0.01)
}

func TestCalculateDoesNotMutateInput(t *testing.T) {
	gigs := []model.GigIncome{{GrossAmount: 500, Fees: 25}}
	expenses := []model.Expense{{LineCode: model.LineSupplies, Amount: 60}}
	input := model.CalculationInput{Gigs: gigs, Expenses: expenses}

	_ = Calculate(input)

	assert.InDelta(t, 500.0, gigs[0].GrossAmount, 1e-12)
	assert.InDelta(t, 25.0, gigs[0].Fees, 1e-12)
	assert.InDelta(t, 60.0, expenses[0].Amount, 1e-12)
}
