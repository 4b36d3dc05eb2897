package schedulec

import (
	"github.com/gigledger/gigledger/internal/model"
	"github.com/gigledger/gigledger/internal/money"
)

// Calculate folds the input's gig, expense, and mileage collections into a
// Schedule C summary. It is pure and deterministic: no I/O, arguments are
// never mutated, and empty collections yield a zero summary. Malformed
// numeric inputs (NaN, Inf) propagate; rows are expected to be validated
// upstream.
func Calculate(input model.CalculationInput) model.ScheduleCSummary {
	var grossReceipts, feesTotal float64

	for i := range input.Gigs {
		g := &input.Gigs[i]
		grossReceipts += g.GrossAmount
		if input.IncludeTips {
			grossReceipts += g.Tips
		}
		grossReceipts += g.PerDiem
		grossReceipts += g.OtherIncome
		feesTotal += g.Fees
	}

	// Fees either reduce gross receipts (returns and allowances) or become
	// a commissions expense, never both.
	var returnsAndAllowances float64
	if !input.IncludeFeesAsDeduction {
		returnsAndAllowances = feesTotal
	}
	totalIncome := grossReceipts - returnsAndAllowances

	b := make(buckets)
	for _, e := range input.Expenses {
		b.addExpense(e)
	}

	var mileageDeduction float64
	for i := range input.Trips {
		t := &input.Trips[i]
		rate := ResolveMileageRate(input.MileageRate, t.StandardRate)
		mileageDeduction += t.BusinessMiles * rate
	}
	b[BucketCarTruck] += mileageDeduction

	if input.IncludeFeesAsDeduction {
		b[BucketCommissions] += feesTotal
	}

	totalExpenses := b.total()
	netProfit := totalIncome - totalExpenses

	summary := model.ScheduleCSummary{
		TaxYear:              input.TaxYear,
		GrossReceipts:        grossReceipts,
		ReturnsAndAllowances: returnsAndAllowances,
		TotalIncome:          totalIncome,
		Advertising:          b[BucketAdvertising],
		CarTruck:             b[BucketCarTruck],
		Commissions:          b[BucketCommissions],
		ContractLabor:        b[BucketContractLabor],
		Depletion:            b[BucketDepletion],
		Depreciation:         b[BucketDepreciation],
		EmployeeBenefits:     b[BucketEmployeeBenefits],
		Insurance:            b[BucketInsurance],
		Interest:             b[BucketInterest],
		LegalProfessional:    b[BucketLegalProfessional],
		OfficeExpense:        b[BucketOfficeExpense],
		RentLease:            b[BucketRentLease],
		Repairs:              b[BucketRepairs],
		Supplies:             b[BucketSupplies],
		TaxesLicenses:        b[BucketTaxesLicenses],
		Travel:               b[BucketTravel],
		MealsAllowed:         b[BucketMealsAllowed],
		Utilities:            b[BucketUtilities],
		Wages:                b[BucketWages],
		OtherExpenses:        b[BucketOther],
		TotalExpenses:        totalExpenses,
		NetProfit:            netProfit,
	}

	summary.TaxEstimate = estimateTaxes(netProfit, input.Breakdown)

	roundSummary(&summary)
	return summary
}

// roundSummary rounds every currency field to cents, half away from zero.
// NetProfit is re-derived from the rounded totals so the conservation
// invariant holds exactly after rounding.
func roundSummary(s *model.ScheduleCSummary) {
	fields := []*float64{
		&s.GrossReceipts, &s.ReturnsAndAllowances,
		&s.Advertising, &s.CarTruck, &s.Commissions, &s.ContractLabor,
		&s.Depletion, &s.Depreciation, &s.EmployeeBenefits, &s.Insurance,
		&s.Interest, &s.LegalProfessional, &s.OfficeExpense, &s.RentLease,
		&s.Repairs, &s.Supplies, &s.TaxesLicenses, &s.Travel,
		&s.MealsAllowed, &s.Utilities, &s.Wages, &s.OtherExpenses,
		&s.TotalIncome, &s.TotalExpenses,
	}
	for _, f := range fields {
		*f = money.RoundCents(*f)
	}
	s.NetProfit = money.RoundCents(s.TotalIncome - s.TotalExpenses)

	e := &s.TaxEstimate
	for _, f := range []*float64{
		&e.SETaxBasis, &e.EstimatedSETax, &e.EstimatedFederalTax,
		&e.EstimatedStateTax, &e.TotalEstimatedTax, &e.SetAsideSuggested,
	} {
		*f = money.RoundCents(*f)
	}
}
