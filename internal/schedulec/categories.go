// Package schedulec folds raw gig, expense, and mileage records into a
// canonical IRS Schedule C summary with an estimated-tax block.
package schedulec

import "github.com/gigledger/gigledger/internal/model"

// Defaults applied when a record or the calculation input leaves a policy
// value unset. Declared once here rather than coalesced ad hoc at use sites.
const (
	// DefaultMealsPercent is the federal meals limitation: only half of a
	// business meal is deductible.
	DefaultMealsPercent = 0.5

	// DefaultMileageRate is the 2025 IRS standard mileage rate in USD/mile.
	DefaultMileageRate = 0.67
)

// Bucket names a Schedule C expense line in the summary.
type Bucket string

// Buckets, one per named field of model.ScheduleCSummary.
const (
	BucketAdvertising       Bucket = "advertising"
	BucketCarTruck          Bucket = "car_truck"
	BucketCommissions       Bucket = "commissions"
	BucketContractLabor     Bucket = "contract_labor"
	BucketDepletion         Bucket = "depletion"
	BucketDepreciation      Bucket = "depreciation"
	BucketEmployeeBenefits  Bucket = "employee_benefits"
	BucketInsurance         Bucket = "insurance"
	BucketInterest          Bucket = "interest"
	BucketLegalProfessional Bucket = "legal_professional"
	BucketOfficeExpense     Bucket = "office_expense"
	BucketRentLease         Bucket = "rent_lease"
	BucketRepairs           Bucket = "repairs"
	BucketSupplies          Bucket = "supplies"
	BucketTaxesLicenses     Bucket = "taxes_licenses"
	BucketTravel            Bucket = "travel"
	BucketMealsAllowed      Bucket = "meals_allowed"
	BucketUtilities         Bucket = "utilities"
	BucketWages             Bucket = "wages"
	BucketOther             Bucket = "other"
)

// LineCodeBuckets maps an expense's Schedule C line code to its summary
// bucket. Both the canonical aggregator and the workbook assembler's
// fallback recomputation consult this table, so the classification rules
// exist in exactly one place. Meals are intentionally absent: they route
// through the limitation rule, never through the generic lookup.
var LineCodeBuckets = map[model.LineCode]Bucket{
	model.LineAdvertising:       BucketAdvertising,
	model.LineCarTruck:          BucketCarTruck,
	model.LineCommissions:       BucketCommissions,
	model.LineContractLabor:     BucketContractLabor,
	model.LineDepletion:         BucketDepletion,
	model.LineDepreciation:      BucketDepreciation,
	model.LineEmployeeBenefits:  BucketEmployeeBenefits,
	model.LineInsurance:         BucketInsurance,
	model.LineInterest:          BucketInterest,
	model.LineLegalProfessional: BucketLegalProfessional,
	model.LineOfficeExpense:     BucketOfficeExpense,
	model.LineRentLease:         BucketRentLease,
	model.LineRepairs:           BucketRepairs,
	model.LineSupplies:          BucketSupplies,
	model.LineTaxesLicenses:     BucketTaxesLicenses,
	model.LineTravel:            BucketTravel,
	model.LineUtilities:         BucketUtilities,
	model.LineWages:             BucketWages,
	model.LineOther:             BucketOther,
}

// buckets accumulates per-line totals during a calculation pass.
type buckets map[Bucket]float64

// addExpense classifies one expense into its bucket, applying the meals
// limitation. Unrecognized line codes land in the Other bucket.
func (b buckets) addExpense(e model.Expense) {
	if e.LineCode == model.LineMeals {
		pct := DefaultMealsPercent
		if e.MealsPercentAllowed != nil {
			pct = *e.MealsPercentAllowed
		}
		b[BucketMealsAllowed] += e.Amount * pct
		return
	}
	bucket, ok := LineCodeBuckets[e.LineCode]
	if !ok {
		bucket = BucketOther
	}
	b[bucket] += e.Amount
}

// total sums every named bucket. Downstream totals come from the buckets,
// never from a second pass over the raw rows.
func (b buckets) total() float64 {
	var sum float64
	for _, v := range b {
		sum += v
	}
	return sum
}

// DeductibleAmount returns the portion of an expense that is actually
// deductible, which differs from the raw amount only for meals.
func DeductibleAmount(e model.Expense) float64 {
	if e.LineCode == model.LineMeals {
		pct := DefaultMealsPercent
		if e.MealsPercentAllowed != nil {
			pct = *e.MealsPercentAllowed
		}
		return e.Amount * pct
	}
	return e.Amount
}

// ResolveMileageRate applies the rate precedence for one trip: the
// input-level override wins, then the trip's own standard rate, then the
// default for the year.
func ResolveMileageRate(override, tripRate float64) float64 {
	if override != 0 {
		return override
	}
	if tripRate != 0 {
		return tripRate
	}
	return DefaultMileageRate
}
