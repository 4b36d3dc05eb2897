package model

// FilingStatus mirrors the federal filing statuses relevant to estimation.
type FilingStatus string

// Filing status constants.
const (
	FilingSingle          FilingStatus = "single"
	FilingMarriedJoint    FilingStatus = "married_joint"
	FilingMarriedSeparate FilingStatus = "married_separate"
	FilingHeadOfHousehold FilingStatus = "head_of_household"
)

// DeductionMethod selects between standard-mileage and actual-expense
// vehicle deductions.
type DeductionMethod string

// Deduction method constants.
const (
	DeductionStandardMileage DeductionMethod = "standard_mileage"
	DeductionActualExpense   DeductionMethod = "actual_expense"
)

// TaxBreakdown is an externally computed tax liability split, supplied by a
// collaborator that knows state-specific rates. When present it is used
// verbatim in place of the simplified estimate.
type TaxBreakdown struct {
	SelfEmployment float64
	FederalIncome  float64
	StateIncome    float64
	Total          float64
}

// CalculationInput is the aggregator's sole input: the raw record
// collections plus the policy switches that control income and expense
// treatment.
type CalculationInput struct {
	Gigs     []GigIncome
	Expenses []Expense
	Trips    []Mileage

	TaxYear         int
	FilingStatus    FilingStatus
	State           string
	DeductionMethod DeductionMethod

	// IncludeTips counts tips as gross receipts.
	IncludeTips bool
	// IncludeFeesAsDeduction treats platform fees as a commissions expense
	// instead of a reduction of gross receipts.
	IncludeFeesAsDeduction bool
	// MileageRate overrides every trip's standard rate when nonzero.
	MileageRate float64

	// Breakdown, when non-nil, supplies the accurate tax liability split.
	Breakdown *TaxBreakdown
}

// TaxEstimate is the estimated-liability block of a Schedule C summary.
type TaxEstimate struct {
	SETaxBasis          float64
	EstimatedSETax      float64
	EstimatedFederalTax float64
	EstimatedStateTax   float64
	TotalEstimatedTax   float64
	SetAsideSuggested   float64
	// Approximate is true when the simplified fallback estimate was used
	// instead of an externally supplied breakdown.
	Approximate bool
	// StateTaxUnknown is true when the fallback path reported zero state
	// tax without knowing the taxpayer's state rates.
	StateTaxUnknown bool
}

// ScheduleCSummary is the canonical aggregation result. Every currency
// field is rounded to cents, half away from zero, before the summary is
// returned; TotalIncome - TotalExpenses always equals NetProfit exactly.
type ScheduleCSummary struct {
	TaxYear int

	GrossReceipts        float64
	ReturnsAndAllowances float64
	TotalIncome          float64

	Advertising       float64
	CarTruck          float64
	Commissions       float64
	ContractLabor     float64
	Depletion         float64
	Depreciation      float64
	EmployeeBenefits  float64
	Insurance         float64
	Interest          float64
	LegalProfessional float64
	OfficeExpense     float64
	RentLease         float64
	Repairs           float64
	Supplies          float64
	TaxesLicenses     float64
	Travel            float64
	MealsAllowed      float64
	Utilities         float64
	Wages             float64
	OtherExpenses     float64

	TotalExpenses float64
	NetProfit     float64

	TaxEstimate TaxEstimate
}

// ExpenseLine is one named Schedule C expense line with its total.
type ExpenseLine struct {
	Label  string
	Amount float64
}

// ExpenseLines returns the named expense lines in Schedule C order.
func (s *ScheduleCSummary) ExpenseLines() []ExpenseLine {
	return []ExpenseLine{
		{"Advertising", s.Advertising},
		{"Car and truck expenses", s.CarTruck},
		{"Commissions and fees", s.Commissions},
		{"Contract labor", s.ContractLabor},
		{"Depletion", s.Depletion},
		{"Depreciation", s.Depreciation},
		{"Employee benefit programs", s.EmployeeBenefits},
		{"Insurance (other than health)", s.Insurance},
		{"Interest", s.Interest},
		{"Legal and professional services", s.LegalProfessional},
		{"Office expense", s.OfficeExpense},
		{"Rent or lease", s.RentLease},
		{"Repairs and maintenance", s.Repairs},
		{"Supplies", s.Supplies},
		{"Taxes and licenses", s.TaxesLicenses},
		{"Travel", s.Travel},
		{"Deductible meals (50% limit applied)", s.MealsAllowed},
		{"Utilities", s.Utilities},
		{"Wages", s.Wages},
		{"Other expenses", s.OtherExpenses},
	}
}
