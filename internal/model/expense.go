package model

import "time"

// LineCode identifies the Schedule C line an expense is classified under.
type LineCode string

// Schedule C line codes recognized by the category mapper.
const (
	LineAdvertising       LineCode = "ADVERTISING"
	LineCarTruck          LineCode = "CAR_TRUCK"
	LineCommissions       LineCode = "COMMISSIONS"
	LineContractLabor     LineCode = "CONTRACT_LABOR"
	LineDepletion         LineCode = "DEPLETION"
	LineDepreciation      LineCode = "DEPRECIATION"
	LineEmployeeBenefits  LineCode = "EMPLOYEE_BENEFITS"
	LineInsurance         LineCode = "INSURANCE"
	LineInterest          LineCode = "INTEREST"
	LineLegalProfessional LineCode = "LEGAL_PROFESSIONAL"
	LineOfficeExpense     LineCode = "OFFICE_EXPENSE"
	LineRentLease         LineCode = "RENT_LEASE"
	LineRepairs           LineCode = "REPAIRS"
	LineSupplies          LineCode = "SUPPLIES"
	LineTaxesLicenses     LineCode = "TAXES_LICENSES"
	LineTravel            LineCode = "TRAVEL"
	LineMeals             LineCode = "MEALS"
	LineUtilities         LineCode = "UTILITIES"
	LineWages             LineCode = "WAGES"
	LineOther             LineCode = "OTHER"
)

// Expense represents a single deductible business expense.
type Expense struct {
	Date        time.Time
	ID          string
	Merchant    string
	Description string
	LineCode    LineCode
	// MealsPercentAllowed overrides the federal 50% meals limitation when
	// set. Nil means the default applies. Ignored for non-meal lines.
	MealsPercentAllowed *float64
	Amount              float64
}
