package schedulec

import "github.com/gigledger/gigledger/internal/model"

// Federal self-employment tax parameters.
const (
	// SETaxAdjustment is the portion of net profit subject to SE tax.
	SETaxAdjustment = 0.9235

	// SocialSecurityRate is the combined employer+employee OASDI rate.
	SocialSecurityRate = 0.124

	// SocialSecurityWageBase is the 2025 OASDI wage base in USD.
	SocialSecurityWageBase = 176100

	// MedicareRate is the combined Medicare rate, uncapped.
	MedicareRate = 0.029

	// FlatFederalRate is the 12%-bracket approximation used by the
	// fallback federal estimate.
	FlatFederalRate = 0.12
)

// estimateTaxes builds the tax-estimate block. An externally supplied
// breakdown is used verbatim; otherwise the simplified estimate applies
// and the block is flagged approximate. The fallback cannot know state
// rates, so it reports zero state tax and raises StateTaxUnknown instead
// of silently understating liability.
func estimateTaxes(netProfit float64, breakdown *model.TaxBreakdown) model.TaxEstimate {
	basis := netProfit * SETaxAdjustment
	if basis < 0 {
		basis = 0
	}

	if breakdown != nil {
		// A zero Total alongside nonzero components is an unfilled field,
		// not a zero liability; derive it rather than report nothing owed.
		total := breakdown.Total
		if total == 0 {
			total = breakdown.SelfEmployment + breakdown.FederalIncome + breakdown.StateIncome
		}
		setAside := total
		if setAside < 0 {
			setAside = 0
		}
		return model.TaxEstimate{
			SETaxBasis:          basis,
			EstimatedSETax:      breakdown.SelfEmployment,
			EstimatedFederalTax: breakdown.FederalIncome,
			EstimatedStateTax:   breakdown.StateIncome,
			TotalEstimatedTax:   total,
			SetAsideSuggested:   setAside,
		}
	}

	ssBasis := basis
	if ssBasis > SocialSecurityWageBase {
		ssBasis = SocialSecurityWageBase
	}
	seTax := ssBasis*SocialSecurityRate + basis*MedicareRate

	var federalTax float64
	if basis > 0 {
		federalTax = basis * FlatFederalRate
	}

	total := seTax + federalTax
	setAside := total
	if setAside < 0 {
		setAside = 0
	}

	return model.TaxEstimate{
		SETaxBasis:          basis,
		EstimatedSETax:      seTax,
		EstimatedFederalTax: federalTax,
		EstimatedStateTax:   0,
		TotalEstimatedTax:   total,
		SetAsideSuggested:   setAside,
		Approximate:         true,
		StateTaxUnknown:     true,
	}
}
