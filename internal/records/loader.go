// Package records loads the caller-collected record bundle the engine
// consumes. The bundle is the data contract with the persistence
// collaborator: a single JSON document holding the raw arrays plus the
// calculation options.
package records

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/gigledger/gigledger/internal/common"
	"github.com/gigledger/gigledger/internal/model"
)

// bundleDateFormats lists the date formats the collaborator emits.
var bundleDateFormats = []string{time.RFC3339, "2006-01-02"}

// Date unmarshals either an RFC 3339 timestamp or a bare date.
type Date struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range bundleDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("%w: unrecognized date %q", common.ErrInvalidBundle, s)
}

type gigJSON struct {
	ID            string  `json:"id"`
	Date          Date    `json:"date"`
	PayerID       string  `json:"payer_id"`
	PayerName     string  `json:"payer_name"`
	Description   string  `json:"description"`
	GrossAmount   float64 `json:"gross_amount"`
	Tips          float64 `json:"tips"`
	PerDiem       float64 `json:"per_diem"`
	OtherIncome   float64 `json:"other_income"`
	Fees          float64 `json:"fees"`
	PaymentMethod string  `json:"payment_method"`
	Paid          bool    `json:"paid"`
}

type expenseJSON struct {
	ID                  string   `json:"id"`
	Date                Date     `json:"date"`
	Merchant            string   `json:"merchant"`
	Description         string   `json:"description"`
	Category            string   `json:"category"`
	Amount              float64  `json:"amount"`
	MealsPercentAllowed *float64 `json:"meals_percent_allowed"`
}

type mileageJSON struct {
	ID                  string  `json:"id"`
	Date                Date    `json:"date"`
	Purpose             string  `json:"purpose"`
	BusinessMiles       float64 `json:"business_miles"`
	StandardRate        float64 `json:"standard_rate"`
	CalculatedDeduction float64 `json:"calculated_deduction"`
}

type payerJSON struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	TIN         string  `json:"tin"`
	Address     string  `json:"address"`
	TotalPaid   float64 `json:"total_paid"`
	Expects1099 bool    `json:"expects_1099"`
}

type breakdownJSON struct {
	SelfEmployment float64 `json:"self_employment"`
	FederalIncome  float64 `json:"federal_income"`
	StateIncome    float64 `json:"state_income"`
	Total          float64 `json:"total"`
}

type optionsJSON struct {
	TaxYear                int            `json:"tax_year"`
	FilingStatus           string         `json:"filing_status"`
	State                  string         `json:"state"`
	DeductionMethod        string         `json:"deduction_method"`
	IncludeTips            *bool          `json:"include_tips"`
	IncludeFeesAsDeduction bool           `json:"include_fees_as_deduction"`
	MileageRate            float64        `json:"mileage_rate"`
	TaxBreakdown           *breakdownJSON `json:"tax_breakdown"`
}

type bundleJSON struct {
	Gigs     []gigJSON     `json:"gigs"`
	Expenses []expenseJSON `json:"expenses"`
	Mileage  []mileageJSON `json:"mileage"`
	Payers   []payerJSON   `json:"payers"`
	Options  *optionsJSON  `json:"options"`
}

// Bundle is a loaded record set plus the payers that the serializers need
// but the aggregator does not.
type Bundle struct {
	Input  model.CalculationInput
	Payers []model.Payer
}

// Load reads a record bundle from path. Missing arrays load as empty
// collections; malformed JSON is an error.
func Load(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read records file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a record bundle from raw JSON.
func Parse(data []byte) (*Bundle, error) {
	var raw bundleJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidBundle, err)
	}

	bundle := &Bundle{}

	for _, g := range raw.Gigs {
		bundle.Input.Gigs = append(bundle.Input.Gigs, model.GigIncome{
			ID:            g.ID,
			Date:          g.Date.Time,
			PayerID:       g.PayerID,
			PayerName:     g.PayerName,
			Description:   g.Description,
			GrossAmount:   g.GrossAmount,
			Tips:          g.Tips,
			PerDiem:       g.PerDiem,
			OtherIncome:   g.OtherIncome,
			Fees:          g.Fees,
			PaymentMethod: g.PaymentMethod,
			Paid:          g.Paid,
		})
	}

	for _, e := range raw.Expenses {
		bundle.Input.Expenses = append(bundle.Input.Expenses, model.Expense{
			ID:                  e.ID,
			Date:                e.Date.Time,
			Merchant:            e.Merchant,
			Description:         e.Description,
			LineCode:            model.LineCode(e.Category),
			Amount:              e.Amount,
			MealsPercentAllowed: e.MealsPercentAllowed,
		})
	}

	for _, m := range raw.Mileage {
		bundle.Input.Trips = append(bundle.Input.Trips, model.Mileage{
			ID:                  m.ID,
			Date:                m.Date.Time,
			Purpose:             m.Purpose,
			BusinessMiles:       m.BusinessMiles,
			StandardRate:        m.StandardRate,
			CalculatedDeduction: m.CalculatedDeduction,
		})
	}

	for _, p := range raw.Payers {
		bundle.Payers = append(bundle.Payers, model.Payer{
			ID:          p.ID,
			Name:        p.Name,
			TIN:         p.TIN,
			Address:     p.Address,
			TotalPaid:   p.TotalPaid,
			Expects1099: p.Expects1099,
		})
	}

	// Tips count as income unless the bundle says otherwise.
	bundle.Input.IncludeTips = true

	if o := raw.Options; o != nil {
		bundle.Input.TaxYear = o.TaxYear
		bundle.Input.FilingStatus = model.FilingStatus(o.FilingStatus)
		bundle.Input.State = o.State
		bundle.Input.DeductionMethod = model.DeductionMethod(o.DeductionMethod)
		if o.IncludeTips != nil {
			bundle.Input.IncludeTips = *o.IncludeTips
		}
		bundle.Input.IncludeFeesAsDeduction = o.IncludeFeesAsDeduction
		bundle.Input.MileageRate = o.MileageRate
		if o.TaxBreakdown != nil {
			bundle.Input.Breakdown = &model.TaxBreakdown{
				SelfEmployment: o.TaxBreakdown.SelfEmployment,
				FederalIncome:  o.TaxBreakdown.FederalIncome,
				StateIncome:    o.TaxBreakdown.StateIncome,
				Total:          o.TaxBreakdown.Total,
			}
		}
	}

	if bundle.Input.TaxYear == 0 {
		bundle.Input.TaxYear = time.Now().Year()
	}

	return bundle, nil
}
