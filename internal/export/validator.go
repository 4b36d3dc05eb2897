package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/gigledger/gigledger/internal/model"
)

// Required columns per dataset, checked before serialization. A row failing
// these checks still exports (missing fields degrade to empty cells); the
// issues are surfaced so the caller can warn the user.
var (
	GigRequiredFields     = []string{"Date", "Payer", "Gross Amount"}
	ExpenseRequiredFields = []string{"Date", "Merchant", "Amount"}
	MileageRequiredFields = []string{"Date", "Business Miles", "Standard Rate"}
	PayerRequiredFields   = []string{"Name"}
)

// Issue describes one problem found in an export row.
type Issue struct {
	Dataset string
	Field   string
	Reason  string
	Row     int
}

func (i Issue) String() string {
	return fmt.Sprintf("%s row %d: %s %s", i.Dataset, i.Row+1, i.Field, i.Reason)
}

// ValidateRows checks each row for missing or degenerate required fields.
// It never fails the export; it reports.
func ValidateRows(dataset string, rows []model.ExportRow, required []string) []Issue {
	var issues []Issue
	for n, row := range rows {
		fields := row.Fields()
		for _, name := range required {
			v, ok := fields[name]
			if !ok || v == nil {
				issues = append(issues, Issue{Dataset: dataset, Row: n, Field: name, Reason: "is missing"})
				continue
			}
			switch x := v.(type) {
			case string:
				if strings.TrimSpace(x) == "" {
					issues = append(issues, Issue{Dataset: dataset, Row: n, Field: name, Reason: "is empty"})
				}
			case float64:
				if math.IsNaN(x) || math.IsInf(x, 0) {
					issues = append(issues, Issue{Dataset: dataset, Row: n, Field: name, Reason: "is not a finite number"})
				} else if x == 0 {
					issues = append(issues, Issue{Dataset: dataset, Row: n, Field: name, Reason: "is zero"})
				}
			}
		}
	}
	return issues
}
