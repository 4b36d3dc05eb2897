package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gigledger/gigledger/internal/cli"
	"github.com/gigledger/gigledger/internal/common"
	"github.com/gigledger/gigledger/internal/config"
	"github.com/gigledger/gigledger/internal/export"
	"github.com/gigledger/gigledger/internal/model"
	"github.com/gigledger/gigledger/internal/records"
	"github.com/gigledger/gigledger/internal/schedulec"
)

// Export artifact file names.
const (
	gigsFile     = "gigs.csv"
	expensesFile = "expenses.csv"
	mileageFile  = "mileage.csv"
	payersFile   = "payers.csv"
	summaryFile  = "schedule_c_summary.csv"
	workbookFile = "gigledger_tax_export.xlsx"
	htmlFile     = "schedule_c_summary.html"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Generate the CPA-ready export bundle",
		Long: `Fold the recorded gigs, expenses, and mileage into a Schedule C summary
and write the export artifacts: per-dataset CSV files, a five-sheet
spreadsheet, and a printable HTML summary.`,
		RunE: runExport,
	}

	cmd.Flags().StringP("input", "i", config.DefaultRecordsFile, "records bundle to export")
	cmd.Flags().StringP("out", "o", "exports", "output directory")
	cmd.Flags().StringP("format", "f", "all", "artifact format (csv, xlsx, html, all)")
	cmd.Flags().IntP("year", "y", 0, "tax year (default: from bundle)")
	cmd.Flags().String("taxpayer-name", "", "taxpayer name for the printable summary")
	cmd.Flags().Bool("no-tips", false, "exclude tips from gross receipts")
	cmd.Flags().Bool("fees-as-deduction", false, "treat platform fees as a commissions deduction")
	cmd.Flags().Float64("mileage-rate", 0, "override the per-mile deduction rate")

	_ = viper.BindPFlag("export.input", cmd.Flags().Lookup("input"))
	_ = viper.BindPFlag("export.out", cmd.Flags().Lookup("out"))
	_ = viper.BindPFlag("export.format", cmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("export.year", cmd.Flags().Lookup("year"))
	_ = viper.BindPFlag("export.taxpayer_name", cmd.Flags().Lookup("taxpayer-name"))
	_ = viper.BindPFlag("export.no_tips", cmd.Flags().Lookup("no-tips"))
	_ = viper.BindPFlag("export.fees_as_deduction", cmd.Flags().Lookup("fees-as-deduction"))
	_ = viper.BindPFlag("export.mileage_rate", cmd.Flags().Lookup("mileage-rate"))

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	inputPath := config.ExpandPath(viper.GetString("export.input"))
	outDir := config.ExpandPath(viper.GetString("export.out"))
	format := viper.GetString("export.format")

	switch format {
	case "csv", "xlsx", "html", "all":
	default:
		return common.NewUserError(fmt.Sprintf("unsupported format %q", format), common.ErrUnknownFormat)
	}

	bundle, err := records.Load(inputPath)
	if err != nil {
		return common.NewUserError("could not load records bundle", err)
	}
	applyPolicyFlags(cmd, &bundle.Input)

	reportValidationIssues(bundle)

	summary := schedulec.Calculate(bundle.Input)
	common.LogInfo("computed schedule c summary", common.Fields{
		"tax_year":   summary.TaxYear,
		"gigs":       len(bundle.Input.Gigs),
		"expenses":   len(bundle.Input.Expenses),
		"trips":      len(bundle.Input.Trips),
		"net_profit": summary.NetProfit,
	})

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	artifacts := planArtifacts(format)
	bar := progressbar.NewOptions(len(artifacts),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Writing export artifacts..."),
	)

	for _, write := range artifacts {
		if err := write(outDir, bundle, summary); err != nil {
			return common.NewUserError("export failed", err)
		}
		_ = bar.Add(1)
	}
	fmt.Fprintln(os.Stderr)

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Export bundle written to %s", outDir)))
	return nil
}

// artifactWriter writes one export artifact into the output directory.
type artifactWriter func(outDir string, bundle *records.Bundle, summary model.ScheduleCSummary) error

func planArtifacts(format string) []artifactWriter {
	var writers []artifactWriter
	if format == "csv" || format == "all" {
		writers = append(writers, writeCSVs)
	}
	if format == "xlsx" || format == "all" {
		writers = append(writers, writeWorkbook)
	}
	if format == "html" || format == "all" {
		writers = append(writers, writeHTML)
	}
	return writers
}

func writeCSVs(outDir string, bundle *records.Bundle, summary model.ScheduleCSummary) error {
	files := map[string]string{
		gigsFile:     export.GigsCSV(bundle.Input.Gigs),
		expensesFile: export.ExpensesCSV(bundle.Input.Expenses),
		mileageFile:  export.MileageCSV(bundle.Input.Trips, bundle.Input.MileageRate),
		payersFile:   export.PayersCSV(bundle.Payers),
		summaryFile:  export.SummaryCSV(summary),
	}
	for name, content := range files {
		path := filepath.Join(outDir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		common.LogDebug("wrote csv", common.Fields{"path": path, "bytes": len(content)})
	}
	return nil
}

func writeWorkbook(outDir string, bundle *records.Bundle, summary model.ScheduleCSummary) error {
	data := export.BuildWorkbookData(export.WorkbookInput{
		Summary:     summary,
		Gigs:        bundle.Input.Gigs,
		Expenses:    bundle.Input.Expenses,
		Trips:       bundle.Input.Trips,
		Payers:      bundle.Payers,
		MileageRate: bundle.Input.MileageRate,
	})
	return export.WriteWorkbook(filepath.Join(outDir, workbookFile), data)
}

func writeHTML(outDir string, bundle *records.Bundle, summary model.ScheduleCSummary) error {
	doc, err := export.RenderSummary(summary, summary.TaxYear, viper.GetString("export.taxpayer_name"), time.Now())
	if err != nil {
		return err
	}
	path := filepath.Join(outDir, htmlFile)
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", htmlFile, err)
	}
	return nil
}

// reportValidationIssues runs the pre-serialization checks and warns about
// anything that will degrade to empty cells. Issues never stop the export.
func reportValidationIssues(bundle *records.Bundle) {
	var issues []export.Issue
	issues = append(issues, export.ValidateRows("gigs", gigExportRows(bundle.Input.Gigs), export.GigRequiredFields)...)
	issues = append(issues, export.ValidateRows("expenses", expenseExportRows(bundle.Input.Expenses), export.ExpenseRequiredFields)...)
	issues = append(issues, export.ValidateRows("mileage", mileageExportRows(bundle.Input.Trips), export.MileageRequiredFields)...)
	issues = append(issues, export.ValidateRows("payers", payerExportRows(bundle.Payers), export.PayerRequiredFields)...)

	for _, issue := range issues {
		slog.Warn("export row issue", "dataset", issue.Dataset, "row", issue.Row+1, "field", issue.Field, "reason", issue.Reason)
	}
	if len(issues) > 0 {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("%d export rows have missing fields; they will export with blanks", len(issues))))
	}
}

func gigExportRows(gigs []model.GigIncome) []model.ExportRow {
	rows := make([]model.ExportRow, 0, len(gigs))
	for _, g := range gigs {
		rows = append(rows, model.NewGigExportRow(g))
	}
	return rows
}

func expenseExportRows(expenses []model.Expense) []model.ExportRow {
	rows := make([]model.ExportRow, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, model.NewExpenseExportRow(e, schedulec.DeductibleAmount(e)))
	}
	return rows
}

func mileageExportRows(trips []model.Mileage) []model.ExportRow {
	rows := make([]model.ExportRow, 0, len(trips))
	for _, m := range trips {
		// Raw trip rate on purpose: validation should flag a missing rate
		// before the default is resolved in.
		rows = append(rows, model.NewMileageExportRow(m, m.StandardRate))
	}
	return rows
}

func payerExportRows(payers []model.Payer) []model.ExportRow {
	rows := make([]model.ExportRow, 0, len(payers))
	for _, p := range payers {
		rows = append(rows, model.NewPayerExportRow(p))
	}
	return rows
}
