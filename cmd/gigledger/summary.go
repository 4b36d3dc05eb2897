package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gigledger/gigledger/internal/cli"
	"github.com/gigledger/gigledger/internal/common"
	"github.com/gigledger/gigledger/internal/config"
	"github.com/gigledger/gigledger/internal/money"
	"github.com/gigledger/gigledger/internal/records"
	"github.com/gigledger/gigledger/internal/schedulec"
)

func summaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the Schedule C summary in the terminal",
		Long: `Compute the Schedule C summary and estimated tax liability from a records
bundle and render it in the terminal without writing any export artifacts.`,
		RunE: runSummary,
	}

	cmd.Flags().StringP("input", "i", config.DefaultRecordsFile, "records bundle to summarize")
	_ = viper.BindPFlag("summary.input", cmd.Flags().Lookup("input"))

	return cmd
}

func runSummary(_ *cobra.Command, _ []string) error {
	bundle, err := records.Load(config.ExpandPath(viper.GetString("summary.input")))
	if err != nil {
		return common.NewUserError("could not load records bundle", err)
	}

	s := schedulec.Calculate(bundle.Input)

	lines := []cli.MoneyLine{
		{Label: "Gross receipts", Amount: money.FormatUSD(s.GrossReceipts)},
		{Label: "Returns and allowances", Amount: money.FormatUSD(s.ReturnsAndAllowances)},
		{Label: "Total income", Amount: money.FormatUSD(s.TotalIncome)},
		{Label: "Total expenses", Amount: money.FormatUSD(s.TotalExpenses)},
		{Label: "Net profit", Amount: money.FormatUSDAccounting(s.NetProfit), Loss: s.NetProfit < 0},
		{Label: "", Amount: ""},
		{Label: "Estimated SE tax", Amount: money.FormatUSD(s.TaxEstimate.EstimatedSETax)},
		{Label: "Estimated federal tax", Amount: money.FormatUSD(s.TaxEstimate.EstimatedFederalTax)},
		{Label: "Estimated state tax", Amount: money.FormatUSD(s.TaxEstimate.EstimatedStateTax)},
		{Label: "Total estimated tax", Amount: money.FormatUSD(s.TaxEstimate.TotalEstimatedTax)},
		{Label: "Suggested set-aside", Amount: money.FormatUSD(s.TaxEstimate.SetAsideSuggested)},
	}

	title := fmt.Sprintf("Schedule C Summary %d", s.TaxYear)
	fmt.Println(cli.RenderBox(title, cli.RenderMoneyTable(lines)))

	if s.TaxEstimate.Approximate {
		fmt.Println(cli.FormatWarning("Tax figures use the simplified estimate; supply a tax breakdown for accurate numbers"))
	}
	if s.TaxEstimate.StateTaxUnknown {
		fmt.Println(cli.FormatWarning("State tax was not estimated and may be understated"))
	}

	return nil
}
