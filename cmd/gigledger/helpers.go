package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gigledger/gigledger/internal/model"
)

// applyPolicyFlags overlays explicitly set command-line flags onto the
// options that came with the records bundle. Flags the user did not touch
// leave the bundle's own policy intact.
func applyPolicyFlags(cmd *cobra.Command, input *model.CalculationInput) {
	if cmd.Flags().Changed("year") {
		input.TaxYear = viper.GetInt("export.year")
	}
	if cmd.Flags().Changed("no-tips") {
		input.IncludeTips = !viper.GetBool("export.no_tips")
	}
	if cmd.Flags().Changed("fees-as-deduction") {
		input.IncludeFeesAsDeduction = viper.GetBool("export.fees_as_deduction")
	}
	if cmd.Flags().Changed("mileage-rate") {
		input.MileageRate = viper.GetFloat64("export.mileage_rate")
	}
}
