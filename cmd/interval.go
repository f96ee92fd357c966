package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var intervalLevel float64

var intervalCmd = &cobra.Command{
	Use:   "interval <dataset|file>",
	Short: "Report confidence intervals for the fitted coefficients",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, _, _, err := fitFromArgs(args[0], fitX, fitY)
		if err != nil {
			return err
		}
		level := effectiveConfig().ConfidenceLevel
		if cmd.Flags().Changed("level") {
			level = intervalLevel
		}
		ivs, err := m.ConfidenceIntervals(level)
		if err != nil {
			return err
		}
		fmt.Printf("Model: %s ~ %s (n=%d), %.0f%% confidence\n\n", m.YName, m.XName, m.N, level*100)
		fmt.Printf("%-14s %12s %12s %12s\n", "Term", "Estimate", "Lower", "Upper")
		for _, iv := range ivs {
			fmt.Printf("%-14s %12.4f %12.4f %12.4f\n", iv.Name, iv.Estimate, iv.Lower, iv.Upper)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(intervalCmd)
	addModelFlags(intervalCmd)
	intervalCmd.Flags().Float64Var(&intervalLevel, "level", 0.95, "confidence level, e.g. 0.95")
}
