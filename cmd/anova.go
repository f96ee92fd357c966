package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var anovaCmd = &cobra.Command{
	Use:   "anova <dataset|file>",
	Short: "Print the ANOVA table for the fitted regression",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, _, _, err := fitFromArgs(args[0], fitX, fitY)
		if err != nil {
			return err
		}
		fmt.Print(m.ANOVA().String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(anovaCmd)
	addModelFlags(anovaCmd)
}
