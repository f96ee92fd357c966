package cmd

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/statlook/statlook-cli/internal/dataset"
	"github.com/statlook/statlook-cli/internal/regress"
)

var (
	fitX string
	fitY string
)

var fitCmd = &cobra.Command{
	Use:   "fit <dataset|file>",
	Short: "Fit an ordinary least squares regression of --y on --x",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, _, _, err := fitFromArgs(args[0], fitX, fitY)
		if err != nil {
			return err
		}
		printModel(m)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fitCmd)
	addModelFlags(fitCmd)
}

// addModelFlags registers the --x/--y column flags shared by the model
// commands.
func addModelFlags(c *cobra.Command) {
	c.Flags().StringVar(&fitX, "x", "", "numeric predictor column (required)")
	c.Flags().StringVar(&fitY, "y", "", "numeric response column (required)")
}

// fitFromArgs loads a table and fits response ~ predictor over the rows where
// both columns parse as numbers.
func fitFromArgs(nameOrPath, xCol, yCol string) (*regress.Model, []float64, []float64, error) {
	if xCol == "" || yCol == "" {
		return nil, nil, nil, fmt.Errorf("--x and --y are required")
	}
	tab, err := dataset.Resolve(nameOrPath)
	if err != nil {
		return nil, nil, nil, err
	}
	x, y, err := tab.PairedNumeric(xCol, yCol)
	if err != nil {
		return nil, nil, nil, err
	}
	m, err := regress.Fit(xCol, yCol, x, y)
	if err != nil {
		return nil, nil, nil, err
	}
	return m, x, y, nil
}

func printModel(m *regress.Model) {
	fmt.Printf("Model: %s ~ %s (n=%d)\n\n", m.YName, m.XName, m.N)
	fmt.Printf("%-14s %12s %12s %10s %12s\n", "Term", "Estimate", "Std. Error", "t value", "Pr(>|t|)")
	for _, c := range m.Coefficients() {
		fmt.Printf("%-14s %12.4f %12.4f %10.3f %12.4g\n", c.Name, c.Estimate, c.SE, c.T, c.P)
	}
	fmt.Println()
	if math.IsInf(m.F, 1) {
		fmt.Printf("R-squared: %.4f    F(1, %d) = Inf (exact fit)\n", m.R2, m.ResidualDF())
		return
	}
	fmt.Printf("R-squared: %.4f    F(1, %d) = %.4g, p = %.4g\n", m.R2, m.ResidualDF(), m.F, m.FPValue)
}
