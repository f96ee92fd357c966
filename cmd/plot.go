package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/statlook/statlook-cli/internal/chart"
)

var (
	plotOutput string
	plotTitle  string
)

var plotCmd = &cobra.Command{
	Use:   "plot <dataset|file>",
	Short: "Render a scatterplot of --x vs --y with the fitted line",
	Long: `Fits response ~ predictor and renders the observations as points with
the fitted regression line overlaid. The line is drawn from the model's
intercept and slope so it always matches the output of 'fit'.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, x, y, err := fitFromArgs(args[0], fitX, fitY)
		if err != nil {
			return err
		}
		conf := effectiveConfig()
		out := plotOutput
		if out == "" {
			out = fmt.Sprintf("%s_vs_%s.%s", m.YName, m.XName, conf.ChartFormat)
		}
		title := plotTitle
		if title == "" {
			title = fmt.Sprintf("%s vs %s", m.YName, m.XName)
		}
		opt := chart.Opts{
			Title:    title,
			XLabel:   m.XName,
			YLabel:   m.YName,
			WidthIn:  conf.ChartWidthIn,
			HeightIn: conf.ChartHeightIn,
		}
		if err := chart.ScatterFit(x, y, m, opt, out); err != nil {
			return err
		}
		fmt.Printf("✓ Wrote scatterplot to %s (%d points)\n", out, len(x))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(plotCmd)
	addModelFlags(plotCmd)
	plotCmd.Flags().StringVarP(&plotOutput, "output", "o", "", "output image path (extension selects format)")
	plotCmd.Flags().StringVar(&plotTitle, "title", "", "chart title")
}
