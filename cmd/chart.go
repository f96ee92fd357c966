package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/statlook/statlook-cli/internal/analysis"
	"github.com/statlook/statlook-cli/internal/chart"
	"github.com/statlook/statlook-cli/internal/dataset"
)

var (
	chartBy      string
	chartMeasure string
	chartOutput  string
	chartTitle   string
)

var chartCmd = &cobra.Command{
	Use:   "chart <dataset|file>",
	Short: "Render a bar chart of counts (or means) per category",
	Long: `Groups rows by a categorical column and renders one bar per distinct
value. Without --measure the bar height is the observation count; with
--measure it is the mean of that numeric column within the category.
Categories absent from the data are omitted, not drawn at zero height.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if chartBy == "" {
			return fmt.Errorf("--by is required")
		}
		tab, err := dataset.Resolve(args[0])
		if err != nil {
			return err
		}
		var aggs []analysis.Aggregate
		yLabel := "count"
		if chartMeasure != "" {
			aggs, err = analysis.GroupMean(tab, chartBy, chartMeasure)
			yLabel = "mean " + chartMeasure
		} else {
			aggs, err = analysis.GroupCount(tab, chartBy)
		}
		if err != nil {
			return err
		}

		conf := effectiveConfig()
		out := chartOutput
		if out == "" {
			out = fmt.Sprintf("%s_by_%s.%s", tab.Name, chartBy, conf.ChartFormat)
		}
		title := chartTitle
		if title == "" {
			title = fmt.Sprintf("%s by %s", tab.Name, chartBy)
		}
		opt := chart.Opts{
			Title:    title,
			XLabel:   chartBy,
			YLabel:   yLabel,
			WidthIn:  conf.ChartWidthIn,
			HeightIn: conf.ChartHeightIn,
		}
		if err := chart.Bar(aggs, opt, out); err != nil {
			return err
		}
		fmt.Printf("✓ Wrote chart to %s (%d categories)\n", out, len(aggs))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chartCmd)
	chartCmd.Flags().StringVar(&chartBy, "by", "", "categorical column to group by (required)")
	chartCmd.Flags().StringVar(&chartMeasure, "measure", "", "numeric column to average per category (default: count rows)")
	chartCmd.Flags().StringVarP(&chartOutput, "output", "o", "", "output image path (extension selects format)")
	chartCmd.Flags().StringVar(&chartTitle, "title", "", "chart title")
}
