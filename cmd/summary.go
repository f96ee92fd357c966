package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/statlook/statlook-cli/internal/analysis"
	"github.com/statlook/statlook-cli/internal/dataset"
)

var (
	sumOutputPath string
	sumSampleRows int
	sumMaxRows    int
	sumGroupBy    []string
	sumCorr       bool
	sumOutliers   bool
	sumOutlierThr float64
)

var summaryCmd = &cobra.Command{
	Use:   "summary <dataset|file>",
	Short: "Print per-column descriptive statistics for a dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tab, err := dataset.Resolve(args[0])
		if err != nil {
			return err
		}
		conf := effectiveConfig()
		opt := analysis.DefaultOptions()
		opt.MaxRows = conf.MaxRows
		opt.SampleRows = conf.SampleRows
		if cmd.Flags().Changed("max-rows") {
			opt.MaxRows = sumMaxRows
		}
		if cmd.Flags().Changed("sample-rows") {
			opt.SampleRows = sumSampleRows
		}
		opt.GroupBy = sumGroupBy
		opt.Correlations = sumCorr
		if cmd.Flags().Changed("outliers") {
			opt.Outliers = sumOutliers
		}
		if sumOutlierThr > 0 {
			opt.OutlierThreshold = sumOutlierThr
		}

		md := analysis.Summarize(tab, opt).Markdown()
		if sumOutputPath != "" {
			if err := os.WriteFile(sumOutputPath, []byte(md), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Printf("✓ Wrote summary to %s\n", sumOutputPath)
			return nil
		}
		fmt.Println(md)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().StringVarP(&sumOutputPath, "output", "o", "", "optional path to write summary (Markdown)")
	summaryCmd.Flags().IntVar(&sumSampleRows, "sample-rows", 5, "number of sample rows to include")
	summaryCmd.Flags().IntVar(&sumMaxRows, "max-rows", 100000, "maximum rows to process (0 = unlimited)")
	summaryCmd.Flags().StringSliceVar(&sumGroupBy, "group-by", nil, "comma-separated column names to group by (repeatable)")
	summaryCmd.Flags().BoolVar(&sumCorr, "correlations", false, "compute Pearson correlations among numeric columns")
	summaryCmd.Flags().BoolVar(&sumOutliers, "outliers", true, "compute robust outlier counts (MAD)")
	summaryCmd.Flags().Float64Var(&sumOutlierThr, "outlier-threshold", 3.5, "robust |z| threshold for outliers (MAD-based)")
}
