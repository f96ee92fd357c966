package cmd

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/statlook/statlook-cli/internal/analysis"
	"github.com/statlook/statlook-cli/internal/chart"
	"github.com/statlook/statlook-cli/internal/dataset"
	"github.com/statlook/statlook-cli/internal/export"
	"github.com/statlook/statlook-cli/internal/regress"
	"github.com/statlook/statlook-cli/internal/run"
	"github.com/statlook/statlook-cli/internal/utils"
)

var (
	repBy    string
	repNotes string
	repDir   string
	repXLSX  bool
)

var reportCmd = &cobra.Command{
	Use:   "report <dataset|file>",
	Short: "Run the full analysis walkthrough and save it as a run",
	Long: `Runs every analysis step in sequence: column summary, bar chart of a
categorical column, OLS fit, confidence intervals, scatterplot with the
fitted line, and the ANOVA table. Outputs are written to a new run
directory with a run.json manifest.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tab, err := dataset.Resolve(args[0])
		if err != nil {
			return err
		}
		conf := effectiveConfig()

		var m *regress.Model
		var x, y []float64
		if fitX != "" || fitY != "" {
			m, x, y, err = fitFromArgs(args[0], fitX, fitY)
			if err != nil {
				return err
			}
		}

		baseDir := repDir
		if baseDir == "" {
			baseDir = conf.RunsDir
		}
		r := run.New(tab.Name, repNotes, filepath.Join(baseDir, fmt.Sprintf("%s-%s", tab.Name, time.Now().Format("20060102-150405"))))
		if err := utils.EnsureDir(r.RootDir()); err != nil {
			return fmt.Errorf("create run dir: %w", err)
		}

		// Step 1: summary
		opt := analysis.DefaultOptions()
		opt.MaxRows = conf.MaxRows
		opt.SampleRows = conf.SampleRows
		rep := analysis.Summarize(tab, opt)

		var md strings.Builder
		md.WriteString(rep.Markdown())

		// Step 2: categorical bar chart
		if repBy != "" {
			aggs, err := analysis.GroupCount(tab, repBy)
			if err != nil {
				return err
			}
			barPath := filepath.Join(r.RootDir(), fmt.Sprintf("%s_by_%s.%s", tab.Name, repBy, conf.ChartFormat))
			bopt := chart.Opts{
				Title:    fmt.Sprintf("%s by %s", tab.Name, repBy),
				XLabel:   repBy,
				YLabel:   "count",
				WidthIn:  conf.ChartWidthIn,
				HeightIn: conf.ChartHeightIn,
			}
			if err := chart.Bar(aggs, bopt, barPath); err != nil {
				return err
			}
			if _, err := r.AddArtifact(barPath, "chart", "bar chart of "+repBy); err != nil {
				return err
			}
			fmt.Printf("✓ Bar chart: %s\n", barPath)
		}

		// Steps 3-6: fit, intervals, scatterplot, ANOVA
		if m != nil {
			md.WriteString("\n[LINEAR MODEL]\n")
			fmt.Fprintf(&md, "%s ~ %s (n=%d)\n", m.YName, m.XName, m.N)
			for _, c := range m.Coefficients() {
				fmt.Fprintf(&md, "- %s: %.4f (SE %.4f)\n", c.Name, c.Estimate, c.SE)
			}
			if math.IsInf(m.F, 1) {
				fmt.Fprintf(&md, "R-squared %.4f, exact fit\n", m.R2)
			} else {
				fmt.Fprintf(&md, "R-squared %.4f, F(1, %d) = %.4g (p = %.4g)\n", m.R2, m.ResidualDF(), m.F, m.FPValue)
			}

			ivs, err := m.ConfidenceIntervals(conf.ConfidenceLevel)
			if err != nil {
				return err
			}
			fmt.Fprintf(&md, "\n[CONFIDENCE INTERVALS] (%.0f%%)\n", conf.ConfidenceLevel*100)
			for _, iv := range ivs {
				fmt.Fprintf(&md, "- %s: [%.4f, %.4f]\n", iv.Name, iv.Lower, iv.Upper)
			}

			scatterPath := filepath.Join(r.RootDir(), fmt.Sprintf("%s_vs_%s.%s", m.YName, m.XName, conf.ChartFormat))
			sopt := chart.Opts{
				Title:    fmt.Sprintf("%s vs %s", m.YName, m.XName),
				WidthIn:  conf.ChartWidthIn,
				HeightIn: conf.ChartHeightIn,
			}
			if err := chart.ScatterFit(x, y, m, sopt, scatterPath); err != nil {
				return err
			}
			if _, err := r.AddArtifact(scatterPath, "chart", "scatterplot with fitted line"); err != nil {
				return err
			}
			fmt.Printf("✓ Scatterplot: %s\n", scatterPath)

			md.WriteString("\n[ANOVA]\n")
			md.WriteString(m.ANOVA().String())
		}

		// Persist the markdown report
		reportPath := filepath.Join(r.RootDir(), "report.md")
		if err := utils.SafeWriteFile(reportPath, []byte(md.String())); err != nil {
			return err
		}
		if _, err := r.AddArtifact(reportPath, "report", "analysis report"); err != nil {
			return err
		}

		// Optional workbook
		if repXLSX {
			wbPath := filepath.Join(r.RootDir(), tab.Name+".xlsx")
			if err := export.Workbook(rep, m, wbPath); err != nil {
				return err
			}
			if _, err := r.AddArtifact(wbPath, "workbook", "summary workbook"); err != nil {
				return err
			}
			fmt.Printf("✓ Workbook: %s\n", wbPath)
		}

		if err := r.Save(); err != nil {
			return err
		}
		fmt.Printf("✓ Run %s saved to %s (%d artifacts)\n", r.ID, r.RootDir(), len(r.Artifacts))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	addModelFlags(reportCmd)
	reportCmd.Flags().StringVar(&repBy, "by", "", "categorical column for the bar chart step")
	reportCmd.Flags().StringVar(&repNotes, "notes", "", "free-form notes stored in the run manifest")
	reportCmd.Flags().StringVar(&repDir, "dir", "", "base directory for the run (default: configured runs_dir)")
	reportCmd.Flags().BoolVar(&repXLSX, "xlsx", false, "also export an .xlsx workbook")
}
