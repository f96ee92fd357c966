package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetFlags clears sticky flag state so invocations stay independent.
func resetFlags(cmds ...*cobra.Command) {
	for _, c := range cmds {
		c.Flags().VisitAll(func(f *pflag.Flag) {
			f.Changed = false
		})
	}
	sumOutputPath = ""
	sumGroupBy = nil
	sumCorr = false
	chartBy = ""
	chartMeasure = ""
	chartOutput = ""
	chartTitle = ""
	plotOutput = ""
	plotTitle = ""
	fitX = ""
	fitY = ""
	repBy = ""
	repNotes = ""
	repDir = ""
	repXLSX = false
	intervalLevel = 0.95
}

// runCmd is a helper to execute the root command with args.
func runCmd(t *testing.T, args ...string) {
	t.Helper()
	if err := tryCmd(args...); err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
}

func tryCmd(args ...string) error {
	resetFlags(summaryCmd, chartCmd, fitCmd, intervalCmd, anovaCmd, plotCmd, reportCmd)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestCLI_SummaryWritesFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "summary.md")
	runCmd(t, "summary", "vehicles", "-o", out)
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	md := string(b)
	if !strings.Contains(md, "[DATASET SUMMARY]") {
		t.Error("missing summary header")
	}
	if !strings.Contains(md, "Rows: 32") {
		t.Errorf("missing row count, got: %.200s", md)
	}
}

func TestCLI_UnknownDatasetFails(t *testing.T) {
	if err := tryCmd("summary", "no-such-dataset"); err == nil {
		t.Fatal("expected error for unknown dataset")
	}
}

func TestCLI_ChartWritesImage(t *testing.T) {
	out := filepath.Join(t.TempDir(), "bars.png")
	runCmd(t, "chart", "crime", "--by", "location_category", "-o", out)
	info, err := os.Stat(out)
	if err != nil {
		t.Fatalf("chart not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("chart file is empty")
	}
}

func TestCLI_ChartRequiresBy(t *testing.T) {
	if err := tryCmd("chart", "crime"); err == nil {
		t.Fatal("expected error when --by missing")
	}
}

func TestCLI_FitAndAnova(t *testing.T) {
	runCmd(t, "fit", "vehicles", "--x", "hp", "--y", "mpg")
	runCmd(t, "anova", "vehicles", "--x", "hp", "--y", "mpg")
	runCmd(t, "interval", "vehicles", "--x", "hp", "--y", "mpg", "--level", "0.9")
}

func TestCLI_FitRequiresColumns(t *testing.T) {
	if err := tryCmd("fit", "vehicles"); err == nil {
		t.Fatal("expected error when --x/--y missing")
	}
}

func TestCLI_PlotWritesImage(t *testing.T) {
	out := filepath.Join(t.TempDir(), "scatter.png")
	runCmd(t, "plot", "vehicles", "--x", "hp", "--y", "mpg", "-o", out)
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("plot not written: %v", err)
	}
}

func TestCLI_ReportProducesRun(t *testing.T) {
	base := t.TempDir()
	runCmd(t, "report", "vehicles", "--x", "hp", "--y", "mpg", "--by", "cyl", "--dir", base, "--xlsx")

	entries, err := os.ReadDir(base)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one run dir, got %d (err %v)", len(entries), err)
	}
	runDir := filepath.Join(base, entries[0].Name())

	for _, name := range []string{"run.json", "report.md", "vehicles.xlsx"} {
		if _, err := os.Stat(filepath.Join(runDir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
	b, err := os.ReadFile(filepath.Join(runDir, "report.md"))
	if err != nil {
		t.Fatal(err)
	}
	md := string(b)
	for _, want := range []string{"[DATASET SUMMARY]", "[LINEAR MODEL]", "[CONFIDENCE INTERVALS]", "[ANOVA]"} {
		if !strings.Contains(md, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestCLI_Datasets(t *testing.T) {
	runCmd(t, "datasets")
}
