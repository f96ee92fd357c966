// Package export writes analysis results to spreadsheet workbooks.
package export

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/statlook/statlook-cli/internal/analysis"
	"github.com/statlook/statlook-cli/internal/regress"
)

const (
	sheetSummary      = "Summary"
	sheetCoefficients = "Coefficients"
	sheetANOVA        = "ANOVA"
)

// Workbook writes a summary sheet and, when a fitted model is provided,
// coefficient and ANOVA sheets to an .xlsx file at path.
func Workbook(rep *analysis.Report, m *regress.Model, path string) error {
	if rep == nil {
		return fmt.Errorf("nil report")
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeSummary(f, rep); err != nil {
		return err
	}

	if m != nil {
		if _, err := f.NewSheet(sheetCoefficients); err != nil {
			return fmt.Errorf("add sheet: %w", err)
		}
		if err := writeCoefficients(f, m); err != nil {
			return err
		}
		if _, err := f.NewSheet(sheetANOVA); err != nil {
			return fmt.Errorf("add sheet: %w", err)
		}
		if err := writeANOVA(f, m.ANOVA()); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, rep *analysis.Report) error {
	if err := setRow(f, sheetSummary, 1, "Dataset", rep.Name); err != nil {
		return err
	}
	if err := setRow(f, sheetSummary, 2, "Rows", rep.Rows); err != nil {
		return err
	}
	if err := setRow(f, sheetSummary, 4,
		"Column", "Kind", "NonNull", "Missing", "Min", "Q1", "Median", "Q3", "Max", "Mean", "Std"); err != nil {
		return err
	}
	row := 5
	for _, c := range rep.Cols {
		cells := []any{c.Name, c.Kind, c.NonNull, c.Missing}
		if c.Kind == "numeric" {
			cells = append(cells, c.Min, c.Q1, c.Median, c.Q3, c.Max, c.Mean, c.Std)
		}
		if err := setRow(f, sheetSummary, row, cells...); err != nil {
			return err
		}
		row++
	}
	return nil
}

func writeCoefficients(f *excelize.File, m *regress.Model) error {
	if err := setRow(f, sheetCoefficients, 1, "Model", fmt.Sprintf("%s ~ %s", m.YName, m.XName)); err != nil {
		return err
	}
	if err := setRow(f, sheetCoefficients, 2, "N", m.N); err != nil {
		return err
	}
	if err := setRow(f, sheetCoefficients, 3, "R-squared", m.R2); err != nil {
		return err
	}
	if err := setRow(f, sheetCoefficients, 5, "Term", "Estimate", "Std. Error", "t value", "Pr(>|t|)"); err != nil {
		return err
	}
	row := 6
	for _, c := range m.Coefficients() {
		if err := setRow(f, sheetCoefficients, row, c.Name, c.Estimate, c.SE, cell(c.T), cell(c.P)); err != nil {
			return err
		}
		row++
	}
	return nil
}

func writeANOVA(f *excelize.File, tab *regress.AnovaTable) error {
	if err := setRow(f, sheetANOVA, 1, "Source", "Df", "Sum Sq", "Mean Sq", "F value", "Pr(>F)"); err != nil {
		return err
	}
	row := 2
	for _, r := range tab.Rows {
		if err := setRow(f, sheetANOVA, row, r.Source, r.DF, r.SumSq, r.MeanSq, cell(r.F), cell(r.P)); err != nil {
			return err
		}
		row++
	}
	return setRow(f, sheetANOVA, row, "Total", tab.TotalDF, tab.TotalSS)
}

// cell maps NaN and infinities to empty cells; Excel has no representation
// for them.
func cell(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return v
}

func setRow(f *excelize.File, sheet string, row int, values ...any) error {
	for i, v := range values {
		name, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, name, v); err != nil {
			return fmt.Errorf("set %s!%s: %w", sheet, name, err)
		}
	}
	return nil
}
