package regress

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"
)

// AnovaRow is one source of variation in an ANOVA table.
type AnovaRow struct {
	Source string
	DF     int
	SumSq  float64
	MeanSq float64
	F      float64
	P      float64
}

// AnovaTable is the variance decomposition of a fitted model: one row per
// model term plus the residual row. Term and residual degrees of freedom sum
// to n-1, and their sums of squares sum to the total sum of squares.
type AnovaTable struct {
	Response string
	Rows     []AnovaRow
	TotalDF  int
	TotalSS  float64
}

// ANOVA decomposes the fitted model's total sum of squares into its
// regression and residual components.
func (m *Model) ANOVA() *AnovaTable {
	regDF := 1
	resDF := m.ResidualDF()
	msr := m.ESS / float64(regDF)
	mse := m.RSS / float64(resDF)

	f := math.Inf(1)
	p := 0.0
	if mse > 0 {
		f = msr / mse
		p = distuv.F{D1: float64(regDF), D2: float64(resDF)}.Survival(f)
	}

	return &AnovaTable{
		Response: m.YName,
		Rows: []AnovaRow{
			{Source: m.XName, DF: regDF, SumSq: m.ESS, MeanSq: msr, F: f, P: p},
			{Source: "Residuals", DF: resDF, SumSq: m.RSS, MeanSq: mse, F: math.NaN(), P: math.NaN()},
		},
		TotalDF: regDF + resDF,
		TotalSS: m.ESS + m.RSS,
	}
}

// String renders the table in the familiar fixed-width layout.
func (t *AnovaTable) String() string {
	var b strings.Builder
	if t.Response != "" {
		fmt.Fprintf(&b, "Analysis of Variance: response %s\n", t.Response)
	}
	fmt.Fprintf(&b, "%-12s %6s %12s %12s %10s %10s\n", "Source", "Df", "Sum Sq", "Mean Sq", "F value", "Pr(>F)")
	for _, r := range t.Rows {
		fmt.Fprintf(&b, "%-12s %6d %12.4f %12.4f", r.Source, r.DF, r.SumSq, r.MeanSq)
		if math.IsNaN(r.F) {
			b.WriteString("\n")
			continue
		}
		fmt.Fprintf(&b, " %10.4f %10.4g\n", r.F, r.P)
	}
	fmt.Fprintf(&b, "%-12s %6d %12.4f\n", "Total", t.TotalDF, t.TotalSS)
	return b.String()
}
