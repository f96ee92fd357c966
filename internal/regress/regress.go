// Package regress fits simple ordinary least squares models and derives
// confidence intervals and ANOVA decompositions from them.
package regress

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

var (
	// ErrInsufficientData is returned when there are fewer observations than
	// the model needs to estimate its parameters and a residual variance.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrSingularDesign is returned when the predictor has zero variance.
	ErrSingularDesign = errors.New("singular design: predictor has no variation")
	// ErrLengthMismatch is returned when predictor and response differ in length.
	ErrLengthMismatch = errors.New("predictor and response lengths differ")
)

// Model is a fitted simple linear regression. It is created once by Fit and
// read-only afterwards.
type Model struct {
	XName string
	YName string
	N     int

	Intercept   float64
	Slope       float64
	InterceptSE float64
	SlopeSE     float64

	R2      float64
	F       float64
	FPValue float64

	TSS float64 // total sum of squares
	ESS float64 // explained (regression) sum of squares
	RSS float64 // residual sum of squares

	Residuals []float64
}

// Coefficient is one estimated model term with its inference statistics.
type Coefficient struct {
	Name     string
	Estimate float64
	SE       float64
	T        float64
	P        float64
}

// Interval is a confidence interval for one coefficient.
type Interval struct {
	Name     string
	Estimate float64
	Lower    float64
	Upper    float64
	Level    float64
}

// Fit estimates y = intercept + slope*x by ordinary least squares.
func Fit(xName, yName string, x, y []float64) (*Model, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(x), len(y))
	}
	n := len(x)
	if n < 3 {
		return nil, fmt.Errorf("%w: need at least 3 observations, have %d", ErrInsufficientData, n)
	}

	xMean := stat.Mean(x, nil)
	var sxx float64
	for _, v := range x {
		d := v - xMean
		sxx += d * d
	}
	if sxx == 0 {
		return nil, fmt.Errorf("%w (%s)", ErrSingularDesign, xName)
	}

	alpha, beta := stat.LinearRegression(x, y, nil, false)

	yMean := stat.Mean(y, nil)
	m := &Model{
		XName:     xName,
		YName:     yName,
		N:         n,
		Intercept: alpha,
		Slope:     beta,
		Residuals: make([]float64, n),
	}
	for i := range y {
		fitted := alpha + beta*x[i]
		r := y[i] - fitted
		m.Residuals[i] = r
		m.RSS += r * r
		d := y[i] - yMean
		m.TSS += d * d
	}
	m.ESS = m.TSS - m.RSS
	if m.ESS < 0 {
		m.ESS = 0
	}

	df := float64(n - 2)
	sigma2 := m.RSS / df
	m.SlopeSE = math.Sqrt(sigma2 / sxx)
	m.InterceptSE = math.Sqrt(sigma2 * (1/float64(n) + xMean*xMean/sxx))

	if m.TSS > 0 {
		m.R2 = 1 - m.RSS/m.TSS
	} else {
		// Constant response: a perfect fit explains everything there is.
		m.R2 = 1
	}

	if m.RSS > 0 {
		m.F = m.ESS / (m.RSS / df)
		m.FPValue = distuv.F{D1: 1, D2: df}.Survival(m.F)
	} else {
		m.F = math.Inf(1)
		m.FPValue = 0
	}
	return m, nil
}

// ResidualDF returns the residual degrees of freedom, n - 2.
func (m *Model) ResidualDF() int { return m.N - 2 }

// Predict returns the fitted response at x.
func (m *Model) Predict(x float64) float64 { return m.Intercept + m.Slope*x }

// Coefficients returns the intercept and slope estimates with their standard
// errors, t statistics, and two-sided p-values.
func (m *Model) Coefficients() []Coefficient {
	out := make([]Coefficient, 0, 2)
	for _, c := range []struct {
		name    string
		est, se float64
	}{
		{"(Intercept)", m.Intercept, m.InterceptSE},
		{m.XName, m.Slope, m.SlopeSE},
	} {
		t := math.Inf(1)
		p := 0.0
		if c.se > 0 {
			t = c.est / c.se
			dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(m.ResidualDF())}
			p = 2 * dist.Survival(math.Abs(t))
		}
		out = append(out, Coefficient{Name: c.name, Estimate: c.est, SE: c.se, T: t, P: p})
	}
	return out
}

// ConfidenceIntervals returns one interval per coefficient at the given
// confidence level (0 < level < 1). Intervals are estimate ± t*SE with the
// critical value taken at n-2 degrees of freedom; each interval contains its
// point estimate and collapses to zero width on noise-free data.
func (m *Model) ConfidenceIntervals(level float64) ([]Interval, error) {
	if level <= 0 || level >= 1 {
		return nil, fmt.Errorf("confidence level %g out of range (0, 1)", level)
	}
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(m.ResidualDF())}
	tcrit := dist.Quantile(0.5 + level/2)
	out := make([]Interval, 0, 2)
	for _, c := range m.Coefficients() {
		half := tcrit * c.SE
		out = append(out, Interval{
			Name:     c.Name,
			Estimate: c.Estimate,
			Lower:    c.Estimate - half,
			Upper:    c.Estimate + half,
			Level:    level,
		})
	}
	return out, nil
}
