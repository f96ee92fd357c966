package analysis

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/statlook/statlook-cli/internal/dataset"
)

// Options controls summary behavior for tabular data.
type Options struct {
	// MaxRows limits rows processed; 0 means unlimited.
	MaxRows int
	// SampleRows determines how many example rows to include in the report.
	SampleRows int
	// GroupBy computes per-group summaries for the given column names.
	GroupBy []string
	// Correlations computes Pearson correlations among numeric columns.
	Correlations bool
	// Outlier detection via robust Z-score (MAD). If Outliers is true, counts |z|>threshold.
	Outliers         bool
	OutlierThreshold float64
}

// DefaultOptions returns reasonable defaults for dataset summaries.
func DefaultOptions() Options {
	return Options{
		MaxRows:    100000,
		SampleRows: 5,
		Outliers:   true,
	}
}

// Report is a markdown-friendly summary of a tabular dataset.
type Report struct {
	Name      string
	Rows      int
	Processed int
	Cols      []ColumnSummary
	Samples   [][]string
	Warnings  []string
	Groups    []GroupResult
	Corr      *CorrMatrix
}

// ColumnSummary captures inferred type and statistics per column.
type ColumnSummary struct {
	Name    string
	Kind    string // numeric|datetime|categorical|text|unknown
	NonNull int
	Missing int
	Unique  int
	// Numeric stats
	Min    float64
	Max    float64
	Mean   float64
	Std    float64
	Q1     float64
	Median float64
	Q3     float64
	// Outliers (robust Z via MAD)
	OutliersCount    int
	OutliersMaxAbsZ  float64
	OutlierThreshold float64
	// Categorical top values
	TopValues    []CategoryCount
	ExampleTexts []string
}

// CategoryCount is one distinct category value with its observation count.
type CategoryCount struct {
	Value string
	Count int
}

// GroupResult captures aggregated metrics per group key.
type GroupResult struct {
	Key     string
	Size    int
	Metrics map[string]NumSummary // by column name
}

// NumSummary is a compact numeric aggregate for one group.
type NumSummary struct {
	Count          int
	Min, Max, Mean float64
}

// CorrMatrix holds a symmetric Pearson correlation matrix across numeric columns.
type CorrMatrix struct {
	Columns []string
	Values  [][]float64 // row-major, Values[i][j]
}

// colAcc accumulates one column's statistics during the row scan.
type colAcc struct {
	name   string
	nonNil int
	miss   int

	// numeric stats via Welford
	n      int
	mean   float64
	m2     float64
	min    float64
	max    float64
	numCnt int
	dtCnt  int
	txtCnt int
	vals   []float64
	rows   []int // row number of each entry in vals
	cats   map[string]int
	exText []string
}

// Summarize computes per-column descriptive statistics for a table.
// An empty table reports every column with zero counts rather than erroring.
func Summarize(t *dataset.Table, opt Options) *Report {
	ncol := t.NumCols()
	cols := make([]*colAcc, ncol)
	for i, h := range t.Header {
		cols[i] = &colAcc{name: h, min: math.Inf(1), max: math.Inf(-1), cats: make(map[string]int)}
	}

	rep := &Report{Name: t.Name, Rows: t.NumRows()}
	maxRows := opt.MaxRows
	if maxRows <= 0 {
		maxRows = math.MaxInt
	}
	sampleRows := opt.SampleRows
	if sampleRows <= 0 {
		sampleRows = 5
	}

	// Group-by accumulators
	type gAcc struct {
		size int
		sum  map[int]float64
		cnt  map[int]int
		min  map[int]float64
		max  map[int]float64
	}
	groups := map[string]*gAcc{}
	gbIdx := make([]int, 0, len(opt.GroupBy))
	for _, name := range opt.GroupBy {
		if idx, ok := t.ColumnIndex(name); ok {
			gbIdx = append(gbIdx, idx)
		}
	}

	for _, row := range t.Rows {
		if rep.Processed >= maxRows {
			break
		}
		rep.Processed++

		if len(rep.Samples) < sampleRows {
			rowCopy := make([]string, ncol)
			copy(rowCopy, row)
			rep.Samples = append(rep.Samples, rowCopy)
		}

		var gkey string
		if len(gbIdx) > 0 {
			parts := make([]string, 0, len(gbIdx))
			for _, idx := range gbIdx {
				if idx < len(row) {
					parts = append(parts, cols[idx].name+"="+safeVal(strings.TrimSpace(row[idx])))
				}
			}
			gkey = strings.Join(parts, " | ")
		}

		for j := 0; j < ncol && j < len(row); j++ {
			v := strings.TrimSpace(row[j])
			c := cols[j]
			if v == "" {
				c.miss++
				continue
			}
			c.nonNil++
			if x, ok := parseCell(v); ok {
				c.numCnt++
				c.n++
				if x < c.min {
					c.min = x
				}
				if x > c.max {
					c.max = x
				}
				delta := x - c.mean
				c.mean += delta / float64(c.n)
				c.m2 += delta * (x - c.mean)
				c.vals = append(c.vals, x)
				c.rows = append(c.rows, rep.Processed)
				if gkey != "" {
					ga := groups[gkey]
					if ga == nil {
						ga = &gAcc{sum: map[int]float64{}, cnt: map[int]int{}, min: map[int]float64{}, max: map[int]float64{}}
						groups[gkey] = ga
					}
					ga.sum[j] += x
					ga.cnt[j]++
					if _, ok := ga.min[j]; !ok || x < ga.min[j] {
						ga.min[j] = x
					}
					if _, ok := ga.max[j]; !ok || x > ga.max[j] {
						ga.max[j] = x
					}
				}
				continue
			}
			if _, ok := parseTimeMaybe(v); ok {
				c.dtCnt++
				continue
			}
			c.txtCnt++
			if len(c.cats) <= 10000 && len(v) <= 64 { // guard memory; short tokens are categories
				c.cats[v]++
			}
			if len(c.exText) < 3 {
				c.exText = append(c.exText, v)
			}
		}
		if gkey != "" {
			ga := groups[gkey]
			if ga == nil {
				ga = &gAcc{sum: map[int]float64{}, cnt: map[int]int{}, min: map[int]float64{}, max: map[int]float64{}}
				groups[gkey] = ga
			}
			ga.size++
		}
	}

	// Build summaries
	rep.Cols = make([]ColumnSummary, 0, ncol)
	numCols := []int{}
	for idx, c := range cols {
		s := ColumnSummary{Name: c.name, NonNull: c.nonNil, Missing: c.miss}
		kind := "unknown"
		switch {
		case c.numCnt >= c.dtCnt && c.numCnt >= c.txtCnt && c.numCnt > 0:
			kind = "numeric"
			s.Min = c.min
			s.Max = c.max
			s.Mean = c.mean
			if c.n > 1 {
				s.Std = math.Sqrt(c.m2 / float64(c.n-1))
			}
			sorted := make([]float64, len(c.vals))
			copy(sorted, c.vals)
			sort.Float64s(sorted)
			s.Q1 = stat.Quantile(0.25, stat.LinInterp, sorted, nil)
			s.Median = stat.Quantile(0.5, stat.LinInterp, sorted, nil)
			s.Q3 = stat.Quantile(0.75, stat.LinInterp, sorted, nil)
			numCols = append(numCols, idx)
			if opt.Outliers && len(c.vals) >= 8 {
				s.OutliersCount, s.OutliersMaxAbsZ, s.OutlierThreshold = countOutliers(c.vals, opt.OutlierThreshold)
			}
		case c.dtCnt >= c.txtCnt && c.dtCnt > 0:
			kind = "datetime"
		case len(c.cats) > 0:
			kind = "categorical"
			s.TopValues = topCategories(c.cats, 8)
			s.Unique = len(c.cats)
		case c.txtCnt > 0:
			kind = "text"
			s.ExampleTexts = c.exText
		}
		s.Kind = kind
		rep.Cols = append(rep.Cols, s)
	}

	if rep.Processed < rep.Rows {
		rep.Warnings = append(rep.Warnings, warnTruncated(rep.Processed, rep.Rows))
	}

	// Build group-by results
	if len(groups) > 0 {
		out := make([]GroupResult, 0, len(groups))
		for k, ga := range groups {
			gr := GroupResult{Key: k, Size: ga.size, Metrics: map[string]NumSummary{}}
			for _, idx := range numCols {
				if ga.cnt[idx] == 0 {
					continue
				}
				gr.Metrics[cols[idx].name] = NumSummary{
					Count: ga.cnt[idx],
					Min:   ga.min[idx],
					Max:   ga.max[idx],
					Mean:  ga.sum[idx] / float64(ga.cnt[idx]),
				}
			}
			out = append(out, gr)
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].Size == out[j].Size {
				return out[i].Key < out[j].Key
			}
			return out[i].Size > out[j].Size
		})
		if len(out) > 20 {
			out = out[:20]
		}
		rep.Groups = out
	}

	if opt.Correlations && len(numCols) >= 2 {
		rep.Corr = correlations(cols, numCols)
	}
	return rep
}

// correlations computes a pairwise Pearson matrix over the numeric columns.
// Each pair uses only the rows where both cells parsed, so columns with
// scattered missing values correlate on their row-aligned overlap.
func correlations(cols []*colAcc, numCols []int) *CorrMatrix {
	n := len(numCols)
	names := make([]string, n)
	for i, idx := range numCols {
		names[i] = cols[idx].name
	}
	vals := make([][]float64, n)
	for i := range vals {
		vals[i] = make([]float64, n)
		vals[i][i] = 1
	}
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			x, y := alignedPairs(cols[numCols[a]], cols[numCols[b]])
			if len(x) < 2 {
				continue
			}
			r := stat.Correlation(x, y, nil)
			if math.IsNaN(r) || math.IsInf(r, 0) {
				r = 0
			}
			vals[a][b] = r
			vals[b][a] = r
		}
	}
	return &CorrMatrix{Columns: names, Values: vals}
}

// alignedPairs intersects two columns' observation streams on row number.
// Both streams are in row order, so a two-pointer merge suffices.
func alignedPairs(a, b *colAcc) (x, y []float64) {
	i, j := 0, 0
	for i < len(a.rows) && j < len(b.rows) {
		switch {
		case a.rows[i] < b.rows[j]:
			i++
		case a.rows[i] > b.rows[j]:
			j++
		default:
			x = append(x, a.vals[i])
			y = append(y, b.vals[j])
			i++
			j++
		}
	}
	return x, y
}

func topCategories(cats map[string]int, limit int) []CategoryCount {
	tops := make([]CategoryCount, 0, len(cats))
	for k, v := range cats {
		tops = append(tops, CategoryCount{Value: k, Count: v})
	}
	sort.Slice(tops, func(i, j int) bool {
		if tops[i].Count == tops[j].Count {
			return tops[i].Value < tops[j].Value
		}
		return tops[i].Count > tops[j].Count
	})
	if len(tops) > limit {
		tops = tops[:limit]
	}
	return tops
}

// countOutliers counts robust outliers via MAD-scaled Z-scores.
func countOutliers(vals []float64, threshold float64) (count int, maxAbsZ, thr float64) {
	thr = threshold
	if thr <= 0 {
		thr = 3.5
	}
	median, mad := medianMAD(vals)
	if mad <= 0 {
		return 0, 0, thr
	}
	for _, v := range vals {
		z := 0.6745 * (v - median) / mad
		az := math.Abs(z)
		if az > thr {
			count++
		}
		if az > maxAbsZ {
			maxAbsZ = az
		}
	}
	return count, maxAbsZ, thr
}

// medianMAD computes median and MAD (median absolute deviation) of values.
func medianMAD(vals []float64) (median, mad float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)
	median = stat.Quantile(0.5, stat.LinInterp, cp, nil)
	dev := make([]float64, len(cp))
	for i, v := range cp {
		dev[i] = math.Abs(v - median)
	}
	sort.Float64s(dev)
	mad = stat.Quantile(0.5, stat.LinInterp, dev, nil)
	return
}

// parseCell decides whether a cell is a numeric observation. Zero-padded
// integer tokens ("06", "037") are identifiers, not quantities: the leading
// zero is semantically meaningful, so they classify as categorical.
func parseCell(s string) (float64, bool) {
	if len(s) > 1 && s[0] == '0' && !strings.ContainsAny(s, ".eE") {
		return 0, false
	}
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return x, true
}

func parseTimeMaybe(s string) (time.Time, bool) {
	layouts := []string{
		time.RFC3339, "2006-01-02", "2006/01/02", "02/01/2006", "01/02/2006",
		"2006-01-02 15:04", "2006-01-02 15:04:05", "1/2/2006 15:04", "1/2/2006 15:04:05",
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
