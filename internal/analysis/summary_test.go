package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/statlook/statlook-cli/internal/dataset"
)

func sampleTable() *dataset.Table {
	return &dataset.Table{
		Name:   "sample",
		Header: []string{"score", "group", "when", "fips", "note"},
		Rows: [][]string{
			{"1", "a", "2023-01-02", "06", "first observation recorded"},
			{"2", "a", "2023-01-03", "06", "second observation recorded"},
			{"3", "b", "2023-01-04", "037", "third observation recorded"},
			{"4", "b", "2023-01-05", "037", "fourth observation recorded"},
			{"5", "b", "2023-01-06", "06", "fifth observation recorded"},
			{"", "c", "", "06", ""},
		},
	}
}

func colByName(t *testing.T, rep *Report, name string) ColumnSummary {
	t.Helper()
	for _, c := range rep.Cols {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("column %s not in report", name)
	return ColumnSummary{}
}

func TestSummarizeRowCount(t *testing.T) {
	tab := sampleTable()
	rep := Summarize(tab, DefaultOptions())
	if rep.Rows != tab.NumRows() {
		t.Errorf("report rows %d != table rows %d", rep.Rows, tab.NumRows())
	}
	if rep.Processed != tab.NumRows() {
		t.Errorf("processed %d != table rows %d", rep.Processed, tab.NumRows())
	}
}

func TestSummarizeKinds(t *testing.T) {
	rep := Summarize(sampleTable(), DefaultOptions())

	if c := colByName(t, rep, "score"); c.Kind != "numeric" {
		t.Errorf("score kind = %s, want numeric", c.Kind)
	}
	if c := colByName(t, rep, "group"); c.Kind != "categorical" {
		t.Errorf("group kind = %s, want categorical", c.Kind)
	}
	if c := colByName(t, rep, "when"); c.Kind != "datetime" {
		t.Errorf("when kind = %s, want datetime", c.Kind)
	}
	// Zero-padded codes are identifiers, not quantities.
	if c := colByName(t, rep, "fips"); c.Kind != "categorical" {
		t.Errorf("fips kind = %s, want categorical", c.Kind)
	}
}

func TestSummarizeNumericStats(t *testing.T) {
	rep := Summarize(sampleTable(), DefaultOptions())
	c := colByName(t, rep, "score")
	if c.NonNull != 5 || c.Missing != 1 {
		t.Errorf("score non-null/missing = %d/%d, want 5/1", c.NonNull, c.Missing)
	}
	if c.Min != 1 || c.Max != 5 {
		t.Errorf("score min/max = %g/%g", c.Min, c.Max)
	}
	if math.Abs(c.Mean-3) > 1e-12 {
		t.Errorf("score mean = %g, want 3", c.Mean)
	}
	if math.Abs(c.Median-3) > 1e-12 {
		t.Errorf("score median = %g, want 3", c.Median)
	}
	if math.Abs(c.Q1-2) > 1e-12 || math.Abs(c.Q3-4) > 1e-12 {
		t.Errorf("score quartiles = %g/%g, want 2/4", c.Q1, c.Q3)
	}
	wantStd := math.Sqrt(2.5)
	if math.Abs(c.Std-wantStd) > 1e-12 {
		t.Errorf("score std = %g, want %g", c.Std, wantStd)
	}
}

func TestSummarizeEmptyTable(t *testing.T) {
	tab := &dataset.Table{Name: "empty", Header: []string{"a", "b"}}
	rep := Summarize(tab, DefaultOptions())
	if rep.Rows != 0 {
		t.Errorf("rows = %d, want 0", rep.Rows)
	}
	if len(rep.Cols) != 2 {
		t.Fatalf("cols = %d, want 2", len(rep.Cols))
	}
	for _, c := range rep.Cols {
		if c.NonNull != 0 || c.Missing != 0 {
			t.Errorf("%s: expected zero counts, got %d/%d", c.Name, c.NonNull, c.Missing)
		}
	}
	// Rendering an all-empty report must not panic or error out.
	if md := rep.Markdown(); !strings.Contains(md, "Rows: 0") {
		t.Errorf("markdown missing row count: %s", md)
	}
}

func TestSummarizeMaxRows(t *testing.T) {
	opt := DefaultOptions()
	opt.MaxRows = 3
	rep := Summarize(sampleTable(), opt)
	if rep.Processed != 3 {
		t.Errorf("processed = %d, want 3", rep.Processed)
	}
	if rep.Rows != 6 {
		t.Errorf("rows = %d, want 6", rep.Rows)
	}
	if len(rep.Warnings) == 0 {
		t.Error("expected truncation warning")
	}
}

func TestSummarizeGroupBy(t *testing.T) {
	opt := DefaultOptions()
	opt.GroupBy = []string{"group"}
	rep := Summarize(sampleTable(), opt)
	if len(rep.Groups) != 3 {
		t.Fatalf("groups = %d, want 3", len(rep.Groups))
	}
	// Largest group first
	if rep.Groups[0].Key != "group=b" || rep.Groups[0].Size != 3 {
		t.Errorf("top group = %s (n=%d), want group=b (n=3)", rep.Groups[0].Key, rep.Groups[0].Size)
	}
	m, ok := rep.Groups[0].Metrics["score"]
	if !ok {
		t.Fatal("missing score metric for group b")
	}
	if math.Abs(m.Mean-4) > 1e-12 {
		t.Errorf("group b mean score = %g, want 4", m.Mean)
	}
}

func TestSummarizeCorrelations(t *testing.T) {
	tab := &dataset.Table{
		Name:   "corr",
		Header: []string{"x", "y"},
		Rows: [][]string{
			{"1", "2"}, {"2", "4"}, {"3", "6"}, {"4", "8"},
		},
	}
	opt := DefaultOptions()
	opt.Correlations = true
	rep := Summarize(tab, opt)
	if rep.Corr == nil {
		t.Fatal("expected correlation matrix")
	}
	if math.Abs(rep.Corr.Values[0][1]-1) > 1e-12 {
		t.Errorf("r(x,y) = %g, want 1", rep.Corr.Values[0][1])
	}
	if rep.Corr.Values[0][0] != 1 || rep.Corr.Values[1][1] != 1 {
		t.Error("diagonal should be 1")
	}
}

func TestSummarizeCorrelationsScatteredMissing(t *testing.T) {
	// Missing cells fall in different rows for x and y. Pairing must happen
	// by row, not by position in each column's parsed stream: positional
	// pairing would match x of row 3 with y of row 2 and so on.
	tab := &dataset.Table{
		Name:   "corr-missing",
		Header: []string{"x", "y"},
		Rows: [][]string{
			{"1", "2"},
			{"", "4"},
			{"3", "6"},
			{"4", ""},
			{"5", "10"},
		},
	}
	opt := DefaultOptions()
	opt.Correlations = true
	rep := Summarize(tab, opt)
	if rep.Corr == nil {
		t.Fatal("expected correlation matrix")
	}
	// On the rows where both parse, y = 2x exactly.
	if math.Abs(rep.Corr.Values[0][1]-1) > 1e-12 {
		t.Errorf("r(x,y) = %g, want 1", rep.Corr.Values[0][1])
	}
}

func TestAlignedPairs(t *testing.T) {
	a := &colAcc{vals: []float64{1, 3, 5}, rows: []int{1, 3, 5}}
	b := &colAcc{vals: []float64{2, 6, 10}, rows: []int{2, 3, 5}}
	x, y := alignedPairs(a, b)
	if len(x) != 2 || len(y) != 2 {
		t.Fatalf("got %d pairs, want 2", len(x))
	}
	if x[0] != 3 || y[0] != 6 || x[1] != 5 || y[1] != 10 {
		t.Errorf("pairs = (%g,%g),(%g,%g), want (3,6),(5,10)", x[0], y[0], x[1], y[1])
	}
}

func TestGroupCount(t *testing.T) {
	aggs, err := GroupCount(sampleTable(), "group")
	if err != nil {
		t.Fatal(err)
	}
	if len(aggs) != 3 {
		t.Fatalf("got %d categories, want 3", len(aggs))
	}
	if aggs[0].Label != "b" || aggs[0].Value != 3 {
		t.Errorf("top category = %s(%g), want b(3)", aggs[0].Label, aggs[0].Value)
	}
	// Total count equals non-empty observations
	var total float64
	for _, a := range aggs {
		total += a.Value
	}
	if total != 6 {
		t.Errorf("total count = %g, want 6", total)
	}
}

func TestGroupCountUnknownColumn(t *testing.T) {
	if _, err := GroupCount(sampleTable(), "nope"); err == nil {
		t.Error("expected error for unknown column")
	}
}

func TestGroupMean(t *testing.T) {
	aggs, err := GroupMean(sampleTable(), "group", "score")
	if err != nil {
		t.Fatal(err)
	}
	// group c has no parseable score, so it is omitted
	if len(aggs) != 2 {
		t.Fatalf("got %d categories, want 2", len(aggs))
	}
	means := map[string]float64{}
	for _, a := range aggs {
		means[a.Label] = a.Value
	}
	if math.Abs(means["a"]-1.5) > 1e-12 {
		t.Errorf("mean(a) = %g, want 1.5", means["a"])
	}
	if math.Abs(means["b"]-4) > 1e-12 {
		t.Errorf("mean(b) = %g, want 4", means["b"])
	}
}

func TestMarkdownSections(t *testing.T) {
	opt := DefaultOptions()
	opt.GroupBy = []string{"group"}
	rep := Summarize(sampleTable(), opt)
	md := rep.Markdown()
	for _, want := range []string{"[DATASET SUMMARY]", "[SCHEMA]", "[GROUP-BY SUMMARY]", "[SAMPLE ROWS]", "Rows: 6"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}
