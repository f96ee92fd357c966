package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/statlook/statlook-cli/internal/dataset"
)

// Aggregate is one bar of a categorical aggregation: a category label and its
// aggregated measure. Categories with zero observations never appear; the
// aggregation only sees values present in the table, so absent categories are
// omitted rather than drawn with zero height.
type Aggregate struct {
	Label string
	Value float64
}

// GroupCount groups rows by a categorical column and counts observations per
// distinct value. Results are ordered by descending count, ties by label.
func GroupCount(t *dataset.Table, col string) ([]Aggregate, error) {
	vals, err := t.Column(col)
	if err != nil {
		return nil, err
	}
	counts := map[string]int{}
	for _, v := range vals {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		counts[v]++
	}
	out := make([]Aggregate, 0, len(counts))
	for k, n := range counts {
		out = append(out, Aggregate{Label: k, Value: float64(n)})
	}
	sortAggregates(out)
	return out, nil
}

// GroupMean groups rows by a categorical column and averages a numeric measure
// column within each group. Rows where the measure does not parse are skipped.
func GroupMean(t *dataset.Table, col, measure string) ([]Aggregate, error) {
	gi, ok := t.ColumnIndex(col)
	if !ok {
		return nil, fmt.Errorf("column %q: %w", col, dataset.ErrNotFound)
	}
	mi, ok := t.ColumnIndex(measure)
	if !ok {
		return nil, fmt.Errorf("column %q: %w", measure, dataset.ErrNotFound)
	}
	sums := map[string]float64{}
	counts := map[string]int{}
	for _, row := range t.Rows {
		if gi >= len(row) || mi >= len(row) {
			continue
		}
		key := strings.TrimSpace(row[gi])
		if key == "" {
			continue
		}
		x, okNum := parseCell(strings.TrimSpace(row[mi]))
		if !okNum {
			continue
		}
		sums[key] += x
		counts[key]++
	}
	out := make([]Aggregate, 0, len(sums))
	for k, n := range counts {
		out = append(out, Aggregate{Label: k, Value: sums[k] / float64(n)})
	}
	sortAggregates(out)
	return out, nil
}

func sortAggregates(aggs []Aggregate) {
	sort.Slice(aggs, func(i, j int) bool {
		if aggs[i].Value == aggs[j].Value {
			return aggs[i].Label < aggs[j].Label
		}
		return aggs[i].Value > aggs[j].Value
	})
}
