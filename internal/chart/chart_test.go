package chart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statlook/statlook-cli/internal/analysis"
	"github.com/statlook/statlook-cli/internal/regress"
)

func TestBarWritesImage(t *testing.T) {
	aggs := []analysis.Aggregate{
		{Label: "street", Value: 12},
		{Label: "residence", Value: 7},
		{Label: "commercial", Value: 5},
	}
	for _, ext := range []string{".png", ".svg"} {
		path := filepath.Join(t.TempDir(), "bars"+ext)
		err := Bar(aggs, Opts{Title: "Incidents by category", YLabel: "count"}, path)
		require.NoError(t, err, ext)
		info, err := os.Stat(path)
		require.NoError(t, err, ext)
		assert.Greater(t, info.Size(), int64(0), ext)
	}
}

func TestBarEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bars.png")
	err := Bar(nil, Opts{}, path)
	assert.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no file should be written")
}

func TestScatterFitWritesImage(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{3, 5, 7, 9, 11}
	m, err := regress.Fit("x", "y", x, y)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "scatter.png")
	err = ScatterFit(x, y, m, Opts{Title: "y vs x"}, path)
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestScatterFitLengthMismatch(t *testing.T) {
	m, err := regress.Fit("x", "y", []float64{1, 2, 3}, []float64{1, 2, 4})
	require.NoError(t, err)
	err = ScatterFit([]float64{1, 2, 3}, []float64{1, 2}, m, Opts{}, filepath.Join(t.TempDir(), "s.png"))
	assert.ErrorIs(t, err, regress.ErrLengthMismatch)
}

func TestScatterFitEmpty(t *testing.T) {
	m, err := regress.Fit("x", "y", []float64{1, 2, 3}, []float64{1, 2, 4})
	require.NoError(t, err)
	err = ScatterFit(nil, nil, m, Opts{}, filepath.Join(t.TempDir(), "s.png"))
	assert.Error(t, err)
}
