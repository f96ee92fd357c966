package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadBundled(t *testing.T) {
	for _, name := range []string{"crime", "vehicles"} {
		tab, err := Load(name)
		if err != nil {
			t.Fatalf("Load(%q): %v", name, err)
		}
		if tab.NumRows() == 0 {
			t.Errorf("%s: expected rows, got none", name)
		}
		if tab.NumCols() == 0 {
			t.Errorf("%s: expected columns, got none", name)
		}
	}
}

func TestLoadUnknownIsNotFound(t *testing.T) {
	_, err := Load("no-such-dataset")
	if err == nil {
		t.Fatal("expected error for unknown dataset")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListMatchesManifest(t *testing.T) {
	infos, err := List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("expected 2 bundled datasets, got %d", len(infos))
	}
	// Sorted by name
	if infos[0].Name != "crime" || infos[1].Name != "vehicles" {
		t.Errorf("unexpected order: %s, %s", infos[0].Name, infos[1].Name)
	}
	for _, info := range infos {
		if info.Title == "" || info.File == "" {
			t.Errorf("%s: incomplete manifest entry", info.Name)
		}
	}
}

func TestGeographyCodesKeepLeadingZeros(t *testing.T) {
	tab, err := Load("crime")
	if err != nil {
		t.Fatal(err)
	}
	states, err := tab.Column("fips_state")
	if err != nil {
		t.Fatal(err)
	}
	for i, s := range states {
		if s != "06" {
			t.Fatalf("row %d: fips_state = %q, leading zero lost", i, s)
		}
	}
	counties, err := tab.Column("fips_county")
	if err != nil {
		t.Fatal(err)
	}
	for i, c := range counties {
		if c != "037" {
			t.Fatalf("row %d: fips_county = %q, leading zero lost", i, c)
		}
	}
}

func TestColumnNotFound(t *testing.T) {
	tab, err := Load("vehicles")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tab.Column("horsepowerz"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := tab.Numeric("horsepowerz"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestNumericSkipsNonParseable(t *testing.T) {
	tab := &Table{
		Header: []string{"a"},
		Rows:   [][]string{{"1"}, {""}, {"x"}, {"2.5"}},
	}
	vals, err := tab.Numeric("a")
	if err != nil {
		t.Fatal(err)
	}
	if len(vals) != 2 || vals[0] != 1 || vals[1] != 2.5 {
		t.Errorf("unexpected numeric values: %v", vals)
	}
}

func TestPairedNumericAlignsRows(t *testing.T) {
	tab := &Table{
		Header: []string{"x", "y"},
		Rows: [][]string{
			{"1", "3"},
			{"2", ""},
			{"", "5"},
			{"4", "9"},
		},
	}
	xs, ys, err := tab.PairedNumeric("x", "y")
	if err != nil {
		t.Fatal(err)
	}
	if len(xs) != 2 || len(ys) != 2 {
		t.Fatalf("expected 2 aligned pairs, got %d/%d", len(xs), len(ys))
	}
	if xs[1] != 4 || ys[1] != 9 {
		t.Errorf("pairs misaligned: %v %v", xs, ys)
	}
}

func TestLoadFileTSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.tsv")
	content := "a\tb\n1\t2\n3\t4\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	tab, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if tab.NumRows() != 2 || tab.NumCols() != 2 {
		t.Errorf("unexpected shape: %dx%d", tab.NumRows(), tab.NumCols())
	}
	if tab.Name != "sample" {
		t.Errorf("unexpected name %q", tab.Name)
	}
}

func TestResolveFallsBackToPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "local.csv")
	if err := os.WriteFile(path, []byte("c\n7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	tab, err := Resolve(path)
	if err != nil {
		t.Fatalf("Resolve(path): %v", err)
	}
	if tab.NumRows() != 1 {
		t.Errorf("unexpected rows: %d", tab.NumRows())
	}

	if _, err := Resolve("missing-everywhere"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestVehiclesColumns(t *testing.T) {
	tab, err := Load("vehicles")
	if err != nil {
		t.Fatal(err)
	}
	if tab.NumRows() != 32 {
		t.Errorf("expected 32 vehicles, got %d", tab.NumRows())
	}
	for _, col := range []string{"mpg", "cyl", "disp", "hp", "wt"} {
		vals, err := tab.Numeric(col)
		if err != nil {
			t.Fatalf("Numeric(%q): %v", col, err)
		}
		if len(vals) != 32 {
			t.Errorf("%s: expected 32 numeric values, got %d", col, len(vals))
		}
	}
	if !strings.EqualFold(tab.Header[0], "model") {
		t.Errorf("first column should be model, got %q", tab.Header[0])
	}
}
