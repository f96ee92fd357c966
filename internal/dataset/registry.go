package dataset

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.csv data/datasets.yaml
var bundled embed.FS

// Info describes one bundled dataset from the manifest.
type Info struct {
	Name        string `yaml:"name"`
	File        string `yaml:"file"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Source      string `yaml:"source"`
}

type manifest struct {
	Datasets []Info `yaml:"datasets"`
}

func loadManifest() (*manifest, error) {
	b, err := bundled.ReadFile("data/datasets.yaml")
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m manifest
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}

// List returns the bundled datasets in name order.
func List() ([]Info, error) {
	m, err := loadManifest()
	if err != nil {
		return nil, err
	}
	out := make([]Info, len(m.Datasets))
	copy(out, m.Datasets)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Load returns a bundled dataset by its manifest name. Unknown names fail
// with ErrNotFound.
func Load(name string) (*Table, error) {
	m, err := loadManifest()
	if err != nil {
		return nil, err
	}
	want := strings.ToLower(strings.TrimSpace(name))
	for _, d := range m.Datasets {
		if strings.ToLower(d.Name) != want {
			continue
		}
		b, err := bundled.ReadFile("data/" + d.File)
		if err != nil {
			return nil, fmt.Errorf("read bundled %s: %w", d.File, err)
		}
		return readCSV(d.Name, bytes.NewReader(b), ',')
	}
	return nil, fmt.Errorf("dataset %q: %w", name, ErrNotFound)
}

// LoadFile reads an on-disk CSV/TSV into a Table. The delimiter is inferred
// from the file extension.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	delim := ','
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		delim = '\t'
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return readCSV(name, f, delim)
}

// Resolve loads either a bundled dataset by name or, failing that, a CSV/TSV
// file at the given path.
func Resolve(nameOrPath string) (*Table, error) {
	t, err := Load(nameOrPath)
	if err == nil {
		return t, nil
	}
	if _, statErr := os.Stat(nameOrPath); statErr == nil {
		return LoadFile(nameOrPath)
	}
	return nil, err
}
