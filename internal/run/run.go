package run

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/statlook/statlook-cli/internal/utils"
)

const runFileName = "run.json"

// Run is one persisted analysis pass over a dataset: a directory holding the
// generated report, charts, and optional workbook, described by run.json.
type Run struct {
	ID        string               `json:"id"`
	Dataset   string               `json:"dataset"`
	Notes     string               `json:"notes"`
	Artifacts map[string]*Artifact `json:"artifacts"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`

	// Not serialized: on-disk location of the run.json
	rootDir string
}

// Artifact is one output file produced by a run.
type Artifact struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Path        string    `json:"path"`
	Kind        string    `json:"kind"` // report|chart|workbook
	Description string    `json:"description"`
	AddedAt     time.Time `json:"added_at"`
}

// New constructs an in-memory run. Call Save() to persist.
func New(dataset, notes, rootDir string) *Run {
	return &Run{
		ID:        uuid.NewString(),
		Dataset:   dataset,
		Notes:     notes,
		Artifacts: make(map[string]*Artifact),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		rootDir:   rootDir,
	}
}

// LoadRun loads a run.json from the provided directory.
func LoadRun(dir string) (*Run, error) {
	path := filepath.Join(dir, runFileName)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("run not found at %s: %w", path, err)
		}
		return nil, fmt.Errorf("read run: %w", err)
	}
	var r Run
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("parse run: %w", err)
	}
	r.rootDir = dir
	return &r, nil
}

// RootDir returns the on-disk run directory path.
func (r *Run) RootDir() string { return r.rootDir }

// Save writes run.json using atomic write.
func (r *Run) Save() error {
	if r.rootDir == "" {
		return errors.New("run root directory not set")
	}
	if err := utils.EnsureDir(r.rootDir); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}
	r.UpdatedAt = time.Now()
	data, err := utils.PrettyJSON(r)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(filepath.Join(r.rootDir, runFileName), data)
}

// AddArtifact records an output file in the run metadata.
func (r *Run) AddArtifact(path, kind, description string) (*Artifact, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat artifact: %w", err)
	}
	a := &Artifact{
		ID:          uuid.NewString(),
		Name:        filepath.Base(path),
		Path:        path,
		Kind:        kind,
		Description: description,
		AddedAt:     info.ModTime(),
	}
	if r.Artifacts == nil {
		r.Artifacts = make(map[string]*Artifact)
	}
	r.Artifacts[a.ID] = a
	r.UpdatedAt = time.Now()
	return a, nil
}

// FindRoot walks up from start looking for the run directory, the nearest
// ancestor holding a run.json. A file path starts the walk from its parent
// directory; an empty start uses the working directory.
func FindRoot(start string) (string, error) {
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		start = wd
	}
	info, err := os.Stat(start)
	if err != nil {
		return "", err
	}
	dir := start
	if !info.IsDir() {
		dir = filepath.Dir(start)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, runFileName)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir { // reached filesystem root
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("no %s found above %s", runFileName, start)
}

// List returns the run's artifacts in name order.
func (r *Run) List() []*Artifact {
	out := make([]*Artifact, 0, len(r.Artifacts))
	for _, a := range r.Artifacts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
