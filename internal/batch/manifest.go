package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// NewRunID returns a time-ordered identifier for one batch run.
func NewRunID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Manifest describes the output of one batch run.
type Manifest struct {
	RunID    string          `json:"run_id"`
	Created  time.Time       `json:"created"`
	Settings string          `json:"settings"`
	Models   []ManifestEntry `json:"models"`
}

// ManifestEntry represents one rendered model.
type ManifestEntry struct {
	Model   string         `json:"model"`
	Image   string         `json:"image"`
	Frames  int            `json:"frames,omitempty"`
	Meshes  int            `json:"meshes,omitempty"`
	Tags    []string       `json:"tags,omitempty"`
	Bounds  *[2][3]float32 `json:"bounds,omitempty"`
	Skipped bool           `json:"skipped,omitempty"`
}

// BuildManifest collects the successful results of a run. Image paths are
// relative to the output directory.
func BuildManifest(cfg Config, results []Result) Manifest {
	m := Manifest{RunID: cfg.RunID, Created: time.Now().UTC(), Settings: cfg.Settings()}
	for _, r := range results {
		if !r.Success {
			continue
		}
		img, err := filepath.Rel(cfg.OutputDir, r.Output)
		if err != nil {
			img = r.Output
		}
		e := ManifestEntry{
			Model:   r.Rel,
			Image:   filepath.ToSlash(img),
			Frames:  r.Frames,
			Meshes:  r.Meshes,
			Tags:    r.Tags,
			Skipped: r.Skipped,
		}
		if r.HasBounds {
			e.Bounds = &[2][3]float32{r.Bounds.Min, r.Bounds.Max}
		}
		m.Models = append(m.Models, e)
	}
	return m
}

// WriteManifest writes the manifest as indented JSON.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
