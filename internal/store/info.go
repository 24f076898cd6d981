package store

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Details merges a snapshot's ledger record with a content summary of
// its stored tree.
type Details struct {
	Snapshot
	ByClass map[string]int `json:"by_class"`
}

// Extension classes for the content summary, calibrated to report
// artifacts.
var extClasses = map[string]string{
	".md":   "document",
	".tex":  "document",
	".txt":  "document",
	".html": "document",
	".pdf":  "document",
	".docx": "document",
	".png":  "image",
	".jpg":  "image",
	".jpeg": "image",
	".svg":  "image",
	".gif":  "image",
	".csv":  "data",
	".json": "data",
	".yaml": "data",
	".yml":  "data",
	".bib":  "data",
}

func classifyExt(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if class, ok := extClasses[ext]; ok {
		return class
	}
	return "other"
}

// Info returns full metadata and content statistics for one snapshot.
func (s *Store) Info(version int) (*Details, error) {
	entry, err := s.ledger.Lookup(version)
	if err != nil {
		return nil, fmt.Errorf("info: %w", err)
	}

	details := &Details{
		Snapshot: Snapshot{
			Version:     entry.Version,
			Timestamp:   entry.Timestamp,
			Description: entry.Description,
			Path:        s.VersionPath(version),
		},
		ByClass: make(map[string]int),
	}

	err = filepath.WalkDir(details.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		details.Size += info.Size()
		details.FileCount++
		details.ByClass[classifyExt(d.Name())]++
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("info v%d: snapshot tree %s: %w", version, details.Path, ErrNotFound)
		}
		return nil, fmt.Errorf("info v%d: %w", version, err)
	}

	return details, nil
}
