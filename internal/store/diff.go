package store

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// DiffReport is the three-way partition of two snapshots' file sets
// plus their aggregate sizes. Paths are relative to the snapshot
// roots and sorted.
type DiffReport struct {
	VersionA int      `json:"version_a"`
	VersionB int      `json:"version_b"`
	OnlyInA  []string `json:"only_in_a"`
	OnlyInB  []string `json:"only_in_b"`
	Changed  []string `json:"changed"`
	SizeA    int64    `json:"size_a"`
	SizeB    int64    `json:"size_b"`
	FilesA   int      `json:"files_a"`
	FilesB   int      `json:"files_b"`
}

// Empty reports whether the two snapshots have identical file sets
// and signatures.
func (r *DiffReport) Empty() bool {
	return len(r.OnlyInA) == 0 && len(r.OnlyInB) == 0 && len(r.Changed) == 0
}

// fileSig is the change signature of one file. Content is never
// compared byte-by-byte; size plus modification time is the contract.
type fileSig struct {
	size    int64
	modTime int64
}

// Diff compares two snapshots purely from their stored trees. Both
// versions must exist in the ledger and on disk.
func (s *Store) Diff(versionA, versionB int) (*DiffReport, error) {
	indexA, err := s.snapshotIndex(versionA)
	if err != nil {
		return nil, fmt.Errorf("diff: %w", err)
	}
	indexB, err := s.snapshotIndex(versionB)
	if err != nil {
		return nil, fmt.Errorf("diff: %w", err)
	}

	report := &DiffReport{VersionA: versionA, VersionB: versionB}
	for path, sig := range indexA {
		report.SizeA += sig.size
		report.FilesA++
		other, ok := indexB[path]
		switch {
		case !ok:
			report.OnlyInA = append(report.OnlyInA, path)
		case sig != other:
			report.Changed = append(report.Changed, path)
		}
	}
	for path, sig := range indexB {
		report.SizeB += sig.size
		report.FilesB++
		if _, ok := indexA[path]; !ok {
			report.OnlyInB = append(report.OnlyInB, path)
		}
	}

	sort.Strings(report.OnlyInA)
	sort.Strings(report.OnlyInB)
	sort.Strings(report.Changed)
	return report, nil
}

// snapshotIndex maps every regular file in a snapshot to its change
// signature, keyed by slash-separated relative path.
func (s *Store) snapshotIndex(version int) (map[string]fileSig, error) {
	if _, err := s.ledger.Lookup(version); err != nil {
		return nil, err
	}

	root := s.VersionPath(version)
	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("snapshot tree %s: %w", root, ErrNotFound)
		}
		return nil, err
	}

	index := make(map[string]fileSig)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		index[filepath.ToSlash(rel)] = fileSig{size: info.Size(), modTime: info.ModTime().Unix()}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("index v%d: %w", version, err)
	}
	return index, nil
}
