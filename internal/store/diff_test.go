package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDiffSameVersionIsEmpty(t *testing.T) {
	s, ts := newTestStore(t)
	ts.CreateFile("report.md", "# Draft\n")
	ts.CreateFile("sections/intro.md", "intro\n")

	if _, err := s.Save(""); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	report, err := s.Diff(1, 1)
	if err != nil {
		t.Fatalf("diff failed: %v", err)
	}
	if !report.Empty() {
		t.Errorf("diff(v1, v1) not empty: only_in_a=%v only_in_b=%v changed=%v",
			report.OnlyInA, report.OnlyInB, report.Changed)
	}
	if report.SizeA != report.SizeB {
		t.Errorf("size mismatch for identical versions: %d vs %d", report.SizeA, report.SizeB)
	}
}

func TestDiffPartitions(t *testing.T) {
	s, ts := newTestStore(t)
	ts.CreateFile("report.md", "# Draft v1\n")
	ts.CreateFile("sections/intro.md", "intro\n")
	ts.CreateFile("refs.bib", "@article{x}\n")

	if _, err := s.Save("A"); err != nil {
		t.Fatalf("save A failed: %v", err)
	}

	// Edits must land with a distinct mtime second so the change
	// signature moves even when sizes collide.
	ts.CreateFile("report.md", "# Draft v2\n")
	edited := filepath.Join(ts.Workdir, "report.md")
	later := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(edited, later, later); err != nil {
		t.Fatalf("failed to adjust mtime: %v", err)
	}
	ts.RemoveFile("refs.bib")
	ts.CreateFile("sections/results.md", "results\n")

	if _, err := s.Save("B"); err != nil {
		t.Fatalf("save B failed: %v", err)
	}

	report, err := s.Diff(1, 2)
	if err != nil {
		t.Fatalf("diff failed: %v", err)
	}

	if len(report.OnlyInA) != 1 || report.OnlyInA[0] != "refs.bib" {
		t.Errorf("expected only_in_a [refs.bib], got %v", report.OnlyInA)
	}
	if len(report.OnlyInB) != 1 || report.OnlyInB[0] != "sections/results.md" {
		t.Errorf("expected only_in_b [sections/results.md], got %v", report.OnlyInB)
	}
	if len(report.Changed) != 1 || report.Changed[0] != "report.md" {
		t.Errorf("expected changed [report.md], got %v", report.Changed)
	}
	if report.FilesA != 3 || report.FilesB != 3 {
		t.Errorf("expected 3 files on each side, got %d and %d", report.FilesA, report.FilesB)
	}
}

func TestDiffUnknownVersion(t *testing.T) {
	s, ts := newTestStore(t)
	ts.CreateFile("report.md", "# Draft\n")

	if _, err := s.Save(""); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if _, err := s.Diff(1, 7); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown B, got %v", err)
	}
	if _, err := s.Diff(7, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown A, got %v", err)
	}
}
