package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/verdir/verdir/internal/testutil"
)

func TestRestoreCommand(t *testing.T) {
	ts := useTempStore(t)
	ts.CreateFile("report.md", "version one\n")

	if err := runSave(nil, []string{"v1"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	ts.CreateFile("report.md", "version two\n")

	if err := runRestore(nil, []string{"1"}); err != nil {
		t.Fatalf("restore command failed: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(ts.Workdir, "report.md"))
	if err != nil {
		t.Fatalf("failed to read restored file: %v", err)
	}
	if string(content) != "version one\n" {
		t.Errorf("expected restored content, got %q", content)
	}
}

func TestRestoreCommandScenario(t *testing.T) {
	ts := useTempStore(t)
	ts.CreateFile("report.md", "# Draft A\n")
	ts.CreateFile("notes.txt", "keep me\n")
	original := testutil.ReadTree(t, ts.Workdir)

	if err := runSave(nil, []string{"A"}); err != nil {
		t.Fatalf("save A failed: %v", err)
	}

	ts.CreateFile("report.md", "# Draft B\n")
	ts.RemoveFile("notes.txt")

	if err := runSave(nil, []string{"B"}); err != nil {
		t.Fatalf("save B failed: %v", err)
	}

	if err := runRestore(nil, []string{"1"}); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	restored := testutil.ReadTree(t, ts.Workdir)
	if len(restored) != len(original) {
		t.Fatalf("expected %d files, got %d", len(original), len(restored))
	}
	for path, content := range original {
		if restored[path] != content {
			t.Errorf("file %s not restored", path)
		}
	}

	// Pre-restore state preserved as a backup sibling.
	siblings, err := os.ReadDir(ts.Dir)
	if err != nil {
		t.Fatalf("failed to read dir: %v", err)
	}
	found := false
	for _, entry := range siblings {
		if entry.IsDir() && len(entry.Name()) > len("report.backup-") &&
			entry.Name()[:len("report.backup-")] == "report.backup-" {
			found = true
		}
	}
	if !found {
		t.Error("expected a backup directory next to the workdir")
	}
}

func TestRestoreCommandUnknownVersion(t *testing.T) {
	ts := useTempStore(t)
	ts.CreateFile("report.md", "# Draft\n")

	if err := runSave(nil, []string{}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if err := runRestore(nil, []string{"99"}); err == nil {
		t.Error("expected error for unknown version")
	}
}

func TestRestoreCommandInvalidVersionArg(t *testing.T) {
	useTempStore(t)

	if err := runRestore(nil, []string{"abc"}); err == nil {
		t.Error("expected error for non-numeric version")
	}
	if err := runRestore(nil, []string{"0"}); err == nil {
		t.Error("expected error for zero version")
	}
	if err := runRestore(nil, []string{"-3"}); err == nil {
		t.Error("expected error for negative version")
	}
}
