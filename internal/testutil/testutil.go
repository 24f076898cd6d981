package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

// TempStore creates an isolated working directory and store root for
// testing snapshot operations.
type TempStore struct {
	Dir     string
	Workdir string
	Root    string
	T       *testing.T
}

// NewTempStore creates a temp directory containing a `report`
// working directory and a `.versions` store root.
func NewTempStore(t *testing.T) *TempStore {
	t.Helper()

	dir := t.TempDir()
	workdir := filepath.Join(dir, "report")
	if err := os.Mkdir(workdir, 0o755); err != nil {
		t.Fatalf("failed to create workdir: %v", err)
	}

	return &TempStore{
		Dir:     dir,
		Workdir: workdir,
		Root:    filepath.Join(dir, ".versions"),
		T:       t,
	}
}

// CreateFile writes a file under the working directory, creating
// parent directories as needed.
func (s *TempStore) CreateFile(name, content string) {
	s.T.Helper()
	path := filepath.Join(s.Workdir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		s.T.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		s.T.Fatalf("failed to create file: %v", err)
	}
}

// RemoveFile deletes a file under the working directory.
func (s *TempStore) RemoveFile(name string) {
	s.T.Helper()
	if err := os.Remove(filepath.Join(s.Workdir, name)); err != nil {
		s.T.Fatalf("failed to remove file: %v", err)
	}
}

// ReadTree returns the relative path -> content map of every regular
// file under root.
func ReadTree(t *testing.T, root string) map[string]string {
	t.Helper()

	tree := make(map[string]string)
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
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		tree[filepath.ToSlash(rel)] = string(content)
		return nil
	})
	if err != nil {
		t.Fatalf("failed to read tree %s: %v", root, err)
	}
	return tree
}

// SameTree fails the test unless both roots contain identical
// relative paths with identical byte content.
func SameTree(t *testing.T, a, b string) {
	t.Helper()

	treeA := ReadTree(t, a)
	treeB := ReadTree(t, b)

	for path, content := range treeA {
		other, ok := treeB[path]
		if !ok {
			t.Errorf("%s present in %s but not in %s", path, a, b)
			continue
		}
		if content != other {
			t.Errorf("%s differs between %s and %s", path, a, b)
		}
	}
	for path := range treeB {
		if _, ok := treeA[path]; !ok {
			t.Errorf("%s present in %s but not in %s", path, b, a)
		}
	}
}
