// Package store implements the snapshot store: immutable, numbered
// copies of a working directory, recorded in an append-only ledger.
// Mutating operations (Save, Restore) run under an exclusive advisory
// lock; read operations rely on atomic publish for consistent views.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/verdir/verdir/internal/ledger"
)

// ErrNotFound is returned for unknown versions and for a missing
// working directory on save.
var ErrNotFound = ledger.ErrNotFound

// DefaultLockTimeout bounds how long a mutating operation waits for
// the store lock before failing with ErrConflict.
const DefaultLockTimeout = 10 * time.Second

const ledgerFile = "versions.log"

// Store manages snapshots of a single working directory under a fixed
// store root. The root holds the ledger, the lock file, and one
// subdirectory per snapshot named v<N>.
type Store struct {
	LockTimeout time.Duration

	root    string
	workdir string
	ledger  *ledger.Ledger
}

// Snapshot is one immutable capture, merging the ledger record with
// filesystem-derived statistics.
type Snapshot struct {
	Version     int       `json:"version"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
	Path        string    `json:"path"`
	Size        int64     `json:"size"`
	FileCount   int       `json:"file_count"`
	Missing     bool      `json:"missing,omitempty"`
}

// RestoreResult reports where the restored tree and the pre-restore
// backup ended up.
type RestoreResult struct {
	Version    int    `json:"version"`
	Workdir    string `json:"workdir"`
	BackupPath string `json:"backup_path,omitempty"`
}

func New(root, workdir string) *Store {
	return &Store{
		LockTimeout: DefaultLockTimeout,
		root:        root,
		workdir:     workdir,
		ledger:      ledger.New(filepath.Join(root, ledgerFile)),
	}
}

// Root returns the store root directory.
func (s *Store) Root() string {
	return s.root
}

// Workdir returns the working directory path this store versions.
func (s *Store) Workdir() string {
	return s.workdir
}

// VersionPath returns the directory a snapshot's tree is stored in.
func (s *Store) VersionPath(version int) string {
	return filepath.Join(s.root, fmt.Sprintf("v%d", version))
}

// Save captures the working directory as the next numbered snapshot.
// The tree is copied into a staging directory inside the store root
// and published with a single rename, then the ledger record is
// appended; a failure at any point leaves no ledger-registered
// partial snapshot behind.
func (s *Store) Save(description string) (*Snapshot, error) {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return nil, fmt.Errorf("create store root %s: %w", s.root, err)
	}

	release, err := s.acquireLock()
	if err != nil {
		return nil, fmt.Errorf("save: %w", err)
	}
	defer release()

	srcInfo, err := os.Stat(s.workdir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("save: working directory %s: %w", s.workdir, ErrNotFound)
		}
		return nil, fmt.Errorf("save: stat %s: %w", s.workdir, err)
	}
	if !srcInfo.IsDir() {
		return nil, fmt.Errorf("save: %s is not a directory", s.workdir)
	}

	version, err := s.ledger.NextVersion()
	if err != nil {
		return nil, fmt.Errorf("save: %w", err)
	}
	timestamp := time.Now().UTC().Truncate(time.Second)

	staging, err := os.MkdirTemp(s.root, ".save-*")
	if err != nil {
		return nil, fmt.Errorf("save: create staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	log.Debugf("copying %s into staging %s", s.workdir, staging)
	if err := copyTree(s.workdir, staging); err != nil {
		return nil, fmt.Errorf("save v%d: copy tree: %w", version, err)
	}
	if err := os.Chmod(staging, srcInfo.Mode().Perm()); err != nil {
		return nil, fmt.Errorf("save v%d: chmod staging: %w", version, err)
	}

	dst := s.VersionPath(version)
	if err := os.Rename(staging, dst); err != nil {
		return nil, fmt.Errorf("save v%d: publish snapshot: %w", version, err)
	}

	entry := ledger.Entry{Version: version, Timestamp: timestamp, Description: description}
	if err := s.ledger.Append(entry); err != nil {
		// The tree published but its record did not; remove it so the
		// version number stays unused.
		if rmErr := os.RemoveAll(dst); rmErr != nil {
			log.Warnf("failed to remove unregistered snapshot %s: %v", dst, rmErr)
		}
		return nil, fmt.Errorf("save v%d: %w", version, err)
	}

	size, files, err := treeStats(dst)
	if err != nil {
		return nil, fmt.Errorf("save v%d: compute stats: %w", version, err)
	}

	return &Snapshot{
		Version:     version,
		Timestamp:   timestamp,
		Description: description,
		Path:        dst,
		Size:        size,
		FileCount:   files,
	}, nil
}

// Restore replaces the working directory with the tree of an existing
// snapshot. The incoming tree is fully staged before anything is
// touched; the current working directory, if present, is relocated to
// a timestamped backup sibling rather than deleted. If the final
// publish fails the backup is moved back into place, and if even that
// fails the error names the backup location so nothing is lost
// silently.
func (s *Store) Restore(version int) (*RestoreResult, error) {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return nil, fmt.Errorf("create store root %s: %w", s.root, err)
	}

	release, err := s.acquireLock()
	if err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}
	defer release()

	if _, err := s.ledger.Lookup(version); err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}

	src := s.VersionPath(version)
	srcInfo, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("restore v%d: snapshot tree %s: %w", version, src, ErrNotFound)
		}
		return nil, fmt.Errorf("restore v%d: stat %s: %w", version, src, err)
	}

	// Stage next to the working directory so the final publish is a
	// same-filesystem rename.
	parent := filepath.Dir(s.workdir)
	staging, err := os.MkdirTemp(parent, ".restore-*")
	if err != nil {
		return nil, fmt.Errorf("restore v%d: create staging directory: %w", version, err)
	}
	defer os.RemoveAll(staging)

	log.Debugf("staging snapshot v%d into %s", version, staging)
	if err := copyTree(src, staging); err != nil {
		return nil, fmt.Errorf("restore v%d: copy tree: %w", version, err)
	}
	if err := os.Chmod(staging, srcInfo.Mode().Perm()); err != nil {
		return nil, fmt.Errorf("restore v%d: chmod staging: %w", version, err)
	}

	result := &RestoreResult{Version: version, Workdir: s.workdir}

	if _, err := os.Stat(s.workdir); err == nil {
		backup := s.backupPath()
		if err := os.Rename(s.workdir, backup); err != nil {
			return nil, fmt.Errorf("restore v%d: relocate working directory to backup: %w", version, err)
		}
		result.BackupPath = backup
		log.Debugf("relocated %s to backup %s", s.workdir, backup)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("restore v%d: stat %s: %w", version, s.workdir, err)
	}

	if err := os.Rename(staging, s.workdir); err != nil {
		if result.BackupPath != "" {
			if rbErr := os.Rename(result.BackupPath, s.workdir); rbErr != nil {
				return nil, fmt.Errorf("restore v%d: publish failed (%v) and backup could not be moved back: %w; working directory preserved at %s",
					version, err, rbErr, result.BackupPath)
			}
		}
		return nil, fmt.Errorf("restore v%d: publish restored tree: %w", version, err)
	}

	return result, nil
}

// List returns every recorded snapshot oldest-first, each augmented
// with on-demand size and file-count statistics. A snapshot whose
// tree was removed by hand is reported with Missing set instead of
// failing the whole listing.
func (s *Store) List() ([]Snapshot, error) {
	entries, err := s.ledger.List()
	if err != nil {
		return nil, err
	}

	snapshots := make([]Snapshot, 0, len(entries))
	for _, e := range entries {
		snap := Snapshot{
			Version:     e.Version,
			Timestamp:   e.Timestamp,
			Description: e.Description,
			Path:        s.VersionPath(e.Version),
		}
		size, files, err := treeStats(snap.Path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("list: stats for v%d: %w", e.Version, err)
			}
			snap.Missing = true
		} else {
			snap.Size = size
			snap.FileCount = files
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, nil
}

// backupPath returns an unused sibling path for relocating the
// working directory before a restore overwrites it.
func (s *Store) backupPath() string {
	base := fmt.Sprintf("%s.backup-%s", s.workdir, time.Now().Format("20060102-150405"))
	path := base
	for n := 1; ; n++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path
		}
		path = fmt.Sprintf("%s-%d", base, n)
	}
}
