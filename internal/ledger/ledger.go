package ledger

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// ErrNotFound is returned when a version has no ledger record.
var ErrNotFound = errors.New("not found")

// Entry is one ledger record: a snapshot's version number, capture
// time, and free-form description.
type Entry struct {
	Version     int       `json:"version"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
}

// Ledger is an append-only record file with one tab-delimited entry
// per line: version, RFC3339 timestamp, description. It is the
// authoritative source for version numbering; entries are never
// rewritten or removed.
type Ledger struct {
	path string
}

func New(path string) *Ledger {
	return &Ledger{path: path}
}

// Path returns the location of the backing record file.
func (l *Ledger) Path() string {
	return l.path
}

// List returns all entries in file order. A missing file is an empty
// ledger. Lines that do not parse are skipped with a warning so one
// corrupt record cannot take down every read.
func (l *Ledger) List() ([]Entry, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open ledger %s: %w", l.path, err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		entry, err := parseLine(line)
		if err != nil {
			log.Warnf("ledger %s line %d: %v (skipped)", l.path, lineno, err)
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read ledger %s: %w", l.path, err)
	}
	return entries, nil
}

// Lookup returns the entry for version, or ErrNotFound.
func (l *Ledger) Lookup(version int) (Entry, error) {
	entries, err := l.List()
	if err != nil {
		return Entry{}, err
	}
	for _, e := range entries {
		if e.Version == version {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("version %d: %w", version, ErrNotFound)
}

// NextVersion returns the smallest unused version number: the maximum
// across every recorded entry plus one, or 1 for an empty ledger.
// Computing over all entries (not the last line) keeps allocation
// correct even if the file has been reordered by hand. Callers that
// intend to allocate must hold the store's exclusive lock.
func (l *Ledger) NextVersion() (int, error) {
	entries, err := l.List()
	if err != nil {
		return 0, err
	}
	max := 0
	for _, e := range entries {
		if e.Version > max {
			max = e.Version
		}
	}
	return max + 1, nil
}

// Append durably writes one entry after all existing records. The
// description is flattened to a single line so the record format
// stays one-entry-per-line.
func (l *Ledger) Append(e Entry) error {
	f, err := os.OpenFile(l.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open ledger %s: %w", l.path, err)
	}
	defer f.Close()

	line := fmt.Sprintf("%d\t%s\t%s\n",
		e.Version, e.Timestamp.Format(time.RFC3339), sanitize(e.Description))
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("append ledger %s: %w", l.path, err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync ledger %s: %w", l.path, err)
	}
	return nil
}

func parseLine(line string) (Entry, error) {
	parts := strings.SplitN(line, "\t", 3)
	if len(parts) < 2 {
		return Entry{}, fmt.Errorf("expected at least 2 tab-separated fields, got %d", len(parts))
	}
	version, err := strconv.Atoi(parts[0])
	if err != nil || version < 1 {
		return Entry{}, fmt.Errorf("invalid version %q", parts[0])
	}
	ts, err := time.Parse(time.RFC3339, parts[1])
	if err != nil {
		return Entry{}, fmt.Errorf("invalid timestamp %q: %w", parts[1], err)
	}
	entry := Entry{Version: version, Timestamp: ts}
	if len(parts) == 3 {
		entry.Description = parts[2]
	}
	return entry, nil
}

// sanitize replaces record delimiters in a description with spaces.
func sanitize(s string) string {
	return strings.NewReplacer("\t", " ", "\n", " ", "\r", " ").Replace(s)
}
