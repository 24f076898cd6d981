package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	log "github.com/sirupsen/logrus"
)

// ErrConflict is returned when the store's exclusive lock cannot be
// acquired within the configured wait bound.
var ErrConflict = errors.New("store is locked by another operation")

const lockFile = ".lock"

// acquireLock takes the advisory lock guarding all mutating
// operations. Concurrent invocations poll until the lock frees or the
// wait bound expires; they never queue indefinitely. The returned
// release func must be called exactly once.
func (s *Store) acquireLock() (func(), error) {
	fl := flock.New(filepath.Join(s.root, lockFile))

	ctx, cancel := context.WithTimeout(context.Background(), s.LockTimeout)
	defer cancel()

	locked, err := fl.TryLockContext(ctx, 50*time.Millisecond)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("lock %s not acquired within %s: %w", fl.Path(), s.LockTimeout, ErrConflict)
		}
		return nil, fmt.Errorf("lock %s: %w", fl.Path(), err)
	}
	if !locked {
		return nil, fmt.Errorf("lock %s not acquired within %s: %w", fl.Path(), s.LockTimeout, ErrConflict)
	}

	log.Debugf("acquired store lock %s", fl.Path())
	return func() {
		if err := fl.Unlock(); err != nil {
			log.Warnf("failed to release store lock %s: %v", fl.Path(), err)
		}
	}, nil
}
