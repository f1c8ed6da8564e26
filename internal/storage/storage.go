// Package storage persists export artifacts as temporary files until
// their retention lapses.
package storage

import (
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/snipframe-cloud/snipframe/pkg/apperr"
	"github.com/snipframe-cloud/snipframe/pkg/log"
)

// Stored describes one persisted artifact file.
type Stored struct {
	ID   string
	Path string
	Size int64
}

// Storage persists artifact bytes keyed by generated ids.
type Storage interface {
	// Put persists data under a fresh id with the given extension.
	Put(data []byte, extension string) (Stored, error)
	// Get reads the artifact back.
	Get(id string) ([]byte, error)
	// Delete removes the artifact. Deleting an absent id is not an
	// error.
	Delete(id string) error
	// SweepOld deletes artifacts older than age, returning how many
	// were removed. A single failed deletion is logged and skipped.
	SweepOld(age time.Duration) (int, error)
}

// Disk stores artifacts as uuid-named files in one directory.
type Disk struct {
	dir string
}

// NewDisk creates dir if needed and returns a store over it.
func NewDisk(dir string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating storage directory")
	}
	return &Disk{dir: dir}, nil
}

// Dir returns the backing directory.
func (d *Disk) Dir() string {
	return d.dir
}

func (d *Disk) Put(data []byte, extension string) (Stored, error) {
	id := uuid.New().String()
	path := filepath.Join(d.dir, id+"."+extension)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return Stored{}, apperr.Storage("writing artifact %s", id).Wrap(err)
	}

	return Stored{ID: id, Path: path, Size: int64(len(data))}, nil
}

func (d *Disk) Get(id string) ([]byte, error) {
	path, err := d.find(id)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.Storage("reading artifact %s", id).Wrap(err)
	}
	return data, nil
}

func (d *Disk) Delete(id string) error {
	path, err := d.find(id)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil
		}
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return apperr.Storage("deleting artifact %s", id).Wrap(err)
	}
	return nil
}

func (d *Disk) SweepOld(age time.Duration) (int, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return 0, apperr.Storage("listing artifacts").Wrap(err)
	}

	cutoff := time.Now().Add(-age)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}

		path := filepath.Join(d.dir, entry.Name())
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Warn("skipping artifact that failed to delete", "path", path, "error", err)
			continue
		}
		removed++
	}

	return removed, nil
}

// find resolves id to its on-disk path. Ids are uuids, so the check
// also rejects anything that could escape the directory.
func (d *Disk) find(id string) (string, error) {
	if _, err := uuid.Parse(id); err != nil {
		return "", apperr.NotFound("artifact not found: %s", id)
	}

	matches, err := filepath.Glob(filepath.Join(d.dir, id+".*"))
	if err != nil {
		return "", apperr.Storage("resolving artifact %s", id).Wrap(err)
	}
	if len(matches) == 0 {
		return "", apperr.NotFound("artifact not found: %s", id)
	}
	return matches[0], nil
}
