package prefabs

import (
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/zeebo/xxh3"
)

// ApplyFunc receives the new content of a changed file.
type ApplyFunc func(name string, data []byte) error

// Reloader re-reads watched files and hands changed content to the apply
// function registered for the file's extension. Saves that leave the bytes
// unchanged are skipped by content hash.
type Reloader struct {
	read   func(path string) ([]byte, error)
	apply  map[string]ApplyFunc
	hashes map[string]uint64
	log    *logrus.Entry
}

func NewReloader(read func(path string) ([]byte, error), log *logrus.Entry) *Reloader {
	if log == nil {
		l := logrus.New()
		log = logrus.NewEntry(l)
	}
	return &Reloader{
		read:   read,
		apply:  make(map[string]ApplyFunc),
		hashes: make(map[string]uint64),
		log:    log,
	}
}

// Handle registers f for files with extension ext, e.g. ".yaml".
func (r *Reloader) Handle(ext string, f ApplyFunc) {
	r.apply[ext] = f
}

// Prime records the current content of path without applying it.
func (r *Reloader) Prime(path string, data []byte) {
	r.hashes[path] = xxh3.Hash(data)
}

// PrimeFile records the current content of path on disk without applying it.
func (r *Reloader) PrimeFile(path string) error {
	data, err := r.read(path)
	if err != nil {
		return fmt.Errorf("prefabs: prime %s: %w", path, err)
	}
	r.Prime(path, data)
	return nil
}

// Reload applies path if its content changed since it was last seen. It
// reports whether the apply function ran.
func (r *Reloader) Reload(path string) (bool, error) {
	f, ok := r.apply[filepath.Ext(path)]
	if !ok {
		return false, nil
	}
	data, err := r.read(path)
	if err != nil {
		return false, fmt.Errorf("prefabs: reload %s: %w", path, err)
	}

	h := xxh3.Hash(data)
	if prev, ok := r.hashes[path]; ok && prev == h {
		r.log.WithField("path", path).Debug("content unchanged, skipping reload")
		return false, nil
	}
	if err := f(path, data); err != nil {
		return false, fmt.Errorf("prefabs: apply %s: %w", path, err)
	}
	r.hashes[path] = h
	r.log.WithField("path", path).Info("reloaded")
	return true, nil
}
