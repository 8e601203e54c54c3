// Package storage persists the aggregate library state as one flat JSON
// document and reads it back. Saving replaces the on-disk file wholesale
// by writing to a temporary file and renaming it over the destination, so
// a crash mid-save never leaves a partially written document behind.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"

	"github.com/shelfledger/librarian-go/internal/core"
	"github.com/shelfledger/librarian-go/internal/library"
)

// ErrMarshalDocumentFailed is returned when document serialization fails.
var ErrMarshalDocumentFailed = errors.New("marshal document failed")

// ErrUnmarshalDocumentFailed is returned when document parsing fails.
var ErrUnmarshalDocumentFailed = errors.New("unmarshal document failed")

// FileStore saves and loads the library state at a fixed path.
type FileStore struct {
	path   string
	codec  jsoniter.API
	logger *slog.Logger
}

// NewFileStore creates a FileStore persisting to the given path.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	return &FileStore{
		path:   path,
		codec:  jsoniter.ConfigFastest,
		logger: logger,
	}
}

// Path returns the destination file path.
func (s *FileStore) Path() string {
	return s.path
}

// Save serializes the state and atomically replaces the destination file.
func (s *FileStore) Save(state *library.State) error {
	doc := DocumentFrom(state)

	data, err := s.codec.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Join(ErrMarshalDocumentFailed, err)
	}

	if err = s.writeAtomically(data); err != nil {
		return fmt.Errorf("saving state to %s: %w", s.path, err)
	}

	s.logger.Info("state saved",
		"path", s.path,
		"books", len(doc.Books),
		"users", len(doc.Users),
		"transactions", len(doc.Transactions),
	)

	return nil
}

// writeAtomically writes data to a temporary file in the destination
// directory and renames it over the destination. The rename is the commit
// point; until then the previous file is untouched.
func (s *FileStore) writeAtomically(data []byte) error {
	dir := filepath.Dir(s.path)

	tmp, err := os.CreateTemp(dir, ".librarian-*.json")
	if err != nil {
		return err
	}

	tmpName := tmp.Name()

	cleanup := func(cause error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpName)

		return cause
	}

	if _, err = tmp.Write(data); err != nil {
		return cleanup(err)
	}

	if err = tmp.Sync(); err != nil {
		return cleanup(err)
	}

	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmpName)

		return err
	}

	if err = os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)

		return err
	}

	if err = os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)

		return err
	}

	return nil
}

// Load reads the destination file and parses it back into a State.
// Returns core.ErrFileNotFound if no prior save exists; the caller starts
// from an empty state in that case. Returns core.ErrCorruptData when the
// document does not parse or fails shape validation.
func (s *FileStore) Load() (*library.State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading state from %s: %w", s.path, core.ErrFileNotFound)
		}

		return nil, fmt.Errorf("loading state from %s: %w", s.path, err)
	}

	var doc Document
	if err = s.codec.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("loading state from %s: %w: %w",
			s.path, core.ErrCorruptData, errors.Join(ErrUnmarshalDocumentFailed, err))
	}

	state, err := StateFrom(doc)
	if err != nil {
		return nil, fmt.Errorf("loading state from %s: %w", s.path, err)
	}

	s.logger.Info("state loaded",
		"path", s.path,
		"books", len(doc.Books),
		"users", len(doc.Users),
		"transactions", len(doc.Transactions),
	)

	return state, nil
}
