package linestore

import (
	"github.com/Makepad-fr/todo/internal/model"
)

// Store runs one read-full / compute / overwrite-full cycle per call.
// It is opened per command and never shared across processes.
type Store struct {
	file *File
}

// Open opens (or creates) the todo file at path.
func Open(path string, opts ...Option) (*Store, error) {
	f, err := OpenOrCreate(path, opts...)
	if err != nil {
		return nil, err
	}
	return &Store{file: f}, nil
}

// List decodes every record in file order. Index i is record id i.
func (s *Store) List() ([]model.Record, error) {
	return s.file.Load()
}

// Apply loads the file, applies op and rewrites the file with the result.
// Validation errors (ErrInvalidID, ErrInvalidText) leave the file untouched.
// Clear never reads the file, so it also empties a file that fails to load.
func (s *Store) Apply(op Op) ([]model.Record, error) {
	if op.Kind == KindClear {
		s.file.logger.Debug("applying op", "op", op.Kind)
		if err := s.file.ReplaceAll(nil); err != nil {
			return nil, err
		}
		return []model.Record{}, nil
	}
	records, err := s.file.Load()
	if err != nil {
		return nil, err
	}
	next, err := Apply(records, op)
	if err != nil {
		return nil, err
	}
	s.file.logger.Debug("applying op", "op", op.Kind, "id", op.ID, "before", len(records), "after", len(next))
	if err := s.file.ReplaceAll(next); err != nil {
		return nil, err
	}
	return next, nil
}

// Close releases the file handle.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.file.Close()
}
