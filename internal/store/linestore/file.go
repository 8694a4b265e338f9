package linestore

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/natefinch/atomic"

	"github.com/Makepad-fr/todo/internal/model"
)

// Line-oriented storage. Single file, one record per line, rewritten in
// full on every mutation. No locking: two concurrent invocations can lose
// an update, and an interrupted truncate-then-write can leave the file
// empty. Both are accepted for a local single-user CLI.

// WriteMode selects how ReplaceAll persists the new contents.
type WriteMode int

const (
	// WriteTruncate sets the file size to zero and writes the records.
	WriteTruncate WriteMode = iota
	// WriteAtomic writes a temp file next to the original and renames it over.
	WriteAtomic
)

// ParseWriteMode maps a config value to a WriteMode.
func ParseWriteMode(s string) (WriteMode, error) {
	switch s {
	case "", "truncate":
		return WriteTruncate, nil
	case "atomic":
		return WriteAtomic, nil
	}
	return WriteTruncate, fmt.Errorf("unknown write mode %q (want truncate|atomic)", s)
}

// File is an open todo file.
type File struct {
	path          string
	f             *os.File
	mode          WriteMode
	skipMalformed bool
	logger        *log.Logger
}

// Option configures a File.
type Option func(*File)

// WithWriteMode selects the ReplaceAll strategy.
func WithWriteMode(m WriteMode) Option { return func(f *File) { f.mode = m } }

// WithSkipMalformed makes Load drop malformed lines with a warning instead of failing.
func WithSkipMalformed(skip bool) Option { return func(f *File) { f.skipMalformed = skip } }

// WithLogger sets the logger used for debug and warning output.
func WithLogger(l *log.Logger) Option { return func(f *File) { f.logger = l } }

// OpenOrCreate opens path for read+append, creating it if missing.
// It never truncates on open.
func OpenOrCreate(path string, opts ...Option) (*File, error) {
	file := &File{path: path, logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(file)
	}
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	file.f = f
	file.logger.Debug("opened todo file", "path", path)
	return file, nil
}

func openFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return f, nil
}

// Load reads every record from the start of the file. A final line without
// a newline is still decoded when non-empty.
func (f *File) Load() ([]model.Record, error) {
	if _, err := f.f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	records := []model.Record{}
	r := bufio.NewReader(f.f)
	for lineNo := 1; ; lineNo++ {
		line, err := r.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %w", ErrIO, err)
		}
		eof := err != nil
		if eof && line == "" {
			break
		}

		line = trimTerminator(line)
		rec, derr := Decode(line)
		switch {
		case derr == nil:
			records = append(records, rec)
		case f.skipMalformed:
			f.logger.Warn("skipping malformed line", "path", f.path, "line", lineNo, "err", derr)
		default:
			return nil, fmt.Errorf("%s line %d: %w", f.path, lineNo, derr)
		}
		if eof {
			break
		}
	}
	f.logger.Debug("loaded records", "path", f.path, "count", len(records))
	return records, nil
}

func trimTerminator(line string) string {
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
	}
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return line
}

// ReplaceAll overwrites the file with records, one encoded line each.
func (f *File) ReplaceAll(records []model.Record) error {
	var buf bytes.Buffer
	for _, rec := range records {
		buf.WriteString(Encode(rec))
		buf.WriteByte('\n')
	}

	if f.mode == WriteAtomic {
		if err := atomic.WriteFile(f.path, bytes.NewReader(buf.Bytes())); err != nil {
			return fmt.Errorf("%w: atomic write %s: %w", ErrIO, f.path, err)
		}
		// the old handle now points at the replaced inode
		nf, err := openFile(f.path)
		if err != nil {
			return err
		}
		_ = f.f.Close()
		f.f = nf
	} else {
		if err := f.f.Truncate(0); err != nil {
			return fmt.Errorf("%w: %w", ErrIO, err)
		}
		if _, err := f.f.Write(buf.Bytes()); err != nil {
			return fmt.Errorf("%w: %w", ErrIO, err)
		}
	}
	f.logger.Debug("rewrote todo file", "path", f.path, "records", len(records), "bytes", buf.Len())
	return nil
}

// Close releases the handle.
func (f *File) Close() error {
	if f == nil || f.f == nil {
		return nil
	}
	return f.f.Close()
}
