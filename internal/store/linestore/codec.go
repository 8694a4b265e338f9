package linestore

import (
	"fmt"
	"strings"

	"github.com/Makepad-fr/todo/internal/model"
)

const (
	tokDone    = "DONE"
	tokNotDone = "NOT_DONE"
	tokUrgent  = "URGENT"
	tokNormal  = "NORMAL"
)

// Decode parses one line (terminator already stripped) into a Record.
func Decode(line string) (model.Record, error) {
	parts := strings.SplitN(line, " ", 3)
	if len(parts) < 3 {
		return model.Record{}, fmt.Errorf("%w: want 3 tokens, got %d: %q", ErrMalformedRecord, len(parts), line)
	}

	var r model.Record
	switch parts[0] {
	case tokDone:
		r.Done = true
	case tokNotDone:
	default:
		return model.Record{}, fmt.Errorf("%w: bad done token %q", ErrMalformedRecord, parts[0])
	}
	switch parts[1] {
	case tokUrgent:
		r.Urgent = true
	case tokNormal:
	default:
		return model.Record{}, fmt.Errorf("%w: bad urgent token %q", ErrMalformedRecord, parts[1])
	}
	r.Text = parts[2]
	return r, nil
}

// Encode renders a Record as one line, without the trailing newline.
func Encode(r model.Record) string {
	done, urgent := tokNotDone, tokNormal
	if r.Done {
		done = tokDone
	}
	if r.Urgent {
		urgent = tokUrgent
	}
	return done + " " + urgent + " " + r.Text
}

// ValidText reports whether s can be stored as record text.
func ValidText(s string) bool {
	return strings.TrimSpace(s) != "" && !strings.ContainsAny(s, "\r\n")
}
