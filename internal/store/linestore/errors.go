package linestore

import "errors"

var (
	// ErrIO marks failures opening, reading or writing the todo file.
	ErrIO = errors.New("todo file i/o")
	// ErrMalformedRecord is returned when a stored line does not match
	// `("DONE"|"NOT_DONE") " " ("URGENT"|"NORMAL") " " <text>`.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrInvalidID is returned when an id-based op targets a position outside [0, len).
	ErrInvalidID = errors.New("invalid id")
	// ErrInvalidText is returned for record text that cannot be stored on one line.
	ErrInvalidText = errors.New("invalid text")
)
