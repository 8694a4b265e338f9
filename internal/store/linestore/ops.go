package linestore

import (
	"fmt"
	"slices"

	"github.com/Makepad-fr/todo/internal/model"
)

// Kind names a mutation.
type Kind int

const (
	KindAdd Kind = iota
	KindRemove
	KindClear
	KindToggleDone
	KindToggleUrgent
)

func (k Kind) String() string {
	switch k {
	case KindAdd:
		return "add"
	case KindRemove:
		return "remove"
	case KindClear:
		return "clear"
	case KindToggleDone:
		return "done"
	case KindToggleUrgent:
		return "urgent"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Op is one mutation of the record sequence. Build it with Add, Remove,
// Clear, ToggleDone or ToggleUrgent.
type Op struct {
	Kind Kind
	ID   int    // target position for Remove / ToggleDone / ToggleUrgent
	Text string // for Add
}

func Add(text string) Op { return Op{Kind: KindAdd, Text: text} }
func Remove(id int) Op { return Op{Kind: KindRemove, ID: id} }
func Clear() Op { return Op{Kind: KindClear} }
func ToggleDone(id int) Op { return Op{Kind: KindToggleDone, ID: id} }
func ToggleUrgent(id int) Op { return Op{Kind: KindToggleUrgent, ID: id} }

// Apply computes the sequence that results from op. The input slice is
// never modified; on error the returned slice is nil.
func Apply(records []model.Record, op Op) ([]model.Record, error) {
	switch op.Kind {
	case KindAdd:
		if !ValidText(op.Text) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidText, op.Text)
		}
		out := make([]model.Record, 0, len(records)+1)
		out = append(out, records...)
		return append(out, model.Record{Text: op.Text}), nil

	case KindClear:
		return []model.Record{}, nil

	case KindRemove, KindToggleDone, KindToggleUrgent:
		if op.ID < 0 || op.ID >= len(records) {
			return nil, fmt.Errorf("%w: have %d, got %d", ErrInvalidID, len(records), op.ID)
		}
	default:
		return nil, fmt.Errorf("unknown op %v", op.Kind)
	}

	if op.Kind == KindRemove {
		return slices.Delete(slices.Clone(records), op.ID, op.ID+1), nil
	}
	out := slices.Clone(records)
	if op.Kind == KindToggleDone {
		out[op.ID].Done = !out[op.ID].Done
	} else {
		out[op.ID].Urgent = !out[op.ID].Urgent
	}
	return out, nil
}
