package ui

import (
	"fmt"
	"strings"

	"github.com/Makepad-fr/todo/internal/model"
)

// ListOptions tune list rendering.
type ListOptions struct {
	Group bool // pending section, then done section; ids stay positional
	Plain bool // one row per record, no panel and no header
}

// Row renders one record with its positional id.
// done -> Success, urgent and not done -> Urgent, otherwise unstyled.
func Row(id int, r model.Record) string {
	t := current
	box, glyph := t.BoxUnchecked, t.Muted
	text := r.Text
	switch {
	case r.Done:
		box, glyph = t.BoxChecked, t.Success
		text = t.Success.Render(text)
	case r.Urgent:
		text = t.Urgent.Render(text)
	}
	return fmt.Sprintf("%s %s %s", glyph.Render(box), t.Muted.Render(fmt.Sprintf("[%d]", id)), text)
}

// RenderList renders records in file order. Index i is shown as id i.
func RenderList(records []model.Record, opt ListOptions) string {
	if opt.Plain {
		var b strings.Builder
		for i, r := range records {
			b.WriteString(Row(i, r))
			b.WriteByte('\n')
		}
		return b.String()
	}

	t := current
	d, p, u := stats(records)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d  %s %d",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymDone), d,
		t.Pending.Render(t.SymPending), p,
		t.Urgent.Render("!"), u,
		t.Accent.Render("Total"), len(records),
	)

	lines := []string{header, progressBar(d, d+p, 28), ""}
	if opt.Group {
		lines = append(lines, groupLines(records)...)
	} else {
		lines = append(lines, rows(records, func(model.Record) bool { return true }, "no items")...)
	}
	lines = append(lines, "", t.Muted.Render(`Tip: add with todo add "Buy milk"`))
	return Panel(lines) + "\n"
}

func rows(records []model.Record, keep func(model.Record) bool, empty string) []string {
	var out []string
	for i, r := range records {
		if keep(r) {
			out = append(out, Row(i, r))
		}
	}
	if len(out) == 0 {
		return []string{current.Muted.Render(empty)}
	}
	return out
}

func groupLines(records []model.Record) []string {
	var lines []string
	lines = append(lines, current.Accent.Render("Pending"))
	lines = append(lines, rows(records, func(r model.Record) bool { return !r.Done }, "(none)")...)
	lines = append(lines, "", current.Accent.Render("Done"))
	lines = append(lines, rows(records, func(r model.Record) bool { return r.Done }, "(none)")...)
	return lines
}

// small list stats used for the header
func stats(records []model.Record) (done, pending, urgent int) {
	for _, r := range records {
		if r.Done {
			done++
			continue
		}
		pending++
		if r.Urgent {
			urgent++
		}
	}
	return
}
