package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/Makepad-fr/todo/internal/model"
	"github.com/Makepad-fr/todo/internal/store/linestore"
)

// Opener opens a fresh store for one load/apply/rewrite cycle.
type Opener func() (*linestore.Store, error)

// listItem adapts a Record and its positional id to bubbles/list.Item
type listItem struct {
	id  int
	rec model.Record
}

// Implement list.Item interface
func (i listItem) Title() string       { return i.rec.Text }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.rec.Text }

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(listItem)
	prefix := "  "
	if index == m.Index() {
		prefix = lipgloss.NewStyle().Bold(true).Reverse(true).Render("> ")
	}
	fmt.Fprintln(w, prefix+Row(it.id, it.rec))
}

type fileChangedMsg struct{}

type watchErrMsg struct{ err error }

var (
	doneKey   = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "done"))
	urgentKey = key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "urgent"))
	removeKey = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove"))
	addKey    = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	clearKey  = key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear"))
)

type modelTUI struct {
	list    list.Model
	open    Opener
	logger  *log.Logger
	watcher *fsnotify.Watcher
	path    string

	// Inline add
	adding bool
	ti     textinput.Model

	status string // last error, shown under the list
	width  int
	height int
}

func newModelTUI(records []model.Record, open Opener, logger *log.Logger) modelTUI {
	l := list.New(toItems(records), itemDelegate{}, 0, 0)
	l.Title = "Todos"
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	// ids are positional; a filtered view would renumber them
	l.SetFilteringEnabled(false)
	l.Styles.Title = current.Title
	l.SetStatusBarItemName("item", "items")
	bindings := func() []key.Binding { return []key.Binding{doneKey, urgentKey, removeKey, addKey, clearKey} }
	l.AdditionalShortHelpKeys = bindings
	l.AdditionalFullHelpKeys = bindings

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "New item text..."
	ti.CharLimit = 200

	return modelTUI{list: l, open: open, logger: logger, ti: ti, width: 80, height: 24}
}

func toItems(records []model.Record) []list.Item {
	items := make([]list.Item, 0, len(records))
	for i, r := range records {
		items = append(items, listItem{id: i, rec: r})
	}
	return items
}

// RunInteractive shows the records in a Bubble Tea list. Every action is
// persisted immediately through a fresh store; external edits to path are
// picked up while the list is open.
func RunInteractive(path string, open Opener, logger *log.Logger) error {
	s, err := open()
	if err != nil {
		return err
	}
	records, err := s.List()
	_ = s.Close()
	if err != nil {
		return err
	}

	m := newModelTUI(records, open, logger)
	m.path = filepath.Clean(path)
	w, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warn("live reload disabled", "err", err)
	} else {
		defer w.Close()
		// watch the directory so atomic renames are seen too
		if err := w.Add(filepath.Dir(m.path)); err != nil {
			logger.Warn("live reload disabled", "err", err)
		} else {
			m.watcher = w
		}
	}

	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func waitForChange(w *fsnotify.Watcher, path string) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(ev.Name) == path &&
					ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) {
					return fileChangedMsg{}
				}
			case err, ok := <-w.Errors:
				if !ok {
					return nil
				}
				return watchErrMsg{err}
			}
		}
	}
}

// Update and View implement Bubble Tea's Model on modelTUI
func (m modelTUI) Init() tea.Cmd { return waitForChange(m.watcher, m.path) }

// apply runs op against a freshly opened store and refreshes the list.
func (m *modelTUI) apply(op linestore.Op) {
	s, err := m.open()
	if err != nil {
		m.status = err.Error()
		return
	}
	defer s.Close()
	records, err := s.Apply(op)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.status = ""
	m.setRecords(records)
}

func (m *modelTUI) reload() {
	s, err := m.open()
	if err != nil {
		m.status = err.Error()
		return
	}
	defer s.Close()
	records, err := s.List()
	if err != nil {
		m.status = err.Error()
		return
	}
	m.setRecords(records)
}

func (m *modelTUI) setRecords(records []model.Record) {
	idx := m.list.Index()
	m.list.SetItems(toItems(records))
	if idx >= len(records) {
		idx = len(records) - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}
}

func (m modelTUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case fileChangedMsg:
		m.logger.Debug("todo file changed, reloading", "path", m.path)
		m.reload()
		return m, waitForChange(m.watcher, m.path)
	case watchErrMsg:
		m.logger.Warn("watch error", "err", msg.err)
		return m, waitForChange(m.watcher, m.path)
	}

	// add mode
	if m.adding {
		var cmd tea.Cmd
		if x, ok := msg.(tea.KeyMsg); ok {
			switch x.String() {
			case "enter":
				text := strings.TrimSpace(m.ti.Value())
				if !linestore.ValidText(text) {
					m.status = "Text cannot be empty"
					return m, nil
				}
				m.apply(linestore.Add(text))
				if n := len(m.list.Items()); n > 0 {
					m.list.Select(n - 1)
				}
				m.ti.SetValue("")
				m.ti.Blur()
				m.adding = false
				return m, nil
			case "esc":
				m.adding = false
				m.ti.SetValue("")
				m.ti.Blur()
				return m, nil
			}
		}
		m.ti, cmd = m.ti.Update(msg)
		return m, cmd
	}

	if x, ok := msg.(tea.KeyMsg); ok {
		i := m.list.Index()
		hasItem := i >= 0 && i < len(m.list.Items())
		switch {
		case x.String() == "q" || x.String() == "esc":
			return m, tea.Quit
		case key.Matches(x, doneKey):
			if hasItem {
				m.apply(linestore.ToggleDone(i))
			}
			return m, nil
		case key.Matches(x, urgentKey):
			if hasItem {
				m.apply(linestore.ToggleUrgent(i))
			}
			return m, nil
		case key.Matches(x, removeKey):
			if hasItem {
				m.apply(linestore.Remove(i))
			}
			return m, nil
		case key.Matches(x, clearKey):
			m.apply(linestore.Clear())
			return m, nil
		case key.Matches(x, addKey):
			m.adding = true
			m.status = ""
			m.ti.SetValue("")
			m.ti.Focus()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m modelTUI) View() string {
	listHeight := m.height - 4
	if m.adding {
		listHeight = m.height - 6
	}
	m.list.SetSize(m.width-2, listHeight)

	content := m.list.View()
	if m.adding {
		bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
		content += "\n" + bar.Render("Add new item\n"+m.ti.View())
	}
	if m.status != "" {
		content += "\n" + current.Error.Render(m.status)
	}
	return Panel([]string{content})
}
