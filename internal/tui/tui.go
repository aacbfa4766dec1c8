// Package tui provides a Bubble Tea viewer for journal documents.
package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/inkwell-journal/inkwell/internal/vault"
)

// ── Styles ────────────

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33")).
			Bold(true)

	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// reloadMsg delivers a freshly decoded document after a disk change.
type reloadMsg struct {
	doc vault.Doc
}

type model struct {
	doc      vault.Doc
	path     string
	watching bool

	vp    viewport.Model
	ready bool
}

// Run opens the full-screen viewer for doc. With watch set, the on-disk
// file is watched and the view reloads on every write.
func Run(doc vault.Doc, path string, watch bool) error {
	m := model{doc: doc, path: path, watching: watch}
	p := tea.NewProgram(&m, tea.WithAltScreen())

	var watcher *fsnotify.Watcher
	if watch {
		var err error
		watcher, err = fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("starting file watcher: %w", err)
		}
		defer watcher.Close()
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		go watchLoop(watcher, p, doc.ID, path)
	}

	_, err := p.Run()
	return err
}

// watchLoop forwards disk changes to the program. Decode failures are
// ignored here: a half-written file will fire another event once the
// writer finishes.
func watchLoop(w *fsnotify.Watcher, p *tea.Program, id uuid.UUID, path string) {
	for ev := range w.Events {
		if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
			continue
		}
		doc, err := readDoc(id, path)
		if err != nil {
			continue
		}
		p.Send(reloadMsg{doc: doc})
	}
}

func readDoc(id uuid.UUID, path string) (vault.Doc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return vault.Doc{}, err
	}
	return vault.Decode(id, data)
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		headerHeight := lipgloss.Height(m.headerView())
		footerHeight := lipgloss.Height(m.footerView())
		vpHeight := msg.Height - headerHeight - footerHeight
		if vpHeight < 1 {
			vpHeight = 1
		}
		m.vp = viewport.New(msg.Width, vpHeight)
		m.vp.SetContent(m.renderDoc())
		m.ready = true

	case reloadMsg:
		m.doc = msg.doc
		if m.ready {
			m.vp.SetContent(m.renderDoc())
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *model) View() string {
	if !m.ready {
		return "loading..."
	}
	return m.headerView() + "\n" + m.vp.View() + "\n" + m.footerView()
}

func (m *model) headerView() string {
	title := m.doc.Type
	if t, ok := m.doc.Frontmatter["title"].(string); ok {
		title = t
	}
	return titleStyle.Render(title)
}

func (m *model) footerView() string {
	var tags []string
	for _, key := range []string{"mode", "mood", "energy"} {
		if val, ok := m.doc.Frontmatter[key].(string); ok {
			tags = append(tags, labelStyle.Render(key+"=")+tagStyle.Render(val))
		}
	}
	status := m.path
	if m.watching {
		status += "  (watching)"
	}
	bar := statusBarStyle.Render(status)
	hint := hintStyle.Render("  q: quit  ↑/↓: scroll")
	if len(tags) > 0 {
		return strings.Join(tags, " ") + "\n" + bar + hint
	}
	return bar + hint
}

func (m *model) renderDoc() string {
	return m.doc.Body
}
