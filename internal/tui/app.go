// internal/tui/app.go
//
// This is the TUI for roledraw. It uses bubbletea, which follows The Elm
// Architecture:
//
// 1. Model: the App, holding the editors and a reference to the roster store
// 2. Update: reacts to keys by editing text or mutating the store
// 3. View: renders editors, the latest draw and the activity feed
//
// The roster store is only touched from Update, so bubbletea's single update
// loop is what serializes access to it.

package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/roledraw/internal/config"
	"github.com/kingrea/roledraw/internal/logbook"
	"github.com/kingrea/roledraw/internal/report"
	"github.com/kingrea/roledraw/internal/roster"
)

// pane represents which part of the screen has focus
type pane int

const (
	paneParticipants pane = iota // participant editor
	paneRoles                    // role editor
	paneResults                  // latest draw
)

const (
	editorHeight  = 10
	activityLines = 3
)

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithLogbook attaches the activity feed shown in the footer.
func WithLogbook(lb *logbook.Logbook) AppOption {
	return func(a *App) {
		a.logbook = lb
	}
}

// App is the main application model.
type App struct {
	config  *config.Config
	store   *roster.Store
	logbook *logbook.Logbook

	participants textarea.Model
	roles        textarea.Model
	keys         keyMap
	help         help.Model

	focus       pane
	presets     []string
	presetIndex int

	statusMsg string
	err       error

	width  int
	height int
}

// NewApp binds a TUI to store. Lists the store already holds are kept;
// empty ones are preloaded from cfg.
func NewApp(cfg *config.Config, store *roster.Store, opts ...AppOption) *App {
	a := &App{
		config:       cfg,
		store:        store,
		participants: newEditor("One participant per line"),
		roles:        newEditor("One role per line"),
		keys:         defaultKeyMap(),
		help:         help.New(),
		focus:        paneParticipants,
		presetIndex:  -1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	if cfg != nil {
		a.presets = cfg.PresetNames()
		a.presetIndex = slices.Index(a.presets, cfg.DefaultPreset())
		if names := cfg.Participants(); len(names) > 0 && len(store.Participants()) == 0 {
			store.SetParticipants(names)
		}
		if roles := cfg.DefaultRoles(); len(roles) > 0 && len(store.Roles()) == 0 {
			store.SetRoles(roles)
		}
	}
	a.participants.SetValue(roster.FormatList(store.Participants()))
	a.roles.SetValue(roster.FormatList(store.Roles()))
	a.participants.Focus()
	a.logInfo("Session opened · %d participants, %d roles", len(store.Participants()), len(store.Roles()))
	return a
}

func newEditor(placeholder string) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetHeight(editorHeight)
	return ta
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return textarea.Blink
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		editorWidth := max(20, msg.Width/2-4)
		a.participants.SetWidth(editorWidth)
		a.roles.SetWidth(editorWidth)
		a.help.Width = msg.Width
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.Draw):
			return a, a.draw()
		case key.Matches(msg, a.keys.Next):
			return a, a.setFocus((a.focus + 1) % 3)
		case key.Matches(msg, a.keys.Preset):
			a.nextPreset()
			return a, nil
		case key.Matches(msg, a.keys.Back):
			if a.focus == paneResults {
				return a, a.setFocus(paneParticipants)
			}
			return a, nil
		}
		if a.focus == paneResults {
			switch {
			case key.Matches(msg, a.keys.Exit):
				return a, tea.Quit
			case key.Matches(msg, a.keys.Redraw):
				return a, a.draw()
			}
			return a, nil
		}
	}

	var cmd tea.Cmd
	switch a.focus {
	case paneParticipants:
		a.participants, cmd = a.participants.Update(msg)
	case paneRoles:
		a.roles, cmd = a.roles.Update(msg)
	}
	return a, cmd
}

// setFocus commits the editor being left and focuses the next pane.
func (a *App) setFocus(next pane) tea.Cmd {
	a.commitEditors()
	a.participants.Blur()
	a.roles.Blur()
	a.focus = next
	a.keys.setResultsMode(next == paneResults)
	switch next {
	case paneParticipants:
		return a.participants.Focus()
	case paneRoles:
		return a.roles.Focus()
	}
	return nil
}

// commitEditors pushes editor text into the store when it differs from the
// stored lists, so unchanged panes do not produce trace noise.
func (a *App) commitEditors() {
	if names := roster.ParseList(a.participants.Value()); !slices.Equal(names, a.store.Participants()) {
		a.store.SetParticipants(names)
		a.logbook.ListReplaced("Participants", names)
	}
	if roles := roster.ParseList(a.roles.Value()); !slices.Equal(roles, a.store.Roles()) {
		a.store.SetRoles(roles)
		a.logbook.ListReplaced("Roles", roles)
	}
}

func (a *App) draw() tea.Cmd {
	a.commitEditors()
	d := a.store.AssignRoles()
	a.statusMsg = fmt.Sprintf("Draw %s · %s", d.ShortID(), report.Summary(d.Assignments))
	a.err = nil
	a.logbook.Draw(d)
	return a.setFocus(paneResults)
}

func (a *App) nextPreset() {
	if len(a.presets) == 0 {
		a.statusMsg = "No presets configured"
		return
	}
	a.presetIndex = (a.presetIndex + 1) % len(a.presets)
	name := a.presets[a.presetIndex]
	roles, _ := a.config.Preset(name)
	a.roles.SetValue(roster.FormatList(roles))
	a.store.SetRoles(roles)
	a.statusMsg = fmt.Sprintf("Preset: %s (%d roles)", name, len(roles))
	a.logbook.PresetLoaded(name, roles)
	if err := a.config.SetDefaultPreset(name); err != nil {
		a.err = err
		a.logError("Remember preset %s: %v", name, err)
	}
}

func (a *App) logInfo(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Info(format, args...)
}

func (a *App) logError(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Error(format, args...)
}

// View renders the current state to a string.
func (a *App) View() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render("⬡ ROLEDRAW")

	editors := lipgloss.JoinHorizontal(lipgloss.Top,
		a.renderPane("Participants", a.participants.View(), a.focus == paneParticipants),
		a.renderPane("Roles", a.roles.View(), a.focus == paneRoles),
	)
	results := a.renderPane("Assignments", a.renderAssignments(), a.focus == paneResults)

	parts := []string{title, editors, results}
	if status := a.renderStatus(); status != "" {
		parts = append(parts, status)
	}
	parts = append(parts, a.help.View(a.keys))
	if activity := a.renderActivity(); activity != "" {
		parts = append(parts, activity)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a *App) renderPane(heading, body string, focused bool) string {
	border := lipgloss.Color("#444444")
	if focused {
		border = lipgloss.Color("#5B8DEF")
	}
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF6B6B")).
		Render(heading)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, head, body))
}

func (a *App) renderAssignments() string {
	assignments := a.store.Assignments()
	if a.store.LastDraw().IsZero() {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Render("No draw yet. Press ctrl+r to assign roles.")
	}
	if len(assignments) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Render("No participants to assign.")
	}
	nameWidth := 0
	for _, item := range assignments {
		nameWidth = max(nameWidth, lipgloss.Width(item.Participant))
	}
	name := lipgloss.NewStyle().Width(nameWidth + 2)
	role := lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	vacant := lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")).Italic(true)
	lines := make([]string, 0, len(assignments))
	for _, item := range assignments {
		style := role
		if item.Vacant {
			style = vacant
		}
		lines = append(lines, name.Render(item.Participant)+"→ "+style.Render(item.Role))
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderStatus() string {
	if a.err != nil {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Render("Error: " + a.err.Error())
	}
	if a.statusMsg == "" {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Render(a.statusMsg)
}

func (a *App) renderActivity() string {
	lines, _ := a.logbook.Tail(activityLines)
	if len(lines) == 0 {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		Render(strings.Join(lines, "\n"))
}
