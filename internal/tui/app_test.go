package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/kingrea/roledraw/internal/assign"
	"github.com/kingrea/roledraw/internal/config"
	"github.com/kingrea/roledraw/internal/logbook"
	"github.com/kingrea/roledraw/internal/roster"
)

type reverseShuffler struct{}

func (reverseShuffler) Shuffle(n int, swap func(i, j int)) {
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		swap(i, j)
	}
}

func TestNewAppPreloadsConfig(t *testing.T) {
	app, store := newTestApp(t)

	require.Equal(t, []string{"Cook", "Cleaner", "Shopper"}, store.Roles())
	require.Equal(t, "Cook\nCleaner\nShopper", app.roles.Value())
	require.Equal(t, paneParticipants, app.focus)
}

func TestNewAppKeepsListsAlreadyInStore(t *testing.T) {
	cfg := newTestConfig(t)
	store := roster.New()
	store.SetRoles([]string{"Pilot"})

	app := NewApp(cfg, store)

	require.Equal(t, []string{"Pilot"}, store.Roles())
	require.Equal(t, "Pilot", app.roles.Value())
}

func TestTypingAndDrawCommitsEditors(t *testing.T) {
	app, store := newTestApp(t)
	app = typeText(t, app, "Alice")
	app = press(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	app = typeText(t, app, "Bob")
	app = press(t, app, tea.KeyMsg{Type: tea.KeyCtrlR})

	require.Equal(t, []string{"Alice", "Bob"}, store.Participants())
	require.Equal(t, []assign.Assignment{
		{Participant: "Alice", Role: "Shopper"},
		{Participant: "Bob", Role: "Cleaner"},
	}, store.Assignments())
	require.Equal(t, paneResults, app.focus)
	require.Contains(t, app.statusMsg, "2 assigned, 0 without a role")
}

func TestDrawShowsPlaceholderForExtraParticipants(t *testing.T) {
	app, _ := newTestApp(t)
	app.participants.SetValue("A\nB\nC\nD")
	app = press(t, app, tea.KeyMsg{Type: tea.KeyCtrlR})

	require.Contains(t, app.View(), assign.Placeholder)
	require.Contains(t, app.statusMsg, "3 assigned, 1 without a role")
	lines, _ := app.logbook.Tail(1)
	require.Len(t, lines, 1)
	require.Contains(t, lines[0], "WARN")
}

func TestTabCyclesPanesAndCommits(t *testing.T) {
	app, store := newTestApp(t)
	app.participants.SetValue("Ada, Grace")

	app = press(t, app, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, paneRoles, app.focus)
	require.Equal(t, []string{"Ada", "Grace"}, store.Participants())

	app = press(t, app, tea.KeyMsg{Type: tea.KeyTab})
	app = press(t, app, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, paneParticipants, app.focus)
	require.True(t, store.LastDraw().IsZero(), "tabbing must not draw")
}

func TestEditorsAcceptLongLists(t *testing.T) {
	app, store := newTestApp(t)
	names := make([]string, 150)
	for i := range names {
		names[i] = fmt.Sprintf("p%03d", i)
	}
	app.participants.SetValue(strings.Join(names, "\n"))

	app = press(t, app, tea.KeyMsg{Type: tea.KeyCtrlR})

	require.Equal(t, names, store.Participants())
	require.Len(t, store.Assignments(), 150)
}

func TestPresetCyclesAndPersists(t *testing.T) {
	app, store := newTestApp(t)

	app = press(t, app, tea.KeyMsg{Type: tea.KeyCtrlP})
	require.Equal(t, []string{"Driver", "Navigator", "Note taker", "Timekeeper"}, store.Roles())
	require.NoError(t, app.err)

	reloaded, err := config.NewConfig(app.config.ProjectDir)
	require.NoError(t, err)
	require.Equal(t, "review", reloaded.DefaultPreset())

	press(t, app, tea.KeyMsg{Type: tea.KeyCtrlP})
	require.Equal(t, []string{"Cook", "Cleaner", "Shopper"}, store.Roles())
}

func TestResultsPaneKeys(t *testing.T) {
	app, store := newTestApp(t)
	app = typeText(t, app, "q")
	require.Equal(t, "q", app.participants.Value(), "q is a letter in the editors")

	app = press(t, app, tea.KeyMsg{Type: tea.KeyCtrlR})
	first := store.LastDraw().ID
	app = press(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotEqual(t, first, store.LastDraw().ID, "enter draws again on the results pane")

	app = press(t, app, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, paneParticipants, app.focus)

	app = press(t, app, tea.KeyMsg{Type: tea.KeyCtrlR})
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestHelpShowsResultsBindingsOnlyOnResults(t *testing.T) {
	app, _ := newTestApp(t)
	app.help.Width = 0

	editing := app.help.View(app.keys)
	require.Contains(t, editing, "draw roles")
	require.NotContains(t, editing, "draw again")

	app = press(t, app, tea.KeyMsg{Type: tea.KeyCtrlR})
	results := app.help.View(app.keys)
	require.Contains(t, results, "draw again")
	require.Contains(t, results, "quit")

	app = press(t, app, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotContains(t, app.help.View(app.keys), "draw again")
}

func TestViewBeforeDraw(t *testing.T) {
	app, _ := newTestApp(t)
	require.Contains(t, app.View(), "No draw yet")
}

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	projectDir := t.TempDir()
	require.NoError(t, config.InitDir(projectDir))
	cfg, err := config.NewConfig(projectDir)
	require.NoError(t, err)
	return cfg
}

func newTestApp(t *testing.T) (*App, *roster.Store) {
	t.Helper()
	cfg := newTestConfig(t)
	lb, err := logbook.New(filepath.Join(cfg.LogsDir(), "activity.log"))
	require.NoError(t, err)
	store := roster.New(roster.WithEngine(assign.New(assign.WithShuffler(reverseShuffler{}))))
	app := NewApp(cfg, store, WithLogbook(lb))
	return press(t, app, tea.WindowSizeMsg{Width: 120, Height: 40}), store
}

func typeText(t *testing.T, app *App, text string) *App {
	t.Helper()
	return press(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func press(t *testing.T, app *App, msg tea.Msg) *App {
	t.Helper()
	model, _ := app.Update(msg)
	next, ok := model.(*App)
	require.True(t, ok, "unexpected model type: %T", model)
	return next
}
