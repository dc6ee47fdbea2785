package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/avolkov/cardscreen/internal/model"
	"github.com/avolkov/cardscreen/internal/store"
)

type snapshotMsg model.DisplayState

type snapshotsClosed struct{}

type keyMap struct {
	Toggle key.Binding
	Lock   key.Binding
	Reload key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Lock, k.Reload, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Toggle, k.Lock, k.Reload, k.Quit}}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Toggle: key.NewBinding(
			key.WithKeys("r", "enter"),
			key.WithHelp("r", "reveal/hide"),
		),
		Lock: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "lock/unlock"),
		),
		Reload: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reload"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// app is the bubbletea model for the card widget. It is presentation only:
// every state change goes through the store, and the view re-renders from
// whatever snapshot the store publishes.
type app struct {
	store       *store.Store
	snapshots   <-chan model.DisplayState
	unsubscribe func()

	state model.DisplayState
	keys  keyMap
	help  help.Model
}

func newApp(st *store.Store) *app {
	snapshots, cancel := st.Subscribe()
	return &app{
		store:       st,
		snapshots:   snapshots,
		unsubscribe: cancel,
		keys:        defaultKeyMap(),
		help:        help.New(),
	}
}

func waitForSnapshot(ch <-chan model.DisplayState) tea.Cmd {
	return func() tea.Msg {
		st, ok := <-ch
		if !ok {
			return snapshotsClosed{}
		}
		return snapshotMsg(st)
	}
}

func (a *app) Init() tea.Cmd {
	return waitForSnapshot(a.snapshots)
}

func (a *app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		a.state = model.DisplayState(msg)
		return a, waitForSnapshot(a.snapshots)
	case snapshotsClosed:
		return a, tea.Quit
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			a.unsubscribe()
			return a, tea.Quit
		case key.Matches(msg, a.keys.Toggle):
			a.store.Dispatch(model.ToggleVisibility{})
		case key.Matches(msg, a.keys.Lock):
			a.store.Dispatch(model.ToggleLock{})
		case key.Matches(msg, a.keys.Reload):
			a.store.Dispatch(model.LoadCardDetails{})
		}
	}
	return a, nil
}

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 3).
			Width(36)
	numberStyle = lipgloss.NewStyle().Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	lockedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	buttonStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)

// renderCard draws one snapshot. Pure; exercised directly in tests.
func renderCard(st model.DisplayState) string {
	var b strings.Builder

	switch {
	case st.IsLoading:
		b.WriteString(labelStyle.Render("loading card..."))
		b.WriteString("\n\n")
	case st.IsError:
		b.WriteString(errorStyle.Render("could not load card"))
		b.WriteString("\n\n")
	}

	b.WriteString(numberStyle.Render(st.CardNumber))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("HOLDER  ") + st.CardHolder)
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("EXPIRY  ") + st.Expiry)
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("CVV     ") + st.CVV)
	b.WriteString("\n\n")

	if st.IsLocked {
		b.WriteString(lockedStyle.Render("LOCKED"))
	} else {
		b.WriteString(buttonStyle.Render("[ " + st.ButtonText + " ]"))
	}

	return cardStyle.Render(b.String())
}

func (a *app) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		renderCard(a.state),
		"",
		a.help.View(a.keys),
	)
}
