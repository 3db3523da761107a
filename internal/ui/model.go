// SPDX-License-Identifier: EPL-2.0

// Package ui is a terminal status screen for a running engine.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ik5/sampbx/cursor"
	"github.com/ik5/sampbx/engine"
	"github.com/ik5/sampbx/order"
	"github.com/ik5/sampbx/store"
)

// PollInterval is how often the model checks the engine for changes.
const PollInterval = 50 * time.Millisecond

// Player is the part of *engine.Engine the screen drives.
type Player interface {
	Play()
	Stop()
	Suspended() bool
	CurrentIndex() int
	Changed() bool
	Store() *store.Store
	Params() *engine.Params
	SetLoop(cursor.LoopMode) error
	SetOrder(order.Mode) error
	SetBypass(bool)
}

type tickMsg time.Time

// Model represents the TUI state
type Model struct {
	player Player

	playing bool
	current int // ordinal of the playing region, -1 when stopped
	frames  int
	rate    int

	names    []string
	ordinals []int // input position of each name

	loop   cursor.LoopMode
	order  order.Mode
	bypass bool
	level  float32

	err    error
	width  int
	height int
}

func NewModel(p Player) Model {
	m := Model{player: p, current: -1}
	m.refresh()
	return m
}

func tick() tea.Cmd {
	return tea.Tick(PollInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tickMsg:
		if m.player.Changed() {
			m.refresh()
		}
		return m, tick()
	}

	return m, nil
}

// refresh copies the player state into the model.
func (m *Model) refresh() {
	p := m.player

	m.playing = !p.Suspended()
	m.current = p.CurrentIndex()

	st := p.Store()
	m.names = make([]string, 0, st.Len())
	m.ordinals = make([]int, 0, st.Len())
	for _, r := range st.Regions {
		m.names = append(m.names, r.Name)
		m.ordinals = append(m.ordinals, r.Ordinal)
	}
	m.frames = st.Frames()
	m.rate = st.SampleRate

	params := p.Params()
	m.loop = params.Loop()
	m.order = params.Order()
	m.bypass = params.Bypass()
	m.level = params.Level()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		if m.playing {
			m.player.Stop()
		} else {
			m.player.Play()
		}
	case "l":
		next := cursor.DefaultLoop((m.loop.Kind + 1) % (cursor.Gap + 1))
		m.err = m.player.SetLoop(next)
	case "o":
		m.err = m.player.SetOrder((m.order + 1) % (order.Random + 1))
	case "b":
		m.player.SetBypass(!m.bypass)
	}

	m.refresh()
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	state := "Stopped"
	if m.playing {
		state = "Playing"
	}
	if m.bypass {
		state += " (bypassed)"
	}

	b.WriteString("┌─ sampbx ─────────────────────────────────────────────┐\n")
	fmt.Fprintf(&b, "│ State: %-45s │\n", state)
	fmt.Fprintf(&b, "│ Loop:  %-12s Order: %-10s Level: %4.2f    │\n", m.loop, m.order, m.level)
	fmt.Fprintf(&b, "│ Files: %-3d %-41s │\n", len(m.names), duration(m.frames, m.rate))
	b.WriteString("├──────────────────────────────────────────────────────┤\n")

	if len(m.names) == 0 {
		b.WriteString("│ (no files loaded)                                    │\n")
	}
	for i, name := range m.names {
		marker := " "
		if m.ordinals[i] == m.current {
			marker = "▶"
		}
		fmt.Fprintf(&b, "│ %s %-50s │\n", marker, truncate(name, 50))
	}

	if m.err != nil {
		fmt.Fprintf(&b, "│ Error: %-45s │\n", truncate(m.err.Error(), 45))
	}

	b.WriteString("│ space:Play/Stop  l:Loop  o:Order  b:Bypass  q:Quit   │\n")
	b.WriteString("└──────────────────────────────────────────────────────┘\n")

	return b.String()
}

// Run shows the screen until the user quits.
func Run(p Player) error {
	_, err := tea.NewProgram(NewModel(p), tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}

func duration(frames, rate int) string {
	if rate <= 0 {
		return ""
	}
	d := time.Duration(frames) * time.Second / time.Duration(rate)
	return d.Round(time.Millisecond).String()
}

// truncate shortens s to at most length runes.
func truncate(s string, length int) string {
	r := []rune(s)
	if len(r) <= length {
		return s
	}
	return string(r[:length-3]) + "..."
}
