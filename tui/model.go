package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-tempochange/debug"
	"go-tempochange/sequencer"
	"go-tempochange/theme"
	"go-tempochange/widgets"
)

// frameRate is how often the strip is redrawn while it scrolls
const frameRate = 30

type Model struct {
	Seq    *sequencer.Sequencer
	Theme  *theme.Theme
	beats  <-chan func()
	tiles  []widgets.Tile
	layout widgets.StripLayout
	keys   keyMap
	help   help.Model

	// animation bookkeeping; a new generation restarts from animStart
	animGen   uint64
	animStart time.Time
	framing   bool
	now       func() time.Time

	showHelp bool
	notice   string
	quitting bool
}

// BeatMsg carries one timer callback onto the update loop
type BeatMsg struct {
	Fire func()
}

// FrameMsg redraws the scrolling strip
type FrameMsg time.Time

// NewModel builds the view. beats delivers timer callbacks posted by the
// sequencer's clock; it may be nil when the clock calls back inline.
func NewModel(seq *sequencer.Sequencer, beats <-chan func(), th *theme.Theme, layout widgets.StripLayout, colors []theme.RGB) Model {
	raw := make([][3]uint8, len(colors))
	for i, c := range colors {
		raw[i] = c
	}
	return Model{
		Seq:    seq,
		Theme:  th,
		beats:  beats,
		tiles:  widgets.NumberedTiles(raw, labelColor),
		layout: layout,
		keys:   defaultKeys(),
		help:   help.New(),
		now:    time.Now,
	}
}

func labelColor(bg [3]uint8) [3]uint8 {
	return theme.LabelColor(bg)
}

// WithNotice shows a one-line message under the header
func (m Model) WithNotice(s string) Model {
	m.notice = s
	return m
}

// WithClock replaces the wall clock used for animation
func (m Model) WithClock(now func() time.Time) Model {
	m.now = now
	return m
}

// ListenForBeats waits for the next timer callback
func ListenForBeats(beats <-chan func()) tea.Cmd {
	if beats == nil {
		return nil
	}
	return func() tea.Msg {
		fn, ok := <-beats
		if !ok {
			return nil
		}
		return BeatMsg{Fire: fn}
	}
}

func frameCmd() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return ListenForBeats(m.beats)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			m.Seq.Pause()
			return m, tea.Quit

		case key.Matches(msg, m.keys.Toggle):
			m.Seq.TogglePlay()

		case key.Matches(msg, m.keys.Faster):
			m.Seq.ChangeTempo(m.Seq.Config().TempoStep)

		case key.Matches(msg, m.keys.Slower):
			m.Seq.ChangeTempo(-m.Seq.Config().TempoStep)

		case key.Matches(msg, m.keys.Reset):
			m.Seq.Reset()

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
		}
		return m.syncAnimation()

	case BeatMsg:
		if msg.Fire != nil {
			msg.Fire()
		}
		next, cmd := m.syncAnimation()
		return next, tea.Batch(cmd, ListenForBeats(m.beats))

	case FrameMsg:
		snap := m.Seq.Snapshot()
		if snap.Animating && !snap.Animation.Done(m.elapsed()) {
			debug.LogEvery(frameRate, "frame", "gen=%d offset=%.1f", m.animGen, snap.Animation.OffsetAt(m.elapsed()))
			return m, frameCmd()
		}
		m.framing = false
		return m, nil
	}

	return m, nil
}

// syncAnimation restarts the interpolation when the sequencer has produced a
// new animation generation and keeps a frame loop running while it scrolls.
func (m Model) syncAnimation() (tea.Model, tea.Cmd) {
	snap := m.Seq.Snapshot()
	if !snap.Animating {
		return m, nil
	}
	if snap.Animation.Generation != m.animGen {
		m.animGen = snap.Animation.Generation
		m.animStart = m.now()
		debug.Log("frame", "restart gen=%d from=%.0f to=%.0f over %s",
			m.animGen, snap.Animation.StartOffset, snap.Animation.EndOffset, snap.Animation.Duration)
	}
	if m.framing {
		return m, nil
	}
	m.framing = true
	return m, frameCmd()
}

func (m Model) elapsed() time.Duration {
	return m.now().Sub(m.animStart)
}

// stripOffset is the animated offset while a pass runs, otherwise the
// position that puts the current tile at the left edge
func (m Model) stripOffset(snap sequencer.Snapshot) float64 {
	if snap.Animating {
		return snap.Animation.OffsetAt(m.elapsed())
	}
	extent := m.layout.Extent()
	offset := snap.Index * extent
	maxScroll := len(m.tiles)*extent - m.layout.Spacing - m.layout.Viewport
	if maxScroll < 0 {
		maxScroll = 0
	}
	if offset > maxScroll {
		offset = maxScroll
	}
	return -float64(offset)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.Seq.Snapshot()

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent()).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	frameStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(m.Theme.Active())
	buttonStyle := lipgloss.NewStyle().
		Foreground(m.Theme.FG()).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.Theme.Accent()).
		Padding(0, 2)

	header := headerStyle.Render(fmt.Sprintf("Tempo: %s", formatTempo(snap.Tempo)))
	status := dimStyle.Render(fmt.Sprintf("%s  beat %02d/%02d", snap.Status, snap.Index, snap.TileCount))

	strip := widgets.RenderStrip(m.tiles, m.stripOffset(snap), m.layout)
	// +1 for the frame's left border
	playhead := strings.Repeat(" ", m.layout.TileWidth/2+1) + string(m.Theme.Symbols.Playhead)

	label := "Play"
	if snap.IsPlaying() {
		label = "Pause"
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		buttonStyle.Render(label),
		buttonStyle.Render("Tempo -"),
		buttonStyle.Render("Tempo +"),
		buttonStyle.Render("Reset"),
	)

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("  ")
	out.WriteString(status)
	out.WriteString("\n")
	if m.notice != "" {
		out.WriteString(dimStyle.Render(m.notice))
		out.WriteString("\n")
	}
	out.WriteString(lipgloss.NewStyle().Foreground(m.Theme.Warning()).Render(playhead))
	out.WriteString("\n")
	out.WriteString(frameStyle.Render(strip))
	out.WriteString("\n")
	out.WriteString(buttons)
	out.WriteString("\n\n")
	if m.showHelp {
		out.WriteString(widgets.RenderKeyHelp(m.keys.sections()))
	} else {
		out.WriteString(m.help.View(m.keys))
	}

	return out.String()
}

// formatTempo prints whole tempos without decimals
func formatTempo(bpm float64) string {
	if bpm == math.Trunc(bpm) {
		return fmt.Sprintf("%.0f", bpm)
	}
	return fmt.Sprintf("%.1f", bpm)
}
