// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package termview

import (
	"context"
	"fmt"
	"image"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gogpu/start2d"
)

// BuildFunc creates an artwork inside host. It runs on the viewer's
// event loop.
type BuildFunc func(host start2d.Host) (*start2d.Artwork, error)

type reloadMsg struct {
	build BuildFunc
}

var (
	colorBar  = lipgloss.Color("#44475A")
	colorText = lipgloss.Color("#F8F8F2")

	statusStyle = lipgloss.NewStyle().Foreground(colorText).Background(colorBar)
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#BD93F9")).Background(colorBar).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555")).Background(colorBar)
)

// Viewer runs the terminal event loop for one artwork at a time.
type Viewer struct {
	prog *tea.Program
}

// NewViewer prepares a viewer for art, which must have been created with
// host. Extra program options are applied after the defaults (alternate
// screen and all mouse motion).
func NewViewer(host *Host, art *start2d.Artwork, opts ...tea.ProgramOption) *Viewer {
	m := newModel(host, art)
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseAllMotion()}, opts...)
	p := tea.NewProgram(m, opts...)
	m.queued = host.attach(p.Send)
	return &Viewer{prog: p}
}

// Run runs the viewer until the user quits or ctx is done, then closes
// the artwork shown last.
func (v *Viewer) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, v.prog.Quit)
	defer stop()

	final, err := v.prog.Run()
	if m, ok := final.(*model); ok && m.art != nil {
		if cerr := m.art.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return fmt.Errorf("termview: %w", err)
	}
	return nil
}

// Reload replaces the artwork with the one build creates. The old artwork
// is closed once the new one exists; on error the old one stays.
func (v *Viewer) Reload(build BuildFunc) {
	v.prog.Send(reloadMsg{build: build})
}

type model struct {
	host   *Host
	art    *start2d.Artwork
	canvas image.Image
	queued []func()

	inside  bool
	status  string
	failure bool
}

func newModel(host *Host, art *start2d.Artwork) *model {
	return &model{host: host, art: art, canvas: art.Context().Image()}
}

func (m *model) Init() tea.Cmd {
	if len(m.queued) == 0 {
		return nil
	}
	fns := m.queued
	m.queued = nil
	return func() tea.Msg { return postMsg{fns: fns} }
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.host.SetTerminalSize(msg.Width, msg.Height)
		m.art.ContainerResized()
	case tea.KeyMsg:
		return m, m.key(msg)
	case tea.MouseMsg:
		m.mouse(msg)
	case postMsg:
		for _, fn := range msg.fns {
			fn()
		}
	case reloadMsg:
		m.reload(msg.build)
	}
	return m, nil
}

func (m *model) key(msg tea.KeyMsg) tea.Cmd {
	switch strings.ToLower(msg.String()) {
	case "q", "esc", "ctrl+c":
		return tea.Quit
	case "e":
		path, err := m.art.Export()
		if err != nil {
			m.setStatus(err.Error(), true)
		} else {
			m.setStatus("saved "+path, false)
		}
	case "f":
		m.art.ZoomToFit()
	case "1":
		m.art.ZoomToActualSize()
	case "m":
		m.art.ZoomToMax()
	case "d":
		m.art.ToggleReadout()
	case "s":
		m.art.ToggleShadow()
	}
	return nil
}

// cellCenter returns the screen position of the center of a cell.
func cellCenter(col, row int) start2d.Point {
	return start2d.Point{
		X: float64(col*CellWidth) + CellWidth/2,
		Y: float64(row*CellHeight) + CellHeight/2,
	}
}

func (m *model) mouse(msg tea.MouseMsg) {
	p := cellCenter(msg.X, msg.Y)
	ev := &start2d.PointerEvent{X: p.X, Y: p.Y, Ctrl: msg.Ctrl, Alt: msg.Alt, Shift: msg.Shift}
	events := m.host.Events()

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			ev.DeltaY = -1
			events.Dispatch(start2d.Wheel, ev)
		case tea.MouseButtonWheelDown:
			ev.DeltaY = 1
			events.Dispatch(start2d.Wheel, ev)
		case tea.MouseButtonLeft:
			events.Dispatch(start2d.PointerDown, ev)
		}
	case tea.MouseActionRelease:
		events.Dispatch(start2d.PointerUp, ev)
	case tea.MouseActionMotion:
		events.Dispatch(start2d.PointerMove, ev)
	}

	// Terminals report no leave event; synthesize one when the pointer
	// moves off the canvas or out of the preview area.
	c := m.host.ContainerSize()
	inside := p.Y < c.H && m.host.Frame().Canvas.Contains(p)
	if m.inside && !inside {
		events.Dispatch(start2d.PointerLeave, &start2d.PointerEvent{X: p.X, Y: p.Y})
	}
	m.inside = inside
}

func (m *model) reload(build BuildFunc) {
	art, err := build(m.host)
	if err != nil {
		start2d.Logger().Error("termview: reload failed", "error", err)
		m.setStatus("reload failed: "+err.Error(), true)
		return
	}
	_ = m.art.Close()
	m.art = art
	m.canvas = art.Context().Image()
	m.inside = false
	m.setStatus("reloaded", false)
}

func (m *model) setStatus(s string, failure bool) {
	m.status, m.failure = s, failure
}

func (m *model) View() string {
	cols, rows := m.host.TerminalSize()
	if cols <= 0 || rows <= statusRows {
		return ""
	}
	img := Compose(cols, (rows-statusRows)*2, m.host.Frame(), m.host.Wallpaper(), m.canvas)
	return HalfBlocks(img) + "\n" + m.statusLine(cols)
}

func (m *model) statusLine(width int) string {
	f := m.host.Frame()
	geo := m.art.Geometry()

	parts := []string{
		statusStyle.Render(fmt.Sprintf(" %.0f%% ", 100*f.Zoom/geo.Ratio())),
	}
	if f.Readout != "" {
		parts = append(parts, statusStyle.Render(f.Readout+" "))
	}
	for _, k := range [][2]string{{"e", "export"}, {"f", "fit"}, {"1", "1:1"}, {"m", "max"}, {"d", "coords"}, {"s", "shadow"}, {"q", "quit"}} {
		parts = append(parts, keyStyle.Render(k[0])+statusStyle.Render(" "+k[1]+" "))
	}
	if m.status != "" {
		st := statusStyle
		if m.failure {
			st = errorStyle
		}
		parts = append(parts, st.Render(" "+m.status))
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	return statusStyle.Width(width).MaxWidth(width).MaxHeight(1).Render(line)
}
