package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/BrandonKowalski/navstack/pkg/navstack/scenarios"
)

type renderer struct {
	header  lipgloss.Style
	action  lipgloss.Style
	entry   lipgloss.Style
	active  lipgloss.Style
	overlay lipgloss.Style
	tab     lipgloss.Style
	front   lipgloss.Style
	box     lipgloss.Style
}

func newRenderer(s Style) renderer {
	accent := lipgloss.Color(s.Accent)
	muted := lipgloss.Color(s.Muted)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(muted).
		Padding(0, 1)
	if s.Width > 0 {
		box = box.Width(s.Width)
	}

	return renderer{
		header:  lipgloss.NewStyle().Bold(true).Foreground(accent),
		action:  lipgloss.NewStyle().Italic(true).Foreground(muted),
		entry:   lipgloss.NewStyle().Foreground(muted),
		active:  lipgloss.NewStyle().Bold(true),
		overlay: lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(accent).Padding(0, 1),
		tab:     lipgloss.NewStyle().Padding(0, 1).Foreground(muted),
		front:   lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true).Foreground(accent),
		box:     box,
	}
}

func (r renderer) title(name string) string {
	return r.header.Render(name)
}

// frame draws one walkthrough step: the action, the stack root first with
// the active entry highlighted, the overlay and the tab bar.
func (r renderer) frame(i int, f scenarios.Frame) string {
	var lines []string
	lines = append(lines, r.action.Render(fmt.Sprintf("%d. %s", i, f.Action)))

	for depth, t := range f.Stack {
		indent := strings.Repeat("  ", depth)
		if depth == len(f.Stack)-1 {
			lines = append(lines, indent+r.active.Render("▸ "+t))
		} else {
			lines = append(lines, indent+r.entry.Render("· "+t))
		}
	}

	if f.Overlay != "" {
		lines = append(lines, r.overlay.Render(f.Overlay))
	}

	if len(f.Tabs) > 0 {
		tabs := make([]string, len(f.Tabs))
		for j, t := range f.Tabs {
			if j == f.Front {
				tabs[j] = r.front.Render(t)
			} else {
				tabs[j] = r.tab.Render(t)
			}
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	}

	return r.box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
