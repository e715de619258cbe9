// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/tfctl/blockdiff/internal/revutil"
)

// SelectRevisions lets the user toggle two revisions and returns them in the
// order they appear in items (most recent first). It returns nil if the user
// quits.
func SelectRevisions(items []revutil.Revision) ([]revutil.Revision, error) {
	p := tea.NewProgram(model{items: items})
	m, err := p.Run()
	if err != nil {
		return nil, err
	}
	return m.(model).ordered(), nil
}

type model struct {
	items    []revutil.Revision
	cursor   int
	selected []int
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "esc", "ctrl+c":
			m.selected = nil
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case " ":
			m = m.toggle(m.cursor)
		case "enter":
			if len(m.selected) == 2 {
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

// toggle flips selection of item i. At most two items can be selected.
func (m model) toggle(i int) model {
	for n, s := range m.selected {
		if s == i {
			m.selected = append(m.selected[:n:n], m.selected[n+1:]...)
			return m
		}
	}
	if len(m.selected) < 2 {
		m.selected = append(m.selected, i)
	}
	return m
}

func (m model) isSelected(i int) bool {
	for _, s := range m.selected {
		if s == i {
			return true
		}
	}
	return false
}

// ordered returns the selected revisions in list order.
func (m model) ordered() []revutil.Revision {
	if len(m.selected) != 2 {
		return nil
	}
	var out []revutil.Revision
	for i, r := range m.items {
		if m.isSelected(i) {
			out = append(out, r)
		}
	}
	return out
}

func (m model) View() string {
	s := "Select two revisions:\n\n"
	for i, r := range m.items {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}
		mark := " "
		if m.isSelected(i) {
			mark = "x"
		}

		s += fmt.Sprintf("%s [%s] %-10.10s %-16s %s\n", cursor, mark, r.ID, humanize.Time(r.CreatedAt), r.Summary)
	}
	return s + "\nSPACE: toggle, ENTER: go, Q/ESCAPE: quit\n"
}
