package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"texlink/internal/convention"
	"texlink/internal/model"
)

// Update handles events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		return m, nil

	case tea.KeyMsg:
		if m.InputMode {
			switch msg.Type {
			case tea.KeyEnter:
				m.InputMode = false
				m.InputBuffer.Blur()
				m.addAliases(m.InputBuffer.Value())
				m.InputBuffer.SetValue("")
				return m, nil
			case tea.KeyEsc:
				m.InputMode = false
				m.InputBuffer.Blur()
				m.InputBuffer.SetValue("")
				return m, nil
			}
			m.InputBuffer, cmd = m.InputBuffer.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "left", "h", "shift+tab":
			if m.TabIdx > 0 {
				m.TabIdx--
			} else {
				m.TabIdx = len(model.AllMapTypes) - 1
			}
			m.Cursor = 0
		case "right", "l", "tab":
			m.TabIdx = (m.TabIdx + 1) % len(model.AllMapTypes)
			m.Cursor = 0
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Convention[m.ActiveType()])-1 {
				m.Cursor++
			}
		case "a":
			m.InputMode = true
			m.InputBuffer.Focus()
			m.InputBuffer.SetValue("")
			m.Status = ""
			return m, textinput.Blink
		case "d", "delete", "x":
			m.deleteSelected()
		case "u":
			m.Settings.UDIM = !m.Settings.UDIM
			m.persist(fmt.Sprintf("udim = %v", m.Settings.UDIM))
		case "e":
			m.Settings.PreferEXR = !m.Settings.PreferEXR
			m.persist(fmt.Sprintf("prefer_exr = %v", m.Settings.PreferEXR))
		}
	}

	return m, cmd
}

// addAliases adds a comma-separated batch to the active tab and saves.
func (m *AppModel) addAliases(raw string) {
	names := strings.Split(raw, ",")
	t := m.ActiveType()
	if err := convention.AddAliases(m.Convention, t, names); err != nil {
		m.Status = err.Error()
		return
	}
	m.persist(fmt.Sprintf("added to %s", t))
}

func (m *AppModel) deleteSelected() {
	t := m.ActiveType()
	list := m.Convention[t]
	if m.Cursor >= len(list) {
		return
	}
	name := list[m.Cursor].Name
	if err := convention.DeleteAlias(m.Convention, t, name); err != nil {
		m.Status = err.Error()
		return
	}
	if m.Cursor >= len(m.Convention[t]) && m.Cursor > 0 {
		m.Cursor--
	}
	m.persist(fmt.Sprintf("deleted %q", name))
}

// persist writes the convention back to the store file. Every mutation is
// saved immediately; there is no explicit save step.
func (m *AppModel) persist(action string) {
	if err := convention.Save(m.StorePath, m.Convention, m.Settings); err != nil {
		m.Status = err.Error()
		return
	}
	m.Status = action
}
