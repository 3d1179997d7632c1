package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"texlink/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)

	selectedItemStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Foreground(lipgloss.Color("205"))

	unselectedItemStyle = lipgloss.NewStyle().
				PaddingLeft(4).
				Foreground(lipgloss.Color("250"))

	lockedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208"))

	listStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("63"))
)

func (m AppModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("texlink Name Manager"))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render(m.StorePath))
	b.WriteString("\n\n")

	// Tab bar, one tab per map type.
	var tabs []string
	for i, t := range model.AllMapTypes {
		if i == m.TabIdx {
			tabs = append(tabs, activeTabStyle.Render(string(t)))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(string(t)))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n")

	// Alias list for the active tab.
	var list strings.Builder
	aliases := m.Convention[m.ActiveType()]
	if len(aliases) == 0 {
		list.WriteString(dimStyle.Render("(no aliases yet — press 'a' to add)"))
	}
	for i, rec := range aliases {
		mark := " "
		if rec.Locked {
			mark = model.IconLocked
		}
		line := fmt.Sprintf("%s %s", mark, rec.Name)
		switch {
		case i == m.Cursor:
			list.WriteString(selectedItemStyle.Render("> " + line))
		case rec.Locked:
			list.WriteString(lockedStyle.Render("  " + line))
		default:
			list.WriteString(unselectedItemStyle.Render(line))
		}
		list.WriteString("\n")
	}
	b.WriteString(listStyle.Render(strings.TrimSuffix(list.String(), "\n")))
	b.WriteString("\n\n")

	// Flags footer.
	udim := model.IconFlagOff
	if m.Settings.UDIM {
		udim = model.IconFlagOn
	}
	exr := model.IconFlagOff
	if m.Settings.PreferEXR {
		exr = model.IconFlagOn
	}
	fmt.Fprintf(&b, "%s UDIM workflow (u)    %s Prefer *.exr for Height (e)\n", udim, exr)

	if m.InputMode {
		b.WriteString("\nAdd aliases: ")
		b.WriteString(m.InputBuffer.View())
		b.WriteString("\n")
	}

	if m.Status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.Status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("←/→ switch map · ↑/↓ select · a add · d delete · u/e toggle flags · q quit"))
	b.WriteString("\n")

	return b.String()
}
