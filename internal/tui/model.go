package tui

import (
	"texlink/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// AppModel holds the Name Manager state.
type AppModel struct {
	// Data
	StorePath  string
	Convention model.Convention
	Settings   model.Settings

	// UI State
	TabIdx     int
	Cursor     int
	WindowSize tea.WindowSizeMsg

	// Add-alias input
	InputMode   bool
	InputBuffer textinput.Model

	// Status line feedback (saves, rejected deletes, errors)
	Status string
}

// InitialModel returns the initial state editing the given convention file.
func InitialModel(storePath string, conv model.Convention, settings model.Settings) AppModel {
	ti := textinput.New()
	ti.Placeholder = "Alias names, comma separated..."
	ti.CharLimit = 120
	ti.Width = 40

	return AppModel{
		StorePath:   storePath,
		Convention:  conv,
		Settings:    settings,
		InputBuffer: ti,
	}
}

// ActiveType is the map type of the selected tab.
func (m AppModel) ActiveType() model.MapType {
	return model.AllMapTypes[m.TabIdx]
}

func (m AppModel) Init() tea.Cmd {
	return textinput.Blink
}
