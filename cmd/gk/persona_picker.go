package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/goalkit-labs/goalkit/internal/persona"
)

// personaItem wraps a Persona for list display.
type personaItem struct {
	p persona.Persona
}

func (i personaItem) Title() string       { return i.p.Name }
func (i personaItem) Description() string { return i.p.Byline }
func (i personaItem) FilterValue() string { return i.p.Name }

// pickerModel is the bubbletea model for the interactive persona picker.
type pickerModel struct {
	list   list.Model
	choice string
}

func newPickerModel() pickerModel {
	items := make([]list.Item, 0, len(persona.All()))
	for _, p := range persona.All() {
		items = append(items, personaItem{p: p})
	}

	delegate := list.NewDefaultDelegate()
	delegate.SetHeight(2)
	delegate.SetSpacing(0)

	l := list.New(items, delegate, 40, 14)
	l.Title = "Select a persona"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = lipgloss.NewStyle().Bold(true)

	return pickerModel{list: l}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "enter":
			if item, ok := m.list.SelectedItem().(personaItem); ok {
				m.choice = item.p.Name
			}
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickerModel) View() string {
	return m.list.View()
}

// runPersonaPicker shows the picker and returns the chosen persona name,
// or empty when the user backed out.
func runPersonaPicker() (string, error) {
	final, err := tea.NewProgram(newPickerModel()).Run()
	if err != nil {
		return "", fmt.Errorf("run persona picker: %w", err)
	}
	m, ok := final.(pickerModel)
	if !ok {
		return "", fmt.Errorf("unexpected picker model type %T", final)
	}
	return m.choice, nil
}
