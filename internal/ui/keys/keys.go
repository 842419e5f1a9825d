package keys

import (
	"github.com/charmbracelet/bubbles/key"

	"tick/internal/config"
)

// KeyMap holds all key bindings for the task views
type KeyMap struct {
	Quit     key.Binding
	Add      key.Binding
	AddSub   key.Binding
	Up       key.Binding
	Down     key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Toggle   key.Binding
	Timer    key.Binding
	Delete   key.Binding
	Search   key.Binding
	Confirm  key.Binding
	Cancel   key.Binding

	Inbox     key.Binding
	Today     key.Binding
	Logbook   key.Binding
	Templates key.Binding
	Project   key.Binding
	Tag       key.Binding
	Export    key.Binding
	Import    key.Binding
	Reset     key.Binding
}

// FromConfig builds bindings from the user keymap. Scope and data keys are
// fixed; the rest follow the config file.
func FromConfig(k config.Keymap) KeyMap {
	toggleLabel := k.Toggle
	if toggleLabel == " " {
		toggleLabel = "space"
	}

	return KeyMap{
		Quit:     key.NewBinding(key.WithKeys(k.Quit, "ctrl+c"), key.WithHelp(k.Quit, "quit")),
		Add:      key.NewBinding(key.WithKeys(k.Add), key.WithHelp(k.Add, "add")),
		AddSub:   key.NewBinding(key.WithKeys(k.AddSub), key.WithHelp(k.AddSub, "subtask")),
		Up:       key.NewBinding(key.WithKeys(k.Up, "up"), key.WithHelp(k.Up, "up")),
		Down:     key.NewBinding(key.WithKeys(k.Down, "down"), key.WithHelp(k.Down, "down")),
		MoveUp:   key.NewBinding(key.WithKeys(k.MoveUp), key.WithHelp(k.MoveUp, "move up")),
		MoveDown: key.NewBinding(key.WithKeys(k.MoveDn), key.WithHelp(k.MoveDn, "move down")),
		Toggle:   key.NewBinding(key.WithKeys(k.Toggle), key.WithHelp(toggleLabel, "done")),
		Timer:    key.NewBinding(key.WithKeys(k.Timer), key.WithHelp(k.Timer, "timer")),
		Delete:   key.NewBinding(key.WithKeys(k.Delete), key.WithHelp(k.Delete, "delete")),
		Search:   key.NewBinding(key.WithKeys(k.Search), key.WithHelp(k.Search, "search")),
		Confirm:  key.NewBinding(key.WithKeys(k.Confirm), key.WithHelp("↵", "confirm")),
		Cancel:   key.NewBinding(key.WithKeys(k.Cancel), key.WithHelp("esc", "cancel")),

		Inbox:     key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "inbox")),
		Today:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Logbook:   key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "logbook")),
		Templates: key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "templates")),
		Project:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "project")),
		Tag:       key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "tag")),
		Export:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export")),
		Import:    key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "import")),
		Reset:     key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset")),
	}
}
