package helpers

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
)

// NewInput builds a form field with a steady cursor.
func NewInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// ClearForm empties every input and removes focus.
func ClearForm(inputs []textinput.Model) {
	for i := range inputs {
		inputs[i].Reset()
		inputs[i].Blur()
	}
}

// FocusInput focuses inputs[index] and blurs the others.
func FocusInput(inputs []textinput.Model, index int) {
	for i := range inputs {
		if i == index {
			inputs[i].Focus()
			continue
		}
		inputs[i].Blur()
	}
}
