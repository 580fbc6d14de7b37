package tui

import (
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/foliochat/folio/internal/backend"
	"github.com/foliochat/folio/internal/core/validate"
	"github.com/foliochat/folio/internal/styles"
)

// ContactForm wraps a huh.Form collecting a message for the site owner.
type ContactForm struct {
	form    *huh.Form
	name    string
	email   string
	message string
}

// NewContactForm creates a contact form. Any non-empty value in prefill is
// used as the initial field value.
func NewContactForm(prefill backend.Notification) *ContactForm {
	f := &ContactForm{
		name:    prefill.Name,
		email:   prefill.Email,
		message: prefill.Message,
	}

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&f.name).
				Validate(func(s string) error {
					return validate.Required("name", s)
				}),
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&f.email).
				Validate(validate.Email),
			huh.NewText().
				Title("Message").
				Lines(5).
				Value(&f.message).
				Validate(func(s string) error {
					return validate.Required("message", s)
				}),
		),
	).WithTheme(styles.FormTheme()).
		WithShowHelp(true)

	return f
}

// Form returns the underlying huh.Form for tea.Model integration.
func (f *ContactForm) Form() *huh.Form {
	return f.form
}

// Submitted reports whether every field passed validation and the form
// completed.
func (f *ContactForm) Submitted() bool {
	return f.form.State == huh.StateCompleted
}

// Cancelled reports whether the user aborted the form.
func (f *ContactForm) Cancelled() bool {
	return f.form.State == huh.StateAborted
}

// Notification returns the trimmed field values.
func (f *ContactForm) Notification() backend.Notification {
	return backend.Notification{
		Name:    strings.TrimSpace(f.name),
		Email:   strings.TrimSpace(f.email),
		Message: strings.TrimSpace(f.message),
	}
}

// View renders the form.
func (f *ContactForm) View() string {
	return f.form.View()
}
