package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/alexanderramin/timesheet/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var errPasswordRequired = errors.New("--password is required when stdin is not a terminal")

func huhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// promptForm applies the shared theme and key map. Prompts draw on stderr
// and esc cancels like ctrl+c.
func promptForm(groups ...*huh.Group) *huh.Form {
	keys := huh.NewDefaultKeyMap()
	keys.Quit = key.NewBinding(key.WithKeys("ctrl+c", "esc"))

	return huh.NewForm(groups...).
		WithTheme(huhTheme()).
		WithKeyMap(keys).
		WithShowHelp(false).
		WithProgramOptions(tea.WithOutput(os.Stderr))
}

// passwordForm asks for a new password twice.
func passwordForm(password, confirm *string) *huh.Form {
	return promptForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(password).
				Validate(validatePassword),
			huh.NewInput().
				Title("Repeat password").
				EchoMode(huh.EchoModePassword).
				Value(confirm).
				Validate(func(s string) error {
					if s != *password {
						return errors.New("passwords do not match")
					}
					return nil
				}),
		),
	)
}

func validatePassword(s string) error {
	if len(s) < 4 {
		return errors.New("use at least 4 characters")
	}
	return nil
}

// readPassword returns flagValue when given, otherwise prompts on a terminal.
func readPassword(app *App, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if !app.interactive() {
		return "", errPasswordRequired
	}
	var password, confirm string
	if err := passwordForm(&password, &confirm).Run(); err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return password, nil
}

// confirmForm asks a yes/no question.
func confirmForm(title string, result *bool) *huh.Form {
	return promptForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	)
}

// confirm returns true without asking when force is set or no terminal is
// attached.
func confirm(app *App, force bool, title string) (bool, error) {
	if force || !app.interactive() {
		return true, nil
	}
	ok := false
	if err := confirmForm(title, &ok).Run(); err != nil {
		return false, err
	}
	return ok, nil
}
