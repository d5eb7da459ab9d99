package fileedit

import (
	"errors"

	"github.com/charmbracelet/huh"
)

// Confirmer asks a yes/no question. It exists so the interactive prompt
// can be swapped for an auto-confirm mode in tests and with --yes.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// PromptConfirmer asks interactively. The default answer is No.
type PromptConfirmer struct{}

func (PromptConfirmer) Confirm(prompt string) (bool, error) {
	var apply bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(prompt).
				Affirmative("Yes").
				Negative("No").
				Value(&apply),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return apply, nil
}

// AutoConfirmer answers every prompt with a fixed answer.
type AutoConfirmer struct {
	Answer bool
}

func (a AutoConfirmer) Confirm(string) (bool, error) {
	return a.Answer, nil
}
