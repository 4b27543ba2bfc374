package ui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/substantialcattle5/cleanfiles/internal/classify"
)

// ErrCancelled is returned when the user interrupts a prompt
var ErrCancelled = errors.New("operation cancelled")

func promptError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return ErrCancelled
	}
	return fmt.Errorf("prompt failed: %w", err)
}

// PromptChooser asks through interactive terminal menus
type PromptChooser struct{}

// NewPromptChooser creates a terminal chooser
func NewPromptChooser() *PromptChooser {
	return &PromptChooser{}
}

// ChooseAction shows the action menu, then asks whether the choice should
// apply to every remaining group.
func (p *PromptChooser) ChooseAction(labels []string) (int, bool, error) {
	actionPrompt := promptui.Select{
		Label: "Available actions",
		Items: labels,
		Size:  len(labels),
		Templates: &promptui.SelectTemplates{
			Selected: "Action: {{ . }}",
			Active:   "▸ {{ . | cyan }}",
			Inactive: "  {{ . }}",
		},
	}

	idx, _, err := actionPrompt.Run()
	if err != nil {
		return 0, false, promptError(err)
	}

	stickyPrompt := promptui.Prompt{
		Label:     "Apply to all remaining groups",
		IsConfirm: true,
	}

	_, err = stickyPrompt.Run()
	if err != nil && !errors.Is(err, promptui.ErrAbort) {
		return 0, false, promptError(err)
	}

	return idx + 1, err == nil, nil
}

// SelectFile asks which path to keep and returns its 0-based index
func (p *PromptChooser) SelectFile(paths []string) (int, error) {
	filePrompt := promptui.Select{
		Label: "Select file to keep",
		Items: paths,
		Size:  min(len(paths), 10),
	}

	idx, _, err := filePrompt.Run()
	if err != nil {
		return 0, promptError(err)
	}
	return idx, nil
}

// NewName asks for a new base name for path
func (p *PromptChooser) NewName(path string) (string, error) {
	namePrompt := promptui.Prompt{
		Label:     fmt.Sprintf("New name for %s", filepath.Base(path)),
		Default:   filepath.Base(path),
		AllowEdit: true,
		Validate: func(input string) error {
			input = strings.TrimSpace(input)
			if input == "" {
				return errors.New("name must not be empty")
			}
			if strings.ContainsRune(input, filepath.Separator) {
				return errors.New("name must not contain a path separator")
			}
			return nil
		},
	}

	result, err := namePrompt.Run()
	if err != nil {
		return "", promptError(err)
	}
	return strings.TrimSpace(result), nil
}

type modeItem struct {
	Number int
	Name   string
	Help   string
}

// SelectMode asks which mode to run in
func (p *PromptChooser) SelectMode() (classify.Mode, error) {
	var items []modeItem
	for _, m := range classify.Modes() {
		items = append(items, modeItem{Number: int(m), Name: m.String(), Help: m.Description()})
	}

	modePrompt := promptui.Select{
		Label: "Available modes",
		Items: items,
		Size:  len(items),
		Templates: &promptui.SelectTemplates{
			Selected: "Mode: {{ .Name }}",
			Active:   "▸ {{ .Number }}. {{ .Help | cyan }}",
			Inactive: "  {{ .Number }}. {{ .Help }}",
			Details: `
{{ "Name:" | faint }}	{{ .Name }}`,
		},
	}

	idx, _, err := modePrompt.Run()
	if err != nil {
		return 0, promptError(err)
	}
	return classify.Modes()[idx], nil
}
