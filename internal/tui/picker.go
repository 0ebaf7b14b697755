package tui

import (
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	huh "github.com/charmbracelet/huh"
	"github.com/jakoblorz/go-swfdebug/internal/models"
)

// PlatformPicker asks which platform an attach request targets.
type PlatformPicker struct {
	theme  *huh.Theme
	input  io.Reader
	output io.Writer
}

// NewPlatformPicker constructs a picker reading from in and drawing to out.
func NewPlatformPicker(in io.Reader, out io.Writer) *PlatformPicker {
	return &PlatformPicker{
		theme:  NewHuhTheme(),
		input:  in,
		output: out,
	}
}

// Pick shows the platforms and returns the chosen one. Platforms declared in
// asconfig.json are offered first. Returns "" when the user aborts.
func (p *PlatformPicker) Pick(declared []models.Platform) (models.Platform, error) {
	selected := ""

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Options(platformOptions(declared)...).
				Value(&selected),
		).
			Title("Attach Platform").
			Description("Select the device platform to attach to."),
	).
		WithTheme(p.theme).
		WithShowHelp(true).
		WithInput(p.input).
		WithOutput(p.output).
		WithProgramOptions(tea.WithAltScreen()).
		WithKeyMap(selectKeyMap())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", nil
		}
		return "", fmt.Errorf("failed to pick platform: %w", err)
	}

	return models.ParsePlatform(selected)
}

func platformOptions(declared []models.Platform) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(models.Platforms))
	seen := make(map[models.Platform]bool, len(models.Platforms))
	for _, platform := range declared {
		if !platform.Known() || seen[platform] {
			continue
		}
		seen[platform] = true
		opts = append(opts, huh.NewOption(string(platform)+" (asconfig.json)", string(platform)))
	}
	for _, platform := range models.Platforms {
		if !seen[platform] {
			opts = append(opts, huh.NewOption(string(platform), string(platform)))
		}
	}
	return opts
}

func selectKeyMap() *huh.KeyMap {
	keyMap := huh.NewDefaultKeyMap()
	keyMap.Select.Filter.SetEnabled(false)
	keyMap.Select.Submit.SetKeys("enter", " ")
	keyMap.Select.Submit.SetHelp("space/enter", "select")
	return keyMap
}
