package tui

import (
	huh "github.com/charmbracelet/huh"
)

// NewHuhTheme returns the base huh theme recolored with the package palette.
func NewHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = TitleStyle
	t.Focused.Description = DescStyle
	t.Focused.SelectSelector = SelectedStyle.SetString("> ")
	t.Focused.SelectedOption = SelectedStyle
	t.Focused.ErrorMessage = ErrorStyle
	t.Focused.ErrorIndicator = ErrorStyle

	t.Blurred = t.Focused
	t.Blurred.Title = SubtleStyle
	t.Blurred.SelectSelector = SubtleStyle.SetString("  ")

	return t
}
