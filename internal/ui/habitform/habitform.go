package habitform

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/adibhanna/startracker/internal/models"
)

// New builds the add/edit form. Submitted values are written into in.
func New(title string, in *models.HabitInput) *huh.Form {
	if in.Color == "" {
		in.Color = models.DefaultColor
	}
	if in.Icon == "" {
		in.Icon = models.DefaultIcon
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title(title),
			huh.NewInput().
				Title("Habit Name").
				Placeholder("e.g. Drink water").
				CharLimit(60).
				Value(&in.Name).
				Validate(ValidateName),
			huh.NewInput().
				Title("Description").
				Placeholder("Optional").
				CharLimit(120).
				Value(&in.Description),
			huh.NewSelect[string]().
				Title("Color").
				Options(colorOptions(in.Color)...).
				Value(&in.Color),
			huh.NewSelect[string]().
				Title("Icon").
				Options(iconOptions(in.Icon)...).
				Value(&in.Icon),
		),
	).WithTheme(huh.ThemeDracula()).WithShowHelp(true)
}

func ValidateName(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("habit name cannot be empty")
	}
	return nil
}

// colorOptions lists the palette. A stored color outside the palette IDs,
// such as a wrapped index, is offered first so the select keeps it.
func colorOptions(current string) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(models.Palette)+1)
	if !slices.ContainsFunc(models.Palette, func(c models.PaletteColor) bool { return c.ID == current }) {
		c := models.ColorFor(current)
		options = append(options, colorOption(fmt.Sprintf("%s (%s)", c.Name, current), c.Hex, current))
	}
	for _, c := range models.Palette {
		options = append(options, colorOption(c.Name, c.Hex, c.ID))
	}
	return options
}

func colorOption(name, hex, value string) huh.Option[string] {
	swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("●")
	return huh.NewOption(swatch+" "+name, value)
}

// iconOptions lists models.Icons, with an unlisted current icon first.
func iconOptions(current string) []huh.Option[string] {
	icons := models.Icons
	if !slices.Contains(icons, current) {
		icons = append([]string{current}, icons...)
	}
	return huh.NewOptions(icons...)
}
