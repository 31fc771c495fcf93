package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/iamasit07/connect-four/internal/domain"
)

type setupForm struct {
	Player1 string
	Player2 string
	Height  string
	Width   string
}

func newSetupForm(settings domain.Settings) *setupForm {
	return &setupForm{
		Player1: settings.Player1Color,
		Player2: settings.Player2Color,
		Height:  strconv.Itoa(settings.Height),
		Width:   strconv.Itoa(settings.Width),
	}
}

// runSetup asks for colors and board size, prefilled with settings.
func runSetup(settings domain.Settings) (domain.Settings, error) {
	f := newSetupForm(settings)

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Player 1 color").Value(&f.Player1).Validate(validateColor),
			huh.NewInput().Title("Player 2 color").Value(&f.Player2).Validate(f.validateSecondColor),
		),
		huh.NewGroup(
			huh.NewInput().Title("Board height (rows)").Value(&f.Height).Validate(validateDimension),
			huh.NewInput().Title("Board width (columns)").Value(&f.Width).Validate(validateDimension),
		),
	).Run()
	if err != nil {
		return domain.Settings{}, err
	}

	return f.settings()
}

func (f *setupForm) settings() (domain.Settings, error) {
	height, err := strconv.Atoi(strings.TrimSpace(f.Height))
	if err != nil {
		return domain.Settings{}, fmt.Errorf("height: %w", err)
	}
	width, err := strconv.Atoi(strings.TrimSpace(f.Width))
	if err != nil {
		return domain.Settings{}, fmt.Errorf("width: %w", err)
	}

	settings := domain.Settings{
		Player1Color: f.Player1,
		Player2Color: f.Player2,
		Height:       height,
		Width:        width,
	}.Normalized()

	if err := settings.Validate(); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}

func validateColor(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("color is required")
	}

	return nil
}

func (f *setupForm) validateSecondColor(s string) error {
	if err := validateColor(s); err != nil {
		return err
	}
	if strings.EqualFold(strings.TrimSpace(s), strings.TrimSpace(f.Player1)) {
		return fmt.Errorf("players need different colors")
	}

	return nil
}

func validateDimension(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > domain.MaxDimension {
		return fmt.Errorf("must be a whole number from 1 to %d", domain.MaxDimension)
	}

	return nil
}
