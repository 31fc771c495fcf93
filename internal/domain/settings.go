package domain

import (
	"fmt"
	"strings"
)

// Settings is everything needed to set up a game: the two piece colors and
// the board dimensions.
type Settings struct {
	Player1Color string `json:"player1Color" yaml:"player1_color"`
	Player2Color string `json:"player2Color" yaml:"player2_color"`
	Height       int    `json:"height" yaml:"height"`
	Width        int    `json:"width" yaml:"width"`
}

func DefaultSettings() Settings {
	return Settings{
		Player1Color: "red",
		Player2Color: "yellow",
		Height:       DefaultHeight,
		Width:        DefaultWidth,
	}
}

// Normalized trims the colors.
func (s Settings) Normalized() Settings {
	s.Player1Color = strings.TrimSpace(s.Player1Color)
	s.Player2Color = strings.TrimSpace(s.Player2Color)
	return s
}

// Validate rejects settings a game cannot be built from. Boards smaller than
// 4x4 are allowed; they end in a tie.
func (s Settings) Validate() error {
	s = s.Normalized()

	if s.Player1Color == "" || s.Player2Color == "" {
		return fmt.Errorf("%w: both players need a color", ErrInvalidSettings)
	}
	if strings.EqualFold(s.Player1Color, s.Player2Color) {
		return fmt.Errorf("%w: players must use different colors", ErrInvalidSettings)
	}
	if s.Height < 1 || s.Height > MaxDimension {
		return fmt.Errorf("%w: height must be between 1 and %d, got %d", ErrInvalidSettings, MaxDimension, s.Height)
	}
	if s.Width < 1 || s.Width > MaxDimension {
		return fmt.Errorf("%w: width must be between 1 and %d, got %d", ErrInvalidSettings, MaxDimension, s.Width)
	}

	return nil
}
