package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Settings) {}},
		{name: "tiny board", mutate: func(s *Settings) { s.Height, s.Width = 1, 1 }},
		{name: "max board", mutate: func(s *Settings) { s.Height, s.Width = MaxDimension, MaxDimension }},
		{name: "zero height", mutate: func(s *Settings) { s.Height = 0 }, wantErr: true},
		{name: "negative width", mutate: func(s *Settings) { s.Width = -7 }, wantErr: true},
		{name: "too wide", mutate: func(s *Settings) { s.Width = MaxDimension + 1 }, wantErr: true},
		{name: "missing color", mutate: func(s *Settings) { s.Player2Color = "  " }, wantErr: true},
		{name: "same color", mutate: func(s *Settings) { s.Player2Color = " RED " }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)

			err := s.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSettings)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSettings_Normalized(t *testing.T) {
	s := Settings{Player1Color: " red ", Player2Color: "\tblue", Height: 6, Width: 7}.Normalized()

	assert.Equal(t, "red", s.Player1Color)
	assert.Equal(t, "blue", s.Player2Color)
}

func TestGameStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusActive.IsTerminal())
	assert.True(t, StatusWon.IsTerminal())
	assert.True(t, StatusTied.IsTerminal())
	assert.True(t, StatusAbandoned.IsTerminal())
}

func TestOutcome_Placed(t *testing.T) {
	assert.True(t, OutcomeContinue.Placed())
	assert.True(t, OutcomeWin.Placed())
	assert.True(t, OutcomeTie.Placed())
	assert.False(t, OutcomeColumnFull.Placed())
	assert.False(t, OutcomeInvalidColumn.Placed())
	assert.False(t, OutcomeIgnored.Placed())
}

func TestGameResult_DurationSeconds(t *testing.T) {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	assert.Equal(t, 90, GameResult{CreatedAt: start, FinishedAt: start.Add(90 * time.Second)}.DurationSeconds())
	assert.Equal(t, 0, GameResult{CreatedAt: start, FinishedAt: start.Add(-time.Second)}.DurationSeconds())
}
