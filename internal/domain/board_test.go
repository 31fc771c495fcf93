package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red    = NewPlayer("red")
	yellow = NewPlayer("yellow")
)

// boardFromRows builds a board from rows of 'R', 'Y' and '.' characters,
// top row first.
func boardFromRows(t *testing.T, rows ...string) *Board {
	t.Helper()
	require.NotEmpty(t, rows)

	b := NewBoard(len(rows), len(rows[0]))
	for r, line := range rows {
		require.Len(t, line, b.Width(), "row %d", r)
		for c, ch := range line {
			switch ch {
			case 'R':
				b.PlacePiece(r, c, red)
			case 'Y':
				b.PlacePiece(r, c, yellow)
			}
		}
	}
	return b
}

func TestNewBoard_Empty(t *testing.T) {
	b := NewBoard(6, 7)

	assert.Equal(t, 6, b.Height())
	assert.Equal(t, 7, b.Width())
	for r := 0; r < 6; r++ {
		for c := 0; c < 7; c++ {
			assert.Nil(t, b.At(r, c))
		}
	}
	assert.False(t, b.CheckTie())
}

func TestNewBoard_NegativeDimensions(t *testing.T) {
	b := NewBoard(-1, -3)

	assert.Equal(t, 0, b.Height())
	assert.Equal(t, 0, b.Width())
	assert.Equal(t, NoRow, b.LowestEmptyRow(0))
}

func TestLowestEmptyRow_FillsBottomUp(t *testing.T) {
	for _, dims := range [][2]int{{6, 7}, {4, 4}, {1, 3}, {10, 5}} {
		height, width := dims[0], dims[1]
		b := NewBoard(height, width)

		for column := 0; column < width; column++ {
			for k := 0; k < height; k++ {
				row := b.LowestEmptyRow(column)
				require.Equal(t, height-1-k, row, "%dx%d column %d after %d pieces", height, width, column, k)
				b.PlacePiece(row, column, red)
			}
			assert.Equal(t, NoRow, b.LowestEmptyRow(column), "%dx%d column %d full", height, width, column)
		}
	}
}

func TestLowestEmptyRow_OutOfRange(t *testing.T) {
	b := NewBoard(6, 7)

	assert.Equal(t, NoRow, b.LowestEmptyRow(-1))
	assert.Equal(t, NoRow, b.LowestEmptyRow(7))
}

func TestLowestEmptyRow_ColumnsIndependent(t *testing.T) {
	b := NewBoard(6, 7)
	b.PlacePiece(b.LowestEmptyRow(3), 3, red)
	b.PlacePiece(b.LowestEmptyRow(3), 3, yellow)

	assert.Equal(t, 3, b.LowestEmptyRow(3))
	assert.Equal(t, 5, b.LowestEmptyRow(2))
	assert.Equal(t, 5, b.LowestEmptyRow(4))
}

func TestCheckWin_Directions(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		want []Cell
	}{
		{
			name: "horizontal",
			rows: []string{
				".......",
				".......",
				".......",
				".......",
				".......",
				"..RRRR.",
			},
			want: []Cell{{5, 2}, {5, 3}, {5, 4}, {5, 5}},
		},
		{
			name: "vertical",
			rows: []string{
				".......",
				".......",
				"R......",
				"R......",
				"R......",
				"R......",
			},
			want: []Cell{{2, 0}, {3, 0}, {4, 0}, {5, 0}},
		},
		{
			name: "diagonal down-right",
			rows: []string{
				".......",
				".......",
				"...R...",
				"....R..",
				".....R.",
				"......R",
			},
			want: []Cell{{2, 3}, {3, 4}, {4, 5}, {5, 6}},
		},
		{
			name: "diagonal down-left",
			rows: []string{
				"...R...",
				"..R....",
				".R.....",
				"R......",
				".......",
				".......",
			},
			want: []Cell{{0, 3}, {1, 2}, {2, 1}, {3, 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := boardFromRows(t, tt.rows...)

			assert.True(t, b.CheckWin(red))
			assert.False(t, b.CheckWin(yellow))

			line, ok := b.WinningLine(red)
			require.True(t, ok)
			assert.Equal(t, tt.want, line)
		})
	}
}

func TestCheckWin_DiagonalDownLeftScenario(t *testing.T) {
	b := NewBoard(6, 7)
	for _, cell := range []Cell{{0, 3}, {1, 2}, {2, 1}, {3, 0}} {
		b.PlacePiece(cell.Row, cell.Column, yellow)
	}

	assert.True(t, b.CheckWin(yellow))
	assert.False(t, b.CheckWin(red))
}

func TestCheckWin_TranslationInvariant(t *testing.T) {
	const height, width = 6, 7

	for _, d := range directions {
		for row := 0; row < height; row++ {
			for column := 0; column < width; column++ {
				endRow := row + (ToWin-1)*d.dRow
				endCol := column + (ToWin-1)*d.dCol
				if endRow < 0 || endRow >= height || endCol < 0 || endCol >= width {
					continue
				}

				b := NewBoard(height, width)
				for i := 0; i < ToWin; i++ {
					b.PlacePiece(row+i*d.dRow, column+i*d.dCol, red)
				}

				assert.True(t, b.CheckWin(red), "line from (%d,%d) step (%d,%d)", row, column, d.dRow, d.dCol)
			}
		}
	}
}

func TestCheckWin_NoWrapAround(t *testing.T) {
	tests := []struct {
		name string
		rows []string
	}{
		{
			name: "horizontal across the right edge",
			rows: []string{
				"....RRR",
				"R......",
				".......",
				".......",
			},
		},
		{
			name: "down-left past the left edge",
			rows: []string{
				"..R....",
				".R.....",
				"R......",
				"......R",
			},
		},
		{
			name: "vertical three at the bottom",
			rows: []string{
				".......",
				"...R...",
				"...R...",
				"...R...",
			},
		},
		{
			name: "broken by opponent",
			rows: []string{
				".......",
				".......",
				".......",
				"RRYRR..",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := boardFromRows(t, tt.rows...)
			assert.False(t, b.CheckWin(red))
		})
	}
}

func TestCheckWin_SmallBoardNeverWins(t *testing.T) {
	b := boardFromRows(t,
		"RRR",
		"RRR",
		"RRR",
	)

	assert.False(t, b.CheckWin(red))
	assert.True(t, b.CheckTie())
}

func TestCheckWin_NilPlayer(t *testing.T) {
	b := NewBoard(6, 7)

	assert.False(t, b.CheckWin(nil))
}

func TestCheckWin_PlayerIdentity(t *testing.T) {
	impostor := NewPlayer("red")
	b := boardFromRows(t,
		"....",
		"....",
		"....",
		"RRRR",
	)

	assert.True(t, b.CheckWin(red))
	assert.False(t, b.CheckWin(impostor))
}

func TestCheckTie(t *testing.T) {
	full := boardFromRows(t,
		"YRYRRYR",
		"RRRYYYR",
		"YYYRRRY",
		"RRRYYYR",
		"RYYYRRY",
		"RRYYRYY",
	)
	assert.True(t, full.CheckTie())
	assert.False(t, full.CheckWin(red))
	assert.False(t, full.CheckWin(yellow))

	almost := boardFromRows(t,
		".RYRRYR",
		"RRRYYYR",
		"YYYRRRY",
		"RRRYYYR",
		"RYYYRRY",
		"RRYYRYY",
	)
	assert.False(t, almost.CheckTie())
}

func TestCheckTie_FullAndWinning(t *testing.T) {
	b := boardFromRows(t,
		"YYRR",
		"RRYY",
		"YYRR",
		"RRRR",
	)

	// Both hold: callers must check the win first.
	assert.True(t, b.CheckTie())
	assert.True(t, b.CheckWin(red))
}

func TestColors(t *testing.T) {
	b := boardFromRows(t,
		"..",
		"RY",
	)

	assert.Equal(t, [][]string{{"", ""}, {"red", "yellow"}}, b.Colors())
}

func TestAt_OutOfRange(t *testing.T) {
	b := boardFromRows(t, "R")

	assert.Equal(t, red, b.At(0, 0))
	assert.Nil(t, b.At(-1, 0))
	assert.Nil(t, b.At(0, 1))
}
