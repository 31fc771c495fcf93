package domain

// Cell addresses one square of the grid. Row 0 is the top row.
type Cell struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// Board is the grid of a single game. Pieces fall to the lowest empty row of
// a column, so the occupied cells of any column are a contiguous run that
// starts at the bottom row.
type Board struct {
	height int
	width  int
	cells  [][]*Player
}

// directions a four-in-a-row line can extend in from its anchor cell:
// horizontal, vertical, diagonal down-right and diagonal down-left.
var directions = [4]struct{ dRow, dCol int }{
	{0, 1},
	{1, 0},
	{1, 1},
	{1, -1},
}

// NewBoard creates an empty height x width board. Dimensions are not
// validated here; boards with fewer than four rows and columns simply never
// produce a win.
func NewBoard(height, width int) *Board {
	if height < 0 {
		height = 0
	}
	if width < 0 {
		width = 0
	}

	cells := make([][]*Player, height)
	for i := range cells {
		cells[i] = make([]*Player, width)
	}

	return &Board{height: height, width: width, cells: cells}
}

func (b *Board) Height() int { return b.height }
func (b *Board) Width() int  { return b.width }

// At returns the player holding (row, column), or nil for an empty or
// out-of-range cell.
func (b *Board) At(row, column int) *Player {
	if !b.inBounds(row, column) {
		return nil
	}
	return b.cells[row][column]
}

// LowestEmptyRow scans column from the bottom up and returns the first empty
// row, or NoRow when the column is full or does not exist.
func (b *Board) LowestEmptyRow(column int) int {
	if column < 0 || column >= b.width {
		return NoRow
	}

	for row := b.height - 1; row >= 0; row-- {
		if b.cells[row][column] == nil {
			return row
		}
	}

	return NoRow
}

// PlacePiece writes player into (row, column) without any checks. Callers
// obtain row from LowestEmptyRow.
func (b *Board) PlacePiece(row, column int, player *Player) {
	b.cells[row][column] = player
}

// CheckWin reports whether player holds four cells in a row anywhere on the
// board.
func (b *Board) CheckWin(player *Player) bool {
	_, ok := b.WinningLine(player)
	return ok
}

// WinningLine returns the first four-in-a-row held by player, scanning anchors
// in row-major order and directions in the order horizontal, vertical,
// down-right, down-left.
func (b *Board) WinningLine(player *Player) ([]Cell, bool) {
	if player == nil {
		return nil, false
	}

	for row := 0; row < b.height; row++ {
		for column := 0; column < b.width; column++ {
			for _, d := range directions {
				if b.lineHeldBy(row, column, d.dRow, d.dCol, player) {
					line := make([]Cell, ToWin)
					for i := range line {
						line[i] = Cell{Row: row + i*d.dRow, Column: column + i*d.dCol}
					}
					return line, true
				}
			}
		}
	}

	return nil, false
}

// CheckTie reports whether every cell is occupied. It must only be consulted
// after CheckWin, since a full board can also hold a winning line.
func (b *Board) CheckTie() bool {
	for _, row := range b.cells {
		for _, cell := range row {
			if cell == nil {
				return false
			}
		}
	}
	return true
}

// Colors returns the grid as piece colors, "" for empty cells.
func (b *Board) Colors() [][]string {
	grid := make([][]string, b.height)
	for row := range b.cells {
		grid[row] = make([]string, b.width)
		for column, cell := range b.cells[row] {
			if cell != nil {
				grid[row][column] = cell.Color
			}
		}
	}
	return grid
}

func (b *Board) inBounds(row, column int) bool {
	return row >= 0 && row < b.height && column >= 0 && column < b.width
}

// lineHeldBy checks the ToWin cells starting at (row, column) and stepping by
// (dRow, dCol). Every cell has to be on the board.
func (b *Board) lineHeldBy(row, column, dRow, dCol int, player *Player) bool {
	for i := 0; i < ToWin; i++ {
		r, c := row+i*dRow, column+i*dCol
		if !b.inBounds(r, c) || b.cells[r][c] != player {
			return false
		}
	}
	return true
}
