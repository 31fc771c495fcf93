package game

import "github.com/iamasit07/connect-four/internal/domain"

// Renderer is the output half of a surface. Errors are logged by the session
// and never change game state.
type Renderer interface {
	// ResetBoard clears the surface and draws an empty height x width grid
	// with one selector per column.
	ResetBoard(height, width int) error
	RenderPiece(row, column int, color string) error
	Announce(message string) error
}

// ColumnHandler receives the index of a selected column.
type ColumnHandler func(column int)

// InputSource is the input half of a surface. The returned function revokes
// the registration. Sources must not hold their own locks while calling the
// handler, since the handler may revoke itself.
type InputSource interface {
	OnColumnSelected(handler ColumnHandler) (unsubscribe func())
}

// Surface is a complete rendering and input collaborator for one session.
type Surface interface {
	Renderer
	InputSource
}

// Observer is told about session changes, in the order they happened. Calls
// happen after the session state lock has been released, so observers may
// read the session, but must not call ApplyMove or End on it.
type Observer interface {
	MoveApplied(snapshot domain.Snapshot)
	SessionEnded(snapshot domain.Snapshot)
}
