// platform/platform.go
//
// Package platform assembles a board.Deps for whatever hardware the
// binary was built for. Each build flavour supplies its own Setup in a
// tagged factories file; everything above this package is
// target-independent.
package platform

import (
	"nodeboard-go/board"
	"nodeboard-go/console"
)

// System is the assembled hardware surface handed to main.
type System struct {
	Board   *board.Board
	Console *console.Console
}
