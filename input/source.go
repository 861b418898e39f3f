package input

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Source is the platform side of input.
type Source interface {
	IsKeyPressed(k ebiten.Key) bool
	CursorPosition() (int, int)
	Now() time.Time
}

// EbitenSource reads the live ebiten window state.
type EbitenSource struct{}

func (EbitenSource) IsKeyPressed(k ebiten.Key) bool { return ebiten.IsKeyPressed(k) }
func (EbitenSource) CursorPosition() (int, int)     { return ebiten.CursorPosition() }
func (EbitenSource) Now() time.Time                 { return time.Now() }
