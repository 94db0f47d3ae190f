// Package xiangqi holds the Chinese chess rules: board model, per-piece move
// generation, check and flying-general detection, legality filtering, and a
// game with snapshot undo and repetition tracking.
package xiangqi

import "github.com/rocketscienceinc/boardgames/internal/entity"

const (
	Cols = 9
	Rows = 10
)

type Color int8

const (
	NoColor Color = -1
	Red     Color = 0
	Black   Color = 1
)

func (c Color) Opponent() Color {
	switch c {
	case Red:
		return Black
	case Black:
		return Red
	default:
		return NoColor
	}
}

func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Black:
		return "black"
	default:
		return ""
	}
}

type Kind int8

const (
	KindNone Kind = iota
	General       // 帥 / 將
	Advisor       // 仕 / 士
	Elephant      // 相 / 象
	Horse         // 傌 / 馬
	Chariot       // 俥 / 車
	Cannon        // 炮 / 砲
	Soldier       // 兵 / 卒
)

var kindLetters = [...]byte{'.', 'G', 'A', 'E', 'H', 'R', 'C', 'S'}

func (k Kind) Letter() string {
	if k <= KindNone || int(k) >= len(kindLetters) {
		return ""
	}
	return string(kindLetters[k])
}

// Piece packs color and kind: 0 is empty, positive is red, negative is black.
type Piece int8

func NewPiece(color Color, kind Kind) Piece {
	if kind == KindNone || color == NoColor {
		return 0
	}
	if color == Red {
		return Piece(kind)
	}
	return -Piece(kind)
}

func (p Piece) Kind() Kind {
	if p < 0 {
		return Kind(-p)
	}
	return Kind(p)
}

func (p Piece) Color() Color {
	switch {
	case p > 0:
		return Red
	case p < 0:
		return Black
	default:
		return NoColor
	}
}

func (p Piece) IsEmpty() bool {
	return p == 0
}

// Code is the two-letter render form, e.g. "rG" or "bS"; empty squares give "".
func (p Piece) Code() string {
	if p == 0 {
		return ""
	}
	return p.Color().String()[:1] + p.Kind().Letter()
}

// Board is indexed [y][x] with Black on rows 0..4 and Red on rows 5..9.
// It is a value type: assignment is a full copy.
type Board [Rows][Cols]Piece

type Move struct {
	From entity.Coord `json:"from"`
	To   entity.Coord `json:"to"`
}
