// Package weiqi implements the Go (weiqi/baduk) rule engine on a 19x19 board:
// group and liberty analysis, captures, suicide and simplified ko legality,
// area scoring and replay based undo.
package weiqi

import "strings"

const Size = 19

type Stone int8

const (
	Empty Stone = iota
	Black
	White
)

func (s Stone) Opponent() Stone {
	switch s {
	case Black:
		return White
	case White:
		return Black
	default:
		return Empty
	}
}

func (s Stone) String() string {
	switch s {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return ""
	}
}

// Letter is the one-letter form used in move records and render cells.
func (s Stone) Letter() string {
	switch s {
	case Black:
		return "B"
	case White:
		return "W"
	default:
		return ""
	}
}

type point struct {
	x, y int
}

// Board is indexed [y][x]. It is a value type: assignment is a full copy.
type Board [Size][Size]Stone

func onBoard(x, y int) bool {
	return x >= 0 && x < Size && y >= 0 && y < Size
}

var orthogonal = [4]point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

func neighbors(x, y int) []point {
	out := make([]point, 0, len(orthogonal))
	for _, d := range orthogonal {
		nx, ny := x+d.x, y+d.y
		if onBoard(nx, ny) {
			out = append(out, point{nx, ny})
		}
	}
	return out
}

func (b *Board) At(x, y int) Stone {
	if !onBoard(x, y) {
		return Empty
	}
	return b[y][x]
}

// Hash is the canonical encoding of (board contents, side to move).
func (b *Board) Hash(turn Stone) string {
	var sb strings.Builder
	sb.Grow(Size*(Size+1) + 2)
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			sb.WriteByte('0' + byte(b[y][x]))
		}
		sb.WriteByte('|')
	}
	sb.WriteByte('0' + byte(turn))
	return sb.String()
}

// Count returns the number of stones of the given color on the board.
func (b *Board) Count(color Stone) int {
	n := 0
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			if b[y][x] == color {
				n++
			}
		}
	}
	return n
}

// Cells renders the board for the render contract ("B", "W" or "").
func (b *Board) Cells() [][]string {
	out := make([][]string, Size)
	for y := 0; y < Size; y++ {
		row := make([]string, Size)
		for x := 0; x < Size; x++ {
			row[x] = b[y][x].Letter()
		}
		out[y] = row
	}
	return out
}
