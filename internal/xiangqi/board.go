package xiangqi

import (
	"strings"

	"github.com/rocketscienceinc/boardgames/internal/entity"
)

func onBoard(x, y int) bool {
	return x >= 0 && x < Cols && y >= 0 && y < Rows
}

// inPalace reports whether (x, y) lies in color's 3x3 palace.
func inPalace(color Color, x, y int) bool {
	if x < 3 || x > 5 {
		return false
	}
	switch color {
	case Black:
		return y >= 0 && y <= 2
	case Red:
		return y >= 7 && y <= 9
	default:
		return false
	}
}

// ownSide reports whether row y is on color's side of the river.
func ownSide(color Color, y int) bool {
	switch color {
	case Black:
		return y <= 4
	case Red:
		return y >= 5
	default:
		return false
	}
}

func crossedRiver(color Color, y int) bool {
	return !ownSide(color, y)
}

// forward is the row delta of a soldier step: red moves up, black moves down.
func forward(color Color) int {
	if color == Red {
		return -1
	}
	return 1
}

func NewInitialBoard() Board {
	var b Board
	back := [Cols]Kind{Chariot, Horse, Elephant, Advisor, General, Advisor, Elephant, Horse, Chariot}

	for x, kind := range back {
		b[0][x] = NewPiece(Black, kind)
		b[9][x] = NewPiece(Red, kind)
	}
	for _, x := range []int{1, 7} {
		b[2][x] = NewPiece(Black, Cannon)
		b[7][x] = NewPiece(Red, Cannon)
	}
	for x := 0; x < Cols; x += 2 {
		b[3][x] = NewPiece(Black, Soldier)
		b[6][x] = NewPiece(Red, Soldier)
	}

	return b
}

func (b *Board) At(x, y int) Piece {
	if !onBoard(x, y) {
		return 0
	}
	return b[y][x]
}

func (b *Board) Set(x, y int, p Piece) {
	if onBoard(x, y) {
		b[y][x] = p
	}
}

// Apply moves the piece on m.From to m.To without any rule checks and returns
// whatever stood on the destination.
func (b *Board) Apply(m Move) Piece {
	piece := b[m.From.Y][m.From.X]
	captured := b[m.To.Y][m.To.X]
	b[m.To.Y][m.To.X] = piece
	b[m.From.Y][m.From.X] = 0
	return captured
}

func (b *Board) FindGeneral(color Color) (entity.Coord, bool) {
	want := NewPiece(color, General)
	for y := 0; y < Rows; y++ {
		for x := 0; x < Cols; x++ {
			if b[y][x] == want {
				return entity.Coord{X: x, Y: y}, true
			}
		}
	}
	return entity.Coord{}, false
}

// Hash is the canonical encoding of (board contents, side to move).
func (b *Board) Hash(turn Color) string {
	var sb strings.Builder
	sb.Grow(Rows*(Cols*2+1) + 2)
	sb.WriteString(turn.String())
	for y := 0; y < Rows; y++ {
		sb.WriteByte('|')
		for x := 0; x < Cols; x++ {
			if code := b[y][x].Code(); code != "" {
				sb.WriteString(code)
			} else {
				sb.WriteString("..")
			}
		}
	}
	return sb.String()
}

func (b *Board) Cells() [][]string {
	out := make([][]string, Rows)
	for y := 0; y < Rows; y++ {
		row := make([]string, Cols)
		for x := 0; x < Cols; x++ {
			row[x] = b[y][x].Code()
		}
		out[y] = row
	}
	return out
}
