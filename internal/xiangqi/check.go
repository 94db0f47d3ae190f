package xiangqi

import "github.com/rocketscienceinc/boardgames/internal/entity"

// FlyingGeneral reports the two Generals facing each other on one file with
// nothing in between.
func FlyingGeneral(b *Board) bool {
	red, ok := b.FindGeneral(Red)
	if !ok {
		return false
	}
	black, ok := b.FindGeneral(Black)
	if !ok {
		return false
	}
	if red.X != black.X {
		return false
	}

	top, bottom := black.Y, red.Y
	if top > bottom {
		top, bottom = bottom, top
	}
	for y := top + 1; y < bottom; y++ {
		if b[y][red.X] != 0 {
			return false
		}
	}
	return true
}

// IsAttacked reports whether any piece of color by can move onto target.
func IsAttacked(b *Board, target entity.Coord, by Color) bool {
	for y := 0; y < Rows; y++ {
		for x := 0; x < Cols; x++ {
			pc := b[y][x]
			if pc == 0 || pc.Color() != by {
				continue
			}
			for _, to := range PseudoMoves(b, x, y) {
				if to == target {
					return true
				}
			}
		}
	}
	return false
}

// IsInCheck reports whether color's General is attacked. A flying-general
// face-off counts as check for either side.
func IsInCheck(b *Board, color Color) bool {
	general, ok := b.FindGeneral(color)
	if !ok {
		return false
	}
	if FlyingGeneral(b) {
		return true
	}
	return IsAttacked(b, general, color.Opponent())
}
