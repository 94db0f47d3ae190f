package xiangqi

import "github.com/rocketscienceinc/boardgames/internal/entity"

var (
	orthogonalDirs = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonalDirs   = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

// horse jumps: destination offset plus the orthogonal leg that must be empty.
var horseJumps = [8]struct {
	Dx, Dy int
	Lx, Ly int
}{
	{2, 1, 1, 0},
	{2, -1, 1, 0},
	{-2, 1, -1, 0},
	{-2, -1, -1, 0},
	{1, 2, 0, 1},
	{-1, 2, 0, 1},
	{1, -2, 0, -1},
	{-1, -2, 0, -1},
}

// PseudoMoves lists the destinations of the piece on (x, y) by movement rules
// alone; it does not look at whether the mover is left in check.
func PseudoMoves(b *Board, x, y int) []entity.Coord {
	if !onBoard(x, y) {
		return nil
	}
	piece := b[y][x]
	if piece == 0 {
		return nil
	}

	var moves []entity.Coord
	switch piece.Kind() {
	case General:
		genGeneralMoves(b, x, y, &moves)
	case Advisor:
		genAdvisorMoves(b, x, y, &moves)
	case Elephant:
		genElephantMoves(b, x, y, &moves)
	case Horse:
		genHorseMoves(b, x, y, &moves)
	case Chariot:
		genChariotMoves(b, x, y, &moves)
	case Cannon:
		genCannonMoves(b, x, y, &moves)
	case Soldier:
		genSoldierMoves(b, x, y, &moves)
	}
	return moves
}

// addIfFree appends (x, y) unless a friendly piece stands there.
func addIfFree(b *Board, color Color, x, y int, moves *[]entity.Coord) {
	dst := b[y][x]
	if dst == 0 || dst.Color() != color {
		*moves = append(*moves, entity.Coord{X: x, Y: y})
	}
}

func genGeneralMoves(b *Board, x, y int, moves *[]entity.Coord) {
	color := b[y][x].Color()
	for _, d := range orthogonalDirs {
		nx, ny := x+d[0], y+d[1]
		if !onBoard(nx, ny) || !inPalace(color, nx, ny) {
			continue
		}
		addIfFree(b, color, nx, ny, moves)
	}
}

func genAdvisorMoves(b *Board, x, y int, moves *[]entity.Coord) {
	color := b[y][x].Color()
	for _, d := range diagonalDirs {
		nx, ny := x+d[0], y+d[1]
		if !onBoard(nx, ny) || !inPalace(color, nx, ny) {
			continue
		}
		addIfFree(b, color, nx, ny, moves)
	}
}

// 田 move, blocked by a piece on the elephant eye, never across the river.
func genElephantMoves(b *Board, x, y int, moves *[]entity.Coord) {
	color := b[y][x].Color()
	for _, d := range diagonalDirs {
		nx, ny := x+2*d[0], y+2*d[1]
		if !onBoard(nx, ny) || !ownSide(color, ny) {
			continue
		}
		if b[y+d[1]][x+d[0]] != 0 {
			continue
		}
		addIfFree(b, color, nx, ny, moves)
	}
}

// 日 move, hobbled by a piece on the leg square.
func genHorseMoves(b *Board, x, y int, moves *[]entity.Coord) {
	color := b[y][x].Color()
	for _, j := range horseJumps {
		lx, ly := x+j.Lx, y+j.Ly
		if !onBoard(lx, ly) || b[ly][lx] != 0 {
			continue
		}
		nx, ny := x+j.Dx, y+j.Dy
		if !onBoard(nx, ny) {
			continue
		}
		addIfFree(b, color, nx, ny, moves)
	}
}

func genChariotMoves(b *Board, x, y int, moves *[]entity.Coord) {
	color := b[y][x].Color()
	for _, d := range orthogonalDirs {
		nx, ny := x+d[0], y+d[1]
		for onBoard(nx, ny) {
			if b[ny][nx] != 0 {
				addIfFree(b, color, nx, ny, moves)
				break
			}
			*moves = append(*moves, entity.Coord{X: nx, Y: ny})
			nx += d[0]
			ny += d[1]
		}
	}
}

// Slides like a chariot but captures only by jumping exactly one screen.
func genCannonMoves(b *Board, x, y int, moves *[]entity.Coord) {
	color := b[y][x].Color()
	for _, d := range orthogonalDirs {
		nx, ny := x+d[0], y+d[1]

		for onBoard(nx, ny) && b[ny][nx] == 0 {
			*moves = append(*moves, entity.Coord{X: nx, Y: ny})
			nx += d[0]
			ny += d[1]
		}

		// skip the screen
		nx += d[0]
		ny += d[1]

		for onBoard(nx, ny) {
			if target := b[ny][nx]; target != 0 {
				if target.Color() != color {
					*moves = append(*moves, entity.Coord{X: nx, Y: ny})
				}
				break
			}
			nx += d[0]
			ny += d[1]
		}
	}
}

// One step forward; sideways steps only once across the river.
func genSoldierMoves(b *Board, x, y int, moves *[]entity.Coord) {
	color := b[y][x].Color()
	if ny := y + forward(color); onBoard(x, ny) {
		addIfFree(b, color, x, ny, moves)
	}
	if !crossedRiver(color, y) {
		return
	}
	for _, dx := range [2]int{-1, 1} {
		if nx := x + dx; onBoard(nx, y) {
			addIfFree(b, color, nx, y, moves)
		}
	}
}
