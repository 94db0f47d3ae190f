package xiangqi

import (
	"github.com/rocketscienceinc/boardgames/internal/apperror"
	"github.com/rocketscienceinc/boardgames/internal/entity"
)

// rejectReason simulates m on a copy of b and reports why it is illegal for
// color, or "" when it is legal.
func rejectReason(b *Board, m Move, color Color) apperror.Reason {
	next := *b
	next.Apply(m)

	if FlyingGeneral(&next) {
		return apperror.ReasonFlyingGeneralViolation
	}
	if IsInCheck(&next, color) {
		return apperror.ReasonLeavesOwnGeneralInCheck
	}
	return ""
}

// LegalMovesFrom filters the pseudo-moves of color's piece on (x, y), dropping
// every move that leaves its own General in check or facing the other General.
func LegalMovesFrom(b *Board, x, y int, color Color) []entity.Coord {
	if !onBoard(x, y) {
		return nil
	}
	piece := b[y][x]
	if piece == 0 || piece.Color() != color {
		return nil
	}

	from := entity.Coord{X: x, Y: y}
	pseudo := PseudoMoves(b, x, y)
	legal := make([]entity.Coord, 0, len(pseudo))
	for _, to := range pseudo {
		if rejectReason(b, Move{From: from, To: to}, color) == "" {
			legal = append(legal, to)
		}
	}
	return legal
}

func LegalMovesForColor(b *Board, color Color) []Move {
	var moves []Move
	for y := 0; y < Rows; y++ {
		for x := 0; x < Cols; x++ {
			pc := b[y][x]
			if pc == 0 || pc.Color() != color {
				continue
			}
			from := entity.Coord{X: x, Y: y}
			for _, to := range LegalMovesFrom(b, x, y, color) {
				moves = append(moves, Move{From: from, To: to})
			}
		}
	}
	return moves
}

func HasAnyLegalMove(b *Board, color Color) bool {
	for y := 0; y < Rows; y++ {
		for x := 0; x < Cols; x++ {
			pc := b[y][x]
			if pc == 0 || pc.Color() != color {
				continue
			}
			if len(LegalMovesFrom(b, x, y, color)) > 0 {
				return true
			}
		}
	}
	return false
}

// Validate checks m for color and returns *apperror.IllegalMove when it cannot be played.
func Validate(b *Board, m Move, color Color) error {
	if !onBoard(m.From.X, m.From.Y) || !onBoard(m.To.X, m.To.Y) {
		return apperror.NewIllegalMove(apperror.ReasonOutOfBounds)
	}

	piece := b[m.From.Y][m.From.X]
	if piece == 0 {
		return apperror.NewIllegalMove(apperror.ReasonNoPiece)
	}
	if piece.Color() != color {
		return apperror.NewIllegalMove(apperror.ReasonWrongTurn)
	}

	if dst := b[m.To.Y][m.To.X]; dst != 0 && dst.Color() == color {
		return apperror.NewIllegalMove(apperror.ReasonOccupied)
	}

	reachable := false
	for _, to := range PseudoMoves(b, m.From.X, m.From.Y) {
		if to == m.To {
			reachable = true
			break
		}
	}
	if !reachable {
		return apperror.NewIllegalMove(apperror.ReasonInvalidDestination)
	}

	if reason := rejectReason(b, m, color); reason != "" {
		return apperror.NewIllegalMove(reason)
	}
	return nil
}
