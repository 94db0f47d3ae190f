package service

import (
	"math/rand"
	"sync"

	"github.com/rocketscienceinc/boardgames/internal/entity"
	"github.com/rocketscienceinc/boardgames/internal/xiangqi"
)

var pieceValues = map[xiangqi.Kind]int{
	xiangqi.General:  1000,
	xiangqi.Chariot:  10,
	xiangqi.Cannon:   7,
	xiangqi.Horse:    5,
	xiangqi.Elephant: 3,
	xiangqi.Advisor:  3,
	xiangqi.Soldier:  2,
}

const (
	captureWeight  = 12
	exposureWeight = 6
	checkBonus     = 30
)

// BotService picks a single-ply Xiangqi move for the computer side.
type BotService interface {
	ChooseMove(board xiangqi.Board, color xiangqi.Color, level entity.Level) (xiangqi.Move, bool)
}

type botService struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewBotService uses rnd for every random choice; it is shared by all sessions.
func NewBotService(rnd *rand.Rand) BotService {
	return &botService{
		rnd: rnd,
	}
}

func (that *botService) ChooseMove(board xiangqi.Board, color xiangqi.Color, level entity.Level) (xiangqi.Move, bool) {
	moves := xiangqi.LegalMovesForColor(&board, color)
	if len(moves) == 0 {
		return xiangqi.Move{}, false
	}

	if level == entity.LevelEasy {
		return moves[that.intn(len(moves))], true
	}

	best := 0
	var bestMoves []xiangqi.Move
	for i, mv := range moves {
		score := scoreMove(&board, mv, color)
		switch {
		case i == 0 || score > best:
			best = score
			bestMoves = append(bestMoves[:0], mv)
		case score == best:
			bestMoves = append(bestMoves, mv)
		}
	}

	return bestMoves[that.intn(len(bestMoves))], true
}

func (that *botService) intn(n int) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.rnd.Intn(n)
}

// scoreMove rates mv for color: material won, piece activity and a check bonus,
// minus the value of the moved piece when it lands on an attacked square.
func scoreMove(board *xiangqi.Board, mv xiangqi.Move, color xiangqi.Color) int {
	piece := board.At(mv.From.X, mv.From.Y)
	enemy := color.Opponent()

	next := *board
	captured := next.Apply(mv)

	score := pieceValues[captured.Kind()] * captureWeight
	score += activity(piece.Kind(), mv, color)

	if xiangqi.IsInCheck(&next, enemy) {
		score += checkBonus
	}
	if xiangqi.IsAttacked(&next, mv.To, enemy) {
		score -= pieceValues[piece.Kind()] * exposureWeight
	}

	return score
}

func activity(kind xiangqi.Kind, mv xiangqi.Move, color xiangqi.Color) int {
	switch kind {
	case xiangqi.Soldier:
		advance := mv.From.Y - mv.To.Y
		crossed := mv.To.Y <= 4
		if color == xiangqi.Black {
			advance = -advance
			crossed = mv.To.Y >= 5
		}

		bonus := advance * 2
		if crossed {
			bonus += 2
		}
		return bonus
	case xiangqi.Chariot:
		return 4 + (4 - abs(mv.To.X-4))
	case xiangqi.Cannon:
		return 2
	default:
		return 0
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
