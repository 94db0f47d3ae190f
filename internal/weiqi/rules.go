package weiqi

import (
	"fmt"

	"github.com/rocketscienceinc/boardgames/internal/apperror"
)

const columnLetters = "ABCDEFGHJKLMNOPQRST"

// Move is one history record: a placement or a pass.
type Move struct {
	X        int   `json:"x"`
	Y        int   `json:"y"`
	Color    Stone `json:"color"`
	Pass     bool  `json:"pass,omitempty"`
	Captured int   `json:"captured,omitempty"`

	// koBefore is the ko reference a pass replaced, restored when the pass is undone.
	koBefore string
}

func (that Move) String() string {
	if that.Pass {
		return that.Color.Letter() + " pass"
	}

	record := fmt.Sprintf("%s %c%d", that.Color.Letter(), columnLetters[that.X], Size-that.Y)
	if that.Captured > 0 {
		record += fmt.Sprintf(" x%d", that.Captured)
	}
	return record
}

type Game struct {
	board    Board
	turn     Stone
	history  []Move
	captures [3]int
	passes   int

	// hash is the current position; koHash is the position before the last
	// move, i.e. the one a ko recapture would recreate.
	hash   string
	koHash string

	finished bool
	result   Result
}

func NewGame() *Game {
	game := &Game{}
	game.Restart()
	return game
}

// Restart discards the whole game and sets up an empty board with Black to move.
func (that *Game) Restart() {
	that.board = Board{}
	that.turn = Black
	that.history = nil
	that.captures = [3]int{}
	that.passes = 0
	that.hash = that.board.Hash(that.turn)
	that.koHash = ""
	that.finished = false
	that.result = Result{}
}

func (that *Game) Board() Board {
	return that.board
}

func (that *Game) Turn() Stone {
	return that.turn
}

func (that *Game) Captures(color Stone) int {
	if color != Black && color != White {
		return 0
	}
	return that.captures[color]
}

func (that *Game) Passes() int {
	return that.passes
}

func (that *Game) IsFinished() bool {
	return that.finished
}

// Result returns the final score once two consecutive passes ended the game.
func (that *Game) Result() (Result, bool) {
	return that.result, that.finished
}

func (that *Game) Hash() string {
	return that.hash
}

func (that *Game) History() []Move {
	out := make([]Move, len(that.history))
	copy(out, that.history)
	return out
}

func (that *Game) LastMove() (Move, bool) {
	if len(that.history) == 0 {
		return Move{}, false
	}
	return that.history[len(that.history)-1], true
}

// PlaceStone plays a stone for color at (x, y) and returns the number of
// captured enemy stones. Illegal placements return *apperror.IllegalMove and
// leave the game untouched.
func (that *Game) PlaceStone(x, y int, color Stone) (int, error) {
	next, captured, nextHash, err := that.resolve(x, y, color)
	if err != nil {
		return 0, err
	}

	that.board = next
	that.koHash = that.hash
	that.hash = nextHash
	that.captures[color] += captured
	that.history = append(that.history, Move{X: x, Y: y, Color: color, Captured: captured})
	that.passes = 0
	that.turn = color.Opponent()

	return captured, nil
}

// CanPlace reports whether the side to move may play at (x, y).
func (that *Game) CanPlace(x, y int) error {
	_, _, _, err := that.resolve(x, y, that.turn)
	return err
}

// resolve computes the position after color plays (x, y) without committing it.
func (that *Game) resolve(x, y int, color Stone) (Board, int, string, error) {
	if that.finished {
		return Board{}, 0, "", apperror.ErrGameFinished
	}

	if !onBoard(x, y) {
		return Board{}, 0, "", apperror.NewIllegalMove(apperror.ReasonOutOfBounds)
	}

	if color != that.turn {
		return Board{}, 0, "", apperror.NewIllegalMove(apperror.ReasonWrongTurn)
	}

	if that.board[y][x] != Empty {
		return Board{}, 0, "", apperror.NewIllegalMove(apperror.ReasonOccupied)
	}

	next := that.board
	next[y][x] = color

	enemy := color.Opponent()
	captured := 0
	for _, n := range neighbors(x, y) {
		if next[n.y][n.x] != enemy {
			continue
		}
		stones, liberties := next.collectGroup(n.x, n.y)
		if len(liberties) > 0 {
			continue
		}
		for _, s := range stones {
			next[s.y][s.x] = Empty
		}
		captured += len(stones)
	}

	if _, liberties := next.collectGroup(x, y); len(liberties) == 0 {
		return Board{}, 0, "", apperror.NewIllegalMove(apperror.ReasonSuicide)
	}

	nextHash := next.Hash(enemy)
	if nextHash == that.koHash {
		return Board{}, 0, "", apperror.NewIllegalMove(apperror.ReasonKo)
	}

	return next, captured, nextHash, nil
}

// Pass records a pass for color. The second consecutive pass scores the game.
func (that *Game) Pass(color Stone) error {
	if that.finished {
		return apperror.ErrGameFinished
	}

	if color != that.turn {
		return apperror.NewIllegalMove(apperror.ReasonWrongTurn)
	}

	that.history = append(that.history, Move{Color: color, Pass: true, koBefore: that.koHash})
	that.turn = color.Opponent()
	that.koHash = that.hash
	that.hash = that.board.Hash(that.turn)
	that.passes++

	if that.passes >= 2 {
		that.result = that.Score()
		that.finished = true
	}

	return nil
}

// Undo takes back the last history entry. Undoing a pass only rolls back the
// pass counter and turn. Undoing a placement rebuilds the board by replaying
// the remaining placements on an empty board: stones captured earlier are not
// restored and capture counters restart from zero.
func (that *Game) Undo() (Move, bool) {
	if len(that.history) == 0 {
		return Move{}, false
	}

	last := that.history[len(that.history)-1]
	that.history = that.history[:len(that.history)-1]
	that.finished = false
	that.result = Result{}
	that.turn = last.Color

	if last.Pass {
		that.passes = max(0, that.passes-1)
		that.koHash = last.koBefore
		that.hash = that.board.Hash(that.turn)
		return last, true
	}

	that.replay()
	return last, true
}

func (that *Game) replay() {
	board := Board{}
	koHash := ""
	for _, mv := range that.history {
		koHash = board.Hash(mv.Color)
		if mv.Pass {
			continue
		}
		board[mv.Y][mv.X] = mv.Color
	}

	that.board = board
	that.captures = [3]int{}
	that.passes = 0
	that.koHash = koHash
	that.hash = board.Hash(that.turn)
}
