package xiangqi

import (
	"fmt"
	"maps"
	"slices"

	"github.com/rocketscienceinc/boardgames/internal/apperror"
	"github.com/rocketscienceinc/boardgames/internal/entity"
)

const (
	ReasonCheckmate       = "checkmate"
	ReasonStalemate       = "stalemate"
	ReasonRepetition      = "threefold repetition"
	ReasonGeneralCaptured = "general captured"

	repetitionLimit = 3
)

// Outcome is the terminal status; Winner is NoColor for a draw.
type Outcome struct {
	Finished bool   `json:"finished"`
	Winner   Color  `json:"winner"`
	Reason   string `json:"reason,omitempty"`
}

// Record is one applied move as it appears in the move list.
type Record struct {
	Color    Color `json:"color"`
	Piece    Piece `json:"piece"`
	Move     Move  `json:"move"`
	Captured Piece `json:"captured,omitempty"`
}

func squareName(c entity.Coord) string {
	return fmt.Sprintf("%c%d", 'a'+c.X, Rows-c.Y)
}

func (that Record) String() string {
	sep := "-"
	if that.Captured != 0 {
		sep = "x"
	}
	return fmt.Sprintf("%s: %s %s%s%s",
		that.Color.String()[:1], that.Piece.Kind().Letter(),
		squareName(that.Move.From), sep, squareName(that.Move.To))
}

type snapshot struct {
	board     Board
	turn      Color
	outcome   Outcome
	lastMove  *Move
	history   []Record
	positions map[string]int
}

type Game struct {
	board     Board
	turn      Color
	outcome   Outcome
	lastMove  *Move
	history   []Record
	positions map[string]int

	undo []snapshot
}

func NewGame() *Game {
	return NewGameFrom(NewInitialBoard(), Red)
}

// NewGameFrom starts a game on an arbitrary position.
func NewGameFrom(board Board, turn Color) *Game {
	game := &Game{}
	game.reset(board, turn)
	return game
}

// Restart discards the game, including the undo stack, and sets up the initial position.
func (that *Game) Restart() {
	that.reset(NewInitialBoard(), Red)
}

func (that *Game) reset(board Board, turn Color) {
	that.board = board
	that.turn = turn
	that.outcome = Outcome{Winner: NoColor}
	that.lastMove = nil
	that.history = nil
	that.positions = make(map[string]int)
	that.undo = nil
	that.countPosition()
}

func (that *Game) Board() Board {
	return that.board
}

func (that *Game) Turn() Color {
	return that.turn
}

func (that *Game) Outcome() Outcome {
	return that.outcome
}

func (that *Game) LastMove() (Move, bool) {
	if that.lastMove == nil {
		return Move{}, false
	}
	return *that.lastMove, true
}

func (that *Game) History() []Record {
	return slices.Clone(that.history)
}

func (that *Game) InCheck() bool {
	return IsInCheck(&that.board, that.turn)
}

// Repetitions is how many times the current (board, side to move) has occurred.
func (that *Game) Repetitions() int {
	return that.positions[that.board.Hash(that.turn)]
}

func (that *Game) LegalMovesFrom(x, y int) []entity.Coord {
	if that.outcome.Finished {
		return nil
	}
	return LegalMovesFrom(&that.board, x, y, that.turn)
}

func (that *Game) LegalMoves() []Move {
	if that.outcome.Finished {
		return nil
	}
	return LegalMovesForColor(&that.board, that.turn)
}

// Play applies m for the side to move. Illegal moves return *apperror.IllegalMove
// and leave the game untouched.
func (that *Game) Play(m Move) (Record, error) {
	if that.outcome.Finished {
		return Record{}, apperror.ErrGameFinished
	}

	if err := Validate(&that.board, m, that.turn); err != nil {
		return Record{}, err
	}

	that.pushUndo()

	mover := that.turn
	record := Record{Color: mover, Piece: that.board[m.From.Y][m.From.X], Move: m}
	record.Captured = that.board.Apply(m)

	that.history = append(that.history, record)
	that.lastMove = &m
	that.turn = mover.Opponent()

	if record.Captured.Kind() == General {
		that.outcome = Outcome{Finished: true, Winner: mover, Reason: ReasonGeneralCaptured}
	} else {
		that.classify(mover)
	}
	that.countPosition()

	return record, nil
}

// Undo restores the snapshot taken before the last move. It is a no-op on an empty stack.
func (that *Game) Undo() bool {
	if len(that.undo) == 0 {
		return false
	}

	snap := that.undo[len(that.undo)-1]
	that.undo = that.undo[:len(that.undo)-1]

	that.board = snap.board
	that.turn = snap.turn
	that.outcome = snap.outcome
	that.lastMove = snap.lastMove
	that.history = snap.history
	that.positions = snap.positions
	return true
}

func (that *Game) pushUndo() {
	var lastMove *Move
	if that.lastMove != nil {
		mv := *that.lastMove
		lastMove = &mv
	}

	that.undo = append(that.undo, snapshot{
		board:     that.board,
		turn:      that.turn,
		outcome:   that.outcome,
		lastMove:  lastMove,
		history:   slices.Clone(that.history),
		positions: maps.Clone(that.positions),
	})
}

// classify ends the game when the side to move has no legal move.
func (that *Game) classify(mover Color) {
	if HasAnyLegalMove(&that.board, that.turn) {
		return
	}

	if IsInCheck(&that.board, that.turn) {
		that.outcome = Outcome{Finished: true, Winner: mover, Reason: ReasonCheckmate}
		return
	}
	that.outcome = Outcome{Finished: true, Winner: NoColor, Reason: ReasonStalemate}
}

func (that *Game) countPosition() {
	key := that.board.Hash(that.turn)
	that.positions[key]++
	if that.positions[key] >= repetitionLimit && !that.outcome.Finished {
		that.outcome = Outcome{Finished: true, Winner: NoColor, Reason: ReasonRepetition}
	}
}
