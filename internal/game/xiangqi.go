package game

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/boardgames/internal/apperror"
	"github.com/rocketscienceinc/boardgames/internal/entity"
	"github.com/rocketscienceinc/boardgames/internal/service"
	"github.com/rocketscienceinc/boardgames/internal/xiangqi"
)

// The human always plays Red against the computer.
const botColor = xiangqi.Black

type xiangqiModule struct {
	game *xiangqi.Game

	vsAI  bool
	level entity.Level
	bot   service.BotService
}

func newXiangqiModule(opts Options) *xiangqiModule {
	return &xiangqiModule{
		game:  xiangqi.NewGame(),
		vsAI:  opts.VsAI,
		level: opts.Level,
		bot:   opts.Bot,
	}
}

func (that *xiangqiModule) Kind() entity.GameKind {
	return entity.KindXiangqi
}

func (that *xiangqiModule) Apply(input entity.MoveInput) (string, error) {
	if input.From == nil {
		return "", fmt.Errorf("failed to move: %w", apperror.NewIllegalMove(apperror.ReasonNoPiece))
	}

	mv := xiangqi.Move{From: *input.From, To: input.To}
	if _, err := that.game.Play(mv); err != nil {
		return "", fmt.Errorf("failed to move %s to %s: %w", mv.From, mv.To, err)
	}

	return that.hudText(), nil
}

func (that *xiangqiModule) Pass() (string, error) {
	return "", apperror.ErrPassNotSupported
}

func (that *xiangqiModule) Undo() (string, bool) {
	if !that.game.Undo() {
		return "", false
	}
	return "Undid move", true
}

func (that *xiangqiModule) Restart() string {
	that.game.Restart()
	return "Ready"
}

func (that *xiangqiModule) LegalMovesFrom(at entity.Coord) []entity.Coord {
	return that.game.LegalMovesFrom(at.X, at.Y)
}

func (that *xiangqiModule) Status() entity.Status {
	outcome := that.game.Outcome()

	winner := entity.WinnerDraw
	if outcome.Winner != xiangqi.NoColor {
		winner = outcome.Winner.String()
	}

	status := entity.Status{
		Turn:     that.game.Turn().String(),
		Terminal: terminal(outcome.Finished, winner, outcome.Reason),
		InCheck:  !outcome.Finished && that.game.InCheck(),
		Captures: map[string]int{
			xiangqi.Red.String():   0,
			xiangqi.Black.String(): 0,
		},
	}

	history := that.game.History()
	status.MoveCount = len(history)
	for _, record := range history {
		if record.Captured != 0 {
			status.Captures[record.Color.String()]++
		}
	}

	if last, ok := that.game.LastMove(); ok {
		from := last.From
		status.LastMove = &entity.MoveInput{From: &from, To: last.To}
	}

	return status
}

func (that *xiangqiModule) History() []string {
	history := that.game.History()
	records := make([]string, len(history))
	for i, record := range history {
		records[i] = record.String()
	}
	return records
}

func (that *xiangqiModule) Cells() [][]string {
	board := that.game.Board()
	return board.Cells()
}

func (that *xiangqiModule) AwaitingBot() bool {
	return that.vsAI && !that.game.Outcome().Finished && that.game.Turn() == botColor
}

func (that *xiangqiModule) BotMove() (entity.MoveInput, bool) {
	if !that.AwaitingBot() {
		return entity.MoveInput{}, false
	}

	mv, ok := that.bot.ChooseMove(that.game.Board(), botColor, that.level)
	if !ok {
		return entity.MoveInput{}, false
	}

	from := mv.From
	return entity.MoveInput{From: &from, To: mv.To}, true
}

// hudText follows a move: the terminal reason, a check warning, or nothing.
func (that *xiangqiModule) hudText() string {
	if outcome := that.game.Outcome(); outcome.Finished {
		return strings.ToUpper(outcome.Reason[:1]) + outcome.Reason[1:]
	}
	if that.game.InCheck() {
		return "Check"
	}
	return ""
}
