package game

import (
	"fmt"

	"github.com/rocketscienceinc/boardgames/internal/entity"
	"github.com/rocketscienceinc/boardgames/internal/weiqi"
)

const reasonTwoPasses = "two passes"

type weiqiModule struct {
	game *weiqi.Game
}

func newWeiqiModule() *weiqiModule {
	return &weiqiModule{game: weiqi.NewGame()}
}

func (that *weiqiModule) Kind() entity.GameKind {
	return entity.KindGo
}

func (that *weiqiModule) Apply(input entity.MoveInput) (string, error) {
	captured, err := that.game.PlaceStone(input.To.X, input.To.Y, that.game.Turn())
	if err != nil {
		return "", fmt.Errorf("failed to place stone at %s: %w", input.To, err)
	}

	if captured > 0 {
		return fmt.Sprintf("Captured %d", captured), nil
	}
	return "", nil
}

func (that *weiqiModule) Pass() (string, error) {
	if err := that.game.Pass(that.game.Turn()); err != nil {
		return "", fmt.Errorf("failed to pass: %w", err)
	}

	if result, finished := that.game.Result(); finished {
		return fmt.Sprintf("Final B:%d W:%d", result.Black, result.White), nil
	}
	return "Pass", nil
}

func (that *weiqiModule) Undo() (string, bool) {
	last, ok := that.game.Undo()
	if !ok {
		return "", false
	}

	if last.Pass {
		return "Undid pass", true
	}
	return "Undid move", true
}

func (that *weiqiModule) Restart() string {
	that.game.Restart()
	return ""
}

// LegalMovesFrom answers for a single intersection: it is either playable or not.
func (that *weiqiModule) LegalMovesFrom(at entity.Coord) []entity.Coord {
	if err := that.game.CanPlace(at.X, at.Y); err != nil {
		return nil
	}
	return []entity.Coord{at}
}

func (that *weiqiModule) Status() entity.Status {
	status := entity.Status{
		Turn:      that.game.Turn().String(),
		Passes:    that.game.Passes(),
		MoveCount: len(that.game.History()),
		Captures: map[string]int{
			weiqi.Black.String(): that.game.Captures(weiqi.Black),
			weiqi.White.String(): that.game.Captures(weiqi.White),
		},
	}

	score, finished := that.game.Result()
	if !finished {
		score = that.game.Score()
	}
	status.Score = map[string]int{
		weiqi.Black.String(): score.Black,
		weiqi.White.String(): score.White,
	}

	winner := entity.WinnerDraw
	if score.Winner != weiqi.Empty {
		winner = score.Winner.String()
	}
	status.Terminal = terminal(finished, winner, reasonTwoPasses)

	if last, ok := that.game.LastMove(); ok && !last.Pass {
		status.LastMove = &entity.MoveInput{To: entity.Coord{X: last.X, Y: last.Y}}
	}

	return status
}

func (that *weiqiModule) History() []string {
	moves := that.game.History()
	records := make([]string, len(moves))
	for i, mv := range moves {
		records[i] = mv.String()
	}
	return records
}

func (that *weiqiModule) Cells() [][]string {
	board := that.game.Board()
	return board.Cells()
}

func (that *weiqiModule) AwaitingBot() bool {
	return false
}

func (that *weiqiModule) BotMove() (entity.MoveInput, bool) {
	return entity.MoveInput{}, false
}
