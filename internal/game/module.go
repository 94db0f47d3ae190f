// Package game puts the Go and Xiangqi rule engines behind one command
// surface and wraps them in a versioned session that renders after every change.
package game

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/boardgames/internal/apperror"
	"github.com/rocketscienceinc/boardgames/internal/entity"
	"github.com/rocketscienceinc/boardgames/internal/service"
)

var ErrBotRequired = errors.New("bot is required for games against the computer")

// Module is one board game. Every method returns the HUD message the change produced.
type Module interface {
	Kind() entity.GameKind

	Apply(input entity.MoveInput) (string, error)
	Pass() (string, error)
	Undo() (string, bool)
	Restart() string

	LegalMovesFrom(at entity.Coord) []entity.Coord
	Status() entity.Status
	History() []string
	Cells() [][]string

	// AwaitingBot reports that the computer side is to move.
	AwaitingBot() bool
	BotMove() (entity.MoveInput, bool)
}

type Options struct {
	VsAI  bool
	Level entity.Level
	Bot   service.BotService
}

func NewModule(kind entity.GameKind, opts Options) (Module, error) {
	switch kind {
	case entity.KindGo:
		return newWeiqiModule(), nil
	case entity.KindXiangqi:
		if opts.VsAI && opts.Bot == nil {
			return nil, ErrBotRequired
		}
		return newXiangqiModule(opts), nil
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownGameKind, kind)
	}
}

func terminal(finished bool, winner, reason string) entity.Terminal {
	if !finished {
		return entity.Terminal{Status: entity.StatusOngoing}
	}
	return entity.Terminal{Status: entity.StatusFinished, Winner: winner, Reason: reason}
}

// illegalText is the HUD line for a rejected command.
func illegalText(err error) string {
	reason, ok := apperror.ReasonOf(err)
	switch {
	case !ok:
		if errors.Is(err, apperror.ErrGameFinished) {
			return "Game over"
		}
		return ""
	case reason == apperror.ReasonSuicide:
		return "Illegal: suicide move"
	case reason == apperror.ReasonKo:
		return "Illegal: ko"
	default:
		return "Illegal: " + string(reason)
	}
}
