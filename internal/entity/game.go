package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/boardgames/internal/apperror"
)

type GameKind string

const (
	KindGo      GameKind = "go"
	KindXiangqi GameKind = "xiangqi"
)

func ParseGameKind(value string) (GameKind, error) {
	switch kind := GameKind(strings.ToLower(strings.TrimSpace(value))); kind {
	case KindGo, KindXiangqi:
		return kind, nil
	default:
		return "", fmt.Errorf("%w: %q", apperror.ErrUnknownGameKind, value)
	}
}

// Level is the computer opponent strength.
type Level string

const (
	LevelEasy   Level = "easy"
	LevelMedium Level = "medium"
)

// ParseLevel maps anything that is not "easy" to the scored (medium) policy.
func ParseLevel(value string) Level {
	if Level(strings.ToLower(strings.TrimSpace(value))) == LevelEasy {
		return LevelEasy
	}

	return LevelMedium
}

const (
	StatusOngoing  = "ongoing"
	StatusFinished = "finished"

	WinnerDraw = "draw"
)

type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (that Coord) String() string {
	return fmt.Sprintf("(%d,%d)", that.X, that.Y)
}

// MoveInput is a command against a board: Go uses only To, Xiangqi needs From as well.
type MoveInput struct {
	From *Coord `json:"from,omitempty"`
	To   Coord  `json:"to"`
}

type Terminal struct {
	Status string `json:"status"`
	Winner string `json:"winner,omitempty"`
	Reason string `json:"reason,omitempty"`
}

func (that Terminal) IsFinished() bool {
	return that.Status == StatusFinished
}

type Status struct {
	Turn      string         `json:"turn"`
	Terminal  Terminal       `json:"terminal"`
	LastMove  *MoveInput     `json:"last_move,omitempty"`
	Score     map[string]int `json:"score,omitempty"`
	Captures  map[string]int `json:"captures,omitempty"`
	Passes    int            `json:"passes,omitempty"`
	InCheck   bool           `json:"in_check,omitempty"`
	MoveCount int            `json:"move_count"`
}

// Frame is everything a renderer needs to draw one session.
type Frame struct {
	SessionID string     `json:"session_id"`
	Kind      GameKind   `json:"kind"`
	Version   uint64     `json:"version"`
	Cells     [][]string `json:"cells"`
	Message   string     `json:"message,omitempty"`
	Status    Status     `json:"status"`
}

// Command is a named key binding coming from the input layer.
type Command string

const (
	CommandRestart Command = "restart"
	CommandUndo    Command = "undo"
	CommandPass    Command = "pass"
)

func ParseCommand(key string) (Command, error) {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "r", string(CommandRestart):
		return CommandRestart, nil
	case "u", string(CommandUndo):
		return CommandUndo, nil
	case "p", string(CommandPass):
		return CommandPass, nil
	default:
		return "", fmt.Errorf("%w: %q", apperror.ErrUnknownCommand, key)
	}
}
