package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrSessionNotFound  = errors.New("session not found")
	ErrIllegalMove      = errors.New("illegal move")
	ErrPassNotSupported = errors.New("pass is not supported by this game")
	ErrUnknownGameKind  = errors.New("unknown game kind")
	ErrUnknownCommand   = errors.New("unknown command")
)

// Reason says why a move was rejected.
type Reason string

const (
	ReasonOutOfBounds             Reason = "OutOfBounds"
	ReasonOccupied                Reason = "Occupied"
	ReasonWrongTurn               Reason = "WrongTurn"
	ReasonSuicide                 Reason = "Suicide"
	ReasonKo                      Reason = "Ko"
	ReasonLeavesOwnGeneralInCheck Reason = "LeavesOwnGeneralInCheck"
	ReasonFlyingGeneralViolation  Reason = "FlyingGeneralViolation"
	ReasonNoPiece                 Reason = "NoPiece"
	ReasonInvalidDestination      Reason = "InvalidDestination"
)

// IllegalMove is returned by the rule engines for every rejected move.
// The board and turn are left exactly as they were before the call.
type IllegalMove struct {
	Reason Reason
}

func NewIllegalMove(reason Reason) *IllegalMove {
	return &IllegalMove{Reason: reason}
}

func (that *IllegalMove) Error() string {
	return fmt.Sprintf("%s: %s", ErrIllegalMove, that.Reason)
}

func (that *IllegalMove) Unwrap() error {
	return ErrIllegalMove
}

// ReasonOf extracts the rejection reason from a (possibly wrapped) error.
func ReasonOf(err error) (Reason, bool) {
	var illegal *IllegalMove
	if errors.As(err, &illegal) {
		return illegal.Reason, true
	}

	return "", false
}
