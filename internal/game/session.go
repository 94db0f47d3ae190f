package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/boardgames/internal/apperror"
	"github.com/rocketscienceinc/boardgames/internal/entity"
)

// Session serializes every command against one module. The version grows on
// each applied change so deferred bot moves can tell they went stale.
type Session struct {
	mu sync.Mutex

	id       string
	logger   *slog.Logger
	module   Module
	renderer Renderer

	version uint64
	message string
}

func NewSession(logger *slog.Logger, id string, module Module, renderer Renderer) *Session {
	return &Session{
		id:       id,
		logger:   logger.With("component", "session", "session_id", id, "kind", module.Kind()),
		module:   module,
		renderer: renderer,
	}
}

func (that *Session) ID() string {
	return that.id
}

func (that *Session) Kind() entity.GameKind {
	return that.module.Kind()
}

func (that *Session) Version() uint64 {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.version
}

// ApplyMove plays a human move. While the computer is to move every human move is rejected.
func (that *Session) ApplyMove(ctx context.Context, input entity.MoveInput) (entity.Frame, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.module.AwaitingBot() {
		return that.reject(ctx, "ApplyMove", apperror.NewIllegalMove(apperror.ReasonWrongTurn))
	}

	message, err := that.module.Apply(input)
	if err != nil {
		return that.reject(ctx, "ApplyMove", err)
	}

	return that.commit(ctx, message), nil
}

func (that *Session) Pass(ctx context.Context) (entity.Frame, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	message, err := that.module.Pass()
	if errors.Is(err, apperror.ErrPassNotSupported) {
		return that.frame(), err
	}
	if err != nil {
		return that.reject(ctx, "Pass", err)
	}

	return that.commit(ctx, message), nil
}

// Undo takes back one move. With nothing to undo the session is left as it is.
func (that *Session) Undo(ctx context.Context) entity.Frame {
	that.mu.Lock()
	defer that.mu.Unlock()

	message, ok := that.module.Undo()
	if !ok {
		return that.frame()
	}

	return that.commit(ctx, message)
}

func (that *Session) Restart(ctx context.Context) entity.Frame {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.commit(ctx, that.module.Restart())
}

// HandleCommand maps a key binding (r, u, p or the full word) to its command.
func (that *Session) HandleCommand(ctx context.Context, key string) (entity.Frame, error) {
	command, err := entity.ParseCommand(key)
	if err != nil {
		return that.Frame(), fmt.Errorf("failed to parse command: %w", err)
	}

	switch command {
	case entity.CommandRestart:
		return that.Restart(ctx), nil
	case entity.CommandUndo:
		return that.Undo(ctx), nil
	case entity.CommandPass:
		return that.Pass(ctx)
	default:
		return that.Frame(), fmt.Errorf("%w: %q", apperror.ErrUnknownCommand, key)
	}
}

func (that *Session) LegalMovesFrom(at entity.Coord) []entity.Coord {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.module.AwaitingBot() {
		return nil
	}
	return that.module.LegalMovesFrom(at)
}

func (that *Session) Status() entity.Status {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.module.Status()
}

func (that *Session) History() []string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.module.History()
}

func (that *Session) Frame() entity.Frame {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.frame()
}

// Render pushes the current frame to the renderer without changing anything.
func (that *Session) Render(ctx context.Context) entity.Frame {
	that.mu.Lock()
	defer that.mu.Unlock()

	frame := that.frame()
	that.render(ctx, frame)
	return frame
}

// BotTurn reports whether the computer is to move and the version to tag its move with.
func (that *Session) BotTurn() (uint64, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.version, that.module.AwaitingBot()
}

// ApplyBotMove plays the computer move scheduled at version. It does nothing
// when any change happened since then.
func (that *Session) ApplyBotMove(ctx context.Context, version uint64) (entity.Frame, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("method", "ApplyBotMove")

	if version != that.version {
		log.InfoContext(ctx, "discarding stale bot move", "scheduled", version, "current", that.version)
		return that.frame(), false
	}

	input, ok := that.module.BotMove()
	if !ok {
		return that.frame(), false
	}

	message, err := that.module.Apply(input)
	if err != nil {
		log.ErrorContext(ctx, "bot produced a rejected move", "error", err)
		return that.frame(), false
	}

	return that.commit(ctx, message), true
}

func (that *Session) commit(ctx context.Context, message string) entity.Frame {
	that.version++
	that.message = message

	frame := that.frame()
	that.render(ctx, frame)
	return frame
}

// reject keeps the state, shows why the command failed and returns the wrapped error.
func (that *Session) reject(ctx context.Context, method string, err error) (entity.Frame, error) {
	that.logger.DebugContext(ctx, "command rejected", "method", method, "error", err)

	if text := illegalText(err); text != "" {
		that.message = text
	}

	frame := that.frame()
	that.render(ctx, frame)
	return frame, err
}

func (that *Session) frame() entity.Frame {
	return entity.Frame{
		SessionID: that.id,
		Kind:      that.module.Kind(),
		Version:   that.version,
		Cells:     that.module.Cells(),
		Message:   that.message,
		Status:    that.module.Status(),
	}
}

func (that *Session) render(ctx context.Context, frame entity.Frame) {
	if that.renderer == nil {
		return
	}

	if err := that.renderer.Render(ctx, frame); err != nil {
		that.logger.ErrorContext(ctx, "failed to render frame", "version", frame.Version, "error", err)
	}
}
