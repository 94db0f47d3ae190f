package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/boardgames/internal/entity"
	"github.com/rocketscienceinc/boardgames/internal/game"
	"github.com/rocketscienceinc/boardgames/internal/service"
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *game.Session) error
	GetByID(ctx context.Context, id string) (*game.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

// Settings are the defaults for sessions that do not ask for something else.
type Settings struct {
	Kind    entity.GameKind
	VsAI    bool
	Level   entity.Level
	AIDelay time.Duration
}

// SessionRequest overrides Settings for one new session; zero fields keep the default.
type SessionRequest struct {
	Kind  string `json:"kind"`
	VsAI  *bool  `json:"vs_ai"`
	Level string `json:"level"`
}

type Option func(*GameManager)

// WithAfterFunc replaces time.AfterFunc for the deferred bot move.
func WithAfterFunc(afterFunc func(delay time.Duration, fn func())) Option {
	return func(that *GameManager) {
		that.afterFunc = afterFunc
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(that *GameManager) {
		that.newID = newID
	}
}

type GameManager struct {
	logger   *slog.Logger
	repo     sessionRepo
	bot      service.BotService
	renderer game.Renderer
	settings Settings

	newID     func() string
	afterFunc func(delay time.Duration, fn func())
}

func NewGameManager(
	logger *slog.Logger,
	repo sessionRepo,
	bot service.BotService,
	renderer game.Renderer,
	settings Settings,
	opts ...Option,
) *GameManager {
	manager := &GameManager{
		logger:   logger.With("component", "game-manager"),
		repo:     repo,
		bot:      bot,
		renderer: renderer,
		settings: settings,

		newID: uuid.NewString,
		afterFunc: func(delay time.Duration, fn func()) {
			time.AfterFunc(delay, fn)
		},
	}

	for _, opt := range opts {
		opt(manager)
	}

	return manager
}

func (that *GameManager) CreateSession(ctx context.Context, req SessionRequest) (entity.Frame, error) {
	kind := that.settings.Kind
	if req.Kind != "" {
		parsed, err := entity.ParseGameKind(req.Kind)
		if err != nil {
			return entity.Frame{}, fmt.Errorf("failed to create session: %w", err)
		}
		kind = parsed
	}

	vsAI := that.settings.VsAI
	if req.VsAI != nil {
		vsAI = *req.VsAI
	}

	level := that.settings.Level
	if req.Level != "" {
		level = entity.ParseLevel(req.Level)
	}

	// only Xiangqi has a computer opponent
	if kind != entity.KindXiangqi {
		vsAI = false
	}

	module, err := game.NewModule(kind, game.Options{VsAI: vsAI, Level: level, Bot: that.bot})
	if err != nil {
		return entity.Frame{}, fmt.Errorf("failed to create module: %w", err)
	}

	session := game.NewSession(that.logger, that.newID(), module, that.renderer)
	if err = that.repo.CreateOrUpdate(ctx, session); err != nil {
		return entity.Frame{}, fmt.Errorf("failed to save session: %w", err)
	}

	that.logger.InfoContext(ctx, "session created",
		"session_id", session.ID(), "kind", kind, "vs_ai", vsAI, "level", level)

	return session.Render(ctx), nil
}

func (that *GameManager) GetFrame(ctx context.Context, id string) (entity.Frame, error) {
	session, err := that.getSession(ctx, id)
	if err != nil {
		return entity.Frame{}, err
	}

	return session.Frame(), nil
}

func (that *GameManager) MakeMove(ctx context.Context, id string, input entity.MoveInput) (entity.Frame, error) {
	session, err := that.getSession(ctx, id)
	if err != nil {
		return entity.Frame{}, err
	}

	frame, err := session.ApplyMove(ctx, input)
	if err != nil {
		return frame, fmt.Errorf("failed to make move: %w", err)
	}

	that.scheduleBot(ctx, session)

	return frame, nil
}

func (that *GameManager) Pass(ctx context.Context, id string) (entity.Frame, error) {
	session, err := that.getSession(ctx, id)
	if err != nil {
		return entity.Frame{}, err
	}

	frame, err := session.Pass(ctx)
	if err != nil {
		return frame, fmt.Errorf("failed to pass: %w", err)
	}

	return frame, nil
}

func (that *GameManager) Undo(ctx context.Context, id string) (entity.Frame, error) {
	session, err := that.getSession(ctx, id)
	if err != nil {
		return entity.Frame{}, err
	}

	frame := session.Undo(ctx)
	that.scheduleBot(ctx, session)

	return frame, nil
}

func (that *GameManager) Restart(ctx context.Context, id string) (entity.Frame, error) {
	session, err := that.getSession(ctx, id)
	if err != nil {
		return entity.Frame{}, err
	}

	return session.Restart(ctx), nil
}

// Command runs a key binding: r restart, u undo, p pass.
func (that *GameManager) Command(ctx context.Context, id, key string) (entity.Frame, error) {
	session, err := that.getSession(ctx, id)
	if err != nil {
		return entity.Frame{}, err
	}

	frame, err := session.HandleCommand(ctx, key)
	if err != nil {
		return frame, fmt.Errorf("failed to run command: %w", err)
	}

	that.scheduleBot(ctx, session)

	return frame, nil
}

func (that *GameManager) LegalMoves(ctx context.Context, id string, at entity.Coord) ([]entity.Coord, error) {
	session, err := that.getSession(ctx, id)
	if err != nil {
		return nil, err
	}

	return session.LegalMovesFrom(at), nil
}

func (that *GameManager) History(ctx context.Context, id string) ([]string, error) {
	session, err := that.getSession(ctx, id)
	if err != nil {
		return nil, err
	}

	return session.History(), nil
}

func (that *GameManager) DeleteSession(ctx context.Context, id string) error {
	if err := that.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

// scheduleBot defers the computer reply by the configured delay. The reply is
// tagged with the current version and dropped by the session if anything changed.
func (that *GameManager) scheduleBot(ctx context.Context, session *game.Session) {
	version, pending := session.BotTurn()
	if !pending {
		return
	}

	log := that.logger.With("method", "scheduleBot", "session_id", session.ID())
	log.DebugContext(ctx, "bot move scheduled", "version", version, "delay", that.settings.AIDelay)

	botCtx := context.WithoutCancel(ctx)
	that.afterFunc(that.settings.AIDelay, func() {
		if _, applied := session.ApplyBotMove(botCtx, version); applied {
			log.DebugContext(botCtx, "bot move applied", "version", version)
		}
	})
}

func (that *GameManager) getSession(ctx context.Context, id string) (*game.Session, error) {
	session, err := that.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session %q: %w", id, err)
	}

	return session, nil
}
