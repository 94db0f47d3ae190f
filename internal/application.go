package application

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/boardgames/internal/config"
	"github.com/rocketscienceinc/boardgames/internal/entity"
	"github.com/rocketscienceinc/boardgames/internal/game"
	"github.com/rocketscienceinc/boardgames/internal/repository"
	"github.com/rocketscienceinc/boardgames/internal/service"
	"github.com/rocketscienceinc/boardgames/internal/transport/redis"
	"github.com/rocketscienceinc/boardgames/internal/usecase"
	"github.com/rocketscienceinc/boardgames/transport/rest"
)

// RunApp - runs the application until SIGINT/SIGTERM or a server failure.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	settings, err := sessionSettings(conf)
	if err != nil {
		return err
	}

	renderers := []game.Renderer{game.NewLogRenderer(logger)}
	if conf.Redis.Enabled {
		client, err := redis.Connect(ctx, conf.Redis.Addr())
		if err != nil {
			return fmt.Errorf("could not connect to redis: %w", err)
		}
		defer func() {
			if err := client.Close(); err != nil {
				log.Error("could not close redis client", "error", err)
			}
		}()

		renderers = append(renderers, redis.NewPublisher(client, conf.Redis.ChannelPrefix))
		log.Info("publishing frames to redis", "addr", conf.Redis.Addr(), "prefix", conf.Redis.ChannelPrefix)
	}

	seed := conf.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	bot := service.NewBotService(rand.New(rand.NewSource(seed))) //nolint: gosec // game randomness

	manager := usecase.NewGameManager(logger,
		repository.NewSessionRepository(),
		bot,
		game.MultiRenderer(renderers...),
		settings,
	)

	log.Info("starting HTTP server", "port", conf.HTTPPort, "kind", settings.Kind, "vs_ai", settings.VsAI)
	if err = rest.New(logger, conf.HTTPPort, manager).Start(ctx); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("application stopped", "signal", context.Cause(ctx))
	return nil
}

func sessionSettings(conf *config.Config) (usecase.Settings, error) {
	kind, err := entity.ParseGameKind(conf.Game.Kind)
	if err != nil {
		return usecase.Settings{}, fmt.Errorf("invalid game.kind: %w", err)
	}

	return usecase.Settings{
		Kind:    kind,
		VsAI:    conf.Game.VsAI,
		Level:   entity.ParseLevel(conf.Game.AILevel),
		AIDelay: conf.Game.AIDelay,
	}, nil
}

