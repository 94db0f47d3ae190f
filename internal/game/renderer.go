package game

import (
	"context"
	"errors"
	"log/slog"

	"github.com/rocketscienceinc/boardgames/internal/entity"
)

// Renderer is the output port: it receives a full frame after every state change.
type Renderer interface {
	Render(ctx context.Context, frame entity.Frame) error
}

type multiRenderer []Renderer

// MultiRenderer fans a frame out to every renderer and joins their errors.
func MultiRenderer(renderers ...Renderer) Renderer {
	return multiRenderer(renderers)
}

func (that multiRenderer) Render(ctx context.Context, frame entity.Frame) error {
	var errs []error
	for _, renderer := range that {
		if err := renderer.Render(ctx, frame); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type logRenderer struct {
	logger *slog.Logger
}

// NewLogRenderer writes a one-line summary of every frame at debug level.
func NewLogRenderer(logger *slog.Logger) Renderer {
	return &logRenderer{logger: logger.With("component", "log-renderer")}
}

func (that *logRenderer) Render(ctx context.Context, frame entity.Frame) error {
	that.logger.DebugContext(ctx, "frame",
		"session", frame.SessionID,
		"kind", frame.Kind,
		"version", frame.Version,
		"turn", frame.Status.Turn,
		"status", frame.Status.Terminal.Status,
		"message", frame.Message,
	)
	return nil
}
