package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/rocketscienceinc/boardgames/internal/apperror"
	"github.com/rocketscienceinc/boardgames/internal/game"
)

var ErrNilSession = errors.New("session is nil")

type SessionRepository interface {
	CreateOrUpdate(ctx context.Context, session *game.Session) error
	GetByID(ctx context.Context, id string) (*game.Session, error)
	DeleteByID(ctx context.Context, id string) error
	Count(ctx context.Context) int
}

// memSession keeps live sessions in process memory; nothing survives a restart.
type memSession struct {
	mu       sync.RWMutex
	sessions map[string]*game.Session
}

func NewSessionRepository() SessionRepository {
	return &memSession{
		sessions: make(map[string]*game.Session),
	}
}

func (that *memSession) CreateOrUpdate(_ context.Context, session *game.Session) error {
	if session == nil {
		return ErrNilSession
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.sessions[session.ID()] = session

	return nil
}

func (that *memSession) GetByID(_ context.Context, id string) (*game.Session, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	session, ok := that.sessions[id]
	if !ok {
		return nil, apperror.ErrSessionNotFound
	}

	return session, nil
}

func (that *memSession) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.sessions[id]; !ok {
		return apperror.ErrSessionNotFound
	}
	delete(that.sessions, id)

	return nil
}

func (that *memSession) Count(_ context.Context) int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.sessions)
}
