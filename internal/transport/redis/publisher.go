package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/boardgames/internal/entity"
)

// Publisher pushes every rendered frame to "<prefix>:<session-id>" so an
// out-of-process front end can draw it.
type Publisher struct {
	client *redis.Client
	prefix string
}

// Connect dials Redis and checks the connection with a ping.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	return ping(ctx, redis.NewClient(&redis.Options{
		Addr: addr,
	}))
}

// ping closes client when the server does not answer.
func ping(ctx context.Context, client *redis.Client) (*redis.Client, error) {
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

func NewPublisher(client *redis.Client, prefix string) *Publisher {
	return &Publisher{
		client: client,
		prefix: prefix,
	}
}

func (that *Publisher) Channel(sessionID string) string {
	return that.prefix + ":" + sessionID
}

func (that *Publisher) Render(ctx context.Context, frame entity.Frame) error {
	payload, err := json.Marshal(frame)
	if err != nil {
		return fmt.Errorf("failed to marshal frame: %w", err)
	}

	if err = that.client.Publish(ctx, that.Channel(frame.SessionID), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish frame: %w", err)
	}

	return nil
}
