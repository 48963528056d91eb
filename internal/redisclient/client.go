package redisclient

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// authEventsChannel carries session change notifications to every running
// instance, so a sign-out on one node invalidates cached sessions everywhere.
const authEventsChannel = "auth-events"

type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// SetSession stores a serialized session under its token with a TTL
func (c *Client) SetSession(ctx context.Context, token string, session interface{}, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return c.rdb.Set(ctx, fmt.Sprintf("session:%s", token), data, ttl).Err()
}

// GetSession retrieves a session by token into dest. Returns false when the
// token is unknown or expired.
func (c *Client) GetSession(ctx context.Context, token string, dest interface{}) (bool, error) {
	data, err := c.rdb.Get(ctx, fmt.Sprintf("session:%s", token)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return true, nil
}

// DeleteSession removes a session by token
func (c *Client) DeleteSession(ctx context.Context, token string) error {
	return c.rdb.Del(ctx, fmt.Sprintf("session:%s", token)).Err()
}

// PublishAuthEvent publishes an auth state change notification
func (c *Client) PublishAuthEvent(ctx context.Context, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal auth event: %w", err)
	}
	return c.rdb.Publish(ctx, authEventsChannel, data).Err()
}

// SubscribeAuthEvents registers a long-lived subscription to auth state
// change notifications
func (c *Client) SubscribeAuthEvents(ctx context.Context) *redis.PubSub {
	return c.rdb.Subscribe(ctx, authEventsChannel)
}

// SetUnreadCount caches a principal's unread notification count
func (c *Client) SetUnreadCount(ctx context.Context, userID string, count int, ttl time.Duration) error {
	return c.rdb.Set(ctx, fmt.Sprintf("unread:%s", userID), count, ttl).Err()
}

// GetUnreadCount retrieves the cached unread count. Returns false on a miss.
func (c *Client) GetUnreadCount(ctx context.Context, userID string) (int, bool, error) {
	count, err := c.rdb.Get(ctx, fmt.Sprintf("unread:%s", userID)).Int()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return count, true, nil
}

// InvalidateUnreadCount drops the cached unread count for a principal
func (c *Client) InvalidateUnreadCount(ctx context.Context, userID string) error {
	return c.rdb.Del(ctx, fmt.Sprintf("unread:%s", userID)).Err()
}
