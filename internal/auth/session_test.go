package auth

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryBackend mimics the Redis session backend with a plain map. Values go
// through JSON the same way the real client serializes them.
type memoryBackend struct {
	sessions  map[string][]byte
	published []AuthEvent
	setCalls  int
}

func newMemoryBackend() *memoryBackend {
	return &memoryBackend{sessions: make(map[string][]byte)}
}

func (m *memoryBackend) SetSession(ctx context.Context, token string, session interface{}, ttl time.Duration) error {
	m.setCalls++
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	m.sessions[token] = data
	return nil
}

func (m *memoryBackend) GetSession(ctx context.Context, token string, dest interface{}) (bool, error) {
	data, ok := m.sessions[token]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (m *memoryBackend) DeleteSession(ctx context.Context, token string) error {
	delete(m.sessions, token)
	return nil
}

func (m *memoryBackend) PublishAuthEvent(ctx context.Context, event interface{}) error {
	if e, ok := event.(*AuthEvent); ok {
		m.published = append(m.published, *e)
	}
	return nil
}

func TestIssueAndCurrent(t *testing.T) {
	backend := newMemoryBackend()
	ss := NewSessionStore(backend, time.Hour)
	ctx := context.Background()

	issued, err := ss.Issue(ctx, "user-1", "budi@kidgemilang.com", false)
	require.NoError(t, err)
	require.NotEmpty(t, issued.Token)

	resolved, err := ss.Current(ctx, issued.Token)
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, "user-1", resolved.UserID)
	assert.Equal(t, "budi@kidgemilang.com", resolved.Email)
	assert.False(t, resolved.Admin)

	require.Len(t, backend.published, 1)
	assert.Equal(t, AuthEventSignedIn, backend.published[0].Type)
}

func TestCurrentUnknownToken(t *testing.T) {
	ss := NewSessionStore(newMemoryBackend(), time.Hour)

	session, err := ss.Current(context.Background(), "no-such-token")
	require.NoError(t, err)
	assert.Nil(t, session)

	session, err = ss.Current(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestCurrentExpiredSession(t *testing.T) {
	backend := newMemoryBackend()
	ss := NewSessionStore(backend, -time.Minute)

	issued, err := ss.Issue(context.Background(), "user-1", "budi@kidgemilang.com", false)
	require.NoError(t, err)

	session, err := ss.Current(context.Background(), issued.Token)
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestRefreshReplacesToken(t *testing.T) {
	backend := newMemoryBackend()
	ss := NewSessionStore(backend, time.Hour)
	ctx := context.Background()

	issued, err := ss.Issue(ctx, "user-1", "budi@kidgemilang.com", true)
	require.NoError(t, err)

	replacement, err := ss.Refresh(ctx, issued.Token)
	require.NoError(t, err)
	require.NotNil(t, replacement)
	assert.NotEqual(t, issued.Token, replacement.Token)
	assert.Equal(t, "user-1", replacement.UserID)
	assert.True(t, replacement.Admin)

	// The old token no longer resolves.
	old, err := ss.Current(ctx, issued.Token)
	require.NoError(t, err)
	assert.Nil(t, old)
}

func TestRefreshUnknownToken(t *testing.T) {
	ss := NewSessionStore(newMemoryBackend(), time.Hour)

	session, err := ss.Refresh(context.Background(), "no-such-token")
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestSignOutClearsSession(t *testing.T) {
	backend := newMemoryBackend()
	ss := NewSessionStore(backend, time.Hour)
	ctx := context.Background()

	issued, err := ss.Issue(ctx, "user-1", "budi@kidgemilang.com", false)
	require.NoError(t, err)

	require.NoError(t, ss.SignOut(ctx, issued.Token))

	session, err := ss.Current(ctx, issued.Token)
	require.NoError(t, err)
	assert.Nil(t, session)

	require.Len(t, backend.published, 2)
	assert.Equal(t, AuthEventSignedOut, backend.published[1].Type)
}

func TestWatchInvalidatesCachedSession(t *testing.T) {
	backend := newMemoryBackend()
	ss := NewSessionStore(backend, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	issued, err := ss.Issue(ctx, "user-1", "budi@kidgemilang.com", false)
	require.NoError(t, err)

	// Warm the local cache, then drop the backend entry directly so only the
	// cache would still answer.
	_, err = ss.Current(ctx, issued.Token)
	require.NoError(t, err)
	delete(backend.sessions, issued.Token)

	events := make(chan *redis.Message, 1)
	done := make(chan struct{})
	go func() {
		ss.Watch(ctx, events)
		close(done)
	}()

	payload, err := json.Marshal(&AuthEvent{Type: AuthEventSignedOut, Token: issued.Token})
	require.NoError(t, err)
	events <- &redis.Message{Payload: string(payload)}
	close(events)
	<-done

	session, err := ss.Current(ctx, issued.Token)
	require.NoError(t, err)
	assert.Nil(t, session)
}
