package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"gemilang-store/internal/util"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session is the authenticated state for one principal. It is persisted in
// Redis under its token and replaced wholesale on refresh.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Admin     bool      `json:"admin"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Auth event types published on the auth-events channel
const (
	AuthEventSignedIn  = "signed_in"
	AuthEventSignedOut = "signed_out"
	AuthEventRefreshed = "refreshed"
)

// AuthEvent is the payload pushed on every session change
type AuthEvent struct {
	Type   string `json:"type"`
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

// SessionBackend is the persistence the session store needs. Satisfied by
// redisclient.Client.
type SessionBackend interface {
	SetSession(ctx context.Context, token string, session interface{}, ttl time.Duration) error
	GetSession(ctx context.Context, token string, dest interface{}) (bool, error)
	DeleteSession(ctx context.Context, token string) error
	PublishAuthEvent(ctx context.Context, event interface{}) error
}

// Sessions cached locally are re-resolved after this window even without an
// auth event, so a lost backend entry cannot outlive it by much.
const sessionCacheTTL = 30 * time.Second

type cachedSession struct {
	session  Session
	cachedAt time.Time
}

// SessionStore holds session state for the process. Lookups hit a small local
// cache first; auth events delivered through Watch invalidate entries so the
// backend stays the source of truth (last write wins).
type SessionStore struct {
	backend SessionBackend
	ttl     time.Duration
	logger  *zap.Logger

	mu    sync.Mutex
	cache map[string]cachedSession
}

// NewSessionStore creates a session store
func NewSessionStore(backend SessionBackend, ttl time.Duration) *SessionStore {
	return &SessionStore{
		backend: backend,
		ttl:     ttl,
		logger:  util.GetLogger(),
		cache:   make(map[string]cachedSession),
	}
}

// Issue creates a session for a principal and publishes a signed_in event.
// This is the only place a session comes into existence.
func (ss *SessionStore) Issue(ctx context.Context, userID, email string, admin bool) (*Session, error) {
	session := &Session{
		Token:     uuid.New().String(),
		UserID:    userID,
		Email:     email,
		Admin:     admin,
		ExpiresAt: time.Now().Add(ss.ttl),
	}

	if err := ss.backend.SetSession(ctx, session.Token, session, ss.ttl); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	if err := ss.backend.PublishAuthEvent(ctx, &AuthEvent{
		Type:   AuthEventSignedIn,
		Token:  session.Token,
		UserID: userID,
	}); err != nil {
		ss.logger.Error("Failed to publish auth event", zap.Error(err))
	}

	return session, nil
}

// Current resolves the session for a token. Unknown or expired tokens return
// (nil, nil); callers treat that as signed-out, not as a failure.
func (ss *SessionStore) Current(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, nil
	}

	ss.mu.Lock()
	cached, ok := ss.cache[token]
	ss.mu.Unlock()
	if ok && time.Since(cached.cachedAt) < sessionCacheTTL && time.Now().Before(cached.session.ExpiresAt) {
		s := cached.session
		return &s, nil
	}

	var session Session
	found, err := ss.backend.GetSession(ctx, token, &session)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if !found || time.Now().After(session.ExpiresAt) {
		ss.invalidate(token)
		return nil, nil
	}

	ss.mu.Lock()
	ss.cache[token] = cachedSession{session: session, cachedAt: time.Now()}
	ss.mu.Unlock()

	return &session, nil
}

// Refresh replaces a session with a new token for the same principal
func (ss *SessionStore) Refresh(ctx context.Context, token string) (*Session, error) {
	current, err := ss.Current(ctx, token)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}

	replacement, err := ss.Issue(ctx, current.UserID, current.Email, current.Admin)
	if err != nil {
		return nil, err
	}

	if err := ss.backend.DeleteSession(ctx, token); err != nil {
		ss.logger.Error("Failed to delete replaced session", zap.Error(err))
	}
	ss.invalidate(token)

	if err := ss.backend.PublishAuthEvent(ctx, &AuthEvent{
		Type:   AuthEventRefreshed,
		Token:  token,
		UserID: current.UserID,
	}); err != nil {
		ss.logger.Error("Failed to publish auth event", zap.Error(err))
	}

	return replacement, nil
}

// SignOut clears the backend session and publishes a signed_out event
func (ss *SessionStore) SignOut(ctx context.Context, token string) error {
	if err := ss.backend.DeleteSession(ctx, token); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	ss.invalidate(token)

	if err := ss.backend.PublishAuthEvent(ctx, &AuthEvent{
		Type:  AuthEventSignedOut,
		Token: token,
	}); err != nil {
		ss.logger.Error("Failed to publish auth event", zap.Error(err))
	}

	return nil
}

// Watch consumes auth state change notifications for the process lifetime,
// invalidating the local cache entry named by each event. Guards still resolve
// per request; the cache only short-circuits repeat lookups.
func (ss *SessionStore) Watch(ctx context.Context, events <-chan *redis.Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-events:
			if !ok {
				return
			}

			var event AuthEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				ss.logger.Warn("Malformed auth event", zap.Error(err))
				continue
			}

			ss.invalidate(event.Token)
		}
	}
}

func (ss *SessionStore) invalidate(token string) {
	ss.mu.Lock()
	delete(ss.cache, token)
	ss.mu.Unlock()
}
