package auth

import (
	"context"
	"testing"
	"time"

	"gemilang-store/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeDirectory struct {
	clients map[string]*models.Client
	admins  map[string]bool
	created []*models.Client
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		clients: make(map[string]*models.Client),
		admins:  make(map[string]bool),
	}
}

func (f *fakeDirectory) addClient(id, email, password string) {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	f.clients[email] = &models.Client{ID: id, Email: email, PasswordHash: string(hash)}
}

func (f *fakeDirectory) GetClientByEmail(ctx context.Context, email string) (*models.Client, error) {
	if c, ok := f.clients[email]; ok {
		return c, nil
	}
	return nil, models.ErrNotFound
}

func (f *fakeDirectory) CreateClient(ctx context.Context, client *models.Client) error {
	f.clients[client.Email] = client
	f.created = append(f.created, client)
	return nil
}

func (f *fakeDirectory) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	if f.admins[email] {
		return &models.Admin{Email: email}, nil
	}
	return nil, models.ErrNotFound
}

func newTestService(dir *fakeDirectory) (*Service, *memoryBackend) {
	backend := newMemoryBackend()
	sessions := NewSessionStore(backend, time.Hour)
	return NewService(dir, dir, sessions, bcrypt.MinCost), backend
}

func TestSignUpIssuesSession(t *testing.T) {
	dir := newFakeDirectory()
	svc, backend := newTestService(dir)

	session, err := svc.SignUp(context.Background(), &SignUpRequest{
		Email:    "budi@kidgemilang.com",
		Password: "rahasia1",
		Name:     "Budi Santoso",
	})
	require.NoError(t, err)

	assert.Equal(t, "budi@kidgemilang.com", session.Email)
	assert.False(t, session.Admin)
	assert.Equal(t, 1, backend.setCalls)

	require.Len(t, dir.created, 1)
	stored := dir.created[0]
	assert.NotEqual(t, "rahasia1", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("rahasia1")))
}

func TestSignInWithValidCredentials(t *testing.T) {
	dir := newFakeDirectory()
	dir.addClient("client-1", "budi@kidgemilang.com", "rahasia1")
	svc, _ := newTestService(dir)

	session, err := svc.SignIn(context.Background(), "budi@kidgemilang.com", "rahasia1")
	require.NoError(t, err)
	assert.Equal(t, "client-1", session.UserID)
	assert.False(t, session.Admin)
}

func TestSignInWrongPassword(t *testing.T) {
	dir := newFakeDirectory()
	dir.addClient("client-1", "budi@kidgemilang.com", "rahasia1")
	svc, backend := newTestService(dir)

	_, err := svc.SignIn(context.Background(), "budi@kidgemilang.com", "salah")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	assert.Equal(t, 0, backend.setCalls)
}

func TestSignInUnknownEmail(t *testing.T) {
	svc, backend := newTestService(newFakeDirectory())

	_, err := svc.SignIn(context.Background(), "nobody@kidgemilang.com", "rahasia1")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	assert.Equal(t, 0, backend.setCalls)
}

func TestAdminLoginNotOnAllowList(t *testing.T) {
	dir := newFakeDirectory()
	dir.addClient("client-1", "budi@kidgemilang.com", "rahasia1")
	svc, backend := newTestService(dir)

	// Valid credentials do not matter when the allow-list check fails, and no
	// session of any kind is created.
	_, err := svc.AttemptAdminLogin(context.Background(), "budi@kidgemilang.com", "rahasia1")
	assert.ErrorIs(t, err, models.ErrNotAuthorized)
	assert.Equal(t, 0, backend.setCalls)
}

func TestAdminLoginWrongPassword(t *testing.T) {
	dir := newFakeDirectory()
	dir.addClient("client-1", "owner@kidgemilang.com", "rahasia1")
	dir.admins["owner@kidgemilang.com"] = true
	svc, backend := newTestService(dir)

	_, err := svc.AttemptAdminLogin(context.Background(), "owner@kidgemilang.com", "salah")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	assert.Equal(t, 0, backend.setCalls)
}

func TestAdminLoginSuccess(t *testing.T) {
	dir := newFakeDirectory()
	dir.addClient("client-1", "owner@kidgemilang.com", "rahasia1")
	dir.admins["owner@kidgemilang.com"] = true
	svc, backend := newTestService(dir)

	session, err := svc.AttemptAdminLogin(context.Background(), "owner@kidgemilang.com", "rahasia1")
	require.NoError(t, err)
	assert.True(t, session.Admin)
	assert.Equal(t, "client-1", session.UserID)
	assert.Equal(t, 1, backend.setCalls)
}
