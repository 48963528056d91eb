package auth

import (
	"context"
	"errors"
	"fmt"

	"gemilang-store/internal/models"
	"gemilang-store/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ClientDirectory is the client lookup the auth service needs. Satisfied by
// store.Store.
type ClientDirectory interface {
	GetClientByEmail(ctx context.Context, email string) (*models.Client, error)
	CreateClient(ctx context.Context, client *models.Client) error
}

// AdminDirectory is the admin allow-list lookup. Satisfied by store.Store.
type AdminDirectory interface {
	GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error)
}

// Service handles sign-up, sign-in and admin login
type Service struct {
	clients    ClientDirectory
	admins     AdminDirectory
	sessions   *SessionStore
	bcryptCost int
	logger     *zap.Logger
}

// NewService creates an auth service
func NewService(clients ClientDirectory, admins AdminDirectory, sessions *SessionStore, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		clients:    clients,
		admins:     admins,
		sessions:   sessions,
		bcryptCost: bcryptCost,
		logger:     util.GetLogger(),
	}
}

// SignUpRequest carries the registration fields
type SignUpRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	Name        string `json:"name" binding:"required"`
	PhoneNumber string `json:"phone_number"`
	CompanyName string `json:"company_name"`
	Address     string `json:"address"`
}

// SignUp registers a client and issues a session
func (s *Service) SignUp(ctx context.Context, req *SignUpRequest) (*Session, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("email and password are required: %w", models.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	client := &models.Client{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		CompanyName:  req.CompanyName,
		Address:      req.Address,
		PasswordHash: string(hash),
	}

	if err := s.clients.CreateClient(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	s.logger.Info("Client registered", zap.String("client_id", client.ID))
	util.SignUpsTotal.Inc()

	return s.sessions.Issue(ctx, client.ID, client.Email, false)
}

// SignIn verifies credentials and issues a customer session
func (s *Service) SignIn(ctx context.Context, email, password string) (*Session, error) {
	client, err := s.clients.GetClientByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			util.SignInFailuresTotal.WithLabelValues("unknown_email").Inc()
			return nil, models.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up client: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(client.PasswordHash), []byte(password)); err != nil {
		util.SignInFailuresTotal.WithLabelValues("wrong_password").Inc()
		return nil, models.ErrInvalidCredentials
	}

	util.SignInsTotal.Inc()
	return s.sessions.Issue(ctx, client.ID, client.Email, false)
}

// SignOut clears the session
func (s *Service) SignOut(ctx context.Context, token string) error {
	return s.sessions.SignOut(ctx, token)
}

// AttemptAdminLogin performs the two-step admin login: the email must be on
// the allow-list before the credential check runs, and a session is issued
// only when both steps pass. A failure at either step leaves no session.
func (s *Service) AttemptAdminLogin(ctx context.Context, email, password string) (*Session, error) {
	if _, err := s.admins.GetAdminByEmail(ctx, email); err != nil {
		s.logger.Warn("Admin login rejected by allow-list", zap.String("email", email), zap.Error(err))
		util.AdminLoginFailuresTotal.WithLabelValues("not_authorized").Inc()
		return nil, models.ErrNotAuthorized
	}

	client, err := s.clients.GetClientByEmail(ctx, email)
	if err != nil {
		util.AdminLoginFailuresTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, models.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(client.PasswordHash), []byte(password)); err != nil {
		util.AdminLoginFailuresTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, models.ErrInvalidCredentials
	}

	util.AdminLoginsTotal.Inc()
	s.logger.Info("Admin authenticated", zap.String("client_id", client.ID))

	return s.sessions.Issue(ctx, client.ID, client.Email, true)
}
