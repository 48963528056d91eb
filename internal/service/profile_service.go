package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gemilang-store/internal/models"
	"gemilang-store/internal/util"

	"go.uber.org/zap"
)

// ProfileStore is the client profile access the service needs. Satisfied by
// store.Store.
type ProfileStore interface {
	GetClientByID(ctx context.Context, id string) (*models.Client, error)
	CreateClient(ctx context.Context, client *models.Client) error
	UpsertClient(ctx context.Context, client *models.Client) error
	UpdateClientAvatar(ctx context.Context, id, avatarURL string) error
}

// AvatarStore uploads avatar images and returns their public URL. Satisfied
// by storage.AvatarStorage.
type AvatarStore interface {
	UploadAvatar(ctx context.Context, userID, filename string, data io.Reader, size int64, contentType string) (string, error)
}

// ProfileService handles the settings view
type ProfileService struct {
	store   ProfileStore
	avatars AvatarStore
	logger  *zap.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(store ProfileStore, avatars AvatarStore) *ProfileService {
	return &ProfileService{
		store:   store,
		avatars: avatars,
		logger:  util.GetLogger(),
	}
}

// GetProfile retrieves the principal's profile, creating a minimal row on
// first view if none exists yet.
func (ps *ProfileService) GetProfile(ctx context.Context, userID, email string) (*models.Client, error) {
	ctx, span := util.StartSpan(ctx, "ProfileService.GetProfile")
	defer span.End()

	client, err := ps.store.GetClientByID(ctx, userID)
	if err == nil {
		return client, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	client = &models.Client{
		ID:    userID,
		Name:  email,
		Email: email,
	}
	if err := ps.store.CreateClient(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	ps.logger.Info("Profile created lazily", zap.String("client_id", userID))
	return client, nil
}

// UpdateProfileRequest carries the editable profile fields
type UpdateProfileRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	CompanyName string `json:"company_name"`
	Address     string `json:"address"`
}

// UpdateProfile upserts the principal's profile fields
func (ps *ProfileService) UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*models.Client, error) {
	ctx, span := util.StartSpan(ctx, "ProfileService.UpdateProfile")
	defer span.End()

	if req.Email == "" {
		return nil, fmt.Errorf("email is required: %w", models.ErrValidation)
	}

	current, err := ps.GetProfile(ctx, userID, req.Email)
	if err != nil {
		return nil, err
	}

	current.Name = req.Name
	current.Email = req.Email
	current.PhoneNumber = req.PhoneNumber
	current.CompanyName = req.CompanyName
	current.Address = req.Address

	if err := ps.store.UpsertClient(ctx, current); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	ps.logger.Info("Profile updated", zap.String("client_id", userID))
	return current, nil
}

// UploadAvatar stores the image and saves its public URL on the profile
func (ps *ProfileService) UploadAvatar(ctx context.Context, userID, filename string, data io.Reader, size int64, contentType string) (string, error) {
	ctx, span := util.StartSpan(ctx, "ProfileService.UploadAvatar")
	defer span.End()

	url, err := ps.avatars.UploadAvatar(ctx, userID, filename, data, size, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	if err := ps.store.UpdateClientAvatar(ctx, userID, url); err != nil {
		return "", fmt.Errorf("failed to save avatar url: %w", err)
	}

	util.AvatarUploadsTotal.Inc()
	return url, nil
}
