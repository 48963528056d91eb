package store

import (
	"context"
	"database/sql"
	"fmt"

	"gemilang-store/internal/models"
)

// CreateNotification inserts a notification for a principal
func (s *Store) CreateNotification(ctx context.Context, n *models.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, message, read)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	return s.db.GetContext(ctx, &n.CreatedAt, query, n.ID, n.UserID, n.Message, n.Read)
}

// GetNotificationsByUserID retrieves a principal's notifications, newest first
func (s *Store) GetNotificationsByUserID(ctx context.Context, userID string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.SelectContext(ctx, &notifications,
		"SELECT * FROM notifications WHERE user_id = $1 ORDER BY created_at DESC", userID)
	return notifications, err
}

// GetNotificationByID retrieves a single notification owned by userID
func (s *Store) GetNotificationByID(ctx context.Context, userID, id string) (*models.Notification, error) {
	var n models.Notification
	err := s.db.GetContext(ctx, &n,
		"SELECT * FROM notifications WHERE id = $1 AND user_id = $2", id, userID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("notification %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// MarkNotificationRead sets the read flag on a notification owned by userID
func (s *Store) MarkNotificationRead(ctx context.Context, userID, id string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2", id, userID)
	return err
}

// CountUnreadNotifications counts a principal's unread notifications
func (s *Store) CountUnreadNotifications(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read = FALSE", userID)
	return count, err
}

// GetAdminByEmail looks up the admin allow-list
func (s *Store) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	err := s.db.GetContext(ctx, &admin, "SELECT * FROM admins WHERE email = $1", email)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("admin %s: %w", email, models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}
