package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gemilang-store/internal/models"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type Store struct {
	db *sqlx.DB
}

// NewStore creates a new database store
func NewStore(databaseURL string) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// GetDB returns the underlying database connection
func (s *Store) GetDB() *sqlx.DB {
	return s.db
}

// GetClientByID retrieves a client profile by principal id
func (s *Store) GetClientByID(ctx context.Context, id string) (*models.Client, error) {
	var client models.Client
	err := s.db.GetContext(ctx, &client, "SELECT * FROM clients WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("client %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// GetClientByEmail retrieves a client profile by email
func (s *Store) GetClientByEmail(ctx context.Context, email string) (*models.Client, error) {
	var client models.Client
	err := s.db.GetContext(ctx, &client, "SELECT * FROM clients WHERE email = $1", email)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("client %s: %w", email, models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// CreateClient inserts a new client profile
func (s *Store) CreateClient(ctx context.Context, client *models.Client) error {
	query := `
		INSERT INTO clients (id, name, email, phone_number, company_name, address, avatar_url, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	return s.db.GetContext(ctx, client, query,
		client.ID, client.Name, client.Email, client.PhoneNumber,
		client.CompanyName, client.Address, client.AvatarURL, client.PasswordHash)
}

// UpsertClient creates or replaces the profile fields for a principal
func (s *Store) UpsertClient(ctx context.Context, client *models.Client) error {
	query := `
		INSERT INTO clients (id, name, email, phone_number, company_name, address, avatar_url, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			phone_number = EXCLUDED.phone_number,
			company_name = EXCLUDED.company_name,
			address = EXCLUDED.address,
			avatar_url = EXCLUDED.avatar_url,
			updated_at = NOW()
		RETURNING created_at, updated_at`

	return s.db.GetContext(ctx, client, query,
		client.ID, client.Name, client.Email, client.PhoneNumber,
		client.CompanyName, client.Address, client.AvatarURL, client.PasswordHash)
}

// UpdateClientAvatar updates the stored avatar URL for a principal
func (s *Store) UpdateClientAvatar(ctx context.Context, id, avatarURL string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE clients SET avatar_url = $1, updated_at = NOW() WHERE id = $2",
		avatarURL, id)
	return err
}

// GetSpareParts retrieves the full catalog ordered by name
func (s *Store) GetSpareParts(ctx context.Context) ([]models.SparePart, error) {
	var parts []models.SparePart
	err := s.db.SelectContext(ctx, &parts, "SELECT * FROM spare_parts ORDER BY name")
	return parts, err
}

// GetSparePartByID retrieves a single part
func (s *Store) GetSparePartByID(ctx context.Context, id string) (*models.SparePart, error) {
	var part models.SparePart
	err := s.db.GetContext(ctx, &part, "SELECT * FROM spare_parts WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("spare part %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &part, nil
}

// CreateSparePart inserts a new catalog entry
func (s *Store) CreateSparePart(ctx context.Context, part *models.SparePart) error {
	query := `
		INSERT INTO spare_parts (id, name, part_number, category, price, stock_availability,
			compatible_vehicles, description, specifications, image, additional_images)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at`

	return s.db.GetContext(ctx, &part.CreatedAt, query,
		part.ID, part.Name, part.PartNumber, part.Category, part.Price,
		part.StockAvailability, part.CompatibleVehicles, part.Description,
		part.Specifications, part.Image, part.AdditionalImages)
}

// UpdateSparePartStock updates the stock count for a part
func (s *Store) UpdateSparePartStock(ctx context.Context, id string, stock int) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE spare_parts SET stock_availability = $1 WHERE id = $2",
		stock, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("spare part %s: %w", id, models.ErrNotFound)
	}
	return nil
}
