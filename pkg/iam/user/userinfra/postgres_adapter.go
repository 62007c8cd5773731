package userinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hirehub/hirehub/pkg/iam/user"
	"github.com/hirehub/hirehub/pkg/kernel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresUserRepository implements user.Repository using PostgreSQL
type PostgresUserRepository struct {
	db *sqlx.DB
}

// NewPostgresUserRepository creates a new PostgreSQL user repository
func NewPostgresUserRepository(db *sqlx.DB) *PostgresUserRepository {
	return &PostgresUserRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type userModel struct {
	ID           string          `db:"id"`
	FullName     string          `db:"full_name"`
	Email        string          `db:"email"`
	PhoneNumber  string          `db:"phone_number"`
	PasswordHash string          `db:"password_hash"`
	Role         string          `db:"role"`
	Profile      json.RawMessage `db:"profile"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

// toEntity converts database model to domain entity
func (m *userModel) toEntity() (*user.User, error) {
	var profile user.Profile
	if len(m.Profile) > 0 {
		if err := json.Unmarshal(m.Profile, &profile); err != nil {
			return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
		}
	}

	return &user.User{
		ID:           kernel.UserID(m.ID),
		FullName:     m.FullName,
		Email:        kernel.Email(m.Email),
		PhoneNumber:  m.PhoneNumber,
		PasswordHash: m.PasswordHash,
		Role:         kernel.Role(m.Role),
		Profile:      profile,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}, nil
}

// fromEntity converts domain entity to database model
func fromEntity(u *user.User) (*userModel, error) {
	profile, err := json.Marshal(u.Profile)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile: %w", err)
	}

	return &userModel{
		ID:           string(u.ID),
		FullName:     u.FullName,
		Email:        string(u.Email),
		PhoneNumber:  u.PhoneNumber,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		Profile:      profile,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}, nil
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create creates a new user
func (r *PostgresUserRepository) Create(ctx context.Context, userEntity *user.User) error {
	model, err := fromEntity(userEntity)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO users (
			id, full_name, email, phone_number, password_hash,
			role, profile, created_at, updated_at
		) VALUES (
			:id, :full_name, :email, :phone_number, :password_hash,
			:role, :profile, :created_at, :updated_at
		)
	`

	_, err = r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation on email
				return user.ErrEmailTaken()
			}
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// Update updates an existing user
func (r *PostgresUserRepository) Update(ctx context.Context, id kernel.UserID, userEntity *user.User) error {
	model, err := fromEntity(userEntity)
	if err != nil {
		return err
	}

	query := `
		UPDATE users SET
			full_name = :full_name,
			email = :email,
			phone_number = :phone_number,
			password_hash = :password_hash,
			profile = :profile,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return user.ErrUserNotFound()
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id kernel.UserID) (*user.User, error) {
	query := `
		SELECT
			id, full_name, email, phone_number, password_hash,
			role, profile, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var model userModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, user.ErrUserNotFound()
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return model.toEntity()
}

// GetByEmail retrieves a user by email
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email kernel.Email) (*user.User, error) {
	query := `
		SELECT
			id, full_name, email, phone_number, password_hash,
			role, profile, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var model userModel
	err := r.db.GetContext(ctx, &model, query, string(email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, user.ErrUserNotFound()
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return model.toEntity()
}

// ExistsByEmail checks if an account exists for an email
func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email kernel.Email) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, string(email))
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}

	return exists, nil
}
