package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/user/nairaswap/backend/internal/models"
)

// CreateUser registers a new account. The credentials row, the profile, the
// default role and the NGN wallet are created in one transaction so a
// half-registered user can't exist.
func CreateUser(ctx context.Context, email, passwordHash, fullName string, phone *string, currency string) (*models.User, error) {
	user := &models.User{
		Email:    email,
		Password: passwordHash,
	}

	tx, err := DB.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("error starting signup transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO users (email, password_hash) VALUES ($1, $2) RETURNING id, created_at`,
		email, passwordHash,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error creating user %s: %w", email, err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO profiles (user_id, full_name, phone) VALUES ($1, $2, $3)`,
		user.ID, fullName, phone,
	); err != nil {
		return nil, fmt.Errorf("error creating profile for %s: %w", email, err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO user_roles (user_id, role) VALUES ($1, 'user')`,
		user.ID,
	); err != nil {
		return nil, fmt.Errorf("error assigning role for %s: %w", email, err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO wallets (user_id, currency) VALUES ($1, $2)`,
		user.ID, currency,
	); err != nil {
		return nil, fmt.Errorf("error creating wallet for %s: %w", email, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("error committing signup for %s: %w", email, err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email. Returns nil, nil if not found.
func GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password_hash, created_at FROM users WHERE email = $1`

	err := DB.QueryRow(ctx, query, email).
		Scan(&user.ID, &user.Email, &user.Password, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting user by email: %w", err)
	}
	return user, nil
}

// GetUserByID retrieves a user by ID. Returns nil, nil if not found.
func GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password_hash, created_at FROM users WHERE id = $1`

	err := DB.QueryRow(ctx, query, userID).
		Scan(&user.ID, &user.Email, &user.Password, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting user %s: %w", userID, err)
	}
	return user, nil
}

// UserRosterEntry is the admin view of one user: profile plus role.
type UserRosterEntry struct {
	models.Profile
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

// ListUsers returns the admin user roster, newest first.
func ListUsers(ctx context.Context) ([]*UserRosterEntry, error) {
	users := make([]*UserRosterEntry, 0)
	query := `SELECT p.user_id, p.full_name, p.phone, p.kyc_status, p.created_at, p.updated_at,
				 u.email,
				 EXISTS (SELECT 1 FROM user_roles r WHERE r.user_id = u.id AND r.role = 'admin') AS is_admin
			  FROM profiles p
			  JOIN users u ON u.id = p.user_id
			  ORDER BY p.created_at DESC`

	rows, err := DB.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying user roster: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		e := &UserRosterEntry{}
		err := rows.Scan(&e.UserID, &e.FullName, &e.Phone, &e.KYCStatus, &e.CreatedAt, &e.UpdatedAt,
			&e.Email, &e.IsAdmin)
		if err != nil {
			return nil, fmt.Errorf("error scanning user roster row: %w", err)
		}
		users = append(users, e)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating user roster rows: %w", rows.Err())
	}
	return users, nil
}

// UpdateKYCStatus sets a user's KYC status.
func UpdateKYCStatus(ctx context.Context, userID uuid.UUID, status string) error {
	cmdTag, err := DB.Exec(ctx,
		`UPDATE profiles SET kyc_status = $1, updated_at = NOW() WHERE user_id = $2`,
		status, userID)
	if err != nil {
		return fmt.Errorf("error updating kyc status for user %s: %w", userID, err)
	}
	if cmdTag.RowsAffected() != 1 {
		return models.ErrNotFound
	}
	return nil
}
