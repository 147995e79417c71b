package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/user/nairaswap/backend/internal/authz"
)

// RoleStore resolves roles from the user_roles table. It implements
// authz.RoleResolver; absence of an admin row means ordinary-user privileges.
type RoleStore struct{}

func NewRoleStore() *RoleStore {
	return &RoleStore{}
}

func (s *RoleStore) ResolveRole(ctx context.Context, userID uuid.UUID) (authz.Role, error) {
	var isAdmin bool
	query := `SELECT EXISTS (SELECT 1 FROM user_roles WHERE user_id = $1 AND role = 'admin')`

	if err := DB.QueryRow(ctx, query, userID).Scan(&isAdmin); err != nil {
		return "", fmt.Errorf("error resolving role for user %s: %w", userID, err)
	}
	if isAdmin {
		return authz.RoleAdmin, nil
	}
	return authz.RoleUser, nil
}
