package database

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/user/nairaswap/backend/internal/models"
)

func TestCreateTradeRejectsUnknownKind(t *testing.T) {
	trade := &models.Trade{UserID: uuid.New(), Kind: "barter"}

	err := CreateTrade(context.Background(), nil, trade)
	require.ErrorIs(t, err, models.ErrInvalidInput)
}
