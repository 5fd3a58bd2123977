package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/casefall/casefall/internal/domain"
)

// User defines the interface for user persistence
type User interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	BeginTx(ctx context.Context) (UserTx, error)
}

// UserTx defines the interface for user transactions. Balance reads inside
// a transaction take a row lock so concurrent mutations serialize.
type UserTx interface {
	Tx
	GetUserForUpdate(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	UpdateUserBalance(ctx context.Context, userID uuid.UUID, balance int64) error
	UpdateLastDailyReward(ctx context.Context, userID uuid.UUID, at time.Time) error
	InsertLedgerEntry(ctx context.Context, entry *domain.LedgerEntry) error
}
