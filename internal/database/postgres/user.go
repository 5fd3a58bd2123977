package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/casefall/casefall/internal/domain"
	"github.com/casefall/casefall/internal/repository"
)

const userColumns = `id, username, email, password_hash, balance, last_daily_reward_at, created_at`

// UserRepository implements repository.User backed by PostgreSQL
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Balance, &u.LastDailyRewardAt, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new user row. The generated ID and creation time are
// written back onto the user.
func (r *UserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash, balance)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		user.Username, user.Email, user.PasswordHash, user.Balance,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, constraintUsersEmail) {
			return domain.ErrEmailTaken
		}
		if isUniqueViolation(err, constraintUsersUsername) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// GetUserByUsername retrieves a user by username
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

// BeginTx starts a user transaction
func (r *UserRepository) BeginTx(ctx context.Context) (repository.UserTx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &userTx{tx: tx}, nil
}

type userTx struct {
	tx pgx.Tx
}

// Commit commits the transaction
func (t *userTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction
func (t *userTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// GetUserForUpdate retrieves a user row with a SELECT FOR UPDATE lock
func (t *userTx) GetUserForUpdate(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return getUserForUpdate(ctx, t.tx, userID)
}

// UpdateUserBalance sets the user's balance
func (t *userTx) UpdateUserBalance(ctx context.Context, userID uuid.UUID, balance int64) error {
	return updateUserBalance(ctx, t.tx, userID, balance)
}

// UpdateLastDailyReward records when the daily reward was last granted
func (t *userTx) UpdateLastDailyReward(ctx context.Context, userID uuid.UUID, at time.Time) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE users SET last_daily_reward_at = $2 WHERE id = $1`, userID, at)
	if err != nil {
		return fmt.Errorf("failed to update last daily reward: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// InsertLedgerEntry appends a ledger entry
func (t *userTx) InsertLedgerEntry(ctx context.Context, entry *domain.LedgerEntry) error {
	return insertLedgerEntry(ctx, t.tx, entry)
}

// getUserForUpdate is shared by every transaction type that locks a user row
func getUserForUpdate(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*domain.User, error) {
	user, err := scanUser(tx.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user with lock: %w", err)
	}
	return user, nil
}

func updateUserBalance(ctx context.Context, tx pgx.Tx, userID uuid.UUID, balance int64) error {
	tag, err := tx.Exec(ctx,
		`UPDATE users SET balance = $2 WHERE id = $1`, userID, balance)
	if err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func insertLedgerEntry(ctx context.Context, tx pgx.Tx, entry *domain.LedgerEntry) error {
	err := tx.QueryRow(ctx,
		`INSERT INTO ledger_entries (user_id, type, amount, balance_before, balance_after, description, reference_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		entry.UserID, entry.Type, entry.Amount, entry.BalanceBefore, entry.BalanceAfter,
		entry.Description, entry.ReferenceID,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert ledger entry: %w", err)
	}
	return nil
}
