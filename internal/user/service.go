package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/casefall/casefall/internal/auth"
	"github.com/casefall/casefall/internal/domain"
	"github.com/casefall/casefall/internal/event"
	"github.com/casefall/casefall/internal/logger"
	"github.com/casefall/casefall/internal/repository"
	"github.com/casefall/casefall/internal/utils"
)

// Service defines the interface for account operations
type Service interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	GetProfile(ctx context.Context, session auth.Session) (*domain.User, error)
}

type service struct {
	repo   repository.User
	issuer *auth.TokenIssuer
	bus    event.Bus
	now    func() time.Time
}

// NewService creates a new user service
func NewService(repo repository.User, issuer *auth.TokenIssuer, bus event.Bus) Service {
	return &service{
		repo:   repo,
		issuer: issuer,
		bus:    bus,
		now:    time.Now,
	}
}

// Register creates an account with the starting balance and returns the
// user plus a session token.
func (s *service) Register(ctx context.Context, username, email, password string) (*domain.User, string, error) {
	log := logger.FromContext(ctx)

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Balance:      domain.StartingBalance,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}

	// The grant is recorded after the fact; a failure here leaves the
	// account usable with its ledger one entry short.
	if err := s.recordStartingBalance(ctx, user); err != nil {
		log.Warn("Failed to record starting balance ledger entry", "userID", user.ID, "error", err)
	}

	token, err := s.issuer.Issue(user, s.now())
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	log.Info(LogMsgUserRegistered, "userID", user.ID, "username", user.Username)

	if s.bus != nil {
		if err := s.bus.Publish(ctx, event.NewUserRegisteredEvent(user)); err != nil {
			log.Warn("Failed to publish user registered event", "error", err)
		}
	}

	return user, token, nil
}

func (s *service) recordStartingBalance(ctx context.Context, user *domain.User) error {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	entry := &domain.LedgerEntry{
		UserID:        user.ID,
		Type:          domain.LedgerStartingBalance,
		Amount:        domain.StartingBalance,
		BalanceBefore: 0,
		BalanceAfter:  domain.StartingBalance,
		Description:   fmt.Sprintf("Starting balance %s", utils.FormatCents(domain.StartingBalance)),
	}
	if err := tx.InsertLedgerEntry(ctx, entry); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Login checks the credentials, grants the daily reward when due, and
// returns the user plus a session token. Lookup and password failures are
// indistinguishable to the caller.
func (s *service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	log := logger.FromContext(ctx)

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrBadCredential
		}
		return nil, "", err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", domain.ErrBadCredential
	}

	if s.rewardDue(user) {
		if granted, err := s.grantDailyReward(ctx, user); err != nil {
			log.Warn("Failed to grant daily reward", "userID", user.ID, "error", err)
		} else if granted {
			log.Info(LogMsgDailyRewardGranted, "userID", user.ID, "amount", DailyRewardAmount)
			if s.bus != nil {
				if err := s.bus.Publish(ctx, event.NewDailyRewardEvent(user, DailyRewardAmount)); err != nil {
					log.Warn("Failed to publish daily reward event", "error", err)
				}
			}
		}
	}

	token, err := s.issuer.Issue(user, s.now())
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	log.Info(LogMsgUserLoggedIn, "userID", user.ID, "username", user.Username)
	return user, token, nil
}

func (s *service) rewardDue(user *domain.User) bool {
	return user.LastDailyRewardAt == nil || s.now().Sub(*user.LastDailyRewardAt) >= DailyRewardCooldown
}

// grantDailyReward credits the login bonus under a user row lock. The
// cooldown is re-checked under the lock so two concurrent logins cannot
// both grant. Reports whether the grant happened and updates user in place.
func (s *service) grantDailyReward(ctx context.Context, user *domain.User) (bool, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	locked, err := tx.GetUserForUpdate(ctx, user.ID)
	if err != nil {
		return false, err
	}
	if locked.LastDailyRewardAt != nil && s.now().Sub(*locked.LastDailyRewardAt) < DailyRewardCooldown {
		return false, nil
	}

	newBalance := locked.Balance + DailyRewardAmount
	if err := tx.UpdateUserBalance(ctx, user.ID, newBalance); err != nil {
		return false, err
	}

	grantedAt := s.now()
	if err := tx.UpdateLastDailyReward(ctx, user.ID, grantedAt); err != nil {
		return false, err
	}

	entry := &domain.LedgerEntry{
		UserID:        user.ID,
		Type:          domain.LedgerDailyLogin,
		Amount:        DailyRewardAmount,
		BalanceBefore: locked.Balance,
		BalanceAfter:  newBalance,
		Description:   fmt.Sprintf("Daily login reward %s", utils.FormatCents(DailyRewardAmount)),
	}
	if err := tx.InsertLedgerEntry(ctx, entry); err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("%s: %w", ErrContextFailedToCommitTx, err)
	}

	user.Balance = newBalance
	user.LastDailyRewardAt = &grantedAt
	return true, nil
}

// GetProfile returns the session user's account
func (s *service) GetProfile(ctx context.Context, session auth.Session) (*domain.User, error) {
	return s.repo.GetUserByID(ctx, session.UserID)
}
