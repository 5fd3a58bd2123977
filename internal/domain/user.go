package domain

import (
	"time"

	"github.com/google/uuid"
)

// Starting balance granted to new accounts, in cents.
const StartingBalance int64 = 10000

// User represents a registered account. Balance is held in cents and only
// ever mutated under a row lock.
type User struct {
	ID                uuid.UUID  `json:"id"`
	Username          string     `json:"username"`
	Email             string     `json:"email"`
	PasswordHash      string     `json:"-"`
	Balance           int64      `json:"balance"` // cents
	LastDailyRewardAt *time.Time `json:"last_daily_reward_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// CanAfford reports whether the balance covers a price.
func (u *User) CanAfford(price int64) bool {
	return u.Balance >= price
}
