package user

import "time"

// DailyRewardAmount is the login bonus, in cents.
const DailyRewardAmount int64 = 10000

// DailyRewardCooldown is how long a user waits between login bonuses.
const DailyRewardCooldown = 24 * time.Hour

// Error context messages
const (
	ErrContextFailedToBeginTx  = "failed to begin transaction"
	ErrContextFailedToCommitTx = "failed to commit transaction"
)

// Log messages
const (
	LogMsgUserRegistered     = "User registered"
	LogMsgUserLoggedIn       = "User logged in"
	LogMsgDailyRewardGranted = "Daily reward granted"
)
