package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// User errors
	ErrMsgUserNotFound  = "user not found"
	ErrMsgEmailTaken    = "email already registered"
	ErrMsgUsernameTaken = "username already taken"
	ErrMsgBadCredential = "invalid email or password"

	// Auth errors
	ErrMsgUnauthenticated = "unauthenticated"

	// Case errors
	ErrMsgCaseNotFound   = "case not found"
	ErrMsgEmptyDropTable = "case has an empty or degenerate drop table"

	// Purchase errors
	ErrMsgPurchaseNotFound  = "purchased case not found"
	ErrMsgCaseAlreadyOpened = "case already opened"

	// Economy errors
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgItemNotFound      = "inventory item not found"
	ErrMsgAlreadySold       = "item already sold"

	// Database/System errors
	ErrMsgTxClosed = "tx is closed"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// User errors
	ErrUserNotFound  = errors.New(ErrMsgUserNotFound)
	ErrEmailTaken    = errors.New(ErrMsgEmailTaken)
	ErrUsernameTaken = errors.New(ErrMsgUsernameTaken)
	ErrBadCredential = errors.New(ErrMsgBadCredential)

	// Auth errors
	ErrUnauthenticated = errors.New(ErrMsgUnauthenticated)

	// Case errors
	ErrCaseNotFound   = errors.New(ErrMsgCaseNotFound)
	ErrEmptyDropTable = errors.New(ErrMsgEmptyDropTable)

	// Purchase errors
	ErrPurchaseNotFound  = errors.New(ErrMsgPurchaseNotFound)
	ErrCaseAlreadyOpened = errors.New(ErrMsgCaseAlreadyOpened)

	// Economy errors
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrItemNotFound      = errors.New(ErrMsgItemNotFound)
	ErrAlreadySold       = errors.New(ErrMsgAlreadySold)
)
