package postgres

// PostgreSQL error code for unique constraint violations
const pgUniqueViolationCode = "23505"

// Unique constraint names from the migrations
const (
	constraintUsersEmail    = "users_email_key"
	constraintUsersUsername = "users_username_key"
)
