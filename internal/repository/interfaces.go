package repository

import "context"

// Well-known local storage keys.
const (
	KeyTelegramID = "telegram_id"
	KeyUserName   = "user_name"
	KeyUserEmail  = "user_email"
	KeyUserPlan   = "user_plan"
)

// LocalStore is the client's durable key-value storage.
type LocalStore interface {
	// Get returns the stored value or an error wrapping ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}
