package cache

import "context"

// Keys for the application snapshots. Each value is a JSON document.
const (
	KeyUsers       = "app_users"
	KeyCurrentUser = "app_current_user"
	KeyStudents    = "app_students"
	KeyChat        = "app_chat_messages"
)

// Store is a persisted key to JSON-string mapping. No TTL, no eviction;
// a missing key yields ok=false, not an error.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
