package workflow

import (
	"context"
	"encoding/json"
	"log"

	"github.com/univflow/admission-api/internal/cache"
)

// CacheMirror returns a snapshot subscriber that writes every published
// snapshot through to the cache store under the fixed application keys.
// Mirror writes are causally ordered after the mutation that produced the
// snapshot; write errors are logged, never surfaced, since the cache is a
// non-authoritative copy.
func CacheMirror(store cache.Store) func(Snapshot) {
	return func(snap Snapshot) {
		ctx := context.Background()

		if raw, err := json.Marshal(snap.Users); err == nil {
			if err := store.Set(ctx, cache.KeyUsers, string(raw)); err != nil {
				log.Printf("mirror: write users: %v", err)
			}
		}

		if raw, err := json.Marshal(snap.Students); err == nil {
			if err := store.Set(ctx, cache.KeyStudents, string(raw)); err != nil {
				log.Printf("mirror: write students: %v", err)
			}
		}

		if snap.CurrentUser == nil {
			// Logged out: the session key is removed, not emptied.
			if err := store.Remove(ctx, cache.KeyCurrentUser); err != nil {
				log.Printf("mirror: clear current user: %v", err)
			}
			return
		}
		if raw, err := json.Marshal(snap.CurrentUser); err == nil {
			if err := store.Set(ctx, cache.KeyCurrentUser, string(raw)); err != nil {
				log.Printf("mirror: write current user: %v", err)
			}
		}
	}
}
