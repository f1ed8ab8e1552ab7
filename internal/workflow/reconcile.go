package workflow

import (
	"context"
	"encoding/json"
	"log"

	"github.com/univflow/admission-api/internal/cache"
	"github.com/univflow/admission-api/internal/models"
	"github.com/univflow/admission-api/internal/stage"
)

// Reconcile resolves the initial in-memory state: phase 1 restores the
// cached snapshots immediately, phase 2 fetches from the remote store in the
// background. The tracker answers requests from cached data until the sync
// settles.
func (t *Tracker) Reconcile(ctx context.Context, store cache.Store) {
	t.LoadFromCache(ctx, store)
	go t.SyncRemote(context.WithoutCancel(ctx))
}

// LoadFromCache adopts the cached users, current-user and students snapshots
// when present and parseable. A slice that is missing or fails to parse is
// logged and left at its default; startup never aborts here.
func (t *Tracker) LoadFromCache(ctx context.Context, store cache.Store) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if raw, ok, err := store.Get(ctx, cache.KeyUsers); err != nil {
		log.Printf("reconcile: read users cache: %v", err)
	} else if ok {
		var users []models.User
		if err := json.Unmarshal([]byte(raw), &users); err != nil {
			log.Printf("reconcile: parse users cache: %v", err)
		} else {
			t.users = users
		}
	}

	if raw, ok, err := store.Get(ctx, cache.KeyCurrentUser); err != nil {
		log.Printf("reconcile: read current user cache: %v", err)
	} else if ok {
		var user models.User
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			log.Printf("reconcile: parse current user cache: %v", err)
		} else {
			t.currentUser = &user
		}
	}

	if raw, ok, err := store.Get(ctx, cache.KeyStudents); err != nil {
		log.Printf("reconcile: read students cache: %v", err)
	} else if ok {
		var students []models.Student
		if err := json.Unmarshal([]byte(raw), &students); err != nil {
			log.Printf("reconcile: parse students cache: %v", err)
		} else {
			t.students = students
		}
	}

	t.publishLocked()
}

// SyncRemote fetches the agent subset and the full students collection and,
// for each non-empty response, replaces the in-memory collection wholesale.
// A remote listing that is empty or failed keeps the cached state; the
// remote wins only when it has something to say. Either way the tracker is
// marked ready when the sync settles.
//
// Each call bumps a generation counter; a sync overtaken by a newer one
// throws its results away so a slow response cannot clobber fresher state.
func (t *Tracker) SyncRemote(ctx context.Context) {
	t.mu.Lock()
	t.generation++
	gen := t.generation
	t.mu.Unlock()

	agents := t.remote.ListAgents(ctx)
	students := t.remote.ListStudents(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()

	if gen != t.generation {
		log.Printf("reconcile: discarding stale sync (generation %d < %d)", gen, t.generation)
		return
	}

	if len(agents) > 0 {
		// Full replace of the agent subset: admins survive, any cached
		// agent not in the remote listing is dropped.
		var merged []models.User
		for _, u := range t.users {
			if u.IsAdmin() {
				merged = append(merged, u)
			}
		}
		t.users = append(merged, agents...)
		log.Printf("reconcile: adopted %d agents from remote", len(agents))
	}

	if len(students) > 0 {
		for _, s := range students {
			if !stage.Check(s) {
				log.Printf("reconcile: student %s stored stage %d disagrees with derived stage %d",
					s.ID, s.Stage, stage.Resolve(s))
			}
		}
		t.students = students
		log.Printf("reconcile: adopted %d students from remote", len(students))
	}

	t.ready = true
	t.publishLocked()
}
