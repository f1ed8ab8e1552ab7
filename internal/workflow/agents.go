package workflow

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/univflow/admission-api/internal/models"
)

// AddAgent appends a new agent unless an existing user already holds its
// agent id or its mobile number; matching either field is enough to reject.
// Rejection mutates nothing and returns false. Accepted candidates without
// a remote-assigned id get a locally generated one.
//
// The remote save afterwards is best effort: the reconciler's next sync is
// what makes the remote listing authoritative, and nothing here guards
// against a concurrent insert from another session.
func (t *Tracker) AddAgent(ctx context.Context, candidate models.User) (models.User, bool) {
	t.mu.Lock()
	for _, u := range t.users {
		if (u.AgentID != "" && u.AgentID == candidate.AgentID) ||
			(u.Mobile != "" && u.Mobile == candidate.Mobile) {
			t.mu.Unlock()
			return models.User{}, false
		}
	}

	candidate.Role = models.RoleAgent
	if candidate.ID == "" {
		candidate.ID = uuid.NewString()
	}
	t.users = append(t.users, candidate)
	t.publishLocked()
	t.mu.Unlock()

	if !t.remote.SaveAgent(ctx, candidate) {
		log.Printf("workflow: agent %s kept locally, remote save failed", candidate.ID)
	}
	return candidate, true
}

// UpdateUser replaces a user's mutable fields in place. Role never changes.
// The session user is refreshed when it is the one being updated.
func (t *Tracker) UpdateUser(ctx context.Context, updated models.User) bool {
	t.mu.Lock()
	found := false
	for i, u := range t.users {
		if u.ID == updated.ID {
			updated.Role = u.Role
			if updated.Password == "" {
				updated.Password = u.Password
			}
			t.users[i] = updated
			found = true
			break
		}
	}
	if !found {
		t.mu.Unlock()
		return false
	}
	if t.currentUser != nil && t.currentUser.ID == updated.ID {
		u := updated
		t.currentUser = &u
	}
	t.publishLocked()
	t.mu.Unlock()

	if updated.IsAgent() {
		if !t.remote.UpdateAgent(ctx, updated.ID, updated) {
			log.Printf("workflow: user %s updated locally, remote update failed", updated.ID)
		}
	}
	return true
}

// RemoveAgent drops an agent from the users collection and, best effort,
// from the remote store. Admins cannot be removed.
func (t *Tracker) RemoveAgent(ctx context.Context, id string) bool {
	t.mu.Lock()
	found := false
	kept := t.users[:0]
	for _, u := range t.users {
		if u.ID == id && u.IsAgent() {
			found = true
			continue
		}
		kept = append(kept, u)
	}
	t.users = kept
	if found {
		t.publishLocked()
	}
	t.mu.Unlock()

	if !found {
		return false
	}
	if !t.remote.DeleteAgent(ctx, id) {
		log.Printf("workflow: agent %s removed locally, remote delete failed", id)
	}
	return true
}
