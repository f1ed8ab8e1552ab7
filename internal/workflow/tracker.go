package workflow

import (
	"context"
	"sync"

	"github.com/univflow/admission-api/internal/models"
	"github.com/univflow/admission-api/internal/stage"
)

// RemoteStore is what the workflow needs from the authoritative store.
// Failure is reported in the return values: empty list, nil record or false.
type RemoteStore interface {
	ListAgents(ctx context.Context) []models.User
	ListStudents(ctx context.Context) []models.Student
	CreateStudent(ctx context.Context, s models.Student) *models.Student
	UpdateStudent(ctx context.Context, id string, patch models.StudentPatch) bool
	DeleteStudent(ctx context.Context, id string) bool
	SaveAgent(ctx context.Context, u models.User) bool
	UpdateAgent(ctx context.Context, id string, u models.User) bool
	DeleteAgent(ctx context.Context, id string) bool
}

// Snapshot is a copy of the tracked collections, handed to subscribers
// after every successful mutation.
type Snapshot struct {
	Users       []models.User
	CurrentUser *models.User
	Students    []models.Student
}

// Tracker owns the users and students collections, the session user and the
// UI cursor. It is the single writer: every mutation goes through one of its
// methods under one mutex, and each successful mutation publishes a snapshot
// to the subscribers registered before startup.
//
// Nothing here guards against a second process writing the same remote
// collections or cache keys; last writer wins across sessions.
type Tracker struct {
	remote RemoteStore

	mu               sync.Mutex
	users            []models.User
	students         []models.Student
	currentUser      *models.User
	cursor           stage.Cursor
	currentStudentID string
	ready            bool
	generation       uint64
	subscribers      []func(Snapshot)
}

func NewTracker(remote RemoteStore) *Tracker {
	return &Tracker{
		remote: remote,
		cursor: stage.At(stage.Enquiry),
	}
}

// Subscribe registers a snapshot consumer. Subscribers run synchronously,
// in registration order, while the tracker lock is held; they must not call
// back into the tracker. Register before Reconcile.
func (t *Tracker) Subscribe(fn func(Snapshot)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.subscribers = append(t.subscribers, fn)
}

// SeedUsers installs the bootstrap users (typically the configured admin)
// before reconciliation. Phase 1 of the reconcile overwrites this when the
// cache has a users snapshot.
func (t *Tracker) SeedUsers(users []models.User) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.users = append([]models.User(nil), users...)
}

// Ready reports whether the remote sync has settled, successfully or not.
func (t *Tracker) Ready() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ready
}

// Cursor returns the UI position and the record being walked, if any.
func (t *Tracker) Cursor() (stage.Cursor, string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cursor, t.currentStudentID
}

// Snapshot returns a copy of the tracked collections.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

// CurrentUser returns the session user, or nil when logged out.
func (t *Tracker) CurrentUser() *models.User {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.currentUser == nil {
		return nil
	}
	u := *t.currentUser
	return &u
}

// Users returns a copy of the users collection.
func (t *Tracker) Users() []models.User {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]models.User(nil), t.users...)
}

// Students returns a copy of the students collection.
func (t *Tracker) Students() []models.Student {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]models.Student(nil), t.students...)
}

// StudentsByAgent returns the records owned by one agent.
func (t *Tracker) StudentsByAgent(agentID string) []models.Student {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []models.Student
	for _, s := range t.students {
		if s.AgentID == agentID {
			out = append(out, s)
		}
	}
	return out
}

// Student returns one record by id.
func (t *Tracker) Student(id string) (models.Student, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, s := range t.students {
		if s.ID == id {
			return s, true
		}
	}
	return models.Student{}, false
}

// FindUser looks a user up by id.
func (t *Tracker) FindUser(id string) (models.User, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, u := range t.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

// SetCurrentUser records a successful login and positions the cursor:
// agents land on their dashboard, the admin keeps the stage view.
func (t *Tracker) SetCurrentUser(u models.User) {
	t.mu.Lock()
	defer t.mu.Unlock()
	user := u
	t.currentUser = &user
	if !u.IsAdmin() {
		t.cursor = stage.Dashboard
	}
	t.publishLocked()
}

// Logout clears the session user; the mirror removes its cache key.
func (t *Tracker) Logout() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.currentUser = nil
	t.cursor = stage.At(stage.Enquiry)
	t.currentStudentID = ""
	t.publishLocked()
}

// ExitToDashboard is the explicit exit action reachable from any stage.
func (t *Tracker) ExitToDashboard() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cursor = stage.Dashboard
	t.currentStudentID = ""
	t.publishLocked()
}

// ViewStudent points the cursor at the stage a record is currently in,
// derived from its field state. Legacy records that resolve to Unknown
// send the viewer back to the dashboard instead of guessing a stage.
func (t *Tracker) ViewStudent(id string) (stage.Stage, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, s := range t.students {
		if s.ID == id {
			derived := stage.Resolve(s)
			t.currentStudentID = id
			if derived == stage.Unknown {
				t.cursor = stage.Dashboard
			} else {
				t.cursor = stage.At(derived)
			}
			t.publishLocked()
			return derived, nil
		}
	}
	return stage.Unknown, ErrNotFound
}

// StartNewEnquiry resets the walk state and opens stage 1.
func (t *Tracker) StartNewEnquiry() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.currentStudentID = ""
	t.cursor = stage.At(stage.Enquiry)
	t.publishLocked()
}

func (t *Tracker) snapshotLocked() Snapshot {
	snap := Snapshot{
		Users:    append([]models.User(nil), t.users...),
		Students: append([]models.Student(nil), t.students...),
	}
	if t.currentUser != nil {
		u := *t.currentUser
		snap.CurrentUser = &u
	}
	return snap
}

func (t *Tracker) publishLocked() {
	snap := t.snapshotLocked()
	for _, fn := range t.subscribers {
		fn(snap)
	}
}
