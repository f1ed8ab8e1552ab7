package workflow

import "errors"

// Failure taxonomy of the workflow core. Every remote failure is terminal
// for that attempt; nothing in this package retries.
var (
	// ErrValidation means a required field was missing before any remote
	// call was attempted. No state was mutated, no remote call was made.
	ErrValidation = errors.New("missing required fields")

	// ErrRemote means the remote store rejected or never received the
	// operation. Local state is unchanged and the cursor did not move.
	ErrRemote = errors.New("remote store operation failed")

	// ErrNotFound means the record id is not in the in-memory collection.
	ErrNotFound = errors.New("student not found")

	// ErrDuplicate means the agent uniqueness guard rejected a candidate.
	ErrDuplicate = errors.New("agent id or mobile already in use")

	// ErrPermission means the acting user's role does not allow the
	// operation.
	ErrPermission = errors.New("permission denied")
)
