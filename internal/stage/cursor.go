package stage

import (
	"encoding/json"
	"fmt"
)

// Cursor is the UI position of one session: a numeric stage while walking a
// record through the workflow, or Dashboard when idle outside it.
type Cursor int

const Dashboard Cursor = 0

// At wraps a stage as a cursor position.
func At(s Stage) Cursor { return Cursor(s) }

func (c Cursor) IsDashboard() bool { return c == Dashboard }

// Stage returns the stage the cursor points at, or Unknown for the dashboard.
func (c Cursor) Stage() Stage {
	if c >= 1 && c <= 5 {
		return Stage(c)
	}
	return Unknown
}

func (c Cursor) String() string {
	if c.IsDashboard() {
		return "dashboard"
	}
	return fmt.Sprintf("%d", int(c))
}

// MarshalJSON renders the dashboard sentinel as the string "dashboard" and
// every stage position as its number, matching what the UI consumes.
func (c Cursor) MarshalJSON() ([]byte, error) {
	if c.IsDashboard() {
		return json.Marshal("dashboard")
	}
	return json.Marshal(int(c))
}

func (c *Cursor) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*c = Cursor(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s != "dashboard" {
		return fmt.Errorf("invalid cursor %q", s)
	}
	*c = Dashboard
	return nil
}
