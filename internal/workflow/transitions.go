package workflow

import (
	"context"
	"fmt"

	"github.com/univflow/admission-api/internal/models"
	"github.com/univflow/admission-api/internal/stage"
)

// NewEnquiry creates an admission case for the acting agent. The record is
// written to the remote store first; only a non-nil result, carrying the
// server-assigned id, is appended to the in-memory collection. On failure
// nothing is added locally and the cursor stays put.
func (t *Tracker) NewEnquiry(ctx context.Context, actor models.User, s models.Student) (*models.Student, error) {
	if s.Name == "" || s.Mobile == "" {
		return nil, fmt.Errorf("%w: student name and mobile are required", ErrValidation)
	}
	if !actor.IsAgent() && !actor.IsAdmin() {
		return nil, ErrPermission
	}

	// Ownership is set once here and never reassigned.
	if actor.IsAgent() {
		s.AgentID = actor.AgentID
		s.AgentName = actor.Name
	}
	s.Status = models.StatusEnquiry
	s.CurrentStage = stage.LabelRegistration
	s.Stage = int(stage.Enquiry)

	created := t.remote.CreateStudent(ctx, s)
	if created == nil {
		return nil, fmt.Errorf("%w: create enquiry", ErrRemote)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.students = append(t.students, *created)
	t.currentStudentID = created.ID
	t.cursor = stage.At(stage.ApplicationFee)
	t.publishLocked()
	return created, nil
}

// Advance moves a record from its current stage to next. The patch, merged
// with the in-progress status and the stage label, goes to the remote store
// first; only on success is it applied to the in-memory record and the
// cursor moved. On failure both are untouched and the caller decides what
// to do; there is no automatic retry.
func (t *Tracker) Advance(ctx context.Context, id string, patch models.StudentPatch, next stage.Stage, label string) error {
	t.mu.Lock()
	found := false
	for _, s := range t.students {
		if s.ID == id {
			found = true
			break
		}
	}
	t.mu.Unlock()
	if !found {
		return ErrNotFound
	}

	status := models.StatusInProgress
	stageNum := int(next)
	patch.Status = &status
	patch.CurrentStage = &label
	patch.Stage = &stageNum

	if !t.remote.UpdateStudent(ctx, id, patch) {
		return fmt.Errorf("%w: advance to %s", ErrRemote, next)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.students {
		if t.students[i].ID == id {
			patch.Apply(&t.students[i])
			break
		}
	}
	t.currentStudentID = id
	t.cursor = stage.At(next)
	t.publishLocked()
	return nil
}

// CompleteAdmission records the final stage. Like every other transition it
// is gated on the remote write; on success the record is marked completed
// and the cursor returns to the dashboard.
func (t *Tracker) CompleteAdmission(ctx context.Context, id string, details models.AdmissionDetails) error {
	t.mu.Lock()
	found := false
	for _, s := range t.students {
		if s.ID == id {
			found = true
			break
		}
	}
	t.mu.Unlock()
	if !found {
		return ErrNotFound
	}

	status := models.StatusCompleted
	label := stage.LabelAdmissionCompleted
	stageNum := int(stage.Admission)
	patch := models.StudentPatch{
		AdmissionDetails: &details,
		Status:           &status,
		CurrentStage:     &label,
		Stage:            &stageNum,
	}

	if !t.remote.UpdateStudent(ctx, id, patch) {
		return fmt.Errorf("%w: complete admission", ErrRemote)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.students {
		if t.students[i].ID == id {
			patch.Apply(&t.students[i])
			break
		}
	}
	t.currentStudentID = ""
	t.cursor = stage.Dashboard
	t.publishLocked()
	return nil
}

// RemoveStudent drops a record, remote first. The walk state is reset when
// the removed record was the one being viewed.
func (t *Tracker) RemoveStudent(ctx context.Context, id string) error {
	t.mu.Lock()
	found := false
	for _, s := range t.students {
		if s.ID == id {
			found = true
			break
		}
	}
	t.mu.Unlock()
	if !found {
		return ErrNotFound
	}

	if !t.remote.DeleteStudent(ctx, id) {
		return fmt.Errorf("%w: delete student", ErrRemote)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	kept := t.students[:0]
	for _, s := range t.students {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	t.students = kept
	if t.currentStudentID == id {
		t.currentStudentID = ""
		t.cursor = stage.Dashboard
	}
	t.publishLocked()
	return nil
}
