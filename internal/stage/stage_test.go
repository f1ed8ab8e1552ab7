package stage

import (
	"encoding/json"
	"testing"

	"github.com/univflow/admission-api/internal/models"
)

func feeOf(amount float64) *float64 {
	return &amount
}

func TestResolveCascade(t *testing.T) {
	tests := []struct {
		name    string
		student models.Student
		want    Stage
	}{
		{
			name:    "enquiry status wins over everything",
			student: models.Student{Status: models.StatusEnquiry, ApplicationFee: feeOf(250), RegistrationFee: feeOf(10000), CurrentStage: LabelAdmissionCompleted},
			want:    Enquiry,
		},
		{
			name:    "no application fee",
			student: models.Student{Status: models.StatusInProgress, CurrentStage: LabelRegistration},
			want:    ApplicationFee,
		},
		{
			name:    "application fee paid, no registration fee",
			student: models.Student{Status: models.StatusInProgress, ApplicationFee: feeOf(250), CurrentStage: LabelApplicationDone},
			want:    RegistrationFee,
		},
		{
			name:    "both fees paid, visit pending",
			student: models.Student{Status: models.StatusInProgress, ApplicationFee: feeOf(250), RegistrationFee: feeOf(10000), CurrentStage: LabelVisitPending},
			want:    UniversityVisit,
		},
		{
			name:    "confirmation substring moves to admission",
			student: models.Student{Status: models.StatusInProgress, ApplicationFee: feeOf(250), RegistrationFee: feeOf(10000), CurrentStage: LabelSeatPending},
			want:    Admission,
		},
		{
			name:    "completed label moves to admission",
			student: models.Student{Status: models.StatusCompleted, ApplicationFee: feeOf(250), RegistrationFee: feeOf(10000), CurrentStage: LabelAdmissionCompleted},
			want:    Admission,
		},
		{
			name:    "legacy record without currentStage",
			student: models.Student{Status: models.StatusInProgress, ApplicationFee: feeOf(250), RegistrationFee: feeOf(10000)},
			want:    Unknown,
		},
		{
			name:    "zero value record is an application fee case",
			student: models.Student{},
			want:    ApplicationFee,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.student)
			if got != tt.want {
				t.Fatalf("expected stage %d, got %d", tt.want, got)
			}
			// Pure: same input, same output.
			if again := Resolve(tt.student); again != got {
				t.Fatalf("expected repeated resolve %d, got %d", got, again)
			}
		})
	}
}

func TestResolveEnquiryIgnoresOtherFields(t *testing.T) {
	students := []models.Student{
		{Status: models.StatusEnquiry},
		{Status: models.StatusEnquiry, ApplicationFee: feeOf(1)},
		{Status: models.StatusEnquiry, RegistrationFee: feeOf(1), CurrentStage: "whatever"},
	}
	for _, s := range students {
		if got := Resolve(s); got != Enquiry {
			t.Fatalf("expected stage 1 for enquiry status, got %d", got)
		}
	}
}

func TestCheck(t *testing.T) {
	s := models.Student{
		Status:         models.StatusInProgress,
		ApplicationFee: feeOf(250),
		CurrentStage:   LabelApplicationDone,
		Stage:          int(RegistrationFee),
	}
	if !Check(s) {
		t.Fatal("expected stored stage to agree with derived stage")
	}

	s.Stage = int(Admission)
	if Check(s) {
		t.Fatal("expected disagreement between stored and derived stage")
	}

	s.Stage = 0
	if !Check(s) {
		t.Fatal("expected legacy record without stored stage to pass")
	}
}

func TestCursorJSON(t *testing.T) {
	raw, err := json.Marshal(Dashboard)
	if err != nil {
		t.Fatalf("marshal dashboard: %v", err)
	}
	if string(raw) != `"dashboard"` {
		t.Fatalf("expected \"dashboard\", got %s", raw)
	}

	raw, err = json.Marshal(At(RegistrationFee))
	if err != nil {
		t.Fatalf("marshal stage cursor: %v", err)
	}
	if string(raw) != "3" {
		t.Fatalf("expected 3, got %s", raw)
	}

	var c Cursor
	if err := json.Unmarshal([]byte(`"dashboard"`), &c); err != nil {
		t.Fatalf("unmarshal dashboard: %v", err)
	}
	if !c.IsDashboard() {
		t.Fatal("expected dashboard cursor")
	}
	if err := json.Unmarshal([]byte("5"), &c); err != nil {
		t.Fatalf("unmarshal numeric cursor: %v", err)
	}
	if c.Stage() != Admission {
		t.Fatalf("expected stage 5, got %d", c.Stage())
	}
	if err := json.Unmarshal([]byte(`"elsewhere"`), &c); err == nil {
		t.Fatal("expected error for unknown cursor string")
	}
}
