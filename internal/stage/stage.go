package stage

import (
	"strings"

	"github.com/univflow/admission-api/internal/models"
)

// Stage is one of the five ordered steps of the admission workflow.
// Unknown marks legacy records that predate the currentStage field.
type Stage int

const (
	Unknown         Stage = 0
	Enquiry         Stage = 1
	ApplicationFee  Stage = 2
	RegistrationFee Stage = 3
	UniversityVisit Stage = 4
	Admission       Stage = 5
)

// CurrentStage labels written by the workflow at each transition. The store
// treats these as free text; Resolve only checks the "Confirmation" substring
// and the completed label.
const (
	LabelRegistration       = "Registration"
	LabelApplicationPaid    = "Application Fee Paid"
	LabelApplicationDone    = "Application Submitted"
	LabelRegistrationPaid   = "Registration Fee Paid"
	LabelVisitPending       = "Registration Completed, University Visit Pending"
	LabelSeatPending        = "Seat Confirmation Pending"
	LabelAdmissionCompleted = "Admission Completed"
)

func (s Stage) String() string {
	switch s {
	case Enquiry:
		return "Enquiry"
	case ApplicationFee:
		return "Application Fee"
	case RegistrationFee:
		return "Registration Fee"
	case UniversityVisit:
		return "University Visit"
	case Admission:
		return "Admission"
	default:
		return "Unknown"
	}
}

// Resolve derives the workflow stage of a student record from its field
// state. It is pure and total; the rules are evaluated in order and the
// order matters: an "Enquiry" status wins over everything else, and a paid
// application fee skips stage 2 no matter what currentStage says.
//
// A record that reaches the currentStage check without a currentStage value
// is a legacy record and resolves to Unknown rather than guessing.
func Resolve(s models.Student) Stage {
	switch {
	case s.Status == models.StatusEnquiry:
		return Enquiry
	case s.ApplicationFee == nil:
		return ApplicationFee
	case s.RegistrationFee == nil:
		return RegistrationFee
	case s.CurrentStage == "":
		return Unknown
	case !strings.Contains(s.CurrentStage, "Confirmation") && s.CurrentStage != LabelAdmissionCompleted:
		return UniversityVisit
	default:
		return Admission
	}
}

// Check reports whether the stored denormalized stage agrees with the
// derived one. Records without a stored stage (legacy) always pass.
func Check(s models.Student) bool {
	if s.Stage == 0 {
		return true
	}
	derived := Resolve(s)
	return derived == Unknown || Stage(s.Stage) == derived
}
