package models

// StudentPatch is a partial update of a Student. Nil fields are left alone.
// The same patch value is sent to the remote store and, only after the remote
// accepts it, applied to the in-memory record.
type StudentPatch struct {
	Status       *string `json:"status,omitempty"`
	CurrentStage *string `json:"currentStage,omitempty"`
	Stage        *int    `json:"stage,omitempty"`

	ApplicationFee  *float64 `json:"applicationFee,omitempty"`
	ApplicationDate *string  `json:"applicationDate,omitempty"`
	ApplicationNo   *string  `json:"applicationNo,omitempty"`

	RegistrationFee  *float64 `json:"registrationFee,omitempty"`
	RegistrationDate *string  `json:"registrationDate,omitempty"`
	RegistrationNo   *string  `json:"registrationNo,omitempty"`

	VisitDetails     *VisitDetails     `json:"visitDetails,omitempty"`
	AdmissionDetails *AdmissionDetails `json:"admissionDetails,omitempty"`

	Remarks *string `json:"remarks,omitempty"`
}

// Apply merges the patch into a student record. Fields are only ever filled
// or overwritten, never cleared, so the derived stage cannot regress.
func (p StudentPatch) Apply(s *Student) {
	if p.Status != nil {
		s.Status = *p.Status
	}
	if p.CurrentStage != nil {
		s.CurrentStage = *p.CurrentStage
	}
	if p.Stage != nil {
		s.Stage = *p.Stage
	}
	if p.ApplicationFee != nil {
		s.ApplicationFee = p.ApplicationFee
	}
	if p.ApplicationDate != nil {
		s.ApplicationDate = *p.ApplicationDate
	}
	if p.ApplicationNo != nil {
		s.ApplicationNo = *p.ApplicationNo
	}
	if p.RegistrationFee != nil {
		s.RegistrationFee = p.RegistrationFee
	}
	if p.RegistrationDate != nil {
		s.RegistrationDate = *p.RegistrationDate
	}
	if p.RegistrationNo != nil {
		s.RegistrationNo = *p.RegistrationNo
	}
	if p.VisitDetails != nil {
		s.VisitDetails = p.VisitDetails
	}
	if p.AdmissionDetails != nil {
		s.AdmissionDetails = p.AdmissionDetails
	}
	if p.Remarks != nil {
		s.Remarks = *p.Remarks
	}
}
