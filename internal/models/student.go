package models

import "time"

// Status values for Student.Status. Free text in the store, these are the
// three values the workflow writes.
const (
	StatusEnquiry    = "Enquiry"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

// Student is one admission case. ID is assigned by the remote store at first
// successful persistence; AgentID is set at creation and never reassigned.
// ApplicationFee and RegistrationFee use presence (non-nil) to mean paid.
type Student struct {
	ID        string `bson:"_id,omitempty" json:"id"`
	AgentID   string `bson:"agentId" json:"agentId"`
	AgentName string `bson:"agentName,omitempty" json:"agentName,omitempty"`

	Name   string `bson:"name" json:"name"`
	Mobile string `bson:"mobile" json:"mobile"`
	Email  string `bson:"email,omitempty" json:"email,omitempty"`
	Course string `bson:"course,omitempty" json:"course,omitempty"`
	Source string `bson:"source,omitempty" json:"source,omitempty"`

	Status       string `bson:"status" json:"status"`
	CurrentStage string `bson:"currentStage" json:"currentStage"`
	// Stage is the denormalized workflow stage, written atomically with the
	// mutation that moves the record. Zero means unknown/legacy.
	Stage int `bson:"stage,omitempty" json:"stage,omitempty"`

	ApplicationFee  *float64 `bson:"applicationFee,omitempty" json:"applicationFee,omitempty"`
	ApplicationDate string   `bson:"applicationDate,omitempty" json:"applicationDate,omitempty"`
	ApplicationNo   string   `bson:"applicationNo,omitempty" json:"applicationNo,omitempty"`

	RegistrationFee  *float64 `bson:"registrationFee,omitempty" json:"registrationFee,omitempty"`
	RegistrationDate string   `bson:"registrationDate,omitempty" json:"registrationDate,omitempty"`
	RegistrationNo   string   `bson:"registrationNo,omitempty" json:"registrationNo,omitempty"`

	VisitDetails     *VisitDetails     `bson:"visitDetails,omitempty" json:"visitDetails,omitempty"`
	AdmissionDetails *AdmissionDetails `bson:"admissionDetails,omitempty" json:"admissionDetails,omitempty"`

	Remarks   string    `bson:"remarks,omitempty" json:"remarks,omitempty"`
	CreatedAt time.Time `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

type VisitDetails struct {
	VisitStatus   string `bson:"visitStatus" json:"visitStatus"` // Visited, Not Visited, Rescheduled
	JourneyDate   string `bson:"journeyDate,omitempty" json:"journeyDate,omitempty"`
	TransportMode string `bson:"transportMode,omitempty" json:"transportMode,omitempty"`
	ReceivePerson string `bson:"receivePerson,omitempty" json:"receivePerson,omitempty"`
	ReturnDate    string `bson:"returnDate,omitempty" json:"returnDate,omitempty"`
	DropPerson    string `bson:"dropPerson,omitempty" json:"dropPerson,omitempty"`
	Remarks       string `bson:"remarks,omitempty" json:"remarks,omitempty"`
}

type AdmissionDetails struct {
	SeatBookingDate    string  `bson:"seatBookingDate,omitempty" json:"seatBookingDate,omitempty"`
	SeatBookingAmount  float64 `bson:"seatBookingAmount,omitempty" json:"seatBookingAmount,omitempty"`
	BookingPaymentMode string  `bson:"bookingPaymentMode,omitempty" json:"bookingPaymentMode,omitempty"`
	IsSeatConfirmed    bool    `bson:"isSeatConfirmed" json:"isSeatConfirmed"`

	TotalFirstYearFee float64 `bson:"totalFirstYearFee,omitempty" json:"totalFirstYearFee,omitempty"`
	FeePaidAmount     float64 `bson:"feePaidAmount,omitempty" json:"feePaidAmount,omitempty"`
	FeePaymentDate    string  `bson:"feePaymentDate,omitempty" json:"feePaymentDate,omitempty"`
	FeePaymentMode    string  `bson:"feePaymentMode,omitempty" json:"feePaymentMode,omitempty"`
	FeeReceiptNumber  string  `bson:"feeReceiptNumber,omitempty" json:"feeReceiptNumber,omitempty"`

	Remarks string `bson:"remarks,omitempty" json:"remarks,omitempty"`
}

// Balance is the outstanding first-year fee after the amount paid so far.
func (a AdmissionDetails) Balance() float64 {
	return a.TotalFirstYearFee - a.FeePaidAmount
}
