package model

import (
	"time"
)

// Status is the lifecycle state of a surgery booking.
type Status string

const (
	StatusUnscheduled Status = "unscheduled"
	StatusScheduled   Status = "scheduled"
	StatusInProgress  Status = "in-progress"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
)

// Urgency distinguishes urgent from elective procedures.
type Urgency string

const (
	UrgencyUrgent   Urgency = "urgent"
	UrgencyElective Urgency = "elective"
)

// Booking is one scheduled (or unscheduled) surgical procedure occupying an
// operating room for a [StartTime, EndTime) window. The operating room is the
// resource key for conflict detection; the optional descriptive fields are
// carried opaquely and never inspected by the scheduling core.
type Booking struct {
	ID               string    `json:"id,omitempty" bson:"_id,omitempty"`
	PatientName      string    `json:"patient_name" bson:"patient_name" validate:"required,min=1,max=100"`
	Gender           string    `json:"gender,omitempty" bson:"gender,omitempty" validate:"omitempty,max=20"`
	Age              int       `json:"age,omitempty" bson:"age,omitempty" validate:"omitempty,min=0,max=150"`
	InpatientNo      string    `json:"inpatient_no,omitempty" bson:"inpatient_no,omitempty" validate:"omitempty,max=50"`
	Dept             string    `json:"dept,omitempty" bson:"dept,omitempty" validate:"omitempty,max=100"`
	Ward             string    `json:"ward,omitempty" bson:"ward,omitempty" validate:"omitempty,max=100"`
	BedNo            string    `json:"bed_no,omitempty" bson:"bed_no,omitempty" validate:"omitempty,max=20"`
	Diagnosis        string    `json:"diagnosis,omitempty" bson:"diagnosis,omitempty" validate:"omitempty,max=500"`
	SurgeryType      string    `json:"surgery_type" bson:"surgery_type" validate:"required,min=1,max=100"`
	DoctorName       string    `json:"doctor_name" bson:"doctor_name" validate:"required,min=1,max=100"`
	AssistantDoctors []string  `json:"assistant_doctors" bson:"assistant_doctors" validate:"omitempty,dive,min=1,max=100"`
	AnesthetistName  string    `json:"anesthetist_name,omitempty" bson:"anesthetist_name,omitempty" validate:"omitempty,max=100"`
	NurseNames       []string  `json:"nurse_names,omitempty" bson:"nurse_names,omitempty" validate:"omitempty,dive,min=1,max=100"`
	OperatingRoom    string    `json:"operating_room" bson:"operating_room" validate:"required,min=1,max=50"`
	StartTime        time.Time `json:"start_time" bson:"start_time" validate:"required"`
	EndTime          time.Time `json:"end_time" bson:"end_time" validate:"required,gtfield=StartTime"`
	Urgency          Urgency   `json:"urgency,omitempty" bson:"urgency,omitempty" validate:"omitempty,oneof=urgent elective"`
	Status           Status    `json:"status" bson:"status" validate:"required,oneof=unscheduled scheduled in-progress completed cancelled"`
	Notes            string    `json:"notes,omitempty" bson:"notes,omitempty" validate:"omitempty,max=1000"`
}

// Clone returns a deep copy. The store hands out clones so no caller ever
// holds a mutable reference to store-owned state.
func (b Booking) Clone() Booking {
	c := b
	if b.AssistantDoctors != nil {
		c.AssistantDoctors = append([]string(nil), b.AssistantDoctors...)
	}
	if b.NurseNames != nil {
		c.NurseNames = append([]string(nil), b.NurseNames...)
	}
	return c
}

// BookingPatch is an explicit optional-field patch for Update. Nil fields are
// left untouched. There is deliberately no ID field: the id is immutable.
type BookingPatch struct {
	PatientName      *string    `json:"patient_name,omitempty" validate:"omitempty,min=1,max=100"`
	Gender           *string    `json:"gender,omitempty" validate:"omitempty,max=20"`
	Age              *int       `json:"age,omitempty" validate:"omitempty,min=0,max=150"`
	InpatientNo      *string    `json:"inpatient_no,omitempty" validate:"omitempty,max=50"`
	Dept             *string    `json:"dept,omitempty" validate:"omitempty,max=100"`
	Ward             *string    `json:"ward,omitempty" validate:"omitempty,max=100"`
	BedNo            *string    `json:"bed_no,omitempty" validate:"omitempty,max=20"`
	Diagnosis        *string    `json:"diagnosis,omitempty" validate:"omitempty,max=500"`
	SurgeryType      *string    `json:"surgery_type,omitempty" validate:"omitempty,min=1,max=100"`
	DoctorName       *string    `json:"doctor_name,omitempty" validate:"omitempty,min=1,max=100"`
	AssistantDoctors *[]string  `json:"assistant_doctors,omitempty" validate:"omitempty,dive,min=1,max=100"`
	AnesthetistName  *string    `json:"anesthetist_name,omitempty" validate:"omitempty,max=100"`
	NurseNames       *[]string  `json:"nurse_names,omitempty" validate:"omitempty,dive,min=1,max=100"`
	OperatingRoom    *string    `json:"operating_room,omitempty" validate:"omitempty,min=1,max=50"`
	StartTime        *time.Time `json:"start_time,omitempty"`
	EndTime          *time.Time `json:"end_time,omitempty"`
	Urgency          *Urgency   `json:"urgency,omitempty" validate:"omitempty,oneof=urgent elective"`
	Status           *Status    `json:"status,omitempty" validate:"omitempty,oneof=unscheduled scheduled in-progress completed cancelled"`
	Notes            *string    `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// Apply merges the patch over an existing booking and returns the merged
// record. The existing id is always preserved.
func (p BookingPatch) Apply(existing Booking) Booking {
	merged := existing.Clone()

	if p.PatientName != nil {
		merged.PatientName = *p.PatientName
	}
	if p.Gender != nil {
		merged.Gender = *p.Gender
	}
	if p.Age != nil {
		merged.Age = *p.Age
	}
	if p.InpatientNo != nil {
		merged.InpatientNo = *p.InpatientNo
	}
	if p.Dept != nil {
		merged.Dept = *p.Dept
	}
	if p.Ward != nil {
		merged.Ward = *p.Ward
	}
	if p.BedNo != nil {
		merged.BedNo = *p.BedNo
	}
	if p.Diagnosis != nil {
		merged.Diagnosis = *p.Diagnosis
	}
	if p.SurgeryType != nil {
		merged.SurgeryType = *p.SurgeryType
	}
	if p.DoctorName != nil {
		merged.DoctorName = *p.DoctorName
	}
	if p.AssistantDoctors != nil {
		merged.AssistantDoctors = append([]string(nil), (*p.AssistantDoctors)...)
	}
	if p.AnesthetistName != nil {
		merged.AnesthetistName = *p.AnesthetistName
	}
	if p.NurseNames != nil {
		merged.NurseNames = append([]string(nil), (*p.NurseNames)...)
	}
	if p.OperatingRoom != nil {
		merged.OperatingRoom = *p.OperatingRoom
	}
	if p.StartTime != nil {
		merged.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		merged.EndTime = *p.EndTime
	}
	if p.Urgency != nil {
		merged.Urgency = *p.Urgency
	}
	if p.Status != nil {
		merged.Status = *p.Status
	}
	if p.Notes != nil {
		merged.Notes = *p.Notes
	}

	return merged
}
