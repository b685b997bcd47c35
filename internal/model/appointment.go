package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentAccepted  = "accepted"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

// StatusUpdateValues are the only values PATCH /status accepts. "accepted"
// is a stored value but cannot be set there.
var StatusUpdateValues = []string{
	AppointmentPending,
	AppointmentConfirmed,
	AppointmentCompleted,
	AppointmentCancelled,
}

// AppointmentStatuses is the full stored enum
var AppointmentStatuses = []string{
	AppointmentPending,
	AppointmentConfirmed,
	AppointmentAccepted,
	AppointmentCompleted,
	AppointmentCancelled,
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}

func IsStatusUpdateValue(s string) bool { return contains(StatusUpdateValues, s) }

func IsAppointmentStatus(s string) bool { return contains(AppointmentStatuses, s) }

// PatientInfo is the snapshot of the patient taken when the appointment is booked
type PatientInfo struct {
	Name                  string `bson:"name,omitempty" json:"name,omitempty"`
	Age                   int    `bson:"age,omitempty" json:"age,omitempty"`
	Gender                string `bson:"gender,omitempty" json:"gender,omitempty"`
	Phone                 string `bson:"phone,omitempty" json:"phone,omitempty"`
	BloodGroup            string `bson:"blood_group,omitempty" json:"blood_group,omitempty"`
	MedicalHistorySummary string `bson:"medical_history_summary,omitempty" json:"medical_history_summary,omitempty"`
}

type Payment struct {
	Amount   float64 `bson:"amount" json:"amount"`
	Currency string  `bson:"currency,omitempty" json:"currency,omitempty"`
	Status   string  `bson:"status,omitempty" json:"status,omitempty"`
}

type MedicalRecord struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	RecordType  string             `bson:"record_type,omitempty" json:"record_type,omitempty"`
	FileURL     string             `bson:"file_url" json:"file_url"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	UploadDate  *time.Time         `bson:"upload_date,omitempty" json:"upload_date,omitempty"`
}

type Appointment struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Patient         *primitive.ObjectID `bson:"patient,omitempty" json:"patient,omitempty"`
	Doctor          *primitive.ObjectID `bson:"doctor,omitempty" json:"doctor,omitempty"`
	PatientInfo     *PatientInfo        `bson:"patientInfo,omitempty" json:"patientInfo,omitempty"`
	AppointmentDate time.Time           `bson:"appointment_date" json:"appointment_date"`
	AppointmentTime string              `bson:"appointment_time" json:"appointment_time"`
	AppointmentType string              `bson:"appointment_type,omitempty" json:"appointment_type,omitempty"`
	Status          string              `bson:"status" json:"status"`
	Reason          string              `bson:"reason,omitempty" json:"reason,omitempty"`
	Payment         *Payment            `bson:"payment,omitempty" json:"payment,omitempty"`
	MedicalRecords  []MedicalRecord     `bson:"medicalRecords" json:"medicalRecords"`
	Timestamps      `bson:",inline"`
}

// PopulatedAppointment carries an appointment with whatever relations could
// be resolved. Patient and Doctor are nil when their reference is missing
// or dangling.
type PopulatedAppointment struct {
	Appointment *Appointment
	Patient     *Patient
	Doctor      *PopulatedDoctor
}

// AppointmentFilter narrows a listing. Zero values mean no constraint.
type AppointmentFilter struct {
	Date      *TimeRange
	PatientID *primitive.ObjectID
	DoctorID  *primitive.ObjectID
	// Descending sorts by date then time, newest first
	Descending bool
}

type CreateAppointmentRequest struct {
	PatientID       string          `json:"patient"`
	DoctorID        string          `json:"doctor"`
	PatientInfo     *PatientInfo    `json:"patientInfo"`
	AppointmentDate string          `json:"appointment_date"`
	AppointmentTime string          `json:"appointment_time"`
	AppointmentType string          `json:"appointment_type"`
	Status          string          `json:"status"`
	Reason          string          `json:"reason"`
	Payment         *Payment        `json:"payment"`
	MedicalRecords  []MedicalRecord `json:"medicalRecords"`
}

func (r CreateAppointmentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.AppointmentDate, validation.Required),
		validation.Field(&r.AppointmentTime, validation.Required),
		validation.Field(&r.Status, validation.In(toInterfaces(AppointmentStatuses)...)),
	)
}

// UpdateAppointmentRequest is the PUT body. Omitted fields are unchanged.
type UpdateAppointmentRequest struct {
	AppointmentTime *string      `json:"appointment_time"`
	AppointmentType *string      `json:"appointment_type"`
	Status          *string      `json:"status"`
	Reason          *string      `json:"reason"`
	PatientInfo     *PatientInfo `json:"patientInfo"`
	Payment         *Payment     `json:"payment"`
}

func (r UpdateAppointmentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.In(toInterfaces(AppointmentStatuses)...)),
	)
}

func (r UpdateAppointmentRequest) Apply(a *Appointment) {
	if r.AppointmentTime != nil {
		a.AppointmentTime = *r.AppointmentTime
	}
	if r.AppointmentType != nil {
		a.AppointmentType = *r.AppointmentType
	}
	if r.Status != nil {
		a.Status = *r.Status
	}
	if r.Reason != nil {
		a.Reason = *r.Reason
	}
	if r.PatientInfo != nil {
		a.PatientInfo = r.PatientInfo
	}
	if r.Payment != nil {
		a.Payment = r.Payment
	}
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status"`
}

func toInterfaces(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
