package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DefaultPatientGender = "Other"

type Notification struct {
	Title   string    `bson:"title,omitempty" json:"title,omitempty"`
	Message string    `bson:"message,omitempty" json:"message,omitempty"`
	Read    bool      `bson:"read" json:"read"`
	SentAt  time.Time `bson:"sentAt,omitempty" json:"sentAt,omitempty"`
}

// Patient is the login record of a patient. Its profile lives in
// PatientDetails; the two are created and deleted together.
type Patient struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Phone         string             `bson:"phone" json:"phone"`
	Notifications []Notification     `bson:"notifications" json:"notifications"`
	Timestamps    `bson:",inline"`
}

type PatientDetails struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Patient    primitive.ObjectID `bson:"patient" json:"patient"`
	Name       string             `bson:"name" json:"name"`
	Phone      string             `bson:"phone" json:"phone"`
	Dob        *time.Time         `bson:"dob,omitempty" json:"dob,omitempty"`
	Gender     string             `bson:"gender" json:"gender"`
	Photo      string             `bson:"photo" json:"photo"`
	Timestamps `bson:",inline"`
}

type RegisterPatientRequest struct {
	Phone  string `json:"phone"`
	Name   string `json:"name"`
	Dob    string `json:"dob"`
	Gender string `json:"gender"`
	Photo  string `json:"photo"`
}

type RegisteredPatient struct {
	PatientID primitive.ObjectID `json:"patientId"`
	DetailsID primitive.ObjectID `json:"detailsId"`
	Phone     string             `json:"phone"`
	Name      string             `json:"name"`
	Gender    string             `json:"gender"`
}

// UpdatePatientRequest is applied to PatientDetails. Omitted fields are left
// unchanged.
type UpdatePatientRequest struct {
	Name   *string `json:"name"`
	Dob    *string `json:"dob"`
	Gender *string `json:"gender"`
	Photo  *string `json:"photo"`
}

// ParseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates. Plain
// dates are read in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, loc)
}
