package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Hospital is stored in the hospitallogins collection. Docters is the only
// source of truth for which doctors belong to the hospital; entries are raw
// Doctor ID strings and are not checked for referential integrity.
type Hospital struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email         string             `bson:"email" json:"email"`
	Password      string             `bson:"password" json:"-"`
	HospitalName  string             `bson:"hospitalName" json:"hospitalName"`
	Address       string             `bson:"address" json:"address"`
	Contact       string             `bson:"contact" json:"contact"`
	HospitalImage string             `bson:"hospitalImage,omitempty" json:"hospitalImage,omitempty"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	Specialties   []string           `bson:"specialties" json:"specialties"`
	Facilities    []string           `bson:"facilities" json:"facilities"`
	Location      Location           `bson:"location" json:"location"`
	Docters       []string           `bson:"docters" json:"docters"`
	Timestamps    `bson:",inline"`
}

// HasDoctor reports whether doctorID is in the hospital's doctor list
func (h *Hospital) HasDoctor(doctorID string) bool {
	for _, id := range h.Docters {
		if id == doctorID {
			return true
		}
	}
	return false
}

// HospitalWithDoctors is a hospital with its doctor list expanded
type HospitalWithDoctors struct {
	ID            primitive.ObjectID `json:"_id"`
	Email         string             `json:"email"`
	HospitalName  string             `json:"hospitalName"`
	Address       string             `json:"address"`
	Contact       string             `json:"contact"`
	HospitalImage string             `json:"hospitalImage,omitempty"`
	Description   string             `json:"description,omitempty"`
	Specialties   []string           `json:"specialties"`
	Facilities    []string           `json:"facilities"`
	Location      Location           `json:"location"`
	Docters       []*PopulatedDoctor `json:"docters"`
	Timestamps
}

// HospitalRef is attached to each doctor in the hospital doctor listings
type HospitalRef struct {
	HospitalID      primitive.ObjectID `json:"hospitalId"`
	HospitalName    string             `json:"hospitalName"`
	HospitalAddress string             `json:"hospitalAddress"`
	HospitalContact string             `json:"hospitalContact"`
}

type HospitalDoctor struct {
	*PopulatedDoctor
	HospitalInfo HospitalRef `json:"hospitalInfo"`
}

type HospitalStats struct {
	TotalHospitals          int `json:"totalHospitals"`
	TotalDoctors            int `json:"totalDoctors"`
	HospitalsWithDoctors    int `json:"hospitalsWithDoctors"`
	HospitalsWithoutDoctors int `json:"hospitalsWithoutDoctors"`
}

type CreateHospitalRequest struct {
	Email         string   `json:"email"`
	Password      string   `json:"password"`
	HospitalName  string   `json:"hospitalName"`
	Address       string   `json:"address"`
	Contact       string   `json:"contact"`
	HospitalImage string   `json:"hospitalImage"`
	Description   string   `json:"description"`
	Specialties   []string `json:"specialties"`
	Facilities    []string `json:"facilities"`
	Location      Location `json:"location"`
}

func (r *CreateHospitalRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.HospitalName = strings.TrimSpace(r.HospitalName)
	if r.Specialties == nil {
		r.Specialties = []string{}
	}
	if r.Facilities == nil {
		r.Facilities = []string{}
	}
}

func (r CreateHospitalRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 0)),
		validation.Field(&r.HospitalName, validation.Required),
		validation.Field(&r.Address, validation.Required),
		validation.Field(&r.Contact, validation.Required),
	)
}

// UpdateHospitalRequest replaces the supplied fields. Email and password
// cannot be changed through it.
type UpdateHospitalRequest struct {
	HospitalName  *string   `json:"hospitalName"`
	Address       *string   `json:"address"`
	Contact       *string   `json:"contact"`
	HospitalImage *string   `json:"hospitalImage"`
	Description   *string   `json:"description"`
	Specialties   *[]string `json:"specialties"`
	Facilities    *[]string `json:"facilities"`
	Location      *Location `json:"location"`
	Docters       *[]string `json:"docters"`
}

func (r UpdateHospitalRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.HospitalName, validation.NilOrNotEmpty),
	)
}

// Apply copies the supplied fields onto h
func (r UpdateHospitalRequest) Apply(h *Hospital) {
	if r.HospitalName != nil {
		h.HospitalName = *r.HospitalName
	}
	if r.Address != nil {
		h.Address = *r.Address
	}
	if r.Contact != nil {
		h.Contact = *r.Contact
	}
	if r.HospitalImage != nil {
		h.HospitalImage = *r.HospitalImage
	}
	if r.Description != nil {
		h.Description = *r.Description
	}
	if r.Specialties != nil {
		h.Specialties = *r.Specialties
	}
	if r.Facilities != nil {
		h.Facilities = *r.Facilities
	}
	if r.Location != nil {
		h.Location = *r.Location
	}
	if r.Docters != nil {
		h.Docters = *r.Docters
	}
}
