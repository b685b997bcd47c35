package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DoctorView is the doctor block embedded in appointment views. Name is
// "Unknown Doctor" when the doctor or its verification could not be resolved.
type DoctorView struct {
	ID                        *primitive.ObjectID `json:"id"`
	Name                      string              `json:"name"`
	Email                     string              `json:"email,omitempty"`
	MobileNumber              string              `json:"mobileNumber,omitempty"`
	RegistrationStatus        string              `json:"registrationStatus,omitempty"`
	Gender                    string              `json:"gender,omitempty"`
	PrimarySpecialization     string              `json:"primarySpecialization,omitempty"`
	AdditionalSpecializations []string            `json:"additionalSpecializations,omitempty"`
	Category                  string              `json:"category,omitempty"`
	ConsultationFee           float64             `json:"consultationFee,omitempty"`
	About                     string              `json:"about,omitempty"`
	ExperienceYears           int                 `json:"experienceYears,omitempty"`
	Location                  *Location           `json:"location,omitempty"`
	Qualifications            []Qualification     `json:"qualifications"`
}

type PatientView struct {
	ID    *primitive.ObjectID `json:"id"`
	Name  string              `json:"name"`
	Phone string              `json:"phone"`
	Info  *PatientInfo        `json:"info"`
}

type MedicalRecordView struct {
	ID            primitive.ObjectID `json:"id"`
	RecordType    string             `json:"recordType"`
	FileURL       string             `json:"fileUrl"`
	Description   string             `json:"description"`
	UploadDate    *time.Time         `json:"uploadDate"`
	FileName      string             `json:"fileName"`
	FileExtension string             `json:"fileExtension"`
	FileSize      *int64             `json:"fileSize"`
	IsImage       bool               `json:"isImage"`
	IsPdf         bool               `json:"isPdf"`
}

type AppointmentView struct {
	ID              primitive.ObjectID  `json:"id"`
	Patient         PatientView         `json:"patient"`
	Doctor          DoctorView          `json:"doctor"`
	AppointmentDate time.Time           `json:"appointmentDate"`
	AppointmentTime string              `json:"appointmentTime"`
	AppointmentType string              `json:"appointmentType"`
	Status          string              `json:"status"`
	Reason          string              `json:"reason"`
	Payment         *Payment            `json:"payment"`
	MedicalRecords  []MedicalRecordView `json:"medicalRecords"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

// GroupedAppointment is one row inside a PatientGroup
type GroupedAppointment struct {
	ID      primitive.ObjectID `json:"id"`
	Date    time.Time          `json:"date"`
	Time    string             `json:"time"`
	Status  string             `json:"status"`
	Type    string             `json:"type"`
	Payment *Payment           `json:"payment"`
}

type GroupPatientInfo struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Age    int    `json:"age"`
	Gender string `json:"gender"`
}

// PatientGroup collects one patient's appointments, newest first
type PatientGroup struct {
	PatientInfo  GroupPatientInfo     `json:"patientInfo"`
	PatientID    string               `json:"patientId"`
	Appointments []GroupedAppointment `json:"appointments"`
}

type DoctorPatients struct {
	Doctor struct {
		ID             primitive.ObjectID `json:"id"`
		Name           string             `json:"name"`
		Specialization string             `json:"specialization"`
	} `json:"doctor"`
	Patients          []PatientGroup `json:"patients"`
	TotalPatients     int            `json:"totalPatients"`
	TotalAppointments int            `json:"totalAppointments"`
}

// DoctorSummary is the flattened doctor list row. Every field is always set.
type DoctorSummary struct {
	ID                    primitive.ObjectID   `json:"_id"`
	FullName              string               `json:"fullName"`
	Email                 string               `json:"email"`
	MobileNumber          string               `json:"mobileNumber"`
	RegistrationStatus    string               `json:"registrationStatus"`
	PrimarySpecialization string               `json:"primarySpecialization"`
	Category              string               `json:"category"`
	Location              Location             `json:"location"`
	Status                string               `json:"status"`
	PatientsConsulted     []primitive.ObjectID `json:"patientsConsulted"`
	Earnings              float64              `json:"earnings"`
	ConsultationFee       float64              `json:"consultationFee"`
}

type PatientListItem struct {
	ID           primitive.ObjectID `json:"id"`
	MongoID      primitive.ObjectID `json:"_id"`
	Name         string             `json:"name"`
	Contact      string             `json:"contact"`
	City         string             `json:"city"`
	Appointments int                `json:"appointments"`
	Status       string             `json:"status"`
	Avatar       string             `json:"avatar"`
	Phone        string             `json:"phone"`
	Dob          *time.Time         `json:"dob"`
	Gender       string             `json:"gender"`
	CreatedAt    time.Time          `json:"createdAt"`
	PatientID    primitive.ObjectID `json:"patientId"`
}

type PatientProfile struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Contact      string             `json:"contact"`
	City         string             `json:"city"`
	Appointments int                `json:"appointments"`
	Status       string             `json:"status"`
	Avatar       string             `json:"avatar"`
	Phone        string             `json:"phone"`
	Dob          *time.Time         `json:"dob"`
	Gender       string             `json:"gender"`
	CreatedAt    time.Time          `json:"createdAt"`
	PatientID    primitive.ObjectID `json:"patientId"`
}

type PatientAppointment struct {
	ID              primitive.ObjectID  `json:"id"`
	AppointmentDate time.Time           `json:"appointmentDate"`
	AppointmentTime string              `json:"appointmentTime"`
	AppointmentType string              `json:"appointmentType"`
	Status          string              `json:"status"`
	Reason          string              `json:"reason"`
	Doctor          DoctorView          `json:"doctor"`
	PatientInfo     *PatientInfo        `json:"patientInfo"`
	Payment         *Payment            `json:"payment"`
	MedicalRecords  []MedicalRecordView `json:"medicalRecords"`
}

type PatientAppointments struct {
	Patient struct {
		ID     primitive.ObjectID `json:"id"`
		Name   string             `json:"name"`
		Phone  string             `json:"phone"`
		Dob    *time.Time         `json:"dob"`
		Gender string             `json:"gender"`
		Photo  string             `json:"photo"`
	} `json:"patient"`
	Appointments      []PatientAppointment `json:"appointments"`
	TotalAppointments int                  `json:"totalAppointments"`
}

// CountBucket is one row of a grouped count
type CountBucket struct {
	Key   string `json:"_id"`
	Count int    `json:"count"`
}

type DashboardStats struct {
	Overview struct {
		TotalPatients        int `json:"totalPatients"`
		TotalDoctors         int `json:"totalDoctors"`
		TotalHospitals       int `json:"totalHospitals"`
		PendingVerifications int `json:"pendingVerifications"`
	} `json:"overview"`
	Appointments struct {
		Today       int `json:"today"`
		Completed   int `json:"completed"`
		Cancelled   int `json:"cancelled"`
		Monthly     int `json:"monthly"`
		SuccessRate int `json:"successRate"`
	} `json:"appointments"`
	NewRegistrations struct {
		Patients int `json:"patients"`
		Doctors  int `json:"doctors"`
	} `json:"newRegistrations"`
	Insights struct {
		TopSpecialties []CountBucket `json:"topSpecialties"`
		TopCities      []CountBucket `json:"topCities"`
	} `json:"insights"`
}
