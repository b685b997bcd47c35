package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RegistrationPendingVerification = "pending_verification"
	RegistrationUnderHospitalReview = "under review by hospital"
	RegistrationUnderAdminApproval  = "under admin approval"
	RegistrationVerified            = "verified"
	RegistrationRejected            = "rejected"
)

// RegistrationStatuses is the documented enum. Status updates are not checked
// against it; see KnownRegistrationStatus.
var RegistrationStatuses = []string{
	RegistrationPendingVerification,
	RegistrationUnderHospitalReview,
	RegistrationUnderAdminApproval,
	RegistrationVerified,
	RegistrationRejected,
}

// KnownRegistrationStatus reports whether s is one of RegistrationStatuses
func KnownRegistrationStatus(s string) bool {
	for _, known := range RegistrationStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsPendingRegistration is true until a doctor is verified or rejected
func IsPendingRegistration(s string) bool {
	return s != RegistrationVerified && s != RegistrationRejected
}

type Doctor struct {
	ID                  primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Email               string              `bson:"email" json:"email"`
	PasswordHash        string              `bson:"passwordHash" json:"-"`
	MobileNumber        string              `bson:"mobileNumber" json:"mobileNumber"`
	RegistrationStatus  string              `bson:"registrationStatus" json:"registrationStatus"`
	VerificationDetails *primitive.ObjectID `bson:"verificationDetails,omitempty" json:"verificationDetails,omitempty"`
	Timestamps          `bson:",inline"`
}

type Location struct {
	City    string `bson:"city,omitempty" json:"city,omitempty"`
	State   string `bson:"state,omitempty" json:"state,omitempty"`
	Address string `bson:"address,omitempty" json:"address,omitempty"`
	Pincode string `bson:"pincode,omitempty" json:"pincode,omitempty"`
}

type Qualification struct {
	Degree      string `bson:"degree,omitempty" json:"degree,omitempty"`
	University  string `bson:"university,omitempty" json:"university,omitempty"`
	Year        int    `bson:"year,omitempty" json:"year,omitempty"`
	Certificate string `bson:"certificate,omitempty" json:"certificate,omitempty"`
}

// HospitalInfo is a denormalized copy of a hospital the doctor works at. It
// is informational only; hospital membership is Hospital.Docters.
type HospitalInfo struct {
	HospitalName    string `bson:"hospitalName,omitempty" json:"hospitalName,omitempty"`
	HospitalAddress string `bson:"hospitalAddress,omitempty" json:"hospitalAddress,omitempty"`
	ContactNumber   string `bson:"contactNumber,omitempty" json:"contactNumber,omitempty"`
}

type BankingInfo struct {
	AccountHolderName string `bson:"accountHolderName,omitempty" json:"accountHolderName,omitempty"`
	AccountNumber     string `bson:"accountNumber,omitempty" json:"accountNumber,omitempty"`
	IFSCCode          string `bson:"ifscCode,omitempty" json:"ifscCode,omitempty"`
	BankName          string `bson:"bankName,omitempty" json:"bankName,omitempty"`
}

type DoctorDocuments struct {
	IdentityProof              string `bson:"identityProof,omitempty" json:"identityProof,omitempty"`
	MedicalCouncilRegistration string `bson:"medicalCouncilRegistration,omitempty" json:"medicalCouncilRegistration,omitempty"`
	DegreeCertificate          string `bson:"degreeCertificate,omitempty" json:"degreeCertificate,omitempty"`
	ProfilePhoto               string `bson:"profilePhoto,omitempty" json:"profilePhoto,omitempty"`
}

// DoctorVerification holds every profile field of a doctor
type DoctorVerification struct {
	ID                        primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	DoctorID                  *primitive.ObjectID  `bson:"doctorId,omitempty" json:"doctorId,omitempty"`
	FullName                  string               `bson:"fullName,omitempty" json:"fullName,omitempty"`
	Gender                    string               `bson:"gender,omitempty" json:"gender,omitempty"`
	PrimarySpecialization     string               `bson:"primarySpecialization,omitempty" json:"primarySpecialization,omitempty"`
	AdditionalSpecializations []string             `bson:"additionalSpecializations,omitempty" json:"additionalSpecializations,omitempty"`
	Category                  string               `bson:"category,omitempty" json:"category,omitempty"`
	ConsultationFee           float64              `bson:"consultationFee,omitempty" json:"consultationFee,omitempty"`
	About                     string               `bson:"about,omitempty" json:"about,omitempty"`
	ExperienceYears           int                  `bson:"experienceYears,omitempty" json:"experienceYears,omitempty"`
	Location                  *Location            `bson:"location,omitempty" json:"location,omitempty"`
	Qualifications            []Qualification      `bson:"qualifications,omitempty" json:"qualifications,omitempty"`
	HospitalInfo              []HospitalInfo       `bson:"hospitalInfo,omitempty" json:"hospitalInfo,omitempty"`
	Documents                 *DoctorDocuments     `bson:"documents,omitempty" json:"documents,omitempty"`
	BankingInfo               []BankingInfo        `bson:"bankingInfo,omitempty" json:"bankingInfo,omitempty"`
	PatientsConsulted         []primitive.ObjectID `bson:"patientsConsulted,omitempty" json:"patientsConsulted,omitempty"`
	Earnings                  float64              `bson:"earnings,omitempty" json:"earnings,omitempty"`
	Status                    string               `bson:"status,omitempty" json:"status,omitempty"`
	Timestamps                `bson:",inline"`
}

// PopulatedDoctor is a Doctor with its verification reference expanded. It
// is the shape returned by the single-doctor and hospital routes.
type PopulatedDoctor struct {
	ID                  primitive.ObjectID  `json:"_id"`
	Email               string              `json:"email"`
	MobileNumber        string              `json:"mobileNumber"`
	RegistrationStatus  string              `json:"registrationStatus"`
	VerificationDetails *DoctorVerification `json:"verificationDetails"`
	Timestamps
}

// Populate joins d with v (which may be nil)
func Populate(d *Doctor, v *DoctorVerification) *PopulatedDoctor {
	return &PopulatedDoctor{
		ID:                  d.ID,
		Email:               d.Email,
		MobileNumber:        d.MobileNumber,
		RegistrationStatus:  d.RegistrationStatus,
		VerificationDetails: v,
		Timestamps:          d.Timestamps,
	}
}

type CreateDoctorRequest struct {
	Email        string              `json:"email"`
	Password     string              `json:"password"`
	MobileNumber string              `json:"mobileNumber"`
	Verification *DoctorVerification `json:"verificationDetails"`
}

func (r *CreateDoctorRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.MobileNumber = strings.TrimSpace(r.MobileNumber)
}

func (r CreateDoctorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 0)),
		validation.Field(&r.MobileNumber, validation.Required),
	)
}

type UpdateDoctorStatusRequest struct {
	RegistrationStatus string `json:"registrationStatus"`
}
