package transform

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/meetocure/admin-api/internal/model"
)

const (
	defaultName           = "Unknown"
	defaultSpecialization = "Not specified"
	defaultCategory       = "General"
	defaultCity           = "Not specified"
	defaultStatus         = "pending"
)

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// DoctorSummary flattens a doctor and its verification into one level. Every
// field has a defined value whatever the verification contains.
func DoctorSummary(d *model.PopulatedDoctor) model.DoctorSummary {
	summary := model.DoctorSummary{
		ID:                    d.ID,
		FullName:              defaultName,
		Email:                 d.Email,
		MobileNumber:          d.MobileNumber,
		RegistrationStatus:    orDefault(d.RegistrationStatus, defaultStatus),
		PrimarySpecialization: defaultSpecialization,
		Category:              defaultCategory,
		Location:              model.Location{City: defaultCity},
		Status:                orDefault(d.RegistrationStatus, defaultStatus),
		PatientsConsulted:     []primitive.ObjectID{},
	}

	v := d.VerificationDetails
	if v == nil {
		return summary
	}
	summary.FullName = orDefault(v.FullName, defaultName)
	summary.PrimarySpecialization = orDefault(v.PrimarySpecialization, defaultSpecialization)
	summary.Category = orDefault(v.Category, defaultCategory)
	if v.Location != nil {
		summary.Location = *v.Location
		summary.Location.City = orDefault(v.Location.City, defaultCity)
	}
	if v.Status != "" {
		summary.Status = v.Status
	}
	if v.PatientsConsulted != nil {
		summary.PatientsConsulted = v.PatientsConsulted
	}
	summary.Earnings = v.Earnings
	summary.ConsultationFee = v.ConsultationFee
	return summary
}

func DoctorSummaries(doctors []*model.PopulatedDoctor) []model.DoctorSummary {
	out := make([]model.DoctorSummary, 0, len(doctors))
	for _, d := range doctors {
		out = append(out, DoctorSummary(d))
	}
	return out
}

// DoctorPatients builds the doctor patient roster from appointments that are
// already resolved
func DoctorPatients(d *model.PopulatedDoctor, populated []*model.PopulatedAppointment) model.DoctorPatients {
	var out model.DoctorPatients
	out.Doctor.ID = d.ID
	out.Doctor.Name = defaultName
	out.Doctor.Specialization = defaultSpecialization
	if v := d.VerificationDetails; v != nil {
		out.Doctor.Name = orDefault(v.FullName, defaultName)
		out.Doctor.Specialization = orDefault(v.PrimarySpecialization, defaultSpecialization)
	}
	out.Patients = GroupAppointmentsByPatient(populated)
	out.TotalPatients = len(out.Patients)
	out.TotalAppointments = len(populated)
	return out
}
