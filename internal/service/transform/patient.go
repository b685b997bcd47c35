package transform

import (
	"fmt"
	"strings"

	"github.com/meetocure/admin-api/internal/model"
)

const (
	patientStatus  = "Enrolled"
	avatarTemplate = "https://i.pravatar.cc/40?img=%d"
)

func avatar(photo string, n int) string {
	if photo != "" {
		return photo
	}
	return fmt.Sprintf(avatarTemplate, n)
}

// PatientListItem renders one row of the patient table. index is the row's
// zero-based position and picks the placeholder avatar.
func PatientListItem(d *model.PatientDetails, index, appointments int) model.PatientListItem {
	return model.PatientListItem{
		ID:           d.ID,
		MongoID:      d.ID,
		Name:         orDefault(d.Name, defaultName),
		Contact:      d.Phone,
		City:         defaultCity,
		Appointments: appointments,
		Status:       patientStatus,
		Avatar:       avatar(d.Photo, index+1),
		Phone:        d.Phone,
		Dob:          d.Dob,
		Gender:       d.Gender,
		CreatedAt:    d.CreatedAt,
		PatientID:    d.ID,
	}
}

// DisplayID is the short patient code shown in the UI, e.g. PT1A2B3
func DisplayID(d *model.PatientDetails) string {
	hex := d.ID.Hex()
	return "PT" + strings.ToUpper(hex[len(hex)-5:])
}

func PatientProfile(d *model.PatientDetails, appointments int) model.PatientProfile {
	return model.PatientProfile{
		ID:           DisplayID(d),
		Name:         orDefault(d.Name, defaultName),
		Contact:      d.Phone,
		City:         defaultCity,
		Appointments: appointments,
		Status:       patientStatus,
		Avatar:       avatar(d.Photo, 1),
		Phone:        d.Phone,
		Dob:          d.Dob,
		Gender:       d.Gender,
		CreatedAt:    d.CreatedAt,
		PatientID:    d.ID,
	}
}

func PatientAppointments(d *model.PatientDetails, populated []*model.PopulatedAppointment) model.PatientAppointments {
	var out model.PatientAppointments
	out.Patient.ID = d.ID
	out.Patient.Name = orDefault(d.Name, defaultName)
	out.Patient.Phone = d.Phone
	out.Patient.Dob = d.Dob
	out.Patient.Gender = d.Gender
	out.Patient.Photo = d.Photo

	out.Appointments = make([]model.PatientAppointment, 0, len(populated))
	for _, pa := range populated {
		out.Appointments = append(out.Appointments, PatientAppointment(pa))
	}
	out.TotalAppointments = len(out.Appointments)
	return out
}
