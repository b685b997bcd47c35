package memory

import "github.com/meetocure/admin-api/internal/model"

func cloneAdmin(a *model.Admin) *model.Admin {
	c := *a
	return &c
}

func cloneDoctor(d *model.Doctor) *model.Doctor {
	c := *d
	if d.VerificationDetails != nil {
		id := *d.VerificationDetails
		c.VerificationDetails = &id
	}
	return &c
}

func cloneVerification(v *model.DoctorVerification) *model.DoctorVerification {
	c := *v
	c.AdditionalSpecializations = append([]string(nil), v.AdditionalSpecializations...)
	c.Qualifications = append([]model.Qualification(nil), v.Qualifications...)
	c.HospitalInfo = append([]model.HospitalInfo(nil), v.HospitalInfo...)
	c.BankingInfo = append([]model.BankingInfo(nil), v.BankingInfo...)
	return &c
}

func cloneHospital(h *model.Hospital) *model.Hospital {
	c := *h
	c.Docters = append([]string{}, h.Docters...)
	c.Specialties = append([]string{}, h.Specialties...)
	c.Facilities = append([]string{}, h.Facilities...)
	return &c
}

func clonePatient(p *model.Patient) *model.Patient {
	c := *p
	c.Notifications = append([]model.Notification{}, p.Notifications...)
	return &c
}

func clonePatientDetails(d *model.PatientDetails) *model.PatientDetails {
	c := *d
	return &c
}

func cloneAppointment(a *model.Appointment) *model.Appointment {
	c := *a
	if a.PatientInfo != nil {
		info := *a.PatientInfo
		c.PatientInfo = &info
	}
	if a.Payment != nil {
		p := *a.Payment
		c.Payment = &p
	}
	c.MedicalRecords = append([]model.MedicalRecord{}, a.MedicalRecords...)
	return &c
}

func cloneSettings(s *model.Settings) *model.Settings {
	c := *s
	return &c
}
