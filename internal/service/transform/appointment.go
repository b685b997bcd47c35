// Package transform turns resolved documents into the response shapes the
// admin UI reads. Every function here is pure.
package transform

import (
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/meetocure/admin-api/internal/model"
)

const (
	UnknownDoctor  = "Unknown Doctor"
	UnknownPatient = "Unknown Patient"
	UnknownFile    = "Unknown File"
	UnknownExt     = "unknown"
)

var imageExtensions = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "gif": true, "bmp": true, "webp": true,
}

// Doctor flattens a populated doctor into the block embedded in appointment
// views. d may be nil.
func Doctor(d *model.PopulatedDoctor) model.DoctorView {
	view := model.DoctorView{Name: UnknownDoctor, Qualifications: []model.Qualification{}}
	if d == nil {
		return view
	}
	id := d.ID
	view.ID = &id
	view.Email = d.Email
	view.MobileNumber = d.MobileNumber
	view.RegistrationStatus = d.RegistrationStatus

	v := d.VerificationDetails
	if v == nil {
		return view
	}
	if v.FullName != "" {
		view.Name = v.FullName
	}
	view.Gender = v.Gender
	view.PrimarySpecialization = v.PrimarySpecialization
	view.AdditionalSpecializations = v.AdditionalSpecializations
	view.Category = v.Category
	view.ConsultationFee = v.ConsultationFee
	view.About = v.About
	view.ExperienceYears = v.ExperienceYears
	view.Location = v.Location
	if v.Qualifications != nil {
		view.Qualifications = v.Qualifications
	}
	return view
}

// Appointment builds the full appointment view. Unresolved relations become
// placeholders.
func Appointment(pa *model.PopulatedAppointment) model.AppointmentView {
	a := pa.Appointment

	patient := model.PatientView{Name: UnknownPatient, Info: a.PatientInfo}
	if pa.Patient != nil {
		id := pa.Patient.ID
		patient.ID = &id
		patient.Phone = pa.Patient.Phone
	}
	if a.PatientInfo != nil && a.PatientInfo.Name != "" {
		patient.Name = a.PatientInfo.Name
	}

	return model.AppointmentView{
		ID:              a.ID,
		Patient:         patient,
		Doctor:          Doctor(pa.Doctor),
		AppointmentDate: a.AppointmentDate,
		AppointmentTime: a.AppointmentTime,
		AppointmentType: a.AppointmentType,
		Status:          a.Status,
		Reason:          a.Reason,
		Payment:         a.Payment,
		MedicalRecords:  MedicalRecords(a.MedicalRecords),
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func Appointments(populated []*model.PopulatedAppointment) []model.AppointmentView {
	out := make([]model.AppointmentView, 0, len(populated))
	for _, pa := range populated {
		out = append(out, Appointment(pa))
	}
	return out
}

func MedicalRecords(records []model.MedicalRecord) []model.MedicalRecordView {
	out := make([]model.MedicalRecordView, 0, len(records))
	for _, r := range records {
		out = append(out, MedicalRecord(r))
	}
	return out
}

func MedicalRecord(r model.MedicalRecord) model.MedicalRecordView {
	ext := FileExtension(r.FileURL)
	return model.MedicalRecordView{
		ID:            r.ID,
		RecordType:    r.RecordType,
		FileURL:       r.FileURL,
		Description:   r.Description,
		UploadDate:    r.UploadDate,
		FileName:      FileName(r.Description, r.FileURL),
		FileExtension: ext,
		IsImage:       imageExtensions[ext],
		IsPdf:         ext == "pdf",
	}
}

// lastSegment is the part of a URL after the final slash, without any query
// string or fragment
func lastSegment(url string) string {
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}
	if i := strings.LastIndex(url, "/"); i >= 0 {
		url = url[i+1:]
	}
	return url
}

// FileName prefers the record description, then the URL's last segment
func FileName(description, url string) string {
	if description != "" {
		return description
	}
	if seg := lastSegment(url); seg != "" {
		return seg
	}
	return UnknownFile
}

// FileExtension is the lowercased suffix after the last dot of the URL's last
// segment, or "unknown"
func FileExtension(url string) string {
	seg := lastSegment(url)
	i := strings.LastIndex(seg, ".")
	if i < 0 || i == len(seg)-1 {
		return UnknownExt
	}
	return strings.ToLower(seg[i+1:])
}

// PatientAppointment is the row shape of a patient's appointment history
func PatientAppointment(pa *model.PopulatedAppointment) model.PatientAppointment {
	a := pa.Appointment
	return model.PatientAppointment{
		ID:              a.ID,
		AppointmentDate: a.AppointmentDate,
		AppointmentTime: a.AppointmentTime,
		AppointmentType: a.AppointmentType,
		Status:          a.Status,
		Reason:          a.Reason,
		Doctor:          Doctor(pa.Doctor),
		PatientInfo:     a.PatientInfo,
		Payment:         a.Payment,
		MedicalRecords:  MedicalRecords(a.MedicalRecords),
	}
}

// newer orders appointments by date, then time, newest first, with the ID as
// the final tie-break
func newer(a, b *model.Appointment) bool {
	if !a.AppointmentDate.Equal(b.AppointmentDate) {
		return a.AppointmentDate.After(b.AppointmentDate)
	}
	if a.AppointmentTime != b.AppointmentTime {
		return a.AppointmentTime > b.AppointmentTime
	}
	return a.ID.Hex() < b.ID.Hex()
}

// GroupAppointmentsByPatient buckets appointments by their resolved patient.
// Appointments without a patient are skipped. The result does not depend on
// input order: each group is sorted newest first and groups are ordered by
// their newest appointment, then by patient ID.
func GroupAppointmentsByPatient(populated []*model.PopulatedAppointment) []model.PatientGroup {
	buckets := make(map[primitive.ObjectID][]*model.Appointment)
	for _, pa := range populated {
		if pa.Patient == nil {
			continue
		}
		buckets[pa.Patient.ID] = append(buckets[pa.Patient.ID], pa.Appointment)
	}

	type bucket struct {
		patientID primitive.ObjectID
		items     []*model.Appointment
	}
	ordered := make([]bucket, 0, len(buckets))
	for id, items := range buckets {
		sort.Slice(items, func(i, j int) bool { return newer(items[i], items[j]) })
		ordered = append(ordered, bucket{patientID: id, items: items})
	}
	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i].items[0], ordered[j].items[0]
		if a.AppointmentDate.Equal(b.AppointmentDate) && a.AppointmentTime == b.AppointmentTime {
			return ordered[i].patientID.Hex() < ordered[j].patientID.Hex()
		}
		return newer(a, b)
	})

	groups := make([]model.PatientGroup, 0, len(ordered))
	for _, b := range ordered {
		group := model.PatientGroup{
			PatientID:    b.patientID.Hex(),
			Appointments: make([]model.GroupedAppointment, 0, len(b.items)),
		}
		if info := b.items[0].PatientInfo; info != nil {
			group.PatientInfo = model.GroupPatientInfo{
				Name:   info.Name,
				Phone:  info.Phone,
				Age:    info.Age,
				Gender: info.Gender,
			}
		}
		for _, a := range b.items {
			group.Appointments = append(group.Appointments, model.GroupedAppointment{
				ID:      a.ID,
				Date:    a.AppointmentDate,
				Time:    a.AppointmentTime,
				Status:  a.Status,
				Type:    a.AppointmentType,
				Payment: a.Payment,
			})
		}
		groups = append(groups, group)
	}
	return groups
}
