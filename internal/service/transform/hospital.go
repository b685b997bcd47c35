package transform

import "github.com/meetocure/admin-api/internal/model"

func HospitalWithDoctors(h *model.Hospital, doctors []*model.PopulatedDoctor) model.HospitalWithDoctors {
	if doctors == nil {
		doctors = []*model.PopulatedDoctor{}
	}
	return model.HospitalWithDoctors{
		ID:            h.ID,
		Email:         h.Email,
		HospitalName:  h.HospitalName,
		Address:       h.Address,
		Contact:       h.Contact,
		HospitalImage: h.HospitalImage,
		Description:   h.Description,
		Specialties:   nonNil(h.Specialties),
		Facilities:    nonNil(h.Facilities),
		Location:      h.Location,
		Docters:       doctors,
		Timestamps:    h.Timestamps,
	}
}

func HospitalRef(h *model.Hospital) model.HospitalRef {
	return model.HospitalRef{
		HospitalID:      h.ID,
		HospitalName:    h.HospitalName,
		HospitalAddress: h.Address,
		HospitalContact: h.Contact,
	}
}

// HospitalDoctors tags each doctor with the hospital it was listed under
func HospitalDoctors(h *model.Hospital, doctors []*model.PopulatedDoctor) []model.HospitalDoctor {
	ref := HospitalRef(h)
	out := make([]model.HospitalDoctor, 0, len(doctors))
	for _, d := range doctors {
		out = append(out, model.HospitalDoctor{PopulatedDoctor: d, HospitalInfo: ref})
	}
	return out
}

// HospitalStats counts only doctor references that resolved
func HospitalStats(hospitals []*model.Hospital, doctorsPerHospital []int) model.HospitalStats {
	stats := model.HospitalStats{TotalHospitals: len(hospitals)}
	for _, n := range doctorsPerHospital {
		if n > 0 {
			stats.TotalDoctors += n
			stats.HospitalsWithDoctors++
		}
	}
	stats.HospitalsWithoutDoctors = stats.TotalHospitals - stats.HospitalsWithDoctors
	return stats
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
