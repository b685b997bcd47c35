package stats

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/meetocure/admin-api/internal/model"
	"github.com/meetocure/admin-api/internal/repository"
)

const (
	topN         = 5
	unknownValue = "Unknown"
)

// Windows are the dashboard counting windows, both ending at the start of
// tomorrow in the server's local time
type Windows struct {
	Today model.TimeRange
	Month model.TimeRange
}

func WindowsAt(now time.Time) Windows {
	y, m, d := now.Date()
	loc := now.Location()
	startOfDay := time.Date(y, m, d, 0, 0, 0, 0, loc)
	tomorrow := startOfDay.AddDate(0, 0, 1)
	startOfMonth := time.Date(y, m, 1, 0, 0, 0, 0, loc)
	return Windows{
		Today: model.TimeRange{From: startOfDay, To: tomorrow},
		Month: model.TimeRange{From: startOfMonth, To: tomorrow},
	}
}

// SuccessRate is completed/total as a rounded percentage, 0 when total is 0
func SuccessRate(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// TopCounts groups values and returns the n most frequent. Blank values are
// counted as "Unknown". Ties keep the order in which values were first seen.
func TopCounts(values []string, n int) []model.CountBucket {
	index := make(map[string]int)
	buckets := []model.CountBucket{}
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			v = unknownValue
		}
		if i, ok := index[v]; ok {
			buckets[i].Count++
			continue
		}
		index[v] = len(buckets)
		buckets = append(buckets, model.CountBucket{Key: v, Count: 1})
	}
	sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].Count > buckets[j].Count })
	if len(buckets) > n {
		buckets = buckets[:n]
	}
	return buckets
}

type Service struct {
	repos *repository.Repositories
	now   func() time.Time
}

func NewService(repos *repository.Repositories) *Service {
	return &Service{repos: repos, now: time.Now}
}

// WithClock overrides the time source
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Dashboard runs every count concurrently. Any single failure fails the
// whole request.
func (s *Service) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	w := WindowsAt(s.now())
	var out model.DashboardStats
	var specialties, cities []string

	g, ctx := errgroup.WithContext(ctx)
	count := func(dst *int, what string, fn func() (int, error)) {
		g.Go(func() error {
			n, err := fn()
			if err != nil {
				return fmt.Errorf("failed to count %s: %w", what, err)
			}
			*dst = n
			return nil
		})
	}

	r := s.repos
	count(&out.Overview.TotalPatients, "patients", func() (int, error) { return r.Patients.Count(ctx) })
	count(&out.Overview.TotalDoctors, "doctors", func() (int, error) { return r.Doctors.Count(ctx) })
	count(&out.Overview.TotalHospitals, "hospitals", func() (int, error) { return r.Hospitals.Count(ctx) })
	count(&out.Overview.PendingVerifications, "pending verifications", func() (int, error) { return r.Doctors.CountPending(ctx) })

	count(&out.Appointments.Today, "appointments today", func() (int, error) {
		return r.Appointments.CountCreated(ctx, w.Today, "")
	})
	count(&out.Appointments.Completed, "completed appointments", func() (int, error) {
		return r.Appointments.CountCreated(ctx, w.Today, model.AppointmentCompleted)
	})
	count(&out.Appointments.Cancelled, "cancelled appointments", func() (int, error) {
		return r.Appointments.CountCreated(ctx, w.Today, model.AppointmentCancelled)
	})
	count(&out.Appointments.Monthly, "monthly appointments", func() (int, error) {
		return r.Appointments.CountCreated(ctx, w.Month, "")
	})

	count(&out.NewRegistrations.Patients, "new patients", func() (int, error) { return r.Patients.CountCreated(ctx, w.Today) })
	count(&out.NewRegistrations.Doctors, "new doctors", func() (int, error) { return r.Doctors.CountCreated(ctx, w.Today) })

	g.Go(func() error {
		verifications, err := r.Verifications.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list verifications: %w", err)
		}
		for _, v := range verifications {
			specialties = append(specialties, v.PrimarySpecialization)
		}
		return nil
	})
	g.Go(func() error {
		hospitals, err := r.Hospitals.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list hospitals: %w", err)
		}
		for _, h := range hospitals {
			cities = append(cities, h.Location.City)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.Appointments.SuccessRate = SuccessRate(out.Appointments.Completed, out.Appointments.Today)
	out.Insights.TopSpecialties = TopCounts(specialties, topN)
	out.Insights.TopCities = TopCounts(cities, topN)
	return &out, nil
}
