// Package memory is an in-process implementation of the repository
// interfaces. It keeps insertion order so listings match what the mongo
// store returns for an unsorted find.
package memory

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/meetocure/admin-api/internal/model"
	"github.com/meetocure/admin-api/internal/repository"
)

// table holds one collection. Values are copied in and out so callers never
// share memory with the store.
type table[T any] struct {
	mu    sync.RWMutex
	order []primitive.ObjectID
	rows  map[primitive.ObjectID]T
	clone func(T) T
}

func newTable[T any](clone func(T) T) *table[T] {
	return &table[T]{rows: make(map[primitive.ObjectID]T), clone: clone}
}

func (t *table[T]) insert(id primitive.ObjectID, v T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = t.clone(v)
}

func (t *table[T]) get(id primitive.ObjectID) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, repository.ErrNotFound
	}
	return t.clone(v), nil
}

// find returns copies of every row matching keep, in insertion order
func (t *table[T]) find(keep func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []T
	for _, id := range t.order {
		v := t.rows[id]
		if keep == nil || keep(v) {
			out = append(out, t.clone(v))
		}
	}
	return out
}

func (t *table[T]) findOne(keep func(T) bool) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, id := range t.order {
		if v := t.rows[id]; keep(v) {
			return t.clone(v), nil
		}
	}
	var zero T
	return zero, repository.ErrNotFound
}

func (t *table[T]) count(keep func(T) bool) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n := 0
	for _, v := range t.rows {
		if keep == nil || keep(v) {
			n++
		}
	}
	return n
}

// exists reports whether any row other than self matches keep
func (t *table[T]) exists(self primitive.ObjectID, keep func(T) bool) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for id, v := range t.rows {
		if id != self && keep(v) {
			return true
		}
	}
	return false
}

// update applies fn to the stored row under the write lock
func (t *table[T]) update(id primitive.ObjectID, fn func(T) T) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, repository.ErrNotFound
	}
	v = fn(t.clone(v))
	t.rows[id] = t.clone(v)
	return t.clone(v), nil
}

func (t *table[T]) delete(id primitive.ObjectID) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(t.rows, id)
	for i, o := range t.order {
		if o == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return nil
}

// Store owns every collection
type Store struct {
	uniq sync.Mutex
	now  func() time.Time

	admins         *table[*model.Admin]
	doctors        *table[*model.Doctor]
	verifications  *table[*model.DoctorVerification]
	hospitals      *table[*model.Hospital]
	patients       *table[*model.Patient]
	patientDetails *table[*model.PatientDetails]
	appointments   *table[*model.Appointment]
	settings       *table[*model.Settings]
}

// New returns an empty store. now may be nil.
func New(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		now:            now,
		admins:         newTable(cloneAdmin),
		doctors:        newTable(cloneDoctor),
		verifications:  newTable(cloneVerification),
		hospitals:      newTable(cloneHospital),
		patients:       newTable(clonePatient),
		patientDetails: newTable(clonePatientDetails),
		appointments:   newTable(cloneAppointment),
		settings:       newTable(cloneSettings),
	}
}

// Repositories wires every repository against s
func (s *Store) Repositories() *repository.Repositories {
	return &repository.Repositories{
		Admins:         &adminRepository{s},
		Doctors:        &doctorRepository{s},
		Verifications:  &verificationRepository{s},
		Hospitals:      &hospitalRepository{s},
		Patients:       &patientRepository{s},
		PatientDetails: &patientDetailsRepository{s},
		Appointments:   &appointmentRepository{s},
		Settings:       &settingsRepository{s},
		Health:         s,
	}
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func newID(id primitive.ObjectID) primitive.ObjectID {
	if id.IsZero() {
		return primitive.NewObjectID()
	}
	return id
}
