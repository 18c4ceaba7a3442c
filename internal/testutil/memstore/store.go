// Package memstore is an in-memory stand-in for the Postgres
// repositories, used by use case and handler tests.
package memstore

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/campus-wellbeing/counsel-api/internal/httperr"
	"github.com/campus-wellbeing/counsel-api/internal/models"
)

type data struct {
	users        map[uuid.UUID]models.User
	slots        map[uuid.UUID]models.TimeSlot
	appointments map[uuid.UUID]models.Appointment
	sessions     map[uuid.UUID]models.Session
	journals     map[uuid.UUID]models.Journal
	moods        map[uuid.UUID]models.Mood
	order        map[uuid.UUID]int
}

func (d data) clone() data {
	c := data{
		users:        make(map[uuid.UUID]models.User, len(d.users)),
		slots:        make(map[uuid.UUID]models.TimeSlot, len(d.slots)),
		appointments: make(map[uuid.UUID]models.Appointment, len(d.appointments)),
		sessions:     make(map[uuid.UUID]models.Session, len(d.sessions)),
		journals:     make(map[uuid.UUID]models.Journal, len(d.journals)),
		moods:        make(map[uuid.UUID]models.Mood, len(d.moods)),
		order:        make(map[uuid.UUID]int, len(d.order)),
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.slots {
		c.slots[k] = v
	}
	for k, v := range d.appointments {
		c.appointments[k] = v
	}
	for k, v := range d.sessions {
		c.sessions[k] = v
	}
	for k, v := range d.journals {
		c.journals[k] = v
	}
	for k, v := range d.moods {
		c.moods[k] = v
	}
	for k, v := range d.order {
		c.order[k] = v
	}
	return c
}

// Store holds every table. Transactions are serialised by txMu and
// rolled back by restoring a snapshot.
type Store struct {
	txMu sync.Mutex

	mu  sync.Mutex
	d   data
	seq int

	Now func() time.Time
}

func New() *Store {
	return &Store{
		d: data{
			users:        map[uuid.UUID]models.User{},
			slots:        map[uuid.UUID]models.TimeSlot{},
			appointments: map[uuid.UUID]models.Appointment{},
			sessions:     map[uuid.UUID]models.Session{},
			journals:     map[uuid.UUID]models.Journal{},
			moods:        map[uuid.UUID]models.Mood{},
			order:        map[uuid.UUID]int{},
		},
		Now: time.Now,
	}
}

func (s *Store) transaction(fn func() error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.d.clone()
	s.mu.Unlock()

	if err := fn(); err != nil {
		s.mu.Lock()
		s.d = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// stamp records insertion order, used to break created_at ties.
func (s *Store) stamp(id uuid.UUID) time.Time {
	s.seq++
	s.d.order[id] = s.seq
	return s.Now().UTC()
}

func (s *Store) newer(a, b uuid.UUID, ta, tb time.Time) bool {
	if !ta.Equal(tb) {
		return ta.After(tb)
	}
	return s.d.order[a] > s.d.order[b]
}

// -------- Seeding --------

// AddUser inserts u, assigning an ID when it has none.
func (s *Store) AddUser(u models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.CreatedAt = s.stamp(u.ID)
	u.UpdatedAt = u.CreatedAt
	s.d.users[u.ID] = u
	return u
}

func (s *Store) User(id uuid.UUID) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.d.users[id]
	return u, ok
}

func (s *Store) Appointment(id uuid.UUID) (models.Appointment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ap, ok := s.d.appointments[id]
	return ap, ok
}

// SetActive overwrites a user's is_active flag, simulating drift.
func (s *Store) SetActive(id uuid.UUID, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.d.users[id]
	u.IsActive = active
	s.d.users[id] = u
}

// -------- Shared lookups (callers hold mu) --------

func (s *Store) getUser(id uuid.UUID) (*models.User, error) {
	u, ok := s.d.users[id]
	if !ok {
		return nil, httperr.NotFound("not_found")
	}
	return &u, nil
}

func (s *Store) getAppointment(id uuid.UUID) (*models.Appointment, error) {
	ap, ok := s.d.appointments[id]
	if !ok {
		return nil, httperr.NotFound("not_found")
	}
	return &ap, nil
}

func (s *Store) updateAppointment(ap *models.Appointment) error {
	if _, ok := s.d.appointments[ap.ID]; !ok {
		return httperr.NotFound("not_found")
	}
	row := *ap
	row.Student, row.Counsellor, row.TimeSlot = nil, nil, nil
	row.UpdatedAt = s.Now().UTC()
	s.d.appointments[ap.ID] = row
	return nil
}

func (s *Store) hasOpenSession(counsellorID uuid.UUID) bool {
	for _, sess := range s.d.sessions {
		if sess.CounsellorID == counsellorID && sess.EndTime == nil {
			return true
		}
	}
	return false
}

func (s *Store) userRef(id uuid.UUID) *models.User {
	u, ok := s.d.users[id]
	if !ok {
		return nil
	}
	return &u
}

func sortSlots(slots []models.TimeSlot) {
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].DayOfWeek != slots[j].DayOfWeek {
			return slots[i].DayOfWeek < slots[j].DayOfWeek
		}
		return slots[i].StartTime < slots[j].StartTime
	})
}
