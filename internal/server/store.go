// Package server is the development remote store: an in-memory, seeded
// implementation of the helpdesk data API the client synchronizes against.
// It exists so the client can be exercised end to end without a hosted
// backend; nothing here survives a restart.
package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vistaran/helpdesk/internal/client/models"
)

// MemStore holds the six collections and fans ticket changes out to watch
// subscribers. All methods are safe for concurrent use.
type MemStore struct {
	mu          sync.RWMutex
	tickets     []models.Ticket
	users       []models.User
	technicians []models.Technician
	symptoms    []models.Symptom
	files       []models.ManagedFile
	templates   []models.TicketTemplate

	subMu  sync.Mutex
	nextID int
	subs   map[int]chan []models.Ticket
}

func NewMemStore() *MemStore {
	return &MemStore{subs: make(map[int]chan []models.Ticket)}
}

// NewSeededStore returns a MemStore pre-filled with demo data.
func NewSeededStore() *MemStore {
	s := NewMemStore()
	now := time.Now().UTC()

	s.users = []models.User{
		{ID: "admin-1", Name: "Admin User", Email: "admin@vistaran.com", Password: "admin123", Role: models.RoleAdmin, Status: models.UserActive, Department: "IT"},
		{ID: "user-1", Name: "Alice Carter", Email: "alice@vistaran.com", Password: "password1", Role: models.RoleUser, Status: models.UserActive, Department: "Finance"},
		{ID: "user-2", Name: "Ben Okafor", Email: "ben@vistaran.com", Password: "password2", Role: models.RoleUser, Status: models.UserActive, Department: "HR"},
	}
	s.technicians = []models.Technician{
		{ID: "tech-1", Name: "Dana Ruiz", Email: "dana@vistaran.com", Department: "IT", Specialty: "Hardware"},
		{ID: "tech-2", Name: "Erik Lund", Email: "erik@vistaran.com", Department: "IT", Specialty: "Networking"},
	}
	s.symptoms = []models.Symptom{
		{ID: "sym-1", Name: "No power", Department: "IT", Description: "Device does not turn on"},
		{ID: "sym-2", Name: "Slow network", Department: "IT", Description: "Pages take long to load"},
	}
	s.templates = []models.TicketTemplate{
		{ID: "tpl-1", Name: "Hardware fault", Department: "IT", Priority: models.PriorityHigh, Description: "Describe the affected device"},
	}
	s.tickets = []models.Ticket{
		{
			ID:          "t-1",
			UserID:      "user-1",
			Department:  "IT",
			Priority:    models.PriorityMedium,
			Status:      models.TicketOpen,
			Description: "Laptop will not boot",
			CreatedAt:   now.Add(-time.Hour),
			UpdatedAt:   now.Add(-time.Hour),
		},
	}
	return s
}

func (s *MemStore) Tickets() []models.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Ticket, len(s.tickets))
	copy(out, s.tickets)
	return out
}

func (s *MemStore) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out
}

func (s *MemStore) Technicians() []models.Technician {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Technician, len(s.technicians))
	copy(out, s.technicians)
	return out
}

func (s *MemStore) Symptoms() []models.Symptom {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Symptom, len(s.symptoms))
	copy(out, s.symptoms)
	return out
}

func (s *MemStore) Files() []models.ManagedFile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ManagedFile, len(s.files))
	copy(out, s.files)
	return out
}

func (s *MemStore) Templates() []models.TicketTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.TicketTemplate, len(s.templates))
	copy(out, s.templates)
	return out
}

// CreateTicket stores t with a generated id and timestamps, broadcasts the
// new snapshot, and returns the stored ticket.
func (s *MemStore) CreateTicket(t models.Ticket) models.Ticket {
	now := time.Now().UTC()
	t.ID = "t-" + uuid.NewString()[:8]
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Status == "" {
		t.Status = models.TicketOpen
	}

	s.mu.Lock()
	s.tickets = append(s.tickets, t)
	s.mu.Unlock()

	s.broadcast()
	return t
}

// UpdateTicket applies the non-zero fields of patch to the ticket with the
// given id and broadcasts the new snapshot. ok is false when no such ticket
// exists.
func (s *MemStore) UpdateTicket(id string, patch models.Ticket) (models.Ticket, bool) {
	s.mu.Lock()
	var updated models.Ticket
	found := false
	for i := range s.tickets {
		if s.tickets[i].ID != id {
			continue
		}
		t := &s.tickets[i]
		if patch.Status != "" {
			t.Status = patch.Status
		}
		if patch.Priority != "" {
			t.Priority = patch.Priority
		}
		if patch.AssignedTechID != "" {
			t.AssignedTechID = patch.AssignedTechID
		}
		if patch.Notes != "" {
			t.Notes = patch.Notes
		}
		if patch.Description != "" {
			t.Description = patch.Description
		}
		t.UpdatedAt = time.Now().UTC()
		updated = *t
		found = true
		break
	}
	s.mu.Unlock()

	if found {
		s.broadcast()
	}
	return updated, found
}

// Subscribe registers a watcher. The returned channel receives the full
// ticket snapshot on every change; cancel removes the subscription.
func (s *MemStore) Subscribe() (<-chan []models.Ticket, func()) {
	ch := make(chan []models.Ticket, 8)

	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.subMu.Unlock()

	cancel := func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
	return ch, cancel
}

// broadcast pushes the current snapshot to every subscriber. Slow consumers
// with a full buffer miss the event; they catch up on the next change.
func (s *MemStore) broadcast() {
	snapshot := s.Tickets()

	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- snapshot:
		default:
		}
	}
}
