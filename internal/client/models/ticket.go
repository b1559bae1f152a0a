package models

import "time"

// TicketStatus tracks a ticket through its lifecycle.
type TicketStatus string

const (
	TicketOpen       TicketStatus = "OPEN"
	TicketInProgress TicketStatus = "IN_PROGRESS"
	TicketResolved   TicketStatus = "RESOLVED"
	TicketClosed     TicketStatus = "CLOSED"
)

// TicketPriority orders tickets for triage.
type TicketPriority string

const (
	PriorityLow    TicketPriority = "LOW"
	PriorityMedium TicketPriority = "MEDIUM"
	PriorityHigh   TicketPriority = "HIGH"
)

// Ticket is a support request owned by the remote store.
type Ticket struct {
	ID             string         `json:"id"`
	UserID         string         `json:"userId"`
	Department     string         `json:"department"`
	Priority       TicketPriority `json:"priority"`
	Status         TicketStatus   `json:"status"`
	Description    string         `json:"description"`
	Notes          string         `json:"notes"`
	AssignedTechID string         `json:"assignedTechId"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// Technician is a support staff member tickets can be assigned to.
type Technician struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Specialty  string `json:"specialty"`
}

// Symptom is a predefined issue category users pick when filing tickets.
type Symptom struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Department  string `json:"department"`
	Description string `json:"description"`
}

// ManagedFile is metadata for a file stored remotely. Blob content never
// transits the client core.
type ManagedFile struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	Size       int64     `json:"size"`
	UploadedBy string    `json:"uploadedBy"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// TicketTemplate pre-fills the ticket form for recurring request types.
type TicketTemplate struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Department  string         `json:"department"`
	Priority    TicketPriority `json:"priority"`
	Description string         `json:"description"`
}
