// Package remote defines the contract to the remote document store and its
// HTTP implementation. The six collections are fetched as whole snapshots;
// tickets additionally have a live feed that pushes a full snapshot on every
// remote change.
package remote

import (
	"context"

	"github.com/vistaran/helpdesk/internal/client/models"
)

// Store is the client surface of the remote document store. Every call may
// fail with a generic error; callers decide whether that is user-visible.
type Store interface {
	GetTickets(ctx context.Context) ([]models.Ticket, error)
	GetUsers(ctx context.Context) ([]models.User, error)
	GetTechnicians(ctx context.Context) ([]models.Technician, error)
	GetSymptoms(ctx context.Context) ([]models.Symptom, error)
	GetFiles(ctx context.Context) ([]models.ManagedFile, error)
	GetTemplates(ctx context.Context) ([]models.TicketTemplate, error)

	// CreateTicket files a new ticket and returns the stored record with its
	// server-assigned id and timestamps.
	CreateTicket(ctx context.Context, t models.Ticket) (models.Ticket, error)

	// UpdateTicket applies the non-zero fields of patch to the ticket with
	// the given id. A missing ticket comes back as common.ErrNotFound.
	UpdateTicket(ctx context.Context, id string, patch models.Ticket) (models.Ticket, error)

	// ListenToTickets delivers the full current ticket snapshot to fn every
	// time the collection changes remotely. The returned stop function
	// cancels the subscription; after stop returns no further callbacks are
	// delivered.
	ListenToTickets(ctx context.Context, fn func([]models.Ticket)) (stop func(), err error)
}
