package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vistaran/helpdesk/internal/client/models"
	"github.com/vistaran/helpdesk/internal/common"
	"github.com/vistaran/helpdesk/internal/logging"
)

// fakeRemote is a controllable remote.Store. Set fail to make every snapshot
// fetch return an error; push feeds a ticket snapshot through the live feed.
type fakeRemote struct {
	mu          sync.Mutex
	fail        bool
	tickets     []models.Ticket
	users       []models.User
	technicians []models.Technician
	symptoms    []models.Symptom
	files       []models.ManagedFile
	templates   []models.TicketTemplate
	feed        func([]models.Ticket)
	stopped     bool
}

func (f *fakeRemote) setFail(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = v
}

func (f *fakeRemote) err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return common.ErrRemoteUnavailable
	}
	return nil
}

func (f *fakeRemote) GetTickets(ctx context.Context) ([]models.Ticket, error) {
	if err := f.err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tickets, nil
}

func (f *fakeRemote) GetUsers(ctx context.Context) ([]models.User, error) {
	if err := f.err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users, nil
}

func (f *fakeRemote) GetTechnicians(ctx context.Context) ([]models.Technician, error) {
	if err := f.err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.technicians, nil
}

func (f *fakeRemote) GetSymptoms(ctx context.Context) ([]models.Symptom, error) {
	if err := f.err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.symptoms, nil
}

func (f *fakeRemote) GetFiles(ctx context.Context) ([]models.ManagedFile, error) {
	if err := f.err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.files, nil
}

func (f *fakeRemote) GetTemplates(ctx context.Context) ([]models.TicketTemplate, error) {
	if err := f.err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.templates, nil
}

func (f *fakeRemote) CreateTicket(ctx context.Context, t models.Ticket) (models.Ticket, error) {
	if err := f.err(); err != nil {
		return models.Ticket{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t.ID = "t-created"
	f.tickets = append(f.tickets, t)
	return t, nil
}

func (f *fakeRemote) UpdateTicket(ctx context.Context, id string, patch models.Ticket) (models.Ticket, error) {
	if err := f.err(); err != nil {
		return models.Ticket{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tickets {
		if f.tickets[i].ID == id {
			if patch.Status != "" {
				f.tickets[i].Status = patch.Status
			}
			return f.tickets[i], nil
		}
	}
	return models.Ticket{}, common.ErrNotFound
}

func (f *fakeRemote) ListenToTickets(ctx context.Context, fn func([]models.Ticket)) (func(), error) {
	f.mu.Lock()
	f.feed = fn
	f.mu.Unlock()
	stop := func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.stopped = true
		f.feed = nil
	}
	return stop, nil
}

func (f *fakeRemote) push(tickets []models.Ticket) {
	f.mu.Lock()
	fn := f.feed
	f.mu.Unlock()
	if fn != nil {
		fn(tickets)
	}
}

func (f *fakeRemote) feedStopped() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopped
}

func seededRemote() *fakeRemote {
	return &fakeRemote{
		tickets:     []models.Ticket{{ID: "t-1", Description: "Printer on fire"}},
		users:       []models.User{{ID: "user-1", Name: "Alice"}},
		technicians: []models.Technician{{ID: "tech-1", Name: "Bob"}},
		symptoms:    []models.Symptom{{ID: "s-1", Name: "No power"}},
		files:       []models.ManagedFile{{ID: "f-1", Name: "manual.pdf"}},
		templates:   []models.TicketTemplate{{ID: "tpl-1", Name: "Hardware fault"}},
	}
}

func waitLoaded(t *testing.T, c *Cache) Snapshot {
	t.Helper()
	var snap Snapshot
	require.Eventually(t, func() bool {
		snap = c.Snapshot()
		return !snap.IsLoading && (snap.Err != "" || len(snap.Data.Tickets) > 0 || len(snap.Data.Users) > 0)
	}, 2*time.Second, 5*time.Millisecond)
	return snap
}

func TestCache_Start_LoadsAllCollections(t *testing.T) {
	remote := seededRemote()
	c := New(remote, time.Hour, logging.Nop{})
	c.Start(context.Background())
	defer c.Stop()

	snap := waitLoaded(t, c)

	assert.Empty(t, snap.Err)
	assert.Len(t, snap.Data.Tickets, 1)
	assert.Len(t, snap.Data.Users, 1)
	assert.Len(t, snap.Data.Technicians, 1)
	assert.Len(t, snap.Data.Symptoms, 1)
	assert.Len(t, snap.Data.Files, 1)
	assert.Len(t, snap.Data.Templates, 1)
}

func TestCache_FailedRefresh_KeepsDataAndSetsError(t *testing.T) {
	remote := seededRemote()
	c := New(remote, time.Hour, logging.Nop{})
	c.Start(context.Background())
	defer c.Stop()

	waitLoaded(t, c)

	remote.setFail(true)
	c.Refresh(context.Background())

	snap := c.Snapshot()
	assert.Equal(t, FetchErrorMessage, snap.Err)
	assert.Len(t, snap.Data.Tickets, 1, "previous data must survive a failed refresh")
	assert.Len(t, snap.Data.Users, 1)
}

func TestCache_SuccessfulRefresh_ClearsError(t *testing.T) {
	remote := seededRemote()
	c := New(remote, time.Hour, logging.Nop{})
	c.Start(context.Background())
	defer c.Stop()

	waitLoaded(t, c)

	remote.setFail(true)
	c.Refresh(context.Background())
	require.Equal(t, FetchErrorMessage, c.Snapshot().Err)

	remote.setFail(false)
	c.Refresh(context.Background())

	snap := c.Snapshot()
	assert.Empty(t, snap.Err)
	assert.Len(t, snap.Data.Tickets, 1)
}

func TestCache_Feed_ReplacesOnlyTickets(t *testing.T) {
	remote := seededRemote()
	c := New(remote, time.Hour, logging.Nop{})
	c.Start(context.Background())
	defer c.Stop()

	waitLoaded(t, c)

	remote.push([]models.Ticket{
		{ID: "t-1", Description: "Printer on fire"},
		{ID: "t-2", Description: "Monitor flickers"},
	})

	require.Eventually(t, func() bool {
		return len(c.Snapshot().Data.Tickets) == 2
	}, 2*time.Second, 5*time.Millisecond)

	snap := c.Snapshot()
	assert.Len(t, snap.Data.Users, 1, "feed must not touch other collections")
	assert.Len(t, snap.Data.Templates, 1)
}

func TestCache_Poll_RefreshesQuietlyOnFailure(t *testing.T) {
	remote := seededRemote()
	c := New(remote, 10*time.Millisecond, logging.Nop{})
	c.Start(context.Background())
	defer c.Stop()

	waitLoaded(t, c)

	remote.setFail(true)
	time.Sleep(50 * time.Millisecond)

	snap := c.Snapshot()
	assert.Empty(t, snap.Err, "background failures must not surface an error")
	assert.Len(t, snap.Data.Users, 1)
}

func TestCache_Poll_PicksUpNewData(t *testing.T) {
	remote := seededRemote()
	c := New(remote, 10*time.Millisecond, logging.Nop{})
	c.Start(context.Background())
	defer c.Stop()

	waitLoaded(t, c)

	remote.mu.Lock()
	remote.users = append(remote.users, models.User{ID: "user-2", Name: "Carol"})
	remote.mu.Unlock()

	require.Eventually(t, func() bool {
		return len(c.Snapshot().Data.Users) == 2
	}, 2*time.Second, 5*time.Millisecond)
}

func TestCache_Stop_CancelsFeedAndDiscardsLateEvents(t *testing.T) {
	remote := seededRemote()
	c := New(remote, time.Hour, logging.Nop{})
	c.Start(context.Background())

	waitLoaded(t, c)
	before := c.Snapshot()

	c.Stop()
	assert.True(t, remote.feedStopped())

	// events and refreshes after deactivation must be ignored
	c.applyTickets(1, []models.Ticket{{ID: "t-9"}})
	c.Refresh(context.Background())

	after := c.Snapshot()
	assert.Equal(t, len(before.Data.Tickets), len(after.Data.Tickets))
}

func TestCache_Stop_Twice_IsSafe(t *testing.T) {
	remote := seededRemote()
	c := New(remote, time.Hour, logging.Nop{})
	c.Start(context.Background())
	waitLoaded(t, c)
	c.Stop()
	c.Stop()
}

func TestCache_Refresh_BeforeStart_IsNoOp(t *testing.T) {
	remote := seededRemote()
	c := New(remote, time.Hour, logging.Nop{})

	c.Refresh(context.Background())

	snap := c.Snapshot()
	assert.Empty(t, snap.Data.Tickets)
	assert.Empty(t, snap.Err)
}

func TestCache_Snapshot_ReturnsIndependentCopy(t *testing.T) {
	remote := seededRemote()
	c := New(remote, time.Hour, logging.Nop{})
	c.Start(context.Background())
	defer c.Stop()

	waitLoaded(t, c)

	snap := c.Snapshot()
	snap.Data.Tickets[0].Description = "mutated"

	assert.Equal(t, "Printer on fire", c.Snapshot().Data.Tickets[0].Description)
}
