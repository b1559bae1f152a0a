// Package cache reconciles the remote store into a single read model: a
// push-based live feed for tickets and a timed poll for the other five
// collections, merged into one Dataset with loading/error status. Readers
// never observe a collection half-replaced, and a failed refresh leaves the
// previous data untouched: stale data beats broken data.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/vistaran/helpdesk/internal/client/models"
	"github.com/vistaran/helpdesk/internal/client/remote"
	"github.com/vistaran/helpdesk/internal/logging"
)

// FetchErrorMessage is the generic user-facing message set on the dataset
// when an initial or manual refresh fails.
const FetchErrorMessage = "Failed to fetch data from the remote store"

// Snapshot is what readers get: an independent copy of the dataset plus the
// status fields for the initial/manual refresh path.
type Snapshot struct {
	Data      models.Dataset
	IsLoading bool
	Err       string // empty when no error is pending
}

// Cache owns the synchronized dataset. Activate with Start, release with
// Stop; results of fetches begun before Stop are discarded via an epoch
// guard, so a deactivated cache never mutates again.
type Cache struct {
	remote       remote.Store
	log          logging.Logger
	pollInterval time.Duration

	mu        sync.RWMutex
	data      models.Dataset
	isLoading bool
	errMsg    string
	epoch     int
	cancel    context.CancelFunc
	stopFeed  func()
	wg        sync.WaitGroup
}

func New(r remote.Store, pollInterval time.Duration, log logging.Logger) *Cache {
	return &Cache{
		remote:       r,
		pollInterval: pollInterval,
		log:          log.With("component", "cache"),
	}
}

// Start activates the cache: it kicks off a full refresh, subscribes to the
// ticket feed, and begins the background poll loop. Calling Start on an
// already-active cache is a no-op.
func (c *Cache) Start(ctx context.Context) {
	c.mu.Lock()
	if c.cancel != nil {
		c.mu.Unlock()
		return
	}
	c.epoch++
	e := c.epoch
	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.refresh(runCtx, e)
	}()

	stop, err := c.remote.ListenToTickets(runCtx, func(tickets []models.Ticket) {
		c.applyTickets(e, tickets)
	})
	if err != nil {
		c.log.Error(runCtx, "ticket feed subscription failed", "err", err)
	} else {
		c.mu.Lock()
		if c.epoch == e {
			c.stopFeed = stop
			c.mu.Unlock()
		} else {
			// deactivated while subscribing
			c.mu.Unlock()
			stop()
		}
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.pollLoop(runCtx, e)
	}()
}

// Stop deactivates the cache, cancelling the feed subscription and the poll
// loop. In-flight fetches are allowed to finish but their results are
// discarded. Safe to call more than once.
func (c *Cache) Stop() {
	c.mu.Lock()
	if c.cancel == nil {
		c.mu.Unlock()
		return
	}
	c.epoch++
	cancel := c.cancel
	stopFeed := c.stopFeed
	c.cancel = nil
	c.stopFeed = nil
	c.mu.Unlock()

	// outside the lock: the feed callback takes the lock and stopFeed waits
	// for the callback goroutine to drain
	cancel()
	if stopFeed != nil {
		stopFeed()
	}
	c.wg.Wait()
}

// Refresh re-fetches all six collections and atomically replaces the
// dataset, with the same semantics as the initial load. No-op when the
// cache is not active.
func (c *Cache) Refresh(ctx context.Context) {
	c.mu.RLock()
	active := c.cancel != nil
	e := c.epoch
	c.mu.RUnlock()
	if !active {
		return
	}
	c.refresh(ctx, e)
}

// Snapshot returns an independent copy of the current dataset and status.
func (c *Cache) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot{
		Data:      c.data.Clone(),
		IsLoading: c.isLoading,
		Err:       c.errMsg,
	}
}

// refresh performs the full six-way fetch. While in flight the snapshot
// reports loading; on any failure the previous dataset is kept and the
// generic error message is set.
func (c *Cache) refresh(ctx context.Context, e int) {
	c.mu.Lock()
	if c.epoch != e {
		c.mu.Unlock()
		return
	}
	c.isLoading = true
	c.errMsg = ""
	c.mu.Unlock()

	var (
		wg          sync.WaitGroup
		tickets     []models.Ticket
		users       []models.User
		technicians []models.Technician
		symptoms    []models.Symptom
		files       []models.ManagedFile
		templates   []models.TicketTemplate
		errs        [6]error
	)

	wg.Add(6)
	go func() { defer wg.Done(); tickets, errs[0] = c.remote.GetTickets(ctx) }()
	go func() { defer wg.Done(); users, errs[1] = c.remote.GetUsers(ctx) }()
	go func() { defer wg.Done(); technicians, errs[2] = c.remote.GetTechnicians(ctx) }()
	go func() { defer wg.Done(); symptoms, errs[3] = c.remote.GetSymptoms(ctx) }()
	go func() { defer wg.Done(); files, errs[4] = c.remote.GetFiles(ctx) }()
	go func() { defer wg.Done(); templates, errs[5] = c.remote.GetTemplates(ctx) }()
	wg.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != e {
		return
	}
	c.isLoading = false

	for _, err := range errs {
		if err != nil {
			c.log.Error(ctx, "refresh failed, keeping cached data", "err", err)
			c.errMsg = FetchErrorMessage
			return
		}
	}

	c.data = models.Dataset{
		Tickets:     tickets,
		Users:       users,
		Technicians: technicians,
		Symptoms:    symptoms,
		Files:       files,
		Templates:   templates,
	}
}

// pollLoop periodically re-fetches the five collections without a live
// feed. Failures are logged and otherwise silent: a degraded background
// refresh must not interrupt the user.
func (c *Cache) pollLoop(ctx context.Context, e int) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.refreshPolled(ctx, e)
		}
	}
}

func (c *Cache) refreshPolled(ctx context.Context, e int) {
	var (
		wg          sync.WaitGroup
		users       []models.User
		technicians []models.Technician
		symptoms    []models.Symptom
		files       []models.ManagedFile
		templates   []models.TicketTemplate
		errs        [5]error
	)

	wg.Add(5)
	go func() { defer wg.Done(); users, errs[0] = c.remote.GetUsers(ctx) }()
	go func() { defer wg.Done(); technicians, errs[1] = c.remote.GetTechnicians(ctx) }()
	go func() { defer wg.Done(); symptoms, errs[2] = c.remote.GetSymptoms(ctx) }()
	go func() { defer wg.Done(); files, errs[3] = c.remote.GetFiles(ctx) }()
	go func() { defer wg.Done(); templates, errs[4] = c.remote.GetTemplates(ctx) }()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			c.log.Warn(ctx, "background refresh failed, keeping cached data", "err", err)
			return
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != e {
		return
	}
	// the five polled slices move together; tickets stay on the feed path
	c.data.Users = users
	c.data.Technicians = technicians
	c.data.Symptoms = symptoms
	c.data.Files = files
	c.data.Templates = templates
}

// applyTickets replaces only the tickets slice, leaving the other
// collections untouched. Last write wins per slice.
func (c *Cache) applyTickets(e int, tickets []models.Ticket) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != e {
		return
	}
	c.data.Tickets = tickets
}
