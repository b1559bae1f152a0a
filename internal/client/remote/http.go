package remote

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/vistaran/helpdesk/internal/client/models"
	"github.com/vistaran/helpdesk/internal/common"
	"github.com/vistaran/helpdesk/internal/logging"
)

// reconnectDelay paces watch-stream reconnects after a dropped connection.
const reconnectDelay = 2 * time.Second

// HTTPStore talks to the remote store's JSON API. Snapshots are plain GETs;
// the ticket feed is a server-sent-event stream of full snapshots.
type HTTPStore struct {
	baseURL string
	client  *http.Client
	log     logging.Logger
}

// NewHTTPStore builds a store client for the API at baseURL (no trailing
// slash required). timeout bounds each snapshot request; the watch stream is
// long-lived and not subject to it.
func NewHTTPStore(baseURL string, timeout time.Duration, log logging.Logger) *HTTPStore {
	return &HTTPStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		log:     log.With("component", "remote"),
	}
}

func getJSON[T any](ctx context.Context, s *HTTPStore, path string) ([]T, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrRemoteUnavailable, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", common.ErrRemoteUnavailable, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: get %s: status %d", common.ErrRemoteUnavailable, path, resp.StatusCode)
	}

	var out []T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", common.ErrRemoteUnavailable, path, err)
	}
	return out, nil
}

// sendTicket issues a mutation (POST or PATCH) with a JSON ticket body and
// decodes the stored record from the response.
func (s *HTTPStore) sendTicket(ctx context.Context, method, path string, t models.Ticket) (models.Ticket, error) {
	var zero models.Ticket

	body, err := json.Marshal(t)
	if err != nil {
		return zero, fmt.Errorf("failed to encode ticket: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return zero, fmt.Errorf("%w: %v", common.ErrRemoteUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return zero, fmt.Errorf("%w: %s %s: %v", common.ErrRemoteUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return zero, fmt.Errorf("%w: %s %s", common.ErrNotFound, method, path)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return zero, fmt.Errorf("%w: %s %s: status %d", common.ErrRemoteUnavailable, method, path, resp.StatusCode)
	}

	var stored models.Ticket
	if err := json.NewDecoder(resp.Body).Decode(&stored); err != nil {
		return zero, fmt.Errorf("%w: decode %s: %v", common.ErrRemoteUnavailable, path, err)
	}
	return stored, nil
}

func (s *HTTPStore) CreateTicket(ctx context.Context, t models.Ticket) (models.Ticket, error) {
	return s.sendTicket(ctx, http.MethodPost, "/api/tickets", t)
}

func (s *HTTPStore) UpdateTicket(ctx context.Context, id string, patch models.Ticket) (models.Ticket, error) {
	return s.sendTicket(ctx, http.MethodPatch, "/api/tickets/"+id, patch)
}

func (s *HTTPStore) GetTickets(ctx context.Context) ([]models.Ticket, error) {
	return getJSON[models.Ticket](ctx, s, "/api/tickets")
}

func (s *HTTPStore) GetUsers(ctx context.Context) ([]models.User, error) {
	return getJSON[models.User](ctx, s, "/api/users")
}

func (s *HTTPStore) GetTechnicians(ctx context.Context) ([]models.Technician, error) {
	return getJSON[models.Technician](ctx, s, "/api/technicians")
}

func (s *HTTPStore) GetSymptoms(ctx context.Context) ([]models.Symptom, error) {
	return getJSON[models.Symptom](ctx, s, "/api/symptoms")
}

func (s *HTTPStore) GetFiles(ctx context.Context) ([]models.ManagedFile, error) {
	return getJSON[models.ManagedFile](ctx, s, "/api/files")
}

func (s *HTTPStore) GetTemplates(ctx context.Context) ([]models.TicketTemplate, error) {
	return getJSON[models.TicketTemplate](ctx, s, "/api/templates")
}

// ListenToTickets consumes the SSE stream at /api/tickets/watch. Each event
// carries the full ticket snapshot as a JSON array on a single data line.
// The stream reconnects with a fixed delay until stopped.
func (s *HTTPStore) ListenToTickets(ctx context.Context, fn func([]models.Ticket)) (func(), error) {
	watchCtx, cancel := context.WithCancel(ctx)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			if err := s.watchOnce(watchCtx, fn); err != nil && watchCtx.Err() == nil {
				s.log.Warn(watchCtx, "ticket feed dropped, reconnecting", "err", err)
			}
			select {
			case <-watchCtx.Done():
				return
			case <-time.After(reconnectDelay):
			}
		}
	}()

	stop := func() {
		cancel()
		wg.Wait()
	}
	return stop, nil
}

func (s *HTTPStore) watchOnce(ctx context.Context, fn func([]models.Ticket)) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/tickets/watch", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")

	// the watch request is long-lived; bypass the snapshot timeout
	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("watch: status %d", resp.StatusCode)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "" {
			continue
		}

		var tickets []models.Ticket
		if err := json.Unmarshal([]byte(payload), &tickets); err != nil {
			s.log.Warn(ctx, "ignoring malformed feed event", "err", err)
			continue
		}
		fn(tickets)
	}
	return scanner.Err()
}
