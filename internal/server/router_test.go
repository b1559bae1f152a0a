package server

import (
	"bufio"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vistaran/helpdesk/internal/client/models"
	"github.com/vistaran/helpdesk/internal/logging"
)

func setupRouter(t *testing.T) (*gin.Engine, *MemStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := NewSeededStore()
	return NewRouter(store, logging.Nop{}), store
}

func TestGetCollections(t *testing.T) {
	router, _ := setupRouter(t)

	tests := []struct {
		path    string
		wantLen int
	}{
		{"/api/tickets", 1},
		{"/api/users", 3},
		{"/api/technicians", 2},
		{"/api/symptoms", 2},
		{"/api/files", 0},
		{"/api/templates", 1},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			router.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)

			var items []json.RawMessage
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
			assert.Len(t, items, tc.wantLen)
		})
	}
}

func TestCreateTicket(t *testing.T) {
	router, store := setupRouter(t)

	body := `{"userId":"user-2","department":"IT","priority":"HIGH","description":"Screen cracked"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/tickets", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Ticket
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.TicketOpen, created.Status)
	assert.False(t, created.CreatedAt.IsZero())

	assert.Len(t, store.Tickets(), 2)
}

func TestCreateTicket_BadJSON(t *testing.T) {
	router, _ := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/tickets", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateTicket(t *testing.T) {
	router, store := setupRouter(t)

	body := `{"status":"RESOLVED","assignedTechId":"tech-1"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/tickets/t-1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Ticket
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, models.TicketResolved, updated.Status)
	assert.Equal(t, "tech-1", updated.AssignedTechID)
	// untouched fields survive the patch
	assert.Equal(t, "Laptop will not boot", updated.Description)

	assert.Equal(t, models.TicketResolved, store.Tickets()[0].Status)
}

func TestUpdateTicket_NotFound(t *testing.T) {
	router, _ := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/tickets/missing", strings.NewReader(`{"status":"CLOSED"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWatch_StreamsSnapshots(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := NewSeededStore()
	srv := httptest.NewServer(NewRouter(store, logging.Nop{}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/tickets/watch")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	events := make(chan []models.Ticket, 4)
	go func() {
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			line := scanner.Text()
			if !strings.HasPrefix(line, "data:") {
				continue
			}
			var tickets []models.Ticket
			if json.Unmarshal([]byte(strings.TrimSpace(strings.TrimPrefix(line, "data:"))), &tickets) == nil {
				events <- tickets
			}
		}
	}()

	select {
	case initial := <-events:
		assert.Len(t, initial, 1)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for initial snapshot")
	}

	store.CreateTicket(models.Ticket{UserID: "user-1", Department: "IT", Description: "Mouse missing"})

	select {
	case next := <-events:
		assert.Len(t, next, 2)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change event")
	}
}

func TestMemStore_Subscribe_CancelStopsDelivery(t *testing.T) {
	store := NewSeededStore()
	ch, cancel := store.Subscribe()

	store.CreateTicket(models.Ticket{UserID: "user-1", Description: "one"})
	select {
	case snapshot := <-ch:
		assert.Len(t, snapshot, 2)
	case <-time.After(time.Second):
		t.Fatal("expected a snapshot after create")
	}

	cancel()
	store.CreateTicket(models.Ticket{UserID: "user-1", Description: "two"})
	select {
	case <-ch:
		t.Fatal("cancelled subscriber should not receive events")
	case <-time.After(50 * time.Millisecond):
	}
}
