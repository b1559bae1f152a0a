// Package audit keeps an append-only, size-bounded log of user actions in
// the durable store. Writes are best-effort: a failed write must never block
// or fail the user action being recorded.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vistaran/helpdesk/internal/client/models"
	"github.com/vistaran/helpdesk/internal/client/storage"
	"github.com/vistaran/helpdesk/internal/logging"
)

// MaxEntries bounds the persisted log. When a new entry would exceed it, the
// oldest entries are evicted silently (FIFO by insertion).
const MaxEntries = 200

// localIP is recorded on every entry. The client has no reliable way to
// observe its own address.
const localIP = "127.0.0.1"

// Recorder writes and reads the audit log.
type Recorder struct {
	store *storage.Store
	log   logging.Logger

	// test seams
	now   func() time.Time
	newID func(time.Time) string
}

func NewRecorder(store *storage.Store, log logging.Logger) *Recorder {
	return &Recorder{
		store: store,
		log:   log.With("component", "audit"),
		now:   time.Now,
		newID: newEntryID,
	}
}

// newEntryID derives the id from the same instant as the entry's timestamp,
// so the two can never disagree.
func newEntryID(at time.Time) string {
	return fmt.Sprintf("LOG_%d_%s", at.UnixMilli(), uuid.NewString()[:8])
}

// LogUserAction records action against user. A nil user is a diagnostic
// no-op; the caller is never failed for it.
func (r *Recorder) LogUserAction(ctx context.Context, user *models.User, action string) {
	if user == nil {
		r.log.Warn(ctx, "attempted to log action without a user", "action", action)
		return
	}

	entries := r.Entries(ctx)
	now := r.now().UTC()

	entry := models.AuditLogEntry{
		ID:        r.newID(now),
		UserID:    user.ID,
		UserName:  user.Name,
		Action:    action,
		Timestamp: now.Format(time.RFC3339),
		IP:        localIP,
	}

	entries = append([]models.AuditLogEntry{entry}, entries...)
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}

	data, err := json.Marshal(entries)
	if err != nil {
		r.log.Error(ctx, "failed to encode audit log", "err", err)
		return
	}
	r.store.Set(ctx, storage.KeyAuditLog, string(data))
}

// Entries returns the persisted log, most recent first. A missing or corrupt
// snapshot reads as empty.
func (r *Recorder) Entries(ctx context.Context) []models.AuditLogEntry {
	raw, ok := r.store.Get(ctx, storage.KeyAuditLog)
	if !ok {
		return nil
	}

	var entries []models.AuditLogEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		r.log.Warn(ctx, "corrupt audit log snapshot, starting fresh", "err", err)
		return nil
	}
	return entries
}
