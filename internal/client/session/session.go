// Package session implements the authentication and impersonation state
// machine. A session tracks two identities: user, the effective identity
// driving what the UI shows, and realUser, the identity that actually
// authenticated. They differ only while an admin impersonates someone else.
//
// Credential matching is exact, case-sensitive string comparison against
// plaintext passwords. That is a security gap inherited from the upstream
// data model and is deliberately not fixed here; fixing it silently would
// break compatibility with the seeded directory.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/vistaran/helpdesk/internal/client/audit"
	"github.com/vistaran/helpdesk/internal/client/directory"
	"github.com/vistaran/helpdesk/internal/client/models"
	"github.com/vistaran/helpdesk/internal/client/storage"
	"github.com/vistaran/helpdesk/internal/common"
	"github.com/vistaran/helpdesk/internal/logging"
)

// Manager owns the session state. All state transitions happen under its
// lock; Current returns copies so callers can never mutate a slot in place.
type Manager struct {
	dir   directory.Directory
	store *storage.Store
	audit *audit.Recorder
	log   logging.Logger

	mu       sync.RWMutex
	user     *models.User
	realUser *models.User
}

func NewManager(dir directory.Directory, store *storage.Store, rec *audit.Recorder, log logging.Logger) *Manager {
	return &Manager{
		dir:   dir,
		store: store,
		audit: rec,
		log:   log.With("component", "session"),
	}
}

// Current returns copies of the effective and real identities. Both are nil
// when logged out.
func (m *Manager) Current() (user, realUser *models.User) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copyUser(m.user), copyUser(m.realUser)
}

// IsAdmin reports whether the authenticated identity is an admin. The check
// is always against realUser so an admin impersonating a regular user keeps
// admin-level authorization in the surrounding application.
func (m *Manager) IsAdmin() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.realUser != nil && m.realUser.Role == models.RoleAdmin
}

// Login authenticates against the credential directory. Only on
// LoginSuccess does any state change: both slots are set to the found
// record, the current-user key is persisted, any stale impersonation key is
// cleared, and the action is audited.
func (m *Manager) Login(ctx context.Context, email, password string) models.LoginStatus {
	found, ok := m.dir.ByCredentials(email, password)
	if !ok {
		return models.LoginInvalidCredentials
	}
	if found.Status != models.UserActive {
		return models.LoginUserInactive
	}

	m.mu.Lock()
	m.user = &found
	m.realUser = copyUser(&found)
	m.mu.Unlock()

	m.store.Set(ctx, storage.KeyCurrentUserID, found.ID)
	m.store.Remove(ctx, storage.KeyImpersonatedUserID)
	m.audit.LogUserAction(ctx, &found, "Logged in.")

	return models.LoginSuccess
}

// Logout clears the session unconditionally. The audit entry is recorded
// against the current effective user before the state is dropped; a failed
// audit write does not keep the session alive.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	current := m.user
	m.user = nil
	m.realUser = nil
	m.mu.Unlock()

	if current != nil {
		m.audit.LogUserAction(ctx, current, "Logged out.")
	}
	m.store.Remove(ctx, storage.KeyCurrentUserID)
	m.store.Remove(ctx, storage.KeyImpersonatedUserID)
}

// Restore rebuilds the session from the durable store at startup. A
// persisted id that no longer resolves leaves the session logged out. A
// persisted impersonation id is honored only for admins and falls back to
// the real user when the target no longer resolves, so a stale id cannot
// leave the app in a broken state. Restore is not a user action and writes
// no audit entry.
func (m *Manager) Restore(ctx context.Context) {
	savedID, ok := m.store.Get(ctx, storage.KeyCurrentUserID)
	if !ok || savedID == "" {
		return
	}

	found, ok := m.dir.ByID(savedID)
	if !ok {
		m.log.Warn(ctx, "persisted user id no longer resolves, staying logged out", "id", savedID)
		return
	}

	effective := found
	if impID, ok := m.store.Get(ctx, storage.KeyImpersonatedUserID); ok && found.Role == models.RoleAdmin {
		if target, ok := m.dir.ByID(impID); ok {
			effective = target
		}
	}

	m.mu.Lock()
	m.user = &effective
	m.realUser = &found
	m.mu.Unlock()
}

// StartImpersonation switches the effective identity to the target user.
// Only admins may impersonate; rejections leave the session untouched and
// come back as common.ErrNotAuthorized (caller is not an admin) or
// common.ErrNotFound (no such target).
func (m *Manager) StartImpersonation(ctx context.Context, targetID string) error {
	m.mu.RLock()
	real := copyUser(m.realUser)
	m.mu.RUnlock()

	if real == nil || real.Role != models.RoleAdmin {
		m.log.Error(ctx, "only admins can impersonate users", "target", targetID)
		return fmt.Errorf("%w: only admins can impersonate users", common.ErrNotAuthorized)
	}

	target, ok := m.dir.ByID(targetID)
	if !ok {
		m.log.Error(ctx, "user to impersonate not found", "target", targetID)
		return fmt.Errorf("%w: user %s", common.ErrNotFound, targetID)
	}

	m.mu.Lock()
	m.user = &target
	m.mu.Unlock()

	m.store.Set(ctx, storage.KeyImpersonatedUserID, targetID)
	m.audit.LogUserAction(ctx, real,
		fmt.Sprintf("Started impersonating user: %s (ID: %s)", target.Name, targetID))
	return nil
}

// StopImpersonation restores the effective identity to the real user. Legal
// to call when not impersonating; beyond the audit entry and key removal it
// is then a no-op.
func (m *Manager) StopImpersonation(ctx context.Context) {
	m.mu.Lock()
	real := copyUser(m.realUser)
	m.user = copyUser(m.realUser)
	m.mu.Unlock()

	if real != nil {
		m.audit.LogUserAction(ctx, real, "Stopped user impersonation.")
	}
	m.store.Remove(ctx, storage.KeyImpersonatedUserID)
}

// UpdateUser shallow-merges the patch into whichever session slot matches
// the patch's id: either, both, or neither. Both slots match when not
// impersonating. The patch never changes which identity occupies a slot.
func (m *Manager) UpdateUser(patch models.UserPatch) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.user != nil && m.user.ID == patch.ID {
		patch.Apply(m.user)
	}
	if m.realUser != nil && m.realUser.ID == patch.ID {
		patch.Apply(m.realUser)
	}
}

func copyUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
