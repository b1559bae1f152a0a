// Package settings is the typed configuration store: every setting has a
// hardcoded default, a durable override, and a synchronous setter whose
// effect is visible before the call returns. Settings are read far more
// often than written, so defaults are applied eagerly at construction and a
// corrupt stored value falls back to its default instead of failing.
package settings

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/vistaran/helpdesk/internal/client/models"
	"github.com/vistaran/helpdesk/internal/client/storage"
	"github.com/vistaran/helpdesk/internal/logging"
)

// Theme selects the light/dark rendering mode.
type Theme string

const (
	ThemeSystem Theme = "system"
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
)

// ColorTheme selects the accent palette.
type ColorTheme string

const (
	ColorDefault ColorTheme = "default"
	ColorEmerald ColorTheme = "emerald"
	ColorCrimson ColorTheme = "crimson"
	ColorRoyal   ColorTheme = "royal"
	ColorSunset  ColorTheme = "sunset"
)

// Notifications holds the six per-event dispatch flags. JSON field names
// double as the persisted representation under KeyNotificationSettings.
type Notifications struct {
	AdminOnNewTicket          bool `json:"adminOnNewTicket"`
	UserOnNewTicket           bool `json:"userOnNewTicket"`
	UserOnTicketResolved      bool `json:"userOnTicketResolved"`
	AdminOnTicketResolved     bool `json:"adminOnTicketResolved"`
	TechOnTicketAssigned      bool `json:"techOnTicketAssigned"`
	UserOnTicketStatusChanged bool `json:"userOnTicketStatusChanged"`
}

// NotificationsPatch is a partial update; nil fields keep their value.
type NotificationsPatch struct {
	AdminOnNewTicket          *bool
	UserOnNewTicket           *bool
	UserOnTicketResolved      *bool
	AdminOnTicketResolved     *bool
	TechOnTicketAssigned      *bool
	UserOnTicketStatusChanged *bool
}

// EmailTemplates maps the six notification events to their template pair.
type EmailTemplates struct {
	AdminOnNewTicket          models.EmailTemplate `json:"adminOnNewTicket"`
	UserOnNewTicket           models.EmailTemplate `json:"userOnNewTicket"`
	UserOnTicketResolved      models.EmailTemplate `json:"userOnTicketResolved"`
	AdminOnTicketResolved     models.EmailTemplate `json:"adminOnTicketResolved"`
	TechOnTicketAssigned      models.EmailTemplate `json:"techOnTicketAssigned"`
	UserOnTicketStatusChanged models.EmailTemplate `json:"userOnTicketStatusChanged"`
}

// EmailTemplatesPatch is a partial update; nil fields keep their value.
type EmailTemplatesPatch struct {
	AdminOnNewTicket          *models.EmailTemplate
	UserOnNewTicket           *models.EmailTemplate
	UserOnTicketResolved      *models.EmailTemplate
	AdminOnTicketResolved     *models.EmailTemplate
	TechOnTicketAssigned      *models.EmailTemplate
	UserOnTicketStatusChanged *models.EmailTemplate
}

// Store holds the in-memory settings state and mirrors every change to the
// durable store. Safe for concurrent readers (the cache and notification
// paths read from background goroutines).
type Store struct {
	storage *storage.Store
	log     logging.Logger

	mu               sync.RWMutex
	logoURL          string
	notifications    Notifications
	emailjsServiceID string
	emailjsPublicKey string
	templates        EmailTemplates
	theme            Theme
	colorTheme       ColorTheme
}

// New builds a Store with defaults applied, then overlays any values found
// in the durable store. Corrupt stored values are logged and ignored.
func New(ctx context.Context, st *storage.Store, log logging.Logger) *Store {
	s := &Store{
		storage:          st,
		log:              log.With("component", "settings"),
		logoURL:          DefaultLogoURL,
		notifications:    defaultNotifications(),
		emailjsServiceID: DefaultEmailJSServiceID,
		emailjsPublicKey: DefaultEmailJSPublicKey,
		templates:        defaultTemplates(),
		theme:            DefaultTheme,
		colorTheme:       DefaultColorTheme,
	}
	s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) {
	if v, ok := s.storage.Get(ctx, storage.KeyLogoURL); ok {
		s.logoURL = v
	}
	if raw, ok := s.storage.Get(ctx, storage.KeyNotificationSettings); ok {
		var n Notifications
		if err := json.Unmarshal([]byte(raw), &n); err != nil {
			s.log.Warn(ctx, "corrupt notification settings, keeping defaults", "err", err)
		} else {
			s.notifications = n
		}
	}
	if v, ok := s.storage.Get(ctx, storage.KeyEmailJSServiceID); ok {
		s.emailjsServiceID = v
	}
	if v, ok := s.storage.Get(ctx, storage.KeyEmailJSPublicKey); ok {
		s.emailjsPublicKey = v
	}
	if raw, ok := s.storage.Get(ctx, storage.KeyEmailTemplates); ok {
		var tpl EmailTemplates
		if err := json.Unmarshal([]byte(raw), &tpl); err != nil {
			s.log.Warn(ctx, "corrupt email templates, keeping defaults", "err", err)
		} else {
			s.templates = tpl
		}
	}
	if v, ok := s.storage.Get(ctx, storage.KeyTheme); ok {
		s.theme = Theme(v)
	}
	if v, ok := s.storage.Get(ctx, storage.KeyColorTheme); ok {
		s.colorTheme = ColorTheme(v)
	}
}

func (s *Store) LogoURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.logoURL
}

func (s *Store) SetLogoURL(ctx context.Context, url string) {
	s.mu.Lock()
	s.logoURL = url
	s.mu.Unlock()
	s.storage.Set(ctx, storage.KeyLogoURL, url)
}

func (s *Store) Notifications() Notifications {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notifications
}

// NotificationEnabled reports whether the dispatch path for event is on.
// Unknown events are off.
func (s *Store) NotificationEnabled(event models.NotificationEvent) bool {
	n := s.Notifications()
	switch event {
	case models.AdminOnNewTicket:
		return n.AdminOnNewTicket
	case models.UserOnNewTicket:
		return n.UserOnNewTicket
	case models.UserOnTicketResolved:
		return n.UserOnTicketResolved
	case models.AdminOnTicketResolved:
		return n.AdminOnTicketResolved
	case models.TechOnTicketAssigned:
		return n.TechOnTicketAssigned
	case models.UserOnTicketStatusChanged:
		return n.UserOnTicketStatusChanged
	default:
		return false
	}
}

// UpdateNotifications merges the patch into the current flags and persists
// the whole resulting structure.
func (s *Store) UpdateNotifications(ctx context.Context, patch NotificationsPatch) {
	s.mu.Lock()
	n := &s.notifications
	if patch.AdminOnNewTicket != nil {
		n.AdminOnNewTicket = *patch.AdminOnNewTicket
	}
	if patch.UserOnNewTicket != nil {
		n.UserOnNewTicket = *patch.UserOnNewTicket
	}
	if patch.UserOnTicketResolved != nil {
		n.UserOnTicketResolved = *patch.UserOnTicketResolved
	}
	if patch.AdminOnTicketResolved != nil {
		n.AdminOnTicketResolved = *patch.AdminOnTicketResolved
	}
	if patch.TechOnTicketAssigned != nil {
		n.TechOnTicketAssigned = *patch.TechOnTicketAssigned
	}
	if patch.UserOnTicketStatusChanged != nil {
		n.UserOnTicketStatusChanged = *patch.UserOnTicketStatusChanged
	}
	merged := s.notifications
	s.mu.Unlock()

	s.persistJSON(ctx, storage.KeyNotificationSettings, merged)
}

func (s *Store) EmailJSServiceID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.emailjsServiceID
}

func (s *Store) SetEmailJSServiceID(ctx context.Context, id string) {
	s.mu.Lock()
	s.emailjsServiceID = id
	s.mu.Unlock()
	s.storage.Set(ctx, storage.KeyEmailJSServiceID, id)
}

func (s *Store) EmailJSPublicKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.emailjsPublicKey
}

func (s *Store) SetEmailJSPublicKey(ctx context.Context, key string) {
	s.mu.Lock()
	s.emailjsPublicKey = key
	s.mu.Unlock()
	s.storage.Set(ctx, storage.KeyEmailJSPublicKey, key)
}

func (s *Store) Templates() EmailTemplates {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.templates
}

// Template returns the subject/body pair for event.
func (s *Store) Template(event models.NotificationEvent) models.EmailTemplate {
	tpl := s.Templates()
	switch event {
	case models.AdminOnNewTicket:
		return tpl.AdminOnNewTicket
	case models.UserOnNewTicket:
		return tpl.UserOnNewTicket
	case models.UserOnTicketResolved:
		return tpl.UserOnTicketResolved
	case models.AdminOnTicketResolved:
		return tpl.AdminOnTicketResolved
	case models.TechOnTicketAssigned:
		return tpl.TechOnTicketAssigned
	case models.UserOnTicketStatusChanged:
		return tpl.UserOnTicketStatusChanged
	default:
		return models.EmailTemplate{}
	}
}

// UpdateTemplates merges the patch into the current template set and
// persists the whole resulting structure.
func (s *Store) UpdateTemplates(ctx context.Context, patch EmailTemplatesPatch) {
	s.mu.Lock()
	tpl := &s.templates
	if patch.AdminOnNewTicket != nil {
		tpl.AdminOnNewTicket = *patch.AdminOnNewTicket
	}
	if patch.UserOnNewTicket != nil {
		tpl.UserOnNewTicket = *patch.UserOnNewTicket
	}
	if patch.UserOnTicketResolved != nil {
		tpl.UserOnTicketResolved = *patch.UserOnTicketResolved
	}
	if patch.AdminOnTicketResolved != nil {
		tpl.AdminOnTicketResolved = *patch.AdminOnTicketResolved
	}
	if patch.TechOnTicketAssigned != nil {
		tpl.TechOnTicketAssigned = *patch.TechOnTicketAssigned
	}
	if patch.UserOnTicketStatusChanged != nil {
		tpl.UserOnTicketStatusChanged = *patch.UserOnTicketStatusChanged
	}
	merged := s.templates
	s.mu.Unlock()

	s.persistJSON(ctx, storage.KeyEmailTemplates, merged)
}

func (s *Store) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

func (s *Store) SetTheme(ctx context.Context, theme Theme) {
	s.mu.Lock()
	s.theme = theme
	s.mu.Unlock()
	s.storage.Set(ctx, storage.KeyTheme, string(theme))
}

func (s *Store) ColorTheme() ColorTheme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.colorTheme
}

func (s *Store) SetColorTheme(ctx context.Context, ct ColorTheme) {
	s.mu.Lock()
	s.colorTheme = ct
	s.mu.Unlock()
	s.storage.Set(ctx, storage.KeyColorTheme, string(ct))
}

// ResetAll restores every setting to its default and removes every
// corresponding durable key, as one user-visible action.
func (s *Store) ResetAll(ctx context.Context) {
	s.mu.Lock()
	s.logoURL = DefaultLogoURL
	s.notifications = defaultNotifications()
	s.emailjsServiceID = DefaultEmailJSServiceID
	s.emailjsPublicKey = DefaultEmailJSPublicKey
	s.templates = defaultTemplates()
	s.theme = DefaultTheme
	s.colorTheme = DefaultColorTheme
	s.mu.Unlock()

	for _, key := range []string{
		storage.KeyLogoURL,
		storage.KeyNotificationSettings,
		storage.KeyEmailJSServiceID,
		storage.KeyEmailJSPublicKey,
		storage.KeyEmailTemplates,
		storage.KeyTheme,
		storage.KeyColorTheme,
	} {
		s.storage.Remove(ctx, key)
	}

	s.log.Info(ctx, "all settings reset to defaults")
}

func (s *Store) persistJSON(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.log.Error(ctx, "failed to encode setting", "key", key, "err", err)
		return
	}
	s.storage.Set(ctx, key, string(data))
}
