// Package notify turns helpdesk events into outbound emails. Every dispatch
// checks the per-event flag in settings first, then renders the configured
// subject/body templates and hands the result to a Sender. Delivery is
// best-effort: a failed send is logged, never returned to the caller's
// workflow.
package notify

import (
	"context"
	"regexp"

	"github.com/vistaran/helpdesk/internal/client/models"
	"github.com/vistaran/helpdesk/internal/client/settings"
	"github.com/vistaran/helpdesk/internal/logging"
)

// Message is a fully rendered email ready for delivery.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers a rendered message. Implementations: EmailJSSender.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Dispatcher routes events to the sender according to the notification
// settings.
type Dispatcher struct {
	settings *settings.Store
	sender   Sender
	log      logging.Logger
}

func NewDispatcher(s *settings.Store, sender Sender, log logging.Logger) *Dispatcher {
	return &Dispatcher{
		settings: s,
		sender:   sender,
		log:      log.With("component", "notify"),
	}
}

// Dispatch sends the email for event to recipient, with params substituted
// into the event's templates. A disabled event is skipped entirely: the
// sender is never invoked.
func (d *Dispatcher) Dispatch(ctx context.Context, event models.NotificationEvent, recipient string, params map[string]string) {
	if !d.settings.NotificationEnabled(event) {
		d.log.Debug(ctx, "notification disabled, skipping", "event", string(event))
		return
	}

	tpl := d.settings.Template(event)
	msg := Message{
		To:      recipient,
		Subject: Render(tpl.Subject, params),
		Body:    Render(tpl.Body, params),
	}

	if err := d.sender.Send(ctx, msg); err != nil {
		d.log.Warn(ctx, "notification delivery failed", "event", string(event), "err", err)
		return
	}
	d.log.Info(ctx, "notification sent", "event", string(event), "to", recipient)
}

var placeholderRe = regexp.MustCompile(`\{([a-zA-Z0-9_.]+)\}`)

// Render substitutes {name} placeholders in tpl with values from params.
// Placeholders without a matching param are left verbatim, so a template
// typo is visible in the delivered mail instead of silently blanked.
func Render(tpl string, params map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(tpl, func(m string) string {
		name := m[1 : len(m)-1]
		if v, ok := params[name]; ok {
			return v
		}
		return m
	})
}
