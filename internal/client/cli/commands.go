package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/vistaran/helpdesk/internal/client/models"
	"github.com/vistaran/helpdesk/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and authenticates against the user
// directory. On success the synchronization cache is activated for the new
// session. Rejections are reported on the console, never returned as errors.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	switch a.session.Login(ctx, email, string(password)) {
	case models.LoginSuccess:
		user, _ := a.session.Current()
		printlnFn(fmt.Sprintf("Welcome, %s!", user.Name))
		a.cache.Start(ctx)
	case models.LoginUserInactive:
		printlnFn("Account is deactivated. Contact your administrator.")
	default:
		printlnFn("Invalid email or password.")
	}
	return nil
}

// Logout ends the session and deactivates the cache.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in.")
		return nil
	}
	a.cache.Stop()
	a.session.Logout(ctx)
	printlnFn("Logged out.")
	return nil
}

// Whoami prints the effective identity, and the real one when impersonating.
func (a *App) Whoami(ctx context.Context) error {
	user, realUser := a.session.Current()
	if user == nil {
		printlnFn("Not logged in.")
		return nil
	}
	printlnFn(fmt.Sprintf("%s <%s> [%s]", user.Name, user.Email, user.Role))
	if realUser != nil && realUser.ID != user.ID {
		printlnFn(fmt.Sprintf("Impersonated by %s <%s>", realUser.Name, realUser.Email))
	}
	return nil
}

// Tickets prints the cached ticket collection together with the cache
// status, so a stale-but-populated view is distinguishable from a fresh one.
func (a *App) Tickets(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in.")
		return nil
	}

	snap := a.cache.Snapshot()
	if snap.IsLoading {
		printlnFn("Loading...")
		return nil
	}
	if snap.Err != "" {
		printlnFn(snap.Err)
	}

	if len(snap.Data.Tickets) == 0 {
		printlnFn("No tickets.")
		return nil
	}
	for _, t := range snap.Data.Tickets {
		printlnFn(fmt.Sprintf("%-12s %-12s %-8s %s", t.ID, t.Status, t.Priority, t.Description))
	}
	return nil
}

// Refresh forces a full re-fetch of every collection.
func (a *App) Refresh(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in.")
		return nil
	}
	a.cache.Refresh(ctx)

	snap := a.cache.Snapshot()
	if snap.Err != "" {
		printlnFn(snap.Err)
		return nil
	}
	printlnFn(fmt.Sprintf("Refreshed: %d tickets, %d users, %d technicians.",
		len(snap.Data.Tickets), len(snap.Data.Users), len(snap.Data.Technicians)))
	return nil
}

// CreateTicket files a new ticket with the remote store on behalf of the
// effective user, then fires the new-ticket notifications.
func (a *App) CreateTicket(ctx context.Context) error {
	user, _ := a.session.Current()
	if user == nil {
		printlnFn("Not logged in.")
		return nil
	}

	description, err := getSimpleText(a.reader, "Describe the issue", os.Stdout)
	if err != nil {
		return err
	}

	created, err := a.remote.CreateTicket(ctx, models.Ticket{
		UserID:      user.ID,
		Department:  user.Department,
		Priority:    models.PriorityMedium,
		Description: description,
	})
	if err != nil {
		printlnFn("Failed to create ticket.")
		return nil
	}
	printlnFn(fmt.Sprintf("Created ticket %s.", created.ID))

	params := ticketParams(created)
	params["user.name"] = user.Name
	params["user.email"] = user.Email
	for _, admin := range a.adminEmails() {
		a.notify.Dispatch(ctx, models.AdminOnNewTicket, admin, params)
	}
	a.notify.Dispatch(ctx, models.UserOnNewTicket, user.Email, params)
	return nil
}

// ResolveTicket marks the ticket resolved and fires the resolution
// notifications to the ticket's owner and the admins.
func (a *App) ResolveTicket(ctx context.Context, ticketID string) error {
	user, _ := a.session.Current()
	if user == nil {
		printlnFn("Not logged in.")
		return nil
	}

	updated, err := a.remote.UpdateTicket(ctx, ticketID, models.Ticket{Status: models.TicketResolved})
	if errors.Is(err, common.ErrNotFound) {
		printlnFn(fmt.Sprintf("Ticket %s not found.", ticketID))
		return nil
	}
	if err != nil {
		printlnFn("Failed to update ticket.")
		return nil
	}
	printlnFn(fmt.Sprintf("Ticket %s resolved.", updated.ID))

	params := ticketParams(updated)
	params["resolver.name"] = user.Name
	if owner, ok := a.userByID(updated.UserID); ok {
		params["user.name"] = owner.Name
		params["user.email"] = owner.Email
		a.notify.Dispatch(ctx, models.UserOnTicketResolved, owner.Email, params)
	}
	for _, admin := range a.adminEmails() {
		a.notify.Dispatch(ctx, models.AdminOnTicketResolved, admin, params)
	}
	return nil
}

// Impersonate switches the effective identity to targetID.
func (a *App) Impersonate(ctx context.Context, targetID string) error {
	err := a.session.StartImpersonation(ctx, targetID)
	switch {
	case errors.Is(err, common.ErrNotAuthorized):
		printlnFn("Only admins can impersonate users.")
	case errors.Is(err, common.ErrNotFound):
		printlnFn(fmt.Sprintf("User %s not found.", targetID))
	default:
		user, _ := a.session.Current()
		printlnFn(fmt.Sprintf("Now acting as %s.", user.Name))
	}
	return nil
}

// StopImpersonation returns the effective identity to the real user.
func (a *App) StopImpersonation(ctx context.Context) error {
	a.session.StopImpersonation(ctx)
	if user, _ := a.session.Current(); user != nil {
		printlnFn(fmt.Sprintf("Back to %s.", user.Name))
	}
	return nil
}

// Audit prints the audit trail, newest first.
func (a *App) Audit(ctx context.Context) error {
	entries := a.audit.Entries(ctx)
	if len(entries) == 0 {
		printlnFn("Audit log is empty.")
		return nil
	}
	for _, e := range entries {
		printlnFn(fmt.Sprintf("%s  %-20s %s", e.Timestamp, e.UserName, e.Action))
	}
	return nil
}

// ticketParams flattens a ticket into the placeholder names the default
// email templates use.
func ticketParams(t models.Ticket) map[string]string {
	return map[string]string{
		"ticket.id":          t.ID,
		"ticket.department":  t.Department,
		"ticket.priority":    string(t.Priority),
		"ticket.status":      string(t.Status),
		"ticket.description": t.Description,
		"ticket.notes":       t.Notes,
	}
}

// adminEmails lists the admin addresses from the cached users collection.
func (a *App) adminEmails() []string {
	var out []string
	for _, u := range a.cache.Snapshot().Data.Users {
		if u.Role == models.RoleAdmin {
			out = append(out, u.Email)
		}
	}
	return out
}

func (a *App) userByID(id string) (models.User, bool) {
	for _, u := range a.cache.Snapshot().Data.Users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}
