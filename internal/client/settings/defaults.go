package settings

import "github.com/vistaran/helpdesk/internal/client/models"

// Defaults are applied eagerly at construction so no setting is ever
// undefined mid-session.
const (
	DefaultLogoURL          = "" // empty means the built-in icon
	DefaultEmailJSServiceID = "service_ee55frm"
	DefaultEmailJSPublicKey = "Askap9zd4U9UO242i"
	DefaultTheme            = ThemeSystem
	DefaultColorTheme       = ColorDefault
)

func defaultNotifications() Notifications {
	return Notifications{
		AdminOnNewTicket:          true,
		UserOnNewTicket:           true,
		UserOnTicketResolved:      true,
		AdminOnTicketResolved:     true,
		TechOnTicketAssigned:      true,
		UserOnTicketStatusChanged: true,
	}
}

func defaultTemplates() EmailTemplates {
	return EmailTemplates{
		AdminOnNewTicket: models.EmailTemplate{
			Subject: `[New Ticket #{ticket.id}] {ticket.department} - {ticket.priority} Priority`,
			Body: `<p>Hello Admin,</p>
<p>A new support ticket has been created by <strong>{user.name}</strong> and requires attention.</p>
<br>
<p><strong>Ticket ID:</strong> #{ticket.id}</p>
<p><strong>User:</strong> {user.name} ({user.email})</p>
<p><strong>Department:</strong> {ticket.department}</p>
<p><strong>Priority:</strong> {ticket.priority}</p>
<p><strong>Description:</strong></p>
<p>{ticket.description}</p>`,
		},
		UserOnNewTicket: models.EmailTemplate{
			Subject: `Your Support Ticket #{ticket.id} Has Been Received`,
			Body: `<p>Hello {user.name},</p>
<p>Thank you for reaching out. We have received your support request. Here are the details:</p>
<br>
<p><strong>Ticket ID:</strong> #{ticket.id}</p>
<p><strong>Priority:</strong> {ticket.priority}</p>
<p><strong>Your Description:</strong></p>
<p>{ticket.description}</p>
<br>
<p>Our team will review your request and get back to you soon.</p>`,
		},
		UserOnTicketResolved: models.EmailTemplate{
			Subject: `Your Support Ticket #{ticket.id} has been resolved by {resolver.name}`,
			Body: `<p>Hello {user.name},</p>
<p>Your support ticket regarding "{ticket.description}" has been resolved by our technician, <strong>{resolver.name}</strong>.</p>
<br>
<p><strong>Ticket ID:</strong> #{ticket.id}</p>
<p><strong>Resolution Notes:</strong></p>
<p>{ticket.notes}</p>
<br>
<p>If you feel the issue is not fully resolved, please create a new ticket referencing this one.</p>`,
		},
		AdminOnTicketResolved: models.EmailTemplate{
			Subject: `[Ticket Resolved #{ticket.id}] by {resolver.name}`,
			Body: `<p>Hello Admin,</p>
<p>The support ticket <strong>#{ticket.id}</strong> has been marked as resolved by <strong>{resolver.name}</strong>.</p>
<br>
<p><strong>Ticket ID:</strong> #{ticket.id}</p>
<p><strong>Original User:</strong> {user.name} ({user.email})</p>
<p><strong>Description:</strong></p>
<p>{ticket.description}</p>
<p><strong>Resolution Notes by {resolver.name}:</strong></p>
<p>{ticket.notes}</p>`,
		},
		TechOnTicketAssigned: models.EmailTemplate{
			Subject: `[New Assignment by {assigner.name}] Ticket #{ticket.id} - {ticket.priority} Priority`,
			Body: `<p>Hello {tech.name},</p>
<p>A new support ticket has been assigned to you by <strong>{assigner.name}</strong>.</p>
<br>
<p><strong>Ticket ID:</strong> #{ticket.id}</p>
<p><strong>User:</strong> {user.name} ({user.email})</p>
<p><strong>Priority:</strong> {ticket.priority}</p>
<p><strong>Description:</strong></p>
<p>{ticket.description}</p>`,
		},
		UserOnTicketStatusChanged: models.EmailTemplate{
			Subject: `Update on Your Support Ticket #{ticket.id}: Now "{ticket.status}"`,
			Body: `<p>Hello {user.name},</p>
<p>Your support ticket has been updated by <strong>{updater.name}</strong>. The new status is now: <strong>{ticket.status}</strong>.</p>
<br>
<p><strong>Ticket ID:</strong> #{ticket.id}</p>
<p><strong>Description:</strong> {ticket.description}</p>
<p><strong>Notes from {updater.name}:</strong></p>
<p>{ticket.notes}</p>
<br>
<p>We are actively working on your request. Thank you for your patience.</p>`,
		},
	}
}
