package models

// NotificationEvent names one of the six notification paths. The same keys
// select both the on/off flag and the email template pair in settings.
type NotificationEvent string

const (
	AdminOnNewTicket          NotificationEvent = "adminOnNewTicket"
	UserOnNewTicket           NotificationEvent = "userOnNewTicket"
	UserOnTicketResolved      NotificationEvent = "userOnTicketResolved"
	AdminOnTicketResolved     NotificationEvent = "adminOnTicketResolved"
	TechOnTicketAssigned      NotificationEvent = "techOnTicketAssigned"
	UserOnTicketStatusChanged NotificationEvent = "userOnTicketStatusChanged"
)

// NotificationEvents lists every event in a stable order.
func NotificationEvents() []NotificationEvent {
	return []NotificationEvent{
		AdminOnNewTicket,
		UserOnNewTicket,
		UserOnTicketResolved,
		AdminOnTicketResolved,
		TechOnTicketAssigned,
		UserOnTicketStatusChanged,
	}
}

// EmailTemplate is a subject/body pair. Bodies may contain {token.field}
// placeholders resolved at dispatch time.
type EmailTemplate struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
