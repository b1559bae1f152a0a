package models

// AuditLogEntry records one user action. Entries are immutable once written;
// the collection is ordered most-recent-first and capacity-bounded.
type AuditLogEntry struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	Action    string `json:"action"`
	Timestamp string `json:"timestamp"` // ISO-8601 / RFC 3339
	IP        string `json:"ip"`
}
