package models

// Dataset is the combined read model the UI consumes: six collections kept
// eventually consistent with the remote store. Each slice is only ever
// replaced whole, never patched element-wise.
type Dataset struct {
	Tickets     []Ticket
	Users       []User
	Technicians []Technician
	Symptoms    []Symptom
	Files       []ManagedFile
	Templates   []TicketTemplate
}

// Clone returns a copy whose slices are independent of the receiver's, so a
// snapshot handed to a reader stays stable while the cache keeps refreshing.
func (d Dataset) Clone() Dataset {
	out := Dataset{
		Tickets:     make([]Ticket, len(d.Tickets)),
		Users:       make([]User, len(d.Users)),
		Technicians: make([]Technician, len(d.Technicians)),
		Symptoms:    make([]Symptom, len(d.Symptoms)),
		Files:       make([]ManagedFile, len(d.Files)),
		Templates:   make([]TicketTemplate, len(d.Templates)),
	}
	copy(out.Tickets, d.Tickets)
	copy(out.Users, d.Users)
	copy(out.Technicians, d.Technicians)
	copy(out.Symptoms, d.Symptoms)
	copy(out.Files, d.Files)
	copy(out.Templates, d.Templates)
	return out
}
