// Package directory provides the credential directory: the fixed, pre-seeded
// set of user records the session manager authenticates against. Lookups are
// exact string matches; there is no remote authentication call.
package directory

import "github.com/vistaran/helpdesk/internal/client/models"

// Directory resolves user records for authentication and impersonation.
type Directory interface {
	// ByCredentials returns the record whose email and password both match
	// exactly (case-sensitive).
	ByCredentials(email, password string) (models.User, bool)

	// ByID returns the record with the given id.
	ByID(id string) (models.User, bool)
}

// Static is a Directory over a fixed slice of records.
type Static struct {
	users []models.User
}

func NewStatic(users []models.User) *Static {
	return &Static{users: users}
}

func (d *Static) ByCredentials(email, password string) (models.User, bool) {
	for _, u := range d.users {
		if u.Email == email && u.Password == password {
			return u, true
		}
	}
	return models.User{}, false
}

func (d *Static) ByID(id string) (models.User, bool) {
	for _, u := range d.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}
