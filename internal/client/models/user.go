// Package models defines the helpdesk domain records shared by the session
// manager, the synchronization cache, and the remote store contract.
package models

// Role classifies a user for authorization purposes.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
	RoleTech  Role = "TECHNICIAN"
)

// UserStatus gates whether an account may log in.
type UserStatus string

const (
	UserActive   UserStatus = "ACTIVE"
	UserInactive UserStatus = "INACTIVE"
)

// User is a helpdesk account. The record of truth lives in the remote store;
// the client holds cached copies only. Password is stored in plain text by
// the upstream directory, a known security gap kept for compatibility.
type User struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Password   string     `json:"password"`
	Role       Role       `json:"role"`
	Status     UserStatus `json:"status"`
	Department string     `json:"department"`
	Photo      string     `json:"photo"`
}

// UserPatch is a partial update for a User, applied field-by-field to
// whichever session slot matches ID. Nil fields are left untouched.
type UserPatch struct {
	ID         string
	Name       *string
	Email      *string
	Password   *string
	Role       *Role
	Status     *UserStatus
	Department *string
	Photo      *string
}

// Apply merges the patch into u. The caller is responsible for checking that
// u.ID matches the patch ID; Apply never changes the ID itself.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Status != nil {
		u.Status = *p.Status
	}
	if p.Department != nil {
		u.Department = *p.Department
	}
	if p.Photo != nil {
		u.Photo = *p.Photo
	}
}

// LoginStatus is the closed result set of a login attempt. It is returned by
// value; authentication failures are never surfaced as errors.
type LoginStatus int

const (
	LoginSuccess LoginStatus = iota
	LoginInvalidCredentials
	LoginUserInactive
)

func (s LoginStatus) String() string {
	switch s {
	case LoginSuccess:
		return "SUCCESS"
	case LoginInvalidCredentials:
		return "INVALID_CREDENTIALS"
	case LoginUserInactive:
		return "USER_INACTIVE"
	default:
		return "UNKNOWN"
	}
}
