package directory

import "github.com/vistaran/helpdesk/internal/client/models"

// SeedUsers is the built-in account set. Passwords are plain text, matching
// the upstream data; see the session package for the security caveat.
func SeedUsers() []models.User {
	return []models.User{
		{
			ID:         "admin-1",
			Name:       "Anita Rao",
			Email:      "admin@vistaran.com",
			Password:   "admin123",
			Role:       models.RoleAdmin,
			Status:     models.UserActive,
			Department: "IT",
		},
		{
			ID:         "user-1",
			Name:       "Ben Carter",
			Email:      "ben@vistaran.com",
			Password:   "password1",
			Role:       models.RoleUser,
			Status:     models.UserActive,
			Department: "Finance",
		},
		{
			ID:         "user-2",
			Name:       "Chitra Iyer",
			Email:      "chitra@vistaran.com",
			Password:   "password2",
			Role:       models.RoleUser,
			Status:     models.UserActive,
			Department: "Operations",
		},
		{
			ID:         "user-3",
			Name:       "Dan Wright",
			Email:      "dan@vistaran.com",
			Password:   "password3",
			Role:       models.RoleUser,
			Status:     models.UserInactive,
			Department: "Sales",
		},
		{
			ID:         "tech-1",
			Name:       "Elena Petrova",
			Email:      "elena@vistaran.com",
			Password:   "tech123",
			Role:       models.RoleTech,
			Status:     models.UserActive,
			Department: "IT",
		},
	}
}
