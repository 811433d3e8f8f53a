package domain

// User is a registered account.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Address      string `json:"address"`
	Role         Role   `json:"role"`
}

// UserListFilter narrows the admin user listing.
type UserListFilter struct {
	// Search matches name or email case-insensitively.
	Search string
	// Role filters exactly; empty means all roles.
	Role   Role
	SortBy UserSortColumn
	Order  SortOrder
}
