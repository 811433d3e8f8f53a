package domain

// UserSortColumn is the closed set of columns the admin user list can be
// ordered by. The SQL fragment is produced here and never from request text.
type UserSortColumn int

const (
	SortByName UserSortColumn = iota
	SortByEmail
	SortByRole
)

// ParseUserSortColumn maps a sortBy query value to a column. Unknown or empty
// values fall back to name.
func ParseUserSortColumn(s string) UserSortColumn {
	switch s {
	case "email":
		return SortByEmail
	case "role":
		return SortByRole
	default:
		return SortByName
	}
}

// SQL returns the column identifier.
func (c UserSortColumn) SQL() string {
	switch c {
	case SortByEmail:
		return "email"
	case SortByRole:
		return "role"
	default:
		return "name"
	}
}

// SortOrder is ascending or descending.
type SortOrder int

const (
	Ascending SortOrder = iota
	Descending
)

// ParseSortOrder returns Descending only for "desc".
func ParseSortOrder(s string) SortOrder {
	if s == "desc" {
		return Descending
	}
	return Ascending
}

func (o SortOrder) SQL() string {
	if o == Descending {
		return "DESC"
	}
	return "ASC"
}
