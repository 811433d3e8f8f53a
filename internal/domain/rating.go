package domain

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Rating is one user's score for one store. A user has at most one rating
// per store; rating again replaces the value.
type Rating struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	StoreID   int64     `json:"store_id"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidRating reports whether v is on the 1..5 scale.
func ValidRating(v int) bool {
	return v >= MinRating && v <= MaxRating
}

// RatingSummary aggregates the ratings of a store.
type RatingSummary struct {
	AvgRating    float64 `json:"avgRating"`
	TotalRatings int64   `json:"totalRatings"`
}

// Rater is a user who rated a store.
type Rater struct {
	Name      string    `json:"name"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// OwnerStats is the store owner dashboard.
type OwnerStats struct {
	Summary RatingSummary `json:"summary"`
	Raters  []Rater       `json:"raters"`
}

// DashboardStats holds the admin dashboard counters.
type DashboardStats struct {
	TotalUsers   int64 `json:"totalUsers"`
	TotalStores  int64 `json:"totalStores"`
	TotalRatings int64 `json:"totalRatings"`
}
