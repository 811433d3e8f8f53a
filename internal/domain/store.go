package domain

// Store is a rateable store, optionally owned by a StoreOwner.
type Store struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	OwnerID *int64 `json:"owner_id"`
}

// StoreSummary is a row of the public store listing.
type StoreSummary struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Address    string  `json:"address"`
	AvgRating  float64 `json:"avg_rating"`
	UserRating *int    `json:"user_rating"`
}

// AdminStore is a row of the admin store listing.
type AdminStore struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Address    string  `json:"address"`
	OwnerID    *int64  `json:"owner_id"`
	OwnerName  *string `json:"owner_name"`
	OwnerEmail *string `json:"owner_email"`
	AvgRating  float64 `json:"avg_rating"`
}
