package favorites

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Favorite marks a movie on a user's list. (user_id, movie_id) is the key.
type Favorite struct {
	bun.BaseModel `bun:"table:favorites,alias:f"`

	UserID    uuid.UUID `bun:"user_id,pk,type:uuid" json:"userId"`
	MovieID   uuid.UUID `bun:"movie_id,pk,type:uuid" json:"movieId"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
}

// ToggleResult reports the state after a toggle.
type ToggleResult struct {
	IsFavorite bool `json:"isFavorite"`
}

// Status is the body of GET /api/movies/:movieId/favorite/status
type Status struct {
	IsFavorite bool `json:"isFavorite"`
}
