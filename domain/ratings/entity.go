package ratings

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/domain/users"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/pagination"
)

// Rating is one user's 1-5 score of a movie. (user_id, movie_id) is unique.
type Rating struct {
	bun.BaseModel `bun:"table:ratings,alias:r"`

	ID        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID `bun:"user_id,type:uuid,notnull" json:"userId"`
	MovieID   uuid.UUID `bun:"movie_id,type:uuid,notnull" json:"movieId"`
	Score     int       `bun:"score,notnull" json:"score"`
	Review    *string   `bun:"review" json:"review"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updatedAt"`

	User *users.Summary `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
}

// RateRequest is the body of POST /api/movies/:movieId/ratings
type RateRequest struct {
	Score  int     `json:"score" validate:"min=1,max=5"`
	Review *string `json:"review" validate:"omitempty,max=2000"`
}

// Stats aggregates a movie's ratings.
type Stats struct {
	AverageScore float64 `bun:"average_score" json:"averageScore"`
	TotalRatings int     `bun:"total_ratings" json:"totalRatings"`
}

// RatingPage is a paginated rating listing with the movie's aggregate.
type RatingPage struct {
	Ratings      []Rating        `json:"ratings"`
	AverageScore float64         `json:"averageScore"`
	TotalRatings int             `json:"totalRatings"`
	Pagination   pagination.Meta `json:"pagination"`
}
