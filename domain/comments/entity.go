package comments

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/domain/users"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/pagination"
)

// Comment is a user's free-text remark on a movie.
type Comment struct {
	bun.BaseModel `bun:"table:comments,alias:cm"`

	ID        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID `bun:"user_id,type:uuid,notnull" json:"userId"`
	MovieID   uuid.UUID `bun:"movie_id,type:uuid,notnull" json:"movieId"`
	Content   string    `bun:"content,notnull" json:"content"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updatedAt"`

	User *users.Summary `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
}

// CreateCommentRequest is the body of POST /api/movies/:movieId/comments
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

// CommentPage is one page of a movie's comments.
type CommentPage struct {
	Comments   []Comment       `json:"comments"`
	Pagination pagination.Meta `json:"pagination"`
}
