package users

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/pagination"
)

// User is an account. Password holds the bcrypt hash and is never
// serialized.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Email     string    `bun:"email,notnull" json:"email"`
	Password  string    `bun:"password,notnull" json:"-"`
	Name      string    `bun:"name,notnull" json:"name"`
	IsAdmin   bool      `bun:"is_admin,notnull" json:"isAdmin"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updatedAt"`
}

// RegisterRequest is the body of POST /api/auth/register
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Name     string `json:"name" validate:"required,max=100"`
}

// LoginRequest is the body of POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest is the admin patch body; nil fields are left alone.
type UpdateUserRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=100"`
	IsAdmin *bool   `json:"isAdmin"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// UserPage is a paginated user listing.
type UserPage struct {
	Users      []User          `json:"users"`
	Pagination pagination.Meta `json:"pagination"`
}

// Summary is the public view of a user attached to ratings and comments.
type Summary struct {
	bun.BaseModel `bun:"table:users,alias:author"`

	ID    uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Name  string    `bun:"name" json:"name"`
	Email string    `bun:"email" json:"email,omitempty"`
}
