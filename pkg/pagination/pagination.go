package pagination

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/apperror"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params is a validated page/limit pair.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the number of rows to skip.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Meta is returned alongside paginated lists.
type Meta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// NewMeta builds pagination metadata for a total row count.
func NewMeta(p Params, total int) Meta {
	pages := 0
	if p.Limit > 0 {
		pages = (total + p.Limit - 1) / p.Limit
	}
	return Meta{Total: total, Page: p.Page, Limit: p.Limit, TotalPages: pages}
}

// FromContext reads ?page= and ?limit= with defaults. Limits above MaxLimit
// are clamped; non-numeric or non-positive values are rejected.
func FromContext(c echo.Context) (Params, error) {
	return Parse(c.QueryParam("page"), c.QueryParam("limit"), DefaultLimit)
}

// Parse parses raw page/limit strings.
func Parse(rawPage, rawLimit string, defaultLimit int) (Params, error) {
	p := Params{Page: DefaultPage, Limit: defaultLimit}

	if rawPage != "" {
		n, err := strconv.Atoi(rawPage)
		if err != nil || n < 1 {
			return Params{}, apperror.NewBadRequest("page must be a positive integer")
		}
		p.Page = n
	}

	if rawLimit != "" {
		n, err := strconv.Atoi(rawLimit)
		if err != nil || n < 1 {
			return Params{}, apperror.NewBadRequest("limit must be a positive integer")
		}
		p.Limit = n
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}

	return p, nil
}
