package movies

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/apperror"
)

// Order selects the listing sort.
type Order string

const (
	OrderUpdated Order = "updated"
	OrderCreated Order = "created"
	OrderViews   Order = "views"
)

// Filter is the set of listing constraints. Zero fields are ignored.
type Filter struct {
	Type         Type
	CategorySlug string
	CountrySlug  string
	CategoryID   uuid.UUID
	CountryID    uuid.UUID
	Year         int
	Search       string
	Order        Order
}

// Apply lowers the filter onto a select over movies aliased "m".
func (f Filter) Apply(q *bun.SelectQuery) *bun.SelectQuery {
	if f.Type != "" {
		q = q.Where("m.type = ?", f.Type)
	}
	if f.CategorySlug != "" {
		q = q.Where("EXISTS (SELECT 1 FROM movie_categories AS mc WHERE mc.movie_id = m.id AND mc.category_slug = ?)", f.CategorySlug)
	}
	if f.CountrySlug != "" {
		q = q.Where("EXISTS (SELECT 1 FROM movie_countries AS mco WHERE mco.movie_id = m.id AND mco.country_slug = ?)", f.CountrySlug)
	}
	if f.CategoryID != uuid.Nil {
		q = q.Where("EXISTS (SELECT 1 FROM movie_categories AS mc JOIN categories AS c ON c.slug = mc.category_slug WHERE mc.movie_id = m.id AND c.id = ?)", f.CategoryID)
	}
	if f.CountryID != uuid.Nil {
		q = q.Where("EXISTS (SELECT 1 FROM movie_countries AS mco JOIN countries AS c ON c.slug = mco.country_slug WHERE mco.movie_id = m.id AND c.id = ?)", f.CountryID)
	}
	if f.Year != 0 {
		q = q.Where("m.year = ?", f.Year)
	}
	if f.Search != "" {
		pattern := "%" + escapeLike(f.Search) + "%"
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("m.name ILIKE ?", pattern).WhereOr("m.origin_name ILIKE ?", pattern)
		})
	}

	switch f.Order {
	case OrderCreated:
		q = q.OrderExpr("m.created_at DESC")
	case OrderViews:
		q = q.OrderExpr("m.view DESC").OrderExpr("m.updated_at DESC")
	default:
		q = q.OrderExpr("m.updated_at DESC")
	}
	return q.OrderExpr("m.id ASC")
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// ParseType accepts movie/series (and the upstream "single"). Empty means
// no constraint.
func ParseType(raw string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return "", nil
	case "single", string(TypeMovie):
		return TypeMovie, nil
	case string(TypeSeries):
		return TypeSeries, nil
	}
	return "", apperror.NewBadRequest("type must be movie or series")
}

// PublicFilter reads the public listing query: type, category, country
// (slugs), year and search.
func PublicFilter(c echo.Context) (Filter, error) {
	f := Filter{
		CategorySlug: strings.TrimSpace(c.QueryParam("category")),
		CountrySlug:  strings.TrimSpace(c.QueryParam("country")),
		Search:       strings.TrimSpace(c.QueryParam("search")),
		Order:        OrderUpdated,
	}
	return f, parseCommon(c, &f)
}

// AdminFilter reads the admin listing query: type, categoryId, countryId,
// year and search.
func AdminFilter(c echo.Context) (Filter, error) {
	f := Filter{
		Search: strings.TrimSpace(c.QueryParam("search")),
		Order:  OrderCreated,
	}
	if raw := c.QueryParam("categoryId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return f, apperror.NewBadRequest("invalid categoryId")
		}
		f.CategoryID = id
	}
	if raw := c.QueryParam("countryId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return f, apperror.NewBadRequest("invalid countryId")
		}
		f.CountryID = id
	}
	return f, parseCommon(c, &f)
}

func parseCommon(c echo.Context, f *Filter) error {
	t, err := ParseType(c.QueryParam("type"))
	if err != nil {
		return err
	}
	f.Type = t

	if raw := strings.TrimSpace(c.QueryParam("year")); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil || year < 0 {
			return apperror.NewBadRequest("year must be a number")
		}
		f.Year = year
	}
	return nil
}
