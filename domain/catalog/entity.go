package catalog

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Kind identifies one of the shared lookup entities a movie links to.
type Kind string

const (
	KindActor    Kind = "actor"
	KindDirector Kind = "director"
	KindCategory Kind = "category"
	KindCountry  Kind = "country"
)

// Kinds lists every kind in a stable order.
var Kinds = []Kind{KindCategory, KindCountry, KindActor, KindDirector}

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(s)); k {
	case KindActor, KindDirector, KindCategory, KindCountry:
		return k, nil
	}
	return "", fmt.Errorf("unknown entity kind %q", s)
}

// KeyedBySlug reports whether the natural key is the slug (category,
// country) rather than the name (actor, director).
func (k Kind) KeyedBySlug() bool {
	return k == KindCategory || k == KindCountry
}

// Label is the human name used in error messages.
func (k Kind) Label() string {
	switch k {
	case KindActor:
		return "Actor"
	case KindDirector:
		return "Director"
	case KindCategory:
		return "Category"
	case KindCountry:
		return "Country"
	}
	return string(k)
}

// Category is a genre such as "hanh-dong".
type Category struct {
	bun.BaseModel `bun:"table:categories,alias:cat"`

	ID   uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Slug string    `bun:"slug,notnull" json:"slug"`
	Name string    `bun:"name,notnull" json:"name"`
}

// Country is a production country.
type Country struct {
	bun.BaseModel `bun:"table:countries,alias:ctr"`

	ID   uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Slug string    `bun:"slug,notnull" json:"slug"`
	Name string    `bun:"name,notnull" json:"name"`
}

// Actor is keyed by its unique name.
type Actor struct {
	bun.BaseModel `bun:"table:actors,alias:act"`

	ID   uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Name string    `bun:"name,notnull" json:"name"`
}

// Director is keyed by its unique name.
type Director struct {
	bun.BaseModel `bun:"table:directors,alias:dir"`

	ID   uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Name string    `bun:"name,notnull" json:"name"`
}

// Link rows join a movie to a shared entity by natural key.

type MovieCategory struct {
	bun.BaseModel `bun:"table:movie_categories,alias:mc"`

	MovieID      uuid.UUID `bun:"movie_id,pk,type:uuid"`
	CategorySlug string    `bun:"category_slug,pk"`
}

type MovieCountry struct {
	bun.BaseModel `bun:"table:movie_countries,alias:mco"`

	MovieID     uuid.UUID `bun:"movie_id,pk,type:uuid"`
	CountrySlug string    `bun:"country_slug,pk"`
}

type MovieActor struct {
	bun.BaseModel `bun:"table:movie_actors,alias:ma"`

	MovieID   uuid.UUID `bun:"movie_id,pk,type:uuid"`
	ActorName string    `bun:"actor_name,pk"`
}

type MovieDirector struct {
	bun.BaseModel `bun:"table:movie_directors,alias:md"`

	MovieID      uuid.UUID `bun:"movie_id,pk,type:uuid"`
	DirectorName string    `bun:"director_name,pk"`
}

// EntityRequest is the admin create/update body for every kind. Slug is
// required for categories and countries and ignored otherwise.
type EntityRequest struct {
	Name string `json:"name" validate:"required,max=255"`
	Slug string `json:"slug" validate:"omitempty,max=255"`
}

// newModel returns a fresh model pointer for kind populated from key/name.
func newModel(kind Kind, id uuid.UUID, key, name string) any {
	switch kind {
	case KindCategory:
		return &Category{ID: id, Slug: key, Name: name}
	case KindCountry:
		return &Country{ID: id, Slug: key, Name: name}
	case KindActor:
		return &Actor{ID: id, Name: key}
	case KindDirector:
		return &Director{ID: id, Name: key}
	}
	return nil
}

// newLink returns the link row model for kind.
func newLink(kind Kind, movieID uuid.UUID, key string) any {
	switch kind {
	case KindCategory:
		return &MovieCategory{MovieID: movieID, CategorySlug: key}
	case KindCountry:
		return &MovieCountry{MovieID: movieID, CountrySlug: key}
	case KindActor:
		return &MovieActor{MovieID: movieID, ActorName: key}
	case KindDirector:
		return &MovieDirector{MovieID: movieID, DirectorName: key}
	}
	return nil
}
