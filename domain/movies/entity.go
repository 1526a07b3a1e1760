package movies

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/domain/catalog"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/domain/episodes"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/pagination"
)

// Type is the stored movie type.
type Type string

const (
	TypeMovie  Type = "movie"
	TypeSeries Type = "series"
)

// NormalizeType maps an upstream type to the stored one: "single" is a
// movie, everything else (series, hoathinh, tvshows, ...) is a series.
func NormalizeType(src string) Type {
	switch strings.ToLower(strings.TrimSpace(src)) {
	case "single", string(TypeMovie):
		return TypeMovie
	}
	return TypeSeries
}

var leadingInt = regexp.MustCompile(`^\s*(\d+)`)

// ParseDuration extracts the leading minute count from texts such as
// "45 phút/tập" or "120 Phút". It returns nil when there is none.
func ParseDuration(text string) *int {
	m := leadingInt.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}

// Movie is the aggregate root of the catalog.
type Movie struct {
	bun.BaseModel `bun:"table:movies,alias:m"`

	ID              uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Slug            string    `bun:"slug,notnull" json:"slug"`
	Name            string    `bun:"name,notnull" json:"name"`
	OriginName      string    `bun:"origin_name,notnull" json:"originName"`
	Content         string    `bun:"content,notnull" json:"content"`
	Type            Type      `bun:"type,notnull" json:"type"`
	Status          string    `bun:"status,notnull" json:"status"`
	PosterURL       string    `bun:"poster_url,notnull" json:"posterUrl"`
	ThumbURL        string    `bun:"thumb_url,notnull" json:"thumbUrl"`
	TrailerURL      string    `bun:"trailer_url,notnull" json:"trailerUrl"`
	IsCopyright     bool      `bun:"is_copyright,notnull" json:"isCopyright"`
	SubDocquyen     bool      `bun:"sub_docquyen,notnull" json:"subDocquyen"`
	Chieurap        bool      `bun:"chieurap,notnull" json:"chieurap"`
	Time            string    `bun:"time,notnull" json:"time"`
	Duration        *int      `bun:"duration" json:"duration"`
	EpisodeCurrent  string    `bun:"episode_current,notnull" json:"episodeCurrent"`
	EpisodeTotal    string    `bun:"episode_total,notnull" json:"episodeTotal"`
	Quality         string    `bun:"quality,notnull" json:"quality"`
	Lang            string    `bun:"lang,notnull" json:"lang"`
	Notify          string    `bun:"notify,notnull" json:"notify"`
	Showtimes       string    `bun:"showtimes,notnull" json:"showtimes"`
	Year            *int      `bun:"year" json:"year"`
	View            int64     `bun:"view,notnull" json:"view"`
	TMDBID          *string   `bun:"tmdb_id" json:"tmdbId"`
	TMDBType        *string   `bun:"tmdb_type" json:"tmdbType"`
	TMDBSeason      *int      `bun:"tmdb_season" json:"tmdbSeason"`
	TMDBVoteAverage *float64  `bun:"tmdb_vote_average" json:"tmdbVoteAverage"`
	TMDBVoteCount   *int      `bun:"tmdb_vote_count" json:"tmdbVoteCount"`
	IMDBID          *string   `bun:"imdb_id" json:"imdbId"`
	CreatedAt       time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt       time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updatedAt"`

	// Relations are loaded explicitly by the repository.
	Categories []catalog.Category     `bun:"-" json:"categories,omitempty"`
	Countries  []catalog.Country      `bun:"-" json:"countries,omitempty"`
	Actors     []string               `bun:"-" json:"actors,omitempty"`
	Directors  []string               `bun:"-" json:"directors,omitempty"`
	Episodes   []episodes.ServerGroup `bun:"-" json:"episodes,omitempty"`
}

// IDRef references an existing category or country.
type IDRef struct {
	ID uuid.UUID `json:"id" validate:"required"`
}

// MovieRequest is the admin create/update body. It follows the upstream
// field names so exported upstream records can be posted as is.
type MovieRequest struct {
	Name       string                 `json:"name" validate:"required,max=500"`
	Slug       string                 `json:"slug" validate:"required,max=500"`
	OriginName string                 `json:"origin_name" validate:"max=500"`
	Content    string                 `json:"content"`
	Type       string                 `json:"type" validate:"required"`
	Status     string                 `json:"status" validate:"max=50"`
	PosterURL  string                 `json:"poster_url" validate:"omitempty,max=2048"`
	ThumbURL   string                 `json:"thumb_url" validate:"omitempty,max=2048"`
	TrailerURL string                 `json:"trailer_url" validate:"omitempty,max=2048"`
	Time       string                 `json:"time" validate:"max=100"`
	Quality    string                 `json:"quality" validate:"max=50"`
	Lang       string                 `json:"lang" validate:"max=100"`
	Year       *int                   `json:"year" validate:"omitempty,min=1900,max=2100"`
	Actor      []string               `json:"actor" validate:"dive,max=255"`
	Director   []string               `json:"director" validate:"dive,max=255"`
	Category   []IDRef                `json:"category" validate:"dive"`
	Country    []IDRef                `json:"country" validate:"dive"`
	Episodes   []episodes.ServerInput `json:"episodes" validate:"dive"`
}

// ToMovie copies the scalar fields onto m.
func (r *MovieRequest) ToMovie(m *Movie) {
	m.Name = strings.TrimSpace(r.Name)
	m.Slug = strings.TrimSpace(r.Slug)
	m.OriginName = r.OriginName
	m.Content = r.Content
	m.Type = NormalizeType(r.Type)
	m.Status = r.Status
	m.PosterURL = r.PosterURL
	m.ThumbURL = r.ThumbURL
	m.TrailerURL = r.TrailerURL
	m.Time = r.Time
	m.Duration = ParseDuration(r.Time)
	m.Quality = r.Quality
	m.Lang = r.Lang
	m.Year = r.Year
}

// Relations holds the natural keys a movie links to.
type Relations struct {
	CategoryIDs []uuid.UUID
	CountryIDs  []uuid.UUID
	Actors      []string
	Directors   []string
}

// Relations collects request relations, dropping blanks and duplicates.
func (r *MovieRequest) Relations() Relations {
	return Relations{
		CategoryIDs: uniqueIDs(r.Category),
		CountryIDs:  uniqueIDs(r.Country),
		Actors:      UniqueNames(r.Actor),
		Directors:   UniqueNames(r.Director),
	}
}

// UniqueNames trims names and drops empty and repeated entries.
func UniqueNames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

func uniqueIDs(refs []IDRef) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(refs))
	seen := make(map[uuid.UUID]struct{}, len(refs))
	for _, ref := range refs {
		if _, ok := seen[ref.ID]; ok {
			continue
		}
		seen[ref.ID] = struct{}{}
		out = append(out, ref.ID)
	}
	return out
}

// MoviePage is a paginated movie listing.
type MoviePage struct {
	Movies     []Movie         `json:"movies"`
	Pagination pagination.Meta `json:"pagination"`
}
