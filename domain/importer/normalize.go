package importer

import (
	"errors"
	"strings"
	"time"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/domain/episodes"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/domain/movies"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/phimapi"
)

var errMissingSlug = errors.New("movie has no slug")

// Taxon is a category or country keyed by slug.
type Taxon struct {
	Slug string
	Name string
}

// Record is one upstream movie in normalized form, ready to reconcile.
type Record struct {
	Movie      movies.Movie
	Categories []Taxon
	Countries  []Taxon
	Actors     []string
	Directors  []string
	Episodes   []episodes.Episode
}

// DisplayName identifies the record in logs.
func (r *Record) DisplayName() string {
	if r.Movie.Name != "" {
		return r.Movie.Name
	}
	return r.Movie.Slug
}

// Normalize converts an upstream detail record. Missing timestamps default
// to now.
func Normalize(d phimapi.MovieDetail, now time.Time) (*Record, error) {
	src := d.Movie
	slug := strings.TrimSpace(src.Slug)
	if slug == "" {
		return nil, errMissingSlug
	}

	m := movies.Movie{
		Slug:           slug,
		Name:           strings.TrimSpace(src.Name),
		OriginName:     src.OriginName,
		Content:        src.Content,
		Type:           movies.NormalizeType(src.Type),
		Status:         src.Status,
		PosterURL:      src.PosterURL,
		ThumbURL:       src.ThumbURL,
		TrailerURL:     src.TrailerURL,
		IsCopyright:    src.IsCopyright,
		SubDocquyen:    src.SubDocquyen,
		Chieurap:       src.Chieurap,
		Time:           src.Time,
		Duration:       movies.ParseDuration(src.Time),
		EpisodeCurrent: src.EpisodeCurrent,
		EpisodeTotal:   src.EpisodeTotal,
		Quality:        src.Quality,
		Lang:           src.Lang,
		Notify:         src.Notify,
		Showtimes:      src.Showtimes,
		View:           max(src.View, 0),
		CreatedAt:      orNow(src.Created.Parse(), now),
		UpdatedAt:      orNow(src.Modified.Parse(), now),
	}
	if m.Name == "" {
		m.Name = slug
	}
	if src.Year > 0 {
		year := src.Year
		m.Year = &year
	}
	applyTMDB(&m, src.TMDB)
	if id := src.IMDB.ID.String(); id != "" {
		m.IMDBID = &id
	}

	return &Record{
		Movie:      m,
		Categories: uniqueTaxa(src.Category),
		Countries:  uniqueTaxa(src.Country),
		Actors:     movies.UniqueNames(src.Actor),
		Directors:  movies.UniqueNames(src.Director),
		Episodes:   flattenEpisodes(d.Episodes),
	}, nil
}

func applyTMDB(m *movies.Movie, t phimapi.TMDB) {
	id := t.ID.String()
	if id == "" && t.Type == "" {
		return
	}
	if id != "" {
		m.TMDBID = &id
	}
	if t.Type != "" {
		typ := t.Type
		m.TMDBType = &typ
	}
	m.TMDBSeason = t.Season
	avg, count := t.VoteAverage, t.VoteCount
	m.TMDBVoteAverage = &avg
	m.TMDBVoteCount = &count
}

func orNow(t, now time.Time) time.Time {
	if t.IsZero() {
		return now
	}
	return t
}

// uniqueTaxa drops entries without a slug and repeated slugs.
func uniqueTaxa(in []phimapi.Taxon) []Taxon {
	out := make([]Taxon, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, t := range in {
		slug := strings.TrimSpace(t.Slug)
		if slug == "" {
			continue
		}
		if _, ok := seen[slug]; ok {
			continue
		}
		seen[slug] = struct{}{}
		name := strings.TrimSpace(t.Name)
		if name == "" {
			name = slug
		}
		out = append(out, Taxon{Slug: slug, Name: name})
	}
	return out
}

// flattenEpisodes keeps episodes that have a slug. MovieID is filled in by
// the reconciler.
func flattenEpisodes(groups []phimapi.ServerGroup) []episodes.Episode {
	var out []episodes.Episode
	for _, g := range groups {
		for _, ep := range g.ServerData {
			slug := strings.TrimSpace(ep.Slug)
			if slug == "" {
				continue
			}
			out = append(out, episodes.Episode{
				ServerName: g.ServerName,
				Name:       ep.Name,
				Slug:       slug,
				Filename:   ep.Filename,
				LinkEmbed:  ep.LinkEmbed,
				LinkM3U8:   ep.LinkM3U8,
			})
		}
	}
	return out
}
