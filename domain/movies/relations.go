package movies

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/domain/catalog"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/domain/episodes"
)

type taxonRow struct {
	MovieID uuid.UUID `bun:"movie_id"`
	ID      uuid.UUID `bun:"id"`
	Slug    string    `bun:"slug"`
	Name    string    `bun:"name"`
}

// LoadTaxa fills Categories and Countries of every movie with two queries.
func LoadTaxa(ctx context.Context, db bun.IDB, movies []Movie) error {
	if len(movies) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(movies))
	byID := make(map[uuid.UUID]*Movie, len(movies))
	for i := range movies {
		ids[i] = movies[i].ID
		byID[movies[i].ID] = &movies[i]
		movies[i].Categories = make([]catalog.Category, 0)
		movies[i].Countries = make([]catalog.Country, 0)
	}

	var cats []taxonRow
	err := db.NewSelect().
		TableExpr("movie_categories AS mc").
		Join("JOIN categories AS c ON c.slug = mc.category_slug").
		ColumnExpr("mc.movie_id, c.id, c.slug, c.name").
		Where("mc.movie_id IN (?)", bun.In(ids)).
		OrderExpr("c.name ASC").
		Scan(ctx, &cats)
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}
	for _, row := range cats {
		m := byID[row.MovieID]
		m.Categories = append(m.Categories, catalog.Category{ID: row.ID, Slug: row.Slug, Name: row.Name})
	}

	var ctrs []taxonRow
	err = db.NewSelect().
		TableExpr("movie_countries AS mco").
		Join("JOIN countries AS c ON c.slug = mco.country_slug").
		ColumnExpr("mco.movie_id, c.id, c.slug, c.name").
		Where("mco.movie_id IN (?)", bun.In(ids)).
		OrderExpr("c.name ASC").
		Scan(ctx, &ctrs)
	if err != nil {
		return fmt.Errorf("load countries: %w", err)
	}
	for _, row := range ctrs {
		m := byID[row.MovieID]
		m.Countries = append(m.Countries, catalog.Country{ID: row.ID, Slug: row.Slug, Name: row.Name})
	}
	return nil
}

// LoadDetail fills every relation of a single movie.
func LoadDetail(ctx context.Context, db bun.IDB, m *Movie) error {
	one := []Movie{*m}
	if err := LoadTaxa(ctx, db, one); err != nil {
		return err
	}
	m.Categories, m.Countries = one[0].Categories, one[0].Countries

	m.Actors = make([]string, 0)
	err := db.NewSelect().
		Model((*catalog.MovieActor)(nil)).
		Column("actor_name").
		Where("movie_id = ?", m.ID).
		OrderExpr("actor_name ASC").
		Scan(ctx, &m.Actors)
	if err != nil {
		return fmt.Errorf("load actors: %w", err)
	}

	m.Directors = make([]string, 0)
	err = db.NewSelect().
		Model((*catalog.MovieDirector)(nil)).
		Column("director_name").
		Where("movie_id = ?", m.ID).
		OrderExpr("director_name ASC").
		Scan(ctx, &m.Directors)
	if err != nil {
		return fmt.Errorf("load directors: %w", err)
	}

	var eps []episodes.Episode
	err = db.NewSelect().
		Model(&eps).
		Where("movie_id = ?", m.ID).
		OrderExpr("server_name ASC, name ASC").
		Scan(ctx)
	if err != nil {
		return fmt.Errorf("load episodes: %w", err)
	}
	m.Episodes = episodes.Group(eps)
	return nil
}

// writeRelations links the movie to its categories, countries, actors and
// directors. Category and country ids must exist; people are created on
// demand. Writes are sequential: they share one transaction, which is not
// safe for concurrent use.
func writeRelations(ctx context.Context, db bun.IDB, movieID uuid.UUID, rel Relations) error {
	cats, err := catalog.SlugsByIDs(ctx, db, catalog.KindCategory, rel.CategoryIDs)
	if err != nil {
		return err
	}
	if len(cats) != len(rel.CategoryIDs) {
		return errUnknownCategory
	}

	ctrs, err := catalog.SlugsByIDs(ctx, db, catalog.KindCountry, rel.CountryIDs)
	if err != nil {
		return err
	}
	if len(ctrs) != len(rel.CountryIDs) {
		return errUnknownCountry
	}

	for _, slug := range cats {
		if err := catalog.Link(ctx, db, catalog.KindCategory, movieID, slug); err != nil {
			return err
		}
	}
	for _, slug := range ctrs {
		if err := catalog.Link(ctx, db, catalog.KindCountry, movieID, slug); err != nil {
			return err
		}
	}
	for _, name := range rel.Actors {
		if err := catalog.UpsertAndLink(ctx, db, catalog.KindActor, movieID, name, name); err != nil {
			return err
		}
	}
	for _, name := range rel.Directors {
		if err := catalog.UpsertAndLink(ctx, db, catalog.KindDirector, movieID, name, name); err != nil {
			return err
		}
	}
	return nil
}

func clearRelations(ctx context.Context, db bun.IDB, movieID uuid.UUID) error {
	for _, kind := range catalog.Kinds {
		if err := catalog.Unlink(ctx, db, kind, movieID); err != nil {
			return err
		}
	}
	return episodes.DeleteForMovie(ctx, db, movieID)
}

func writeEpisodes(ctx context.Context, db bun.IDB, eps []episodes.Episode) error {
	for i := range eps {
		if err := episodes.Upsert(ctx, db, &eps[i]); err != nil {
			return err
		}
	}
	return nil
}
