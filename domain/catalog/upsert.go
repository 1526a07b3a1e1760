package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Upsert makes sure exactly one row of kind exists for key in a single
// statement. Actors and directors are left untouched when present;
// categories and countries get their name refreshed. An empty name falls
// back to the key.
func Upsert(ctx context.Context, db bun.IDB, kind Kind, key, name string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("upsert %s: empty key", kind)
	}
	if name = strings.TrimSpace(name); name == "" {
		name = key
	}

	model := newModel(kind, uuid.Nil, key, name)
	if model == nil {
		return fmt.Errorf("upsert: unknown kind %q", kind)
	}

	q := db.NewInsert().Model(model).Returning("NULL")
	if kind.KeyedBySlug() {
		q = q.On("CONFLICT (slug) DO UPDATE").Set("name = EXCLUDED.name")
	} else {
		q = q.On("CONFLICT (name) DO NOTHING")
	}

	if _, err := q.Exec(ctx); err != nil {
		return fmt.Errorf("upsert %s %q: %w", kind, key, err)
	}
	return nil
}

// Link makes sure the movie is linked to the entity identified by key.
// The entity must already exist.
func Link(ctx context.Context, db bun.IDB, kind Kind, movieID uuid.UUID, key string) error {
	model := newLink(kind, movieID, strings.TrimSpace(key))
	if model == nil {
		return fmt.Errorf("link: unknown kind %q", kind)
	}

	if _, err := db.NewInsert().Model(model).On("CONFLICT DO NOTHING").Returning("NULL").Exec(ctx); err != nil {
		return fmt.Errorf("link movie %s to %s %q: %w", movieID, kind, key, err)
	}
	return nil
}

// UpsertAndLink runs Upsert then Link.
func UpsertAndLink(ctx context.Context, db bun.IDB, kind Kind, movieID uuid.UUID, key, name string) error {
	if err := Upsert(ctx, db, kind, key, name); err != nil {
		return err
	}
	return Link(ctx, db, kind, movieID, key)
}

// Unlink removes every link of kind from the movie.
func Unlink(ctx context.Context, db bun.IDB, kind Kind, movieID uuid.UUID) error {
	model := newLink(kind, movieID, "")
	if model == nil {
		return fmt.Errorf("unlink: unknown kind %q", kind)
	}
	if _, err := db.NewDelete().Model(model).Where("movie_id = ?", movieID).Exec(ctx); err != nil {
		return fmt.Errorf("unlink %s from movie %s: %w", kind, movieID, err)
	}
	return nil
}

// SlugsByIDs resolves category or country ids to their slugs. The result is
// shorter than ids when some do not exist.
func SlugsByIDs(ctx context.Context, db bun.IDB, kind Kind, ids []uuid.UUID) ([]string, error) {
	if !kind.KeyedBySlug() {
		return nil, fmt.Errorf("slugs: %s has no slug", kind)
	}
	slugs := make([]string, 0, len(ids))
	if len(ids) == 0 {
		return slugs, nil
	}
	err := db.NewSelect().
		Model(newModel(kind, uuid.Nil, "", "")).
		Column("slug").
		Where("id IN (?)", bun.In(ids)).
		Scan(ctx, &slugs)
	if err != nil {
		return nil, fmt.Errorf("resolve %s ids: %w", kind, err)
	}
	return slugs, nil
}
