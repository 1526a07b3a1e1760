package episodes

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Upsert writes ep keyed by (movie_id, slug), overwriting the playable
// fields and server name of an existing row.
func Upsert(ctx context.Context, db bun.IDB, ep *Episode) error {
	_, err := db.NewInsert().
		Model(ep).
		On("CONFLICT (movie_id, slug) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("filename = EXCLUDED.filename").
		Set("link_embed = EXCLUDED.link_embed").
		Set("link_m3u8 = EXCLUDED.link_m3u8").
		Set("server_name = EXCLUDED.server_name").
		Set("updated_at = now()").
		Returning("NULL").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("upsert episode %q: %w", ep.Slug, err)
	}
	return nil
}

// DeleteForMovie removes every episode of a movie.
func DeleteForMovie(ctx context.Context, db bun.IDB, movieID uuid.UUID) error {
	if _, err := db.NewDelete().Model((*Episode)(nil)).Where("movie_id = ?", movieID).Exec(ctx); err != nil {
		return fmt.Errorf("delete episodes: %w", err)
	}
	return nil
}
