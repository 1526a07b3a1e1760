package importer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/domain/catalog"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/logger"
)

// Reconciler writes one normalized record through a Store.
type Reconciler struct {
	store   Store
	timeout time.Duration
	log     *slog.Logger
}

// NewReconciler creates a reconciler. A zero timeout means no per-movie bound.
func NewReconciler(store Store, timeout time.Duration, log *slog.Logger) *Reconciler {
	return &Reconciler{
		store:   store,
		timeout: timeout,
		log:     log.With(logger.Scope("importer.reconciler")),
	}
}

type relation struct {
	kind  catalog.Kind
	keys  []string
	names []string
}

// Reconcile upserts the movie, then its shared entities and links, then its
// episodes. Relation kinds run concurrently; the first failure cancels the
// others.
func (r *Reconciler) Reconcile(ctx context.Context, rec *Record) error {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	movieID, err := r.store.UpsertMovie(ctx, &rec.Movie)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, rel := range relationsOf(rec) {
		if len(rel.keys) == 0 {
			continue
		}
		rel := rel
		g.Go(func() error {
			return r.writeRelation(gctx, movieID, rel)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i := range rec.Episodes {
		ep := &rec.Episodes[i]
		ep.MovieID = movieID
		if err := r.store.UpsertEpisode(ctx, ep); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reconciler) writeRelation(ctx context.Context, movieID uuid.UUID, rel relation) error {
	for i, key := range rel.keys {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.store.UpsertEntity(ctx, rel.kind, key, rel.names[i]); err != nil {
			return err
		}
		if err := r.store.LinkEntity(ctx, rel.kind, movieID, key); err != nil {
			return fmt.Errorf("link %s %q: %w", rel.kind, key, err)
		}
	}
	return nil
}

func relationsOf(rec *Record) []relation {
	taxa := func(kind catalog.Kind, in []Taxon) relation {
		rel := relation{kind: kind}
		for _, t := range in {
			rel.keys = append(rel.keys, t.Slug)
			rel.names = append(rel.names, t.Name)
		}
		return rel
	}
	people := func(kind catalog.Kind, names []string) relation {
		return relation{kind: kind, keys: names, names: names}
	}

	return []relation{
		taxa(catalog.KindCategory, rec.Categories),
		taxa(catalog.KindCountry, rec.Countries),
		people(catalog.KindActor, rec.Actors),
		people(catalog.KindDirector, rec.Directors),
	}
}
