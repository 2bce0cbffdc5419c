package snapshot

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/stablevec/blobstore"
	"golang.org/x/sync/errgroup"
)

// BlobStore is the storage snapshots are written to.
type BlobStore = blobstore.BlobStore

const (
	extension = ".svs"

	// pruneConcurrency bounds parallel deletes against remote stores.
	pruneConcurrency = 8
)

// Name returns the blob name of generation seq under prefix.
// Names of one prefix sort in generation order.
func Name(prefix string, seq uint64) string {
	return fmt.Sprintf("%s/%020d%s", strings.TrimSuffix(prefix, "/"), seq, extension)
}

// Generations lists the snapshot names under prefix, oldest first.
func Generations(ctx context.Context, store BlobStore, prefix string) ([]string, error) {
	dir := strings.TrimSuffix(prefix, "/") + "/"

	names, err := store.List(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("snapshot: list %q: %w", dir, err)
	}

	gens := names[:0]
	for _, name := range names {
		rest := strings.TrimPrefix(name, dir)
		if !strings.Contains(rest, "/") && strings.HasSuffix(rest, extension) {
			gens = append(gens, name)
		}
	}
	return gens, nil
}

// Latest returns the name of the newest generation under prefix.
func Latest(ctx context.Context, store BlobStore, prefix string) (string, error) {
	gens, err := Generations(ctx, store, prefix)
	if err != nil {
		return "", err
	}
	if len(gens) == 0 {
		return "", fmt.Errorf("%w under %q", ErrNoSnapshot, prefix)
	}
	return gens[len(gens)-1], nil
}

// Prune deletes all but the newest keep generations under prefix and
// returns the deleted names.
func Prune(ctx context.Context, store BlobStore, prefix string, keep int, optFns ...Option) ([]string, error) {
	o := applyOptions(optFns)

	gens, err := Generations(ctx, store, prefix)
	if err != nil {
		return nil, err
	}
	keep = max(keep, 0)
	if len(gens) <= keep {
		return nil, nil
	}
	stale := gens[:len(gens)-keep]

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(pruneConcurrency)
	for _, name := range stale {
		g.Go(func() error {
			err := store.Delete(gctx, name)
			o.logger.LogSnapshot(gctx, "prune", name, 0, err)
			if err != nil {
				return fmt.Errorf("snapshot: delete %q: %w", name, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stale, nil
}
