package index

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/iqbal-lab-org/bigsi-go/storage"
)

// Query is one request in a BulkSearch batch.
type Query struct {
	Sequence   string
	Threshold  float64
	Contiguous bool
}

// BulkSearch runs len(queries) independent Search calls across up to
// workers goroutines. open is called once per worker to get its own
// Storage handle, since a handle is not assumed safe for concurrent use
// by other index operations; each worker's Index sees no state from any
// other worker. Results are returned in the same order as queries.
func BulkSearch(ctx context.Context, queries []Query, k int, workers int, open func() (storage.Storage, error)) ([][]SearchResult, error) {
	if workers < 1 {
		workers = 1
	}
	if workers > len(queries) {
		workers = len(queries)
	}
	if workers == 0 {
		return nil, nil
	}

	results := make([][]SearchResult, len(queries))
	jobs := make(chan int)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			store, err := open()
			if err != nil {
				return err
			}
			defer store.Close()

			idx, err := Open(store, k)
			if err != nil {
				return err
			}

			for {
				select {
				case i, ok := <-jobs:
					if !ok {
						return nil
					}
					q := queries[i]
					res, err := idx.Search(q.Sequence, q.Threshold, q.Contiguous)
					if err != nil {
						return err
					}
					results[i] = res
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		})
	}

	g.Go(func() error {
		defer close(jobs)
		for i := range queries {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
