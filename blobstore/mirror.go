package blobstore

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// mirrorConcurrency bounds parallel blob copies during Mirror.
const mirrorConcurrency = 4

// Mirror copies the named blobs from src to dst. If names is nil, every
// blob in src is copied. Copies run concurrently; the first error cancels
// the remaining ones.
//
// Used to replicate a concept library between stores (e.g. seed a local
// cache from S3, or publish a locally built library to object storage).
func Mirror(ctx context.Context, src, dst Store, names []string) error {
	if names == nil {
		var err error
		names, err = src.List(ctx, "")
		if err != nil {
			return err
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(mirrorConcurrency)
	for _, name := range names {
		name := name
		g.Go(func() error {
			data, err := src.Get(ctx, name)
			if err != nil {
				return err
			}
			return dst.Put(ctx, name, data)
		})
	}
	return g.Wait()
}
