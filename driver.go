package adt

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DecodeAll decodes every path concurrently, one goroutine per file, each
// with its own Sink obtained from newSink. Grounded on dolthub-dolt's use
// of golang.org/x/sync/errgroup for bounded fan-out over independent units
// of work (there, table files; here, world/tile files), generalized to
// this package's per-file decode entry points.
//
// Each file is self-contained (its own mmap, its own Sink instance), so
// decoding order across files is unspecified; within one file, every
// ordering guarantee in §4.4 still holds. The first file to return a
// non-cancellation error stops the group and that error is returned.
// ctx is checked only before each file's decode starts; opts.Cancel is
// cooperative and checked between MCNKs and between embedded tiles.
func DecodeAll(ctx context.Context, paths []string, opts Options, newSink func() Sink) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			return decodeOneFile(path, opts, newSink())
		})
	}
	return g.Wait()
}

// decodeOneFile opens path once, detects its container, and dispatches to
// the matching decode path, sharing the mmap and scan across both
// possibilities rather than opening the file twice.
func decodeOneFile(path string, opts Options, sink Sink) error {
	src, err := openMapped(path)
	if err != nil {
		return err
	}
	defer src.Close()

	r := newByteReader(src)
	idx, err := scan(r, opts.Logger)
	if err != nil {
		return err
	}
	container, format, err := DetectFormat(idx, r)
	if err != nil {
		return err
	}

	if container == ContainerWorldTable {
		return decodeWorldBody(path, r, idx, format, &opts, sink)
	}
	return decodeStandaloneTileBody(path, r, idx, format, &opts, sink)
}
