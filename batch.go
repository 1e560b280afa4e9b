package id3tag

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ParseMany parses multiple tag buffers concurrently.
//
// Buffers are parsed in parallel using up to runtime.NumCPU()
// goroutines. Results are returned in the same order as the input
// buffers.
//
// If any buffer fails structurally, parsing stops and an error is
// returned; recoverable problems land in each tag's Warnings as
// usual.
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//
//	tags, err := id3tag.ParseMany(ctx, buffers...)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	for _, t := range tags {
//		fmt.Println(t.Version, t.Len())
//	}
func ParseMany(ctx context.Context, buffers ...[]byte) ([]*Tag, error) {
	if len(buffers) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU()) // Limit concurrent operations

	results := make([]*Tag, len(buffers))

	for i, buf := range buffers {
		i, buf := i, buf // Capture loop variables
		g.Go(func() error {
			// Check for cancellation
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			tag, err := Parse(buf)
			if err != nil {
				return fmt.Errorf("buffer %d: %w", i, err)
			}

			results[i] = tag
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
