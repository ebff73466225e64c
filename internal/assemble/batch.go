package assemble

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// MaxRecommendedParallel caps concurrent solves. Each solve is CPU bound and
// holds its own table, so more workers than this only add memory pressure.
const MaxRecommendedParallel = 16

// SolveAll solves independent catalogs concurrently.
// Results are returned in the same order as the input catalogs.
// If any solve fails, the remaining ones are canceled and the error is returned.
// maxParallel limits the number of concurrent solves (values < 1 mean 1).
func SolveAll(ctx context.Context, cats []Catalog, maxParallel int, opts ...Option) ([]Result, error) {
	return solveEach(ctx, cats, maxParallel, func(ctx context.Context, cat Catalog) (Result, error) {
		return SolveContext(ctx, cat, opts...)
	})
}

// SolvePlanAll is SolveAll for SolvePlan.
func SolvePlanAll(ctx context.Context, cats []Catalog, maxParallel int, opts ...Option) ([]Plan, error) {
	return solveEach(ctx, cats, maxParallel, func(ctx context.Context, cat Catalog) (Plan, error) {
		return SolvePlan(ctx, cat, opts...)
	})
}

// SolveEach solves catalogs concurrently like SolveAll, but a failing
// catalog does not stop the others: errs[i] is the error for cats[i] and
// results[i] is only meaningful when errs[i] is nil. Cancelling ctx makes
// every pending solve fail with ctx.Err().
func SolveEach(ctx context.Context, cats []Catalog, maxParallel int, opts ...Option) (results []Result, errs []error) {
	return solveIndependently(ctx, cats, maxParallel, func(ctx context.Context, cat Catalog) (Result, error) {
		return SolveContext(ctx, cat, opts...)
	})
}

// SolvePlanEach is SolveEach for SolvePlan.
func SolvePlanEach(ctx context.Context, cats []Catalog, maxParallel int, opts ...Option) (plans []Plan, errs []error) {
	return solveIndependently(ctx, cats, maxParallel, func(ctx context.Context, cat Catalog) (Plan, error) {
		return SolvePlan(ctx, cat, opts...)
	})
}

func solveIndependently[T any](ctx context.Context, cats []Catalog, maxParallel int, solve func(context.Context, Catalog) (T, error)) ([]T, []error) {
	if len(cats) == 0 {
		return nil, nil
	}

	if maxParallel < 1 {
		maxParallel = 1
	}

	results := make([]T, len(cats))
	errs := make([]error, len(cats))

	var g errgroup.Group
	g.SetLimit(maxParallel)

	for i, cat := range cats {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			results[i], errs[i] = solve(ctx, cat)
			return nil
		})
	}
	_ = g.Wait() // workers report through errs

	return results, errs
}

func solveEach[T any](ctx context.Context, cats []Catalog, maxParallel int, solve func(context.Context, Catalog) (T, error)) ([]T, error) {
	if len(cats) == 0 {
		return nil, nil
	}

	if maxParallel < 1 {
		maxParallel = 1
	}

	results := make([]T, len(cats))
	// Semaphore channel for concurrency control.
	sem := make(chan struct{}, maxParallel)

	g, ctx := errgroup.WithContext(ctx)

	for i, cat := range cats {
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return ctx.Err()
			}
			defer func() { <-sem }()

			res, err := solve(ctx, cat)
			if err != nil {
				return fmt.Errorf("catalog %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
