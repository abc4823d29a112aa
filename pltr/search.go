package pltr

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// BinarySearchMaximum returns the largest x in [a, b) for which pred(x)
// holds, and false if pred(a) does not hold or the range is empty.
//
// Precondition (not checked): pred is monotonically non-increasing on
// [a, b), i.e. true on a prefix and false afterwards. For other
// predicates the result is some position where pred holds, or false.
//
// Complexity: O(log(b − a)) calls to pred, the last one always at the
// final lower bound.
func BinarySearchMaximum(pred func(int) bool, a, b int) (int, bool) {
	x, ok, _ := bisect(func(i int) (bool, error) { return pred(i), nil }, a, b)

	return x, ok
}

func bisect(pred func(int) (bool, error), a, b int) (int, bool, error) {
	if a >= b {
		return 0, false, nil
	}
	for b-a > 1 {
		mid := a + (b-a)/2
		ok, err := pred(mid)
		if err != nil {
			return 0, false, err
		}
		if ok {
			a = mid
		} else {
			b = mid
		}
	}
	ok, err := pred(a)
	if err != nil || !ok {
		return 0, false, err
	}

	return a, true, nil
}

// SearchMaximum is BinarySearchMaximum for fallible predicates that may
// run concurrently. With workers ≤ 1 it bisects sequentially; otherwise
// each round evaluates up to workers evenly spaced candidates of the open
// window (a, b) in parallel and narrows to the largest true and smallest
// false candidate. For monotone predicates both modes return the same
// result. The first predicate error aborts the search; the context passed
// to pred is cancelled when a sibling candidate fails.
func SearchMaximum(
	ctx context.Context,
	pred func(ctx context.Context, x int) (bool, error),
	a, b, workers int,
) (int, bool, error) {
	if workers <= 1 {
		return bisect(func(i int) (bool, error) { return pred(ctx, i) }, a, b)
	}
	if a >= b {
		return 0, false, nil
	}

	for b-a > 1 {
		span := b - a
		k := min(workers, span-1)
		cands := make([]int, k)
		for i := range cands {
			cands[i] = a + span*(i+1)/(k+1)
		}

		results := make([]bool, k)
		g, gctx := errgroup.WithContext(ctx)
		for i, c := range cands {
			i, c := i, c
			g.Go(func() error {
				ok, err := pred(gctx, c)
				results[i] = ok

				return err
			})
		}
		if err := g.Wait(); err != nil {
			return 0, false, err
		}

		for i, c := range cands {
			if !results[i] {
				b = c

				break
			}
			a = c
		}
	}

	ok, err := pred(ctx, a)
	if err != nil || !ok {
		return 0, false, err
	}

	return a, true, nil
}
