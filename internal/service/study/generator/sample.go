package generator

import (
	"fmt"
	"math/rand/v2"

	"github.com/rsimmons/yukawa/internal/domain"
)

// Weighted pairs an item with its relative sampling weight.
type Weighted[T any] struct {
	Weight float64
	Item   T
}

// Sample draws n items without replacement, each draw proportional to the
// weights of the items still remaining. Asking for more items than there are
// choices, or drawing from a pool whose remaining weight is not positive, is
// an error wrapping domain.ErrPrecondition.
func Sample[T any](rng *rand.Rand, choices []Weighted[T], n int) ([]T, error) {
	if n < 0 || n > len(choices) {
		return nil, fmt.Errorf("sample %d of %d choices: %w", n, len(choices), domain.ErrPrecondition)
	}

	remaining := make([]Weighted[T], len(choices))
	copy(remaining, choices)
	picked := make([]T, 0, n)

	for range n {
		var total float64
		for _, c := range remaining {
			if c.Weight < 0 {
				return nil, fmt.Errorf("sample: negative weight %v: %w", c.Weight, domain.ErrPrecondition)
			}
			total += c.Weight
		}
		if total <= 0 {
			return nil, fmt.Errorf("sample: total weight %v: %w", total, domain.ErrPrecondition)
		}

		r := rng.Float64() * total
		idx := -1
		for j, c := range remaining {
			if r < c.Weight {
				idx = j
				break
			}
			r -= c.Weight
		}
		if idx < 0 {
			// Rounding left r just past the end; take the last weighted item.
			for j := len(remaining) - 1; j >= 0; j-- {
				if remaining[j].Weight > 0 {
					idx = j
					break
				}
			}
		}

		picked = append(picked, remaining[idx].Item)
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}

	return picked, nil
}

// sampleUniform draws n distinct items with equal probability.
func sampleUniform[T any](rng *rand.Rand, items []T, n int) ([]T, error) {
	choices := make([]Weighted[T], len(items))
	for i, it := range items {
		choices[i] = Weighted[T]{Weight: 1, Item: it}
	}
	return Sample(rng, choices, n)
}

// pick returns one uniformly chosen element.
func pick[T any](rng *rand.Rand, items []T) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, fmt.Errorf("pick from empty list: %w", domain.ErrContentDefect)
	}
	return items[rng.IntN(len(items))], nil
}
