// Package generator turns authored activity specs into materialized
// activities. There are exactly two kinds: a fixed template and a pool of
// single-atom items.
package generator

import (
	"math/rand/v2"
	"slices"

	"github.com/samber/lo"

	"github.com/rsimmons/yukawa/internal/domain"
)

// Kind names a generator variant as it appears in catalog files.
type Kind string

const (
	KindTemplate Kind = "simple"
	KindPool     Kind = "pool"
)

func (k Kind) String() string { return string(k) }

func (k Kind) IsValid() bool {
	switch k {
	case KindTemplate, KindPool:
		return true
	}
	return false
}

// Candidate is a materialized review activity with its score. Higher scores
// are preferred.
type Candidate struct {
	Activity *domain.Activity
	Score    int
}

// Generator produces activities from one authored spec. The set of
// implementations is closed: Template and Pool.
type Generator interface {
	Kind() Kind

	// GenerateReview returns nil when the generator has nothing to review
	// for the given dueness map.
	GenerateReview(rng *rand.Rand, due domain.DuenessMap) (*Candidate, error)

	// GenerateIntro returns nil when the generator cannot introduce exactly
	// the given atoms.
	GenerateIntro(rng *rand.Rand, introAtoms []string, due domain.DuenessMap) (*domain.Activity, error)

	sealed()
}

var (
	_ Generator = (*Template)(nil)
	_ Generator = (*Pool)(nil)
)

// allKnown reports whether every atom is due or not due.
func allKnown(atoms []string, due domain.DuenessMap) bool {
	return lo.EveryBy(atoms, func(id string) bool { return due.Of(id).IsKnown() })
}

// sameSet reports whether a and b contain the same atoms, ignoring order
// and duplicates.
func sameSet(a, b []string) bool {
	ua, ub := lo.Uniq(a), lo.Uniq(b)
	return len(ua) == len(ub) && lo.Every(ua, ub)
}

// audioFiles returns the audio file names of a voice map ordered by voice so
// seeded renderings are reproducible.
func audioFiles(audio map[string]string) []string {
	voices := lo.Keys(audio)
	slices.Sort(voices)
	return lo.Map(voices, func(v string, _ int) string { return audio[v] })
}

func cloneAtoms(atoms []string) []string {
	if atoms == nil {
		return []string{}
	}
	return slices.Clone(atoms)
}
