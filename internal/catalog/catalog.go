// Package catalog holds the read-only learning content of each language:
// atoms, activity generators and the introduction order.
package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/rsimmons/yukawa/internal/domain"
	"github.com/rsimmons/yukawa/internal/service/study/generator"
)

// Catalog is the validated content of one language. It is immutable after
// construction and safe for concurrent use.
type Catalog struct {
	lang       string
	atoms      map[string]domain.Atom
	atomOrder  []string
	generators []generator.Generator
	introOrder [][]string

	// templatesByIntro maps an intro atom set key to template generator
	// positions; pools holds pool generator positions. Both are ascending.
	templatesByIntro map[string][]int
	pools            []int
}

// Stats summarises a catalog for logs and tooling.
type Stats struct {
	Atoms      int
	Templates  int
	Pools      int
	PoolItems  int
	IntroSteps int
}

// New validates f and builds the generators it declares.
func New(lang string, f *File) (*Catalog, error) {
	if err := Validate(lang, f); err != nil {
		return nil, err
	}

	c := &Catalog{
		lang:             lang,
		atoms:            make(map[string]domain.Atom, len(f.Atoms)),
		atomOrder:        make([]string, 0, len(f.Atoms)),
		generators:       make([]generator.Generator, 0, len(f.Activities)),
		introOrder:       make([][]string, 0, len(f.IntroOrder)),
		templatesByIntro: make(map[string][]int),
	}

	for _, a := range f.Atoms {
		c.atoms[a.ID] = a
		c.atomOrder = append(c.atomOrder, a.ID)
	}

	for i := range f.Activities {
		e := &f.Activities[i]
		pos := len(c.generators)
		switch e.Kind {
		case generator.KindTemplate:
			c.generators = append(c.generators, generator.NewTemplate(e.TemplateSpec))
			if len(e.IntroAtoms) > 0 {
				key := introKey(e.IntroAtoms)
				c.templatesByIntro[key] = append(c.templatesByIntro[key], pos)
			}
		case generator.KindPool:
			c.generators = append(c.generators, generator.NewPool(e.PoolSpec))
			c.pools = append(c.pools, pos)
		default:
			return nil, fmt.Errorf("catalog %s: activity %d: unknown kind %q: %w", lang, i, e.Kind, domain.ErrContentDefect)
		}
	}

	for _, step := range f.IntroOrder {
		c.introOrder = append(c.introOrder, slices.Clone(step))
	}

	return c, nil
}

// introKey identifies an atom set independent of order and duplicates.
func introKey(atoms []string) string {
	ids := lo.Uniq(atoms)
	slices.Sort(ids)
	return strings.Join(ids, "\x00")
}

func (c *Catalog) Lang() string { return c.lang }

// Atom returns the atom with the given id.
func (c *Catalog) Atom(id string) (domain.Atom, bool) {
	a, ok := c.atoms[id]
	return a, ok
}

// HasAtom reports whether the atom is part of the catalog.
func (c *Catalog) HasAtom(id string) bool {
	_, ok := c.atoms[id]
	return ok
}

// Atoms returns all atoms in declaration order.
func (c *Catalog) Atoms() []domain.Atom {
	return lo.Map(c.atomOrder, func(id string, _ int) domain.Atom { return c.atoms[id] })
}

// Generators returns every generator in declaration order.
func (c *Catalog) Generators() []generator.Generator {
	return slices.Clone(c.generators)
}

// IntroOrder returns the ordered introduction steps.
func (c *Catalog) IntroOrder() [][]string {
	out := make([][]string, len(c.introOrder))
	for i, step := range c.introOrder {
		out[i] = slices.Clone(step)
	}
	return out
}

// IntroGenerators returns, in declaration order, the generators that may be
// able to introduce exactly the given atoms: templates declaring that intro
// set plus every pool. Templates with a different intro set are skipped
// because they could never serve the request.
func (c *Catalog) IntroGenerators(atoms []string) []generator.Generator {
	positions := append(slices.Clone(c.templatesByIntro[introKey(atoms)]), c.pools...)
	slices.Sort(positions)
	return lo.Map(positions, func(pos int, _ int) generator.Generator { return c.generators[pos] })
}

// AtomsInfo returns the display info of the given atoms. Unknown ids are
// skipped.
func (c *Catalog) AtomsInfo(ids []string) map[string]domain.AtomInfo {
	out := make(map[string]domain.AtomInfo, len(ids))
	for _, id := range ids {
		a, ok := c.atoms[id]
		if !ok {
			continue
		}
		out[id] = domain.AtomInfo{Meaning: a.Meaning, Notes: a.Notes}
	}
	return out
}

// Stats returns counts describing the catalog.
func (c *Catalog) Stats() Stats {
	s := Stats{Atoms: len(c.atoms), IntroSteps: len(c.introOrder)}
	for _, g := range c.generators {
		switch gen := g.(type) {
		case *generator.Template:
			s.Templates++
		case *generator.Pool:
			s.Pools++
			s.PoolItems += len(gen.Spec().Items)
		}
	}
	return s
}
