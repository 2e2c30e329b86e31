package generator

import (
	"cmp"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/samber/lo"

	"github.com/rsimmons/yukawa/internal/domain"
)

const (
	poolDistractors  = 3
	poolMaxIntroReps = 3
)

// distractorPriority ranks other items as distractors by how useful it is to
// show their atom: unfamiliar atoms first.
var distractorPriority = map[domain.Dueness]int{
	domain.DuenessUntracked: 4,
	domain.DuenessOverdue:   3,
	domain.DuenessDue:       2,
	domain.DuenessNotDue:    1,
}

// Pool renders single-atom review quizzes and introductions from a pool of
// items.
type Pool struct {
	spec PoolSpec
	// atoms[i] holds the annotated atoms of spec.Items[i].
	atoms [][]string
}

// NewPool creates a pool generator. The spec is expected to have passed
// catalog validation, so every item carries exactly one atom.
func NewPool(spec PoolSpec) *Pool {
	atoms := make([][]string, len(spec.Items))
	for i := range spec.Items {
		atoms[i] = domain.AnnoAtoms(spec.Items[i].Anno)
	}
	return &Pool{spec: spec, atoms: atoms}
}

func (g *Pool) Kind() Kind { return KindPool }

func (g *Pool) sealed() {}

// Spec returns the authored spec.
func (g *Pool) Spec() *PoolSpec { return &g.spec }

// itemAtom returns the single atom tested by item i.
func (g *Pool) itemAtom(i int) string {
	if len(g.atoms[i]) == 0 {
		return ""
	}
	return g.atoms[i][0]
}

// GenerateReview quizzes the first item whose atom is due. Every eligible
// item scores 1, so declaration order decides.
func (g *Pool) GenerateReview(rng *rand.Rand, due domain.DuenessMap) (*Candidate, error) {
	for i := range g.spec.Items {
		atom := g.itemAtom(i)
		if atom == "" || due.Of(atom) != domain.DuenessDue {
			continue
		}
		act, err := g.review(rng, i, due)
		if err != nil {
			return nil, fmt.Errorf("pool item %d: %w", i, err)
		}
		return &Candidate{Activity: act, Score: 1}, nil
	}
	return nil, nil
}

func (g *Pool) review(rng *rand.Rand, idx int, due domain.DuenessMap) (*domain.Activity, error) {
	item := &g.spec.Items[idx]
	tested := []string{g.itemAtom(idx)}

	audioFn, err := pick(rng, audioFiles(item.Audio))
	if err != nil {
		return nil, fmt.Errorf("audio: %w", err)
	}
	correctImg, err := pick(rng, item.ImagesChoice)
	if err != nil {
		return nil, fmt.Errorf("choice images: %w", err)
	}

	type scored struct {
		score int
		idx   int
	}
	others := make([]scored, 0, len(g.spec.Items)-1)
	for j := range g.spec.Items {
		if j == idx {
			continue
		}
		others = append(others, scored{score: distractorPriority[due.Of(g.itemAtom(j))], idx: j})
	}
	if len(others) < poolDistractors {
		return nil, fmt.Errorf("need %d distractors, have %d: %w", poolDistractors, len(others), domain.ErrContentDefect)
	}
	rng.Shuffle(len(others), func(a, b int) { others[a], others[b] = others[b], others[a] })
	slices.SortStableFunc(others, func(a, b scored) int { return cmp.Compare(b.score, a.score) })

	choices := make([]domain.Choice, 0, poolDistractors+1)
	choices = append(choices, domain.Choice{Correct: true, ImageFn: correctImg})
	for _, o := range others[:poolDistractors] {
		img, err := pick(rng, g.spec.Items[o.idx].ImagesChoice)
		if err != nil {
			return nil, fmt.Errorf("distractor %d images: %w", o.idx, err)
		}
		choices = append(choices, domain.Choice{
			Correct:   false,
			ImageFn:   img,
			FailAtoms: slices.Clone(g.atoms[o.idx]),
		})
	}
	rng.Shuffle(len(choices), func(a, b int) { choices[a], choices[b] = choices[b], choices[a] })

	return &domain.Activity{
		IntroAtoms:  []string{},
		ReqAtoms:    []string{},
		TestedAtoms: tested,
		Sections: []domain.Section{{
			Kind:        domain.SectionQMTI,
			Text:        item.Text,
			Trans:       item.Trans,
			Anno:        item.Anno,
			TestedAtoms: slices.Clone(tested),
			AudioFn:     audioFn,
			Choices:     choices,
		}},
	}, nil
}

// GenerateIntro presents the first item that contains every requested atom
// and otherwise only atoms that are already known and not due.
func (g *Pool) GenerateIntro(rng *rand.Rand, introAtoms []string, due domain.DuenessMap) (*domain.Activity, error) {
	if !g.spec.ProvideIntros || len(introAtoms) == 0 {
		return nil, nil
	}

	for i := range g.spec.Items {
		itemAtoms := g.atoms[i]
		if !lo.Every(itemAtoms, introAtoms) {
			continue
		}
		reqsMet := lo.EveryBy(itemAtoms, func(id string) bool {
			return lo.Contains(introAtoms, id) || due.Of(id) == domain.DuenessNotDue
		})
		if !reqsMet {
			continue
		}

		act, err := g.intro(rng, i, introAtoms)
		if err != nil {
			return nil, fmt.Errorf("pool item %d: %w", i, err)
		}
		return act, nil
	}
	return nil, nil
}

func (g *Pool) intro(rng *rand.Rand, idx int, introAtoms []string) (*domain.Activity, error) {
	item := &g.spec.Items[idx]
	audios := audioFiles(item.Audio)
	reps := min(poolMaxIntroReps, len(item.ImagesFull), len(audios))

	images, err := sampleUniform(rng, item.ImagesFull, reps)
	if err != nil {
		return nil, fmt.Errorf("intro images: %w", err)
	}
	sampledAudio, err := sampleUniform(rng, audios, reps)
	if err != nil {
		return nil, fmt.Errorf("intro audio: %w", err)
	}

	slides := make([]domain.Slide, reps)
	for k := range reps {
		slides[k] = domain.Slide{
			Text:    item.Text,
			Trans:   item.Trans,
			Anno:    item.Anno,
			AudioFn: sampledAudio[k],
			ImageFn: images[k],
		}
	}

	return &domain.Activity{
		IntroAtoms:  slices.Clone(introAtoms),
		ReqAtoms:    []string{},
		TestedAtoms: []string{},
		Sections: []domain.Section{{
			Kind:   domain.SectionTTSSlides,
			Slides: slides,
		}},
	}, nil
}
