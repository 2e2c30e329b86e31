package generator

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/rsimmons/yukawa/internal/domain"
)

const (
	quizCorrectChoices   = 1
	quizIncorrectChoices = 3
)

// Template renders one fixed activity spec.
type Template struct {
	spec TemplateSpec
}

// NewTemplate creates a template generator. The spec is expected to have
// passed catalog validation.
func NewTemplate(spec TemplateSpec) *Template {
	return &Template{spec: spec}
}

func (g *Template) Kind() Kind { return KindTemplate }

func (g *Template) sealed() {}

// Spec returns the authored spec.
func (g *Template) Spec() *TemplateSpec { return &g.spec }

// GenerateReview scores the template by the number of its tested atoms that
// are due. Every required atom must be known.
func (g *Template) GenerateReview(rng *rand.Rand, due domain.DuenessMap) (*Candidate, error) {
	score := 0
	for _, id := range g.spec.TestedAtoms {
		if due.Of(id) == domain.DuenessDue {
			score++
		}
	}
	if score == 0 || !allKnown(g.spec.ReqAtoms, due) {
		return nil, nil
	}

	act, err := g.expand(rng)
	if err != nil {
		return nil, err
	}
	return &Candidate{Activity: act, Score: score}, nil
}

// GenerateIntro serves only a request for exactly the template's intro atoms.
func (g *Template) GenerateIntro(rng *rand.Rand, introAtoms []string, _ domain.DuenessMap) (*domain.Activity, error) {
	if len(g.spec.IntroAtoms) == 0 || !sameSet(introAtoms, g.spec.IntroAtoms) {
		return nil, nil
	}
	return g.expand(rng)
}

// voicePicker resolves voice slots for one activity instance.
type voicePicker struct {
	rng   *rand.Rand
	slots []VoiceSlot
	fixed []string
}

func newVoicePicker(rng *rand.Rand, slots []VoiceSlot) (*voicePicker, error) {
	vp := &voicePicker{rng: rng, slots: slots, fixed: make([]string, len(slots))}
	for i, slot := range slots {
		if slot.Vary {
			continue
		}
		v, err := pick(rng, slot.Options)
		if err != nil {
			return nil, fmt.Errorf("voice slot %d: %w", i, err)
		}
		vp.fixed[i] = v
	}
	return vp, nil
}

func (vp *voicePicker) voice(idx int) (string, error) {
	if idx < 0 || idx >= len(vp.slots) {
		return "", fmt.Errorf("voice slot %d out of range: %w", idx, domain.ErrContentDefect)
	}
	if !vp.slots[idx].Vary {
		return vp.fixed[idx], nil
	}
	v, err := pick(vp.rng, vp.slots[idx].Options)
	if err != nil {
		return "", fmt.Errorf("voice slot %d: %w", idx, err)
	}
	return v, nil
}

func (vp *voicePicker) audio(idx int, audio map[string]string) (string, error) {
	voice, err := vp.voice(idx)
	if err != nil {
		return "", err
	}
	fn, ok := audio[voice]
	if !ok {
		return "", fmt.Errorf("no audio for voice %q: %w", voice, domain.ErrContentDefect)
	}
	return fn, nil
}

func (g *Template) expand(rng *rand.Rand) (*domain.Activity, error) {
	vp, err := newVoicePicker(rng, g.spec.VoiceSlots)
	if err != nil {
		return nil, err
	}

	sections := make([]domain.Section, 0, len(g.spec.Sections))
	for i := range g.spec.Sections {
		sec, err := g.expandSection(rng, vp, &g.spec.Sections[i])
		if err != nil {
			return nil, fmt.Errorf("section %d: %w", i, err)
		}
		sections = append(sections, sec)
	}

	return &domain.Activity{
		IntroAtoms:  cloneAtoms(g.spec.IntroAtoms),
		ReqAtoms:    cloneAtoms(g.spec.ReqAtoms),
		TestedAtoms: cloneAtoms(g.spec.TestedAtoms),
		Sections:    sections,
	}, nil
}

func (g *Template) expandSection(rng *rand.Rand, vp *voicePicker, sec *TemplateSection) (domain.Section, error) {
	switch sec.Kind {
	case domain.SectionTTSSlides:
		return expandSlides(rng, vp, sec)
	case domain.SectionQMTI:
		return expandQuiz(rng, vp, sec)
	default:
		return domain.Section{}, fmt.Errorf("unknown section kind %q: %w", sec.Kind, domain.ErrContentDefect)
	}
}

func expandSlides(rng *rand.Rand, vp *voicePicker, sec *TemplateSection) (domain.Section, error) {
	out := domain.Section{
		Kind:   domain.SectionTTSSlides,
		Slides: make([]domain.Slide, 0, sec.Repeat*len(sec.Slides)),
	}
	for range sec.Repeat {
		for j := range sec.Slides {
			s := &sec.Slides[j]
			audioFn, err := vp.audio(s.VoiceSlotIndex, s.Audio)
			if err != nil {
				return domain.Section{}, fmt.Errorf("slide %d: %w", j, err)
			}
			imageFn, err := pick(rng, s.Images)
			if err != nil {
				return domain.Section{}, fmt.Errorf("slide %d images: %w", j, err)
			}
			out.Slides = append(out.Slides, domain.Slide{
				Text:    s.Text,
				Trans:   s.Trans,
				Anno:    s.Anno,
				AudioFn: audioFn,
				ImageFn: imageFn,
			})
		}
	}
	return out, nil
}

// quizChoices flattens options into one candidate per image. Each option's
// images share a total weight of 1 so options with many images are not
// favoured.
func quizChoices(opts []QuizOption, correct bool) []Weighted[domain.Choice] {
	var out []Weighted[domain.Choice]
	for _, opt := range opts {
		if len(opt.Images) == 0 {
			continue
		}
		w := 1.0 / float64(len(opt.Images))
		for _, img := range opt.Images {
			c := domain.Choice{Correct: correct, ImageFn: img}
			if !correct {
				c.FailAtoms = slices.Clone(opt.FailAtoms)
			}
			out = append(out, Weighted[domain.Choice]{Weight: w, Item: c})
		}
	}
	return out
}

func expandQuiz(rng *rand.Rand, vp *voicePicker, sec *TemplateSection) (domain.Section, error) {
	audioFn, err := vp.audio(sec.VoiceSlotIndex, sec.Audio)
	if err != nil {
		return domain.Section{}, err
	}

	correct, err := Sample(rng, quizChoices(sec.Correct, true), quizCorrectChoices)
	if err != nil {
		return domain.Section{}, fmt.Errorf("correct choices: %w", err)
	}
	incorrect, err := Sample(rng, quizChoices(sec.Incorrect, false), quizIncorrectChoices)
	if err != nil {
		return domain.Section{}, fmt.Errorf("incorrect choices: %w", err)
	}

	choices := append(correct, incorrect...)
	rng.Shuffle(len(choices), func(i, j int) { choices[i], choices[j] = choices[j], choices[i] })

	return domain.Section{
		Kind:        domain.SectionQMTI,
		Text:        sec.Text,
		Trans:       sec.Trans,
		Anno:        sec.Anno,
		TestedAtoms: slices.Clone(sec.TestedAtoms),
		AudioFn:     audioFn,
		Choices:     choices,
	}, nil
}
