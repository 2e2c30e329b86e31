package catalog

import (
	"fmt"

	"github.com/rsimmons/yukawa/internal/domain"
	"github.com/rsimmons/yukawa/internal/service/study/generator"
)

const (
	minQuizCorrect   = 1
	minQuizIncorrect = 3
	minPoolItems     = 4
)

// validator collects every problem in a file so authors see them all at once.
type validator struct {
	lang     string
	atoms    map[string]struct{}
	problems []domain.ContentError
}

func (v *validator) addf(where, format string, args ...any) {
	v.problems = append(v.problems, domain.ContentError{
		Lang:   v.lang,
		Where:  where,
		Reason: fmt.Sprintf(format, args...),
	})
}

func (v *validator) checkAtoms(where string, ids []string) {
	for _, id := range ids {
		if _, ok := v.atoms[id]; !ok {
			v.addf(where, "unknown atom %q", id)
		}
	}
}

// Validate checks the load contract of a catalog file. The returned error is
// a *domain.ContentDefectError listing every problem found.
func Validate(lang string, f *File) error {
	v := &validator{lang: lang, atoms: make(map[string]struct{}, len(f.Atoms))}

	if lang == "" {
		v.addf("lang", "must not be empty")
	}

	for i, a := range f.Atoms {
		where := fmt.Sprintf("atoms[%d]", i)
		if a.ID == "" {
			v.addf(where, "empty atom id")
			continue
		}
		if _, dup := v.atoms[a.ID]; dup {
			v.addf(where, "duplicate atom id %q", a.ID)
			continue
		}
		v.atoms[a.ID] = struct{}{}
	}

	if len(f.Activities) == 0 {
		v.addf("activities", "no activities")
	}
	for i := range f.Activities {
		e := &f.Activities[i]
		where := fmt.Sprintf("activities[%d]", i)
		switch e.Kind {
		case generator.KindTemplate:
			v.checkTemplate(where, &e.TemplateSpec)
		case generator.KindPool:
			v.checkPool(where, &e.PoolSpec)
		default:
			v.addf(where, "unknown generator kind %q", e.Kind)
		}
	}

	for i, step := range f.IntroOrder {
		where := fmt.Sprintf("intro_order[%d]", i)
		if len(step) == 0 {
			v.addf(where, "empty step")
		}
		v.checkAtoms(where, step)
	}

	if len(v.problems) > 0 {
		return &domain.ContentDefectError{Problems: v.problems}
	}
	return nil
}

func (v *validator) checkTemplate(where string, s *generator.TemplateSpec) {
	v.checkAtoms(where+".intro_atoms", s.IntroAtoms)
	v.checkAtoms(where+".req_atoms", s.ReqAtoms)
	v.checkAtoms(where+".tested_atoms", s.TestedAtoms)

	for i, slot := range s.VoiceSlots {
		if len(slot.Options) == 0 {
			v.addf(fmt.Sprintf("%s.voice_slots[%d]", where, i), "no voice options")
		}
	}
	if len(s.Sections) == 0 {
		v.addf(where, "no sections")
	}

	for i := range s.Sections {
		sec := &s.Sections[i]
		sw := fmt.Sprintf("%s.sections[%d]", where, i)
		switch sec.Kind {
		case domain.SectionTTSSlides:
			if sec.Repeat < 1 {
				v.addf(sw, "repeat must be at least 1")
			}
			if len(sec.Slides) == 0 {
				v.addf(sw, "no slides")
			}
			for j := range sec.Slides {
				sl := &sec.Slides[j]
				slw := fmt.Sprintf("%s.slides[%d]", sw, j)
				v.checkVoiceAudio(slw, s.VoiceSlots, sl.VoiceSlotIndex, sl.Audio)
				if len(sl.Images) == 0 {
					v.addf(slw, "no images")
				}
				v.checkAtoms(slw+".anno", domain.AnnoAtoms(sl.Anno))
			}
		case domain.SectionQMTI:
			v.checkVoiceAudio(sw, s.VoiceSlots, sec.VoiceSlotIndex, sec.Audio)
			v.checkAtoms(sw+".tested_atoms", sec.TestedAtoms)
			v.checkAtoms(sw+".anno", domain.AnnoAtoms(sec.Anno))
			if len(sec.Correct) < minQuizCorrect {
				v.addf(sw, "need at least %d correct option, have %d", minQuizCorrect, len(sec.Correct))
			}
			if len(sec.Incorrect) < minQuizIncorrect {
				v.addf(sw, "need at least %d incorrect options, have %d", minQuizIncorrect, len(sec.Incorrect))
			}
			for j, opt := range sec.Correct {
				if len(opt.Images) == 0 {
					v.addf(fmt.Sprintf("%s.correct[%d]", sw, j), "no images")
				}
			}
			for j, opt := range sec.Incorrect {
				ow := fmt.Sprintf("%s.incorrect[%d]", sw, j)
				if len(opt.Images) == 0 {
					v.addf(ow, "no images")
				}
				v.checkAtoms(ow+".fail_atoms", opt.FailAtoms)
			}
		default:
			v.addf(sw, "unknown section kind %q", sec.Kind)
		}
	}
}

func (v *validator) checkVoiceAudio(where string, slots []generator.VoiceSlot, idx int, audio map[string]string) {
	if idx < 0 || idx >= len(slots) {
		v.addf(where, "voice_slot_index %d out of range (%d slots)", idx, len(slots))
		return
	}
	for _, voice := range slots[idx].Options {
		if _, ok := audio[voice]; !ok {
			v.addf(where, "no audio for voice %q", voice)
		}
	}
}

func (v *validator) checkPool(where string, s *generator.PoolSpec) {
	if len(s.Items) < minPoolItems {
		v.addf(where, "need at least %d items, have %d", minPoolItems, len(s.Items))
	}
	for i := range s.Items {
		it := &s.Items[i]
		iw := fmt.Sprintf("%s.items[%d]", where, i)
		atoms := domain.AnnoAtoms(it.Anno)
		if len(atoms) != 1 {
			v.addf(iw, "must tag exactly one atom, has %d", len(atoms))
		}
		v.checkAtoms(iw+".anno", atoms)
		if len(it.Audio) == 0 {
			v.addf(iw, "no audio")
		}
		if len(it.ImagesChoice) == 0 {
			v.addf(iw, "no images_choice")
		}
		if s.ProvideIntros && len(it.ImagesFull) == 0 {
			v.addf(iw, "no images_full but pool provides intros")
		}
	}
}
