package generator

import (
	"strings"

	"github.com/rsimmons/yukawa/internal/domain"
)

func anno(atom, text string) []domain.AnnoSpan {
	return []domain.AnnoSpan{{Text: "el "}, {Text: text, Atom: atom}}
}

// quizTemplate introduces nothing, requires "ser" and tests "gato".
func quizTemplate() TemplateSpec {
	return TemplateSpec{
		IntroAtoms:  nil,
		ReqAtoms:    []string{"ser"},
		TestedAtoms: []string{"gato"},
		VoiceSlots: []VoiceSlot{
			{Vary: false, Options: []string{"v1", "v2"}},
			{Vary: true, Options: []string{"v1", "v2"}},
		},
		Sections: []TemplateSection{
			{
				Kind:   domain.SectionTTSSlides,
				Repeat: 2,
				Slides: []TemplateSlide{
					{
						Text:           "es un gato",
						Trans:          []string{"it is a cat"},
						Anno:           anno("gato", "gato"),
						VoiceSlotIndex: 0,
						Audio:          map[string]string{"v1": "s1-v1.mp3", "v2": "s1-v2.mp3"},
						Images:         []string{"cat1.jpg", "cat2.jpg"},
					},
					{
						Text:           "es un perro",
						Trans:          []string{"it is a dog"},
						Anno:           anno("perro", "perro"),
						VoiceSlotIndex: 1,
						Audio:          map[string]string{"v1": "s2-v1.mp3", "v2": "s2-v2.mp3"},
						Images:         []string{"dog1.jpg"},
					},
				},
			},
			{
				Kind:           domain.SectionQMTI,
				Text:           "el gato",
				Trans:          []string{"the cat"},
				Anno:           anno("gato", "gato"),
				TestedAtoms:    []string{"gato"},
				VoiceSlotIndex: 0,
				Audio:          map[string]string{"v1": "q-v1.mp3", "v2": "q-v2.mp3"},
				Correct: []QuizOption{
					{Images: []string{"cat1.jpg", "cat2.jpg"}},
				},
				Incorrect: []QuizOption{
					{Images: []string{"dog1.jpg"}, FailAtoms: []string{"perro"}},
					{Images: []string{"cow1.jpg", "cow2.jpg"}, FailAtoms: []string{"vaca"}},
					{Images: []string{"bird1.jpg"}, FailAtoms: []string{"pajaro"}},
				},
			},
		},
	}
}

// introTemplate introduces "gato" with a single slide section.
func introTemplate() TemplateSpec {
	return TemplateSpec{
		IntroAtoms:  []string{"gato"},
		ReqAtoms:    []string{},
		TestedAtoms: []string{},
		VoiceSlots:  []VoiceSlot{{Vary: true, Options: []string{"v1"}}},
		Sections: []TemplateSection{{
			Kind:   domain.SectionTTSSlides,
			Repeat: 1,
			Slides: []TemplateSlide{{
				Text:   "gato",
				Trans:  []string{"cat"},
				Anno:   anno("gato", "gato"),
				Audio:  map[string]string{"v1": "gato.mp3"},
				Images: []string{"cat1.jpg"},
			}},
		}},
	}
}

func poolItem(atom string) PoolItem {
	return PoolItem{
		Text:  "el " + atom,
		Trans: []string{"the " + atom},
		Anno:  anno(atom, atom),
		Audio: map[string]string{
			"v1": atom + "-v1.mp3",
			"v2": atom + "-v2.mp3",
			"v3": atom + "-v3.mp3",
			"v4": atom + "-v4.mp3",
		},
		ImagesFull:   []string{atom + "-full1.jpg", atom + "-full2.jpg", atom + "-full3.jpg", atom + "-full4.jpg"},
		ImagesChoice: []string{atom + "-choice1.jpg", atom + "-choice2.jpg"},
	}
}

func poolSpec(provideIntros bool, atoms ...string) PoolSpec {
	spec := PoolSpec{ProvideIntros: provideIntros}
	for _, a := range atoms {
		spec.Items = append(spec.Items, poolItem(a))
	}
	return spec
}

func imageAtom(fn string) string {
	atom, _, _ := strings.Cut(fn, "-")
	return atom
}
