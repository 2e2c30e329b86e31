package study

import (
	"math/rand/v2"
	"testing"

	"github.com/rsimmons/yukawa/internal/catalog"
	"github.com/rsimmons/yukawa/internal/domain"
	"github.com/rsimmons/yukawa/internal/service/study/generator"
)

const testNow int64 = 1_700_000_000

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

func span(atom string) []domain.AnnoSpan {
	return []domain.AnnoSpan{{Text: atom, Atom: atom}}
}

func poolItem(atom string) generator.PoolItem {
	return generator.PoolItem{
		Text:         atom,
		Trans:        []string{atom},
		Anno:         span(atom),
		Audio:        map[string]string{"v1": atom + ".mp3"},
		ImagesFull:   []string{atom + "-full.jpg"},
		ImagesChoice: []string{atom + "-choice.jpg"},
	}
}

func introTemplate(atom string) catalog.ActivityEntry {
	return catalog.ActivityEntry{
		Kind: generator.KindTemplate,
		TemplateSpec: generator.TemplateSpec{
			IntroAtoms: []string{atom},
			VoiceSlots: []generator.VoiceSlot{{Vary: true, Options: []string{"v1"}}},
			Sections: []generator.TemplateSection{{
				Kind:   domain.SectionTTSSlides,
				Repeat: 1,
				Slides: []generator.TemplateSlide{{
					Text:   atom,
					Anno:   span(atom),
					Audio:  map[string]string{"v1": atom + "-intro.mp3"},
					Images: []string{atom + "-intro.jpg"},
				}},
			}},
		},
	}
}

func quizTemplate(req []string, tested ...string) catalog.ActivityEntry {
	incorrect := []generator.QuizOption{
		{Images: []string{"x1.jpg"}},
		{Images: []string{"x2.jpg"}},
		{Images: []string{"x3.jpg"}},
	}
	return catalog.ActivityEntry{
		Kind: generator.KindTemplate,
		TemplateSpec: generator.TemplateSpec{
			ReqAtoms:    req,
			TestedAtoms: tested,
			VoiceSlots:  []generator.VoiceSlot{{Options: []string{"v1"}}},
			Sections: []generator.TemplateSection{{
				Kind:        domain.SectionQMTI,
				Text:        "quiz",
				TestedAtoms: tested,
				Audio:       map[string]string{"v1": "quiz.mp3"},
				Correct:     []generator.QuizOption{{Images: []string{"ok.jpg"}}},
				Incorrect:   incorrect,
			}},
		},
	}
}

func poolEntry(atoms ...string) catalog.ActivityEntry {
	e := catalog.ActivityEntry{Kind: generator.KindPool}
	e.ProvideIntros = true
	for _, a := range atoms {
		e.Items = append(e.Items, poolItem(a))
	}
	return e
}

// testCatalog: "ser" is introduced by a template, "gato" is quizzed by a
// template requiring "ser", and a pool covers gato, perro, vaca and pajaro.
func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	return buildCatalog(t, &catalog.File{
		Atoms: []domain.Atom{
			{ID: "ser", Meaning: "to be"},
			{ID: "gato", Meaning: "cat"},
			{ID: "perro", Meaning: "dog"},
			{ID: "vaca", Meaning: "cow"},
			{ID: "pajaro", Meaning: "bird"},
		},
		Activities: []catalog.ActivityEntry{
			introTemplate("ser"),
			quizTemplate([]string{"ser"}, "gato"),
			poolEntry("gato", "perro", "vaca", "pajaro"),
		},
		IntroOrder: [][]string{{"ser"}, {"gato"}, {"perro"}, {"vaca"}, {"pajaro"}},
	})
}

func buildCatalog(t *testing.T, f *catalog.File) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New("es", f)
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	return c
}

// known returns a record that is not due at testNow.
func known() domain.RetentionRecord {
	return domain.RetentionRecord{LastAsked: testNow - 10, Interval: domain.Seconds(1000)}
}

// due returns a record that is due but not overdue at testNow.
func due() domain.RetentionRecord {
	return domain.RetentionRecord{LastAsked: testNow - 150, Interval: domain.Seconds(100)}
}

// overdue returns a record that is overdue at testNow.
func overdue() domain.RetentionRecord {
	return domain.RetentionRecord{LastAsked: testNow - 5000, Interval: domain.Seconds(100)}
}
