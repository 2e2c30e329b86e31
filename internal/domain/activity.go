package domain

// Atom is the smallest trackable unit of learner knowledge.
type Atom struct {
	ID      string `json:"id"      yaml:"id"`
	Meaning string `json:"meaning,omitempty" yaml:"meaning"`
	Notes   string `json:"notes,omitempty"   yaml:"notes"`
}

// AtomInfo is the display data attached to a materialized activity.
type AtomInfo struct {
	Meaning string `json:"meaning,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// AnnoSpan is one span of annotated text. Spans tagged with an atom id mark
// where that atom appears.
type AnnoSpan struct {
	Text string `json:"t"           yaml:"t"`
	Atom string `json:"a,omitempty" yaml:"a"`
}

// AnnoAtoms returns the distinct atom ids referenced by the spans, in order
// of first appearance.
func AnnoAtoms(anno []AnnoSpan) []string {
	var out []string
	seen := make(map[string]struct{}, len(anno))
	for _, s := range anno {
		if s.Atom == "" {
			continue
		}
		if _, ok := seen[s.Atom]; ok {
			continue
		}
		seen[s.Atom] = struct{}{}
		out = append(out, s.Atom)
	}
	return out
}

// SectionKind identifies the shape of an activity section.
type SectionKind string

const (
	SectionTTSSlides SectionKind = "tts_slides"
	SectionQMTI      SectionKind = "qmti"
)

// Slide is one rendered presentation slide.
type Slide struct {
	Text    string     `json:"text"`
	Trans   []string   `json:"trans"`
	Anno    []AnnoSpan `json:"anno"`
	AudioFn string     `json:"audio_fn"`
	ImageFn string     `json:"image_fn"`
}

// Choice is one option of a multiple-choice image quiz.
type Choice struct {
	Correct   bool     `json:"correct"`
	ImageFn   string   `json:"image_fn"`
	FailAtoms []string `json:"fail_atoms,omitempty"`
}

// Section is one rendered section of an activity. Slides is set for
// tts_slides; the quiz fields are set for qmti.
type Section struct {
	Kind SectionKind `json:"kind"`

	Slides []Slide `json:"slides,omitempty"`

	Text        string     `json:"text,omitempty"`
	Trans       []string   `json:"trans,omitempty"`
	Anno        []AnnoSpan `json:"anno,omitempty"`
	TestedAtoms []string   `json:"tested_atoms,omitempty"`
	AudioFn     string     `json:"audio_fn,omitempty"`
	Choices     []Choice   `json:"choices,omitempty"`
}

// ActivityKind records which selection path produced an activity. A template
// that declares intro atoms can still be served as a review.
type ActivityKind string

const (
	ActivityReview ActivityKind = "review"
	ActivityIntro  ActivityKind = "intro"
)

// Activity is a materialized learning activity. It is built fresh for every
// request and never persisted.
type Activity struct {
	Kind        ActivityKind        `json:"kind"`
	IntroAtoms  []string            `json:"intro_atoms"`
	ReqAtoms    []string            `json:"req_atoms"`
	TestedAtoms []string            `json:"tested_atoms"`
	Sections    []Section           `json:"sections"`
	AtomsInfo   map[string]AtomInfo `json:"atoms_info,omitempty"`
}

// IsIntroduction reports whether the activity was picked to introduce new
// atoms rather than to review known ones.
func (a *Activity) IsIntroduction() bool {
	return a.Kind == ActivityIntro
}
