package generator

import "github.com/rsimmons/yukawa/internal/domain"

// VoiceSlot is a set of interchangeable voices. A varying slot picks a voice
// for every rendering; a fixed slot picks once per activity instance.
type VoiceSlot struct {
	Vary    bool     `json:"vary"    yaml:"vary"`
	Options []string `json:"options" yaml:"options"`
}

// TemplateSlide is an authored presentation slide.
type TemplateSlide struct {
	Text           string            `json:"text"             yaml:"text"`
	Trans          []string          `json:"trans"            yaml:"trans"`
	Anno           []domain.AnnoSpan `json:"anno"             yaml:"anno"`
	VoiceSlotIndex int               `json:"voice_slot_index" yaml:"voice_slot_index"`
	Audio          map[string]string `json:"audio"            yaml:"audio"`
	Images         []string          `json:"images"           yaml:"images"`
}

// QuizOption is one authored answer of a quiz. Every image is a separate
// candidate choice.
type QuizOption struct {
	Images    []string `json:"images"               yaml:"images"`
	FailAtoms []string `json:"fail_atoms,omitempty" yaml:"fail_atoms"`
}

// TemplateSection is an authored section. Repeat and Slides apply to
// tts_slides; the remaining fields apply to qmti.
type TemplateSection struct {
	Kind domain.SectionKind `json:"kind" yaml:"kind"`

	Repeat int             `json:"repeat,omitempty" yaml:"repeat"`
	Slides []TemplateSlide `json:"slides,omitempty" yaml:"slides"`

	Text           string            `json:"text,omitempty"             yaml:"text"`
	Trans          []string          `json:"trans,omitempty"            yaml:"trans"`
	Anno           []domain.AnnoSpan `json:"anno,omitempty"             yaml:"anno"`
	TestedAtoms    []string          `json:"tested_atoms,omitempty"     yaml:"tested_atoms"`
	VoiceSlotIndex int               `json:"voice_slot_index,omitempty" yaml:"voice_slot_index"`
	Audio          map[string]string `json:"audio,omitempty"            yaml:"audio"`
	Correct        []QuizOption      `json:"correct,omitempty"          yaml:"correct"`
	Incorrect      []QuizOption      `json:"incorrect,omitempty"        yaml:"incorrect"`
}

// TemplateSpec is a single fixed activity with ordered sections.
type TemplateSpec struct {
	IntroAtoms  []string          `json:"intro_atoms"  yaml:"intro_atoms"`
	ReqAtoms    []string          `json:"req_atoms"    yaml:"req_atoms"`
	TestedAtoms []string          `json:"tested_atoms" yaml:"tested_atoms"`
	VoiceSlots  []VoiceSlot       `json:"voice_slots"  yaml:"voice_slots"`
	Sections    []TemplateSection `json:"sections"     yaml:"sections"`
}

// PoolItem is one sentence of a pool. Its atom is the single atom tagged in
// its annotation.
type PoolItem struct {
	Text         string            `json:"text"          yaml:"text"`
	Trans        []string          `json:"trans"         yaml:"trans"`
	Anno         []domain.AnnoSpan `json:"anno"          yaml:"anno"`
	Audio        map[string]string `json:"audio"         yaml:"audio"`
	ImagesFull   []string          `json:"images_full"   yaml:"images_full"`
	ImagesChoice []string          `json:"images_choice" yaml:"images_choice"`
}

// PoolSpec is a pool of interchangeable single-atom items.
type PoolSpec struct {
	ProvideIntros bool       `json:"provide_intros" yaml:"provide_intros"`
	Items         []PoolItem `json:"items"          yaml:"items"`
}
