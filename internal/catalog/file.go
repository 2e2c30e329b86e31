package catalog

import (
	"github.com/rsimmons/yukawa/internal/domain"
	"github.com/rsimmons/yukawa/internal/service/study/generator"
)

// File is the authored content of one language as produced by the content
// build (build.json or build.yaml).
type File struct {
	Atoms      []domain.Atom   `json:"atoms"       yaml:"atoms"`
	Activities []ActivityEntry `json:"activities"  yaml:"activities"`
	IntroOrder [][]string      `json:"intro_order" yaml:"intro_order"`
}

// ActivityEntry is one generator spec. Kind selects which of the embedded
// payloads is meaningful.
type ActivityEntry struct {
	Kind generator.Kind `json:"kind" yaml:"kind"`

	generator.TemplateSpec `yaml:",inline"`
	generator.PoolSpec     `yaml:",inline"`
}
