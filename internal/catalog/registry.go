package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync/atomic"

	"github.com/rsimmons/yukawa/internal/domain"
)

// Registry holds the catalogs of all configured languages. Readers always see
// a complete snapshot; Reload swaps it atomically.
type Registry struct {
	dir   string
	langs []string
	log   *slog.Logger
	cur   atomic.Pointer[map[string]*Catalog]
}

// NewRegistry loads every language in langs from dir. Any content defect is
// fatal.
func NewRegistry(log *slog.Logger, dir string, langs []string) (*Registry, error) {
	r := &Registry{
		dir:   dir,
		langs: slices.Clone(langs),
		log:   log.With("component", "catalog"),
	}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// NewStaticRegistry wraps already built catalogs. Reload is a no-op.
func NewStaticRegistry(catalogs ...*Catalog) *Registry {
	m := make(map[string]*Catalog, len(catalogs))
	for _, c := range catalogs {
		m[c.Lang()] = c
	}
	r := &Registry{langs: slices.Sorted(maps.Keys(m)), log: slog.Default()}
	r.cur.Store(&m)
	return r
}

// Get returns the catalog of lang.
func (r *Registry) Get(lang string) (*Catalog, error) {
	m := r.cur.Load()
	if m != nil {
		if c, ok := (*m)[lang]; ok {
			return c, nil
		}
	}
	return nil, fmt.Errorf("language %q: %w", lang, domain.ErrNotFound)
}

// Has reports whether the current snapshot holds a catalog for lang.
func (r *Registry) Has(lang string) bool {
	_, err := r.Get(lang)
	return err == nil
}

// Langs returns the configured language codes.
func (r *Registry) Langs() []string {
	return slices.Clone(r.langs)
}

// Reload loads every language again. On any failure the previous snapshot is
// kept and all errors are returned joined.
func (r *Registry) Reload() error {
	if r.dir == "" {
		return nil
	}

	next := make(map[string]*Catalog, len(r.langs))
	var errs []error
	for _, lang := range r.langs {
		c, err := LoadLang(r.dir, lang)
		if err != nil {
			errs = append(errs, fmt.Errorf("load %s: %w", lang, err))
			continue
		}
		st := c.Stats()
		r.log.Info("catalog loaded",
			slog.String("lang", lang),
			slog.Int("atoms", st.Atoms),
			slog.Int("templates", st.Templates),
			slog.Int("pools", st.Pools),
			slog.Int("intro_steps", st.IntroSteps),
		)
		next[lang] = c
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	r.cur.Store(&next)
	return nil
}
