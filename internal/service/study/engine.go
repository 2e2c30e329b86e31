package study

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/rsimmons/yukawa/internal/domain"
	"github.com/rsimmons/yukawa/internal/service/study/generator"
	"github.com/rsimmons/yukawa/internal/service/study/srs"
)

// content is the part of a language catalog the engine reads.
type content interface {
	Lang() string
	Generators() []generator.Generator
	IntroOrder() [][]string
	IntroGenerators(atoms []string) []generator.Generator
	AtomsInfo(ids []string) map[string]domain.AtomInfo
}

// Engine selects one activity per request. It keeps no state between calls
// and does no I/O; randomness and time come from the caller.
type Engine struct {
	params  srs.Params
	log     *slog.Logger
	verbose bool
}

// NewEngine creates an engine. With verbose set, per-atom dueness and the
// chosen path are logged at debug level.
func NewEngine(log *slog.Logger, params srs.Params, verbose bool) *Engine {
	return &Engine{params: params, log: log, verbose: verbose}
}

// PickActivity returns a review of due atoms when one exists, otherwise an
// introduction of the next introducible step. now is in unix seconds.
func (e *Engine) PickActivity(ctx context.Context, c content, table domain.RetentionTable, now int64, rng *rand.Rand) (*domain.Activity, error) {
	due := srs.DuenessMap(table, now, e.params)
	e.traceDueness(ctx, c.Lang(), table, due, now)

	act, err := e.bestReview(c, due, rng)
	if err != nil {
		return nil, err
	}
	if act != nil {
		act.Kind = domain.ActivityReview
		e.trace(ctx, "review activity chosen", slog.Any("tested_atoms", act.TestedAtoms))
		return withAtomsInfo(c, act), nil
	}

	act, err = e.nextIntro(c, due, rng)
	if err != nil {
		return nil, err
	}
	if act != nil {
		act.Kind = domain.ActivityIntro
		e.trace(ctx, "intro activity chosen", slog.Any("intro_atoms", act.IntroAtoms))
		return withAtomsInfo(c, act), nil
	}

	return nil, fmt.Errorf("lang %s: %w", c.Lang(), domain.ErrExhausted)
}

// bestReview asks every generator for a review, shuffles the candidates and
// keeps the highest score. Equal scores are decided by the shuffle.
func (e *Engine) bestReview(c content, due domain.DuenessMap, rng *rand.Rand) (*domain.Activity, error) {
	var candidates []*generator.Candidate
	for i, g := range c.Generators() {
		cand, err := g.GenerateReview(rng, due)
		if err != nil {
			return nil, fmt.Errorf("review from %s generator %d: %w", g.Kind(), i, err)
		}
		if cand != nil {
			candidates = append(candidates, cand)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	rng.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })
	slices.SortStableFunc(candidates, func(a, b *generator.Candidate) int { return cmp.Compare(b.Score, a.Score) })
	return candidates[0].Activity, nil
}

// nextIntro finds the first intro step with an introducible atom and asks
// generators, in declaration order, to introduce it.
func (e *Engine) nextIntro(c content, due domain.DuenessMap, rng *rand.Rand) (*domain.Activity, error) {
	for _, step := range c.IntroOrder() {
		introducible := lo.SomeBy(step, func(id string) bool { return due.Of(id).IsIntroducible() })
		if !introducible {
			continue
		}

		for _, g := range c.IntroGenerators(step) {
			act, err := g.GenerateIntro(rng, step, due)
			if err != nil {
				return nil, fmt.Errorf("intro [%s] from %s generator: %w", strings.Join(step, " "), g.Kind(), err)
			}
			if act != nil {
				return act, nil
			}
		}
		return nil, fmt.Errorf("lang %s: no generator introduces [%s]: %w", c.Lang(), strings.Join(step, " "), domain.ErrContentDefect)
	}
	return nil, nil
}

// withAtomsInfo attaches display info for every atom the activity touches.
func withAtomsInfo(c content, act *domain.Activity) *domain.Activity {
	ids := lo.Union(act.IntroAtoms, act.ReqAtoms, act.TestedAtoms)
	for _, sec := range act.Sections {
		for _, ch := range sec.Choices {
			ids = lo.Union(ids, ch.FailAtoms)
		}
	}
	act.AtomsInfo = c.AtomsInfo(ids)
	return act
}

func (e *Engine) traceDueness(ctx context.Context, lang string, table domain.RetentionTable, due domain.DuenessMap, now int64) {
	if !e.verbose {
		return
	}
	e.log.DebugContext(ctx, "picking activity", slog.String("lang", lang), slog.Int("tracked_atoms", len(table)))
	ids := lo.Keys(table)
	slices.Sort(ids)
	for _, id := range ids {
		rec := table[id]
		e.log.DebugContext(ctx, "atom dueness",
			slog.String("atom", id),
			slog.String("dueness", due.Of(id).String()),
			slog.Int64("elapsed", now-rec.LastAsked),
			slog.String("interval", rec.Interval.String()),
		)
	}
}

func (e *Engine) trace(ctx context.Context, msg string, attrs ...slog.Attr) {
	if !e.verbose {
		return
	}
	e.log.LogAttrs(ctx, slog.LevelDebug, msg, attrs...)
}
