package study

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rsimmons/yukawa/internal/domain"
	"github.com/rsimmons/yukawa/internal/service/study/srs"
)

// Recorder applies graded results to a retention table.
type Recorder struct {
	params  srs.Params
	log     *slog.Logger
	verbose bool
}

// NewRecorder creates a recorder. With verbose set, every grade is logged at
// debug level.
func NewRecorder(log *slog.Logger, params srs.Params, verbose bool) *Recorder {
	return &Recorder{params: params, log: log, verbose: verbose}
}

// Record grades every atom of the batch at time now (unix seconds). The input
// table is not modified: the updated table is returned alongside a per-atom
// report. Any invalid grade fails the whole batch.
func (r *Recorder) Record(ctx context.Context, table domain.RetentionTable, batch GradeBatch, now int64) (domain.RetentionTable, Report, error) {
	grades, order := batch.Resolve()
	next := table.Clone()
	report := make(Report, len(order))

	for _, id := range order {
		grade := grades[id]

		prior := domain.NotTracked()
		var elapsed *int64
		if rec, ok := table[id]; ok {
			prior = rec.Interval
			e := max(0, now-rec.LastAsked)
			elapsed = &e
		}

		var el int64
		if elapsed != nil {
			el = *elapsed
		}
		iv, err := srs.UpdateInterval(prior, el, grade, r.params)
		if err != nil {
			return nil, nil, fmt.Errorf("atom %q: %w", id, err)
		}

		next[id] = domain.RetentionRecord{LastAsked: now, Interval: iv}
		report[id] = ReportEntry{
			Elapsed:      elapsed,
			PrevInterval: prior,
			NewInterval:  iv,
			Grade:        grade,
		}

		if r.verbose {
			r.log.DebugContext(ctx, "atom graded",
				slog.String("atom", id),
				slog.String("grade", grade.String()),
				slog.String("prev_interval", prior.String()),
				slog.String("new_interval", iv.String()),
			)
		}
	}

	return next, report, nil
}
