package study

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/rsimmons/yukawa/internal/catalog"
	"github.com/rsimmons/yukawa/internal/domain"
	"github.com/rsimmons/yukawa/internal/service/study/srs"
	"github.com/rsimmons/yukawa/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type retentionRepo interface {
	// Get returns an empty table when the user has no data for lang.
	Get(ctx context.Context, userID uuid.UUID, lang string) (domain.RetentionTable, error)
	// GetForUpdate is Get that also locks the row until the transaction ends.
	GetForUpdate(ctx context.Context, userID uuid.UUID, lang string) (domain.RetentionTable, error)
	Save(ctx context.Context, userID uuid.UUID, lang string, table domain.RetentionTable) error
}

type catalogSource interface {
	Get(lang string) (*catalog.Catalog, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service picks activities and records results for the authenticated user.
type Service struct {
	retention retentionRepo
	catalogs  catalogSource
	tx        txManager
	log       *slog.Logger
	engine    *Engine
	recorder  *Recorder
	now       func() time.Time
	newRand   func() *rand.Rand
}

// NewService creates a new Study service.
func NewService(
	log *slog.Logger,
	retention retentionRepo,
	catalogs catalogSource,
	tx txManager,
	params srs.Params,
	verbose bool,
) (*Service, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid srs params: %w", err)
	}

	log = log.With("service", "study")
	return &Service{
		retention: retention,
		catalogs:  catalogs,
		tx:        tx,
		log:       log,
		engine:    NewEngine(log, params, verbose),
		recorder:  NewRecorder(log, params, verbose),
		now:       time.Now,
		newRand:   newRequestRand,
	}, nil
}

// newRequestRand returns an independent generator for one request.
func newRequestRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// PickActivity selects and materializes the next activity for the user.
func (s *Service) PickActivity(ctx context.Context, input PickActivityInput) (*domain.Activity, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	cat, err := s.catalogs.Get(input.Lang)
	if err != nil {
		return nil, err
	}

	table, err := s.retention.Get(ctx, userID, input.Lang)
	if err != nil {
		return nil, fmt.Errorf("get retention: %w", err)
	}

	act, err := s.engine.PickActivity(ctx, cat, table, s.now().Unix(), s.newRand())
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "activity picked",
		slog.String("user_id", userID.String()),
		slog.String("lang", input.Lang),
		slog.String("kind", string(act.Kind)),
		slog.Int("tracked_atoms", len(table)),
	)

	return act, nil
}

// RecordResult applies graded results to the user's retention table and
// returns what changed per atom. The whole batch is applied or none of it.
func (s *Service) RecordResult(ctx context.Context, input RecordResultInput) (Report, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	cat, err := s.catalogs.Get(input.Lang)
	if err != nil {
		return nil, err
	}
	if err := checkKnownAtoms(cat, input.Grades); err != nil {
		return nil, err
	}

	now := s.now().Unix()

	var report Report
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		table, err := s.retention.GetForUpdate(txCtx, userID, input.Lang)
		if err != nil {
			return fmt.Errorf("get retention: %w", err)
		}

		updated, rep, err := s.recorder.Record(txCtx, table, input.Grades, now)
		if err != nil {
			return err
		}

		if err := s.retention.Save(txCtx, userID, input.Lang, updated); err != nil {
			return fmt.Errorf("save retention: %w", err)
		}
		report = rep
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "result recorded",
		slog.String("user_id", userID.String()),
		slog.String("lang", input.Lang),
		slog.Int("atoms", len(report)),
	)

	return report, nil
}

// checkKnownAtoms rejects atom ids that are not part of the catalog.
func checkKnownAtoms(cat *catalog.Catalog, batch GradeBatch) error {
	var errs []domain.FieldError
	for _, c := range batch.byGrade() {
		for j, id := range c.Atoms {
			if !cat.HasAtom(id) {
				errs = append(errs, domain.FieldError{
					Field:   fmt.Sprintf("atoms_%s[%d]", c.Grade, j),
					Message: fmt.Sprintf("unknown atom %q", id),
				})
			}
		}
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
