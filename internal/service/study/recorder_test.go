package study

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/rsimmons/yukawa/internal/domain"
	"github.com/rsimmons/yukawa/internal/service/study/srs"
)

func newTestRecorder() *Recorder {
	return NewRecorder(slog.Default(), srs.DefaultParams(), true)
}

func TestRecorder_Introduce(t *testing.T) {
	t.Parallel()

	table := domain.RetentionTable{}
	next, report, err := newTestRecorder().Record(context.Background(), table, GradeBatch{Introduced: []string{"ser"}}, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec, ok := next["ser"]
	if !ok {
		t.Fatal("record not created")
	}
	if rec.LastAsked != testNow || rec.Interval != domain.PendingFirstReview() {
		t.Errorf("record: got %+v", rec)
	}

	entry := report["ser"]
	if entry.Elapsed != nil {
		t.Errorf("elapsed: got %d, want nil", *entry.Elapsed)
	}
	if entry.PrevInterval.IsTracked() {
		t.Errorf("prev interval: got %s, want untracked", entry.PrevInterval)
	}
	if entry.Grade != domain.GradeIntroduced {
		t.Errorf("grade: got %s", entry.Grade)
	}
	if len(table) != 0 {
		t.Error("input table was modified")
	}
}

func TestRecorder_GradePrecedence(t *testing.T) {
	t.Parallel()

	table := domain.RetentionTable{
		"gato":  {LastAsked: testNow - 100, Interval: domain.Seconds(100)},
		"perro": {LastAsked: testNow - 100, Interval: domain.Seconds(100)},
	}
	batch := GradeBatch{
		Exposed: []string{"gato", "perro"},
		Passed:  []string{"gato", "perro"},
		Failed:  []string{"perro"},
	}
	next, report, err := newTestRecorder().Record(context.Background(), table, batch, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report["gato"].Grade != domain.GradePassed {
		t.Errorf("gato grade: got %s, want passed", report["gato"].Grade)
	}
	if next["gato"].Interval != domain.Seconds(200) {
		t.Errorf("gato interval: got %s, want 200s", next["gato"].Interval)
	}
	if report["perro"].Grade != domain.GradeFailed {
		t.Errorf("perro grade: got %s, want failed", report["perro"].Grade)
	}
	if next["perro"].Interval != domain.Seconds(50) {
		t.Errorf("perro interval: got %s, want 50s", next["perro"].Interval)
	}
	if len(report) != 2 {
		t.Errorf("report size: got %d, want 2", len(report))
	}
}

func TestRecorder_ReportEntry(t *testing.T) {
	t.Parallel()

	table := domain.RetentionTable{"gato": {LastAsked: testNow - 60, Interval: domain.Seconds(60)}}
	_, report, err := newTestRecorder().Record(context.Background(), table, GradeBatch{Passed: []string{"gato"}}, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e := report["gato"]
	if e.Elapsed == nil || *e.Elapsed != 60 {
		t.Errorf("elapsed: got %v, want 60", e.Elapsed)
	}
	if e.PrevInterval != domain.Seconds(60) || e.NewInterval != domain.Seconds(120) {
		t.Errorf("intervals: got %s -> %s, want 60s -> 120s", e.PrevInterval, e.NewInterval)
	}
}

func TestRecorder_FailedDistractorStaysUntracked(t *testing.T) {
	t.Parallel()

	next, report, err := newTestRecorder().Record(context.Background(), domain.RetentionTable{}, GradeBatch{Failed: []string{"vaca"}}, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec, ok := next["vaca"]
	if !ok {
		t.Fatal("record not created")
	}
	if rec.Interval.IsTracked() {
		t.Errorf("interval: got %s, want untracked", rec.Interval)
	}
	if report["vaca"].NewInterval.IsTracked() {
		t.Error("report new interval should be untracked")
	}
}

func TestRecorder_InvalidStateFailsWholeBatch(t *testing.T) {
	t.Parallel()

	table := domain.RetentionTable{"gato": {LastAsked: testNow - 60, Interval: domain.Seconds(60)}}
	batch := GradeBatch{
		Passed: []string{"gato", "perro"},
	}
	next, report, err := newTestRecorder().Record(context.Background(), table, batch, testNow)
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("error: got %v, want ErrInvalidState", err)
	}
	if next != nil || report != nil {
		t.Error("expected no partial result")
	}
	if table["gato"].Interval != domain.Seconds(60) {
		t.Error("input table was modified")
	}
}

func TestRecorder_NegativeElapsedClamps(t *testing.T) {
	t.Parallel()

	table := domain.RetentionTable{"gato": {LastAsked: testNow + 500, Interval: domain.Seconds(60)}}
	_, report, err := newTestRecorder().Record(context.Background(), table, GradeBatch{Passed: []string{"gato"}}, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *report["gato"].Elapsed != 0 {
		t.Errorf("elapsed: got %d, want 0", *report["gato"].Elapsed)
	}
	if report["gato"].NewInterval != domain.Seconds(60) {
		t.Errorf("interval: got %s, want 60s", report["gato"].NewInterval)
	}
}

func TestRecorder_RoundTripPassedIsNotDue(t *testing.T) {
	t.Parallel()

	p := srs.DefaultParams()
	table := domain.RetentionTable{
		"a": {LastAsked: testNow - 30, Interval: domain.PendingFirstReview()},
		"b": {LastAsked: testNow - 5000, Interval: domain.Seconds(100)},
		"c": {LastAsked: testNow, Interval: domain.Seconds(10)},
	}
	next, _, err := newTestRecorder().Record(context.Background(), table, GradeBatch{Passed: []string{"a", "b", "c"}}, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for id, rec := range next {
		if got := srs.Dueness(rec, testNow, p); got != domain.DuenessNotDue {
			t.Errorf("atom %s: got %s, want not_due", id, got)
		}
	}
}

func TestGradeBatch_Resolve(t *testing.T) {
	t.Parallel()

	grades, order := GradeBatch{
		Introduced: []string{"a", "b"},
		Forgot:     []string{"b"},
		Passed:     []string{"c"},
		Failed:     []string{"a"},
	}.Resolve()

	want := map[string]domain.Grade{"a": domain.GradeFailed, "b": domain.GradeForgot, "c": domain.GradePassed}
	for id, g := range want {
		if grades[id] != g {
			t.Errorf("atom %s: got %s, want %s", id, grades[id], g)
		}
	}
	if len(order) != 3 || order[0] != "a" || order[1] != "b" || order[2] != "c" {
		t.Errorf("order: got %v", order)
	}
}
