package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"strconv"
)

// IntervalState distinguishes the three states a retention interval can be in.
type IntervalState uint8

const (
	// IntervalNotTracked: a record exists but the atom was never introduced.
	IntervalNotTracked IntervalState = iota
	// IntervalPending: introduced, first review still pending (interval 0).
	IntervalPending
	// IntervalSet: a real retention interval in seconds.
	IntervalSet
)

// Interval is the retention interval of an atom. The zero value is NotTracked.
type Interval struct {
	state   IntervalState
	seconds int64
}

// NotTracked returns the interval of an atom that has not been introduced.
func NotTracked() Interval { return Interval{} }

// PendingFirstReview returns the interval of a freshly introduced atom.
func PendingFirstReview() Interval { return Interval{state: IntervalPending} }

// Seconds returns an interval of n seconds. Non-positive values collapse to
// PendingFirstReview.
func Seconds(n int64) Interval {
	if n <= 0 {
		return PendingFirstReview()
	}
	return Interval{state: IntervalSet, seconds: n}
}

func (i Interval) State() IntervalState { return i.state }

// IsTracked reports whether the atom has been introduced.
func (i Interval) IsTracked() bool { return i.state != IntervalNotTracked }

// Value returns the interval in seconds. ok is false when the atom is not tracked.
func (i Interval) Value() (seconds int64, ok bool) {
	switch i.state {
	case IntervalPending:
		return 0, true
	case IntervalSet:
		return i.seconds, true
	default:
		return 0, false
	}
}

func (i Interval) String() string {
	switch i.state {
	case IntervalPending:
		return "0s"
	case IntervalSet:
		return strconv.FormatInt(i.seconds, 10) + "s"
	default:
		return "untracked"
	}
}

// MarshalJSON encodes NotTracked as null and everything else as seconds.
func (i Interval) MarshalJSON() ([]byte, error) {
	v, ok := i.Value()
	if !ok {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, v, 10), nil
}

func (i *Interval) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*i = NotTracked()
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("interval: %w", err)
	}
	if n < 0 {
		return fmt.Errorf("interval: negative value %d", n)
	}
	*i = Seconds(n)
	return nil
}

// RetentionRecord is the latest retention state of one atom for one learner.
type RetentionRecord struct {
	LastAsked int64    `json:"lt"`
	Interval  Interval `json:"iv"`
}

// RetentionTable maps atom id to its retention record for one (user, language).
type RetentionTable map[string]RetentionRecord

// Clone returns a shallow copy; records are values so the copy is independent.
func (t RetentionTable) Clone() RetentionTable {
	if t == nil {
		return RetentionTable{}
	}
	return maps.Clone(t)
}

// retentionDocument is the persisted shape of a RetentionTable.
type retentionDocument struct {
	Atom RetentionTable `json:"atom"`
}

// MarshalRetention encodes a table into its persisted document form.
func MarshalRetention(t RetentionTable) ([]byte, error) {
	if t == nil {
		t = RetentionTable{}
	}
	return json.Marshal(retentionDocument{Atom: t})
}

// UnmarshalRetention decodes a persisted document. An empty input yields an
// empty table.
func UnmarshalRetention(data []byte) (RetentionTable, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return RetentionTable{}, nil
	}
	var doc retentionDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode retention document: %w", err)
	}
	if doc.Atom == nil {
		doc.Atom = RetentionTable{}
	}
	return doc.Atom, nil
}
