package engine

import (
	"fmt"
	"time"

	"github.com/kavan-vyas/epe-video-editor/pkg/timeutil"
)

// Interval is a half-open time range [Start, End) against a source recording.
// Structural validity (End > Start, Start >= 0) is checked at construction;
// bounds against the source duration are checked at trim time, once the
// source has been probed.
type Interval struct {
	Start time.Duration
	End   time.Duration
}

// NewInterval builds a structurally valid interval.
func NewInterval(start, end time.Duration) (Interval, error) {
	iv := Interval{Start: start, End: end}
	if start < 0 {
		return Interval{}, &InvalidIntervalError{Interval: iv, Reason: "start is negative"}
	}
	if end <= start {
		return Interval{}, &InvalidIntervalError{Interval: iv, Reason: "end must be after start"}
	}
	return iv, nil
}

// ParseInterval parses operator-supplied start and end timestamps
// (HH:MM:SS, MM:SS, or raw seconds).
func ParseInterval(startStr, endStr string) (Interval, error) {
	start, err := timeutil.Parse(startStr)
	if err != nil {
		return Interval{}, &InvalidIntervalError{Reason: fmt.Sprintf("start: %v", err)}
	}
	end, err := timeutil.Parse(endStr)
	if err != nil {
		return Interval{}, &InvalidIntervalError{Reason: fmt.Sprintf("end: %v", err)}
	}
	return NewInterval(start, end)
}

// Duration returns End - Start.
func (iv Interval) Duration() time.Duration {
	return iv.End - iv.Start
}

// IsZero reports whether the interval is unset.
func (iv Interval) IsZero() bool {
	return iv.Start == 0 && iv.End == 0
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%s, %s)", timeutil.Format(iv.Start), timeutil.Format(iv.End))
}

// validateWithin checks the interval against the probed source duration.
// End == source duration is valid (trims to end of file).
func (iv Interval) validateWithin(source time.Duration, sourcePath string) error {
	if err := iv.validate(); err != nil {
		return err
	}
	if iv.Start >= source {
		return &InvalidIntervalError{
			Interval: iv, SourcePath: sourcePath, SourceDuration: source,
			Reason: "start is at or beyond the end of the source",
		}
	}
	if iv.End > source {
		return &InvalidIntervalError{
			Interval: iv, SourcePath: sourcePath, SourceDuration: source,
			Reason: "end is beyond the end of the source",
		}
	}
	return nil
}

func (iv Interval) validate() error {
	if iv.Start < 0 {
		return &InvalidIntervalError{Interval: iv, Reason: "start is negative"}
	}
	if iv.End <= iv.Start {
		return &InvalidIntervalError{Interval: iv, Reason: "end must be after start"}
	}
	return nil
}
