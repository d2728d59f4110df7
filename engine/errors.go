package engine

import (
	"fmt"
	"time"

	"github.com/kavan-vyas/epe-video-editor/pkg/timeutil"
)

// Stage identifies the pipeline phase an error occurred in.
type Stage string

const (
	StageLoad     Stage = "load"
	StageTrim     Stage = "trim"
	StageAssemble Stage = "assemble"
	StageExport   Stage = "export"
)

// InvalidIntervalError reports a trim interval that is malformed or outside
// the source bounds. It is returned before any cutting work begins.
type InvalidIntervalError struct {
	Interval       Interval
	SourcePath     string
	SourceDuration time.Duration
	Reason         string
}

func (e *InvalidIntervalError) Error() string {
	if e.SourcePath == "" {
		return fmt.Sprintf("invalid interval %s: %s", e.Interval, e.Reason)
	}
	return fmt.Sprintf("invalid interval %s for %s (duration %s): %s",
		e.Interval, e.SourcePath, timeutil.Format(e.SourceDuration), e.Reason)
}

// SegmentUnavailableError reports an input that does not exist, cannot be
// read, or has no usable streams. Path identifies the offending descriptor.
type SegmentUnavailableError struct {
	Path   string
	Role   Role
	Reason string
	Err    error
}

func (e *SegmentUnavailableError) Error() string {
	return fmt.Sprintf("%s segment unavailable: %s: %s", e.Role, e.Path, e.Reason)
}

func (e *SegmentUnavailableError) Unwrap() error { return e.Err }

// IncompatibleStreamsError reports a stream-copy concatenation attempted
// across segments with mismatched stream parameters.
type IncompatibleStreamsError struct {
	Field       string
	FirstPath   string
	FirstValue  string
	SecondPath  string
	SecondValue string
}

func (e *IncompatibleStreamsError) Error() string {
	return fmt.Sprintf("stream copy requires matching %s: %s has %s but %s has %s (use the re-encode strategy for mismatched inputs)",
		e.Field, e.FirstPath, e.FirstValue, e.SecondPath, e.SecondValue)
}

// EncodeFailureError reports an ffmpeg invocation that terminated abnormally.
// Detail carries the tail of the underlying diagnostic output verbatim.
type EncodeFailureError struct {
	Stage  Stage
	Err    error
	Detail string
}

func (e *EncodeFailureError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s failed: %v: %s", e.Stage, e.Err, e.Detail)
}

func (e *EncodeFailureError) Unwrap() error { return e.Err }

// CancelledError reports a run interrupted before completion.
type CancelledError struct {
	Stage Stage
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("assembly cancelled during %s", e.Stage)
}
