package engine

import (
	"fmt"
	"math"
	"strings"
)

// Strategy selects the execution path for a run. The choice is a caller
// configuration decision, never inferred from input inspection: ReEncode
// trades speed for frame accuracy and tolerance of mismatched inputs;
// StreamCopy trades frame accuracy for losslessness and speed.
type Strategy string

const (
	StrategyReEncode   Strategy = "reencode"
	StrategyStreamCopy Strategy = "streamcopy"
)

// ParseStrategy accepts the strategy names used on the command line.
func ParseStrategy(value string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "reencode", "re-encode", "encode":
		return StrategyReEncode, nil
	case "streamcopy", "stream-copy", "copy":
		return StrategyStreamCopy, nil
	default:
		return "", fmt.Errorf("unknown strategy %q (want reencode or streamcopy)", value)
	}
}

// Plan is the ordered segment list to concatenate plus the strategy that
// will do it. Order is always Intro, Main, Outro with absent roles omitted.
type Plan struct {
	Strategy Strategy
	Segments []*Handle
}

// Main returns the main segment handle.
func (p *Plan) Main() *Handle {
	for _, h := range p.Segments {
		if h.Segment.Role == RoleMain {
			return h
		}
	}
	return nil
}

// buildPlan orders the loaded handles canonically and, for stream copy,
// compares the probed stream parameters across segments. The comparison is
// shallow (codec, resolution, frame rate from container metadata); subtler
// mismatches are caught when the concat demuxer rejects the streams.
func buildPlan(strategy Strategy, handles map[Role]*Handle) (*Plan, error) {
	plan := &Plan{Strategy: strategy}
	for _, role := range roleOrder {
		if h, ok := handles[role]; ok {
			plan.Segments = append(plan.Segments, h)
		}
	}
	if strategy == StrategyStreamCopy && len(plan.Segments) > 1 {
		if err := checkStreamCompat(plan.Segments); err != nil {
			return nil, err
		}
	}
	return plan, nil
}

// frameRateTolerance absorbs rounding differences in ffprobe's rational
// frame rates (e.g. 29.97 vs 30000/1001).
const frameRateTolerance = 0.01

func checkStreamCompat(segments []*Handle) error {
	first := segments[0]
	for _, other := range segments[1:] {
		if mismatch := compareHandles(first, other); mismatch != nil {
			return mismatch
		}
	}
	return nil
}

func compareHandles(a, b *Handle) *IncompatibleStreamsError {
	if a.VideoCodec != b.VideoCodec {
		return newIncompat("video codec", a, a.VideoCodec, b, b.VideoCodec)
	}
	if a.Width != b.Width || a.Height != b.Height {
		return newIncompat("resolution",
			a, fmt.Sprintf("%dx%d", a.Width, a.Height),
			b, fmt.Sprintf("%dx%d", b.Width, b.Height))
	}
	if math.Abs(a.FrameRate-b.FrameRate) > frameRateTolerance {
		return newIncompat("frame rate",
			a, fmt.Sprintf("%.3f fps", a.FrameRate),
			b, fmt.Sprintf("%.3f fps", b.FrameRate))
	}
	if a.AudioCodec != b.AudioCodec {
		return newIncompat("audio codec", a, a.AudioCodec, b, b.AudioCodec)
	}
	return nil
}

func newIncompat(field string, a *Handle, aValue string, b *Handle, bValue string) *IncompatibleStreamsError {
	return &IncompatibleStreamsError{
		Field:       field,
		FirstPath:   a.Segment.Path,
		FirstValue:  aValue,
		SecondPath:  b.Segment.Path,
		SecondValue: bValue,
	}
}
