package engine

import "time"

// Role identifies a segment's position in the assembled output. Segments are
// always assembled Intro, Main, Outro; absent roles are omitted, never
// reordered or defaulted.
type Role string

const (
	RoleIntro Role = "intro"
	RoleMain  Role = "main"
	RoleOutro Role = "outro"
)

// roleOrder is the canonical assembly order.
var roleOrder = []Role{RoleIntro, RoleMain, RoleOutro}

// Segment describes one media input to an assembly: a path, an optional trim
// interval, and its role. Exactly one Main segment per assembly; Intro and
// Outro are optional and used whole. Segments are immutable value objects.
type Segment struct {
	Path string
	Trim *Interval
	Role Role
}

// Handle is an opened, probed reference to a segment. Probing is eager: a
// handle exists only after duration, frame rate, and stream presence have
// been read from the container, so a broken file cannot pass silently into
// the assembly stage. Cutting and concatenation shell out to ffmpeg, so a
// handle owns no OS resources beyond the file path; the run's temporary
// artifacts are owned by the cleanup coordinator instead.
type Handle struct {
	Segment    Segment
	Duration   time.Duration
	FrameRate  float64
	Width      int
	Height     int
	VideoCodec string
	AudioCodec string
}
