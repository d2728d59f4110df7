package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// The re-encode strategy runs a single ffmpeg invocation: every segment is
// decoded, the main segment is sliced at frame accuracy with trim/atrim,
// every chain is normalized to the main segment's resolution and frame rate
// (and a common audio format), and the chains are joined with the concat
// filter and encoded once. Heterogeneous inputs are legal on this path.

const (
	concatSampleRate    = 48000
	concatChannelLayout = "stereo"
)

// buildReEncodeArgs constructs the full ffmpeg argument list for a re-encode
// assembly writing to tmpOut.
func buildReEncodeArgs(plan *Plan, trim Interval, spec OutputSpec, tmpOut string) []string {
	args := make([]string, 0, 24)
	for _, h := range plan.Segments {
		args = append(args, "-i", h.Segment.Path)
	}
	args = append(args,
		"-filter_complex", buildConcatFilter(plan.Segments, trim),
		"-map", "[outv]",
		"-map", "[outa]",
		"-c:v", spec.VideoCodec,
		"-c:a", spec.AudioCodec,
		"-preset", spec.Preset,
	)
	if spec.Bitrate != "" {
		args = append(args, "-b:v", spec.Bitrate)
	}
	args = append(args,
		"-threads", strconv.Itoa(spec.Threads),
		"-movflags", "+faststart",
		"-y", tmpOut,
	)
	return args
}

// buildConcatFilter builds the filter_complex string. The main segment's
// resolution and frame rate are the normalization target for every video
// chain; audio chains are resampled to a common rate and layout so the
// concat filter accepts them.
func buildConcatFilter(segments []*Handle, trim Interval) string {
	target := segments[0]
	for _, h := range segments {
		if h.Segment.Role == RoleMain {
			target = h
		}
	}

	var b strings.Builder
	for i, h := range segments {
		// Video chain: optional frame-accurate trim, then normalize
		// geometry and timing to the target.
		b.WriteString(fmt.Sprintf("[%d:v]", i))
		if h.Segment.Role == RoleMain && !trim.IsZero() {
			b.WriteString(fmt.Sprintf("trim=start=%.3f:end=%.3f,setpts=PTS-STARTPTS,",
				trim.Start.Seconds(), trim.End.Seconds()))
		}
		b.WriteString(fmt.Sprintf("scale=%d:%d,setsar=1,fps=%s[v%d];",
			target.Width, target.Height, formatFrameRate(target.FrameRate), i))

		// Audio chain.
		b.WriteString(fmt.Sprintf("[%d:a]", i))
		if h.Segment.Role == RoleMain && !trim.IsZero() {
			b.WriteString(fmt.Sprintf("atrim=start=%.3f:end=%.3f,asetpts=PTS-STARTPTS,",
				trim.Start.Seconds(), trim.End.Seconds()))
		}
		b.WriteString(fmt.Sprintf("aformat=sample_rates=%d:channel_layouts=%s[a%d];",
			concatSampleRate, concatChannelLayout, i))
	}

	for i := range segments {
		b.WriteString(fmt.Sprintf("[v%d][a%d]", i, i))
	}
	b.WriteString(fmt.Sprintf("concat=n=%d:v=1:a=1[outv][outa]", len(segments)))
	return b.String()
}

// formatFrameRate renders a frame rate for the fps filter without trailing
// zeros (25, 29.97, 59.94).
func formatFrameRate(fps float64) string {
	s := strconv.FormatFloat(fps, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
