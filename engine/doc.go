// Package engine assembles a final video from an optional intro, a trimmed
// slice of a source recording, and an optional outro, exporting a single
// encoded file.
//
// The engine supports two mutually exclusive execution strategies chosen by
// the caller per run. ReEncode decodes every segment, trims the main
// recording at frame accuracy, normalizes heterogeneous inputs through an
// ffmpeg filter graph, and re-encodes once. StreamCopy cuts the main
// recording at the nearest keyframe at or before the requested start and
// joins the compressed streams at the container level without decoding;
// it is lossless and fast, but the cut snaps to a keyframe and all segments
// must already share codec, resolution, and frame-rate parameters.
//
// One Engine invocation is one run: it owns its probed handles and temporary
// files exclusively and releases them on every exit path. Runs against the
// same destination path must not overlap; runs against distinct destinations
// share no mutable state.
package engine
