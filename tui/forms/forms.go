// Package forms provides huh-based form components for the interactive
// assembly flow.
package forms

import (
	"errors"
	"path/filepath"

	"github.com/charmbracelet/huh"

	"github.com/kavan-vyas/epe-video-editor/pkg/timeutil"
)

// NoIntro is the select value representing "no intro segment".
const NoIntro = ""

// NewRecordingForm creates a select form over the available recordings.
// Option labels are bare file names, values are full paths.
func NewRecordingForm(recordings []string, selected *string) *huh.Form {
	options := make([]huh.Option[string], len(recordings))
	for i, path := range recordings {
		options[i] = huh.NewOption(filepath.Base(path), path)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Recording").
				Description("Pick the main recording to cut from").
				Options(options...).
				Value(selected),
		),
	).WithTheme(Theme())
}

// NewIntervalForm creates input fields for the trim start and end times.
// Times accept H:MM:SS, MM:SS or plain seconds. The end field also checks
// that it falls after the start.
func NewIntervalForm(start, end *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Start time").
				Description("H:MM:SS, MM:SS or seconds").
				Placeholder("0:10:00").
				Validate(validateTime).
				Value(start),
			huh.NewInput().
				Title("End time").
				Description("Must be after the start time").
				Placeholder("1:25:00").
				Validate(func(s string) error {
					if err := validateTime(s); err != nil {
						return err
					}
					startDur, err := timeutil.Parse(*start)
					if err != nil {
						return nil
					}
					endDur, _ := timeutil.Parse(s)
					if endDur <= startDur {
						return errors.New("end must be after start")
					}
					return nil
				}).
				Value(end),
		),
	).WithTheme(Theme())
}

// NewIntroForm creates a select form over the available intros plus a
// "(none)" choice.
func NewIntroForm(intros []string, selected *string) *huh.Form {
	options := make([]huh.Option[string], 0, len(intros)+1)
	options = append(options, huh.NewOption("(none)", NoIntro))
	for _, path := range intros {
		options = append(options, huh.NewOption(filepath.Base(path), path))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Intro").
				Description("Clip to prepend before the recording").
				Options(options...).
				Value(selected),
		),
	).WithTheme(Theme())
}

// NewStrategyForm creates a select form for the assembly strategy.
func NewStrategyForm(selected *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Strategy").
				Description("How the segments are joined").
				Options(
					huh.NewOption("Re-encode (frame accurate, slower)", "reencode"),
					huh.NewOption("Stream copy (keyframe snapped, fast)", "streamcopy"),
				).
				Value(selected),
		),
	).WithTheme(Theme())
}

// NewOutputForm creates an input field for the output file name.
func NewOutputForm(name *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Output name").
				Description("Saved under the output directory; .mp4 is added if missing").
				Placeholder("final.mp4").
				Value(name),
		),
	).WithTheme(Theme())
}

func validateTime(s string) error {
	if s == "" {
		return errors.New("required")
	}
	_, err := timeutil.Parse(s)
	return err
}
