package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kavan-vyas/epe-video-editor/db"
	"github.com/kavan-vyas/epe-video-editor/deps"
	"github.com/kavan-vyas/epe-video-editor/engine"
	"github.com/kavan-vyas/epe-video-editor/library"
	"github.com/kavan-vyas/epe-video-editor/player"
	"github.com/kavan-vyas/epe-video-editor/tui"
	"github.com/kavan-vyas/epe-video-editor/tui/forms"
	"github.com/kavan-vyas/epe-video-editor/tui/styles"
)

var (
	flagRecording string
	flagStart     string
	flagEnd       string
	flagIntro     string
	flagOutro     string
	flagNoOutro   bool
	flagOutput    string
	flagStrategy  string
	flagPreset    string
	flagBitrate   string
	flagThreads   int
	flagPlay      bool
	flagPlain     bool
)

var assembleCmd = &cobra.Command{
	Use:   "assemble",
	Short: "Cut a recording and join it with intro and outro",
	Long: `Assemble cuts the chosen time range out of a recording and joins it
with an optional intro and outro into one output file.

Without flags an interactive flow walks through recording, time range,
intro, strategy and output name. Flags skip the corresponding prompt.`,
}

// runAssemble is assigned to assembleCmd.RunE in init rather than in the
// composite literal: it reaches flagChanged, which reads assembleCmd, and
// that reference chain would otherwise be an initialization cycle.
func runAssemble(cmd *cobra.Command, args []string) error {
	if err := deps.CheckFfmpeg(cfg.Tools.FFmpeg); err != nil {
		return err
	}
	if err := deps.CheckFfprobe(cfg.Tools.FFprobe); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	in, err := collectInput()
	if err != nil {
		return err
	}

	interval, err := engine.ParseInterval(in.start, in.end)
	if err != nil {
		return err
	}
	strategy, err := engine.ParseStrategy(in.strategy)
	if err != nil {
		return err
	}

	req := engine.Request{
		RecordingPath: in.recording,
		Interval:      interval,
		IntroPath:     in.intro,
		OutroPath:     in.outro,
		Strategy:      strategy,
		Output: engine.OutputSpec{
			Path:       filepath.Join(cfg.Paths.OutputDir, library.SanitizeOutputName(in.output)),
			VideoCodec: cfg.Export.VideoCodec,
			AudioCodec: cfg.Export.AudioCodec,
			Preset:     pick(flagPreset, cfg.Export.Preset),
			Bitrate:    pick(flagBitrate, cfg.Export.Bitrate),
			Threads:    pickInt(flagThreads, cfg.Export.Threads),
		},
	}

	eng := engine.New(engine.Options{
		FFmpeg:  cfg.Tools.FFmpeg,
		FFprobe: cfg.Tools.FFprobe,
		Logger:  log,
	})

	var result engine.Result
	if flagPlain {
		result, err = runPlain(ctx, eng, req)
	} else {
		result, err = runWithProgress(ctx, eng, req)
	}
	recordRun(req, result, err)
	if err != nil {
		var cancelledErr *engine.CancelledError
		if errors.As(err, &cancelledErr) {
			fmt.Println(styles.Warning.Render("Assembly cancelled."))
			return nil
		}
		return err
	}

	fmt.Println(styles.Success.Render("Done: " + result.OutputPath))
	fmt.Printf("Took %s.\n", result.Elapsed.Round(time.Second))
	if result.Snapped {
		fmt.Printf("Cut snapped to keyframes: %s instead of %s.\n",
			result.MainInterval, interval)
	}

	if flagPlay {
		proc, err := player.Open(cfg.Tools.Mpv, result.OutputPath)
		if err != nil {
			return err
		}
		return proc.Wait()
	}
	return nil
}

// assemblyInput is the fully resolved set of choices, from flags or prompts.
type assemblyInput struct {
	recording string
	start     string
	end       string
	intro     string
	outro     string
	strategy  string
	output    string
}

// collectInput fills the gaps the flags left via interactive forms. The
// outro never prompts: it defaults to the conventional mainoutro.mp4 when
// present and is controlled with --outro / --no-outro.
func collectInput() (assemblyInput, error) {
	in := assemblyInput{
		recording: flagRecording,
		start:     flagStart,
		end:       flagEnd,
		intro:     flagIntro,
		outro:     flagOutro,
		strategy:  flagStrategy,
		output:    flagOutput,
	}

	if in.outro == "" && !flagNoOutro {
		in.outro = library.DefaultOutro(cfg.Paths.IntroOutroDir)
		if in.outro == "" {
			log.Warn("no default outro found, assembling without one",
				"expected", filepath.Join(cfg.Paths.IntroOutroDir, library.DefaultOutroName))
		}
	}
	if flagNoOutro {
		in.outro = ""
	}

	if in.recording == "" {
		recordings, err := library.ListRecordings(cfg.Paths.RecordingsDir)
		if err != nil {
			return in, fmt.Errorf("list recordings in %s: %w", cfg.Paths.RecordingsDir, err)
		}
		if len(recordings) == 0 {
			return in, fmt.Errorf("no recordings found in %s", cfg.Paths.RecordingsDir)
		}
		if err := forms.NewRecordingForm(recordings, &in.recording).Run(); err != nil {
			return in, err
		}
	}

	if in.start == "" || in.end == "" {
		if err := forms.NewIntervalForm(&in.start, &in.end).Run(); err != nil {
			return in, err
		}
	}

	if in.intro == "" && !flagChanged("intro") {
		intros, err := library.ListIntros(cfg.Paths.IntroOutroDir)
		if err != nil && !os.IsNotExist(err) {
			return in, fmt.Errorf("list intros in %s: %w", cfg.Paths.IntroOutroDir, err)
		}
		if len(intros) > 0 {
			if err := forms.NewIntroForm(intros, &in.intro).Run(); err != nil {
				return in, err
			}
		}
	}

	if in.strategy == "" {
		if err := forms.NewStrategyForm(&in.strategy).Run(); err != nil {
			return in, err
		}
	}

	if in.output == "" {
		if err := forms.NewOutputForm(&in.output).Run(); err != nil {
			return in, err
		}
	}
	return in, nil
}

func flagChanged(name string) bool {
	return assembleCmd.Flags().Changed(name)
}

// runWithProgress runs the assembly behind the Bubble Tea progress screen.
func runWithProgress(ctx context.Context, eng *engine.Engine, req engine.Request) (engine.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	msgs := make(chan tea.Msg, 64)
	req.Progress = func(stage engine.Stage, fraction float64) {
		select {
		case msgs <- tui.ProgressMsg{Stage: stage, Fraction: fraction}:
		default:
			// Updates are advisory; drop rather than stall ffmpeg.
		}
	}

	go func() {
		result, err := eng.Assemble(ctx, req)
		if err != nil {
			msgs <- tui.ErrorMsg{Err: err}
			return
		}
		msgs <- tui.DoneMsg{Result: &result}
	}()

	program := tea.NewProgram(tui.NewProgress(msgs, cancel))
	final, err := program.Run()
	if err != nil {
		cancel()
		return engine.Result{}, err
	}
	model := final.(tui.ProgressModel)
	if model.Err() != nil {
		return engine.Result{}, model.Err()
	}
	return *model.Result(), nil
}

// runPlain runs the assembly with log-line progress, for non-TTY use.
func runPlain(ctx context.Context, eng *engine.Engine, req engine.Request) (engine.Result, error) {
	var lastStage engine.Stage
	var lastTenth int
	req.Progress = func(stage engine.Stage, fraction float64) {
		tenth := int(fraction * 10)
		if stage == lastStage && tenth == lastTenth {
			return
		}
		lastStage, lastTenth = stage, tenth
		log.Info("assembly progress", "stage", stage, "percent", int(fraction*100))
	}
	return eng.Assemble(ctx, req)
}

// recordRun stores the outcome in the history database. History is best
// effort; failures only log.
func recordRun(req engine.Request, result engine.Result, runErr error) {
	database, err := db.Open()
	if err != nil {
		log.Warn("history unavailable", "error", err)
		return
	}
	defer database.Close()

	run := db.Run{
		Recording:    req.RecordingPath,
		StartSeconds: req.Interval.Start.Seconds(),
		EndSeconds:   req.Interval.End.Seconds(),
		Intro:        req.IntroPath,
		Outro:        req.OutroPath,
		Strategy:     string(req.Strategy),
		OutputPath:   req.Output.Path,
		Status:       db.StatusSuccess,
	}
	switch {
	case runErr == nil:
		run.ElapsedMS = result.Elapsed.Milliseconds()
	default:
		run.Status = db.StatusFailed
		run.Error = runErr.Error()
		var cancelledErr *engine.CancelledError
		if errors.As(runErr, &cancelledErr) {
			run.Status = db.StatusCancelled
			run.Error = ""
		}
	}
	if _, err := db.InsertRun(database, run); err != nil {
		log.Warn("failed to record run", "error", err)
	}
}

func pick(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}

func pickInt(flag, fallback int) int {
	if flag > 0 {
		return flag
	}
	return fallback
}

func init() {
	assembleCmd.RunE = runAssemble
	assembleCmd.Flags().StringVar(&flagRecording, "recording", "", "path to the main recording")
	assembleCmd.Flags().StringVar(&flagStart, "start", "", "trim start (H:MM:SS, MM:SS or seconds)")
	assembleCmd.Flags().StringVar(&flagEnd, "end", "", "trim end (H:MM:SS, MM:SS or seconds)")
	assembleCmd.Flags().StringVar(&flagIntro, "intro", "", "path to the intro clip (empty disables the prompt)")
	assembleCmd.Flags().StringVar(&flagOutro, "outro", "", "path to the outro clip")
	assembleCmd.Flags().BoolVar(&flagNoOutro, "no-outro", false, "skip the default outro")
	assembleCmd.Flags().StringVar(&flagOutput, "output", "", "output file name")
	assembleCmd.Flags().StringVar(&flagStrategy, "strategy", "", "assembly strategy (reencode, streamcopy)")
	assembleCmd.Flags().StringVar(&flagPreset, "preset", "", "x264 preset for the reencode strategy")
	assembleCmd.Flags().StringVar(&flagBitrate, "bitrate", "", "video bitrate for the reencode strategy, e.g. 6M")
	assembleCmd.Flags().IntVar(&flagThreads, "threads", 0, "encoder thread count (0 = all cores)")
	assembleCmd.Flags().BoolVar(&flagPlay, "play", false, "open the result in mpv when done")
	assembleCmd.Flags().BoolVar(&flagPlain, "plain", false, "log progress instead of the TUI")
}
