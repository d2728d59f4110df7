package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/kavan-vyas/epe-video-editor/db"
	"github.com/kavan-vyas/epe-video-editor/pkg/timeutil"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent assembly runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.Open()
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer database.Close()

		runs, err := db.ListRuns(database, flagHistoryLimit)
		if err != nil {
			return fmt.Errorf("list runs: %w", err)
		}
		if len(runs) == 0 {
			fmt.Println("No runs recorded yet.")
			return nil
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleRounded)
		t.AppendHeader(table.Row{"#", "When", "Recording", "Range", "Strategy", "Output", "Took", "Status"})
		for _, run := range runs {
			took := "-"
			if run.ElapsedMS > 0 {
				took = (time.Duration(run.ElapsedMS) * time.Millisecond).Round(time.Second).String()
			}
			status := run.Status
			if run.Error != "" {
				status = fmt.Sprintf("%s: %s", run.Status, run.Error)
			}
			t.AppendRow(table.Row{
				run.ID,
				run.CreatedAt.Local().Format("2006-01-02 15:04"),
				filepath.Base(run.Recording),
				fmt.Sprintf("%s - %s", timeutil.FormatSeconds(run.StartSeconds), timeutil.FormatSeconds(run.EndSeconds)),
				run.Strategy,
				filepath.Base(run.OutputPath),
				took,
				status,
			})
		}
		t.Render()
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "number of runs to show")
}
