package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"thenetwork-workers/internal/models"
	"thenetwork-workers/internal/planning/windows"

	"github.com/spf13/cobra"
)

var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "Print proposed meeting windows",
	Long: `windows prints the windows generate-time-windows would propose. With --block
flags the windows come from availability; without them the day-of-week
heuristic runs for the next ten days.`,
	RunE: runWindows,
}

func init() {
	windowsCmd.Flags().String("now", "", "reference time (RFC3339, default: current time)")
	windowsCmd.Flags().String("timezone", "America/Los_Angeles", "IANA timezone for scoring")
	windowsCmd.Flags().StringArray("block", nil, "availability block START/END in RFC3339 (repeatable)")
	windowsCmd.Flags().IntSlice("blackout-months", []int{5, 12}, "months whose weekdays get no heuristic windows")
	windowsCmd.Flags().Bool("json", false, "output windows as JSON")

	rootCmd.AddCommand(windowsCmd)
}

func runWindows(cmd *cobra.Command, _ []string) error {
	nowFlag, _ := cmd.Flags().GetString("now")
	timezone, _ := cmd.Flags().GetString("timezone")
	blockFlags, _ := cmd.Flags().GetStringArray("block")
	months, _ := cmd.Flags().GetIntSlice("blackout-months")
	asJSON, _ := cmd.Flags().GetBool("json")

	var at *time.Time
	if nowFlag != "" {
		t, err := time.Parse(time.RFC3339, nowFlag)
		if err != nil {
			return fmt.Errorf("--now: %w", err)
		}
		at = &t
	}
	now, err := windows.ReferenceTime(at, timezone, time.UTC, time.Now)
	if err != nil {
		return err
	}

	blocks, err := parseBlocks(blockFlags)
	if err != nil {
		return err
	}

	cal := windows.Calendar{}
	for _, m := range months {
		if m < 1 || m > 12 {
			return fmt.Errorf("--blackout-months: %d is not a month", m)
		}
		cal.BlackoutMonths = append(cal.BlackoutMonths, time.Month(m))
	}

	ws, mode := windows.Generate(blocks, now, cal)

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{"mode": mode, "windows": ws})
	}

	fmt.Fprintf(out, "mode: %s (%d windows)\n", mode, len(ws))
	for _, w := range ws {
		fmt.Fprintf(out, "%s  %s - %s  score %.1f\n",
			w.Start.Format("Mon Jan 2"), w.Start.Format("15:04"), w.End.Format("15:04"), w.Score)
	}
	return nil
}

func parseBlocks(raw []string) ([]models.AvailabilityBlock, error) {
	blocks := make([]models.AvailabilityBlock, 0, len(raw))
	for _, r := range raw {
		startStr, endStr, ok := strings.Cut(r, "/")
		if !ok {
			return nil, fmt.Errorf("--block %q: want START/END", r)
		}
		start, err := time.Parse(time.RFC3339, strings.TrimSpace(startStr))
		if err != nil {
			return nil, fmt.Errorf("--block %q: start: %w", r, err)
		}
		end, err := time.Parse(time.RFC3339, strings.TrimSpace(endStr))
		if err != nil {
			return nil, fmt.Errorf("--block %q: end: %w", r, err)
		}
		blocks = append(blocks, models.AvailabilityBlock{Start: start, End: end})
	}
	return blocks, nil
}
