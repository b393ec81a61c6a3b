package commands

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/atelier-theatral/sitectl/internal/buildlog"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Limit   int    `short:"n" default:"10" help:"Number of builds to show"`
	BuildID string `name:"build" help:"Show a single build by ID"`
}

func (h *HistoryCmd) Run(_ *Global, _ *CLI) error {
	if _, err := os.Stat(historyDBPath); err != nil {
		fmt.Println("No build history yet.")
		return nil
	}

	store, err := buildlog.Open(historyDBPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	ctx := context.Background()
	if h.BuildID != "" {
		rec, err := store.Get(ctx, h.BuildID)
		if err != nil {
			return fmt.Errorf("build %s: %w", h.BuildID, err)
		}
		printRecords([]buildlog.Record{*rec})
		for _, stage := range sortedStages(rec.StageDurations) {
			fmt.Printf("  %-10s %v\n", stage, rec.StageDurations[stage])
		}
		return nil
	}

	records, err := store.Recent(ctx, h.Limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No build history yet.")
		return nil
	}
	printRecords(records)
	return nil
}

func sortedStages(durations map[string]time.Duration) []string {
	stages := make([]string, 0, len(durations))
	for stage := range durations {
		stages = append(stages, stage)
	}
	sort.Strings(stages)
	return stages
}

func printRecords(records []buildlog.Record) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tBUILD\tOUTCOME\tDURATION\tPAGES\tASSETS\tSEAT MAPS")
	for _, rec := range records {
		fmt.Fprintf(w, "%s\t%.8s\t%s\t%v\t%d\t%d\t%d\n",
			rec.StartedAt.Format("2006-01-02 15:04:05"),
			rec.BuildID, rec.Outcome, rec.Duration, rec.Pages, rec.Assets, rec.SeatMaps)
	}
	_ = w.Flush()
}
