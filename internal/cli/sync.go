package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mpuigdom/campsched/internal/schedule"
)

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Synchronize your class schedule into Google Calendar",
		Long: `Scrapes the schedule for the date window, diffs it against the events
campsched created earlier, and applies the minimal set of creates,
updates, and deletes after confirmation.`,
		RunE: runSync,
	}

	cmd.Flags().StringVarP(&flagStart, "start-date", "s", "", "Start date in DD-MM-YYYY format (default today)")
	cmd.Flags().StringVarP(&flagEnd, "end-date", "e", "", "End date in DD-MM-YYYY format (default start + 14 days)")

	return cmd
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	mgr, cfg, err := loadConfig()
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	start, end, err := resolveWindow(flagStart, flagEnd, loc, timeNow())
	if err != nil {
		return err
	}

	// Authenticate before scraping so credential problems surface before
	// the slow browser session starts.
	client, err := calendarClient(ctx, mgr, cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Syncing from %s to %s\n", start.Format(dateFormat), end.Format(dateFormat))

	lectures, err := scrapeLectures(ctx, cfg, start, end)
	if err != nil {
		return err
	}
	if len(lectures) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No lectures found in this date range. Nothing to sync.")
		return nil
	}

	from, to, err := lectureSpan(lectures)
	if err != nil {
		return err
	}
	existing, err := client.ListOwned(ctx, cfg.CalendarID, from, to)
	if err != nil {
		return err
	}

	plan, err := schedule.BuildPlan(lectures, existing, false)
	if err != nil {
		return err
	}
	if plan.Empty() {
		fmt.Fprintln(cmd.OutOrStdout(), "Your calendar is already up to date. No changes needed.")
		return nil
	}

	if !confirmPlan(cmd.InOrStdin(), cmd.OutOrStdout(), plan) {
		fmt.Fprintln(cmd.OutOrStdout(), "Sync cancelled.")
		return nil
	}

	results, err := client.Execute(ctx, cfg.CalendarID, plan)
	if err != nil {
		return err
	}
	if failed := printResults(cmd.OutOrStdout(), results); failed > 0 {
		os.Exit(ExitError)
	}
	return nil
}
