package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mpuigdom/campsched/internal/schedule"
)

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete campsched-created events in a date range",
		Long: `Deletes every Google Calendar event campsched created inside the date
window. Events campsched does not own are never touched. Both dates are
required; there is no default window for deletion.`,
		RunE: runDelete,
	}

	cmd.Flags().StringVarP(&flagStart, "start-date", "s", "", "Start date in DD-MM-YYYY format (required)")
	cmd.Flags().StringVarP(&flagEnd, "end-date", "e", "", "End date in DD-MM-YYYY format (required)")
	cmd.MarkFlagRequired("start-date")
	cmd.MarkFlagRequired("end-date")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
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

	client, err := calendarClient(ctx, mgr, cfg)
	if err != nil {
		return err
	}

	// The snapshot window covers the full days at both ends.
	from := start
	to := end.Add(24*time.Hour - time.Second)

	existing, err := client.ListOwned(ctx, cfg.CalendarID, from, to)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No campsched events found in this date range. Nothing to do.")
		return nil
	}

	plan, err := schedule.BuildPlan(nil, existing, true)
	if err != nil {
		return err
	}

	if !confirmPlan(cmd.InOrStdin(), cmd.OutOrStdout(), plan) {
		fmt.Fprintln(cmd.OutOrStdout(), "Deletion cancelled.")
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
