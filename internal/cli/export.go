package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mpuigdom/campsched/internal/export"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export your class schedule to a universal .ics file",
		Long: `Scrapes the schedule for the date window and writes it to an .ics
calendar file. No Google Calendar integration is needed.`,
		RunE: runExport,
	}

	cmd.Flags().StringVarP(&flagStart, "start-date", "s", "", "Start date in DD-MM-YYYY format (default today)")
	cmd.Flags().StringVarP(&flagEnd, "end-date", "e", "", "End date in DD-MM-YYYY format (default start + 14 days)")
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output file path (default schedule.ics in the config directory)")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
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

	output := flagOutput
	if output == "" {
		output = mgr.DefaultExportPath()
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exporting from %s to %s\n", start.Format(dateFormat), end.Format(dateFormat))

	lectures, err := scrapeLectures(ctx, cfg, start, end)
	if err != nil {
		return err
	}
	if len(lectures) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No lectures found in this date range. Nothing to export.")
		return nil
	}

	if err := export.WriteFile(output, lectures); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d lectures to %s\n", len(lectures), output)
	return nil
}
