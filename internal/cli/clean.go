package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove stored credentials and cached tokens",
		Long: `Removes the configuration file (university credentials, calendar
choice) and the cached Google OAuth token. Calendar events created by
campsched are not touched; use 'campsched delete' for those.`,
		RunE: runClean,
	}
}

func runClean(cmd *cobra.Command, args []string) error {
	mgr, err := configManager()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !confirmClean(cmd.InOrStdin(), out) {
		fmt.Fprintln(out, "Clean cancelled.")
		return nil
	}

	removed, err := mgr.Clean()
	if err != nil {
		return err
	}
	if len(removed) == 0 {
		fmt.Fprintln(out, "Nothing to remove.")
		return nil
	}
	for _, path := range removed {
		fmt.Fprintf(out, "Removed %s\n", path)
	}
	return nil
}

func confirmClean(in io.Reader, out io.Writer) bool {
	if flagYes {
		return true
	}
	return confirm(in, out, "Remove stored credentials and the cached Google token?")
}
