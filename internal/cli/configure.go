package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mpuigdom/campsched/internal/config"
	"github.com/mpuigdom/campsched/internal/gcal"
)

func newConfigureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "configure",
		Short: "Run the interactive setup wizard",
		Long: `Walks through the initial setup: university credentials, the Google
OAuth consent flow, and picking the destination calendar. Credentials are
stored in the config directory with owner-only permissions.

Before running this you need a Google OAuth client secret file at the
path shown by the wizard; create one in the Google Cloud console with
the Calendar API enabled.`,
		RunE: runConfigure,
	}
}

func runConfigure(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	mgr, err := configManager()
	if err != nil {
		return err
	}

	cfg := &config.Config{Timezone: config.DefaultTimezone, BaseURL: config.DefaultBaseURL}
	if mgr.IsConfigured() {
		if existing, err := mgr.Load(); err == nil {
			cfg = existing
		}
	}

	fmt.Fprintf(out, "Configuring campsched in %s\n\n", mgr.Dir())

	reader := bufio.NewReader(cmd.InOrStdin())
	cfg.DNI, err = promptText(reader, out, "University login (DNI)", cfg.DNI)
	if err != nil {
		return err
	}
	cfg.Password, err = promptPassword(out, "University password")
	if err != nil {
		return err
	}

	if _, err := os.Stat(mgr.ClientSecretPath()); err != nil {
		return fmt.Errorf("missing Google OAuth client secret; place it at %s and re-run configure", mgr.ClientSecretPath())
	}

	fmt.Fprintln(out, "\nAuthorizing with Google Calendar...")
	ts, err := gcal.TokenSource(ctx, mgr.ClientSecretPath(), mgr.TokenPath())
	if err != nil {
		return err
	}
	client, err := gcal.NewClient(ctx, ts, cfg.Timezone)
	if err != nil {
		return err
	}

	cfg.CalendarID, err = pickCalendar(ctx, reader, out, client, cfg.CalendarID)
	if err != nil {
		return err
	}

	if err := mgr.Save(cfg); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nConfiguration saved to %s\n", mgr.ConfigPath())
	fmt.Fprintln(out, "You can now run 'campsched sync'.")
	return nil
}

// promptText reads one line, falling back to the default on empty input.
func promptText(reader *bufio.Reader, out io.Writer, label, current string) (string, error) {
	for {
		if current != "" {
			fmt.Fprintf(out, "%s [%s]: ", label, current)
		} else {
			fmt.Fprintf(out, "%s: ", label)
		}
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("reading input: %w", err)
		}
		answer := strings.TrimSpace(line)
		if answer != "" {
			return answer, nil
		}
		if current != "" {
			return current, nil
		}
	}
}

// promptPassword reads a password without echo when stdin is a terminal.
func promptPassword(out io.Writer, label string) (string, error) {
	fmt.Fprintf(out, "%s: ", label)
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return strings.TrimSpace(line), nil
	}

	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	pw := strings.TrimSpace(string(raw))
	if pw == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	return pw, nil
}

// pickCalendar lists the writable calendars and asks which one to sync
// into. Empty input keeps the current choice, or the primary calendar on
// first setup.
func pickCalendar(ctx context.Context, reader *bufio.Reader, out io.Writer, client *gcal.Client, current string) (string, error) {
	calendars, err := client.ListCalendars(ctx)
	if err != nil {
		return "", err
	}
	if len(calendars) == 0 {
		return "", fmt.Errorf("no writable calendars found in this Google account")
	}

	defaultIdx := 0
	fmt.Fprintln(out, "\nWritable calendars:")
	for i, cal := range calendars {
		marker := ""
		if cal.Primary {
			marker = " (primary)"
		}
		if cal.ID == current || (current == "" && cal.Primary) {
			defaultIdx = i
		}
		fmt.Fprintf(out, "  %d. %s%s\n", i+1, cal.Summary, marker)
	}

	for {
		fmt.Fprintf(out, "Sync into which calendar? [%d]: ", defaultIdx+1)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("reading input: %w", err)
		}
		answer := strings.TrimSpace(line)
		if answer == "" {
			return calendars[defaultIdx].ID, nil
		}
		n, err := strconv.Atoi(answer)
		if err != nil || n < 1 || n > len(calendars) {
			fmt.Fprintf(out, "Enter a number between 1 and %d.\n", len(calendars))
			continue
		}
		return calendars[n-1].ID, nil
	}
}
