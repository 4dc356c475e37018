package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mpuigdom/campsched/internal/gcal"
	"github.com/mpuigdom/campsched/internal/schedule"
)

// printPlan writes the operation counts of a plan.
func printPlan(w io.Writer, plan *schedule.Plan) {
	fmt.Fprintln(w, "Sync plan:")
	fmt.Fprintf(w, "  create: %d new events\n", len(plan.Create))
	fmt.Fprintf(w, "  update: %d existing events\n", len(plan.Update))
	fmt.Fprintf(w, "  delete: %d orphaned events\n", len(plan.Delete))
}

// printResults summarizes batch execution, listing each failed operation.
// It returns the number of failures.
func printResults(w io.Writer, results []gcal.OpResult) int {
	failed := 0
	for _, res := range results {
		if res.Failed() {
			failed++
			label := res.Summary
			if label == "" {
				label = res.EventID
			}
			fmt.Fprintf(w, "  FAILED %s %s: %v\n", res.Kind, label, res.Err)
		}
	}

	if failed == 0 {
		fmt.Fprintf(w, "Done: %d operations applied.\n", len(results))
	} else {
		fmt.Fprintf(w, "Done with errors: %d of %d operations failed.\n", failed, len(results))
	}
	return failed
}

// confirm asks for a yes/no answer on in/out. Anything but y/yes declines.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// confirmPlan shows the plan and gates execution on user approval, unless
// --yes was given. A declined plan is a no-op, not an error.
func confirmPlan(in io.Reader, out io.Writer, plan *schedule.Plan) bool {
	printPlan(out, plan)
	if flagYes {
		return true
	}
	return confirm(in, out, "Proceed with these changes?")
}
