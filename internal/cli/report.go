package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/kimocks-netizen/docproc-client/internal/report"
)

func newReportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print an analytics summary of all processed documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newClient()
			if err != nil {
				return err
			}

			jobs, err := client.ListResults(cmd.Context())
			if err != nil {
				return err
			}

			summary := report.Build(jobs, time.Now())
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "Document Processing Analytics Report")
			fmt.Fprintf(out, "Generated on %s\n\n", summary.GeneratedAt.Format("Jan 2, 2006 15:04"))
			fmt.Fprintf(out, "Total documents:     %d\n", summary.TotalJobs)
			fmt.Fprintf(out, "AI extraction:       %d (%s%%)\n", summary.AIJobs, report.FormatPercent(summary.AIPercentage))
			fmt.Fprintf(out, "Standard extraction: %d (%s%%)\n", summary.StandardJobs, report.FormatPercent(summary.StandardPercentage))
			fmt.Fprintf(out, "Most used method:    %s\n", summary.MostUsedMethod)

			if len(summary.StatusCounts) > 0 {
				fmt.Fprintln(out, "\nStatus distribution:")
				statuses := make([]string, 0, len(summary.StatusCounts))
				for status := range summary.StatusCounts {
					statuses = append(statuses, status)
				}
				sort.Strings(statuses)
				for _, status := range statuses {
					fmt.Fprintf(out, "  %-12s %d\n", status, summary.StatusCounts[status])
				}
			}

			return nil
		},
	}
}
