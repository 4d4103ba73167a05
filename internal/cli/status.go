package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kimocks-netizen/docproc-client/internal/backend"
	"github.com/kimocks-netizen/docproc-client/internal/watch"
	"github.com/kimocks-netizen/docproc-client/pkg/models"
)

func newStatusCommand() *cobra.Command {
	var watchJob bool

	cmd := &cobra.Command{
		Use:   "status <job-id>",
		Short: "Show the status and results of a processing job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobID := args[0]

			client, cfg, err := newClient()
			if err != nil {
				return err
			}

			if watchJob {
				return watchUntilDone(cmd, client, jobID, cfg.Poll.Interval)
			}

			result, err := client.GetResult(cmd.Context(), jobID)
			if err != nil {
				return err
			}
			printResult(cmd, result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&watchJob, "watch", false, "poll until the job reaches a terminal status")

	return cmd
}

// watchUntilDone runs the polling loop, printing one line per observation
// and the full result once a terminal status arrives.
func watchUntilDone(cmd *cobra.Command, client backend.Client, jobID string, interval time.Duration) error {
	out := cmd.OutOrStdout()
	watcher := watch.New(client, interval)

	for update := range watcher.Watch(cmd.Context(), jobID) {
		switch {
		case update.NotFound:
			return fmt.Errorf("job not found: %s", jobID)
		case update.Err != nil:
			// A failed tick is transient; the loop keeps going.
			fmt.Fprintf(out, "poll failed: %v\n", update.Err)
		case update.Terminal:
			printResult(cmd, update.Result)
			if update.Result.Status == models.StatusFailed {
				return fmt.Errorf("processing failed")
			}
			return nil
		default:
			fmt.Fprintf(out, "processing... %d%%\n", update.Result.Progress)
		}
	}

	return cmd.Context().Err()
}

func printResult(cmd *cobra.Command, result *models.ProcessingResult) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Job:    %s\n", result.JobID)
	fmt.Fprintf(out, "Status: %s\n", result.Status)

	if result.Status != models.StatusCompleted {
		if result.Status == models.StatusFailed {
			fmt.Fprintln(out, "Processing failed. Please try uploading again.")
		}
		return
	}

	fmt.Fprintf(out, "Name:   %s\n", result.FullName)
	fmt.Fprintf(out, "Age:    %d\n", result.Age)
	fmt.Fprintf(out, "Method: %s\n", result.ProcessingMethod)

	if result.ProcessingMethod == models.MethodAI && !result.AIExtractedData.IsEmpty() {
		printAIData(cmd, result.AIExtractedData)
	}

	fmt.Fprintln(out, "\nRaw extracted text:")
	fmt.Fprintln(out, result.RawText)
}

func printAIData(cmd *cobra.Command, data *models.AIExtractedData) {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "\nAI extraction results:")
	if info := data.PersonalInfo; info != nil {
		if info.FullName != "" {
			fmt.Fprintf(out, "  Name:          %s\n", info.FullName)
		}
		if info.DateOfBirth != "" {
			fmt.Fprintf(out, "  Date of birth: %s\n", info.DateOfBirth)
		}
		if info.Age != 0 {
			fmt.Fprintf(out, "  Age:           %d\n", info.Age)
		}
	}
	if contact := data.ContactInfo; contact != nil {
		for _, email := range contact.Emails {
			fmt.Fprintf(out, "  Email:         %s\n", email)
		}
		for _, phone := range contact.PhoneNumbers {
			fmt.Fprintf(out, "  Phone:         %s\n", phone)
		}
	}
	for _, addr := range data.Addresses {
		fmt.Fprintf(out, "  Address:       %s\n", addr)
	}
	for _, id := range data.IdentificationNumbers {
		fmt.Fprintf(out, "  ID number:     %s\n", id)
	}
	for _, date := range data.KeyDates {
		fmt.Fprintf(out, "  Key date:      %s\n", date)
	}
	if data.Summary != "" {
		fmt.Fprintf(out, "  Summary:       %s\n", data.Summary)
	}
}
