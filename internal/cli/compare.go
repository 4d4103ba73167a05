package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kimocks-netizen/docproc-client/pkg/models"
)

func newCompareCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <job-id>",
		Short: "Compare standard raw text against AI-extracted data for a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newClient()
			if err != nil {
				return err
			}

			result, err := client.GetResult(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "=== Standard Extraction ===")
			if result.RawText != "" {
				fmt.Fprintln(out, result.RawText)
			} else {
				fmt.Fprintln(out, "No text extracted")
			}

			fmt.Fprintln(out, "\n=== AI Extraction ===")
			switch {
			case result.ProcessingMethod != models.MethodAI:
				fmt.Fprintln(out, "Not applicable: this document was processed with standard extraction.")
			case result.AIExtractedData.IsEmpty():
				fmt.Fprintln(out, "No AI data available")
			default:
				pretty, err := json.MarshalIndent(result.AIExtractedData, "", "  ")
				if err != nil {
					return fmt.Errorf("encoding AI data: %w", err)
				}
				fmt.Fprintln(out, string(pretty))
			}

			return nil
		},
	}
}
