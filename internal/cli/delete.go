package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newDeleteCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <job-id>",
		Short: "Delete a processing job and its results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobID := args[0]

			if !yes {
				fmt.Fprintf(cmd.OutOrStdout(), "Delete job %s? This cannot be undone. [y/N]: ", jobID)
				reader := bufio.NewReader(cmd.InOrStdin())
				answer, _ := reader.ReadString('\n')
				answer = strings.ToLower(strings.TrimSpace(answer))
				if answer != "y" && answer != "yes" {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}

			client, _, err := newClient()
			if err != nil {
				return err
			}

			if err := client.DeleteJob(cmd.Context(), jobID); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted job %s\n", jobID)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}
