package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/kimocks-netizen/docproc-client/internal/backend"
	"github.com/kimocks-netizen/docproc-client/internal/validate"
	"github.com/kimocks-netizen/docproc-client/pkg/models"
)

func newUploadCommand() *cobra.Command {
	var (
		firstName string
		lastName  string
		dob       string
		method    string
		watchJob  bool
	)

	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a document for processing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("reading file: %w", err)
			}

			form := validate.UploadForm{
				FirstName:        firstName,
				LastName:         lastName,
				DOB:              dob,
				ProcessingMethod: method,
				FileName:         filepath.Base(path),
				FileSize:         info.Size(),
			}
			if fieldErrors := validate.Check(form, time.Now()); len(fieldErrors) > 0 {
				for field, msg := range fieldErrors {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", field, msg)
				}
				return fmt.Errorf("validation failed")
			}

			client, cfg, err := newClient()
			if err != nil {
				return err
			}

			file, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("opening file: %w", err)
			}
			defer file.Close()

			resp, err := client.Upload(cmd.Context(), backend.UploadRequest{
				FileName:         form.FileName,
				File:             file,
				FirstName:        firstName,
				LastName:         lastName,
				DOB:              dob,
				ProcessingMethod: method,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Upload accepted. Job ID: %s\n", resp.JobID)
			if resp.Message != "" {
				fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
			}

			if watchJob {
				return watchUntilDone(cmd, client, resp.JobID, cfg.Poll.Interval)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&firstName, "first-name", "", "first name (required)")
	cmd.Flags().StringVar(&lastName, "last-name", "", "last name (required)")
	cmd.Flags().StringVar(&dob, "dob", "", "date of birth, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&method, "method", models.MethodStandard, "processing method: standard or ai")
	cmd.Flags().BoolVar(&watchJob, "watch", false, "poll the job until it finishes")

	return cmd
}
