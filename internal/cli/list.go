package cli

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/kimocks-netizen/docproc-client/internal/listing"
)

func newListCommand() *cobra.Command {
	var (
		method string
		search string
		sort   string
		page   int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List processed documents",
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

			pageJobs, meta := listing.Apply(jobs, listing.Query{
				Method:   method,
				Search:   search,
				Sort:     sort,
				Page:     page,
				PageSize: listing.DefaultPageSize,
			})

			if len(pageJobs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No documents found.")
				return nil
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Job ID", "File", "Full Name", "Uploaded", "Method", "Status"})
			for _, job := range pageJobs {
				table.Append([]string{
					job.JobID,
					job.FileName,
					job.FullName,
					job.CreatedAt.Format("2006-01-02 15:04"),
					job.ProcessingMethod,
					job.Status,
				})
			}
			table.Render()

			fmt.Fprintf(cmd.OutOrStdout(), "Page %d of %d (%d documents)\n",
				meta.Page, meta.TotalPages, meta.Total)
			return nil
		},
	}

	cmd.Flags().StringVar(&method, "method", listing.MethodAll, "filter by processing method: all, standard or ai")
	cmd.Flags().StringVar(&search, "search", "", "search file or full names")
	cmd.Flags().StringVar(&sort, "sort", listing.SortDesc, "sort by upload time: asc or desc")
	cmd.Flags().IntVar(&page, "page", 1, "page number")

	return cmd
}
