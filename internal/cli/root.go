// Package cli implements the docproc command-line client.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kimocks-netizen/docproc-client/internal/backend"
	"github.com/kimocks-netizen/docproc-client/internal/config"
	"github.com/kimocks-netizen/docproc-client/internal/storage"
)

// NewRootCommand builds the docproc command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "docproc",
		Short: "Client for the document-processing backend",
		Long: "docproc uploads documents for text extraction, tracks processing jobs,\n" +
			"and browses previously processed results.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newUploadCommand(),
		newStatusCommand(),
		newListCommand(),
		newDownloadCommand(),
		newDeleteCommand(),
		newCompareCommand(),
		newReportCommand(),
		newHealthCommand(),
	)

	return root
}

// newClient loads configuration and builds the backend client. The CLI has
// no serving hostname, so base-URL resolution follows the local rules.
func newClient() (backend.Client, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	baseURL := cfg.Backend.ResolveBaseURL("")
	return backend.NewHTTPClient(baseURL, cfg.Backend.Timeout), cfg, nil
}

// newStorageClient builds the object-storage client. Storage is opt-in; the
// download command refuses to run without it configured.
func newStorageClient() (*storage.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if !cfg.Storage.Enabled {
		return nil, fmt.Errorf("storage downloads are not enabled; set DOCPROC_STORAGE_ENABLED")
	}
	return storage.NewClient(cfg.Storage.URL, cfg.Storage.Key, cfg.Storage.Bucket, cfg.Backend.Timeout), nil
}
