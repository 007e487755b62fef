package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fintrail-dev/fintrail/internal/config"
)

func newInitCommand(a *app) *cobra.Command {
	var serverURL string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the initial fintrail configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default(serverURL)
			path := filepath.Join(a.dataDir, config.FileName)
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&serverURL, "server", "", "API server base URL (required)")
	_ = cmd.MarkFlagRequired("server")

	return cmd
}
