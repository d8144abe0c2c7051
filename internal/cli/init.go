package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lambdalog/lambdalog/internal/store"
)

// NewInitCommand creates the init command.
func NewInitCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create or migrate the blog database",
		Long:  "Opens the configured database, creating it and applying any pending schema migrations.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			s, err := store.Open(cfg.Database.Path)
			if err != nil {
				return err
			}
			defer s.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "database ready at %s\n", cfg.Database.Path)
			return nil
		},
	}
}
