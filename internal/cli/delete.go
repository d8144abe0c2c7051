package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lambdalog/lambdalog/internal/store"
)

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [slug]",
		Short: "Delete an entry by slug",
		Args:  cobra.ExactArgs(1),
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

			slug := args[0]
			if err := s.DeleteEntry(cmd.Context(), slug); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return fmt.Errorf("no entry with slug %q", slug)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", slug)
			return nil
		},
	}
}
