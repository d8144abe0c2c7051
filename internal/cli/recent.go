package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lambdalog/lambdalog/internal/store"
)

// NewRecentCommand creates the recent command.
func NewRecentCommand(opts *RootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List the most recently posted entries",
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

			entries, err := s.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if opts.Format == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no entries yet")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n",
					e.PostedAt.Format("2006-01-02"), e.Slug, e.Title)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 5, "number of entries to show")
	return cmd
}
