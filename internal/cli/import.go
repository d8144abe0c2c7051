package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lambdalog/lambdalog/internal/importer"
	"github.com/lambdalog/lambdalog/internal/store"
)

// NewImportCommand creates the import command.
func NewImportCommand(opts *RootOptions) *cobra.Command {
	var failFast bool

	cmd := &cobra.Command{
		Use:   "import [dir]",
		Short: "Import entry files from a directory",
		Long: `Imports every *.html entry file under the directory. Files carry a
YAML front matter block (title, slug, date, tags, categories, series,
draft) between --- fences, followed by the pre-rendered HTML body.
Re-importing updates entries in place by slug.`,
		Args: cobra.ExactArgs(1),
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

			mode := importer.CollectAll
			if failFast {
				mode = importer.FailFast
			}

			result, errs := importer.New(s).ImportDir(cmd.Context(), args[0], mode)
			if result != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%d files, %d imported (%d drafts)\n",
					result.Files, result.Imported, result.Drafts)
			}
			if len(errs) > 0 {
				for _, e := range errs {
					fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", e)
				}
				return fmt.Errorf("%d file(s) failed to import", len(errs))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "stop at the first broken file")
	return cmd
}
