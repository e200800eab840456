// Export command for the shelf CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/shelf/internal/export"
	"github.com/mesh-intelligence/shelf/internal/paths"
)

func newExportCmd(a *app) *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a backup of the whole catalog",
		Long: `Export writes every book, with all fields, to library-backup.json (or
library-backup.toml with --format toml). The file goes to --out, the
export_dir setting, or the current directory. Use --out - to write to stdout.`,
		Example: `  shelf export
  shelf export --format toml --out ~/Backups
  shelf export --out - > books.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			s, err := a.openStore()
			if err != nil {
				return err
			}
			books := s.Books()

			if out == "-" {
				if err := export.Write(a.out, books, f); err != nil {
					return sysError(err)
				}
				return nil
			}

			dir := out
			if dir == "" {
				dir = a.cfg.GetString(cfgKeyExportDir)
			}
			if dir == "" {
				dir = "."
			}
			if dir, err = paths.ExpandHome(dir); err != nil {
				return err
			}

			path, err := export.WriteFile(dir, books, f)
			if err != nil {
				return sysError(err)
			}
			a.logger.Info("catalog exported", zap.String("path", path), zap.Int("books", len(books)))

			if a.flagJSON {
				return printJSON(a.out, map[string]any{"path": path, "books": len(books), "format": f})
			}
			_, err = fmt.Fprintf(a.out, "Exported %d book%s to %s\n", len(books), plural(len(books)), path)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", export.FormatJSON, "json or toml")
	cmd.Flags().StringVar(&out, "out", "", `output directory, or "-" for stdout`)
	return cmd
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
