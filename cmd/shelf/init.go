// Init command for the shelf CLI.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration and catalog database",
		Long: `Init writes a default config.yaml to the configuration directory and
creates the catalog database in the data directory. Running it again is safe;
existing books are kept. The documents already stored in the database are
listed by key.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			keys, err := a.backend.Keys()
			if err != nil {
				return sysError(err)
			}
			if keys == nil {
				keys = []string{}
			}
			if a.flagJSON {
				return printJSON(a.out, map[string]any{
					"database": a.backend.Path(),
					"books":    s.Len(),
					"keys":     keys,
				})
			}
			if _, err = fmt.Fprintf(a.out, "Catalog ready at %s (%d book%s)\n", a.backend.Path(), s.Len(), plural(s.Len())); err != nil {
				return err
			}
			if len(keys) > 0 {
				_, err = fmt.Fprintf(a.out, "Stored documents: %s\n", strings.Join(keys, ", "))
			}
			return err
		},
	}
}
