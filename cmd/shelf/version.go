// Version command for the shelf CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.flagJSON {
				return printJSON(a.out, map[string]string{"version": version})
			}
			_, err := fmt.Fprintf(a.out, "shelf %s\n", version)
			return err
		},
	}
}
