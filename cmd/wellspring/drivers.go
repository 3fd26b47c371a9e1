package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joestump/wellspring"
	_ "github.com/joestump/wellspring/sqlbridge"
)

func newDriversCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drivers",
		Short: "List URL schemes with a registered driver",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, scheme := range wellspring.Drivers() {
				fmt.Fprintln(cmd.OutOrStdout(), scheme)
			}
			return nil
		},
	}
}
