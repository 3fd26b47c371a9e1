package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joestump/wellspring/internal/build"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "wellspring %s (%s on %s)\n", build.Version, build.Commit, build.Branch)
			return nil
		},
	}
}
