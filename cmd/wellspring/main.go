package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "wellspring",
		Short: "A database connection factory toolkit",
		Long:  "Wellspring — turn declarative data-source configuration into live database connections.",
	}

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newDriversCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
