package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Quadrocube/symtseries"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the library version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), symtseries.Version())
		},
	}
}
