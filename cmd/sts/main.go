// Command sts encodes time series into SAX words and measures the
// lower-bounding distance between them.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	command := &cobra.Command{
		Use:          "sts",
		Short:        "Symbolic aggregate approximation for time series",
		SilenceUsage: true,
	}
	command.AddCommand(newEncodeCommand())
	command.AddCommand(newMindistCommand())
	command.AddCommand(newRepackCommand())
	command.AddCommand(newVersionCommand())

	return command
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
