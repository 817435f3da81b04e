package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Quadrocube/symtseries/sax"
)

func newMindistCommand() *cobra.Command {
	var (
		cardinality int
		samples     int
	)

	command := &cobra.Command{
		Use:   "mindist A B",
		Short: "Lower-bound distance between two SAX strings",
		Long: `Mindist prints the lower-bounding distance between two SAX strings,
together with its above/below decomposition.

Plain strings carry no sample count, so the distance scale is unknown and
the result is NaN. Pass --samples with the window size the words came from
to get a finite distance.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := sax.ParseWord(args[0], cardinality)
			if err != nil {
				return fmt.Errorf("word %q: %w", args[0], err)
			}
			b, err := sax.ParseWord(args[1], cardinality)
			if err != nil {
				return fmt.Errorf("word %q: %w", args[1], err)
			}
			if samples > 0 {
				if a, err = a.WithSampleCount(samples); err != nil {
					return err
				}
			}

			dist, above, below := sax.MinDistBounds(a, b)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "mindist: %g\n", dist)
			fmt.Fprintf(out, "above:   %g\n", above)
			fmt.Fprintf(out, "below:   %g\n", below)

			return nil
		},
	}
	command.Flags().IntVarP(&cardinality, "cardinality", "c", 0, "alphabet cardinality")
	command.Flags().IntVarP(&samples, "samples", "n", 0, "sample count behind each word")
	_ = command.MarkFlagRequired("cardinality")

	return command
}
