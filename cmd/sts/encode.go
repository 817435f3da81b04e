package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/Quadrocube/symtseries/sax"
)

func newEncodeCommand() *cobra.Command {
	var (
		windowSize  int
		wordLen     int
		cardinality int
	)

	command := &cobra.Command{
		Use:   "encode [file]",
		Short: "Encode samples into SAX words",
		Long: `Encode reads whitespace- or comma-separated samples from a file or stdin.

Without -n the whole input is encoded into a single word, so the sample
count must be divisible by the word length. With -n a sliding window of
that size moves over the input and every produced word is printed on its
own line.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := readSamples(cmd, args)
			if err != nil {
				return err
			}
			if len(values) == 0 {
				return fmt.Errorf("no samples to encode")
			}

			out := cmd.OutOrStdout()
			if windowSize > 0 {
				wn, err := sax.NewWindow(windowSize, wordLen, cardinality)
				if err != nil {
					return err
				}
				for _, v := range values {
					word, err := wn.Append(v)
					if err != nil {
						return err
					}
					if word != nil {
						fmt.Fprintln(out, word.String())
					}
				}

				return nil
			}

			word, err := sax.NewWordFromValues(values, wordLen, cardinality)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, word.String())

			return nil
		},
	}
	command.Flags().IntVarP(&wordLen, "word-len", "w", 0, "word length in symbols")
	command.Flags().IntVarP(&cardinality, "cardinality", "c", 0, "alphabet cardinality")
	command.Flags().IntVarP(&windowSize, "window", "n", 0, "window size; slide over the input instead of one-shot encoding")
	_ = command.MarkFlagRequired("word-len")
	_ = command.MarkFlagRequired("cardinality")

	return command
}

func readSamples(cmd *cobra.Command, args []string) ([]float64, error) {
	var r io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	fields := strings.FieldsFunc(string(data), func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})
	values := make([]float64, 0, len(fields))
	for _, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("bad sample %q: %w", field, err)
		}
		values = append(values, v)
	}

	return values, nil
}
