package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Quadrocube/symtseries/format"
	"github.com/Quadrocube/symtseries/snapshot"
)

func newRepackCommand() *cobra.Command {
	var (
		codecName string
		outPath   string
	)

	command := &cobra.Command{
		Use:   "repack [file]",
		Short: "Rewrite a snapshot with a different compression codec",
		Long: `Repack reads a snapshot from a file or stdin, replays it, and writes the
same state back with the chosen codec. Use -z none to turn a compressed
archive back into a plain readable script, or a codec name to shrink a
script that has grown past its transport budget.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			compression, err := format.ParseCompression(codecName)
			if err != nil {
				return err
			}

			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			snap, err := snapshot.Restore(in)
			if err != nil {
				return fmt.Errorf("read snapshot: %w", err)
			}

			if outPath == "" {
				return writeSnapshot(cmd.OutOrStdout(), snap, compression)
			}

			f, err := os.Create(outPath)
			if err != nil {
				return err
			}
			if err := writeSnapshot(f, snap, compression); err != nil {
				f.Close()
				return err
			}

			return f.Close()
		},
	}
	command.Flags().StringVarP(&codecName, "compress", "z", "none", "output codec: none, zstd, s2 or lz4")
	command.Flags().StringVarP(&outPath, "output", "o", "", "output file; stdout when omitted")

	return command
}

// writeSnapshot re-emits a replayed snapshot in deterministic key order,
// windows first, then words.
func writeSnapshot(dst io.Writer, snap *snapshot.Snapshot, compression format.CompressionType) error {
	sw, err := snapshot.NewWriter(dst, snapshot.WithCompression(compression))
	if err != nil {
		return err
	}

	for _, key := range sortedKeys(snap.Windows) {
		if err := sw.WriteWindow(key, snap.Windows[key]); err != nil {
			sw.Abort()
			return err
		}
	}
	for _, key := range sortedKeys(snap.Words) {
		if err := sw.WriteWord(key, snap.Words[key]); err != nil {
			sw.Abort()
			return err
		}
	}

	return sw.Close()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return keys
}
