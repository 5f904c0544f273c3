package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/odvcencio/ssphys/pkg/object"
	"github.com/odvcencio/ssphys/pkg/physfile"
	"github.com/odvcencio/ssphys/pkg/record"
	"github.com/odvcencio/ssphys/pkg/vss"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Summarize a physical file: layout, size, fingerprint and record kinds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, release := sessionOptions(args[0], true)
			defer release()

			s, err := vss.Open(args[0], opts)
			if err != nil {
				return err
			}
			defer s.Close()

			src := s.Source()
			sum, err := physfile.Fingerprint(src)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "File:     %s\n", args[0])
			fmt.Fprintf(out, "Layout:   %s\n", s.Layout())
			fmt.Fprintf(out, "Size:     %s (%s bytes)\n", humanize.Bytes(uint64(src.Size())), humanize.Comma(src.Size()))
			fmt.Fprintf(out, "BLAKE2b:  %s\n", sum)

			if s.Layout() == vss.History {
				if item, err := s.Item(); err == nil {
					fmt.Fprintf(out, "Item:     %s %q, latest %s, %d action(s)\n",
						item.TypeName(), item.Name.FullName(opts.Names), item.LatestExt, item.NumberOfActions)
				}
			}

			counts := make(map[record.Kind]int)
			scanErr := s.Each(func(o object.Object) error {
				counts[o.Kind()]++
				return nil
			})
			fmt.Fprintf(out, "Records:  %s\n", humanize.Comma(int64(s.Records())))
			for _, k := range append(record.Kinds(), record.Unknown) {
				if n := counts[k]; n > 0 {
					fmt.Fprintf(out, "  %-15s %s\n", k, humanize.Comma(int64(n)))
				}
			}
			return scanErr
		},
	}
}
