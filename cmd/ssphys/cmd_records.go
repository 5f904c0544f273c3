package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odvcencio/ssphys/pkg/physfile"
	"github.com/odvcencio/ssphys/pkg/record"
	"github.com/odvcencio/ssphys/pkg/vss"
)

func newRecordsCmd() *cobra.Command {
	var badOnly bool

	cmd := &cobra.Command{
		Use:   "records <file>",
		Short: "List raw record headers with their checksum status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := physfile.Open(args[0])
			if err != nil {
				return err
			}
			defer src.Close()
			layout, err := vss.Recognize(src)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			bad := 0
			sc := record.NewScanner(src, layout.Start())
			for sc.Next() {
				rec := sc.Record()
				if !rec.ChecksumOK() {
					bad++
				} else if badOnly {
					continue
				}
				fmt.Fprintln(out, rec)
			}
			if err := sc.Err(); err != nil {
				return fmt.Errorf("records: %w", err)
			}
			if bad > 0 {
				return fmt.Errorf("records: %d checksum mismatch(es)", bad)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&badOnly, "bad", false, "only list records whose checksum does not match")
	return cmd
}
