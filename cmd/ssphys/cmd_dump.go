package main

import (
	"github.com/spf13/cobra"

	"github.com/odvcencio/ssphys/pkg/vss"
)

func newDumpCmd() *cobra.Command {
	var fields bool

	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print every record of a physical file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, release := sessionOptions(args[0], true)
			defer release()
			return vss.DumpFile(args[0], cmd.OutOrStdout(), fields, opts)
		},
	}
	cmd.Flags().BoolVarP(&fields, "fields", "f", false, "list every decoded field under each record")
	return cmd
}
