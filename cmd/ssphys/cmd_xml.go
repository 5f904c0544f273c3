package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/odvcencio/ssphys/pkg/vss"
)

func newXMLCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "xml <file>",
		Short: "Export a physical file as an XML document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, release := sessionOptions(args[0], true)
			defer release()
			indent := settings().XMLIndent

			if output == "" {
				return vss.ExportFile(args[0], cmd.OutOrStdout(), indent, opts)
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("xml: %w", err)
			}
			bw := bufio.NewWriter(f)
			err = vss.ExportFile(args[0], bw, indent, opts)
			if flushErr := bw.Flush(); err == nil {
				err = flushErr
			}
			if closeErr := f.Close(); err == nil {
				err = closeErr
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the document to this file instead of stdout")
	return cmd
}
