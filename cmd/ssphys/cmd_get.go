package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/odvcencio/ssphys/pkg/vss"
)

func newGetCmd() *cobra.Command {
	var version int
	var output string
	var force bool

	cmd := &cobra.Command{
		Use:   "get <file>",
		Short: "Rebuild an older revision of a file item",
		Long: "Rebuild an older revision of a file item by reversing check-ins from the latest\n" +
			"data file. A version of 0 or less counts back from the latest revision.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, release := sessionOptions(args[0], true)
			defer release()

			content, err := vss.Reconstruct(args[0], version, opts)
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				_, err := cmd.OutOrStdout().Write(content)
				return err
			}

			if _, err := os.Stat(output); err == nil && !force {
				return fmt.Errorf("get: %s exists; use --force to overwrite", output)
			}
			if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
				return fmt.Errorf("get: %w", err)
			}
			if err := os.WriteFile(output, content, 0o644); err != nil {
				return fmt.Errorf("get: %w", err)
			}
			logrus.Infof("wrote version %d of %s to %s (%s)", version, args[0], output, humanize.Bytes(uint64(len(content))))
			return nil
		},
	}
	cmd.Flags().IntVarP(&version, "version", "V", 0, "revision to rebuild (default latest)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the revision to this file instead of stdout")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing output file")
	return cmd
}
