package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/odvcencio/ssphys/pkg/vss"
)

func newValidateCmd() *cobra.Command {
	var acceptUnknown bool

	cmd := &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check physical files for structural and history problems",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			pass := painter(out, color.FgGreen, color.Bold)
			fail := painter(out, color.FgRed, color.Bold)
			warn := painter(out, color.FgYellow)

			failed := 0
			for _, path := range args {
				opts, release := sessionOptions(path, acceptUnknown)
				report, err := vss.ValidateFile(path, opts)
				release()
				if report == nil {
					failed++
					fmt.Fprintf(out, "%s %s: %v\n", fail.Sprint("FAIL"), path, err)
					continue
				}
				for _, f := range report.Findings {
					fmt.Fprintf(out, "  %s\n", warn.Sprint(f))
				}
				if err != nil || !report.OK() {
					failed++
					fmt.Fprintf(out, "%s %s: %d record(s), %d error(s), %d warning(s)\n",
						fail.Sprint("FAIL"), path, report.Records, report.Errors(), report.Warnings())
					if err != nil {
						fmt.Fprintf(out, "  %v\n", err)
					}
					continue
				}
				fmt.Fprintf(out, "%s %s: %d record(s)\n", pass.Sprint("PASS"), path, report.Records)
			}
			if failed > 0 {
				return fmt.Errorf("validate: %d of %d file(s) failed", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&acceptUnknown, "accept-unknown", false, "do not report records with unregistered tags")
	return cmd
}
