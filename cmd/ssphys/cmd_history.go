package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/odvcencio/ssphys/pkg/object"
	"github.com/odvcencio/ssphys/pkg/record"
	"github.com/odvcencio/ssphys/pkg/vss"
)

var errLimitReached = errors.New("limit reached")

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history <file>",
		Short: "List the history of an item, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, release := sessionOptions(args[0], true)
			defer release()

			s, err := vss.Open(args[0], opts)
			if err != nil {
				return err
			}
			defer s.Close()
			if s.Layout() != vss.History {
				return fmt.Errorf("history: %s is a %s file", args[0], s.Layout())
			}
			item, err := s.Item()
			if err != nil {
				return err
			}
			last, err := s.HistoryAt(item.HistoryOffsetLast)
			if err != nil {
				return fmt.Errorf("history: last entry: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s, %d action(s)\n\n", item.TypeName(), item.Name.FullName(opts.Names), item.NumberOfActions)
			shown := 0
			err = s.Resolver().Walk(last, func(o object.Object) error {
				if limit > 0 && shown >= limit {
					return errLimitReached
				}
				shown++
				h := o.(*object.History)
				fmt.Fprintf(out, "Version %d\n", h.Version)
				fmt.Fprintf(out, "User:   %s\n", h.User)
				fmt.Fprintf(out, "Date:   %s\n", h.Date().Format("2006-01-02 15:04:05"))
				if h.Label != "" {
					fmt.Fprintf(out, "Label:  %s\n", h.Label)
				}
				fmt.Fprintf(out, "    %s\n", h.Describe())
				if c := commentOf(s, h); c != "" {
					for _, line := range strings.Split(strings.TrimRight(c, "\r\n"), "\n") {
						fmt.Fprintf(out, "    %s\n", strings.TrimRight(line, "\r"))
					}
				}
				fmt.Fprintln(out)
				return nil
			})
			if errors.Is(err, errLimitReached) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most this many entries")
	return cmd
}

// commentOf returns the check-in comment stored after h, if any.
func commentOf(s *vss.Session, h *object.History) string {
	if h.LengthComment <= 0 || h.OffsetToNextRecordOrComment == 0 {
		return ""
	}
	rec, err := record.ReadAt(s.Source(), int64(h.OffsetToNextRecordOrComment))
	if err != nil {
		return ""
	}
	if c, ok := object.Build(rec).(*object.Comment); ok && c.Valid() {
		return c.Text
	}
	return ""
}
