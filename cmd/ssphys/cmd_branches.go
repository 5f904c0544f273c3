package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/odvcencio/ssphys/pkg/chain"
	"github.com/odvcencio/ssphys/pkg/object"
	"github.com/odvcencio/ssphys/pkg/record"
	"github.com/odvcencio/ssphys/pkg/vss"
)

func newBranchesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "branches <file>",
		Short: "List the branches of a file item and the projects sharing it",
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
				return fmt.Errorf("branches: %s is a %s file", args[0], s.Layout())
			}
			item, err := s.Item()
			if err != nil {
				return err
			}
			if item.File == nil {
				return fmt.Errorf("branches: %s is a %s item", args[0], item.TypeName())
			}

			out := cmd.OutOrStdout()
			r := s.Resolver()
			fmt.Fprintf(out, "Branches of %s:\n", item.Name.FullName(opts.Names))
			if err := listChain(out, s, r, item.File.OffsetBranchFile, record.BranchFile, opts.Names); err != nil {
				return err
			}
			fmt.Fprintf(out, "Shared in:\n")
			return listChain(out, s, r, item.File.OffsetParentFolder, record.ParentFolder, opts.Names)
		},
	}
}

// listChain prints each link of the branch or parent chain starting at off
// together with the item it points to.
func listChain(out io.Writer, s *vss.Session, r *chain.Resolver, off uint32, want record.Kind, names object.NameResolver) error {
	if off == 0 {
		fmt.Fprintln(out, "  (none)")
		return nil
	}
	rec, err := record.ReadAt(s.Source(), int64(off))
	if err != nil {
		return fmt.Errorf("%s chain head at %d: %w", want, off, err)
	}
	head := object.Build(rec)
	if head.Kind() != want || !head.Valid() {
		return fmt.Errorf("%s chain head at %d is a %s record", want, off, head.Kind())
	}
	return r.Walk(head, func(o object.Object) error {
		var phys string
		var target *object.Item
		var err error
		switch link := o.(type) {
		case *object.BranchFile:
			phys = link.BranchToPhys
			target, err = r.BranchTarget(link)
		case *object.ParentFolder:
			phys = link.ParentPhys
			target, err = r.ParentTarget(link)
		}
		if err != nil {
			fmt.Fprintf(out, "  %-8s  (unresolved: %v)\n", phys, err)
			return nil
		}
		fmt.Fprintf(out, "  %-8s  %s %s\n", phys, target.TypeName(), target.Name.FullName(names))
		return nil
	})
}
