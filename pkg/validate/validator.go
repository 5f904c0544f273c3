package validate

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/odvcencio/ssphys/pkg/chain"
	"github.com/odvcencio/ssphys/pkg/object"
	"github.com/odvcencio/ssphys/pkg/physfile"
	"github.com/odvcencio/ssphys/pkg/record"
)

// knownFileFlags lists the flag combinations seen on healthy file items.
var knownFileFlags = map[uint16]bool{
	0x00: true, // initial
	0x02: true, // binary
	0x04: true, // latest revision only
	0x20: true, // shared
	0x22: true, // shared binary
	0x41: true, // checked out, locked
	0x43: true, // checked out binary, locked
	0x61: true, // shared, checked out, locked
	0x63: true, // shared, checked out, locked, binary
}

// Options configures a Validator.
type Options struct {
	// AcceptUnknown suppresses findings for records with unregistered tags.
	AcceptUnknown bool
	MaxHops       int
	Logger        logrus.Ext1FieldLogger
	Locator       *physfile.Locator
}

// Validator checks objects of one physical file. Feed it every object in
// file order through Check, then read the Report.
type Validator struct {
	src      physfile.Source
	resolver *chain.Resolver
	opts     Options
	log      logrus.Ext1FieldLogger
	report   *Report
}

func New(src physfile.Source, opts Options) *Validator {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Validator{
		src:      src,
		resolver: chain.NewResolver(src, chain.Options{MaxHops: opts.MaxHops, Logger: log, Locator: opts.Locator}),
		opts:     opts,
		log:      log,
		report:   &Report{File: src.Name()},
	}
}

// Report returns the findings collected so far.
func (v *Validator) Report() *Report { return v.report }

// Add records a file-level finding, such as a bad signature.
func (v *Validator) Add(f Finding) {
	v.log.Debugf("validate: %s", f)
	v.report.Add(f)
}

func (v *Validator) addf(sev Severity, p Problem, o object.Object, format string, args ...any) {
	v.Add(Finding{Severity: sev, Problem: p, Offset: o.Offset(), Kind: o.Kind(), Message: fmt.Sprintf(format, args...)})
}

// Check validates one object.
func (v *Validator) Check(o object.Object) error {
	v.report.Records++
	if !o.Record().ChecksumOK() {
		h := o.Record().Header
		v.addf(Warning, ProblemChecksum, o, "stored checksum 0x%04x, payload checksum 0x%04x", h.Checksum, record.Checksum16(o.Record().Payload()))
	}
	return object.Dispatch(o, v)
}

func (v *Validator) VisitInvalid(o object.Object) error {
	v.addf(Error, ProblemInvalidPayload, o, "%v", o.Err())
	return nil
}

func (v *Validator) VisitUnknown(u *object.Unknown) error {
	if !v.opts.AcceptUnknown {
		v.addf(Warning, ProblemUnknownKind, u, "%v", u.KindError())
	}
	return nil
}

func (v *Validator) VisitBranchFile(b *object.BranchFile) error {
	if v.linksBackward(b, b.PreviousOffset) {
		_, err := v.resolver.PreviousBranch(b)
		v.linkFinding(b, err)
	}
	return nil
}

func (v *Validator) VisitParentFolder(p *object.ParentFolder) error {
	if v.linksBackward(p, p.PreviousOffset) {
		_, err := v.resolver.PreviousParent(p)
		v.linkFinding(p, err)
	}
	return nil
}

func (v *Validator) VisitHistory(h *object.History) error {
	if v.linksBackward(h, h.Previous) {
		_, err := v.resolver.PreviousHistory(h)
		v.linkFinding(h, err)
	}
	if !h.Action().Known() {
		v.addf(Warning, ProblemHistory, h, "unknown action code %d", h.ActionCode)
	} else if h.ActionErr != nil {
		v.addf(Warning, ProblemHistory, h, "%v", h.ActionErr)
	}
	return nil
}

// linksBackward reports whether the previous-link prev of o points at an
// earlier record. Records are only ever appended, so a link to itself or
// further on is broken and may close a cycle no chain head reaches.
func (v *Validator) linksBackward(o object.Object, prev uint32) bool {
	if prev == 0 || int64(prev) < o.Offset() {
		return true
	}
	v.addf(Error, ProblemBrokenChain, o, "%v", &chain.BrokenChainError{From: o.Offset(), Offset: int64(prev), Reason: "link does not point backwards"})
	return false
}

// linkFinding turns a chain error into a finding. Terminal links are fine.
func (v *Validator) linkFinding(o object.Object, err error) {
	switch {
	case err == nil, errors.Is(err, chain.ErrNotFound):
	case errors.Is(err, chain.ErrChainTooLong):
		v.addf(Error, ProblemChainTooLong, o, "%v", err)
	default:
		v.addf(Error, ProblemBrokenChain, o, "%v", err)
	}
}

func (v *Validator) VisitItem(i *object.Item) error {
	if i.LatestExt != ".A" && i.LatestExt != ".B" {
		v.addf(Error, ProblemItem, i, "latest extension %q is neither .A nor .B", i.LatestExt)
	}
	if size := v.src.Size(); int64(i.HistoryOffsetEnd) != size {
		v.addf(Error, ProblemItem, i, "history end offset %d differs from file size %d", i.HistoryOffsetEnd, size)
	}
	if _, err := v.historyAt(i.HistoryOffsetBegin); err != nil {
		v.addf(Error, ProblemItem, i, "first history offset: %v", err)
	}
	if last, err := v.historyAt(i.HistoryOffsetLast); err != nil {
		v.addf(Error, ProblemItem, i, "last history offset: %v", err)
	} else {
		v.checkHistoryChain(i, last)
	}

	if f := i.File; f != nil {
		if f.NumberOfItems > 0 || f.NumberOfProjects > 0 {
			v.addf(Warning, ProblemItem, i, "file item counts %d items and %d projects", f.NumberOfItems, f.NumberOfProjects)
		}
		if !knownFileFlags[f.Flags] {
			v.addf(Warning, ProblemFlags, i, "unknown combination of file flags 0x%x", f.Flags)
		}
		v.checkLinkChain(i, f.OffsetBranchFile, record.BranchFile)
		v.checkLinkChain(i, f.OffsetParentFolder, record.ParentFolder)
	}
	return nil
}

// checkHistoryChain counts actions from the newest entry back to the
// oldest. A rollback stands in for the versions it discarded.
func (v *Validator) checkHistoryChain(i *object.Item, last *object.History) {
	count := 0
	var oldest *object.History
	err := v.resolver.Walk(last, func(o object.Object) error {
		h := o.(*object.History)
		count++
		if h.Action() == object.ActionRollback {
			count += int(h.Version) - 1
		}
		oldest = h
		return nil
	})
	if err != nil {
		v.linkFinding(i, err)
		return
	}
	if count != int(i.NumberOfActions) {
		v.addf(Error, ProblemHistory, i, "history chain holds %d actions, item declares %d", count, i.NumberOfActions)
	}
	switch oldest.Action() {
	case object.ActionCreatedFile, object.ActionCreatedProject, object.ActionRollback:
	default:
		v.addf(Error, ProblemHistory, i, "oldest action is %q, want a create or rollback", oldest.ActionLabel())
	}
}

func (v *Validator) checkLinkChain(i *object.Item, off uint32, want record.Kind) {
	if off == 0 {
		return
	}
	rec, err := record.ReadAt(v.src, int64(off))
	if err != nil {
		v.addf(Error, ProblemBrokenChain, i, "%s chain head at %d: %v", want, off, err)
		return
	}
	head := object.Build(rec)
	if head.Kind() != want || !head.Valid() {
		v.addf(Error, ProblemBrokenChain, i, "%s chain head at %d is a %s record", want, off, head.Kind())
		return
	}
	if err := v.resolver.Walk(head, func(object.Object) error { return nil }); err != nil {
		v.linkFinding(i, err)
	}
}

func (v *Validator) historyAt(off uint32) (*object.History, error) {
	rec, err := record.ReadAt(v.src, int64(off))
	if err != nil {
		return nil, err
	}
	h, ok := object.Build(rec).(*object.History)
	if !ok {
		return nil, fmt.Errorf("record at %d is %s, want History", off, rec.Kind())
	}
	if !h.Valid() {
		return nil, h.Err()
	}
	return h, nil
}

func (v *Validator) VisitComment(*object.Comment) error               { return nil }
func (v *Validator) VisitCheckOut(*object.CheckOut) error             { return nil }
func (v *Validator) VisitFileDelta(*object.FileDelta) error           { return nil }
func (v *Validator) VisitNamesCache(*object.NamesCache) error         { return nil }
func (v *Validator) VisitNameCacheEntry(*object.NameCacheEntry) error { return nil }
func (v *Validator) VisitProjectEntry(*object.ProjectEntry) error     { return nil }
func (v *Validator) VisitUsersHeader(*object.UsersHeader) error       { return nil }
func (v *Validator) VisitUser(*object.User) error                     { return nil }
