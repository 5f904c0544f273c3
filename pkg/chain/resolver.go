// Package chain follows the offset links between records: branch-file and
// parent-folder chains, the history chain, and links into other physical
// files of the same database.
package chain

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/odvcencio/ssphys/pkg/object"
	"github.com/odvcencio/ssphys/pkg/physfile"
	"github.com/odvcencio/ssphys/pkg/record"
)

// minRecordSize is the smallest record a chain can step through: a header
// plus the 4-byte previous offset.
const minRecordSize = record.HeaderSize + 4

// Options configures a Resolver. Zero values receive defaults.
type Options struct {
	// MaxHops bounds Walk. Zero derives the bound from the file size.
	MaxHops int
	Logger  logrus.Ext1FieldLogger
	// Locator finds other physical files for BranchTarget and ParentTarget.
	// Zero means the directory layout around the source's name.
	Locator *physfile.Locator
}

// Resolver follows links inside one physical file. It keeps no cache; every
// call re-reads the file.
type Resolver struct {
	src     physfile.Source
	maxHops int
	log     logrus.Ext1FieldLogger
	loc     physfile.Locator
}

func NewResolver(src physfile.Source, opts Options) *Resolver {
	r := &Resolver{src: src, maxHops: opts.MaxHops, log: opts.Logger}
	if r.maxHops <= 0 {
		r.maxHops = int(src.Size()/minRecordSize) + 1
	}
	if r.log == nil {
		r.log = logrus.StandardLogger()
	}
	if opts.Locator != nil {
		r.loc = *opts.Locator
	} else {
		r.loc = physfile.LocatorFor(src.Name())
	}
	return r
}

// MaxHops returns the hop bound Walk enforces.
func (r *Resolver) MaxHops() int { return r.maxHops }

// PreviousBranch returns the branch-file record bf links back to.
func (r *Resolver) PreviousBranch(bf *object.BranchFile) (*object.BranchFile, error) {
	o, err := r.follow(bf.Offset(), bf.PreviousOffset, record.BranchFile)
	if err != nil {
		return nil, err
	}
	return o.(*object.BranchFile), nil
}

// PreviousParent returns the parent-folder record pf links back to.
func (r *Resolver) PreviousParent(pf *object.ParentFolder) (*object.ParentFolder, error) {
	o, err := r.follow(pf.Offset(), pf.PreviousOffset, record.ParentFolder)
	if err != nil {
		return nil, err
	}
	return o.(*object.ParentFolder), nil
}

// PreviousHistory returns the history entry recorded before h.
func (r *Resolver) PreviousHistory(h *object.History) (*object.History, error) {
	o, err := r.follow(h.Offset(), h.Previous, record.History)
	if err != nil {
		return nil, err
	}
	return o.(*object.History), nil
}

// Previous follows the backward link of any linked object. Objects without
// a link report ErrNotFound.
func (r *Resolver) Previous(o object.Object) (object.Object, error) {
	switch o := o.(type) {
	case *object.BranchFile:
		return r.PreviousBranch(o)
	case *object.ParentFolder:
		return r.PreviousParent(o)
	case *object.History:
		return r.PreviousHistory(o)
	}
	return nil, ErrNotFound
}

// Walk calls fn for start and then for each predecessor until the chain
// ends. A chain longer than MaxHops fails with *ChainTooLongError.
func (r *Resolver) Walk(start object.Object, fn func(object.Object) error) error {
	cur := start
	for hops := 0; ; hops++ {
		if hops > r.maxHops {
			return &ChainTooLongError{Offset: start.Offset(), Hops: r.maxHops}
		}
		if err := fn(cur); err != nil {
			return err
		}
		next, err := r.Previous(cur)
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		r.log.Tracef("chain: %s at %d -> %d", next.Kind(), cur.Offset(), next.Offset())
		cur = next
	}
}

func (r *Resolver) follow(from int64, to uint32, want record.Kind) (object.Object, error) {
	if to == 0 {
		return nil, ErrNotFound
	}
	off := int64(to)
	rec, err := record.ReadAt(r.src, off)
	if err != nil {
		return nil, &BrokenChainError{From: from, Offset: off, Reason: "unreadable record", Err: err}
	}
	o := object.Build(rec)
	if o.Kind() != want {
		return nil, &BrokenChainError{From: from, Offset: off, Reason: fmt.Sprintf("found %s record, want %s", o.Kind(), want)}
	}
	if !o.Valid() {
		return nil, &BrokenChainError{From: from, Offset: off, Reason: "invalid target", Err: o.Err()}
	}
	return o, nil
}

// BranchTarget opens the physical file bf points at and returns its item.
func (r *Resolver) BranchTarget(bf *object.BranchFile) (*object.Item, error) {
	return r.itemOf(bf.BranchToPhys)
}

// ParentTarget opens the project file pf points at and returns its item.
func (r *Resolver) ParentTarget(pf *object.ParentFolder) (*object.Item, error) {
	return r.itemOf(pf.ParentPhys)
}

func (r *Resolver) itemOf(phys string) (*object.Item, error) {
	path, err := r.loc.Find(phys)
	if err != nil {
		return nil, err
	}
	src, err := physfile.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	rec, err := record.ReadAt(src, record.SignatureSize)
	if err != nil {
		return nil, fmt.Errorf("read item of %s: %w", path, err)
	}
	// Detach from the source before it is closed.
	rec = record.New(rec.Header, rec.Offset, append([]byte(nil), rec.Payload()...))
	item, ok := object.Build(rec).(*object.Item)
	if !ok {
		return nil, fmt.Errorf("%s: first record is %s, want Item", path, rec.Kind())
	}
	if !item.Valid() {
		return nil, fmt.Errorf("%s: %w", path, item.Err())
	}
	r.log.Tracef("chain: %s resolved to %s item %q", phys, item.TypeName(), item.Name.Short)
	return item, nil
}
