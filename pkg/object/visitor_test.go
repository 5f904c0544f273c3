package object_test

import (
	"testing"

	"github.com/odvcencio/ssphys/pkg/object"
	"github.com/odvcencio/ssphys/pkg/record/recordtest"
)

type countingVisitor struct {
	object.NopVisitor
	branches, unknown, invalid, items int
}

func (v *countingVisitor) VisitBranchFile(*object.BranchFile) error { v.branches++; return nil }
func (v *countingVisitor) VisitUnknown(*object.Unknown) error       { v.unknown++; return nil }
func (v *countingVisitor) VisitInvalid(object.Object) error         { v.invalid++; return nil }
func (v *countingVisitor) VisitItem(*object.Item) error             { v.items++; return nil }

func TestDispatchRoutesByKind(t *testing.T) {
	objs := []object.Object{
		build("BF", recordtest.NewPayload(10)),
		build("ZZ", nil),
		build("DH", make([]byte, 12)),
		build("DH", fileItemPayload()),
		build("MC", []byte("x")),
	}
	v := &countingVisitor{}
	for _, o := range objs {
		if err := object.Dispatch(o, v); err != nil {
			t.Fatalf("Dispatch(%T): %v", o, err)
		}
	}
	if v.branches != 1 || v.unknown != 1 || v.invalid != 1 || v.items != 1 {
		t.Fatalf("counts = %+v", *v)
	}
}
