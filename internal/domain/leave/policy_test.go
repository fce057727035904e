package leave

import "testing"

func TestPolicyFor(t *testing.T) {
	cl, ok := PolicyFor(KindCL)
	if !ok {
		t.Fatal("expected CL policy")
	}
	if !cl.AllowsHalfDay || cl.ConsumesWorkDays || cl.HasTimeOfDay {
		t.Fatalf("unexpected CL policy: %+v", cl)
	}

	ccl, ok := PolicyFor(KindCCL)
	if !ok {
		t.Fatal("expected CCL policy")
	}
	if !ccl.AllowsHalfDay || !ccl.ConsumesWorkDays {
		t.Fatalf("unexpected CCL policy: %+v", ccl)
	}

	od, ok := PolicyFor(KindOD)
	if !ok {
		t.Fatal("expected OD policy")
	}
	if !od.HasTimeOfDay || od.AllowsHalfDay {
		t.Fatalf("unexpected OD policy: %+v", od)
	}

	if _, ok := PolicyFor("SICK"); ok {
		t.Fatal("expected unknown kind to miss")
	}
}

func TestKindsListsAllThree(t *testing.T) {
	kinds := Kinds()
	if len(kinds) != 3 {
		t.Fatalf("expected 3 kinds, got %d", len(kinds))
	}
	if kinds[0].Code != KindCL || kinds[1].Code != KindCCL || kinds[2].Code != KindOD {
		t.Fatalf("unexpected kind order: %+v", kinds)
	}
}
