package registry

import "testing"

func TestRegistryIndices(t *testing.T) {
	r := New("kitchen", "bedroom", "kitchen")
	if r.Len() != 2 {
		t.Fatalf("len = %d, want 2", r.Len())
	}
	if i, ok := r.Index("bedroom"); !ok || i != 1 {
		t.Errorf("bedroom = %d,%v, want 1,true", i, ok)
	}
	if r.Name(0) != "kitchen" {
		t.Errorf("name(0) = %q, want kitchen", r.Name(0))
	}
}

func TestRegistryMissingType(t *testing.T) {
	r := New("kitchen")
	if i, ok := r.Index("garage"); ok || i != -1 {
		t.Errorf("garage = %d,%v, want -1,false", i, ok)
	}
	var nilReg *Registry
	if _, ok := nilReg.Index("kitchen"); ok {
		t.Error("nil registry should not resolve anything")
	}
	if r.Name(5) != "" {
		t.Error("out of range name should be empty")
	}
}

func TestNilRegistry(t *testing.T) {
	var r *Registry
	if r.Len() != 0 || r.Name(0) != "" {
		t.Error("nil registry should be empty")
	}
	if names := r.Names(); names != nil {
		t.Errorf("names = %v, want nil", names)
	}
}
