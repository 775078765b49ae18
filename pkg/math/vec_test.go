package math

import (
	"testing"
)

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Length(t *testing.T) {
	v := Vec3{2, 3, 6}
	if got := v.Length(); got != 7 {
		t.Errorf("Vec3.Length() = %v, want 7", got)
	}
}

func TestVec3Normalize(t *testing.T) {
	n := Vec3{3, 4, 12}.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}

	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("zero vector normalize = %v, want zero", got)
	}
}

func TestVec3ScaleAdd(t *testing.T) {
	got := Vec3{1, 1, 1}.ScaleAdd(Vec3{0, 0, -1}, 0.5)
	want := Vec3{1, 1, 0.5}
	if got != want {
		t.Errorf("Vec3.ScaleAdd() = %v, want %v", got, want)
	}
}

func TestVec3IsZero(t *testing.T) {
	if !(Vec3{}).IsZero() {
		t.Error("zero vector should report IsZero")
	}
	if (Vec3{0, 0, 1e-9}).IsZero() {
		t.Error("non-zero vector reported IsZero")
	}
}
