package math

import (
	"testing"
)

func TestVec3Add(t *testing.T) {
	a := Vec3{0.75, -1.75, -1.75}
	b := Vec3{0, 0.25, 0}
	got := a.Add(b)
	want := Vec3{0.75, -1.5, -1.75}
	if got != want {
		t.Errorf("Vec3.Add() = %v, want %v", got, want)
	}
}

func TestVec3AddDoesNotMutate(t *testing.T) {
	a := Vec3{1, 2, 3}
	_ = a.Add(Vec3{1, 1, 1})
	if a != (Vec3{1, 2, 3}) {
		t.Errorf("Vec3.Add() mutated receiver: %v", a)
	}
}

func TestVec3Sub(t *testing.T) {
	got := Vec3{3, 2, 1}.Sub(Vec3{1, 1, 1})
	want := Vec3{2, 1, 0}
	if got != want {
		t.Errorf("Vec3.Sub() = %v, want %v", got, want)
	}
}

func TestVec3Scale(t *testing.T) {
	got := Vec3{2, 1.5, 0.65}.Scale(0.5)
	want := Vec3{1, 0.75, 0.325}
	if got != want {
		t.Errorf("Vec3.Scale() = %v, want %v", got, want)
	}
}

func TestVec3Mirror(t *testing.T) {
	v := Vec3{0.75, -1.75, -1.75}

	tests := []struct {
		name string
		got  Vec3
		want Vec3
	}{
		{"MirrorX", v.MirrorX(), Vec3{-0.75, -1.75, -1.75}},
		{"MirrorZ", v.MirrorZ(), Vec3{0.75, -1.75, 1.75}},
		{"MirrorXZ", v.MirrorX().MirrorZ(), Vec3{-0.75, -1.75, 1.75}},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestVec3MinMax(t *testing.T) {
	a := Vec3{-1, 2, 0}
	b := Vec3{1, -2, 0.5}

	if got, want := a.Min(b), (Vec3{-1, -2, 0}); got != want {
		t.Errorf("Vec3.Min() = %v, want %v", got, want)
	}
	if got, want := a.Max(b), (Vec3{1, 2, 0.5}); got != want {
		t.Errorf("Vec3.Max() = %v, want %v", got, want)
	}
}
