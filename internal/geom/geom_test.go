package geom

import (
	"math"
	"testing"
)

func TestTransformRoundTrip(t *testing.T) {
	tr := Transform{Origin: Pt(-40, -25), Zoom: ZoomFactor{Numer: 3, Denom: 2}, Grid: NoGrid}

	p := Pt(100, 60)
	fwd := tr.Forward(p)
	if fwd != Pt(90, 52.5) {
		t.Errorf("Forward(%v) = %v, want (90, 52.5)", p, fwd)
	}

	back := tr.Reverse(fwd)
	if !back.Equal(p, 1e-9) {
		t.Errorf("Reverse(Forward(p)) = %v, want %v", back, p)
	}

	m := tr.Matrix().Apply(p)
	if !m.Equal(fwd, 1e-9) {
		t.Errorf("Matrix().Apply(p) = %v, want %v", m, fwd)
	}
	inv := tr.Matrix().Invert().Apply(fwd)
	if !inv.Equal(p, 1e-9) {
		t.Errorf("inverse matrix gave %v, want %v", inv, p)
	}
}

func TestDeviceMatrixScalesByPixelRatio(t *testing.T) {
	tr := NewTransform()
	got := tr.DeviceMatrix(2).Apply(Pt(10, 5))
	if got != Pt(20, 10) {
		t.Errorf("DeviceMatrix(2) gave %v, want (20, 10)", got)
	}
}

func TestReverseSnapped(t *testing.T) {
	tr := Transform{Zoom: DefaultZoom, Grid: GridFactor{Width: 8, Height: 8}}
	tests := []struct {
		in, want Point
	}{
		{Pt(0, 0), Pt(0, 0)},
		{Pt(7, 7), Pt(0, 0)},
		{Pt(8, 15.9), Pt(8, 8)},
		{Pt(17, 33), Pt(16, 32)},
		{Pt(-1, -9), Pt(-8, -16)},
	}
	for _, tt := range tests {
		if got := tr.ReverseSnapped(tt.in); got != tt.want {
			t.Errorf("ReverseSnapped(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestGridSnapIdempotent(t *testing.T) {
	grids := []GridFactor{NoGrid, {Width: 8, Height: 8}, {Width: 5, Height: 12}, {Width: 0.5, Height: 3}}
	for _, g := range grids {
		for x := -40.0; x <= 40; x += 1.5 {
			p := g.Snap(Pt(x, x*1.7))
			if again := g.Snap(p); again != p {
				t.Errorf("grid %v: Snap(%v) = %v, want idempotent", g, p, again)
			}
		}
	}
}

func TestRectOps(t *testing.T) {
	r := R(60, 40, 10, 10).Normalize()
	if r != R(10, 10, 60, 40) {
		t.Fatalf("Normalize = %v", r)
	}
	if r.Width() != 50 || r.Height() != 30 {
		t.Errorf("size = %vx%v, want 50x30", r.Width(), r.Height())
	}
	if r.Center() != Pt(35, 25) {
		t.Errorf("Center = %v", r.Center())
	}
	if math.Abs(r.Ratio()-50.0/30.0) > 1e-12 {
		t.Errorf("Ratio = %v", r.Ratio())
	}
	if R(0, 0, 10, 0).Ratio() != 1 {
		t.Error("flat rect ratio should fall back to 1")
	}
	if got := r.Union(R(0, 20, 20, 80)); got != R(0, 10, 60, 80) {
		t.Errorf("Union = %v", got)
	}
	if got := r.Expand(5); got != R(5, 5, 65, 45) {
		t.Errorf("Expand = %v", got)
	}
	if !r.ContainsRect(R(10, 10, 20, 20)) || r.ContainsRect(R(0, 10, 20, 20)) {
		t.Error("ContainsRect mismatch")
	}
	if !r.Contains(Pt(60, 40)) || r.Contains(Pt(61, 40)) {
		t.Error("Contains mismatch")
	}
}

func TestPointsInsertRemove(t *testing.T) {
	ps := Points{Pt(0, 0), Pt(10, 0)}
	ps.Insert(1, Pt(5, 5))
	if !ps.Equal(Points{Pt(0, 0), Pt(5, 5), Pt(10, 0)}) {
		t.Fatalf("Insert gave %v", ps)
	}
	ps.Remove(0)
	if !ps.Equal(Points{Pt(5, 5), Pt(10, 0)}) {
		t.Fatalf("Remove gave %v", ps)
	}
	if b := ps.Bounds(); b != R(5, 0, 10, 5) {
		t.Errorf("Bounds = %v", b)
	}
}

func TestReduceOrthogonal(t *testing.T) {
	tests := []struct {
		name string
		in   Points
		want Points
	}{
		{
			name: "collinear horizontal run",
			in:   Points{Pt(0, 0), Pt(10, 0), Pt(20, 0), Pt(20, 30)},
			want: Points{Pt(0, 0), Pt(20, 0), Pt(20, 30)},
		},
		{
			name: "right angles untouched",
			in:   Points{Pt(0, 0), Pt(50, 0), Pt(50, 50)},
			want: Points{Pt(0, 0), Pt(50, 0), Pt(50, 50)},
		},
		{
			name: "vertical chain collapses",
			in:   Points{Pt(5, 0), Pt(5, 10), Pt(5, 20), Pt(5, 30)},
			want: Points{Pt(5, 0), Pt(5, 30)},
		},
		{
			name: "diagonal is not axis collinear",
			in:   Points{Pt(0, 0), Pt(10, 10), Pt(20, 20)},
			want: Points{Pt(0, 0), Pt(10, 10), Pt(20, 20)},
		},
		{
			name: "duplicate elbow removed",
			in:   Points{Pt(0, 0), Pt(40, 0), Pt(40, 0), Pt(40, 20)},
			want: Points{Pt(0, 0), Pt(40, 0), Pt(40, 20)},
		},
		{
			name: "two points",
			in:   Points{Pt(0, 0), Pt(0, 0)},
			want: Points{Pt(0, 0), Pt(0, 0)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.ReduceOrthogonal()
			if !got.Equal(tt.want) {
				t.Errorf("ReduceOrthogonal(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if got.First() != tt.in.First() || got.Last() != tt.in.Last() {
				t.Errorf("endpoints changed: %v -> %v", tt.in, got)
			}
		})
	}
}

func TestReduceFree(t *testing.T) {
	in := Points{Pt(0, 0), Pt(10, 10), Pt(20, 20), Pt(20, 40), Pt(30, 45)}
	want := Points{Pt(0, 0), Pt(20, 20), Pt(20, 40), Pt(30, 45)}
	if got := in.ReduceFree(); !got.Equal(want) {
		t.Errorf("ReduceFree = %v, want %v", got, want)
	}

	// A point beyond the far neighbour folds back and is not on the segment.
	fold := Points{Pt(0, 0), Pt(30, 0), Pt(20, 0)}
	if got := fold.ReduceFree(); !got.Equal(fold) {
		t.Errorf("ReduceFree(fold) = %v, want unchanged", got)
	}
}

func TestVertexAndSegmentAt(t *testing.T) {
	ps := Points{Pt(0, 0), Pt(50, 0), Pt(50, 50)}
	if i := ps.VertexAt(Pt(49, 2), 3); i != 1 {
		t.Errorf("VertexAt = %d, want 1", i)
	}
	if i := ps.VertexAt(Pt(25, 2), 3); i != -1 {
		t.Errorf("VertexAt = %d, want -1", i)
	}
	if i := ps.SegmentAt(Pt(25, 2), 3); i != 0 {
		t.Errorf("SegmentAt = %d, want 0", i)
	}
	if i := ps.SegmentAt(Pt(52, 25), 3); i != 1 {
		t.Errorf("SegmentAt = %d, want 1", i)
	}
	if i := ps.SegmentAt(Pt(25, 25), 3); i != -1 {
		t.Errorf("SegmentAt = %d, want -1", i)
	}
}

func TestPolarRoundTrip(t *testing.T) {
	lines := [][2]Point{
		{Pt(0, 0), Pt(100, 0)},
		{Pt(10, 10), Pt(10, 80)},
		{Pt(30, 30), Pt(30, 30)},
		{Pt(-5, 12), Pt(40, -60)},
	}
	targets := []Point{Pt(20, 30), Pt(-15, 4), Pt(60, 60)}
	for _, l := range lines {
		for _, target := range targets {
			a, d := PolarOffset(l[0], l[1], target)
			if math.IsNaN(a) || math.IsNaN(d) {
				t.Fatalf("PolarOffset(%v, %v) produced NaN", l, target)
			}
			back := PointAwayLine(l[0], l[1], a, d)
			if !back.Equal(target, 1e-9) {
				t.Errorf("line %v: round trip of %v gave %v", l, target, back)
			}
		}
	}

	if a, d := PolarOffset(Pt(1, 1), Pt(2, 2), Pt(1, 1)); a != 0 || d != 0 {
		t.Errorf("zero offset = (%v, %v), want (0, 0)", a, d)
	}
}

func TestPolarFollowsRotation(t *testing.T) {
	a, d := PolarOffset(Pt(0, 0), Pt(10, 0), Pt(0, 10))
	got := PointAwayLine(Pt(0, 0), Pt(0, 10), a, d)
	if !got.Equal(Pt(-10, 0), 1e-9) {
		t.Errorf("rotated line placed label at %v, want (-10, 0)", got)
	}
}
