package gradient

import (
	"math"
	"testing"
)

func refInput(numPoints int) Input {
	return Input{
		High:           Material{Conc: 100, Density: 1.05},
		Low:            Material{Conc: 0, Density: 1.0},
		Intermediate:   Material{Conc: 50, Density: 1.02},
		NumPoints:      numPoints,
		PointTotalMass: 350,
	}
}

func TestPlan_EightPointTargets(t *testing.T) {
	res, err := Plan(refInput(8))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.MidIndex != 4 {
		t.Fatalf("expected mid index 4, got %d", res.MidIndex)
	}
	if len(res.Points) != 8 {
		t.Fatalf("expected 8 points, got %d", len(res.Points))
	}
	// lower: 4 steps of (50-0)/4; upper: from 50 in steps of (100-50)/3
	want := []float64{0, 12.5, 25, 37.5, 50, 50 + 50.0/3, 50 + 100.0/3, 100}
	for i, p := range res.Points {
		if math.Abs(p.TargetConc-want[i]) > 1e-9 {
			t.Errorf("point %d: expected target %v, got %v", i+1, want[i], p.TargetConc)
		}
		if p.Index != i+1 {
			t.Errorf("point %d: expected index %d, got %d", i, i+1, p.Index)
		}
	}
}

func TestPlan_Invariants(t *testing.T) {
	for n := 3; n <= 20; n++ {
		in := refInput(n)
		res, err := Plan(in)
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}
		if len(res.Points) != n {
			t.Fatalf("n=%d: expected %d points, got %d", n, n, len(res.Points))
		}
		first := res.Points[0].TargetConc
		last := res.Points[n-1].TargetConc
		if first != in.Low.Conc {
			t.Errorf("n=%d: first point %v, expected low bound %v", n, first, in.Low.Conc)
		}
		if math.Abs(last-in.High.Conc) > 1e-9 {
			t.Errorf("n=%d: last point %v, expected high bound %v", n, last, in.High.Conc)
		}
		mid := res.Points[res.MidIndex].TargetConc
		if math.Abs(mid-in.Intermediate.Conc) > 1e-9 {
			t.Errorf("n=%d: point at mid index %v, expected %v", n, mid, in.Intermediate.Conc)
		}
		for i := 1; i < n; i++ {
			if res.Points[i].TargetConc < res.Points[i-1].TargetConc {
				t.Errorf("n=%d: targets decrease at %d", n, i)
			}
		}
	}
}

func TestPlan_BoundingMaterials(t *testing.T) {
	in := refInput(8)
	res, err := Plan(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range res.Points {
		if p.TargetConc > in.Intermediate.Conc+midEpsilon {
			if p.Upper != RefHigh || p.Lower != RefIntermediate {
				t.Errorf("point %d (%v): expected high/intermediate, got %s/%s",
					p.Index, p.TargetConc, p.Upper, p.Lower)
			}
		} else {
			if p.Upper != RefIntermediate || p.Lower != RefLow {
				t.Errorf("point %d (%v): expected intermediate/low, got %s/%s",
					p.Index, p.TargetConc, p.Upper, p.Lower)
			}
		}
	}
	// The midpoint itself belongs to the lower segment pair.
	midPoint := res.Points[res.MidIndex]
	if midPoint.Upper != RefIntermediate {
		t.Errorf("midpoint bounded by %s, expected intermediate", midPoint.Upper)
	}
}

func TestPlan_MassesSumToPointTotal(t *testing.T) {
	res, err := Plan(refInput(8))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range res.Points {
		sum := p.MassUpper + p.MassLower
		if math.Abs(sum-350) > 1e-9 {
			t.Errorf("point %d: masses sum to %v, expected 350", p.Index, sum)
		}
		if p.MassUpper < 0 || p.MassLower < 0 {
			t.Errorf("point %d: negative component mass (%v, %v)", p.Index, p.MassUpper, p.MassLower)
		}
		if math.Abs(p.AchievedConc-p.TargetConc) > 1e-6 {
			t.Errorf("point %d: theoretical split achieves %v, target %v", p.Index, p.AchievedConc, p.TargetConc)
		}
	}
}

func TestPlan_ThreePoints(t *testing.T) {
	// Smallest allowed plan: one lower point, midpoint, high endpoint.
	res, err := Plan(refInput(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{0, 50, 100}
	for i, p := range res.Points {
		if math.Abs(p.TargetConc-want[i]) > 1e-9 {
			t.Errorf("point %d: expected %v, got %v", i+1, want[i], p.TargetConc)
		}
	}
}

func TestPlan_RejectsBadInput(t *testing.T) {
	for _, n := range []int{0, 1, 2, 21} {
		if _, err := Plan(refInput(n)); err == nil {
			t.Errorf("n=%d: expected error", n)
		}
	}
	in := refInput(8)
	in.Intermediate.Density = 0
	if _, err := Plan(in); err == nil {
		t.Error("expected error for zero intermediate density")
	}
	in = refInput(8)
	in.High.Conc = in.Low.Conc
	if _, err := Plan(in); err == nil {
		t.Error("expected error for collapsed concentration range")
	}
}
