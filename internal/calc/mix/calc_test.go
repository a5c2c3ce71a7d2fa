package mix

import (
	"math"
	"testing"
)

var ref = Input{
	TotalMass:   350,
	HighConc:    100,
	HighDensity: 1.05,
	LowConc:     0,
	LowDensity:  1.0,
}

func TestForward_SaturatesAtBounds(t *testing.T) {
	cases := []struct {
		target   float64
		massHigh float64
		massLow  float64
	}{
		{100, 350, 0}, // exactly at the high bound
		{120, 350, 0}, // above the range
		{0, 0, 350},   // exactly at the low bound
		{-10, 0, 350}, // below the range
	}
	for _, c := range cases {
		in := ref
		in.TargetConc = c.target
		res, err := Forward(in)
		if err != nil {
			t.Fatalf("target %v: unexpected error: %v", c.target, err)
		}
		if res.MassHigh != c.massHigh || res.MassLow != c.massLow {
			t.Errorf("target %v: expected (%v, %v), got (%v, %v)",
				c.target, c.massHigh, c.massLow, res.MassHigh, res.MassLow)
		}
	}
}

func TestForward_VolumeWeightedSplit(t *testing.T) {
	// kHigh = 50/1.05, kLow = 50/1.0 → massHigh = 350*50/(50/1.05+50)
	in := ref
	in.TargetConc = 50
	res, err := Forward(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantHigh := 350 * 50.0 / (50.0/1.05 + 50.0)
	if math.Abs(res.MassHigh-wantHigh) > 1e-9 {
		t.Errorf("expected massHigh %v, got %v", wantHigh, res.MassHigh)
	}
	if math.Abs(res.MassHigh+res.MassLow-350) > 1e-9 {
		t.Errorf("expected masses to sum to 350, got %v", res.MassHigh+res.MassLow)
	}
	// The heavier high material takes more than half the mass.
	if res.MassHigh <= res.MassLow {
		t.Errorf("expected massHigh > massLow, got %v <= %v", res.MassHigh, res.MassLow)
	}
}

func TestForward_SymmetricPairSplitsEvenly(t *testing.T) {
	res, err := Forward(Input{
		TargetConc:  5,
		TotalMass:   100,
		HighConc:    10,
		HighDensity: 1.0,
		LowConc:     0,
		LowDensity:  1.0,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(res.MassHigh-50) > 1e-9 {
		t.Errorf("expected symmetric split, got massHigh %v", res.MassHigh)
	}
}

func TestForward_InvalidDensity(t *testing.T) {
	in := ref
	in.TargetConc = 50
	in.HighDensity = 0
	if _, err := Forward(in); err == nil {
		t.Error("expected error for zero density")
	}
	in = ref
	in.TargetConc = 50
	in.LowDensity = -1
	if _, err := Forward(in); err == nil {
		t.Error("expected error for negative density")
	}
}

func TestForward_MonotonicInTarget(t *testing.T) {
	prev := -1.0
	for target := 0.0; target <= 100.0; target += 0.25 {
		in := ref
		in.TargetConc = target
		res, err := Forward(in)
		if err != nil {
			t.Fatalf("target %v: unexpected error: %v", target, err)
		}
		if res.MassHigh < prev {
			t.Fatalf("massHigh decreased at target %v: %v < %v", target, res.MassHigh, prev)
		}
		prev = res.MassHigh
	}
}

func TestActual_VolumeWeightedAverage(t *testing.T) {
	res, err := Actual(ActualInput{
		MassHigh:    179.3,
		MassLow:     170.7,
		HighConc:    100,
		HighDensity: 1.05,
		LowConc:     0,
		LowDensity:  1.0,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	vh := 179.3 / 1.05
	vl := 170.7
	wantConc := vh * 100 / (vh + vl)
	wantRho := 350.0 / (vh + vl)
	if math.Abs(res.Conc-wantConc) > 1e-9 {
		t.Errorf("expected conc %v, got %v", wantConc, res.Conc)
	}
	if math.Abs(res.Density-wantRho) > 1e-9 {
		t.Errorf("expected density %v, got %v", wantRho, res.Density)
	}
}

func TestActual_ZeroVolumeFallback(t *testing.T) {
	res, err := Actual(ActualInput{
		HighConc:    100,
		HighDensity: 1.05,
		LowConc:     0,
		LowDensity:  1.0,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Conc != 0 {
		t.Errorf("expected conc 0 for empty blend, got %v", res.Conc)
	}
	if res.Density != 1.0 {
		t.Errorf("expected density fallback 1.0, got %v", res.Density)
	}
}

func TestForwardActual_RoundTrip(t *testing.T) {
	pairs := [][2]float64{
		{179.3, 170.7},
		{350, 0},
		{0, 350},
		{1.5, 348.5},
		{200, 200},
	}
	for _, p := range pairs {
		achieved, err := Actual(ActualInput{
			MassHigh: p[0], MassLow: p[1],
			HighConc: 100, HighDensity: 1.05, LowConc: 0, LowDensity: 1.0,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		split, err := Forward(Input{
			TargetConc: achieved.Conc, TotalMass: p[0] + p[1],
			HighConc: 100, HighDensity: 1.05, LowConc: 0, LowDensity: 1.0,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		again, err := Actual(ActualInput{
			MassHigh: split.MassHigh, MassLow: split.MassLow,
			HighConc: 100, HighDensity: 1.05, LowConc: 0, LowDensity: 1.0,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if math.Abs(again.Conc-achieved.Conc) > 1e-6 {
			t.Errorf("masses (%v, %v): round trip drifted from %v to %v",
				p[0], p[1], achieved.Conc, again.Conc)
		}
	}
}
