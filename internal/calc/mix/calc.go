package mix

import (
	"fmt"
	"math"
)

// Input describes a desired two-component blend: a target concentration and
// the total mass to prepare, bounded by a high and a low stock material.
// HighConc must exceed LowConc; both densities are g/cm3 and must be positive.
type Input struct {
	TargetConc  float64 `json:"target_conc"`
	TotalMass   float64 `json:"total_mass"`
	HighConc    float64 `json:"high_conc"`
	HighDensity float64 `json:"high_density"`
	LowConc     float64 `json:"low_conc"`
	LowDensity  float64 `json:"low_density"`
}

type Result struct {
	MassHigh float64 `json:"mass_high"`
	MassLow  float64 `json:"mass_low"`
}

// ActualInput carries measured component masses for the backward solve.
type ActualInput struct {
	MassHigh    float64 `json:"mass_high"`
	MassLow     float64 `json:"mass_low"`
	HighConc    float64 `json:"high_conc"`
	HighDensity float64 `json:"high_density"`
	LowConc     float64 `json:"low_conc"`
	LowDensity  float64 `json:"low_density"`
}

type ActualResult struct {
	Conc    float64 `json:"conc"`
	Density float64 `json:"density"`
}

// Forward computes the theoretical mass of each component so that the
// volume-weighted concentration of the blend equals the target. Equal masses
// of materials with different densities do not occupy equal volumes, so the
// split is weighted by 1/density.
//
// Targets at or outside the [low, high] bound saturate to a pure component
// instead of failing. The result always satisfies MassHigh + MassLow ==
// TotalMass with both components in [0, TotalMass].
func Forward(in Input) (Result, error) {
	if in.HighDensity <= 0 || in.LowDensity <= 0 {
		return Result{}, fmt.Errorf("material density must be positive")
	}
	if in.TotalMass < 0 {
		return Result{}, fmt.Errorf("total mass must be non-negative")
	}
	if in.TargetConc >= in.HighConc {
		return Result{MassHigh: in.TotalMass, MassLow: 0}, nil
	}
	if in.TargetConc <= in.LowConc {
		return Result{MassHigh: 0, MassLow: in.TotalMass}, nil
	}
	kHigh := (in.HighConc - in.TargetConc) / in.HighDensity
	kLow := (in.TargetConc - in.LowConc) / in.LowDensity
	if kHigh+kLow == 0 {
		return Result{MassHigh: 0, MassLow: in.TotalMass}, nil
	}
	mh := in.TotalMass * kLow / (kHigh + kLow)
	mh = math.Max(0, math.Min(mh, in.TotalMass))
	return Result{MassHigh: mh, MassLow: in.TotalMass - mh}, nil
}

// Actual back-calculates the concentration and density really achieved by a
// weighed blend. Concentration is the volume-weighted average of the two
// components; a zero-volume blend yields concentration 0 and density 1.0.
func Actual(in ActualInput) (ActualResult, error) {
	if in.HighDensity <= 0 || in.LowDensity <= 0 {
		return ActualResult{}, fmt.Errorf("material density must be positive")
	}
	vHigh := in.MassHigh / in.HighDensity
	vLow := in.MassLow / in.LowDensity
	if vHigh+vLow == 0 {
		return ActualResult{Conc: 0, Density: 1.0}, nil
	}
	return ActualResult{
		Conc:    (vHigh*in.HighConc + vLow*in.LowConc) / (vHigh + vLow),
		Density: (in.MassHigh + in.MassLow) / (vHigh + vLow),
	}, nil
}
