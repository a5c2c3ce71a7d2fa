package gradient

import (
	"fmt"

	"LinearPanel/internal/calc/mix"
)

// Ref identifies which source material bounds a gradient point.
type Ref string

const (
	RefHigh         Ref = "high"
	RefLow          Ref = "low"
	RefIntermediate Ref = "intermediate"
)

// midEpsilon guards the upper/lower segment split against float-equality
// misclassification of the midpoint itself.
const midEpsilon = 0.0001

// Material is a {concentration, density} pair. The intermediate blend is
// passed here with its achieved values, acting as a third stock material.
type Material struct {
	Conc    float64 `json:"conc"`
	Density float64 `json:"density"`
}

type Input struct {
	High           Material `json:"high"`
	Low            Material `json:"low"`
	Intermediate   Material `json:"intermediate"`
	NumPoints      int      `json:"num_points"`
	PointTotalMass float64  `json:"point_total_mass"`
}

// Point is one row of the dilution plan, ordered by ascending target
// concentration. MassUpper/MassLower are theoretical defaults; callers may
// replace them with measured values and recompute AchievedConc via mix.Actual.
type Point struct {
	Index        int     `json:"index"`
	TargetConc   float64 `json:"target_conc"`
	Upper        Ref     `json:"upper_material"`
	Lower        Ref     `json:"lower_material"`
	MassUpper    float64 `json:"mass_upper"`
	MassLower    float64 `json:"mass_lower"`
	AchievedConc float64 `json:"achieved_conc"`
}

type Result struct {
	MidIndex int     `json:"mid_index"`
	Points   []Point `json:"points"`
}

// Plan partitions [low, high] into two linear segments around the
// intermediate concentration and solves each point against the pair of
// materials that bounds it.
//
// With midIndex = numPoints/2, the lower segment holds midIndex points from
// the low concentration (inclusive) stepping (mid-low)/midIndex, and the
// upper segment holds the rest from mid (inclusive) to high (inclusive).
// numPoints >= 3 keeps both segment divisors at least 1.
func Plan(in Input) (Result, error) {
	if in.NumPoints < 3 || in.NumPoints > 20 {
		return Result{}, fmt.Errorf("num_points must be between 3 and 20")
	}
	if in.High.Density <= 0 || in.Low.Density <= 0 || in.Intermediate.Density <= 0 {
		return Result{}, fmt.Errorf("material density must be positive")
	}
	if in.High.Conc <= in.Low.Conc {
		return Result{}, fmt.Errorf("high material must be more concentrated than low")
	}

	mid := in.Intermediate.Conc
	midIdx := in.NumPoints / 2
	targets := make([]float64, 0, in.NumPoints)
	for i := 0; i < midIdx; i++ {
		targets = append(targets, in.Low.Conc+float64(i)*(mid-in.Low.Conc)/float64(midIdx))
	}
	upperCount := in.NumPoints - midIdx
	for i := 0; i < upperCount; i++ {
		targets = append(targets, mid+float64(i)*(in.High.Conc-mid)/float64(upperCount-1))
	}

	points := make([]Point, 0, in.NumPoints)
	for i, tc := range targets {
		upper, lower := Bounds(tc, mid)
		upMat, loMat := Resolve(upper, in), Resolve(lower, in)
		theo, err := mix.Forward(mix.Input{
			TargetConc:  tc,
			TotalMass:   in.PointTotalMass,
			HighConc:    upMat.Conc,
			HighDensity: upMat.Density,
			LowConc:     loMat.Conc,
			LowDensity:  loMat.Density,
		})
		if err != nil {
			return Result{}, err
		}
		act, err := mix.Actual(mix.ActualInput{
			MassHigh:    theo.MassHigh,
			MassLow:     theo.MassLow,
			HighConc:    upMat.Conc,
			HighDensity: upMat.Density,
			LowConc:     loMat.Conc,
			LowDensity:  loMat.Density,
		})
		if err != nil {
			return Result{}, err
		}
		points = append(points, Point{
			Index:        i + 1,
			TargetConc:   tc,
			Upper:        upper,
			Lower:        lower,
			MassUpper:    theo.MassHigh,
			MassLower:    theo.MassLow,
			AchievedConc: act.Conc,
		})
	}
	return Result{MidIndex: midIdx, Points: points}, nil
}

// Bounds picks the bounding materials for a target: above the midpoint the
// point is mixed from high stock and intermediate blend, at or below it from
// intermediate blend and low stock.
func Bounds(targetConc, mid float64) (upper, lower Ref) {
	if targetConc > mid+midEpsilon {
		return RefHigh, RefIntermediate
	}
	return RefIntermediate, RefLow
}

// Resolve maps a material reference to its concentration/density pair.
func Resolve(ref Ref, in Input) Material {
	switch ref {
	case RefHigh:
		return in.High
	case RefLow:
		return in.Low
	default:
		return in.Intermediate
	}
}
