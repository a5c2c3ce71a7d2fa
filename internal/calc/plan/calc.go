package plan

import (
	"fmt"
	"math"

	"LinearPanel/internal/calc/density"
	"LinearPanel/internal/calc/gradient"
	"LinearPanel/internal/calc/mix"
)

type Stock struct {
	Conc    float64 `json:"conc"`
	Density float64 `json:"density"`
}

// PointOverride carries user-measured values for one gradient row. A nil
// field keeps the computed default. An edited target is re-solved against the
// same material pair the planned point was bounded by.
type PointOverride struct {
	TargetConc *float64 `json:"target_conc,omitempty"`
	MassUpper  *float64 `json:"mass_upper,omitempty"`
	MassLower  *float64 `json:"mass_lower,omitempty"`
}

// Input is the full parameter set of one calibration-panel session. Optional
// fields left nil fall back to the computed suggestion, mirroring a form where
// every field is pre-filled with a default the user may overwrite.
type Input struct {
	Experiment     string          `json:"experiment"`
	ConcUnit       string          `json:"conc_unit"`
	MassUnit       string          `json:"mass_unit"`
	TemperatureC   float64         `json:"temperature_c"`
	High           Stock           `json:"high"`
	Low            Stock           `json:"low"`
	NumPoints      int             `json:"num_points"`
	PointTotalMass float64         `json:"point_total_mass"`
	MidTargetConc  *float64        `json:"mid_target_conc,omitempty"`
	MidPlannedMass *float64        `json:"mid_planned_mass,omitempty"`
	MidActualHigh  *float64        `json:"mid_actual_high,omitempty"`
	MidActualLow   *float64        `json:"mid_actual_low,omitempty"`
	Overrides      []PointOverride `json:"overrides,omitempty"`
}

// Intermediate is the midpoint blend prepared first and then consumed as a
// third stock material by the gradient rows.
type Intermediate struct {
	TargetConc        float64 `json:"target_conc"`
	PlannedMass       float64 `json:"planned_mass"`
	SuggestedMass     float64 `json:"suggested_mass"`
	TheoreticalDemand float64 `json:"theoretical_demand"`
	TheoMassHigh      float64 `json:"theo_mass_high"`
	TheoMassLow       float64 `json:"theo_mass_low"`
	ActualMassHigh    float64 `json:"actual_mass_high"`
	ActualMassLow     float64 `json:"actual_mass_low"`
	AchievedConc      float64 `json:"achieved_conc"`
	AchievedDensity   float64 `json:"achieved_density"`
}

type Result struct {
	WaterDensity  float64          `json:"water_density"`
	SalineDensity float64          `json:"saline_density"`
	Intermediate  Intermediate     `json:"intermediate"`
	MidIndex      int              `json:"mid_index"`
	Points        []gradient.Point `json:"points"`
	TotalHighUsed float64          `json:"total_high_used"`
	TotalLowUsed  float64          `json:"total_low_used"`
}

// Calculate runs the whole recompute pass in dependency order: densities,
// intermediate blend, gradient rows against the achieved intermediate, then
// per-row overrides and running totals. It is pure; calling it again with the
// same input yields the same result.
func Calculate(in Input) (Result, error) {
	if err := validate(in); err != nil {
		return Result{}, err
	}

	dens := density.Calculate(density.Input{TemperatureC: in.TemperatureC})

	// Size the intermediate prep from a provisional gradient against the
	// guessed midpoint (density assumed 1.0): total intermediate-material
	// demand across all points, plus a 10% weighing margin.
	midGuess := round((in.High.Conc+in.Low.Conc)/2, 2)
	demand, err := intermediateDemand(in, midGuess)
	if err != nil {
		return Result{}, err
	}
	suggested := round(demand*1.1, 1)

	midTarget := midGuess
	if in.MidTargetConc != nil {
		midTarget = *in.MidTargetConc
	}
	planned := math.Max(suggested, 100.0)
	if in.MidPlannedMass != nil {
		planned = *in.MidPlannedMass
	}

	theo, err := mix.Forward(mix.Input{
		TargetConc:  midTarget,
		TotalMass:   planned,
		HighConc:    in.High.Conc,
		HighDensity: in.High.Density,
		LowConc:     in.Low.Conc,
		LowDensity:  in.Low.Density,
	})
	if err != nil {
		return Result{}, err
	}

	// Defaults are rounded to 0.1 as presented for weighing.
	actHigh := round(theo.MassHigh, 1)
	if in.MidActualHigh != nil {
		actHigh = *in.MidActualHigh
	}
	actLow := round(theo.MassLow, 1)
	if in.MidActualLow != nil {
		actLow = *in.MidActualLow
	}

	achieved, err := mix.Actual(mix.ActualInput{
		MassHigh:    actHigh,
		MassLow:     actLow,
		HighConc:    in.High.Conc,
		HighDensity: in.High.Density,
		LowConc:     in.Low.Conc,
		LowDensity:  in.Low.Density,
	})
	if err != nil {
		return Result{}, err
	}

	inter := Intermediate{
		TargetConc:        midTarget,
		PlannedMass:       planned,
		SuggestedMass:     suggested,
		TheoreticalDemand: demand,
		TheoMassHigh:      theo.MassHigh,
		TheoMassLow:       theo.MassLow,
		ActualMassHigh:    actHigh,
		ActualMassLow:     actLow,
		AchievedConc:      achieved.Conc,
		AchievedDensity:   achieved.Density,
	}

	gIn := gradient.Input{
		High:           gradient.Material{Conc: in.High.Conc, Density: in.High.Density},
		Low:            gradient.Material{Conc: in.Low.Conc, Density: in.Low.Density},
		Intermediate:   gradient.Material{Conc: achieved.Conc, Density: achieved.Density},
		NumPoints:      in.NumPoints,
		PointTotalMass: in.PointTotalMass,
	}
	g, err := gradient.Plan(gIn)
	if err != nil {
		return Result{}, err
	}

	points := g.Points
	for i := range points {
		upMat := gradient.Resolve(points[i].Upper, gIn)
		loMat := gradient.Resolve(points[i].Lower, gIn)

		var o PointOverride
		if i < len(in.Overrides) {
			o = in.Overrides[i]
		}
		if o.TargetConc != nil {
			// Bounding materials stay as planned; only the split moves.
			points[i].TargetConc = *o.TargetConc
			theoRow, err := mix.Forward(mix.Input{
				TargetConc:  points[i].TargetConc,
				TotalMass:   in.PointTotalMass,
				HighConc:    upMat.Conc,
				HighDensity: upMat.Density,
				LowConc:     loMat.Conc,
				LowDensity:  loMat.Density,
			})
			if err != nil {
				return Result{}, err
			}
			points[i].MassUpper = theoRow.MassHigh
			points[i].MassLower = theoRow.MassLow
		}
		points[i].MassUpper = round(points[i].MassUpper, 1)
		points[i].MassLower = round(points[i].MassLower, 1)
		if o.MassUpper != nil {
			points[i].MassUpper = *o.MassUpper
		}
		if o.MassLower != nil {
			points[i].MassLower = *o.MassLower
		}

		act, err := mix.Actual(mix.ActualInput{
			MassHigh:    points[i].MassUpper,
			MassLow:     points[i].MassLower,
			HighConc:    upMat.Conc,
			HighDensity: upMat.Density,
			LowConc:     loMat.Conc,
			LowDensity:  loMat.Density,
		})
		if err != nil {
			return Result{}, err
		}
		points[i].AchievedConc = act.Conc
	}

	totalHigh := actHigh
	totalLow := actLow
	for _, p := range points {
		if p.Upper == gradient.RefHigh {
			totalHigh += p.MassUpper
		}
		if p.Lower == gradient.RefLow {
			totalLow += p.MassLower
		}
	}

	return Result{
		WaterDensity:  dens.WaterGCm3,
		SalineDensity: dens.SalineGCm3,
		Intermediate:  inter,
		MidIndex:      g.MidIndex,
		Points:        points,
		TotalHighUsed: totalHigh,
		TotalLowUsed:  totalLow,
	}, nil
}

func validate(in Input) error {
	if in.NumPoints < 3 || in.NumPoints > 20 {
		return fmt.Errorf("num_points must be between 3 and 20")
	}
	if in.High.Density <= 0 || in.Low.Density <= 0 {
		return fmt.Errorf("material density must be positive")
	}
	if in.High.Conc <= in.Low.Conc {
		return fmt.Errorf("high material must be more concentrated than low")
	}
	if in.PointTotalMass < 0 {
		return fmt.Errorf("point total mass must be non-negative")
	}
	return nil
}

// intermediateDemand sums the intermediate-material mass the gradient will
// consume, planned against the guessed midpoint before the blend exists.
func intermediateDemand(in Input, midGuess float64) (float64, error) {
	g, err := gradient.Plan(gradient.Input{
		High:           gradient.Material{Conc: in.High.Conc, Density: in.High.Density},
		Low:            gradient.Material{Conc: in.Low.Conc, Density: in.Low.Density},
		Intermediate:   gradient.Material{Conc: midGuess, Density: 1.0},
		NumPoints:      in.NumPoints,
		PointTotalMass: in.PointTotalMass,
	})
	if err != nil {
		return 0, err
	}
	var total float64
	for _, p := range g.Points {
		if p.Upper == gradient.RefIntermediate {
			total += p.MassUpper
		} else {
			total += p.MassLower
		}
	}
	return total, nil
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
