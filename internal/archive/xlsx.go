// Package archive reads and writes the session archive: an xlsx workbook with
// a Settings sheet (parameter/value pairs covering every input) and a Gradient
// sheet (one row per dilution point). Re-importing an export and recomputing
// reproduces the same achieved concentrations.
package archive

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"LinearPanel/internal/calc/plan"
)

const (
	SettingsSheet = "Settings"
	GradientSheet = "Gradient"
)

func Build(in plan.Input, res plan.Result, version string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SettingsSheet); err != nil {
		return nil, err
	}

	settings := [][]interface{}{
		{"parameter", "value"},
		{"version", version},
		{"experiment", in.Experiment},
		{"conc_unit", in.ConcUnit},
		{"mass_unit", in.MassUnit},
		{"temperature_c", in.TemperatureC},
		{"high_conc", in.High.Conc},
		{"high_density", in.High.Density},
		{"low_conc", in.Low.Conc},
		{"low_density", in.Low.Density},
		{"num_points", in.NumPoints},
		{"point_total_mass", in.PointTotalMass},
		{"mid_target_conc", res.Intermediate.TargetConc},
		{"mid_planned_mass", res.Intermediate.PlannedMass},
		{"mid_actual_high", res.Intermediate.ActualMassHigh},
		{"mid_actual_low", res.Intermediate.ActualMassLow},
	}
	for i, row := range settings {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(SettingsSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet(GradientSheet); err != nil {
		return nil, err
	}
	header := []interface{}{
		"index", "target_conc", "upper_material", "lower_material",
		"mass_upper", "mass_lower", "achieved_conc",
	}
	if err := f.SetSheetRow(GradientSheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, p := range res.Points {
		row := []interface{}{
			p.Index, p.TargetConc, string(p.Upper), string(p.Lower),
			p.MassUpper, p.MassLower, p.AchievedConc,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(GradientSheet, cell, &row); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Parse reads an archive back into a plan input. Target and mass columns of
// the Gradient sheet become per-point overrides, so recomputation reproduces
// the archived achieved concentrations instead of fresh theoretical defaults.
func Parse(r io.Reader) (plan.Input, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return plan.Input{}, fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SettingsSheet)
	if err != nil {
		return plan.Input{}, fmt.Errorf("settings sheet: %w", err)
	}
	settings := make(map[string]string, len(rows))
	for i, row := range rows {
		if i == 0 || len(row) < 2 {
			continue
		}
		settings[row[0]] = row[1]
	}

	var in plan.Input
	in.Experiment = settings["experiment"]
	in.ConcUnit = settings["conc_unit"]
	in.MassUnit = settings["mass_unit"]
	if in.TemperatureC, err = toFloat(settings["temperature_c"]); err != nil {
		return plan.Input{}, fmt.Errorf("temperature_c: %w", err)
	}
	if in.High.Conc, err = toFloat(settings["high_conc"]); err != nil {
		return plan.Input{}, fmt.Errorf("high_conc: %w", err)
	}
	if in.High.Density, err = toFloat(settings["high_density"]); err != nil {
		return plan.Input{}, fmt.Errorf("high_density: %w", err)
	}
	if in.Low.Conc, err = toFloat(settings["low_conc"]); err != nil {
		return plan.Input{}, fmt.Errorf("low_conc: %w", err)
	}
	if in.Low.Density, err = toFloat(settings["low_density"]); err != nil {
		return plan.Input{}, fmt.Errorf("low_density: %w", err)
	}
	np, err := toFloat(settings["num_points"])
	if err != nil {
		return plan.Input{}, fmt.Errorf("num_points: %w", err)
	}
	in.NumPoints = int(np)
	if in.PointTotalMass, err = toFloat(settings["point_total_mass"]); err != nil {
		return plan.Input{}, fmt.Errorf("point_total_mass: %w", err)
	}
	for key, dst := range map[string]**float64{
		"mid_target_conc":  &in.MidTargetConc,
		"mid_planned_mass": &in.MidPlannedMass,
		"mid_actual_high":  &in.MidActualHigh,
		"mid_actual_low":   &in.MidActualLow,
	} {
		if s, ok := settings[key]; ok && s != "" {
			v, err := toFloat(s)
			if err != nil {
				return plan.Input{}, fmt.Errorf("%s: %w", key, err)
			}
			*dst = &v
		}
	}

	grows, err := f.GetRows(GradientSheet)
	if err != nil {
		return plan.Input{}, fmt.Errorf("gradient sheet: %w", err)
	}
	for i := 1; i < len(grows); i++ {
		row := grows[i]
		if len(row) < 6 {
			continue
		}
		var o plan.PointOverride
		if tc, err := toFloat(row[1]); err == nil {
			o.TargetConc = &tc
		}
		if mu, err := toFloat(row[4]); err == nil {
			o.MassUpper = &mu
		}
		if ml, err := toFloat(row[5]); err == nil {
			o.MassLower = &ml
		}
		in.Overrides = append(in.Overrides, o)
	}
	return in, nil
}

func toFloat(s string) (float64, error) {
	var v float64
	_, err := fmt.Sscanf(s, "%f", &v)
	return v, err
}
