package density

import "math"

type Input struct {
	TemperatureC float64 `json:"temperature_c"`
}

type Result struct {
	WaterGCm3  float64 `json:"water_g_cm3"`
	SalineGCm3 float64 `json:"saline_g_cm3"`
}

// Calculate returns the density of pure water and of physiological saline
// (0.9% NaCl) at the given ambient temperature, in g/cm3.
//
// Water uses the Kell-style empirical polynomial (kg/m3), valid for typical
// lab temperatures; out-of-range inputs extrapolate without error. Water is
// rounded to 5 decimal places, saline = water * 1.0064 rounded to 4.
func Calculate(in Input) Result {
	t := in.TemperatureC
	rho := 1000 * (1 - (t+288.9414)/(508929.2*(t+68.12963))*(t-3.9863)*(t-3.9863))
	water := round(rho/1000, 5)
	saline := round(water*1.0064, 4)
	return Result{WaterGCm3: water, SalineGCm3: saline}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
