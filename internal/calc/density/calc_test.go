package density

import (
	"math"
	"testing"
)

func TestCalculate_KnownTemperatures(t *testing.T) {
	cases := []struct {
		tempC  float64
		water  float64
		saline float64
	}{
		{0, 0.99987, 1.0063},
		{4, 1.00000, 1.0064},
		{10, 0.99973, 1.0061},
		{20, 0.99823, 1.0046},
		{22, 0.99780, 1.0042},
		{25, 0.99708, 1.0035},
		{40, 0.99225, 0.9986},
	}
	for _, c := range cases {
		res := Calculate(Input{TemperatureC: c.tempC})
		if res.WaterGCm3 != c.water {
			t.Errorf("water at %.0f C: expected %v, got %v", c.tempC, c.water, res.WaterGCm3)
		}
		if res.SalineGCm3 != c.saline {
			t.Errorf("saline at %.0f C: expected %v, got %v", c.tempC, c.saline, res.SalineGCm3)
		}
	}
}

func TestCalculate_SalineTracksWater(t *testing.T) {
	// saline = round(water * 1.0064, 4) over the whole lab-ambient range
	for tc := 0.0; tc <= 40.0; tc += 0.5 {
		res := Calculate(Input{TemperatureC: tc})
		want := math.Round(res.WaterGCm3*1.0064*1e4) / 1e4
		if res.SalineGCm3 != want {
			t.Errorf("at %.1f C: expected saline %v, got %v", tc, want, res.SalineGCm3)
		}
	}
}

func TestCalculate_WaterPeaksNearFourDegrees(t *testing.T) {
	peak := Calculate(Input{TemperatureC: 3.9863}).WaterGCm3
	for _, tc := range []float64{0, 10, 20, 30, 40} {
		if got := Calculate(Input{TemperatureC: tc}).WaterGCm3; got > peak {
			t.Errorf("water density at %.0f C (%v) exceeds the 4 C maximum (%v)", tc, got, peak)
		}
	}
}

func TestCalculate_OutOfRangeExtrapolates(t *testing.T) {
	// No error path: extreme temperatures still produce a finite value.
	for _, tc := range []float64{-40, 150} {
		res := Calculate(Input{TemperatureC: tc})
		if math.IsNaN(res.WaterGCm3) || math.IsInf(res.WaterGCm3, 0) {
			t.Errorf("at %.0f C: expected finite density, got %v", tc, res.WaterGCm3)
		}
	}
}
