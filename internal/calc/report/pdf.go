package report

import (
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"

	"LinearPanel/internal/calc/gradient"
	"LinearPanel/internal/calc/plan"
)

func labelFor(ref gradient.Ref) string {
	switch ref {
	case gradient.RefHigh:
		return "High stock"
	case gradient.RefLow:
		return "Low stock"
	default:
		return "Intermediate"
	}
}

func build(in plan.Input, res plan.Result, version string) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(25, 20, 20)

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(150, 150, 150)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "L", false, 0, "")
		pdf.SetY(-15)
		pdf.CellFormat(0, 10, fmt.Sprintf("Version: %s", version), "", 0, "R", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	effW := pageW - left - right

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Linear Calibration Panel Preparation Record", "", 1, "C", false, 0, "")
	pdf.Ln(5)

	meta := [][2]string{
		{"Version", version},
		{"Experiment", in.Experiment},
		{"Temperature", fmt.Sprintf("%.1f degC", in.TemperatureC)},
		{"Water density", fmt.Sprintf("%.5f g/cm3", res.WaterDensity)},
		{"Saline density", fmt.Sprintf("%.4f g/cm3", res.SalineDensity)},
		{"High stock", fmt.Sprintf("%.2f %s (density %.4f)", in.High.Conc, in.ConcUnit, in.High.Density)},
		{"Low stock", fmt.Sprintf("%.2f %s (density %.4f)", in.Low.Conc, in.ConcUnit, in.Low.Density)},
		{"Intermediate", fmt.Sprintf("%.2f %s (density %.4f)", res.Intermediate.AchievedConc, in.ConcUnit, res.Intermediate.AchievedDensity)},
		{"High stock used", fmt.Sprintf("%.1f %s", res.TotalHighUsed, in.MassUnit)},
		{"Low stock used", fmt.Sprintf("%.1f %s", res.TotalLowUsed, in.MassUnit)},
		{"Exported", time.Now().Format("2006-01-02 15:04")},
	}
	pdf.SetFont("Helvetica", "", 10)
	colW := effW / 2
	for i := 0; i < len(meta); i += 2 {
		pdf.CellFormat(colW, 8, fmt.Sprintf("%s: %s", meta[i][0], meta[i][1]), "", 0, "L", false, 0, "")
		if i+1 < len(meta) {
			pdf.CellFormat(colW, 8, fmt.Sprintf("%s: %s", meta[i+1][0], meta[i+1][1]), "", 1, "L", false, 0, "")
		} else {
			pdf.Ln(8)
		}
	}
	pdf.Ln(4)
	pdf.Line(left, pdf.GetY(), pageW-right, pdf.GetY())
	pdf.Ln(5)

	// Intermediate prep table
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 10, "1. Intermediate Prep Details", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	midHeaders := []string{
		"Component",
		fmt.Sprintf("Theoretical mass (%s)", in.MassUnit),
		fmt.Sprintf("Added mass (%s)", in.MassUnit),
		fmt.Sprintf("Target conc (%s)", in.ConcUnit),
		fmt.Sprintf("Achieved conc (%s)", in.ConcUnit),
	}
	midW := effW / float64(len(midHeaders))
	pdf.SetFillColor(245, 245, 245)
	for _, hd := range midHeaders {
		pdf.CellFormat(midW, 8, hd, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	inter := res.Intermediate
	midRows := [][]string{
		{"High stock", fmt.Sprintf("%.1f", inter.TheoMassHigh), fmt.Sprintf("%.1f", inter.ActualMassHigh), "-", "-"},
		{"Low stock", fmt.Sprintf("%.1f", inter.TheoMassLow), fmt.Sprintf("%.1f", inter.ActualMassLow), "-", "-"},
		{
			"Total (intermediate)",
			fmt.Sprintf("%.1f", inter.TheoMassHigh+inter.TheoMassLow),
			fmt.Sprintf("%.1f", inter.ActualMassHigh+inter.ActualMassLow),
			fmt.Sprintf("%.2f", inter.TargetConc),
			fmt.Sprintf("%.2f", inter.AchievedConc),
		},
	}
	for _, row := range midRows {
		for _, cell := range row {
			pdf.CellFormat(midW, 8, cell, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(10)

	// Gradient table
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 10, "2. Gradient Dilution Plan", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	gradHeaders := []string{"#", "Target conc", "Material A", "Material B", "Mass A", "Mass B", "Achieved conc"}
	gradW := effW / float64(len(gradHeaders))
	pdf.SetFillColor(235, 235, 235)
	for _, hd := range gradHeaders {
		pdf.CellFormat(gradW, 10, hd, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	for _, p := range res.Points {
		cells := []string{
			fmt.Sprintf("%d", p.Index),
			fmt.Sprintf("%.2f", p.TargetConc),
			labelFor(p.Upper),
			labelFor(p.Lower),
			fmt.Sprintf("%.1f", p.MassUpper),
			fmt.Sprintf("%.1f", p.MassLower),
			fmt.Sprintf("%.2f", p.AchievedConc),
		}
		for _, cell := range cells {
			pdf.CellFormat(gradW, 10, cell, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf
}
