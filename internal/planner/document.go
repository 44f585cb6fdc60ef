package planner

import (
	"bytes"
	"context"
	"fmt"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

// Document renders the printable itinerary PDF: title block, one table per
// day with a subtotal, extras, grand total and a QR code linking back to the
// online plan.
func (s *Service) Document(ctx context.Context, id string) ([]byte, error) {
	plan, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(0, 12, plan.Title, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 8, fmt.Sprintf("Prepared by %s", plan.CreatedBy), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	for _, day := range plan.Days {
		pdf.SetFont("Arial", "B", 13)
		pdf.CellFormat(0, 9, fmt.Sprintf("Day %d - %s", day.DayIndex, day.Title), "B", 1, "L", false, 0, "")

		pdf.SetFont("Arial", "", 11)
		for _, act := range day.Activities {
			label := act.Title
			if act.DurationLabel != "" {
				label += " (" + act.DurationLabel + ")"
			}
			pdf.CellFormat(130, 7, label, "", 0, "L", false, 0, "")
			pdf.CellFormat(0, 7, fmt.Sprintf("$%.2f", act.Cost), "", 1, "R", false, 0, "")
		}

		pdf.SetFont("Arial", "I", 10)
		pdf.CellFormat(0, 7, fmt.Sprintf("Day subtotal: $%.2f", DayCost(day)), "", 1, "R", false, 0, "")
		pdf.Ln(2)
	}

	if len(plan.Extras) > 0 {
		pdf.SetFont("Arial", "B", 13)
		pdf.CellFormat(0, 9, "Extras", "B", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		for _, extra := range plan.Extras {
			pdf.CellFormat(130, 7, extra.Title, "", 0, "L", false, 0, "")
			pdf.CellFormat(0, 7, fmt.Sprintf("$%.2f", extra.Cost), "", 1, "R", false, 0, "")
		}
		pdf.Ln(2)
	}

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, fmt.Sprintf("Total: $%.2f", TotalCost(plan.Days, plan.Extras)), "T", 1, "R", false, 0, "")

	if s.baseURL != "" {
		qrPNG, err := qrcode.Encode(s.baseURL+"/plans/"+plan.ID, qrcode.Medium, 128)
		if err == nil {
			imgOpts := gofpdf.ImageOptions{ImageType: "png"}
			pdf.RegisterImageOptionsReader("plan-qr", imgOpts, bytes.NewReader(qrPNG))
			pdf.ImageOptions("plan-qr", 160, 250, 30, 30, false, imgOpts, 0, "")
		}
	}

	pdf.SetY(-25)
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(0, 8, "Prices are estimates until confirmed in your quote.", "T", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
