// Package export renders organizer downloads.
package export

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/ueldo/ueldo-backend/internal/models"
)

// RegistrationsPDF renders one row per registration: #, phone, status, date.
func RegistrationsPDF(comp *models.Competition, regs []models.Registration, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(comp.Name+" registrations", true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 10, tr(comp.Name), "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("%s / %s  |  %s  |  %s", comp.Category, comp.Subcategory, comp.Date, comp.Venue)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Entry fee: %d  |  Approved: %d  |  Status: %s", comp.EntryFee, comp.Registrations, comp.Status), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Generated "+generatedAt.UTC().Format("2006-01-02 15:04 MST"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	widths := []float64{12, 70, 40, 58}
	headers := []string{"#", "Phone", "Status", "Registered"}

	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 11)
	for i, r := range regs {
		cells := []string{
			strconv.Itoa(i + 1),
			tr(r.Participant.Phone),
			string(r.Status),
			r.CreatedAt.UTC().Format("2006-01-02 15:04"),
		}
		for j, cell := range cells {
			pdf.CellFormat(widths[j], 7, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	if len(regs) == 0 {
		pdf.CellFormat(0, 8, "No registrations yet.", "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
