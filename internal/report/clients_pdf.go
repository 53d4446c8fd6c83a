// Package report renders printable exports of workspace data.
package report

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/nelsferreir/meuescritoriodigital/internal/domain"
)

// Layout constants in points. A4 portrait is 595.28 x 841.89 pt.
const (
	pageWidth  = 595.28
	pageHeight = 841.89

	margin    = 50.0
	rowHeight = 25.0

	// body starts below the title block, stops above the footer
	pageTop    = pageHeight - margin - 50
	pageBottom = margin + 30
)

// column widths: name, email, phone, created date
var colWidths = [4]float64{150, 180, 100, 100}

var colTitles = [4]string{"Nome", "Email", "Telefone", "Data de Cadastro"}

// rowsPerPage counts body rows, table header row included.
func rowsPerPage() int {
	return int(math.Floor((pageTop - pageBottom) / rowHeight))
}

// TotalPages returns how many pages n client rows occupy. Every page
// repeats the table header, so one slot per page is not a data row.
func TotalPages(n int) int {
	perPage := rowsPerPage() - 1
	if perPage < 1 {
		perPage = 1
	}
	pages := (n + perPage - 1) / perPage
	if pages < 1 {
		pages = 1
	}
	return pages
}

// ClientsPDF renders the client roster as a paginated PDF table.
func ClientsPDF(clients []domain.Client, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)

	total := TotalPages(len(clients))
	perPage := rowsPerPage() - 1
	if perPage < 1 {
		perPage = 1
	}

	row := 0
	for page := 1; page <= total; page++ {
		pdf.AddPage()
		writePageHeader(pdf, generatedAt)
		writeTableHeader(pdf)

		for line := 0; line < perPage && row < len(clients); line++ {
			writeClientRow(pdf, clients[row], line)
			row++
		}

		writeFooter(pdf, page, total)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writePageHeader(pdf *gofpdf.Fpdf, generatedAt time.Time) {
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(30, 30, 30)
	pdf.SetXY(margin, margin)
	pdf.CellFormat(0, 24, tr("Relatório de Clientes"), "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(margin, margin)
	pdf.CellFormat(pageWidth-2*margin, 24,
		tr("Gerado em: "+generatedAt.Format("02/01/2006")), "", 0, "R", false, 0, "")

	pdf.SetDrawColor(180, 180, 180)
	pdf.Line(margin, margin+34, pageWidth-margin, margin+34)
}

func writeTableHeader(pdf *gofpdf.Fpdf) {
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(30, 30, 30)
	pdf.SetFillColor(230, 230, 230)
	pdf.SetXY(margin, pageHeight-pageTop)
	for i, title := range colTitles {
		pdf.CellFormat(colWidths[i], rowHeight, tr(title), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(rowHeight)
}

func writeClientRow(pdf *gofpdf.Fpdf, c domain.Client, line int) {
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(50, 50, 50)
	pdf.SetFillColor(245, 245, 245)
	shaded := line%2 == 0

	cells := [4]string{
		c.Name,
		orNA(c.Email),
		orNA(c.Phone),
		c.CreatedAt.Format("02/01/2006"),
	}

	pdf.SetX(margin)
	for i, cell := range cells {
		pdf.CellFormat(colWidths[i], rowHeight, tr(cell), "1", 0, "L", shaded, 0, "")
	}
	pdf.Ln(rowHeight)
}

func writeFooter(pdf *gofpdf.Fpdf, page, total int) {
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(margin, pageHeight-margin)
	pdf.CellFormat(pageWidth-2*margin, 12,
		tr(fmt.Sprintf("Página %d de %d", page, total)), "", 0, "C", false, 0, "")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
