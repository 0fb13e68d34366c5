// Package pdf renders exported blueprints with gofpdf.
package pdf

import (
	"bytes"

	"github.com/phpdave11/gofpdf"

	"github.com/neweraservicez/startup-os/internal/app/export"
)

const (
	margin = 50.0

	titleSize   = 24.0
	headingSize = 16.0
	bodySize    = 11.0
)

type rgb struct{ r, g, b int }

var (
	titleColor   = rgb{0x0F, 0x11, 0x13}
	headingColor = rgb{0x00, 0xCF, 0xFF}
	bodyColor    = rgb{0x5E, 0x63, 0x66}
)

// Renderer writes a Letter-sized, paginated document.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

var _ export.Renderer = (*Renderer)(nil)

func (r *Renderer) Render(doc export.Document) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetTitle(doc.Title, true)
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.AddPage()

	// Core fonts are cp1252; translate from UTF-8.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	setColor(pdf, titleColor)
	pdf.SetFont("Helvetica", "B", titleSize)
	pdf.MultiCell(0, titleSize*1.2, tr(doc.Title), "", "C", false)
	pdf.Ln(titleSize)

	setColor(pdf, bodyColor)
	pdf.SetFont("Helvetica", "", bodySize)
	pdf.MultiCell(0, bodySize*1.4, tr(doc.Subtitle), "", "L", false)
	pdf.Ln(30)

	for _, sec := range doc.Sections {
		setColor(pdf, headingColor)
		pdf.SetFont("Helvetica", "B", headingSize)
		pdf.MultiCell(0, headingSize*1.2, tr(sec.Heading), "", "L", false)
		pdf.Ln(headingSize * 0.75)

		setColor(pdf, bodyColor)
		pdf.SetFont("Helvetica", "", bodySize)
		pdf.MultiCell(0, bodySize*1.4, tr(sec.Status), "", "L", false)
		pdf.Ln(bodySize * 0.7)

		for _, f := range sec.Fields {
			pdf.SetFont("Helvetica", "B", bodySize)
			pdf.Write(bodySize*1.4, tr(f.Label+": "))
			pdf.SetFont("Helvetica", "", bodySize)
			pdf.Write(bodySize*1.4, tr(f.Value))
			pdf.Ln(bodySize * 2.1)
		}

		pdf.Ln(20)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func setColor(pdf *gofpdf.Fpdf, c rgb) {
	pdf.SetTextColor(c.r, c.g, c.b)
}
