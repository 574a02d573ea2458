package book

import (
	"fmt"

	"github.com/go-pdf/fpdf"
)

// Render draws a laid-out document to a PDF file at path. Pagination
// decisions were all made by BuildLayout; rendering only walks pages
// and typesets lines, so the PDF page count always equals the layout
// page count.
func Render(doc *Document, path string, cfg Config) error {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "in",
		Size:           fpdf.SizeType{Wd: cfg.PageWidth, Ht: cfg.PageHeight},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle("ShowBook - The Complete Streaming Guide", false)

	// Core fonts only speak cp1252; translate rather than error out on
	// the occasional curly quote in a title.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	total := doc.PageCount()
	for _, page := range doc.Pages {
		left, right := pageMargins(page, cfg)
		pdf.SetMargins(left, cfg.TopMargin, right)
		pdf.AddPage()

		if page.Kind == PageBlank {
			continue
		}

		width := cfg.PageWidth - left - right
		y := cfg.TopMargin
		for _, line := range page.Lines {
			if line.Style != StyleSpacer && line.Text != "" {
				setFont(pdf, line.Style)
				pdf.SetXY(left, y)
				pdf.CellFormat(width, line.Height(), tr(line.Text), "", 0, alignFor(line.Style), false, 0, "")
				if line.Style == StyleHeading {
					ruleY := y + line.Height() - 0.05
					pdf.Line(left, ruleY, left+width, ruleY)
				}
			}
			y += line.Height()
		}

		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetXY(left, cfg.PageHeight-cfg.BottomMargin-0.25)
		pdf.CellFormat(width, 0.25, fmt.Sprintf("Page %d/%d", page.Number, total), "", 0, "C", false, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render document: %w", err)
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

// pageMargins mirrors the margins by page parity: the gutter edge gets
// the binding margin, the outer edge the outside margin.
func pageMargins(page *Page, cfg Config) (left, right float64) {
	if page.Gutter() == SideLeft {
		return cfg.GutterMargin, cfg.OutsideMargin
	}
	return cfg.OutsideMargin, cfg.GutterMargin
}

func setFont(pdf *fpdf.Fpdf, style LineStyle) {
	switch style {
	case StyleTitle:
		pdf.SetFont("Helvetica", "B", 40)
	case StyleSubtitle:
		pdf.SetFont("Helvetica", "", 16)
	case StyleEpigraph:
		pdf.SetFont("Helvetica", "I", 10)
	case StyleHeader:
		pdf.SetFont("Helvetica", "I", 8)
	case StyleHeading:
		pdf.SetFont("Helvetica", "B", 24)
	case StyleSubheading:
		pdf.SetFont("Helvetica", "B", 13)
	case StyleIndexRow:
		pdf.SetFont("Helvetica", "", 11)
	default:
		pdf.SetFont("Helvetica", "", 8)
	}
}

func alignFor(style LineStyle) string {
	switch style {
	case StyleTitle, StyleSubtitle, StyleEpigraph, StyleHeader:
		return "C"
	default:
		return "L"
	}
}
