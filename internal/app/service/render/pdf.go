package render

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/careerpilot/backend/pkg/types"
)

const (
	pdfMarginLeft   = 15.0
	pdfMarginTop    = 15.0
	pdfMarginBottom = 18.0
	pdfLineHeight   = 5.5
)

// renderPDF walks the structured document model and lays the guide out with
// fixed font sizes and a monotonically advancing Y cursor. Content that
// overflows a page starts a new one; long sections are never clipped.
func renderPDF(doc *types.GuideDocument, compress bool) ([]byte, error) {
	if doc == nil || len(doc.CareerPaths) == 0 {
		return nil, fmt.Errorf("document has no career_paths: %w", ErrRenderFailed)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(compress)
	pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginLeft)
	pdf.SetAutoPageBreak(true, pdfMarginBottom)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	w := &pdfWriter{pdf: pdf, tr: tr}
	w.title(pageTitle)

	for _, path := range doc.CareerPaths {
		w.careerPath(&path)
	}

	w.roadmap(&doc.LearningRoadmap)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}

type pdfWriter struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

// ensureSpace starts a new page when fewer than need millimeters remain,
// so a heading never lands at the very bottom of a page.
func (w *pdfWriter) ensureSpace(need float64) {
	_, pageH := w.pdf.GetPageSize()
	if w.pdf.GetY()+need > pageH-pdfMarginBottom {
		w.pdf.AddPage()
	}
}

func (w *pdfWriter) title(s string) {
	w.pdf.SetFont("Helvetica", "B", 20)
	w.pdf.SetTextColor(41, 128, 185)
	w.pdf.CellFormat(0, 12, w.tr(s), "", 1, "C", false, 0, "")
	w.pdf.Ln(4)
}

func (w *pdfWriter) heading(s string) {
	w.ensureSpace(18)
	w.pdf.SetFont("Helvetica", "B", 15)
	w.pdf.SetTextColor(41, 128, 185)
	w.pdf.CellFormat(0, 9, w.tr(s), "", 1, "L", false, 0, "")
}

func (w *pdfWriter) subheading(s string) {
	w.ensureSpace(12)
	w.pdf.SetFont("Helvetica", "B", 12)
	w.pdf.SetTextColor(60, 60, 60)
	w.pdf.CellFormat(0, 7, w.tr(s), "", 1, "L", false, 0, "")
}

func (w *pdfWriter) paragraph(s string) {
	if s == "" {
		return
	}
	w.pdf.SetFont("Helvetica", "", 11)
	w.pdf.SetTextColor(51, 51, 51)
	w.pdf.MultiCell(0, pdfLineHeight, w.tr(s), "", "L", false)
	w.pdf.Ln(1)
}

func (w *pdfWriter) labeled(label, s string) {
	if s == "" {
		return
	}
	w.pdf.SetFont("Helvetica", "B", 11)
	w.pdf.SetTextColor(51, 51, 51)
	w.pdf.CellFormat(0, pdfLineHeight, w.tr(label), "", 1, "L", false, 0, "")
	w.paragraph(s)
}

func (w *pdfWriter) bullet(s string) {
	if s == "" {
		return
	}
	w.pdf.SetFont("Helvetica", "", 11)
	w.pdf.SetTextColor(51, 51, 51)
	w.pdf.SetX(pdfMarginLeft + 4)
	w.pdf.MultiCell(0, pdfLineHeight, w.tr("- "+s), "", "L", false)
	w.pdf.SetX(pdfMarginLeft)
}

func (w *pdfWriter) careerPath(p *types.CareerPath) {
	w.heading(p.Title)
	w.paragraph(p.Description)

	if len(p.RequiredSkills) > 0 {
		w.subheading("Required Skills")
		for _, s := range p.RequiredSkills {
			w.bullet(s)
		}
	}
	w.labeled("Salary Range", p.SalaryRange)
	w.labeled("Growth Potential", p.GrowthOutlook)
	w.labeled("Entry Requirements", p.EntryRequirements)

	if len(p.FreeCourses) > 0 {
		w.subheading("Free Courses")
		for _, c := range p.FreeCourses {
			line := c.Name
			if c.Platform != "" {
				line += " (" + c.Platform + ")"
			}
			if c.Duration != "" {
				line += " - " + c.Duration
			}
			if c.URL != "" {
				line += " - " + c.URL
			}
			w.bullet(line)
		}
	}

	if len(p.Internships) > 0 {
		w.subheading("Internship Opportunities")
		for _, in := range p.Internships {
			line := in.Platform
			if in.Requirements != "" {
				line += " - " + in.Requirements
			}
			if in.URL != "" {
				line += " - " + in.URL
			}
			w.bullet(line)
		}
	}
	w.pdf.Ln(4)
}

func (w *pdfWriter) roadmap(rm *types.LearningRoadmap) {
	periods := []struct {
		label string
		goals []string
	}{
		{"Short Term", rm.ShortTerm},
		{"Medium Term", rm.MediumTerm},
		{"Long Term", rm.LongTerm},
	}

	any := false
	for _, p := range periods {
		if len(p.goals) > 0 {
			any = true
			break
		}
	}
	if !any {
		return
	}

	w.heading("Learning & Development Roadmap")
	for _, p := range periods {
		if len(p.goals) == 0 {
			continue
		}
		w.subheading(p.label)
		for _, g := range p.goals {
			w.bullet(g)
		}
	}
}
