package ai

import (
	"bytes"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// RenderBusinessPlanPDF lays out generated plan text as an A4 document.
// Markdown-style "## " and "**" markers from the model are treated as
// section headings; everything else flows as body paragraphs.
func RenderBusinessPlanPDF(title, plan string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.MultiCell(0, 9, title, "", "L", false)
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(0, 6, "Generated "+time.Now().Format("January 2, 2006"), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	for _, line := range strings.Split(plan, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			pdf.Ln(3)
			continue
		}

		if heading, ok := headingText(line); ok {
			pdf.Ln(2)
			pdf.SetFont("Arial", "B", 13)
			pdf.MultiCell(0, 7, heading, "", "L", false)
			pdf.Ln(1)
			continue
		}

		pdf.SetFont("Arial", "", 11)
		pdf.MultiCell(0, 6, stripMarkers(line), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func headingText(line string) (string, bool) {
	if strings.HasPrefix(line, "#") {
		return strings.TrimSpace(strings.TrimLeft(line, "# ")), true
	}
	if strings.HasPrefix(line, "**") && strings.HasSuffix(line, "**") && len(line) > 4 {
		return strings.TrimSuffix(strings.TrimPrefix(line, "**"), "**"), true
	}
	return "", false
}

func stripMarkers(line string) string {
	line = strings.ReplaceAll(line, "**", "")
	return strings.TrimPrefix(line, "- ")
}
