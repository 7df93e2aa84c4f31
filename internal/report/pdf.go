package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// PDF renders the paginated report: a centered title, a date line, and the
// analysis split into paragraphs on blank-line boundaries.
func (r Report) PDF() ([]byte, error) {
	doc := fpdf.New("P", "mm", "Letter", "")
	doc.SetTitle("Candidate Evaluation Report", true)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 10, "Candidate Evaluation Report", "", 1, "C", false, 0, "")
	doc.Ln(4)

	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, 6, "Date: "+r.Meta.GeneratedAt.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	doc.Ln(4)

	for _, para := range paragraphs(r.body()) {
		doc.MultiCell(0, 5, para, "", "L", false)
		doc.Ln(2)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
