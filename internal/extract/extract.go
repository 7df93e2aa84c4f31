package extract

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// ErrFileRead marks any failure to read or decode an input document.
// Callers match it with errors.Is and leave previously loaded state untouched.
var ErrFileRead = errors.New("file read failed")

// Load reads a document from disk and returns its plain text.
// PDF files are extracted page by page, DOCX files through their
// word/document.xml body, and everything else is returned verbatim as UTF-8.
func Load(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", wrapRead(path, err)
	}
	return FromBytes(ctx, data, filepath.Base(path))
}

// FromBytes extracts plain text from an in-memory document payload.
// The file name decides the format; unknown extensions are treated as plain text.
func FromBytes(ctx context.Context, data []byte, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		text, err := extractPDF(data)
		if err != nil {
			return "", wrapRead(fileName, err)
		}
		return text, nil
	case ".docx":
		text, err := extractDOCX(data)
		if err != nil {
			return "", wrapRead(fileName, err)
		}
		return text, nil
	default:
		if !utf8.Valid(data) {
			return "", wrapRead(fileName, errors.New("not valid utf-8 text"))
		}
		return string(data), nil
	}
}

func wrapRead(name string, err error) error {
	return fmt.Errorf("load %s: %w: %v", filepath.Base(name), ErrFileRead, err)
}

// extractPDF walks the text layer page by page. Pages without extractable
// text (scanned images, blank pages) are skipped; the remaining pages are
// joined with single newlines and the result carries no trailing whitespace.
func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil || strings.TrimSpace(text) == "" {
			continue
		}
		pages = append(pages, text)
	}

	return strings.TrimRight(strings.Join(pages, "\n"), " \t\r\n"), nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	defer doc.Close()

	return stripDocxXML(doc.Editable().GetContent()), nil
}

func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return strings.TrimSpace(raw)
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
