package service

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/richardlehane/mscfb"
)

// Supported document MIME types.
const (
	MimePDF  = "application/pdf"
	MimeDOC  = "application/msword"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ErrUnsupportedFormat is returned for MIME types no extractor handles.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// ExtractionResult is the plain text of a document plus structural metadata.
// PageCount is only known for PDFs; Word formats report 0.
type ExtractionResult struct {
	Text      string
	PageCount int
	WordCount int
}

// ExtractText converts the file at path into plain text based on its
// declared MIME type. Parser failures are terminal: there is no retry.
func ExtractText(path, mimeType string) (*ExtractionResult, error) {
	var (
		text  string
		pages int
		err   error
	)

	switch mimeType {
	case MimePDF:
		text, pages, err = extractPDF(path)
	case MimeDOCX:
		text, err = extractDOCX(path)
	case MimeDOC:
		text, err = extractDOC(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, mimeType)
	}
	if err != nil {
		return nil, fmt.Errorf("text extraction failed: %w", err)
	}

	return &ExtractionResult{
		Text:      text,
		PageCount: pages,
		WordCount: len(strings.Fields(text)),
	}, nil
}

func extractPDF(path string) (string, int, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", 0, fmt.Errorf("extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", 0, fmt.Errorf("read extracted text: %w", err)
	}

	return buf.String(), r.NumPage(), nil
}

// extractDOCX pulls the document body out of word/document.xml. A .docx file
// is a ZIP archive; every piece of visible text lives in <w:t> elements and
// paragraphs end at </w:p>.
func extractDOCX(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer zr.Close()

	var doc *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		return "", errors.New("docx has no word/document.xml")
	}

	rc, err := doc.Open()
	if err != nil {
		return "", fmt.Errorf("open document.xml: %w", err)
	}
	defer rc.Close()

	var sb strings.Builder
	decoder := xml.NewDecoder(rc)
	inText := false
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}

	return sb.String(), nil
}

// extractDOC salvages text from a legacy Word binary. The file is an OLE
// compound document; the WordDocument stream mixes text with binary control
// data, so this keeps printable runs and drops the rest. Best effort only.
func extractDOC(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open doc: %w", err)
	}
	defer f.Close()

	cf, err := mscfb.New(f)
	if err != nil {
		return "", fmt.Errorf("parse compound file: %w", err)
	}

	for entry, err := cf.Next(); err == nil; entry, err = cf.Next() {
		if entry.Name != "WordDocument" {
			continue
		}
		raw, err := io.ReadAll(entry)
		if err != nil {
			return "", fmt.Errorf("read WordDocument stream: %w", err)
		}
		return salvagePrintable(raw), nil
	}

	return "", errors.New("doc has no WordDocument stream")
}

// salvagePrintable keeps runs of printable characters of at least minRun
// bytes, joining them with spaces. Shorter runs are almost always control
// data rather than prose.
func salvagePrintable(raw []byte) string {
	const minRun = 4

	var sb strings.Builder
	var run []byte
	flush := func() {
		if len(run) >= minRun {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.Write(run)
		}
		run = run[:0]
	}

	for _, b := range raw {
		if b >= 0x20 && b < 0x7f || b == '\n' || b == '\t' {
			run = append(run, b)
		} else {
			flush()
		}
	}
	flush()

	return sb.String()
}
