// Package ingestion decodes job descriptions from files before the pipeline
// runs. PDFs are extracted with ledongthuc/pdf, HTML pages are reduced to
// visible text with goquery, anything else is read as UTF-8 text.
package ingestion

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
)

// ReadJobDescription reads path and returns its plain-text content.
func ReadJobDescription(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read JD file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		text, err := extractPDF(data)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from PDF %s: %w", path, err)
		}
		return text, nil
	case ".html", ".htm":
		text, err := extractHTML(data)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from HTML %s: %w", path, err)
		}
		return text, nil
	default:
		return string(data), nil
	}
}

// FindLatest returns the most recently modified regular file in dir.
func FindLatest(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to scan JD directory %s: %w", dir, err)
	}

	var latest string
	var latestMod int64
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().UnixNano() > latestMod {
			latest = filepath.Join(dir, entry.Name())
			latestMod = info.ModTime().UnixNano()
		}
	}

	if latest == "" {
		return "", fmt.Errorf("no JD files found in %s", dir)
	}
	return latest, nil
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func extractHTML(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	doc.Find("script, style, noscript").Remove()
	return normalizeWhitespace(doc.Find("body").Text()), nil
}

// normalizeWhitespace collapses runs of blank space while keeping line breaks,
// so section structure survives the HTML flattening.
func normalizeWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	var out []string
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
