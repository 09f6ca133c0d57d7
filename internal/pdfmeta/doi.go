// Package pdfmeta pulls identifying metadata out of PDF files.
package pdfmeta

import (
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// DOI pattern: 10.XXXX/... where XXXX is 4+ digits
var doiPattern = regexp.MustCompile(`10\.\d{4,9}/[^\s<>"{}|\\^~\[\]` + "`" + `]+`)

// ExtractDOI extracts a DOI from a PDF file. It searches the first few
// pages, where publishers put the identifier.
func ExtractDOI(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	maxPages := 3
	if r.NumPage() < maxPages {
		maxPages = r.NumPage()
	}

	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		if doi := findDOI(text); doi != "" {
			return doi, nil
		}
	}

	return "", nil // No DOI found (not an error)
}

// findDOI returns the first valid DOI in text.
func findDOI(text string) string {
	for _, match := range doiPattern.FindAllString(text, -1) {
		match = strings.TrimRight(match, ".,;:)")
		if isValidDOI(match) {
			return match
		}
	}
	return ""
}

// isValidDOI performs basic validation on a DOI.
func isValidDOI(doi string) bool {
	slash := strings.IndexByte(doi, '/')
	if slash < 0 || slash == len(doi)-1 {
		return false
	}
	// Suffixes shorter than this are registration noise, not articles
	return len(doi)-slash-1 >= 3
}
