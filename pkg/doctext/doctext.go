// Package doctext extracts plain text from the document formats syllabi
// arrive in: PDF, DOCX, PPTX and HTML. Legacy binary Office formats (.doc,
// .ppt) are enumerated but rejected with a descriptive error so the batch
// records them instead of dropping them.
package doctext

import (
	"fmt"
	"path/filepath"
	"strings"
)

// supported maps lowercase extensions to their extractor.
var supported = map[string]func(path string) (string, error){
	".pdf":  fromPDF,
	".docx": fromDOCX,
	".pptx": fromPPTX,
	".html": fromHTMLFile,
	".htm":  fromHTMLFile,
	".doc":  legacyUnsupported,
	".ppt":  legacyUnsupported,
}

// Supported reports whether path has an extension the extract command
// should enumerate.
func Supported(path string) bool {
	_, ok := supported[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Format returns the lowercase extension without the leading dot.
func Format(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

// FromFile extracts the plain text of a document, dispatching on its
// extension.
func FromFile(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	extract, ok := supported[ext]
	if !ok {
		return "", fmt.Errorf("unsupported file type: %s", ext)
	}
	text, err := extract(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func legacyUnsupported(path string) (string, error) {
	return "", fmt.Errorf("legacy binary format %s is not supported, convert %s to the OOXML equivalent", filepath.Ext(path), filepath.Base(path))
}
