package doctext

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

var blankLines = regexp.MustCompile(`\n{3,}`)

// localDocURL stands in for the page URL readability wants; extracted files
// have no origin to resolve links against.
var localDocURL = &url.URL{Scheme: "file", Path: "/document.html"}

func fromHTMLFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read HTML file: %w", err)
	}
	return FromHTML(data)
}

// FromHTML extracts readable text from raw HTML. Readability gets the first
// shot; syllabi exported as bare HTML often have no article structure, so a
// goquery body-text pass is the fallback.
func FromHTML(data []byte) (string, error) {
	parser := readability.NewParser()
	article, err := parser.Parse(bytes.NewReader(data), localDocURL)
	if err == nil && strings.TrimSpace(article.TextContent) != "" {
		return normalizeWhitespace(article.TextContent), nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc.Find("script, style, nav, header, footer").Remove()
	body := doc.Find("body")
	if body.Length() == 0 {
		return normalizeWhitespace(doc.Text()), nil
	}
	return normalizeWhitespace(body.Text()), nil
}

func normalizeWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	joined := strings.Join(lines, "\n")
	return strings.TrimSpace(blankLines.ReplaceAllString(joined, "\n\n"))
}
