package doctext

import (
	"archive/zip"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/beevik/etree"
)

// OOXML documents are zip archives of XML parts. DOCX keeps its body in
// word/document.xml with runs of <w:t> inside <w:p> paragraphs; PPTX keeps
// one ppt/slides/slideN.xml per slide with <a:t> runs.

func fromDOCX(path string) (string, error) {
	parts, err := readZipParts(path, func(name string) bool {
		return name == "word/document.xml"
	})
	if err != nil {
		return "", err
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no word/document.xml in %s, not a DOCX file", path)
	}

	paragraphs, err := textRuns(parts[0], "p", "t")
	if err != nil {
		return "", err
	}
	return strings.Join(paragraphs, "\n"), nil
}

func fromPPTX(path string) (string, error) {
	parts, err := readZipParts(path, func(name string) bool {
		return strings.HasPrefix(name, "ppt/slides/slide") && strings.HasSuffix(name, ".xml")
	})
	if err != nil {
		return "", err
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no slides in %s, not a PPTX file", path)
	}

	var slides []string
	for _, part := range parts {
		runs, err := textRuns(part, "p", "t")
		if err != nil {
			return "", err
		}
		if text := strings.TrimSpace(strings.Join(runs, "\n")); text != "" {
			slides = append(slides, text)
		}
	}
	return strings.Join(slides, "\n\n"), nil
}

type zipPart struct {
	name string
	data []byte
}

// readZipParts returns the matching archive entries sorted by name, so
// slide order is stable.
func readZipParts(path string, want func(name string) bool) ([]zipPart, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer zr.Close()

	var parts []zipPart
	for _, f := range zr.File {
		if !want(f.Name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open archive part %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read archive part %s: %w", f.Name, err)
		}
		parts = append(parts, zipPart{name: f.Name, data: data})
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i].name < parts[j].name })
	return parts, nil
}

// textRuns parses an XML part and returns, for each element with local name
// blockTag, the concatenated text of its runTag descendants. Namespace
// prefixes vary between producers, so matching is on local names.
func textRuns(part zipPart, blockTag, runTag string) ([]string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(part.data); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", part.name, err)
	}

	var blocks []string
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		if el.Tag == blockTag {
			var sb strings.Builder
			collectRuns(el, runTag, &sb)
			blocks = append(blocks, sb.String())
			return
		}
		for _, child := range el.ChildElements() {
			walk(child)
		}
	}
	if root := doc.Root(); root != nil {
		walk(root)
	}
	return blocks, nil
}

func collectRuns(el *etree.Element, runTag string, sb *strings.Builder) {
	if el.Tag == runTag {
		sb.WriteString(el.Text())
		return
	}
	for _, child := range el.ChildElements() {
		collectRuns(child, runTag, sb)
	}
}
