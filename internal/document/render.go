package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ToJSON serializes a document to pretty JSON.
func ToJSON(d *Document) (string, error) {
	if d == nil {
		return "", errors.New("nil document")
	}
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ToPlainText joins the text of all text-bearing blocks in reading order,
// separated by blank lines. Non-text blocks are skipped.
func ToPlainText(d *Document) (string, error) {
	if d == nil {
		return "", errors.New("nil document")
	}
	parts := make([]string, 0, len(d.Content))
	for _, b := range d.Content {
		t := strings.TrimSpace(b.Text)
		if t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n\n"), nil
}

// ToMarkdown renders the document as markdown: titles and subtitles become
// headings, list elements become bullet items, and non-text blocks are
// emitted as placeholders so their position in the reading order survives.
func ToMarkdown(d *Document) (string, error) {
	if d == nil {
		return "", errors.New("nil document")
	}
	var sb strings.Builder
	for i, b := range d.Content {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		writeMarkdownBlock(&sb, b)
	}
	sb.WriteString("\n")
	return sb.String(), nil
}

func writeMarkdownBlock(sb *strings.Builder, b Block) {
	text := strings.TrimSpace(b.Text)
	switch b.Type {
	case BlockTitle:
		sb.WriteString("# " + strings.ReplaceAll(text, "\n", " "))
	case BlockSubTitle:
		sb.WriteString("## " + strings.ReplaceAll(text, "\n", " "))
	case BlockListElement:
		for j, line := range strings.Split(text, "\n") {
			if j > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString("- " + line)
		}
	case BlockImage:
		fmt.Fprintf(sb, "![image](page_%d)", b.PageRange.Start)
	case BlockTable:
		fmt.Fprintf(sb, "<!-- table on page %d -->", b.PageRange.Start)
	case BlockCaption:
		sb.WriteString("*" + strings.ReplaceAll(text, "\n", " ") + "*")
	default:
		sb.WriteString(text)
	}
}
