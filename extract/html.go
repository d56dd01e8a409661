package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// htmlPolicy strips scripts, styles, forms and event handlers before the
// tree walk, keeping only user-generated content markup.
var htmlPolicy = bluemonday.UGCPolicy()

// extractHTML scopes the page to its main content, sanitizes that subtree and
// walks it collecting headings and paragraphs in document order. Scoping runs
// on the raw parse because sanitization drops the structural elements
// (article, nav, div) the content detection relies on.
func extractHTML(data []byte) (string, []Paragraph, error) {
	raw, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return "", nil, fmt.Errorf("parse html: %w", err)
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, mainContent(raw)); err != nil {
		return "", nil, fmt.Errorf("render content: %w", err)
	}
	clean := htmlPolicy.SanitizeBytes(buf.Bytes())

	root, err := html.Parse(bytes.NewReader(clean))
	if err != nil {
		return "", nil, fmt.Errorf("parse html: %w", err)
	}

	var paras []Paragraph
	var title string

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := headingAtom(n.DataAtom); level > 0 {
				text := nodeText(n)
				if text != "" {
					if title == "" {
						title = text
					}
					paras = append(paras, Paragraph{Text: text, Level: level})
				}
				return
			}
			switch n.DataAtom {
			case atom.P, atom.Li, atom.Blockquote, atom.Td, atom.Th:
				text := nodeText(n)
				if text != "" {
					paras = append(paras, Paragraph{Text: text})
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return title, paras, nil
}

func headingAtom(a atom.Atom) int {
	switch a {
	case atom.H1:
		return 1
	case atom.H2:
		return 2
	case atom.H3:
		return 3
	case atom.H4:
		return 4
	case atom.H5:
		return 5
	case atom.H6:
		return 6
	}
	return 0
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return normalizeWhitespace(sb.String())
}
