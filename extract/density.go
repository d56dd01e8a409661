package extract

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// mainContent locates the subtree holding the manuscript body. HTML exports
// from word processors and journal portals wrap the article in site chrome
// (navigation, sidebars, footers); scoping the paragraph walk to the main
// content keeps that noise out of the structured text.
//
// Semantic landmarks (<article>, <main>, role="main") win when present.
// Otherwise the densest content subtree is chosen: most text relative to its
// element count, discounting link-heavy regions. Falls back to the whole
// document when nothing qualifies.
func mainContent(doc *html.Node) *html.Node {
	if n := findLandmark(doc); n != nil {
		return n
	}
	body := findBody(doc)
	if body == nil {
		return doc
	}
	if n := densestNode(body); n != nil {
		return n
	}
	return body
}

func findLandmark(doc *html.Node) *html.Node {
	var found *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode && !isBoilerplate(n) {
			if n.DataAtom == atom.Article || n.DataAtom == atom.Main || attrVal(n, "role") == "main" {
				found = n
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return found
}

// minContentLen is the smallest text size a subtree must carry to be
// considered as the article body.
const minContentLen = 200

func densestNode(body *html.Node) *html.Node {
	var best *html.Node
	var bestScore float64

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type != html.ElementNode || isBoilerplate(n) {
			return
		}
		switch n.DataAtom {
		case atom.Div, atom.Section, atom.Article, atom.Main, atom.Body:
			textLen := len(nodeText(n))
			if textLen >= minContentLen {
				elems := countElements(n)
				if elems == 0 {
					elems = 1
				}
				linkLen := len(linkText(n))
				linkShare := float64(linkLen) / float64(textLen)
				if linkShare <= 0.5 {
					score := float64(textLen) / float64(elems) * (1 - linkShare)
					if score > bestScore {
						bestScore = score
						best = n
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(body)
	return best
}

// isBoilerplate reports whether a node is site chrome rather than content.
func isBoilerplate(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Nav, atom.Footer, atom.Aside, atom.Header:
		return true
	}
	hint := strings.ToLower(attrVal(n, "class") + " " + attrVal(n, "id"))
	for _, marker := range []string{"nav", "menu", "sidebar", "footer", "comment", "banner", "cookie"} {
		if strings.Contains(hint, marker) {
			return true
		}
	}
	return false
}

func attrVal(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func countElements(n *html.Node) int {
	count := 0
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			count++
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return count
}

// linkText collects text contained in <a> elements only.
func linkText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node, bool)
	walk = func(n *html.Node, inLink bool) {
		if n.Type == html.ElementNode && n.DataAtom == atom.A {
			inLink = true
		}
		if n.Type == html.TextNode && inLink {
			sb.WriteString(strings.TrimSpace(n.Data))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inLink)
		}
	}
	walk(n, false)
	return sb.String()
}

func findBody(doc *html.Node) *html.Node {
	var body *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if body != nil {
			return
		}
		if n.Type == html.ElementNode && n.DataAtom == atom.Body {
			body = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return body
}
