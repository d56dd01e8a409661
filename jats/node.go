package jats

import "strings"

// The renderer builds a typed element tree and serializes it once, so every
// piece of untrusted text passes through a single escaping point. Nothing in
// this file knows about JATS semantics.

type nodeKind int

const (
	kindElem nodeKind = iota
	kindText
	kindComment
)

type attr struct {
	name  string
	value string
}

type node struct {
	kind  nodeKind
	name  string
	attrs []attr
	kids  []*node
	text  string
}

func el(name string, attrs ...attr) *node {
	return &node{kind: kindElem, name: name, attrs: attrs}
}

func at(name, value string) attr {
	return attr{name: name, value: value}
}

func text(s string) *node {
	return &node{kind: kindText, text: s}
}

func comment(s string) *node {
	return &node{kind: kindComment, text: s}
}

// add appends children and returns the receiver for chaining.
func (n *node) add(kids ...*node) *node {
	for _, k := range kids {
		if k != nil {
			n.kids = append(n.kids, k)
		}
	}
	return n
}

// txt is shorthand for an element wrapping a single text node.
func txt(name, s string, attrs ...attr) *node {
	return el(name, attrs...).add(text(s))
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

func escape(s string) string {
	return xmlEscaper.Replace(s)
}

// commentText makes untrusted text safe inside a comment. Comments are not
// entity-parsed, and the sequence "--" is illegal in them, so it is broken
// up rather than escaped.
func commentText(s string) string {
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "- -")
	}
	return s
}

const indentStep = "  "

func (n *node) write(sb *strings.Builder, depth int) {
	pad := strings.Repeat(indentStep, depth)

	switch n.kind {
	case kindText:
		sb.WriteString(pad)
		sb.WriteString(escape(n.text))
		sb.WriteByte('\n')
		return
	case kindComment:
		sb.WriteString(pad)
		sb.WriteString("<!-- ")
		sb.WriteString(commentText(n.text))
		sb.WriteString(" -->\n")
		return
	}

	sb.WriteString(pad)
	sb.WriteByte('<')
	sb.WriteString(n.name)
	for _, a := range n.attrs {
		sb.WriteByte(' ')
		sb.WriteString(a.name)
		sb.WriteString(`="`)
		sb.WriteString(escape(a.value))
		sb.WriteByte('"')
	}

	if len(n.kids) == 0 {
		sb.WriteString("/>\n")
		return
	}

	// Pure text content stays on one line.
	if n.textOnly() {
		sb.WriteByte('>')
		for _, k := range n.kids {
			sb.WriteString(escape(k.text))
		}
		sb.WriteString("</")
		sb.WriteString(n.name)
		sb.WriteString(">\n")
		return
	}

	sb.WriteString(">\n")
	for _, k := range n.kids {
		k.write(sb, depth+1)
	}
	sb.WriteString(pad)
	sb.WriteString("</")
	sb.WriteString(n.name)
	sb.WriteString(">\n")
}

func (n *node) textOnly() bool {
	for _, k := range n.kids {
		if k.kind != kindText {
			return false
		}
	}
	return true
}
