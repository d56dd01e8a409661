package structure

import (
	"context"
	"regexp"
	"strings"

	"github.com/scigraf/jatsgen/article"
	"github.com/scigraf/jatsgen/extract"
)

// Heuristic recovers article structure from heading layout alone, with no
// network dependency. It is deliberately conservative: whatever it cannot
// place with confidence is left empty for the assessor to flag.
type Heuristic struct{}

var (
	emailPattern     = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	keywordSeparator = regexp.MustCompile(`[,;]`)
)

// Known special-section headings, matched case-insensitively on the heading
// text. Manuscripts frequently mark these in plain body style, so a short
// paragraph matching one of these names counts as a heading too.
const (
	kindBody       = ""
	kindAbstractEs = "abstract_es"
	kindAbstractEn = "abstract_en"
	kindKeywordsEs = "keywords_es"
	kindKeywordsEn = "keywords_en"
	kindReferences = "references"
)

func sectionKind(heading string) string {
	h := strings.ToLower(strings.TrimRight(strings.TrimSpace(heading), ":."))
	switch h {
	case "resumen":
		return kindAbstractEs
	case "abstract", "summary":
		return kindAbstractEn
	case "palabras clave", "palabras claves":
		return kindKeywordsEs
	case "keywords", "key words":
		return kindKeywordsEn
	case "referencias", "bibliografía", "bibliografia", "references":
		return kindReferences
	}
	return kindBody
}

func looksLikeHeading(p extract.Paragraph) bool {
	if p.Level > 0 {
		return true
	}
	return len(p.Text) < 40 && sectionKind(p.Text) != kindBody
}

// Structure maps headings to sections and special blocks (resumen, abstract,
// palabras clave, referencias) and picks the first email found as the
// correspondence address.
func (Heuristic) Structure(_ context.Context, doc *extract.Document) (*article.Content, error) {
	content := &article.Content{TitleEs: doc.Title}

	currentTitle := ""
	currentKind := kindBody
	var buf []string

	flush := func() {
		text := strings.TrimSpace(strings.Join(buf, " "))
		buf = buf[:0]
		if text == "" && currentKind != kindReferences {
			return
		}
		switch currentKind {
		case kindAbstractEs:
			content.AbstractEs = text
		case kindAbstractEn:
			content.AbstractEn = text
		case kindKeywordsEs:
			content.KeywordsEs = splitKeywords(text)
		case kindKeywordsEn:
			content.KeywordsEn = splitKeywords(text)
		case kindReferences:
			// handled per paragraph below
		default:
			if currentTitle != "" {
				content.Sections = append(content.Sections, article.Section{
					Title:   currentTitle,
					Content: text,
				})
			}
		}
	}

	// The title paragraph is usually an exact match, but plain-text extraction
	// truncates long titles, so the first paragraph also counts on a prefix
	// match.
	titleConsumed := false
	for i, p := range doc.Paragraphs {
		if !titleConsumed && doc.Title != "" &&
			(p.Text == doc.Title || (i == 0 && strings.HasPrefix(p.Text, doc.Title))) {
			titleConsumed = true
			continue
		}
		if looksLikeHeading(p) {
			flush()
			currentTitle = p.Text
			currentKind = sectionKind(p.Text)
			continue
		}
		if currentKind == kindReferences {
			content.References = append(content.References, p.Text)
			continue
		}
		buf = append(buf, p.Text)
	}
	flush()

	if content.TitleEs == "" && len(doc.Paragraphs) > 0 {
		content.TitleEs = doc.Paragraphs[0].Text
	}
	if m := emailPattern.FindString(doc.RawText); m != "" {
		content.CorrespondingEmail = m
	}

	content.Normalize()
	return content, nil
}

func splitKeywords(text string) []string {
	parts := keywordSeparator.Split(text, -1)
	var kws []string
	for _, part := range parts {
		kw := strings.TrimSpace(strings.TrimRight(strings.TrimSpace(part), "."))
		if kw != "" {
			kws = append(kws, kw)
		}
	}
	return kws
}
