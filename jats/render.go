// Package jats renders a structured article into a SciELO SPS 1.9 conformant
// JATS 1.1 XML document.
//
// Render is total for normalized input: missing optional content produces
// placeholder markup plus an inline comment for human review, never an error.
// The assessor, not the renderer, judges content completeness.
package jats

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/scigraf/jatsgen/article"
)

const (
	xmlDeclaration = `<?xml version="1.0" encoding="UTF-8"?>`
	doctype        = `<!DOCTYPE article PUBLIC "-//NLM//DTD JATS (Z39.96) Journal Publishing DTD v1.1 20151215//EN" "https://jats.nlm.nih.gov/publishing/1.1/JATS-journalpublishing1.dtd">`

	xlinkNS = "http://www.w3.org/1999/xlink"
	mmlNS   = "http://www.w3.org/1998/Math/MathML"

	licenseText = "Este es un artículo en acceso abierto distribuido bajo los términos de la licencia Creative Commons."
)

// Render serializes content and config into a well-formed JATS XML document.
// Input must be normalized (see article.Content.Normalize); ordering of
// authors, sections, references, figures and tables is preserved verbatim.
func Render(content *article.Content, cfg *article.Config) string {
	root := el("article",
		at("dtd-version", "1.1"),
		at("specific-use", "sps-1.9"),
		at("article-type", cfg.Article.ArticleType),
		at("xml:lang", "es"),
		at("xmlns:xlink", xlinkNS),
		at("xmlns:mml", mmlNS),
	)
	root.add(
		el("front").add(journalMeta(cfg), articleMeta(content, cfg)),
		body(content),
		back(content),
	)

	var sb strings.Builder
	sb.WriteString(xmlDeclaration)
	sb.WriteByte('\n')
	sb.WriteString(doctype)
	sb.WriteByte('\n')
	root.write(&sb, 0)
	return sb.String()
}

// journalMeta emits the journal identity verbatim. Config fields are trusted
// operator values but still pass through the central escaper.
func journalMeta(cfg *article.Config) *node {
	j := cfg.Journal
	return el("journal-meta").add(
		txt("journal-id", j.PublisherID, at("journal-id-type", "publisher-id")),
		el("journal-title-group").add(
			txt("journal-title", j.Title),
			txt("abbrev-journal-title", j.AbbrevTitle, at("abbrev-type", "publisher")),
		),
		txt("issn", j.PISSN, at("pub-type", "ppub")),
		txt("issn", j.EISSN, at("pub-type", "epub")),
		el("publisher").add(txt("publisher-name", j.Publisher)),
	)
}

func articleMeta(content *article.Content, cfg *article.Config) *node {
	a := cfg.Article
	meta := el("article-meta").add(
		txt("article-id", a.DOI, at("pub-id-type", "doi")),
		titleGroup(content),
		contribGroup(content),
	)
	meta.add(affiliations(content)...)
	meta.add(authorNotes(content))
	meta.add(history(content))
	meta.add(pubDate(a.PubDate))
	meta.add(
		el("pub-date", at("date-type", "collection"), at("publication-format", "electronic")).
			add(txt("year", a.CollectionYear)),
		txt("volume", a.Volume),
		txt("issue", a.Issue),
		txt("elocation-id", a.Elocation),
		el("permissions").add(
			el("license", at("license-type", "open-access"), at("xlink:href", a.LicenseURL)).
				add(txt("license-p", licenseText)),
		),
	)
	meta.add(abstracts(content)...)
	meta.add(keywordGroups(content)...)
	meta.add(counts(content))
	return meta
}

func titleGroup(content *article.Content) *node {
	title := content.TitleEs
	if title == "" {
		title = "[TÍTULO PENDIENTE]"
	}
	g := el("title-group").add(txt("article-title", title))
	if content.TitleEn != "" {
		g.add(el("trans-title-group", at("xml:lang", "en")).
			add(txt("trans-title", content.TitleEn)))
	}
	return g
}

// contribGroup emits one contrib per author in input order. Downstream
// validators expect at least one contributor, so zero authors produces a
// bracketed placeholder contrib rather than an empty group. The affiliation
// xref is the author's 1-based position; the first author is the
// correspondence target.
func contribGroup(content *article.Content) *node {
	g := el("contrib-group")
	if len(content.Authors) == 0 {
		g.add(
			comment("PENDIENTE: No se detectaron autores automáticamente"),
			el("contrib", at("contrib-type", "author")).add(
				el("name").add(txt("surname", "[APELLIDO]"), txt("given-names", "[NOMBRES]")),
				affXref(1),
				correspXref(),
			),
		)
		return g
	}
	for i, author := range content.Authors {
		contrib := el("contrib", at("contrib-type", "author"))
		if author.Orcid != "" {
			contrib.add(txt("contrib-id", "https://orcid.org/"+author.Orcid,
				at("contrib-id-type", "orcid")))
		}
		contrib.add(
			el("name").add(txt("surname", author.Surname), txt("given-names", author.GivenNames)),
			affXref(i+1),
		)
		if i == 0 {
			contrib.add(correspXref())
		}
		g.add(contrib)
	}
	return g
}

func affXref(pos int) *node {
	n := strconv.Itoa(pos)
	return el("xref", at("ref-type", "aff"), at("rid", "aff"+n)).add(txt("sup", n))
}

func correspXref() *node {
	return el("xref", at("ref-type", "corresp"), at("rid", "c1")).add(txt("sup", "‡"))
}

func affiliations(content *article.Content) []*node {
	if len(content.Affiliations) == 0 {
		return []*node{
			el("aff", at("id", "aff1")).add(
				txt("label", "1"),
				txt("institution", "[Institución - PENDIENTE EXTRACCIÓN]", at("content-type", "original")),
				el("addr-line").add(txt("city", "[Ciudad]")),
				txt("country", "[País]", at("country", "XX")),
			),
		}
	}
	nodes := make([]*node, 0, len(content.Affiliations))
	for i, aff := range content.Affiliations {
		n := strconv.Itoa(i + 1)
		nodes = append(nodes, el("aff", at("id", "aff"+n)).add(
			txt("label", n),
			txt("institution", aff.Institution, at("content-type", "original")),
			el("addr-line").add(txt("city", aff.City)),
			txt("country", aff.Country),
		))
	}
	return nodes
}

func authorNotes(content *article.Content) *node {
	email := content.CorrespondingEmail
	if email == "" {
		email = "[correo@pendiente]"
	}
	return el("author-notes").add(
		el("corresp", at("id", "c1")).add(
			el("label").add(txt("sup", "‡")),
			text("Autor para correspondencia:"),
			txt("email", email),
		),
	)
}

// history is omitted entirely when both editorial dates are absent.
func history(content *article.Content) *node {
	if content.ReceivedDate == "" && content.AcceptedDate == "" {
		return nil
	}
	h := el("history")
	if content.ReceivedDate != "" {
		h.add(historyDate("received", content.ReceivedDate)...)
	}
	if content.AcceptedDate != "" {
		h.add(historyDate("accepted", content.AcceptedDate)...)
	}
	return h
}

func historyDate(dateType, value string) []*node {
	y, m, d, ok := splitDate(value)
	date := el("date", at("date-type", dateType)).add(
		txt("day", d), txt("month", m), txt("year", y),
	)
	if !ok {
		return []*node{
			comment(fmt.Sprintf("REVISAR: fecha %s inválida: %q", dateType, value)),
			date,
		}
	}
	return []*node{date}
}

func pubDate(value string) *node {
	y, m, d, ok := splitDate(value)
	date := el("pub-date", at("date-type", "pub"), at("publication-format", "electronic")).add(
		txt("day", d), txt("month", m), txt("year", y),
	)
	if !ok {
		date.add(comment(fmt.Sprintf("REVISAR: fecha de publicación inválida: %q", value)))
	}
	return date
}

// splitDate decomposes a YYYY-MM-DD string into zero-padded segments. A
// malformed date yields explicit "0000"/"00" placeholders, never garbage
// digits.
func splitDate(value string) (year, month, day string, ok bool) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return "0000", "00", "00", false
	}
	return t.Format("2006"), t.Format("01"), t.Format("02"), true
}

// abstracts always emits the Spanish abstract, even empty; the English
// trans-abstract only when present.
func abstracts(content *article.Content) []*node {
	nodes := []*node{
		el("abstract", at("xml:lang", "es")).add(paragraph(content.AbstractEs)),
	}
	if content.AbstractEn != "" {
		nodes = append(nodes,
			el("trans-abstract", at("xml:lang", "en")).add(txt("p", content.AbstractEn)))
	}
	return nodes
}

// paragraph keeps an empty <p/> renderable as <p></p>-equivalent markup.
func paragraph(s string) *node {
	if s == "" {
		return el("p").add(text(""))
	}
	return txt("p", s)
}

func keywordGroups(content *article.Content) []*node {
	var nodes []*node
	if len(content.KeywordsEs) > 0 {
		g := el("kwd-group", at("xml:lang", "es")).add(txt("title", "Palabras clave"))
		for _, kw := range content.KeywordsEs {
			g.add(txt("kwd", kw))
		}
		nodes = append(nodes, g)
	}
	if len(content.KeywordsEn) > 0 {
		g := el("kwd-group", at("xml:lang", "en")).add(txt("title", "Keywords"))
		for _, kw := range content.KeywordsEn {
			g.add(txt("kwd", kw))
		}
		nodes = append(nodes, g)
	}
	return nodes
}

func counts(content *article.Content) *node {
	return el("counts").add(
		el("fig-count", at("count", strconv.Itoa(len(content.Figures)))),
		el("table-count", at("count", strconv.Itoa(len(content.Tables)))),
		el("ref-count", at("count", strconv.Itoa(len(content.References)))),
	)
}

func body(content *article.Content) *node {
	b := el("body")
	if len(content.Sections) == 0 {
		b.add(el("sec").add(
			txt("title", "Contenido"),
			txt("p", "No se detectaron secciones estructuradas."),
		))
	} else {
		for i, sec := range content.Sections {
			b.add(el("sec", at("id", "s"+strconv.Itoa(i+1))).add(
				txt("title", sec.Title),
				txt("p", sec.Content),
			))
		}
	}

	// Asset content is out of scope: figures get an empty graphic and tables
	// an empty cell skeleton for a human to fill in.
	for _, fig := range content.Figures {
		b.add(el("fig", at("id", fig.ID)).add(
			txt("label", fig.Label),
			el("caption").add(txt("p", fig.Caption)),
			txt("alt-text", fig.Label),
			el("graphic", at("xlink:href", "")),
		))
	}
	for _, tbl := range content.Tables {
		b.add(el("table-wrap", at("id", tbl.ID)).add(
			txt("label", tbl.Label),
			el("caption").add(txt("p", tbl.Caption)),
			txt("alt-text", tbl.Label),
			el("table").add(
				el("thead").add(el("tr").add(el("th").add(text("")))),
				el("tbody").add(el("tr").add(el("td").add(text("")))),
			),
		))
	}
	return b
}

func back(content *article.Content) *node {
	refList := el("ref-list").add(txt("title", "Referencias"))
	if len(content.References) == 0 {
		refList.add(comment("PENDIENTE: No se detectaron referencias"))
	} else {
		for i, ref := range content.References {
			refList.add(el("ref", at("id", "R"+strconv.Itoa(i+1))).add(
				el("element-citation", at("publication-type", "journal")).add(
					txt("mixed-citation", ref),
				),
			))
		}
	}
	return el("back").add(refList)
}
