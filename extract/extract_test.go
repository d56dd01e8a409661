package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDetect(t *testing.T) {
	pipe := New(Config{})

	tests := []struct {
		name   string
		format Format
	}{
		{"paper.docx", FormatDocx},
		{"paper.odt", FormatODT},
		{"paper.txt", FormatTXT},
		{"paper.text", FormatTXT},
		{"paper.html", FormatHTML},
		{"paper.htm", FormatHTML},
	}
	for _, tt := range tests {
		f, err := pipe.Detect(tt.name)
		if err != nil {
			t.Errorf("Detect(%q): %v", tt.name, err)
			continue
		}
		if f != tt.format {
			t.Errorf("Detect(%q) = %q, want %q", tt.name, f, tt.format)
		}
	}

	if _, err := pipe.Detect("paper.pdf"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestExtractText(t *testing.T) {
	pipe := New(Config{})
	data := []byte("Estudio sobre X\n\nPrimer párrafo del\nresumen.\n\nSegundo párrafo.")

	doc, err := pipe.Extract(context.Background(), "paper.txt", data)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Format != FormatTXT {
		t.Fatalf("format = %q, want txt", doc.Format)
	}
	if doc.Title != "Estudio sobre X" {
		t.Errorf("title = %q", doc.Title)
	}
	if len(doc.Paragraphs) != 3 {
		t.Fatalf("paragraphs = %d, want 3", len(doc.Paragraphs))
	}
	// Wrapped lines are joined into one paragraph.
	if doc.Paragraphs[1].Text != "Primer párrafo del resumen." {
		t.Errorf("paragraph[1] = %q", doc.Paragraphs[1].Text)
	}
	if !strings.Contains(doc.RawText, "Segundo párrafo.") {
		t.Error("raw text incomplete")
	}
}

func docxFixture(t *testing.T, bodyXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	f.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>` + bodyXML + `</w:body></w:document>`))
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestExtractDocx(t *testing.T) {
	data := docxFixture(t, `
<w:p><w:pPr><w:pStyle w:val="Title"/></w:pPr><w:r><w:t>Estudio X</w:t></w:r></w:p>
<w:p><w:r><w:t>Resumen del estudio.</w:t></w:r></w:p>
<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>Introducción</w:t></w:r></w:p>
<w:p><w:r><w:t>Texto de la </w:t></w:r><w:r><w:t>introducción.</w:t></w:r></w:p>
<w:p><w:r><w:t> </w:t></w:r></w:p>`)

	pipe := New(Config{})
	doc, err := pipe.Extract(context.Background(), "estudio.docx", data)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Title != "Estudio X" {
		t.Errorf("title = %q", doc.Title)
	}
	if len(doc.Paragraphs) != 4 {
		t.Fatalf("paragraphs = %d, want 4: %+v", len(doc.Paragraphs), doc.Paragraphs)
	}
	if doc.Paragraphs[0].Level != 1 {
		t.Errorf("title paragraph level = %d, want 1", doc.Paragraphs[0].Level)
	}
	if doc.Paragraphs[2].Level != 1 || doc.Paragraphs[2].Text != "Introducción" {
		t.Errorf("heading paragraph = %+v", doc.Paragraphs[2])
	}
	// Runs inside one paragraph are concatenated.
	if doc.Paragraphs[3].Text != "Texto de la introducción." {
		t.Errorf("paragraph[3] = %q", doc.Paragraphs[3].Text)
	}
}

func TestExtractDocxMissingDocument(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, _ := w.Create("word/other.xml")
	f.Write([]byte("<x/>"))
	w.Close()

	pipe := New(Config{})
	if _, err := pipe.Extract(context.Background(), "bad.docx", buf.Bytes()); err == nil {
		t.Error("expected error for archive without word/document.xml")
	}
}

func TestExtractODT(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, _ := w.Create("content.xml")
	f.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0"
 xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0">
<office:body><office:text>
<text:h text:outline-level="1">Estudio X</text:h>
<text:p>Primer párrafo.</text:p>
<text:h text:outline-level="2">Métodos</text:h>
<text:p>Segundo párrafo.</text:p>
</office:text></office:body></office:document-content>`))
	w.Close()

	pipe := New(Config{})
	doc, err := pipe.Extract(context.Background(), "estudio.odt", buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if doc.Title != "Estudio X" {
		t.Errorf("title = %q", doc.Title)
	}
	if len(doc.Paragraphs) != 4 {
		t.Fatalf("paragraphs = %d, want 4", len(doc.Paragraphs))
	}
	if doc.Paragraphs[2].Level != 2 {
		t.Errorf("heading level = %d, want 2", doc.Paragraphs[2].Level)
	}
}

func TestExtractHTML(t *testing.T) {
	data := []byte(`<html><head><title>ignored</title><script>evil()</script></head>
<body>
<h1>Estudio X</h1>
<p>Primer   párrafo
con saltos.</p>
<h2>Métodos</h2>
<p>Segundo párrafo.</p>
<script>alert(1)</script>
</body></html>`)

	pipe := New(Config{})
	doc, err := pipe.Extract(context.Background(), "estudio.html", data)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Title != "Estudio X" {
		t.Errorf("title = %q", doc.Title)
	}
	if strings.Contains(doc.RawText, "alert") || strings.Contains(doc.RawText, "evil") {
		t.Error("script content leaked into extraction")
	}
	if len(doc.Paragraphs) != 4 {
		t.Fatalf("paragraphs = %d, want 4: %+v", len(doc.Paragraphs), doc.Paragraphs)
	}
	if doc.Paragraphs[1].Text != "Primer párrafo con saltos." {
		t.Errorf("paragraph[1] = %q", doc.Paragraphs[1].Text)
	}
	if doc.Paragraphs[2].Level != 2 {
		t.Errorf("heading level = %d, want 2", doc.Paragraphs[2].Level)
	}
}

func TestExtractHTMLMainContent(t *testing.T) {
	data := []byte(`<html><body>
<nav><ul><li><a href="/">Inicio</a></li><li><a href="/archivo">Archivo</a></li></ul></nav>
<article>
<h1>Estudio X</h1>
<p>Primer párrafo.</p>
</article>
<footer><p>Derechos reservados.</p></footer>
</body></html>`)

	pipe := New(Config{})
	doc, err := pipe.Extract(context.Background(), "portal.html", data)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Title != "Estudio X" {
		t.Errorf("title = %q", doc.Title)
	}
	for _, p := range doc.Paragraphs {
		if strings.Contains(p.Text, "Inicio") || strings.Contains(p.Text, "Derechos reservados") {
			t.Errorf("site chrome leaked into paragraphs: %q", p.Text)
		}
	}
	if len(doc.Paragraphs) != 2 {
		t.Fatalf("paragraphs = %d, want 2: %+v", len(doc.Paragraphs), doc.Paragraphs)
	}
}

func TestExtractFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "paper.txt")
	os.WriteFile(path, []byte("Título\n\nContenido."), 0644)

	pipe := New(Config{})
	doc, err := pipe.ExtractFile(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Name != "paper.txt" {
		t.Errorf("name = %q", doc.Name)
	}
	if len(doc.Paragraphs) != 2 {
		t.Errorf("paragraphs = %d, want 2", len(doc.Paragraphs))
	}
}

func TestMaxFileSize(t *testing.T) {
	pipe := New(Config{MaxFileSize: 10})
	if _, err := pipe.Extract(context.Background(), "big.txt", bytes.Repeat([]byte("a"), 11)); err == nil {
		t.Error("expected size limit error")
	}
}
