package article

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestNormalize(t *testing.T) {
	var c Content
	c.Normalize()

	if c.Authors == nil || c.Affiliations == nil || c.KeywordsEs == nil ||
		c.KeywordsEn == nil || c.Sections == nil || c.References == nil ||
		c.Figures == nil || c.Tables == nil {
		t.Fatal("expected all sequences non-nil after Normalize")
	}
	if c.ArticleType != DefaultArticleType {
		t.Errorf("ArticleType = %q, want %q", c.ArticleType, DefaultArticleType)
	}

	// An already-set type is preserved.
	c2 := Content{ArticleType: "review-article"}
	c2.Normalize()
	if c2.ArticleType != "review-article" {
		t.Errorf("ArticleType = %q, want review-article", c2.ArticleType)
	}
}

func TestNormalizeFromJSON(t *testing.T) {
	// Absent optional sequences in the wire payload become empty, never nil.
	payload := `{"titleEs":"Estudio","authors":[],"affiliations":[],"abstractEs":"Resumen","keywordsEs":[],"sections":[],"references":[]}`
	var c Content
	if err := json.Unmarshal([]byte(payload), &c); err != nil {
		t.Fatal(err)
	}
	c.Normalize()
	if c.Figures == nil || c.Tables == nil || c.KeywordsEn == nil {
		t.Fatal("expected omitted sequences coerced to empty")
	}
	if len(c.Figures) != 0 {
		t.Errorf("Figures = %v, want empty", c.Figures)
	}
}

func TestAutoConfig(t *testing.T) {
	content := &Content{ArticleType: "review-article"}
	cfg := AutoConfig(content)

	if cfg.Article.ArticleType != "review-article" {
		t.Errorf("ArticleType = %q, want review-article", cfg.Article.ArticleType)
	}
	if cfg.Article.DOI == "" || cfg.Article.Elocation == "" {
		t.Error("expected DOI and elocation to be generated")
	}
	if cfg.Article.LicenseURL != DefaultLicenseURL {
		t.Errorf("LicenseURL = %q", cfg.Article.LicenseURL)
	}
	if cfg.Journal.PublisherID == "" || cfg.Journal.Title == "" {
		t.Error("expected journal identity placeholders")
	}

	// Default type applied when content carries none.
	cfg = AutoConfig(&Content{})
	if cfg.Article.ArticleType != DefaultArticleType {
		t.Errorf("ArticleType = %q, want %q", cfg.Article.ArticleType, DefaultArticleType)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journal.yaml")
	data := `journal:
  publisher_id: rcys
  title: Revista de Ciencia y Sociedad
  abbrev_title: Rev Cienc Soc
  pissn: 1234-5678
  eissn: 8765-4321
  publisher: Editorial Universitaria
article:
  volume: "12"
  issue: "3"
`
	os.WriteFile(path, []byte(data), 0644)

	cfg, err := LoadConfig(path, &Content{})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Journal.PublisherID != "rcys" {
		t.Errorf("PublisherID = %q", cfg.Journal.PublisherID)
	}
	if cfg.Article.Volume != "12" || cfg.Article.Issue != "3" {
		t.Errorf("volume/issue = %q/%q", cfg.Article.Volume, cfg.Article.Issue)
	}
	// Unset fields are auto-filled.
	if cfg.Article.DOI == "" || cfg.Article.PubDate == "" || cfg.Article.LicenseURL == "" {
		t.Error("expected empty article fields filled with defaults")
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml"), &Content{}); err == nil {
		t.Error("expected error for missing file")
	}
}
