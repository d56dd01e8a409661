package article

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultLicenseURL is the open-access license applied when none is configured.
const DefaultLicenseURL = "https://creativecommons.org/licenses/by/4.0/"

// AutoConfig builds a fully populated Config for a conversion run. Journal
// identity fields get placeholder values for the operator to replace; the
// article block gets a random numeric suffix for DOI and elocation, the
// current date as publication date, and the current collection year.
func AutoConfig(content *Content) Config {
	journalID := "journal"
	articleID := 10000 + rand.Intn(90000)
	now := time.Now()

	return Config{
		Journal: Journal{
			PublisherID: journalID,
			Title:       "Revista Científica (Auto-Detectada)",
			AbbrevTitle: "Rev Cient",
			PISSN:       "0000-0000",
			EISSN:       "2000-0000",
			Publisher:   "Editorial Académica (Auto-Detectada)",
		},
		Article: ArticleMeta{
			DOI:            fmt.Sprintf("10.5555/%s.v1.i1.%d", journalID, articleID),
			Volume:         "1",
			Issue:          "1",
			Elocation:      fmt.Sprintf("e%d", articleID),
			PubDate:        now.Format("2006-01-02"),
			CollectionYear: now.Format("2006"),
			LicenseURL:     DefaultLicenseURL,
			ArticleType:    content.articleTypeOrDefault(),
		},
	}
}

func (c *Content) articleTypeOrDefault() string {
	if c.ArticleType != "" {
		return c.ArticleType
	}
	return DefaultArticleType
}

// LoadConfig reads a journal configuration from a YAML file and fills any
// empty field from AutoConfig so the result is always fully populated.
func LoadConfig(path string, content *Content) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.FillDefaults(content)
	return cfg, nil
}

// FillDefaults replaces every empty field with its AutoConfig value.
func (cfg *Config) FillDefaults(content *Content) {
	auto := AutoConfig(content)

	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&cfg.Journal.PublisherID, auto.Journal.PublisherID)
	fill(&cfg.Journal.Title, auto.Journal.Title)
	fill(&cfg.Journal.AbbrevTitle, auto.Journal.AbbrevTitle)
	fill(&cfg.Journal.PISSN, auto.Journal.PISSN)
	fill(&cfg.Journal.EISSN, auto.Journal.EISSN)
	fill(&cfg.Journal.Publisher, auto.Journal.Publisher)
	fill(&cfg.Article.DOI, auto.Article.DOI)
	fill(&cfg.Article.Volume, auto.Article.Volume)
	fill(&cfg.Article.Issue, auto.Article.Issue)
	fill(&cfg.Article.Elocation, auto.Article.Elocation)
	fill(&cfg.Article.PubDate, auto.Article.PubDate)
	fill(&cfg.Article.CollectionYear, auto.Article.CollectionYear)
	fill(&cfg.Article.LicenseURL, auto.Article.LicenseURL)
	fill(&cfg.Article.ArticleType, auto.Article.ArticleType)
}
