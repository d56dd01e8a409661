// Package article defines the structured article model produced by the
// structuring step and the journal configuration consumed by the renderer.
//
// Content arrives from an external collaborator (AI extraction) and is
// treated as untrusted, partially-populated input. Normalize must be applied
// at the decode boundary so downstream code never distinguishes nil from
// empty sequences.
package article

// Author is a single contributor in document order.
type Author struct {
	GivenNames string `json:"givenNames"`
	Surname    string `json:"surname"`
	Email      string `json:"email,omitempty"`
	Orcid      string `json:"orcid,omitempty"` // 0000-0000-0000-0000
}

// Affiliation is an institutional affiliation in document order.
// The renderer links authors to affiliations by position, not by ID.
type Affiliation struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	City        string `json:"city"`
	Country     string `json:"country"`
}

// Section is a body section with its paragraphs flattened into one blob.
type Section struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Asset describes a figure or table mention (caption only, no binary data).
type Asset struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Caption string `json:"caption"`
}

// DefaultArticleType is used when the structuring step returns no type.
const DefaultArticleType = "research-article"

// Content is the structured representation of an extracted article.
// All sequence fields preserve insertion order; position determines the
// numeric labels and ids generated during rendering.
type Content struct {
	TitleEs            string        `json:"titleEs"`
	TitleEn            string        `json:"titleEn,omitempty"`
	Authors            []Author      `json:"authors"`
	Affiliations       []Affiliation `json:"affiliations"`
	CorrespondingEmail string        `json:"correspondingEmail,omitempty"`
	ReceivedDate       string        `json:"receivedDate,omitempty"` // YYYY-MM-DD
	AcceptedDate       string        `json:"acceptedDate,omitempty"` // YYYY-MM-DD
	AbstractEs         string        `json:"abstractEs"`
	AbstractEn         string        `json:"abstractEn,omitempty"`
	KeywordsEs         []string      `json:"keywordsEs"`
	KeywordsEn         []string      `json:"keywordsEn"`
	Sections           []Section     `json:"sections"`
	References         []string      `json:"references"`
	Figures            []Asset       `json:"figures"`
	Tables             []Asset       `json:"tables"`
	ArticleType        string        `json:"articleType,omitempty"`
}

// Journal identifies the publishing journal.
type Journal struct {
	PublisherID string `json:"publisher_id" yaml:"publisher_id"`
	Title       string `json:"title" yaml:"title"`
	AbbrevTitle string `json:"abbrev_title" yaml:"abbrev_title"`
	PISSN       string `json:"pissn" yaml:"pissn"`
	EISSN       string `json:"eissn" yaml:"eissn"`
	Publisher   string `json:"publisher" yaml:"publisher"`
}

// ArticleMeta carries the per-article publishing metadata.
type ArticleMeta struct {
	DOI            string `json:"doi" yaml:"doi"`
	Volume         string `json:"volume" yaml:"volume"`
	Issue          string `json:"issue" yaml:"issue"`
	Elocation      string `json:"elocation" yaml:"elocation"`
	PubDate        string `json:"pub_date" yaml:"pub_date"` // YYYY-MM-DD
	CollectionYear string `json:"collection_year" yaml:"collection_year"`
	LicenseURL     string `json:"license_url" yaml:"license_url"`
	ArticleType    string `json:"article_type" yaml:"article_type"`
}

// Config is the journal configuration consumed by the renderer. Unlike
// Content it is operator-supplied and trusted; every field must be set
// (AutoConfig fills defaults for anything a config file leaves empty).
type Config struct {
	Journal Journal     `json:"journal" yaml:"journal"`
	Article ArticleMeta `json:"article" yaml:"article"`
}
