package article

// Normalize coerces absent sequence fields to empty sequences and applies
// the article-type default. Rendering and assessment assume normalized
// input and never branch on nil.
func (c *Content) Normalize() {
	if c.Authors == nil {
		c.Authors = []Author{}
	}
	if c.Affiliations == nil {
		c.Affiliations = []Affiliation{}
	}
	if c.KeywordsEs == nil {
		c.KeywordsEs = []string{}
	}
	if c.KeywordsEn == nil {
		c.KeywordsEn = []string{}
	}
	if c.Sections == nil {
		c.Sections = []Section{}
	}
	if c.References == nil {
		c.References = []string{}
	}
	if c.Figures == nil {
		c.Figures = []Asset{}
	}
	if c.Tables == nil {
		c.Tables = []Asset{}
	}
	if c.ArticleType == "" {
		c.ArticleType = DefaultArticleType
	}
}
