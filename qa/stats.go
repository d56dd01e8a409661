// Package qa computes extraction-completeness statistics, a deterministic
// 0-100 quality score, and a Markdown quality report for a converted article.
package qa

import "github.com/scigraf/jatsgen/article"

// Stats are the fourteen completeness signals derived from article content.
// Score is a pure function of these values.
type Stats struct {
	TitleDetected        bool `json:"title_detected"`
	TitleEnDetected      bool `json:"title_en_detected"`
	AuthorsDetected      int  `json:"authors_detected"`
	AffiliationsDetected int  `json:"affiliations_detected"`
	SectionsDetected     int  `json:"sections_detected"`
	ReferencesDetected   int  `json:"references_detected"`
	FiguresDetected      int  `json:"figures_detected"`
	TablesDetected       int  `json:"tables_detected"`
	AbstractEsDetected   bool `json:"abstract_es_detected"`
	AbstractEnDetected   bool `json:"abstract_en_detected"`
	KeywordsEsDetected   int  `json:"keywords_es_detected"`
	KeywordsEnDetected   int  `json:"keywords_en_detected"`
	EmailDetected        bool `json:"email_detected"`
	DatesDetected        bool `json:"dates_detected"`
}

// Derive reads every signal directly from presence or length of the
// corresponding content field.
func Derive(content *article.Content) Stats {
	return Stats{
		TitleDetected:        content.TitleEs != "",
		TitleEnDetected:      content.TitleEn != "",
		AuthorsDetected:      len(content.Authors),
		AffiliationsDetected: len(content.Affiliations),
		SectionsDetected:     len(content.Sections),
		ReferencesDetected:   len(content.References),
		FiguresDetected:      len(content.Figures),
		TablesDetected:       len(content.Tables),
		AbstractEsDetected:   content.AbstractEs != "",
		AbstractEnDetected:   content.AbstractEn != "",
		KeywordsEsDetected:   len(content.KeywordsEs),
		KeywordsEnDetected:   len(content.KeywordsEn),
		EmailDetected:        content.CorrespondingEmail != "",
		DatesDetected:        content.ReceivedDate != "" || content.AcceptedDate != "",
	}
}
