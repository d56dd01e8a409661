package qa

// Score tiers, inclusive lower bounds.
const (
	TierExcellent = 85
	TierGood      = 70
	TierFair      = 50
)

// Score applies the additive point table. The rows sum to exactly 100; the
// clamp guards against future table edits.
func Score(stats Stats) int {
	score := 0
	if stats.TitleDetected {
		score += 15
	}
	if stats.AuthorsDetected > 0 {
		score += 15
	}
	if stats.ReferencesDetected > 0 {
		score += 15
	}
	if stats.AbstractEsDetected {
		score += 15
	}
	if stats.AffiliationsDetected > 0 {
		score += 5
	}
	if stats.TitleEnDetected {
		score += 5
	}
	if stats.AbstractEnDetected {
		score += 5
	}
	if stats.SectionsDetected >= 3 {
		score += 10
	}
	if stats.EmailDetected {
		score += 5
	}
	if stats.DatesDetected {
		score += 5
	}
	if stats.KeywordsEsDetected > 0 {
		score += 3
	}
	if stats.KeywordsEnDetected > 0 {
		score += 2
	}
	if score > 100 {
		score = 100
	}
	return score
}

// TierLabel maps a score to its readiness label.
func TierLabel(score int) string {
	switch {
	case score >= TierExcellent:
		return "🟢 EXCELENTE"
	case score >= TierGood:
		return "🟡 BUENO"
	case score >= TierFair:
		return "🟠 REGULAR"
	default:
		return "🔴 CRÍTICO"
	}
}

// TierRecommendation maps a score to its fixed recommendation sentence.
func TierRecommendation(score int) string {
	switch {
	case score >= TierExcellent:
		return "Listo para revisión final."
	case score >= TierGood:
		return "Requiere ajustes menores."
	case score >= TierFair:
		return "Requiere trabajo adicional en metadatos."
	default:
		return "Requiere intervención manual significativa."
	}
}
