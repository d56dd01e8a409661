package qa

import (
	"fmt"
	"strings"
	"time"

	"github.com/scigraf/jatsgen/article"
)

// criticalIssues evaluates the blocking rules in their fixed report order.
func criticalIssues(stats Stats) []string {
	var issues []string
	if !stats.TitleDetected {
		issues = append(issues, "❌ CRÍTICO: Título principal no detectado.")
	}
	if stats.AuthorsDetected == 0 {
		issues = append(issues, "❌ CRÍTICO: Autores no detectados.")
	}
	if stats.ReferencesDetected == 0 {
		issues = append(issues, "❌ CRÍTICO: Referencias no detectadas.")
	}
	if !stats.AbstractEsDetected {
		issues = append(issues, "❌ CRÍTICO: Resumen en español no detectado.")
	}
	if stats.AffiliationsDetected == 0 {
		issues = append(issues, "❌ CRÍTICO: Afiliaciones no detectadas.")
	}
	if stats.SectionsDetected == 0 {
		issues = append(issues, "❌ CRÍTICO: No se detectaron secciones del cuerpo del artículo.")
	}
	return issues
}

// warnings evaluates the non-blocking rules in their fixed report order.
func warnings(stats Stats) []string {
	var warns []string
	if !stats.EmailDetected {
		warns = append(warns, "⚠️ Advertencia: Email de correspondencia no detectado.")
	}
	if !stats.DatesDetected {
		warns = append(warns, "⚠️ Advertencia: Fechas editoriales (recibido/aceptado) no detectadas.")
	}
	if !stats.TitleEnDetected {
		warns = append(warns, "⚠️ Advertencia: Título en inglés no detectado.")
	}
	if !stats.AbstractEnDetected {
		warns = append(warns, "⚠️ Advertencia: Abstract en inglés no detectado.")
	}
	if stats.KeywordsEsDetected == 0 {
		warns = append(warns, "⚠️ Advertencia: Palabras clave en español no detectadas.")
	}
	return warns
}

func detected(ok bool, missGlyph string) string {
	if ok {
		return "✅ Detectado"
	}
	return missGlyph + " No Detectado"
}

func countGlyph(n int) string {
	if n > 0 {
		return "✅"
	}
	return "❌"
}

// Report renders the quality report as Markdown. The timestamp is captured
// by the caller per invocation so the function stays deterministic under
// test; xmlOutput is accepted for interface completeness — the SPS checklist
// states the renderer's fixed guarantees rather than re-validating the
// document.
func Report(content *article.Content, cfg *article.Config, xmlOutput string, now time.Time) string {
	stats := Derive(content)
	score := Score(stats)
	issues := criticalIssues(stats)
	warns := warnings(stats)

	var b strings.Builder
	w := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	w("# 🤖 Reporte de Calidad IA - SciELO JATS")
	w("")
	w("## 📊 Puntuación de Calidad de Extracción: %d/100", score)
	w("")
	w("**Nivel de Preparación:** %s - %s", TierLabel(score), TierRecommendation(score))
	w("")
	w("---")
	w("")
	w("## 📈 Estadísticas de Extracción")
	w("- **Título principal**: %s", detected(stats.TitleDetected, "❌"))
	w("- **Título en inglés**: %s", detected(stats.TitleEnDetected, "⚠️"))
	w("- **Autores**: %d %s", stats.AuthorsDetected, countGlyph(stats.AuthorsDetected))
	w("- **Afiliaciones**: %d %s", stats.AffiliationsDetected, countGlyph(stats.AffiliationsDetected))
	w("- **Secciones**: %d", stats.SectionsDetected)
	w("- **Referencias**: %d", stats.ReferencesDetected)
	w("- **Figuras**: %d", stats.FiguresDetected)
	w("- **Tablas**: %d", stats.TablesDetected)
	w("- **Resumen (ES)**: %s", detected(stats.AbstractEsDetected, "❌"))
	w("- **Abstract (EN)**: %s", detected(stats.AbstractEnDetected, "⚠️"))
	w("- **Palabras clave (ES)**: %d", stats.KeywordsEsDetected)
	w("- **Keywords (EN)**: %d", stats.KeywordsEnDetected)
	w("- **Email de correspondencia**: %s", detected(stats.EmailDetected, "⚠️"))
	w("- **Fechas editoriales**: %s", detected(stats.DatesDetected, "⚠️"))
	w("")
	w("---")
	w("")
	w("## 🚨 Puntos Críticos a Revisar (%d)", len(issues))
	if len(issues) == 0 {
		w("✅ No se encontraron issues críticos.")
	} else {
		for _, issue := range issues {
			w("- %s", issue)
		}
	}
	w("")
	w("## ⚠️ Advertencias y Recomendaciones (%d)", len(warns))
	if len(warns) == 0 {
		w("✅ No se encontraron advertencias.")
	} else {
		for _, warn := range warns {
			w("- %s", warn)
		}
	}
	w("")
	w("---")
	w("")
	w("## ✅ Verificaciones de Estándar SciELO (SPS 1.9)")
	w("- **DTD JATS Publishing**: 1.1 (20151215) - ✅")
	w("- **Atributo 'specific-use'**: \"sps-1.9\" - ✅")
	w("- **Idioma principal del artículo**: \"es\" - ✅")
	w("- **DOI presente**: %s - ✅", cfg.Article.DOI)
	w("- **Licencia Open Access**: Creative Commons - ✅")
	w("- **Conteos (fig, table, ref)**: Generados - ✅")
	w("")
	w("---")
	w("")
	w("## 📋 Próximos Pasos Recomendados")
	w("1.  **Revisar Puntos Críticos**: Atender los issues listados arriba es prioritario.")
	w("2.  **Verificar Autores y Afiliaciones**: Asegurarse que los datos extraídos por la IA son correctos y completos.")
	w("3.  **Validar Referencias**: Comprobar que la lista de referencias está completa.")
	w("4.  **Insertar Assets**: Añadir las rutas a los archivos de imagen (<graphic xlink:href=\"...\"/>) y el contenido de las tablas.")
	w("5.  **Ejecutar Validador Oficial**: Usar el validador de SciELO para la comprobación final.")
	w("")
	w("*Reporte generado automáticamente el %s*", now.Format("2/1/2006, 15:04:05"))

	return strings.TrimSpace(b.String())
}
