package structure

// contentSchema is the strict JSON schema the model output must satisfy. It
// mirrors the wire shape of article.Content; sequences may be empty but the
// required top-level fields must be present.
var contentSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"titleEs": map[string]any{
			"type": "string", "description": "Título del artículo en español.",
		},
		"titleEn": map[string]any{
			"type": "string", "description": "Título del artículo en inglés (vacío si no existe).",
		},
		"authors": map[string]any{
			"type":        "array",
			"description": "Lista de autores en orden de aparición.",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"givenNames": map[string]any{"type": "string", "description": "Nombres del autor."},
					"surname":    map[string]any{"type": "string", "description": "Apellidos del autor."},
					"email":      map[string]any{"type": "string", "description": "Email del autor (vacío si no se encuentra)."},
					"orcid":      map[string]any{"type": "string", "description": "ORCID en formato 0000-0000-0000-0000 (vacío si no se encuentra)."},
				},
				"required":             []string{"givenNames", "surname", "email", "orcid"},
				"additionalProperties": false,
			},
		},
		"affiliations": map[string]any{
			"type":        "array",
			"description": "Lista de afiliaciones. Debe haber al menos una.",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":          map[string]any{"type": "string", "description": "Identificador único, ej: 'aff1'."},
					"institution": map[string]any{"type": "string", "description": "Nombre de la institución."},
					"city":        map[string]any{"type": "string", "description": "Ciudad."},
					"country":     map[string]any{"type": "string", "description": "País."},
				},
				"required":             []string{"id", "institution", "city", "country"},
				"additionalProperties": false,
			},
		},
		"correspondingEmail": map[string]any{
			"type": "string", "description": "Email del autor de correspondencia.",
		},
		"receivedDate": map[string]any{
			"type": "string", "description": "Fecha de recepción en formato YYYY-MM-DD.",
		},
		"acceptedDate": map[string]any{
			"type": "string", "description": "Fecha de aceptación en formato YYYY-MM-DD.",
		},
		"abstractEs": map[string]any{
			"type": "string", "description": "Resumen completo en español.",
		},
		"abstractEn": map[string]any{
			"type": "string", "description": "Abstract completo en inglés (vacío si no existe).",
		},
		"keywordsEs": map[string]any{
			"type": "array", "items": map[string]any{"type": "string"},
			"description": "Palabras clave en español.",
		},
		"keywordsEn": map[string]any{
			"type": "array", "items": map[string]any{"type": "string"},
			"description": "Keywords en inglés.",
		},
		"sections": map[string]any{
			"type":        "array",
			"description": "Cuerpo del artículo dividido en secciones (Introducción, Métodos, Resultados, Discusión, etc.).",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title":   map[string]any{"type": "string", "description": "Título de la sección."},
					"content": map[string]any{"type": "string", "description": "Contenido completo de la sección en un solo texto."},
				},
				"required":             []string{"title", "content"},
				"additionalProperties": false,
			},
		},
		"references": map[string]any{
			"type": "array", "items": map[string]any{"type": "string"},
			"description": "Referencias bibliográficas, cada una como un string completo.",
		},
		"figures": map[string]any{
			"type":        "array",
			"description": "Figuras mencionadas.",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":      map[string]any{"type": "string", "description": "ID de la figura, ej: 'f1'."},
					"label":   map[string]any{"type": "string", "description": "Etiqueta, ej: 'Figura 1'."},
					"caption": map[string]any{"type": "string", "description": "Pie de figura."},
				},
				"required":             []string{"id", "label", "caption"},
				"additionalProperties": false,
			},
		},
		"tables": map[string]any{
			"type":        "array",
			"description": "Tablas mencionadas.",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":      map[string]any{"type": "string", "description": "ID de la tabla, ej: 't1'."},
					"label":   map[string]any{"type": "string", "description": "Etiqueta, ej: 'Tabla 1'."},
					"caption": map[string]any{"type": "string", "description": "Título o pie de tabla."},
				},
				"required":             []string{"id", "label", "caption"},
				"additionalProperties": false,
			},
		},
		"articleType": map[string]any{
			"type": "string", "description": "Tipo de artículo, ej: 'research-article', 'review-article'.",
		},
	},
	"required": []string{
		"titleEs", "titleEn", "authors", "affiliations", "correspondingEmail",
		"receivedDate", "acceptedDate", "abstractEs", "abstractEn",
		"keywordsEs", "keywordsEn", "sections", "references",
		"figures", "tables", "articleType",
	},
	"additionalProperties": false,
}
