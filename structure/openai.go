package structure

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
	"github.com/openai/openai-go/v3/shared"

	"github.com/scigraf/jatsgen/article"
	"github.com/scigraf/jatsgen/extract"
)

const structurePrompt = `Eres un experto en el estándar de publicación académica SciELO JATS (SPS 1.9).
Analiza el siguiente texto extraído de un documento científico y conviértelo en una estructura JSON que siga el esquema proporcionado.
Extrae la mayor cantidad de información posible de manera precisa. Combina párrafos de una misma sección en un solo string para el campo "content".
Identifica nombres y apellidos de los autores correctamente. Si no hay afiliaciones, crea una con valores de ejemplo como "[Institución pendiente]".
Usa cadenas vacías para los campos opcionales que no aparezcan en el texto.

Texto del artículo:
---
%s
---`

// OpenAI structures manuscripts through the OpenAI Responses API with a
// strict JSON schema matching the article model.
type OpenAI struct {
	client openai.Client
	model  shared.ResponsesModel
}

// OpenAIOption configures the client.
type OpenAIOption func(*OpenAI)

// WithModel overrides the default model.
func WithModel(model shared.ResponsesModel) OpenAIOption {
	return func(o *OpenAI) { o.model = model }
}

// NewOpenAI creates a structurer using the given API key.
func NewOpenAI(apiKey string, opts ...OpenAIOption) *OpenAI {
	o := &OpenAI{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  shared.ChatModelGPT5Mini,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Structure sends the raw manuscript text to the model and decodes the
// schema-constrained response into article content.
func (o *OpenAI) Structure(ctx context.Context, doc *extract.Document) (*article.Content, error) {
	resp, err := o.client.Responses.New(ctx, responses.ResponseNewParams{
		Model: o.model,
		Input: responses.ResponseNewParamsInputUnion{
			OfString: openai.String(fmt.Sprintf(structurePrompt, doc.RawText)),
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigParamOfJSONSchema("article_content", contentSchema),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("structure request: %w", err)
	}

	var content article.Content
	if err := json.Unmarshal([]byte(resp.OutputText()), &content); err != nil {
		return nil, fmt.Errorf("decode structured response: %w", err)
	}
	content.Normalize()
	return &content, nil
}
