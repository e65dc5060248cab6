package service

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// Contrato de respuesta compartido por el prompt builder y el validador.
const (
	ClubsPerStyle       = 14
	StylesPerSuggestion = 3
	MaxNearbyCourses    = 10
)

// PlayerStyles es el vocabulario de estilos que se pide al modelo (no se valida como enum).
var PlayerStyles = []string{"パワーヒッター", "テクニカルプレイヤー", "オールラウンダー"}

// ClubCategories es el conjunto abierto de categorías que se sugiere al modelo.
var ClubCategories = []string{"ウッド", "ユーティリティ", "アイアン", "ウェッジ", "パター"}

func suggestionSchemaDocument() map[string]any {
	club := map[string]any{
		"type":     "object",
		"required": []string{"name", "category"},
		"properties": map[string]any{
			"name":      map[string]any{"type": "string", "description": "club name, e.g. ドライバー"},
			"category":  map[string]any{"type": "string", "examples": ClubCategories},
			"rationale": map[string]any{"description": "optional short string: reason tied to the course or the golfer's data"},
		},
	}
	style := map[string]any{
		"type":     "object",
		"required": []string{"styleName", "clubs", "generalAdvice"},
		"properties": map[string]any{
			"styleName":     map[string]any{"type": "string", "examples": PlayerStyles},
			"clubs":         map[string]any{"type": "array", "items": club, "description": fmt.Sprintf("exactly %d clubs", ClubsPerStyle)},
			"generalAdvice": map[string]any{"type": "string"},
		},
	}
	return map[string]any{
		"$schema":  "http://json-schema.org/draft-07/schema#",
		"type":     "object",
		"required": []string{"caddyAdvice", "styleSuggestions"},
		"properties": map[string]any{
			"caddyAdvice": map[string]any{"type": "string"},
			"styleSuggestions": map[string]any{
				"type":        "array",
				"minItems":    1,
				"items":       style,
				"description": fmt.Sprintf("%d entries, one per play style", StylesPerSuggestion),
			},
		},
	}
}

func nearbySchemaDocument() map[string]any {
	return map[string]any{
		"$schema":  "http://json-schema.org/draft-07/schema#",
		"type":     "array",
		"maxItems": MaxNearbyCourses,
		"items": map[string]any{
			"type":     "object",
			"required": []string{"name"},
			"properties": map[string]any{
				"name":    map[string]any{"type": "string"},
				"address": map[string]any{"type": "string", "description": "approximate address or city, optional"},
			},
		},
	}
}

type compiledSchema struct {
	text   string
	schema *gojsonschema.Schema
}

var (
	schemaOnce       sync.Once
	suggestionSchema compiledSchema
	nearbySchema     compiledSchema
)

func compileSchema(doc map[string]any) compiledSchema {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		panic(fmt.Sprintf("marshal response schema: %v", err))
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		panic(fmt.Sprintf("compile response schema: %v", err))
	}
	return compiledSchema{text: string(raw), schema: schema}
}

func loadSchemas() {
	schemaOnce.Do(func() {
		suggestionSchema = compileSchema(suggestionSchemaDocument())
		nearbySchema = compileSchema(nearbySchemaDocument())
	})
}

// SuggestionSchemaText es el JSON Schema que se incrusta en el prompt de sugerencias.
func SuggestionSchemaText() string {
	loadSchemas()
	return suggestionSchema.text
}

// NearbySchemaText es el JSON Schema que se incrusta en el prompt de campos cercanos.
func NearbySchemaText() string {
	loadSchemas()
	return nearbySchema.text
}
