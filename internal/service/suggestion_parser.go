package service

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"golf-caddy/internal/domain"
)

// SuggestionParser limpia y valida el texto crudo que devuelve el modelo.
type SuggestionParser struct {
	logger *zap.Logger
}

func NewSuggestionParser(logger *zap.Logger) SuggestionParser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return SuggestionParser{logger: logger}
}

// ParseSuggestion devuelve la respuesta validada, o un error parse/schema.
// Un número de palos distinto de 14 solo se registra como warning.
func (p SuggestionParser) ParseSuggestion(raw string) (domain.SuggestionResponse, error) {
	const op = "parse suggestion"
	cleaned := stripCodeFence(raw)

	var doc any
	if err := json.Unmarshal([]byte(cleaned), &doc); err != nil {
		p.logger.Error("model response is not valid JSON", zap.Error(err), zap.String("raw", cleaned))
		return domain.SuggestionResponse{}, &domain.Error{
			Kind:    domain.KindParse,
			Op:      op,
			Message: "model response is not valid JSON",
			Raw:     cleaned,
			Err:     err,
		}
	}

	loadSchemas()
	result, err := suggestionSchema.schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return domain.SuggestionResponse{}, domain.WrapError(domain.KindSchema, op, "could not validate model response", err)
	}
	if !result.Valid() {
		msg := describeSchemaFailure(doc, result.Errors())
		p.logger.Error("model response failed schema validation", zap.String("reason", msg))
		return domain.SuggestionResponse{}, domain.NewError(domain.KindSchema, op, msg)
	}

	var resp domain.SuggestionResponse
	if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
		return domain.SuggestionResponse{}, domain.WrapError(domain.KindSchema, op, "model response does not match the suggestion shape", err)
	}

	for _, style := range resp.StyleSuggestions {
		if len(style.Clubs) != ClubsPerStyle {
			p.logger.Warn("unexpected club count",
				zap.String("style", style.StyleName),
				zap.Int("clubs", len(style.Clubs)),
				zap.Int("expected", ClubsPerStyle),
			)
		}
	}
	return resp, nil
}

// ParseNearbyCourses nunca falla: ante basura devuelve una lista vacía.
func (p SuggestionParser) ParseNearbyCourses(raw string) []domain.GolfCourseOption {
	cleaned := stripCodeFence(raw)

	var parsed any
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		candidate := extractFirstJSONValue(cleaned)
		if candidate == "" || json.Unmarshal([]byte(candidate), &parsed) != nil {
			p.logger.Warn("nearby courses response is not valid JSON; returning no results",
				zap.Error(err), zap.String("raw", cleaned))
			return []domain.GolfCourseOption{}
		}
	}

	var entries []any
	switch v := parsed.(type) {
	case []any:
		entries = v
	case map[string]any:
		if _, ok := v["name"]; ok {
			entries = []any{v}
		}
	}
	if entries == nil {
		p.logger.Warn("nearby courses response is not a list", zap.String("raw", cleaned))
		return []domain.GolfCourseOption{}
	}

	options := make([]domain.GolfCourseOption, 0, len(entries))
	for _, e := range entries {
		obj, ok := e.(map[string]any)
		if !ok {
			continue
		}
		name, ok := obj["name"].(string)
		if !ok || strings.TrimSpace(name) == "" {
			continue
		}
		label := name
		if addr, ok := obj["address"].(string); ok && strings.TrimSpace(addr) != "" {
			label = fmt.Sprintf("%s (%s)", name, addr)
		}
		options = append(options, domain.GolfCourseOption{Value: name, Label: label})
	}
	return options
}

type schemaIssue struct {
	path  []string
	err   gojsonschema.ResultError
	style int
	level int
	club  int
}

// describeSchemaFailure elige el primer fallo en orden de documento y lo describe
// nombrando el estilo y el palo afectados.
func describeSchemaFailure(doc any, errs []gojsonschema.ResultError) string {
	if len(errs) == 0 {
		return "model response does not match the suggestion schema"
	}

	issues := make([]schemaIssue, 0, len(errs))
	for _, e := range errs {
		issues = append(issues, classifySchemaError(e))
	}
	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i], issues[j]
		if a.style != b.style {
			return a.style < b.style
		}
		if a.level != b.level {
			return a.level < b.level
		}
		return a.club < b.club
	})

	first := issues[0]
	switch {
	case first.style < 0:
		return fmt.Sprintf("response must contain a caddyAdvice string and a non-empty styleSuggestions array (%s)", first.err.Description())
	case first.level == 0:
		return fmt.Sprintf("invalid player style suggestion %s at index %d: %s",
			styleLabel(doc, first.style), first.style, first.err.Description())
	default:
		name, category := clubValues(doc, first.style, first.club)
		return fmt.Sprintf("invalid club data for style %s at index %d (name: %s, category: %s)",
			styleLabel(doc, first.style), first.club, name, category)
	}
}

func classifySchemaError(e gojsonschema.ResultError) schemaIssue {
	path := schemaErrorPath(e)
	issue := schemaIssue{path: path, err: e, style: -1}
	if len(path) < 2 || path[0] != "styleSuggestions" {
		return issue
	}
	idx, err := strconv.Atoi(path[1])
	if err != nil {
		return issue
	}
	issue.style = idx
	if len(path) >= 4 && path[2] == "clubs" {
		if clubIdx, err := strconv.Atoi(path[3]); err == nil {
			issue.level = 1
			issue.club = clubIdx
		}
	}
	return issue
}

// schemaErrorPath devuelve la ruta del valor afectado, sin el prefijo (root).
// Para "required" se agrega la propiedad faltante.
func schemaErrorPath(e gojsonschema.ResultError) []string {
	var path []string
	if ctx := e.Context(); ctx != nil {
		for _, part := range strings.Split(ctx.String(), ".") {
			if part == "" || part == gojsonschema.STRING_ROOT_SCHEMA_PROPERTY {
				continue
			}
			path = append(path, part)
		}
	}
	if e.Type() == "required" {
		if prop, ok := e.Details()["property"].(string); ok {
			path = append(path, prop)
		}
	}
	return path
}

func styleLabel(doc any, idx int) string {
	style, _ := styleAt(doc, idx).(map[string]any)
	if name, ok := style["styleName"].(string); ok && name != "" {
		return strconv.Quote(name)
	}
	return fmt.Sprintf("#%d", idx)
}

func clubValues(doc any, styleIdx, clubIdx int) (string, string) {
	style, _ := styleAt(doc, styleIdx).(map[string]any)
	clubs, _ := style["clubs"].([]any)
	if clubIdx < 0 || clubIdx >= len(clubs) {
		return "<missing>", "<missing>"
	}
	club, ok := clubs[clubIdx].(map[string]any)
	if !ok {
		v := describeValue(clubs[clubIdx], true)
		return v, v
	}
	name, hasName := club["name"]
	category, hasCategory := club["category"]
	return describeValue(name, hasName), describeValue(category, hasCategory)
}

func styleAt(doc any, idx int) any {
	root, _ := doc.(map[string]any)
	styles, _ := root["styleSuggestions"].([]any)
	if idx < 0 || idx >= len(styles) {
		return nil
	}
	return styles[idx]
}

func describeValue(v any, present bool) string {
	if !present {
		return "<missing>"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
