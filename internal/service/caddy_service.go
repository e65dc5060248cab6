package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"golf-caddy/internal/catalog"
	"golf-caddy/internal/domain"
	"golf-caddy/internal/llm"
)

const (
	msgInvalidMetrics   = "飛距離と平均スコアは正の数で入力してください。"
	msgCourseRequired   = "プレーするゴルフコースを選択してください。"
	msgLocationRequired = "検索する地域名を入力してください。"
)

// Parámetros de decodificación fijos por punto de llamada.
var (
	suggestionDecoding = llm.DecodingParams{
		Temperature:  llm.Float32(0.5),
		TopP:         llm.Float32(0.9),
		TopK:         llm.Float32(40),
		JSONResponse: true,
	}
	nearbyDecoding = llm.DecodingParams{
		Temperature:  llm.Float32(0.3),
		JSONResponse: true,
	}
)

// PreferenceStore es lo que CaddyService necesita de la cuenta activa.
type PreferenceStore interface {
	CurrentUser() (domain.User, bool)
	UpdatePreferences(ctx context.Context, patch domain.PreferencesPatch) (domain.User, error)
}

// CaddyService orquesta prompt, llamada al modelo y validación de la respuesta.
type CaddyService struct {
	logger    *zap.Logger
	llmClient llm.LLMClient
	prompts   CaddyPromptBuilder
	parser    SuggestionParser
	accounts  PreferenceStore
	courses   *catalog.Catalog
}

// NewCaddyService acepta accounts nil: en ese caso no se recuerdan las métricas.
func NewCaddyService(logger *zap.Logger, llmClient llm.LLMClient, accounts PreferenceStore) *CaddyService {
	return &CaddyService{
		logger:    logger,
		llmClient: llmClient,
		parser:    NewSuggestionParser(logger),
		accounts:  accounts,
		courses:   catalog.Default(),
	}
}

// FetchSuggestion hace una sola llamada al modelo y devuelve la sugerencia validada.
// Con sesión activa, las métricas usadas quedan como preferencias del usuario.
func (s *CaddyService) FetchSuggestion(ctx context.Context, metrics domain.PerformanceMetrics, courseName string) (domain.SuggestionResponse, error) {
	const op = "fetch suggestion"
	courseName = strings.TrimSpace(courseName)
	if metrics.DriverCarryDistance <= 0 || metrics.AverageScore <= 0 {
		return domain.SuggestionResponse{}, domain.NewError(domain.KindValidation, op, msgInvalidMetrics)
	}
	if courseName == "" || s.courses.IsPlaceholder(courseName) {
		return domain.SuggestionResponse{}, domain.NewError(domain.KindValidation, op, msgCourseRequired)
	}

	prompt := s.prompts.BuildSuggestionPrompt(metrics, courseName)
	raw, err := s.llmClient.Generate(ctx, prompt, suggestionDecoding)
	if err != nil {
		s.logger.Error("suggestion request failed", zap.String("course", courseName), zap.Error(err))
		return domain.SuggestionResponse{}, asUpstreamError(op, err)
	}

	resp, err := s.parser.ParseSuggestion(raw)
	if err != nil {
		return domain.SuggestionResponse{}, err
	}

	s.rememberMetrics(ctx, metrics)
	return resp, nil
}

// FetchNearbyCourses devuelve una lista posiblemente vacía; solo falla la llamada al modelo.
func (s *CaddyService) FetchNearbyCourses(ctx context.Context, location string) ([]domain.GolfCourseOption, error) {
	const op = "fetch nearby courses"
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, domain.NewError(domain.KindValidation, op, msgLocationRequired)
	}

	raw, err := s.llmClient.Generate(ctx, s.prompts.BuildNearbySearchPrompt(location), nearbyDecoding)
	if err != nil {
		s.logger.Error("nearby course search failed", zap.String("location", location), zap.Error(err))
		return nil, asUpstreamError(op, err)
	}
	return s.parser.ParseNearbyCourses(raw), nil
}

// DefaultMetrics usa las preferencias del usuario activo cuando existen.
func (s *CaddyService) DefaultMetrics() domain.PerformanceMetrics {
	metrics := domain.PerformanceMetrics{
		DriverCarryDistance: domain.DefaultDriverCarryDistance,
		AverageScore:        domain.DefaultAverageScore,
	}
	if s.accounts == nil {
		return metrics
	}
	user, ok := s.accounts.CurrentUser()
	if !ok || user.Preferences == nil {
		return metrics
	}
	if user.Preferences.DriverCarryDistance > 0 {
		metrics.DriverCarryDistance = user.Preferences.DriverCarryDistance
	}
	if user.Preferences.AverageScore > 0 {
		metrics.AverageScore = user.Preferences.AverageScore
	}
	return metrics
}

// CourseOptions devuelve el catálogo fijo de campos.
func (s *CaddyService) CourseOptions() []domain.GolfCourseOption {
	return s.courses.Options()
}

// DefaultCourse es el campo preseleccionado del catálogo.
func (s *CaddyService) DefaultCourse() string {
	return s.courses.Default
}

func (s *CaddyService) rememberMetrics(ctx context.Context, metrics domain.PerformanceMetrics) {
	if s.accounts == nil {
		return
	}
	if _, ok := s.accounts.CurrentUser(); !ok {
		return
	}
	carry, score := metrics.DriverCarryDistance, metrics.AverageScore
	_, err := s.accounts.UpdatePreferences(ctx, domain.PreferencesPatch{
		DriverCarryDistance: &carry,
		AverageScore:        &score,
	})
	if err != nil {
		s.logger.Warn("failed to remember performance metrics", zap.Error(err))
	}
}

func asUpstreamError(op string, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	return domain.WrapError(domain.KindUpstream, op, "generative service call failed", err)
}
