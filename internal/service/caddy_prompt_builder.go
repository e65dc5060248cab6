package service

import (
	"fmt"
	"strings"

	"golf-caddy/internal/catalog"
	"golf-caddy/internal/domain"
)

// CaddyPromptBuilder arma los prompts del caddie. Es puro: misma entrada, mismo texto.
type CaddyPromptBuilder struct{}

// BuildSuggestionPrompt arma el prompt de selección de 14 palos para los tres estilos.
func (CaddyPromptBuilder) BuildSuggestionPrompt(metrics domain.PerformanceMetrics, courseName string) string {
	var sb strings.Builder
	courseName = strings.TrimSpace(courseName)
	generic := catalog.IsGenericCourse(courseName)

	sb.WriteString("You are an experienced professional golf caddie. ")
	sb.WriteString("Recommend the clubs this golfer should carry and give concrete strategic advice.\n\n")

	sb.WriteString("=== GOLFER ===\n")
	sb.WriteString(fmt.Sprintf("- Driver carry distance: %d yards\n", metrics.DriverCarryDistance))
	sb.WriteString(fmt.Sprintf("- Average score: %d\n\n", metrics.AverageScore))

	sb.WriteString("=== COURSE ===\n")
	if generic {
		sb.WriteString(fmt.Sprintf("Course: %q\n", courseName))
		sb.WriteString("This is not a specific, well-known course. Assume a typical Japanese golf course: ")
		sb.WriteString("moderate length, standard hazards such as bunkers and ponds, and some elevation changes. ")
		sb.WriteString("If the course name says no information is available, keep the advice general.\n\n")
	} else {
		sb.WriteString(fmt.Sprintf("Course: %q\n", courseName))
		sb.WriteString("Use what is known about this course (layout, length, hazards, greens, typical wind) ")
		sb.WriteString("and tie the advice to it.\n\n")
	}

	sb.WriteString("=== TASK ===\n")
	sb.WriteString(fmt.Sprintf("1. \"caddyAdvice\": overall advice for this golfer on %s: ", courseLabel(courseName, generic)))
	sb.WriteString("club selection philosophy, course management and mental approach. At least three sentences.\n")
	sb.WriteString(fmt.Sprintf("2. \"styleSuggestions\": exactly %d entries, one per play style, in this order: %s.\n",
		StylesPerSuggestion, quoteJoin(PlayerStyles)))
	sb.WriteString(fmt.Sprintf("3. Each entry lists exactly %d clubs in \"clubs\". ", ClubsPerStyle))
	sb.WriteString("Every club has \"name\" (for example ドライバー, 3番ウッド, 7番アイアン, 52度ウェッジ, パター) ")
	sb.WriteString(fmt.Sprintf("and \"category\" (one of %s). ", quoteJoin(ClubCategories)))
	sb.WriteString("Add a short \"rationale\" when the choice depends on the course or on the golfer's numbers.\n")
	sb.WriteString("4. \"generalAdvice\": four to six sentences of tactics specific to that style, ")
	sb.WriteString("different from caddyAdvice.\n\n")

	sb.WriteString("=== OUTPUT FORMAT ===\n")
	sb.WriteString("Write every natural-language value in Japanese.\n")
	sb.WriteString("Respond with one JSON object and nothing else: no markdown, no text before or after it. ")
	sb.WriteString("It must conform to this JSON Schema:\n")
	sb.WriteString(SuggestionSchemaText())
	sb.WriteString("\n")

	return sb.String()
}

// BuildNearbySearchPrompt arma el prompt de búsqueda de campos cerca de location.
func (CaddyPromptBuilder) BuildNearbySearchPrompt(location string) string {
	var sb strings.Builder

	sb.WriteString("You are an assistant with detailed knowledge of golf course locations.\n\n")
	sb.WriteString(fmt.Sprintf("Location entered by the user: %q\n\n", strings.TrimSpace(location)))

	sb.WriteString("=== TASK ===\n")
	sb.WriteString(fmt.Sprintf("List up to %d golf courses near this location. ", MaxNearbyCourses))
	sb.WriteString("Each entry needs \"name\" and, when known, \"address\" (approximate address or city). ")
	sb.WriteString("Write names and addresses in Japanese when the course is in Japan.\n")
	sb.WriteString("If no courses are found or the location is too vague, return an empty array [].\n\n")

	sb.WriteString("=== OUTPUT FORMAT ===\n")
	sb.WriteString("Respond with one JSON array and nothing else. It must conform to this JSON Schema:\n")
	sb.WriteString(NearbySchemaText())
	sb.WriteString("\n")

	return sb.String()
}

func courseLabel(courseName string, generic bool) string {
	if generic {
		return "a typical course"
	}
	return fmt.Sprintf("%q", courseName)
}

func quoteJoin(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return strings.Join(quoted, ", ")
}
