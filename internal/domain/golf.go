package domain

import "encoding/json"

const (
	DefaultDriverCarryDistance = 200 // yardas
	DefaultAverageScore        = 100
)

// PerformanceMetrics es la entrada transitoria del formulario de sugerencias.
type PerformanceMetrics struct {
	DriverCarryDistance int `json:"driverCarryDistance"`
	AverageScore        int `json:"averageScore"`
}

type Club struct {
	Name      string `json:"name"`
	Category  string `json:"category"`
	Rationale string `json:"rationale,omitempty"`
}

// UnmarshalJSON conserva rationale solo cuando es un string; cualquier otro valor se descarta.
func (c *Club) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name      string          `json:"name"`
		Category  string          `json:"category"`
		Rationale json.RawMessage `json:"rationale"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.Name, c.Category, c.Rationale = raw.Name, raw.Category, ""
	var rationale string
	if len(raw.Rationale) > 0 && json.Unmarshal(raw.Rationale, &rationale) == nil {
		c.Rationale = rationale
	}
	return nil
}

type PlayerStyleSuggestion struct {
	StyleName     string `json:"styleName"`
	Clubs         []Club `json:"clubs"`
	GeneralAdvice string `json:"generalAdvice"`
}

// SuggestionResponse es el resultado validado de una sugerencia; se descarta en cada request.
type SuggestionResponse struct {
	CaddyAdvice      string                  `json:"caddyAdvice"`
	StyleSuggestions []PlayerStyleSuggestion `json:"styleSuggestions"`
}

// GolfCourseOption es un par seleccionable: Value va al prompt, Label se muestra.
type GolfCourseOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
