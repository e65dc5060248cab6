// Package catalog expone el catálogo estático de campos de golf.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"golf-caddy/internal/domain"
)

//go:embed courses.yaml
var coursesYAML []byte

// Catalog agrupa las opciones, el valor por defecto y los marcadores de "sin campo concreto".
type Catalog struct {
	Default        string                    `yaml:"default"`
	Placeholder    string                    `yaml:"placeholder"`
	GenericMarkers []string                  `yaml:"generic_markers"`
	Courses        []domain.GolfCourseOption `yaml:"courses"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Parse decodifica un catálogo YAML y valida que el default exista.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(c.Courses) == 0 {
		return nil, fmt.Errorf("catalog has no courses")
	}
	if c.Default == "" {
		c.Default = c.Courses[0].Value
	}
	if _, ok := c.Lookup(c.Default); !ok {
		return nil, fmt.Errorf("catalog default %q is not a listed course", c.Default)
	}
	return &c, nil
}

// Default devuelve el catálogo embebido. Un YAML roto es un bug de build, por eso panic.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(coursesYAML)
		if err != nil {
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Options devuelve una copia de las opciones del catálogo.
func (c *Catalog) Options() []domain.GolfCourseOption {
	return append([]domain.GolfCourseOption(nil), c.Courses...)
}

func (c *Catalog) Lookup(value string) (domain.GolfCourseOption, bool) {
	for _, opt := range c.Courses {
		if opt.Value == value {
			return opt, true
		}
	}
	return domain.GolfCourseOption{}, false
}

// IsGeneric indica si el nombre contiene alguno de los marcadores genéricos.
func (c *Catalog) IsGeneric(courseName string) bool {
	for _, marker := range c.GenericMarkers {
		if marker != "" && strings.Contains(courseName, marker) {
			return true
		}
	}
	return false
}

// IsPlaceholder indica si el valor es el separador del selector (no es un campo).
func (c *Catalog) IsPlaceholder(courseName string) bool {
	return c.Placeholder != "" && courseName == c.Placeholder
}

// IsGenericCourse es un atajo sobre el catálogo embebido.
func IsGenericCourse(courseName string) bool {
	return Default().IsGeneric(courseName)
}
