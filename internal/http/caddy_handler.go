package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"golf-caddy/internal/domain"
	"golf-caddy/internal/service"
)

// CaddyHandler expone el catálogo, las sugerencias y la búsqueda de campos cercanos.
type CaddyHandler struct {
	logger   *zap.Logger
	caddy    *service.CaddyService
	accounts *service.AccountService
}

func NewCaddyHandler(logger *zap.Logger, caddy *service.CaddyService, accounts *service.AccountService) *CaddyHandler {
	return &CaddyHandler{
		logger:   logger,
		caddy:    caddy,
		accounts: accounts,
	}
}

type courseEntry struct {
	domain.GolfCourseOption
	Favorite bool `json:"favorite"`
}

// Courses maneja GET /courses: catálogo, valores por defecto y favoritos del usuario activo.
func (h *CaddyHandler) Courses(c *gin.Context) {
	favorites := map[string]bool{}
	if h.accounts != nil {
		if user, ok := h.accounts.CurrentUser(); ok && user.Preferences != nil {
			for _, name := range user.Preferences.FavoriteCourses {
				favorites[name] = true
			}
		}
	}

	options := h.caddy.CourseOptions()
	courses := make([]courseEntry, 0, len(options))
	for _, opt := range options {
		courses = append(courses, courseEntry{GolfCourseOption: opt, Favorite: favorites[opt.Value]})
	}

	c.JSON(http.StatusOK, gin.H{
		"courses":        courses,
		"defaultCourse":  h.caddy.DefaultCourse(),
		"defaultMetrics": h.caddy.DefaultMetrics(),
	})
}

// Suggest maneja POST /suggestions.
func (h *CaddyHandler) Suggest(c *gin.Context) {
	var req struct {
		DriverCarryDistance int    `json:"driverCarryDistance"`
		AverageScore        int    `json:"averageScore"`
		Course              string `json:"course"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(c, h.logger, "fetch suggestion", err)
		return
	}

	metrics := domain.PerformanceMetrics{
		DriverCarryDistance: req.DriverCarryDistance,
		AverageScore:        req.AverageScore,
	}
	resp, err := h.caddy.FetchSuggestion(c.Request.Context(), metrics, req.Course)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// NearbyCourses maneja POST /courses/nearby. Una lista vacía no es un error.
func (h *CaddyHandler) NearbyCourses(c *gin.Context) {
	var req struct {
		Location string `json:"location"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(c, h.logger, "fetch nearby courses", err)
		return
	}

	courses, err := h.caddy.FetchNearbyCourses(c.Request.Context(), req.Location)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": courses})
}
