package domain

import "time"

type User struct {
	ID          string           `json:"id"`
	Email       string           `json:"email"`
	Name        string           `json:"name"`
	CreatedAt   time.Time        `json:"createdAt"`
	Preferences *UserPreferences `json:"preferences,omitempty"`
}

// UserPreferences guarda los últimos valores usados por el usuario.
type UserPreferences struct {
	DriverCarryDistance int      `json:"driverCarryDistance,omitempty"`
	AverageScore        int      `json:"averageScore,omitempty"`
	FavoriteCourses     []string `json:"favoriteCourses,omitempty"`
}

// PreferencesPatch es una actualización parcial: los campos nil no se tocan.
type PreferencesPatch struct {
	DriverCarryDistance *int      `json:"driverCarryDistance,omitempty"`
	AverageScore        *int      `json:"averageScore,omitempty"`
	FavoriteCourses     *[]string `json:"favoriteCourses,omitempty"`
}

// IsEmpty indica si el patch no modifica ningún campo.
func (p PreferencesPatch) IsEmpty() bool {
	return p.DriverCarryDistance == nil && p.AverageScore == nil && p.FavoriteCourses == nil
}

// MergePreferences aplica un merge superficial del patch sobre base y devuelve una copia nueva.
func MergePreferences(base *UserPreferences, patch PreferencesPatch) *UserPreferences {
	merged := UserPreferences{}
	if base != nil {
		merged = *base
		if base.FavoriteCourses != nil {
			merged.FavoriteCourses = append([]string(nil), base.FavoriteCourses...)
		}
	}
	if patch.DriverCarryDistance != nil {
		merged.DriverCarryDistance = *patch.DriverCarryDistance
	}
	if patch.AverageScore != nil {
		merged.AverageScore = *patch.AverageScore
	}
	if patch.FavoriteCourses != nil {
		merged.FavoriteCourses = append([]string(nil), (*patch.FavoriteCourses)...)
	}
	return &merged
}
