package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"golf-caddy/internal/domain"
)

var (
	accent = lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#8BC34A"}
	muted  = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(accent)
	headerStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(muted)
	successStyle = lipgloss.NewStyle().Foreground(accent)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E53935"))
	cardStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1).
			Width(72)
)

func renderSuggestion(resp domain.SuggestionResponse, course string, metrics domain.PerformanceMetrics) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("⛳ " + course))
	sb.WriteString("\n")
	sb.WriteString(mutedStyle.Render(fmt.Sprintf("ドライバー飛距離 %dy / 平均スコア %d", metrics.DriverCarryDistance, metrics.AverageScore)))
	sb.WriteString("\n\n")

	sb.WriteString(headerStyle.Render("キャディからのアドバイス"))
	sb.WriteString("\n")
	sb.WriteString(cardStyle.Render(resp.CaddyAdvice))
	sb.WriteString("\n")

	for _, style := range resp.StyleSuggestions {
		sb.WriteString("\n")
		sb.WriteString(headerStyle.Render(style.StyleName))
		sb.WriteString("\n")
		for i, club := range style.Clubs {
			line := fmt.Sprintf("%2d. %s %s", i+1, club.Name, mutedStyle.Render("["+club.Category+"]"))
			if club.Rationale != "" {
				line += " " + mutedStyle.Render("- "+club.Rationale)
			}
			sb.WriteString(line)
			sb.WriteString("\n")
		}
		sb.WriteString(cardStyle.Render(style.GeneralAdvice))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func renderCourses(options []domain.GolfCourseOption, defaultCourse string, favorites []string) string {
	fav := make(map[string]bool, len(favorites))
	for _, f := range favorites {
		fav[f] = true
	}

	var sb strings.Builder
	sb.WriteString(headerStyle.Render("コース一覧"))
	sb.WriteString("\n")
	for _, opt := range options {
		mark := "  "
		if fav[opt.Value] {
			mark = successStyle.Render("★ ")
		}
		line := mark + opt.Label
		if opt.Value == defaultCourse {
			line += " " + mutedStyle.Render("(default)")
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func renderNearby(location string, courses []domain.GolfCourseOption) string {
	if len(courses) == 0 {
		return mutedStyle.Render(fmt.Sprintf("「%s」周辺のゴルフ場は見つかりませんでした。", location))
	}
	var sb strings.Builder
	sb.WriteString(headerStyle.Render(fmt.Sprintf("「%s」周辺のゴルフ場", location)))
	sb.WriteString("\n")
	for i, c := range courses {
		sb.WriteString(fmt.Sprintf("%2d. %s\n", i+1, c.Label))
	}
	sb.WriteString(mutedStyle.Render(`caddy suggest --course "<name>" で提案を取得できます。`))
	return sb.String()
}

func renderUser(user domain.User) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(user.Name))
	sb.WriteString(" ")
	sb.WriteString(mutedStyle.Render("<" + user.Email + ">"))
	sb.WriteString("\n")

	prefs := user.Preferences
	if prefs == nil {
		prefs = &domain.UserPreferences{}
	}
	sb.WriteString(fmt.Sprintf("ドライバー飛距離: %s\n", orDash(prefs.DriverCarryDistance, "y")))
	sb.WriteString(fmt.Sprintf("平均スコア: %s\n", orDash(prefs.AverageScore, "")))
	if len(prefs.FavoriteCourses) == 0 {
		sb.WriteString("お気に入りコース: -")
	} else {
		sb.WriteString("お気に入りコース: " + strings.Join(prefs.FavoriteCourses, ", "))
	}
	return sb.String()
}

func orDash(v int, unit string) string {
	if v <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d%s", v, unit)
}
