package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorIs_MatchesByKind(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewError(KindSchema, "parse suggestion", "styleSuggestions must not be empty"))
	if !errors.Is(err, ErrSchema) {
		t.Fatalf("expected schema error to match ErrSchema")
	}
	if errors.Is(err, ErrParse) {
		t.Fatalf("schema error must not match ErrParse")
	}
	if KindOf(err) != KindSchema {
		t.Fatalf("expected kind schema, got %q", KindOf(err))
	}
}

func TestErrorIs_AuthConfigurationIsConfiguration(t *testing.T) {
	err := WrapError(KindAuthConfiguration, "generate", "invalid api key", errors.New("API key not valid"))
	if !errors.Is(err, ErrAuthConfiguration) {
		t.Fatalf("expected auth configuration match")
	}
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected auth configuration error to also be a configuration error")
	}
	if errors.Is(NewError(KindConfiguration, "", "missing key"), ErrAuthConfiguration) {
		t.Fatalf("plain configuration error must not match ErrAuthConfiguration")
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(NewError(KindValidation, "register", "パスワードは6文字以上で入力してください。")); got != "パスワードは6文字以上で入力してください。" {
		t.Fatalf("expected validation message passthrough, got %q", got)
	}
	if got := UserMessage(NewError(KindAuth, "login", "user not found")); got != userMessages[KindAuth] {
		t.Fatalf("expected generic credentials message, got %q", got)
	}
	if got := UserMessage(NewError(KindAuth, "update preferences", MsgLoginRequired)); got != "ログインが必要です。" {
		t.Fatalf("expected login required message, got %q", got)
	}
	if got := UserMessage(errors.New("boom")); got != unknownErrorMessage {
		t.Fatalf("expected unknown message, got %q", got)
	}
}

func TestMergePreferences_ShallowMerge(t *testing.T) {
	distance := 230
	base := &UserPreferences{DriverCarryDistance: distance, FavoriteCourses: []string{"東京ゴルフ倶楽部"}}
	score := 88

	merged := MergePreferences(base, PreferencesPatch{AverageScore: &score})
	if merged.DriverCarryDistance != 230 || merged.AverageScore != 88 {
		t.Fatalf("unexpected merge result: %+v", merged)
	}
	if len(merged.FavoriteCourses) != 1 {
		t.Fatalf("expected favorites untouched, got %+v", merged.FavoriteCourses)
	}

	merged.FavoriteCourses[0] = "changed"
	if base.FavoriteCourses[0] != "東京ゴルフ倶楽部" {
		t.Fatalf("merge must not alias the base favorites slice")
	}

	if got := MergePreferences(nil, PreferencesPatch{}); got == nil || got.AverageScore != 0 {
		t.Fatalf("expected empty preferences from nil base, got %+v", got)
	}
}
