package i18n

import (
	"context"
	"strings"
	"testing"
)

func initLang(t *testing.T, lang string) context.Context {
	t.Helper()
	if err := Init(lang); err != nil {
		t.Fatalf("Init(%q): %v", lang, err)
	}
	loc := NewLocalizer(lang)
	return WithLocalizer(context.Background(), loc)
}

func TestTranslateEnglish(t *testing.T) {
	ctx := initLang(t, "en")

	got := T(ctx, "ServiceUnavailable")
	if got != "The AI service is unavailable. Please try again later." {
		t.Errorf("T(ServiceUnavailable) = %q", got)
	}

	got = T(ctx, "TutorGreeting")
	if !strings.Contains(got, "OnGuard AI Tutor") {
		t.Errorf("T(TutorGreeting) = %q, want greeting text", got)
	}
}

func TestTranslateRussian(t *testing.T) {
	ctx := initLang(t, "ru")

	got := T(ctx, "EmptyMessage")
	if got != "Введите сообщение для анализа." {
		t.Errorf("T(EmptyMessage) = %q", got)
	}
}

func TestTemplateDataTranslation(t *testing.T) {
	ctx := initLang(t, "en")

	got := Td(ctx, "BadScenarioCount", map[string]any{"Min": 1, "Max": 10})
	if got != "Scenario count must be between 1 and 10." {
		t.Errorf("Td(BadScenarioCount) = %q", got)
	}
}

func TestMissingKey(t *testing.T) {
	ctx := initLang(t, "en")

	got := T(ctx, "NonExistentKey")
	if got != "NonExistentKey" {
		t.Errorf("T(NonExistentKey) = %q, want the key itself", got)
	}
}
