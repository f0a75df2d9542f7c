package i18n

import "testing"

// Both catalogs must define every key. A hole here is a build-time bug, not
// a runtime fallback case.
func TestCatalogCompleteness(t *testing.T) {
	for _, lang := range []Language{Spanish, English} {
		cat := catalogs[lang]
		for _, key := range AllKeys() {
			if _, ok := cat[key]; !ok {
				t.Errorf("catalog %q is missing key %q", lang, key)
			}
		}
		if len(cat) != len(AllKeys()) {
			t.Errorf("catalog %q has %d entries, AllKeys lists %d", lang, len(cat), len(AllKeys()))
		}
	}
}

func TestTUnknownLanguageFallsBackToDefault(t *testing.T) {
	got := T(Language("fr"), QuizCorrect)
	want := T(Default, QuizCorrect)
	if got != want {
		t.Errorf("T(fr) = %q, want default-catalog %q", got, want)
	}
}

func TestLanguageValid(t *testing.T) {
	tests := []struct {
		lang Language
		want bool
	}{
		{Spanish, true},
		{English, true},
		{Language(""), false},
		{Language("pt"), false},
	}
	for _, tt := range tests {
		if got := tt.lang.Valid(); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.lang, got, tt.want)
		}
	}
}
