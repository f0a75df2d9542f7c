package content

import (
	"testing"

	"github.com/btced/btced/internal/i18n"
)

func TestLoadValidatesEmbeddedPacks(t *testing.T) {
	lib, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	for _, lang := range []i18n.Language{i18n.English, i18n.Spanish} {
		pack := lib.Pack(lang)
		if pack == nil {
			t.Fatalf("no pack for %s", lang)
		}
		if len(pack.Questions) == 0 || len(pack.Stories) == 0 || len(pack.Lessons) == 0 {
			t.Errorf("%s pack is missing content", lang)
		}
	}
}

func TestPackFallsBackToDefaultLanguage(t *testing.T) {
	lib, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	got := lib.Pack(i18n.Language("fr"))
	want := lib.Pack(i18n.Default)
	if got != want {
		t.Errorf("unknown language did not resolve to default pack")
	}
}

func TestLanguagesShareStructure(t *testing.T) {
	lib, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	en := lib.Pack(i18n.English)
	es := lib.Pack(i18n.Spanish)

	if len(en.Questions) != len(es.Questions) {
		t.Fatalf("question counts differ: en=%d es=%d", len(en.Questions), len(es.Questions))
	}
	for i := range en.Questions {
		if en.Questions[i].Correct != es.Questions[i].Correct {
			t.Errorf("question %d: correct index differs", i)
		}
	}
	for i := range en.Stories {
		if en.Stories[i].ID != es.Stories[i].ID {
			t.Errorf("story %d: IDs differ", i)
		}
	}
}

func TestStoryAndLessonLookup(t *testing.T) {
	lib, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	story, ok := lib.Story(i18n.English, "lunas-first-satoshi")
	if !ok {
		t.Fatal("expected story lunas-first-satoshi")
	}
	if len(story.Chapters) != 3 {
		t.Errorf("chapters = %d, want 3", len(story.Chapters))
	}

	if _, ok := lib.Story(i18n.English, "missing"); ok {
		t.Error("lookup of missing story succeeded")
	}

	lesson, ok := lib.Lesson(i18n.Spanish, "security-seed-phrase")
	if !ok {
		t.Fatal("expected lesson security-seed-phrase")
	}
	if lesson.Module != "security" {
		t.Errorf("module = %q, want security", lesson.Module)
	}
}

func TestModuleCompletion(t *testing.T) {
	lib, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	modules := lib.Modules(i18n.English)
	if len(modules) != 3 {
		t.Fatalf("modules = %v, want 3 entries", modules)
	}

	done := make(map[string]bool)
	if lib.ModuleComplete(i18n.English, "basics", done) {
		t.Error("empty progress reported module complete")
	}
	for _, l := range lib.Lessons(i18n.English) {
		if l.Module == "basics" {
			done[l.ID] = true
		}
	}
	if !lib.ModuleComplete(i18n.English, "basics", done) {
		t.Error("full progress not reported complete")
	}
	if lib.ModuleComplete(i18n.English, "nope", done) {
		t.Error("unknown module reported complete")
	}
}
