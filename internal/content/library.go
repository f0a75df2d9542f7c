// Package content serves the static bilingual learning content: quiz
// question banks, chaptered stories, and lesson modules. Packs are embedded
// JSON validated against a schema at load time; a malformed or inconsistent
// pack is a build/content error, never a runtime fallback.
package content

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/btced/btced/internal/i18n"
)

//go:embed packs/*.json
var packFS embed.FS

// Library holds the validated content packs for every supported language.
type Library struct {
	packs map[i18n.Language]*Pack
}

// Load parses, validates, and cross-checks the embedded content packs.
func Load() (*Library, error) {
	schema, err := compileSchema()
	if err != nil {
		return nil, fmt.Errorf("compile pack schema: %w", err)
	}

	packs := make(map[i18n.Language]*Pack)
	for _, lang := range []i18n.Language{i18n.English, i18n.Spanish} {
		pack, err := loadPack(schema, lang)
		if err != nil {
			return nil, fmt.Errorf("load %s pack: %w", lang, err)
		}
		packs[lang] = pack
	}

	lib := &Library{packs: packs}
	if err := lib.checkConsistency(); err != nil {
		return nil, fmt.Errorf("content packs diverge: %w", err)
	}
	return lib, nil
}

// Pack returns the content for lang, resolving unknown languages through the
// default.
func (l *Library) Pack(lang i18n.Language) *Pack {
	if p, ok := l.packs[lang]; ok {
		return p
	}
	return l.packs[i18n.Default]
}

// Questions returns the quiz bank for lang.
func (l *Library) Questions(lang i18n.Language) []Question {
	return l.Pack(lang).Questions
}

// Stories returns the story list for lang.
func (l *Library) Stories(lang i18n.Language) []Story {
	return l.Pack(lang).Stories
}

// Lessons returns the lesson modules for lang.
func (l *Library) Lessons(lang i18n.Language) []Lesson {
	return l.Pack(lang).Lessons
}

// Lesson looks up a single lesson by ID.
func (l *Library) Lesson(lang i18n.Language, id string) (Lesson, bool) {
	for _, lesson := range l.Pack(lang).Lessons {
		if lesson.ID == id {
			return lesson, true
		}
	}
	return Lesson{}, false
}

// Story looks up a single story by ID.
func (l *Library) Story(lang i18n.Language, id string) (Story, bool) {
	for _, story := range l.Pack(lang).Stories {
		if story.ID == id {
			return story, true
		}
	}
	return Story{}, false
}

// Modules returns the distinct lesson module names in pack order.
func (l *Library) Modules(lang i18n.Language) []string {
	var out []string
	seen := make(map[string]bool)
	for _, lesson := range l.Pack(lang).Lessons {
		if !seen[lesson.Module] {
			seen[lesson.Module] = true
			out = append(out, lesson.Module)
		}
	}
	return out
}

// ModuleComplete reports whether done covers every lesson in module.
func (l *Library) ModuleComplete(lang i18n.Language, module string, done map[string]bool) bool {
	found := false
	for _, lesson := range l.Pack(lang).Lessons {
		if lesson.Module != module {
			continue
		}
		found = true
		if !done[lesson.ID] {
			return false
		}
	}
	return found
}

func compileSchema() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(packSchema))
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("pack.schema.json", doc); err != nil {
		return nil, err
	}
	return compiler.Compile("pack.schema.json")
}

func loadPack(schema *jsonschema.Schema, lang i18n.Language) (*Pack, error) {
	raw, err := packFS.ReadFile(fmt.Sprintf("packs/%s.json", lang))
	if err != nil {
		return nil, fmt.Errorf("read pack: %w", err)
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var pack Pack
	if err := json.Unmarshal(raw, &pack); err != nil {
		return nil, fmt.Errorf("decode pack: %w", err)
	}
	if pack.Language != string(lang) {
		return nil, fmt.Errorf("pack declares language %q, file is %q", pack.Language, lang)
	}

	// The schema can't express "correct index within options"; check here.
	for i, q := range pack.Questions {
		if q.Correct >= len(q.Options) {
			return nil, fmt.Errorf("question %d: correct index %d out of range (%d options)", i, q.Correct, len(q.Options))
		}
	}
	return &pack, nil
}

// checkConsistency verifies that the language packs describe the same
// structure: equal question counts with identical correct indices, matching
// story/chapter shapes, and matching lesson IDs. A hole in one language is a
// development-time error.
func (l *Library) checkConsistency() error {
	en := l.packs[i18n.English]
	es := l.packs[i18n.Spanish]

	if len(en.Questions) != len(es.Questions) {
		return fmt.Errorf("question counts differ: en=%d es=%d", len(en.Questions), len(es.Questions))
	}
	for i := range en.Questions {
		if en.Questions[i].Correct != es.Questions[i].Correct {
			return fmt.Errorf("question %d: correct index differs between languages", i)
		}
		if len(en.Questions[i].Options) != len(es.Questions[i].Options) {
			return fmt.Errorf("question %d: option counts differ between languages", i)
		}
	}

	if len(en.Stories) != len(es.Stories) {
		return fmt.Errorf("story counts differ: en=%d es=%d", len(en.Stories), len(es.Stories))
	}
	for i := range en.Stories {
		if en.Stories[i].ID != es.Stories[i].ID {
			return fmt.Errorf("story %d: IDs differ (%q vs %q)", i, en.Stories[i].ID, es.Stories[i].ID)
		}
		if len(en.Stories[i].Chapters) != len(es.Stories[i].Chapters) {
			return fmt.Errorf("story %q: chapter counts differ", en.Stories[i].ID)
		}
	}

	if len(en.Lessons) != len(es.Lessons) {
		return fmt.Errorf("lesson counts differ: en=%d es=%d", len(en.Lessons), len(es.Lessons))
	}
	for i := range en.Lessons {
		if en.Lessons[i].ID != es.Lessons[i].ID {
			return fmt.Errorf("lesson %d: IDs differ (%q vs %q)", i, en.Lessons[i].ID, es.Lessons[i].ID)
		}
		if en.Lessons[i].Module != es.Lessons[i].Module {
			return fmt.Errorf("lesson %q: modules differ between languages", en.Lessons[i].ID)
		}
	}

	return nil
}
