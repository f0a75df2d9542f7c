// Package session owns a learner's in-memory state: language, progress,
// and the live state machines for quiz, stories, wallet, budget, and tutor.
// Each session serializes its own operations; the manager hands out
// sessions by ID.
package session

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/btced/btced/internal/budget"
	"github.com/btced/btced/internal/content"
	"github.com/btced/btced/internal/i18n"
	"github.com/btced/btced/internal/llm"
	"github.com/btced/btced/internal/progress"
	"github.com/btced/btced/internal/quiz"
	"github.com/btced/btced/internal/simulator"
	"github.com/btced/btced/internal/story"
	"github.com/btced/btced/internal/store"
	"github.com/btced/btced/internal/tutor"
)

// XP awards for lesson progress.
const (
	LessonXP      = 25
	ModuleBonusXP = 20
)

// Session is one learner's complete state. All exported operations take the
// session lock; the inner state machines are not otherwise synchronized.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	language i18n.Language

	tracker *progress.Tracker
	quiz    *quiz.Machine
	reader  *story.Reader
	wallet  *simulator.Wallet
	advisor *budget.Advisor
	bridge  *tutor.Bridge

	library *content.Library
}

func newSession(id string, lib *content.Library, provider llm.Provider, events store.EventRepo, quote simulator.QuoteFunc) *Session {
	tracker := progress.NewTracker(id, events)
	s := &Session{
		ID:        id,
		CreatedAt: time.Now().UTC(),
		language:  i18n.Default,
		tracker:   tracker,
		wallet:    simulator.NewWallet(id, tracker, events, quote),
		advisor:   budget.NewAdvisor(tracker),
		bridge:    tutor.NewBridge(id, provider, tracker, events),
		library:   lib,
	}
	s.quiz = quiz.NewMachine(lib.Questions(s.language), tracker)
	s.reader = story.NewReader(lib.Stories(s.language), tracker)
	return s
}

// Language returns the session language.
func (s *Session) Language() i18n.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language
}

// SetLanguage switches the session's language. The quiz run and story
// position restart against the new language pack; progress, wallet, and
// tutor state carry over.
func (s *Session) SetLanguage(lang i18n.Language) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !lang.Valid() || lang == s.language {
		return
	}
	s.language = lang
	s.quiz = quiz.NewMachine(s.library.Questions(lang), s.tracker)
	s.reader = story.NewReader(s.library.Stories(lang), s.tracker)
}

// Progress is the session's progression snapshot.
type Progress struct {
	Level            int           `json:"level"`
	XP               int           `json:"xp"`
	XPIntoLevel      int           `json:"xp_into_level"`
	XPPerLevel       int           `json:"xp_per_level"`
	Achievements     []Achievement `json:"achievements"`
	CompletedLessons []string      `json:"completed_lessons"`
	CompletedModules []string      `json:"completed_modules"`
	Language         i18n.Language `json:"language"`
}

// Achievement is an unlocked achievement with its localized name.
type Achievement struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Progress reports the current progression state.
func (s *Session) Progress() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()

	var achievements []Achievement
	for _, key := range s.tracker.Achievements() {
		if ach, ok := progress.Lookup(key); ok {
			achievements = append(achievements, Achievement{
				Key:  string(key),
				Name: i18n.T(s.language, ach.NameKey),
			})
		}
	}

	var lessons []string
	for id := range s.tracker.CompletedLessons() {
		lessons = append(lessons, id)
	}
	sort.Strings(lessons)
	modules := s.tracker.CompletedModules()
	sort.Strings(modules)

	return Progress{
		Level:            s.tracker.Level,
		XP:               s.tracker.XP,
		XPIntoLevel:      s.tracker.XP % progress.XPPerLevel,
		XPPerLevel:       progress.XPPerLevel,
		Achievements:     achievements,
		CompletedLessons: lessons,
		CompletedModules: modules,
		Language:         s.language,
	}
}

// Lessons returns the lesson list for the session language with completion
// flags.
func (s *Session) Lessons() []LessonView {
	s.mu.Lock()
	defer s.mu.Unlock()

	lessons := s.library.Lessons(s.language)
	out := make([]LessonView, len(lessons))
	for i, l := range lessons {
		out[i] = LessonView{
			Lesson:    l,
			Completed: s.tracker.LessonCompleted(l.ID),
		}
	}
	return out
}

// LessonView is a lesson plus the session's completion state.
type LessonView struct {
	content.Lesson
	Completed bool `json:"completed"`
}

// CompleteLesson marks a lesson done: lesson XP once, the first-lesson
// achievement on the very first completion, a module bonus when the
// lesson's module is fully done, and the security achievement for the
// security module.
func (s *Session) CompleteLesson(ctx context.Context, id string) ([]progress.Effect, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lesson, ok := s.library.Lesson(s.language, id)
	if !ok {
		return nil, false
	}
	if s.tracker.LessonCompleted(id) {
		return nil, true
	}

	effects := s.tracker.CompleteLesson(ctx, id, LessonXP)
	if fx, unlocked := s.tracker.Unlock(ctx, progress.AchFirstLesson); unlocked {
		effects = append(effects, fx...)
	}

	if s.library.ModuleComplete(s.language, lesson.Module, s.tracker.CompletedLessons()) {
		effects = append(effects, s.tracker.CompleteModule(ctx, lesson.Module, ModuleBonusXP)...)
		if lesson.Module == "security" {
			if fx, unlocked := s.tracker.Unlock(ctx, progress.AchSecurityMaster); unlocked {
				effects = append(effects, fx...)
			}
		}
	}
	return effects, true
}

// Do runs fn with the session lock held, giving the handler exclusive
// access to the state machines.
func (s *Session) Do(fn func(st *State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&State{
		Language: s.language,
		Tracker:  s.tracker,
		Quiz:     s.quiz,
		Story:    s.reader,
		Wallet:   s.wallet,
		Budget:   s.advisor,
		Tutor:    s.bridge,
		Library:  s.library,
	})
}

// State is the locked view of a session handed to Do callbacks.
type State struct {
	Language i18n.Language
	Tracker  *progress.Tracker
	Quiz     *quiz.Machine
	Story    *story.Reader
	Wallet   *simulator.Wallet
	Budget   *budget.Advisor
	Tutor    *tutor.Bridge
	Library  *content.Library
}
