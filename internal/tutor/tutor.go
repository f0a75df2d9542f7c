// Package tutor bridges the session to the chat model behind three
// personas: Luna teaches the learner, Pedrito gets taught by the learner,
// and the adventure narrator runs a choose-your-path story. The bridge
// never surfaces provider errors to the learner; it degrades to localized
// fallback messages and keeps the session going.
package tutor

import (
	"context"
	"fmt"
	"os"

	"github.com/btced/btced/internal/i18n"
	"github.com/btced/btced/internal/llm"
	"github.com/btced/btced/internal/progress"
	"github.com/btced/btced/internal/store"
)

// Persona selects the tutor character.
type Persona string

const (
	// PersonaGuide is Luna, who explains Bitcoin to the learner.
	PersonaGuide Persona = "guide"
	// PersonaPal is Pedrito, whom the learner teaches.
	PersonaPal Persona = "pal"
	// PersonaAdventure is the interactive story narrator.
	PersonaAdventure Persona = "adventure"
)

// Valid reports whether p is a known persona.
func (p Persona) Valid() bool {
	switch p {
	case PersonaGuide, PersonaPal, PersonaAdventure:
		return true
	}
	return false
}

// XP awards and thresholds for tutor interactions.
const (
	GuideChatXP       = 5
	PalTeachXP        = 15
	PalChatXP         = 3
	AdventureChoiceXP = 10
	AdventureAskXP    = 5

	// TeachingGoal teaching hits unlock the great-teacher achievement.
	TeachingGoal = 5
	// CompanionGoal guide conversations unlock the companion achievement.
	CompanionGoal = 10
	// ExplorerPathLen adventure choices unlock the explorer achievement.
	ExplorerPathLen = 5

	maxHistory  = 10
	maxTokens   = 600
	temperature = 0.8
)

// Exchange is one tutor turn as presented to the client.
type Exchange struct {
	Text        string            `json:"text"`
	TeachingHit bool              `json:"teaching_hit"`
	Fallback    bool              `json:"fallback"`
	Notices     []string          `json:"notices,omitempty"`
	Effects     []progress.Effect `json:"effects,omitempty"`
}

// Bridge holds one session's tutor state across all personas. Not safe for
// concurrent use; the session layer serializes access.
type Bridge struct {
	sessionID string
	provider  llm.Provider
	tracker   *progress.Tracker
	events    store.EventRepo

	histories     map[Persona][]llm.Message
	guideTurns    int
	teachingScore int

	studentName string
	chapter     int
	path        string
}

// NewBridge builds a tutor bridge. A nil provider is allowed; every chat
// then answers with the not-configured message.
func NewBridge(sessionID string, provider llm.Provider, tracker *progress.Tracker, events store.EventRepo) *Bridge {
	return &Bridge{
		sessionID: sessionID,
		provider:  provider,
		tracker:   tracker,
		events:    events,
		histories: make(map[Persona][]llm.Message),
		chapter:   1,
	}
}

// Configured reports whether a live model backs the bridge.
func (b *Bridge) Configured() bool { return b.provider != nil }

// Intro returns the persona's localized opening line.
func (b *Bridge) Intro(persona Persona, lang i18n.Language) string {
	switch persona {
	case PersonaPal:
		return i18n.T(lang, i18n.TutorPalIntro)
	case PersonaAdventure:
		return i18n.T(lang, i18n.TutorAdventureIntro)
	default:
		return i18n.T(lang, i18n.TutorGuideIntro)
	}
}

// History returns the persona's conversation so far.
func (b *Bridge) History(persona Persona) []llm.Message {
	return b.histories[persona]
}

// TeachingScore returns the number of successful teaching turns.
func (b *Bridge) TeachingScore() int { return b.teachingScore }

// Path returns the adventure choice history ("ABAB...").
func (b *Bridge) Path() string { return b.path }

// SetStudent names the adventure protagonist.
func (b *Bridge) SetStudent(name string) { b.studentName = name }

// SetChapter selects the adventure chapter.
func (b *Bridge) SetChapter(n int) {
	if n >= 1 {
		b.chapter = n
	}
}

// Chat sends the learner's message to the active persona and applies the
// persona's XP and achievement rules.
func (b *Bridge) Chat(ctx context.Context, persona Persona, lang i18n.Language, message string) Exchange {
	teaching := persona == PersonaPal && isTeaching(message)

	reply, ok := b.complete(ctx, persona, lang, message)
	if !ok {
		return reply
	}

	ex := reply
	ex.TeachingHit = teaching

	switch persona {
	case PersonaGuide:
		b.guideTurns++
		ex.Effects = append(ex.Effects, b.tracker.AwardXP(ctx, GuideChatXP, "tutor_guide")...)
		if b.guideTurns >= CompanionGoal {
			if fx, unlocked := b.tracker.Unlock(ctx, progress.AchCompanion); unlocked {
				ex.Effects = append(ex.Effects, fx...)
			}
		}
	case PersonaPal:
		if teaching {
			b.teachingScore++
			ex.Notices = append(ex.Notices, i18n.T(lang, i18n.TutorGreatTeaching))
			ex.Effects = append(ex.Effects, b.tracker.AwardXP(ctx, PalTeachXP, "tutor_teaching")...)
			if b.teachingScore >= TeachingGoal {
				if fx, unlocked := b.tracker.Unlock(ctx, progress.AchGreatTeacher); unlocked {
					ex.Effects = append(ex.Effects, fx...)
				}
			}
		} else {
			ex.Effects = append(ex.Effects, b.tracker.AwardXP(ctx, PalChatXP, "tutor_pal")...)
		}
	case PersonaAdventure:
		ex.Effects = append(ex.Effects, b.tracker.AwardXP(ctx, AdventureAskXP, "tutor_adventure")...)
	}

	b.logChat(ctx, persona, teaching)
	return ex
}

// Choose advances the adventure with option "A" or "B". Five choices in one
// run unlock the explorer achievement.
func (b *Bridge) Choose(ctx context.Context, lang i18n.Language, choice string) Exchange {
	if choice != "A" && choice != "B" {
		choice = "A"
	}

	prompt := fmt.Sprintf("I chose option [%s]. Continue the story.", choice)
	reply, ok := b.complete(ctx, PersonaAdventure, lang, prompt)
	if !ok {
		// A fallback turn never advances the story, so it must not
		// lengthen the choice path either.
		return reply
	}
	b.path += choice

	ex := reply
	ex.Effects = append(ex.Effects, b.tracker.AwardXP(ctx, AdventureChoiceXP, "tutor_adventure_choice")...)
	if len(b.path) >= ExplorerPathLen {
		if fx, unlocked := b.tracker.Unlock(ctx, progress.AchStoryExplorer); unlocked {
			ex.Effects = append(ex.Effects, fx...)
		}
	}

	b.logChat(ctx, PersonaAdventure, false)
	return ex
}

// Reset clears a persona's conversation. Resetting the adventure also
// clears the choice path and protagonist.
func (b *Bridge) Reset(persona Persona) {
	delete(b.histories, persona)
	if persona == PersonaAdventure {
		b.path = ""
		b.studentName = ""
		b.chapter = 1
	}
}

// complete runs the model call and maintains history. The bool result is
// false when the exchange ended in a fallback message; fallback turns earn
// nothing and are not recorded in history.
func (b *Bridge) complete(ctx context.Context, persona Persona, lang i18n.Language, message string) (Exchange, bool) {
	if b.provider == nil {
		return Exchange{Text: i18n.T(lang, i18n.TutorNotConfigured), Fallback: true}, false
	}

	history := b.histories[persona]
	start := 0
	if len(history) > maxHistory {
		start = len(history) - maxHistory
	}

	req := llm.Request{
		System:      systemPrompt(persona, lang, b.studentName, b.chapter, b.path),
		Messages:    append(append([]llm.Message{}, history[start:]...), llm.Message{Role: llm.RoleUser, Content: message}),
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	reply, err := b.provider.Complete(llm.WithPurpose(ctx, "tutor_"+string(persona)), req)
	if err != nil {
		return Exchange{Text: i18n.T(lang, i18n.TutorError), Fallback: true}, false
	}

	b.histories[persona] = append(history,
		llm.Message{Role: llm.RoleUser, Content: message},
		llm.Message{Role: llm.RoleAssistant, Content: reply.Text},
	)
	return Exchange{Text: reply.Text}, true
}

func (b *Bridge) logChat(ctx context.Context, persona Persona, teaching bool) {
	if b.events == nil {
		return
	}
	err := b.events.AppendChatEvent(ctx, store.ChatEventData{
		SessionID:   b.sessionID,
		Persona:     string(persona),
		TeachingHit: teaching,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log chat event: %v\n", err)
	}
}
