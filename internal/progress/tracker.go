// Package progress owns the gamification state of a learning session:
// experience points, the derived level, streaks, and one-shot achievement
// unlocks. Operations return effects for the presentation layer instead of
// triggering UI side effects themselves.
package progress

import (
	"context"
	"fmt"
	"os"

	"github.com/btced/btced/internal/i18n"
	"github.com/btced/btced/internal/store"
)

// XPPerLevel is the experience span of one level.
const XPPerLevel = 100

// Level derives the level for a given experience total. Level is never
// stored independently of XP.
func Level(xp int) int {
	return xp/XPPerLevel + 1
}

// EffectKind discriminates presentation effects.
type EffectKind string

const (
	EffectLevelUp     EffectKind = "level_up"    // celebratory animation
	EffectAchievement EffectKind = "achievement" // toast with the localized name
)

// Effect is a one-shot presentation trigger produced by an operation.
type Effect struct {
	Kind        EffectKind     `json:"kind"`
	Level       int            `json:"level,omitempty"`
	Achievement AchievementKey `json:"achievement,omitempty"`
	NameKey     i18n.Key       `json:"-"`
	BonusXP     int            `json:"bonus_xp,omitempty"`
}

// Tracker accumulates a session's gamification state. It is not safe for
// concurrent use; the session layer serializes access.
type Tracker struct {
	XP     int
	Level  int
	Streak int

	// unlocked achievement keys in unlock order.
	unlocked []AchievementKey
	byKey    map[AchievementKey]bool

	completedModules map[string]bool
	completedLessons map[string]bool

	sessionID string
	events    store.EventRepo // nil disables telemetry
}

// NewTracker creates a Tracker at level 1 with zero XP.
func NewTracker(sessionID string, events store.EventRepo) *Tracker {
	return &Tracker{
		Level:            1,
		byKey:            make(map[AchievementKey]bool),
		completedModules: make(map[string]bool),
		completedLessons: make(map[string]bool),
		sessionID:        sessionID,
		events:           events,
	}
}

// AwardXP adds a non-negative amount of experience and recomputes the level.
// A level-up effect is emitted only when a new threshold is crossed; calling
// again without crossing one emits nothing. Repeated awards stack: the
// operation models repeated rewards, not an idempotent grant.
func (t *Tracker) AwardXP(ctx context.Context, amount int, reason string) []Effect {
	if amount < 0 {
		// Callers never pass negative amounts; treat as a no-op.
		return nil
	}
	t.XP += amount

	var effects []Effect
	if newLevel := Level(t.XP); newLevel > t.Level {
		t.Level = newLevel
		effects = append(effects, Effect{Kind: EffectLevelUp, Level: newLevel})
	}

	t.logXP(ctx, amount, reason)
	return effects
}

// Unlock grants an achievement at most once. The first call inserts the key,
// awards the achievement's configured bonus XP, and emits a toast effect;
// later calls are no-ops. The returned bool reports whether the unlock was
// new.
func (t *Tracker) Unlock(ctx context.Context, key AchievementKey) ([]Effect, bool) {
	if t.byKey[key] {
		return nil, false
	}
	ach, ok := Lookup(key)
	if !ok {
		return nil, false
	}

	t.byKey[key] = true
	t.unlocked = append(t.unlocked, key)

	effects := []Effect{{
		Kind:        EffectAchievement,
		Achievement: key,
		NameKey:     ach.NameKey,
		BonusXP:     ach.BonusXP,
	}}
	effects = append(effects, t.AwardXP(ctx, ach.BonusXP, "achievement:"+string(key))...)

	t.logAchievement(ctx, ach)
	return effects, true
}

// Unlocked reports whether the achievement has been granted.
func (t *Tracker) Unlocked(key AchievementKey) bool {
	return t.byKey[key]
}

// Achievements returns the unlocked keys in unlock order.
func (t *Tracker) Achievements() []AchievementKey {
	out := make([]AchievementKey, len(t.unlocked))
	copy(out, t.unlocked)
	return out
}

// CompleteModule grants the one-time completion bonus for a module.
// Subsequent calls for the same module award nothing.
func (t *Tracker) CompleteModule(ctx context.Context, id string, bonusXP int) []Effect {
	if t.completedModules[id] {
		return nil
	}
	t.completedModules[id] = true
	return t.AwardXP(ctx, bonusXP, "module:"+id)
}

// CompleteLesson grants the one-time completion bonus for a lesson.
func (t *Tracker) CompleteLesson(ctx context.Context, id string, bonusXP int) []Effect {
	if t.completedLessons[id] {
		return nil
	}
	t.completedLessons[id] = true
	return t.AwardXP(ctx, bonusXP, "lesson:"+id)
}

// LessonCompleted reports whether the lesson's bonus was already granted.
func (t *Tracker) LessonCompleted(id string) bool {
	return t.completedLessons[id]
}

// CompletedLessons returns the lesson IDs with granted bonuses as a set.
func (t *Tracker) CompletedLessons() map[string]bool {
	out := make(map[string]bool, len(t.completedLessons))
	for id := range t.completedLessons {
		out[id] = true
	}
	return out
}

// ModuleCompleted reports whether the module's bonus was already granted.
func (t *Tracker) ModuleCompleted(id string) bool {
	return t.completedModules[id]
}

// CompletedModules returns the module IDs with granted bonuses.
func (t *Tracker) CompletedModules() []string {
	out := make([]string, 0, len(t.completedModules))
	for id := range t.completedModules {
		out = append(out, id)
	}
	return out
}

func (t *Tracker) logXP(ctx context.Context, amount int, reason string) {
	if t.events == nil {
		return
	}
	err := t.events.AppendXPEvent(ctx, store.XPEventData{
		SessionID:  t.sessionID,
		Amount:     amount,
		Reason:     reason,
		TotalAfter: t.XP,
		LevelAfter: t.Level,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log xp event: %v\n", err)
	}
}

func (t *Tracker) logAchievement(ctx context.Context, ach Achievement) {
	if t.events == nil {
		return
	}
	err := t.events.AppendAchievementEvent(ctx, store.AchievementEventData{
		SessionID: t.sessionID,
		Key:       string(ach.Key),
		BonusXP:   ach.BonusXP,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log achievement event: %v\n", err)
	}
}
