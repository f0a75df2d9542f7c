// Package budget scores a practice household budget split across needs,
// wants, savings, and an emergency fund. The arithmetic is pure; the advisor
// wraps it with the achievement side effect.
package budget

import (
	"context"

	"github.com/btced/btced/internal/i18n"
	"github.com/btced/btced/internal/progress"
)

// MinSavingsRate is the combined savings plus emergency percentage that
// earns a healthy verdict.
const MinSavingsRate = 20

// Verdict classifies an allocation.
type Verdict string

const (
	// VerdictUnbalanced means the percentages do not sum to 100.
	VerdictUnbalanced Verdict = "unbalanced"
	// VerdictGood means a balanced budget with a healthy savings rate.
	VerdictGood Verdict = "good"
	// VerdictNeedsReview means balanced but under-saving.
	VerdictNeedsReview Verdict = "needs_review"
)

// Allocation is a percentage split of monthly income.
type Allocation struct {
	Needs     int `json:"needs"`
	Wants     int `json:"wants"`
	Savings   int `json:"savings"`
	Emergency int `json:"emergency"`
}

// Total sums the four percentages.
func (a Allocation) Total() int {
	return a.Needs + a.Wants + a.Savings + a.Emergency
}

// Evaluation is the scored result.
type Evaluation struct {
	Verdict     Verdict  `json:"verdict"`
	Total       int      `json:"total"`
	SavingsRate int      `json:"savings_rate"`
	MessageKey  i18n.Key `json:"-"`
}

// Evaluate scores an allocation. Pure; no XP or achievements.
func Evaluate(a Allocation) Evaluation {
	ev := Evaluation{
		Total:       a.Total(),
		SavingsRate: a.Savings + a.Emergency,
	}
	switch {
	case ev.Total != 100:
		ev.Verdict = VerdictUnbalanced
		ev.MessageKey = i18n.BudgetUnbalanced
	case ev.SavingsRate >= MinSavingsRate:
		ev.Verdict = VerdictGood
		ev.MessageKey = i18n.BudgetGood
	default:
		ev.Verdict = VerdictNeedsReview
		ev.MessageKey = i18n.BudgetNeedsReview
	}
	return ev
}

// Advisor ties evaluation to the session's progress: the first healthy
// budget unlocks the budget-pro achievement.
type Advisor struct {
	tracker *progress.Tracker
}

// NewAdvisor builds an advisor over the session's tracker.
func NewAdvisor(tracker *progress.Tracker) *Advisor {
	return &Advisor{tracker: tracker}
}

// Evaluate scores the allocation and unlocks the achievement on the first
// healthy result.
func (ad *Advisor) Evaluate(ctx context.Context, a Allocation) (Evaluation, []progress.Effect) {
	ev := Evaluate(a)
	if ev.Verdict != VerdictGood {
		return ev, nil
	}
	effects, _ := ad.tracker.Unlock(ctx, progress.AchBudgetPro)
	return ev, effects
}
