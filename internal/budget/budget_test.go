package budget

import (
	"context"
	"testing"

	"github.com/btced/btced/internal/i18n"
	"github.com/btced/btced/internal/progress"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		a    Allocation
		want Verdict
	}{
		{"healthy split", Allocation{Needs: 50, Wants: 20, Savings: 20, Emergency: 10}, VerdictGood},
		{"exactly minimum savings", Allocation{Needs: 60, Wants: 20, Savings: 10, Emergency: 10}, VerdictGood},
		{"under-saving", Allocation{Needs: 60, Wants: 30, Savings: 5, Emergency: 5}, VerdictNeedsReview},
		{"over 100", Allocation{Needs: 50, Wants: 20, Savings: 20, Emergency: 20}, VerdictUnbalanced},
		{"under 100", Allocation{Needs: 40, Wants: 20, Savings: 20, Emergency: 10}, VerdictUnbalanced},
		{"all zero", Allocation{}, VerdictUnbalanced},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.a)
			if got.Verdict != tt.want {
				t.Errorf("Evaluate(%+v).Verdict = %s, want %s", tt.a, got.Verdict, tt.want)
			}
		})
	}
}

func TestEvaluateReportsTotals(t *testing.T) {
	ev := Evaluate(Allocation{Needs: 50, Wants: 20, Savings: 20, Emergency: 20})
	if ev.Total != 110 {
		t.Errorf("Total = %d, want 110", ev.Total)
	}
	if ev.SavingsRate != 40 {
		t.Errorf("SavingsRate = %d, want 40", ev.SavingsRate)
	}
	if ev.MessageKey != i18n.BudgetUnbalanced {
		t.Errorf("MessageKey = %s", ev.MessageKey)
	}
}

func TestAdvisorUnlocksBudgetProOnce(t *testing.T) {
	tracker := progress.NewTracker("test", nil)
	ad := NewAdvisor(tracker)

	ev, effects := ad.Evaluate(context.Background(), Allocation{Needs: 50, Wants: 20, Savings: 20, Emergency: 10})
	if ev.Verdict != VerdictGood {
		t.Fatalf("verdict = %s", ev.Verdict)
	}
	if len(effects) == 0 {
		t.Fatal("no effects on first healthy budget")
	}
	if !tracker.Unlocked(progress.AchBudgetPro) {
		t.Error("budget-pro not unlocked")
	}
	// Budget-pro pays the elevated bonus.
	if tracker.XP != 50 {
		t.Errorf("XP = %d, want 50", tracker.XP)
	}

	_, effects = ad.Evaluate(context.Background(), Allocation{Needs: 50, Wants: 20, Savings: 20, Emergency: 10})
	if len(effects) != 0 {
		t.Error("achievement effects repeated")
	}
}

func TestAdvisorNoUnlockOnPoorBudget(t *testing.T) {
	tracker := progress.NewTracker("test", nil)
	ad := NewAdvisor(tracker)

	ad.Evaluate(context.Background(), Allocation{Needs: 60, Wants: 30, Savings: 5, Emergency: 5})
	if tracker.Unlocked(progress.AchBudgetPro) {
		t.Error("budget-pro unlocked on needs-review budget")
	}
}
