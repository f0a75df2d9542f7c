package quiz

import (
	"context"
	"errors"
	"testing"

	"github.com/btced/btced/internal/content"
	"github.com/btced/btced/internal/progress"
)

func testQuestions() []content.Question {
	return []content.Question{
		{Text: "q1", Options: []string{"a", "b"}, Correct: 0, Explanation: "e1"},
		{Text: "q2", Options: []string{"a", "b"}, Correct: 1, Explanation: "e2"},
		{Text: "q3", Options: []string{"a", "b", "c"}, Correct: 2, Explanation: "e3"},
		{Text: "q4", Options: []string{"a", "b"}, Correct: 0, Explanation: "e4"},
	}
}

func answer(t *testing.T, m *Machine, choice int) Result {
	t.Helper()
	res, err := m.Submit(context.Background(), choice)
	if err != nil {
		t.Fatalf("Submit(%d): %v", choice, err)
	}
	if _, err := m.Advance(context.Background()); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	return res
}

func TestCorrectAnswerAwardsXP(t *testing.T) {
	tracker := progress.NewTracker("test", nil)
	m := NewMachine(testQuestions(), tracker)

	res, err := m.Submit(context.Background(), 0)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !res.Correct {
		t.Error("expected correct result")
	}
	if tracker.XP != CorrectXP {
		t.Errorf("XP = %d, want %d", tracker.XP, CorrectXP)
	}
}

func TestIncorrectAnswerRevealsCorrection(t *testing.T) {
	tracker := progress.NewTracker("test", nil)
	m := NewMachine(testQuestions(), tracker)

	res, err := m.Submit(context.Background(), 1)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Correct {
		t.Error("expected incorrect result")
	}
	if res.CorrectOption != "a" {
		t.Errorf("CorrectOption = %q, want a", res.CorrectOption)
	}
	if res.Explanation != "e1" {
		t.Errorf("Explanation = %q, want e1", res.Explanation)
	}
	if tracker.XP != 0 {
		t.Errorf("XP = %d, want 0", tracker.XP)
	}
}

func TestRepeatSubmissionRejected(t *testing.T) {
	m := NewMachine(testQuestions(), progress.NewTracker("test", nil))

	if _, err := m.Submit(context.Background(), 0); err != nil {
		t.Fatalf("first Submit: %v", err)
	}
	if _, err := m.Submit(context.Background(), 1); !errors.Is(err, ErrAlreadyAnswered) {
		t.Errorf("second Submit error = %v, want ErrAlreadyAnswered", err)
	}
}

func TestAdvanceRequiresAnswer(t *testing.T) {
	m := NewMachine(testQuestions(), progress.NewTracker("test", nil))
	if _, err := m.Advance(context.Background()); !errors.Is(err, ErrNotAnswered) {
		t.Errorf("Advance error = %v, want ErrNotAnswered", err)
	}
}

func TestChoiceOutOfRange(t *testing.T) {
	m := NewMachine(testQuestions(), progress.NewTracker("test", nil))
	for _, choice := range []int{-1, 2} {
		if _, err := m.Submit(context.Background(), choice); !errors.Is(err, ErrChoiceOutOfRange) {
			t.Errorf("Submit(%d) error = %v, want ErrChoiceOutOfRange", choice, err)
		}
	}
}

func TestPassingRunUnlocksChampion(t *testing.T) {
	tracker := progress.NewTracker("test", nil)
	m := NewMachine(testQuestions(), tracker)

	// 3 of 4 correct: 0.75 >= 0.7.
	answer(t, m, 0)
	answer(t, m, 1)
	answer(t, m, 2)
	res, err := m.Submit(context.Background(), 1)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Correct {
		t.Fatal("final answer should be wrong")
	}
	effects, err := m.Advance(context.Background())
	if err != nil {
		t.Fatalf("final Advance: %v", err)
	}

	sum := m.Summary()
	if !sum.Finished || !sum.Passed || sum.Score != 3 {
		t.Errorf("summary = %+v, want finished pass with score 3", sum)
	}
	if !tracker.Unlocked(progress.AchQuizChampion) {
		t.Error("champion achievement not unlocked")
	}
	found := false
	for _, fx := range effects {
		if fx.Kind == progress.EffectAchievement {
			found = true
		}
	}
	if !found {
		t.Error("no achievement effect returned")
	}
}

func TestFailingRunDoesNotUnlock(t *testing.T) {
	tracker := progress.NewTracker("test", nil)
	m := NewMachine(testQuestions(), tracker)

	// 1 of 4 correct: 0.25 < 0.7.
	answer(t, m, 0)
	answer(t, m, 0)
	answer(t, m, 0)
	answer(t, m, 1)

	if m.Summary().Passed {
		t.Error("run with 1/4 reported as passed")
	}
	if tracker.Unlocked(progress.AchQuizChampion) {
		t.Error("champion unlocked on failing run")
	}
}

func TestRestartResetsRunNotXP(t *testing.T) {
	tracker := progress.NewTracker("test", nil)
	m := NewMachine(testQuestions(), tracker)
	answer(t, m, 0)

	m.Restart()
	sum := m.Summary()
	if sum.Index != 0 || sum.Score != 0 || sum.Finished {
		t.Errorf("summary after restart = %+v", sum)
	}
	if tracker.XP != CorrectXP {
		t.Errorf("XP reset by restart: %d", tracker.XP)
	}

	// Earlier question is answerable again after a restart.
	if _, err := m.Submit(context.Background(), 0); err != nil {
		t.Fatalf("Submit after restart: %v", err)
	}
}

func TestSubmitAfterFinish(t *testing.T) {
	tracker := progress.NewTracker("test", nil)
	m := NewMachine(testQuestions(), tracker)
	answer(t, m, 0)
	answer(t, m, 1)
	answer(t, m, 2)
	answer(t, m, 0)

	if _, err := m.Submit(context.Background(), 0); !errors.Is(err, ErrFinished) {
		t.Errorf("Submit after finish = %v, want ErrFinished", err)
	}
	if _, ok := m.Current(); ok {
		t.Error("Current returned a question after finish")
	}
}
