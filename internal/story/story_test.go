package story

import (
	"context"
	"errors"
	"testing"

	"github.com/btced/btced/internal/content"
	"github.com/btced/btced/internal/progress"
)

func testStories() []content.Story {
	return []content.Story{
		{
			ID:    "first",
			Title: "First",
			Chapters: []content.Chapter{
				{Text: "c1"}, {Text: "c2"}, {Text: "c3"},
			},
		},
		{
			ID:    "second",
			Title: "Second",
			Chapters: []content.Chapter{
				{Text: "c1"}, {Text: "c2"},
			},
		},
	}
}

func TestNavigationBeforeSelect(t *testing.T) {
	r := NewReader(testStories(), progress.NewTracker("test", nil))

	if _, err := r.Current(); !errors.Is(err, ErrNoStorySelected) {
		t.Errorf("Current = %v, want ErrNoStorySelected", err)
	}
	if _, _, err := r.Next(context.Background()); !errors.Is(err, ErrNoStorySelected) {
		t.Errorf("Next = %v, want ErrNoStorySelected", err)
	}
}

func TestSelectUnknownStory(t *testing.T) {
	r := NewReader(testStories(), progress.NewTracker("test", nil))
	if _, err := r.Select("missing"); !errors.Is(err, ErrUnknownStory) {
		t.Errorf("Select = %v, want ErrUnknownStory", err)
	}
}

func TestNextAwardsXPAndStopsAtEnd(t *testing.T) {
	tracker := progress.NewTracker("test", nil)
	r := NewReader(testStories(), tracker)
	if _, err := r.Select("first"); err != nil {
		t.Fatalf("Select: %v", err)
	}

	v, _, err := r.Next(context.Background())
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if v.ChapterIndex != 1 {
		t.Errorf("chapter = %d, want 1", v.ChapterIndex)
	}
	if tracker.XP != NextXP {
		t.Errorf("XP = %d, want %d", tracker.XP, NextXP)
	}

	v, _, _ = r.Next(context.Background())
	if !v.AtEnd {
		t.Fatal("expected final chapter")
	}

	// Past the end Next is a no-op, no XP.
	before := tracker.XP
	v, fx, err := r.Next(context.Background())
	if err != nil {
		t.Fatalf("Next at end: %v", err)
	}
	if v.ChapterIndex != 2 || len(fx) != 0 || tracker.XP != before {
		t.Error("Next at end moved or paid XP")
	}
}

func TestPrevIsFree(t *testing.T) {
	tracker := progress.NewTracker("test", nil)
	r := NewReader(testStories(), tracker)
	r.Select("first")
	r.Next(context.Background())

	v, err := r.Prev()
	if err != nil {
		t.Fatalf("Prev: %v", err)
	}
	if v.ChapterIndex != 0 {
		t.Errorf("chapter = %d, want 0", v.ChapterIndex)
	}
	if tracker.XP != NextXP {
		t.Errorf("Prev changed XP: %d", tracker.XP)
	}

	// Floor at the first chapter.
	v, _ = r.Prev()
	if v.ChapterIndex != 0 {
		t.Errorf("Prev went below 0: %d", v.ChapterIndex)
	}
}

func TestFinishRequiresFinalChapter(t *testing.T) {
	r := NewReader(testStories(), progress.NewTracker("test", nil))
	r.Select("first")
	if _, _, err := r.Finish(context.Background()); !errors.Is(err, ErrNotAtEnd) {
		t.Errorf("Finish = %v, want ErrNotAtEnd", err)
	}
}

func TestFinishPaysBonusAndUnlocksOnce(t *testing.T) {
	tracker := progress.NewTracker("test", nil)
	r := NewReader(testStories(), tracker)
	r.Select("second")
	r.Next(context.Background())

	v, effects, err := r.Finish(context.Background())
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if v.ChapterIndex != 0 {
		t.Errorf("finish did not rewind: chapter %d", v.ChapterIndex)
	}
	if !tracker.Unlocked(progress.AchStoryReader) {
		t.Error("storyteller not unlocked")
	}
	sawAch := false
	for _, fx := range effects {
		if fx.Kind == progress.EffectAchievement {
			sawAch = true
		}
	}
	if !sawAch {
		t.Error("no achievement effect on first finish")
	}

	// Second run through: finish bonus again, achievement stays one-shot.
	xpAfterFirst := tracker.XP
	r.Next(context.Background())
	_, effects, err = r.Finish(context.Background())
	if err != nil {
		t.Fatalf("second Finish: %v", err)
	}
	for _, fx := range effects {
		if fx.Kind == progress.EffectAchievement {
			t.Error("achievement effect repeated")
		}
	}
	if tracker.XP != xpAfterFirst+NextXP+FinishXP {
		t.Errorf("XP = %d, want %d", tracker.XP, xpAfterFirst+NextXP+FinishXP)
	}
}

func TestSelectRewinds(t *testing.T) {
	r := NewReader(testStories(), progress.NewTracker("test", nil))
	r.Select("first")
	r.Next(context.Background())

	v, err := r.Select("first")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if v.ChapterIndex != 0 {
		t.Errorf("re-select kept chapter %d", v.ChapterIndex)
	}
}
