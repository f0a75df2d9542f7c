// Package story drives the chaptered narrative reader. Moving forward earns
// XP, finishing a story pays a bonus and unlocks the storyteller
// achievement; paging backwards is always free.
package story

import (
	"context"
	"errors"

	"github.com/btced/btced/internal/content"
	"github.com/btced/btced/internal/progress"
)

// XP awards for reader actions.
const (
	NextXP   = 15
	FinishXP = 30
)

var (
	// ErrUnknownStory is returned when selecting a story ID not in the pack.
	ErrUnknownStory = errors.New("unknown story")
	// ErrNoStorySelected is returned for navigation before a Select.
	ErrNoStorySelected = errors.New("no story selected")
	// ErrNotAtEnd is returned when finishing before the last chapter.
	ErrNotAtEnd = errors.New("not at final chapter")
)

// Reader tracks the session's position inside one story at a time. Not safe
// for concurrent use; the session layer serializes access.
type Reader struct {
	stories []content.Story
	tracker *progress.Tracker

	selected int // index into stories, -1 when none
	chapter  int
}

// View is the reader position presented to the client.
type View struct {
	Story        content.Story
	Chapter      content.Chapter
	ChapterIndex int
	ChapterCount int
	AtStart      bool
	AtEnd        bool
}

// NewReader builds a reader over the language pack's stories.
func NewReader(stories []content.Story, tracker *progress.Tracker) *Reader {
	return &Reader{stories: stories, tracker: tracker, selected: -1}
}

// Stories lists the available stories.
func (r *Reader) Stories() []content.Story {
	return r.stories
}

// Select opens a story at its first chapter. Re-selecting the current story
// also rewinds to the beginning.
func (r *Reader) Select(id string) (View, error) {
	for i, s := range r.stories {
		if s.ID == id {
			r.selected = i
			r.chapter = 0
			return r.view(), nil
		}
	}
	return View{}, ErrUnknownStory
}

// Current returns the open story and chapter.
func (r *Reader) Current() (View, error) {
	if r.selected < 0 {
		return View{}, ErrNoStorySelected
	}
	return r.view(), nil
}

// Next turns to the following chapter and awards reading XP. At the final
// chapter it stays put; Finish closes the story out.
func (r *Reader) Next(ctx context.Context) (View, []progress.Effect, error) {
	if r.selected < 0 {
		return View{}, nil, ErrNoStorySelected
	}
	story := r.stories[r.selected]
	if r.chapter >= len(story.Chapters)-1 {
		return r.view(), nil, nil
	}
	r.chapter++
	effects := r.tracker.AwardXP(ctx, NextXP, "story_next")
	return r.view(), effects, nil
}

// Prev turns back one chapter. No XP either way.
func (r *Reader) Prev() (View, error) {
	if r.selected < 0 {
		return View{}, ErrNoStorySelected
	}
	if r.chapter > 0 {
		r.chapter--
	}
	return r.view(), nil
}

// Finish completes the open story from its final chapter: a completion
// bonus, the storyteller achievement on the first ever finish, and the
// reader rewinds for a re-read.
func (r *Reader) Finish(ctx context.Context) (View, []progress.Effect, error) {
	if r.selected < 0 {
		return View{}, nil, ErrNoStorySelected
	}
	story := r.stories[r.selected]
	if r.chapter != len(story.Chapters)-1 {
		return View{}, nil, ErrNotAtEnd
	}

	effects := r.tracker.AwardXP(ctx, FinishXP, "story_finish")
	if fx, ok := r.tracker.Unlock(ctx, progress.AchStoryReader); ok {
		effects = append(effects, fx...)
	}
	r.chapter = 0
	return r.view(), effects, nil
}

func (r *Reader) view() View {
	story := r.stories[r.selected]
	// Chapter lists are never empty (the pack schema enforces it), but a
	// stale index from a content swap must not panic the session.
	idx := r.chapter % len(story.Chapters)
	return View{
		Story:        story,
		Chapter:      story.Chapters[idx],
		ChapterIndex: idx,
		ChapterCount: len(story.Chapters),
		AtStart:      idx == 0,
		AtEnd:        idx == len(story.Chapters)-1,
	}
}
