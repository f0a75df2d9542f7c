package server

import (
	"github.com/btced/btced/internal/content"
	"github.com/btced/btced/internal/i18n"
	"github.com/btced/btced/internal/progress"
	"github.com/btced/btced/internal/quiz"
	"github.com/btced/btced/internal/story"
	"github.com/btced/btced/internal/tutor"
)

// effectView is an Effect with its achievement name localized for the
// session's language.
type effectView struct {
	Kind        string `json:"kind"`
	Level       int    `json:"level,omitempty"`
	Achievement string `json:"achievement,omitempty"`
	Name        string `json:"name,omitempty"`
	BonusXP     int    `json:"bonus_xp,omitempty"`
}

func effectViews(lang i18n.Language, effects []progress.Effect) []effectView {
	if len(effects) == 0 {
		return nil
	}
	views := make([]effectView, 0, len(effects))
	for _, e := range effects {
		v := effectView{
			Kind:        string(e.Kind),
			Level:       e.Level,
			Achievement: string(e.Achievement),
			BonusXP:     e.BonusXP,
		}
		if e.NameKey != "" {
			v.Name = i18n.T(lang, e.NameKey)
		}
		views = append(views, v)
	}
	return views
}

// questionView hides the correct index and explanation until the answer is
// submitted.
type questionView struct {
	Text    string   `json:"question"`
	Options []string `json:"options"`
}

type quizSummaryView struct {
	Index    int  `json:"index"`
	Total    int  `json:"total"`
	Score    int  `json:"score"`
	Answered bool `json:"answered"`
	Finished bool `json:"finished"`
	Passed   bool `json:"passed"`
}

type quizStateView struct {
	Question *questionView   `json:"question,omitempty"`
	Summary  quizSummaryView `json:"summary"`
}

func quizView(m *quiz.Machine) quizStateView {
	sum := m.Summary()
	view := quizStateView{
		Summary: quizSummaryView{
			Index:    sum.Index,
			Total:    sum.Total,
			Score:    sum.Score,
			Answered: sum.Answered,
			Finished: sum.Finished,
			Passed:   sum.Passed,
		},
	}
	if q, ok := m.Current(); ok {
		view.Question = &questionView{Text: q.Text, Options: q.Options}
	}
	return view
}

type chapterView struct {
	Text   string `json:"text"`
	Lesson string `json:"lesson"`
	Emoji  string `json:"emoji"`
}

type storyStateView struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Character    string      `json:"character"`
	Chapter      chapterView `json:"chapter"`
	ChapterIndex int         `json:"chapter_index"`
	ChapterCount int         `json:"chapter_count"`
	AtStart      bool        `json:"at_start"`
	AtEnd        bool        `json:"at_end"`
}

func storyView(v story.View) storyStateView {
	return storyStateView{
		ID:        v.Story.ID,
		Title:     v.Story.Title,
		Character: v.Story.Character,
		Chapter: chapterView{
			Text:   v.Chapter.Text,
			Lesson: v.Chapter.Lesson,
			Emoji:  v.Chapter.Emoji,
		},
		ChapterIndex: v.ChapterIndex,
		ChapterCount: v.ChapterCount,
		AtStart:      v.AtStart,
		AtEnd:        v.AtEnd,
	}
}

// storyListing is the catalog entry shown before a story is opened.
type storyListing struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Character string `json:"character"`
	Chapters  int    `json:"chapters"`
}

func storyListings(stories []content.Story) []storyListing {
	listings := make([]storyListing, 0, len(stories))
	for _, st := range stories {
		listings = append(listings, storyListing{
			ID:        st.ID,
			Title:     st.Title,
			Character: st.Character,
			Chapters:  len(st.Chapters),
		})
	}
	return listings
}

type exchangeView struct {
	Text        string       `json:"text"`
	TeachingHit bool         `json:"teaching_hit"`
	Fallback    bool         `json:"fallback"`
	Notices     []string     `json:"notices,omitempty"`
	Effects     []effectView `json:"effects,omitempty"`
}

func exchangeViewOf(lang i18n.Language, ex tutor.Exchange) exchangeView {
	return exchangeView{
		Text:        ex.Text,
		TeachingHit: ex.TeachingHit,
		Fallback:    ex.Fallback,
		Notices:     ex.Notices,
		Effects:     effectViews(lang, ex.Effects),
	}
}
