// Package quiz runs a session's pass through the multiple-choice question
// bank: one question at a time, answer locked after the first submission,
// score tallied for the championship achievement at the end.
package quiz

import (
	"context"
	"errors"

	"github.com/btced/btced/internal/content"
	"github.com/btced/btced/internal/progress"
)

// CorrectXP is awarded per correctly answered question.
const CorrectXP = 10

// PassThreshold is the score ratio required to finish a run as passed.
const PassThreshold = 0.7

var (
	// ErrAlreadyAnswered is returned when a submission arrives for a
	// question that already has a locked answer.
	ErrAlreadyAnswered = errors.New("question already answered")
	// ErrNotAnswered is returned when advancing past an unanswered question.
	ErrNotAnswered = errors.New("current question not answered")
	// ErrFinished is returned for submissions after the final question.
	ErrFinished = errors.New("quiz already finished")
	// ErrChoiceOutOfRange is returned for an option index outside the
	// current question's options.
	ErrChoiceOutOfRange = errors.New("choice out of range")
)

// Machine walks a fixed question list. It is not safe for concurrent use;
// the session layer serializes access.
type Machine struct {
	questions []content.Question
	tracker   *progress.Tracker

	index    int
	score    int
	answered bool
	choice   int
	finished bool
}

// Result describes the outcome of one submission.
type Result struct {
	Correct       bool
	CorrectOption string
	Explanation   string
	Effects       []progress.Effect
}

// Summary describes a finished (or in-flight) run.
type Summary struct {
	Index    int
	Total    int
	Score    int
	Answered bool
	Finished bool
	Passed   bool
}

// NewMachine starts a fresh run over questions.
func NewMachine(questions []content.Question, tracker *progress.Tracker) *Machine {
	return &Machine{questions: questions, tracker: tracker, choice: -1}
}

// Current returns the question awaiting an answer.
func (m *Machine) Current() (content.Question, bool) {
	if m.finished || m.index >= len(m.questions) {
		return content.Question{}, false
	}
	return m.questions[m.index], true
}

// Submit locks in an answer for the current question. A repeat submission
// for the same question is rejected so XP cannot be farmed by re-answering.
func (m *Machine) Submit(ctx context.Context, choice int) (Result, error) {
	if m.finished {
		return Result{}, ErrFinished
	}
	if m.answered {
		return Result{}, ErrAlreadyAnswered
	}
	q := m.questions[m.index]
	if choice < 0 || choice >= len(q.Options) {
		return Result{}, ErrChoiceOutOfRange
	}

	m.answered = true
	m.choice = choice

	res := Result{
		Correct:       choice == q.Correct,
		CorrectOption: q.Options[q.Correct],
		Explanation:   q.Explanation,
	}
	if res.Correct {
		m.score++
		res.Effects = m.tracker.AwardXP(ctx, CorrectXP, "quiz_correct")
	}
	return res, nil
}

// Advance moves to the next question. Advancing past the last question
// finishes the run and, on a passing score, unlocks the champion
// achievement.
func (m *Machine) Advance(ctx context.Context) ([]progress.Effect, error) {
	if m.finished {
		return nil, ErrFinished
	}
	if !m.answered {
		return nil, ErrNotAnswered
	}

	m.index++
	m.answered = false
	m.choice = -1
	if m.index < len(m.questions) {
		return nil, nil
	}

	m.finished = true
	var effects []progress.Effect
	if m.Passed() {
		if fx, ok := m.tracker.Unlock(ctx, progress.AchQuizChampion); ok {
			effects = append(effects, fx...)
		}
	}
	return effects, nil
}

// Restart resets position and score for a new run. Earned XP stays earned.
func (m *Machine) Restart() {
	m.index = 0
	m.score = 0
	m.answered = false
	m.choice = -1
	m.finished = false
}

// Passed reports whether the score meets the pass threshold.
func (m *Machine) Passed() bool {
	if len(m.questions) == 0 {
		return false
	}
	return float64(m.score)/float64(len(m.questions)) >= PassThreshold
}

// Summary reports current run state.
func (m *Machine) Summary() Summary {
	return Summary{
		Index:    m.index,
		Total:    len(m.questions),
		Score:    m.score,
		Answered: m.answered,
		Finished: m.finished,
		Passed:   m.finished && m.Passed(),
	}
}
