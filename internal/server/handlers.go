package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/btced/btced/internal/budget"
	"github.com/btced/btced/internal/i18n"
	"github.com/btced/btced/internal/progress"
	"github.com/btced/btced/internal/quiz"
	"github.com/btced/btced/internal/session"
	"github.com/btced/btced/internal/simulator"
	"github.com/btced/btced/internal/story"
	"github.com/btced/btced/internal/tutor"
)

func contextWithSession(ctx context.Context, sess *session.Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

func sessionFrom(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(sessionKey).(*session.Session)
	return sess
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.sessions.Count(),
	})
}

func (s *Server) priceSpot(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, s.price.Spot(r.Context()))
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Create()
	w.Header().Set(SessionHeader, sess.ID)
	JSON(w, http.StatusCreated, map[string]any{
		"session_id": sess.ID,
		"created_at": sess.CreatedAt,
		"language":   sess.Language(),
		"progress":   sess.Progress(),
	})
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	JSON(w, http.StatusOK, map[string]any{
		"session_id": sess.ID,
		"created_at": sess.CreatedAt,
		"language":   sess.Language(),
		"progress":   sess.Progress(),
	})
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	s.sessions.Delete(sess.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) setLanguage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Language string `json:"language"`
	}
	if !decode(w, r, &req) {
		return
	}
	lang := i18n.Language(req.Language)
	if !lang.Valid() {
		Error(w, http.StatusBadRequest, "unsupported language")
		return
	}
	sess := sessionFrom(r.Context())
	sess.SetLanguage(lang)
	JSON(w, http.StatusOK, map[string]any{"language": lang})
}

func (s *Server) getProgress(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, sessionFrom(r.Context()).Progress())
}

func (s *Server) listLessons(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]any{
		"lessons": sessionFrom(r.Context()).Lessons(),
	})
}

func (s *Server) completeLesson(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	effects, ok := sess.CompleteLesson(r.Context(), chi.URLParam(r, "id"))
	if !ok {
		Error(w, http.StatusNotFound, "unknown lesson")
		return
	}
	JSON(w, http.StatusOK, map[string]any{
		"effects":  effectViews(sess.Language(), effects),
		"progress": sess.Progress(),
	})
}

func (s *Server) quizCurrent(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	var view quizStateView
	sess.Do(func(st *session.State) {
		view = quizView(st.Quiz)
	})
	JSON(w, http.StatusOK, view)
}

func (s *Server) quizAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Choice int `json:"choice"`
	}
	if !decode(w, r, &req) {
		return
	}
	sess := sessionFrom(r.Context())

	var (
		result quiz.Result
		lang   i18n.Language
		err    error
	)
	sess.Do(func(st *session.State) {
		lang = st.Language
		result, err = st.Quiz.Submit(r.Context(), req.Choice)
	})
	if err != nil {
		quizError(w, err)
		return
	}

	messageKey := i18n.QuizIncorrect
	if result.Correct {
		messageKey = i18n.QuizCorrect
	}
	JSON(w, http.StatusOK, map[string]any{
		"correct":        result.Correct,
		"correct_option": result.CorrectOption,
		"explanation":    result.Explanation,
		"message":        i18n.T(lang, messageKey),
		"effects":        effectViews(lang, result.Effects),
	})
}

func (s *Server) quizNext(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	var (
		effects []progress.Effect
		view    quizStateView
		lang    i18n.Language
		err     error
	)
	sess.Do(func(st *session.State) {
		lang = st.Language
		effects, err = st.Quiz.Advance(r.Context())
		view = quizView(st.Quiz)
	})
	if err != nil {
		quizError(w, err)
		return
	}

	resp := map[string]any{
		"quiz":    view,
		"effects": effectViews(lang, effects),
	}
	if view.Summary.Finished {
		resp["message"] = i18n.T(lang, i18n.QuizComplete)
	}
	JSON(w, http.StatusOK, resp)
}

func (s *Server) quizRestart(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	var view quizStateView
	sess.Do(func(st *session.State) {
		st.Quiz.Restart()
		view = quizView(st.Quiz)
	})
	JSON(w, http.StatusOK, view)
}

func quizError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, quiz.ErrChoiceOutOfRange):
		Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, quiz.ErrAlreadyAnswered),
		errors.Is(err, quiz.ErrNotAnswered),
		errors.Is(err, quiz.ErrFinished):
		Error(w, http.StatusConflict, err.Error())
	default:
		Error(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) listStories(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	var listings []storyListing
	sess.Do(func(st *session.State) {
		listings = storyListings(st.Story.Stories())
	})
	JSON(w, http.StatusOK, map[string]any{"stories": listings})
}

func (s *Server) selectStory(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	var (
		view story.View
		err  error
	)
	sess.Do(func(st *session.State) {
		view, err = st.Story.Select(chi.URLParam(r, "id"))
	})
	if err != nil {
		storyError(w, err)
		return
	}
	JSON(w, http.StatusOK, storyView(view))
}

func (s *Server) storyCurrent(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	var (
		view story.View
		err  error
	)
	sess.Do(func(st *session.State) {
		view, err = st.Story.Current()
	})
	if err != nil {
		storyError(w, err)
		return
	}
	JSON(w, http.StatusOK, storyView(view))
}

func (s *Server) storyNext(w http.ResponseWriter, r *http.Request) {
	s.storyMove(w, r, func(ctx context.Context, reader *story.Reader) (story.View, []progress.Effect, error) {
		return reader.Next(ctx)
	})
}

func (s *Server) storyPrev(w http.ResponseWriter, r *http.Request) {
	s.storyMove(w, r, func(_ context.Context, reader *story.Reader) (story.View, []progress.Effect, error) {
		view, err := reader.Prev()
		return view, nil, err
	})
}

func (s *Server) storyFinish(w http.ResponseWriter, r *http.Request) {
	s.storyMove(w, r, func(ctx context.Context, reader *story.Reader) (story.View, []progress.Effect, error) {
		return reader.Finish(ctx)
	})
}

func (s *Server) storyMove(w http.ResponseWriter, r *http.Request, move func(context.Context, *story.Reader) (story.View, []progress.Effect, error)) {
	sess := sessionFrom(r.Context())
	var (
		view    story.View
		effects []progress.Effect
		lang    i18n.Language
		err     error
	)
	sess.Do(func(st *session.State) {
		lang = st.Language
		view, effects, err = move(r.Context(), st.Story)
	})
	if err != nil {
		storyError(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]any{
		"story":   storyView(view),
		"effects": effectViews(lang, effects),
	})
}

func storyError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, story.ErrUnknownStory):
		Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, story.ErrNoStorySelected),
		errors.Is(err, story.ErrNotAtEnd):
		Error(w, http.StatusConflict, err.Error())
	default:
		Error(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) walletBalance(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	quote := s.price.Spot(r.Context())

	var balance int64
	sess.Do(func(st *session.State) {
		balance = st.Wallet.Balance()
	})
	JSON(w, http.StatusOK, map[string]any{
		"balance_sats": balance,
		"usd_value":    float64(balance) / 1e8 * quote.USD,
		"quote":        quote,
	})
}

func (s *Server) walletHistory(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	var history []simulator.Transaction
	sess.Do(func(st *session.State) {
		history = st.Wallet.History()
	})
	JSON(w, http.StatusOK, map[string]any{"transactions": history})
}

func (s *Server) walletSend(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Counterparty string `json:"counterparty"`
		AmountSats   int64  `json:"amount_sats"`
		Tier         string `json:"tier"`
	}
	if !decode(w, r, &req) {
		return
	}
	tier := simulator.FeeTier(req.Tier)
	if req.Tier == "" {
		tier = simulator.TierLightning
	}

	sess := sessionFrom(r.Context())
	var (
		tx      simulator.Transaction
		effects []progress.Effect
		balance int64
		lang    i18n.Language
		err     error
	)
	sess.Do(func(st *session.State) {
		lang = st.Language
		tx, effects, err = st.Wallet.Send(r.Context(), req.Counterparty, req.AmountSats, tier)
		balance = st.Wallet.Balance()
	})
	if err != nil {
		walletError(w, lang, err)
		return
	}
	JSON(w, http.StatusOK, map[string]any{
		"transaction":  tx,
		"balance_sats": balance,
		"message":      i18n.T(lang, i18n.TxSent),
		"effects":      effectViews(lang, effects),
	})
}

func (s *Server) walletReceive(w http.ResponseWriter, r *http.Request) {
	var req struct {
		From       string `json:"from"`
		AmountSats int64  `json:"amount_sats"`
	}
	if !decode(w, r, &req) {
		return
	}

	sess := sessionFrom(r.Context())
	var (
		tx      simulator.Transaction
		effects []progress.Effect
		balance int64
		lang    i18n.Language
		err     error
	)
	sess.Do(func(st *session.State) {
		lang = st.Language
		tx, effects, err = st.Wallet.Receive(r.Context(), req.From, req.AmountSats)
		balance = st.Wallet.Balance()
	})
	if err != nil {
		walletError(w, lang, err)
		return
	}
	JSON(w, http.StatusOK, map[string]any{
		"transaction":  tx,
		"balance_sats": balance,
		"message":      i18n.T(lang, i18n.TxReceived),
		"effects":      effectViews(lang, effects),
	})
}

func (s *Server) walletReset(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	var balance int64
	sess.Do(func(st *session.State) {
		st.Wallet.Reset()
		balance = st.Wallet.Balance()
	})
	JSON(w, http.StatusOK, map[string]any{"balance_sats": balance})
}

func walletError(w http.ResponseWriter, lang i18n.Language, err error) {
	switch {
	case errors.Is(err, simulator.ErrInvalidAmount):
		Error(w, http.StatusBadRequest, i18n.T(lang, i18n.TxInvalidAmount))
	case errors.Is(err, simulator.ErrInsufficientBalance):
		Error(w, http.StatusUnprocessableEntity, i18n.T(lang, i18n.TxInsufficientBalance))
	case errors.Is(err, simulator.ErrUnknownTier):
		Error(w, http.StatusBadRequest, err.Error())
	default:
		Error(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) budgetEvaluate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Needs     int `json:"needs"`
		Wants     int `json:"wants"`
		Savings   int `json:"savings"`
		Emergency int `json:"emergency"`
	}
	if !decode(w, r, &req) {
		return
	}
	alloc := budget.Allocation{
		Needs:     req.Needs,
		Wants:     req.Wants,
		Savings:   req.Savings,
		Emergency: req.Emergency,
	}

	sess := sessionFrom(r.Context())
	var (
		eval    budget.Evaluation
		effects []progress.Effect
		lang    i18n.Language
	)
	sess.Do(func(st *session.State) {
		lang = st.Language
		eval, effects = st.Budget.Evaluate(r.Context(), alloc)
	})
	JSON(w, http.StatusOK, map[string]any{
		"verdict":      eval.Verdict,
		"total":        eval.Total,
		"savings_rate": eval.SavingsRate,
		"message":      i18n.T(lang, eval.MessageKey),
		"effects":      effectViews(lang, effects),
	})
}

// persona pulls and validates the {persona} route parameter.
func persona(w http.ResponseWriter, r *http.Request) (tutor.Persona, bool) {
	p := tutor.Persona(chi.URLParam(r, "persona"))
	if !p.Valid() {
		Error(w, http.StatusNotFound, "unknown persona")
		return "", false
	}
	return p, true
}

func (s *Server) tutorIntro(w http.ResponseWriter, r *http.Request) {
	p, ok := persona(w, r)
	if !ok {
		return
	}
	sess := sessionFrom(r.Context())
	var (
		intro      string
		configured bool
	)
	sess.Do(func(st *session.State) {
		intro = st.Tutor.Intro(p, st.Language)
		configured = st.Tutor.Configured()
	})
	JSON(w, http.StatusOK, map[string]any{
		"intro":      intro,
		"configured": configured,
	})
}

func (s *Server) tutorChat(w http.ResponseWriter, r *http.Request) {
	p, ok := persona(w, r)
	if !ok {
		return
	}
	var req struct {
		Message string `json:"message"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Message == "" {
		Error(w, http.StatusBadRequest, "empty message")
		return
	}

	sess := sessionFrom(r.Context())
	var (
		ex   tutor.Exchange
		lang i18n.Language
	)
	sess.Do(func(st *session.State) {
		lang = st.Language
		ex = st.Tutor.Chat(r.Context(), p, lang, req.Message)
	})
	JSON(w, http.StatusOK, exchangeViewOf(lang, ex))
}

func (s *Server) tutorChoose(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Choice string `json:"choice"`
	}
	if !decode(w, r, &req) {
		return
	}

	sess := sessionFrom(r.Context())
	var (
		ex   tutor.Exchange
		lang i18n.Language
		path string
	)
	sess.Do(func(st *session.State) {
		lang = st.Language
		ex = st.Tutor.Choose(r.Context(), lang, req.Choice)
		path = st.Tutor.Path()
	})
	resp := exchangeViewOf(lang, ex)
	JSON(w, http.StatusOK, map[string]any{
		"text":         resp.Text,
		"teaching_hit": resp.TeachingHit,
		"fallback":     resp.Fallback,
		"notices":      resp.Notices,
		"effects":      resp.Effects,
		"path":         path,
	})
}

func (s *Server) tutorReset(w http.ResponseWriter, r *http.Request) {
	p, ok := persona(w, r)
	if !ok {
		return
	}
	sess := sessionFrom(r.Context())
	sess.Do(func(st *session.State) {
		st.Tutor.Reset(p)
	})
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) tutorStudent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Chapter int    `json:"chapter"`
	}
	if !decode(w, r, &req) {
		return
	}

	sess := sessionFrom(r.Context())
	sess.Do(func(st *session.State) {
		if req.Name != "" {
			st.Tutor.SetStudent(req.Name)
		}
		if req.Chapter > 0 {
			st.Tutor.SetChapter(req.Chapter)
		}
	})
	w.WriteHeader(http.StatusNoContent)
}
