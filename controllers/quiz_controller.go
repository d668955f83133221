package controllers

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gofiber/fiber/v2"

	"sorogan/config"
	"sorogan/engine"
	"sorogan/engine/quiz"
	"sorogan/lesson"
	"sorogan/session"
	"sorogan/store"
)

// QuizController hosts multiple-choice quiz sessions.
type QuizController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Loader   lesson.Loader
	Sessions *session.Registry
	Log      *zap.Logger
}

func NewQuizController(db *gorm.DB, cfg *config.Config, loader lesson.Loader, reg *session.Registry, log *zap.Logger) *QuizController {
	return &QuizController{DB: db, Cfg: cfg, Loader: loader, Sessions: reg, Log: log}
}

// Start godoc
// @Summary Start a quiz over a lesson
// @Tags quiz
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /lessons/{id}/quiz [post]
func (qc *QuizController) Start(c *fiber.Ctx) error {
	userID := currentUserID(c)
	lessonID := c.Params("id")

	doc, err := qc.Loader.Load(lessonID)
	if err != nil {
		return lessonError(c, err)
	}

	cues := &session.CueRecorder{}
	s := qc.Sessions.AddQuiz(userID, lessonID, cues, func(sched engine.Scheduler) *quiz.Engine {
		return quiz.New(doc, quiz.Config{
			Scheduler: sched,
			Cues:      cues,
			Progress:  store.NewProgressStore(qc.DB, userID),
			Logger:    qc.Log,
		})
	})
	var state fiber.Map
	s.Do(func(e *quiz.Engine) {
		state = quizState(e)
	})

	return c.JSON(fiber.Map{
		"sessionId": s.ID,
		"lessonId":  lessonID,
		"state":     state,
	})
}

func (qc *QuizController) session(c *fiber.Ctx) (*session.QuizSession, error) {
	id, err := uuid.Parse(c.Params("sessionId"))
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session id",
		})
	}
	s, ok := qc.Sessions.Quiz(id, currentUserID(c))
	if !ok {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found",
		})
	}
	return s, nil
}

// quizState is the session snapshot returned by every quiz endpoint. The
// correct answer is withheld until the current question is answered.
func quizState(e *quiz.Engine) fiber.Map {
	state := fiber.Map{
		"mode":           e.Mode(),
		"currentIndex":   e.CurrentIndex(),
		"totalQuestions": e.TotalQuestions(),
		"score":          e.Score(),
		"accuracy":       e.Accuracy(),
		"exitPending":    e.ExitPending(),
	}

	if q, ok := e.Current(); ok && e.Mode() == quiz.ModeInProgress {
		question := fiber.Map{
			"question": q.Question,
			"context":  q.Context,
			"options":  e.CurrentOptions(),
		}
		if selected := e.SelectedAnswer(); selected != "" {
			question["selectedAnswer"] = selected
			question["correctAnswer"] = q.Options[q.CorrectAnswer]
			question["isCorrect"] = selected == q.Options[q.CorrectAnswer]
			question["explanation"] = q.Explanation
		}
		state["question"] = question
	}

	if item, ok := e.ReviewItem(); ok {
		state["review"] = item
	}

	return state
}

// State godoc
// @Summary Current quiz session state
// @Tags quiz
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /quiz/{sessionId} [get]
func (qc *QuizController) State(c *fiber.Ctx) error {
	s, errResp := qc.session(c)
	if s == nil {
		return errResp
	}
	var state fiber.Map
	s.Do(func(e *quiz.Engine) {
		state = quizState(e)
	})
	return c.JSON(fiber.Map{"state": state})
}

// Answer locks in an option for the current question. The response carries
// the sound cue so the client can play it when sound is enabled.
func (qc *QuizController) Answer(c *fiber.Ctx) error {
	s, errResp := qc.session(c)
	if s == nil {
		return errResp
	}
	var req struct {
		Option string `json:"option"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	var (
		state  fiber.Map
		cue    engine.Cue
		hasCue bool
	)
	s.Do(func(e *quiz.Engine) {
		e.Answer(req.Option)
		cue, hasCue = s.Cues.Take()
		state = quizState(e)
	})
	resp := fiber.Map{"state": state}
	if hasCue {
		resp["cue"] = cue
	}
	return c.JSON(resp)
}

// Review enters answer review from the summary.
func (qc *QuizController) Review(c *fiber.Ctx) error {
	return qc.apply(c, func(e *quiz.Engine) { e.Review() })
}

// ReviewNext steps forward through the answered snapshots.
func (qc *QuizController) ReviewNext(c *fiber.Ctx) error {
	return qc.apply(c, func(e *quiz.Engine) { e.ReviewNext() })
}

// ReviewPrev steps backward through the answered snapshots.
func (qc *QuizController) ReviewPrev(c *fiber.Ctx) error {
	return qc.apply(c, func(e *quiz.Engine) { e.ReviewPrev() })
}

// BackToSummary returns from review to the score summary.
func (qc *QuizController) BackToSummary(c *fiber.Ctx) error {
	return qc.apply(c, func(e *quiz.Engine) { e.BackToSummary() })
}

// Restart reshuffles and starts the quiz over.
func (qc *QuizController) Restart(c *fiber.Ctx) error {
	return qc.apply(c, func(e *quiz.Engine) { e.Restart() })
}

// RequestExit asks for exit confirmation.
func (qc *QuizController) RequestExit(c *fiber.Ctx) error {
	return qc.apply(c, func(e *quiz.Engine) { e.RequestExit() })
}

// CancelExit abandons a pending exit request.
func (qc *QuizController) CancelExit(c *fiber.Ctx) error {
	return qc.apply(c, func(e *quiz.Engine) { e.CancelExit() })
}

// ConfirmExit discards the session and drops the registry entry. Nothing
// is persisted; an exited quiz never marks the lesson complete.
func (qc *QuizController) ConfirmExit(c *fiber.Ctx) error {
	s, errResp := qc.session(c)
	if s == nil {
		return errResp
	}
	var (
		state  fiber.Map
		exited bool
	)
	s.Do(func(e *quiz.Engine) {
		e.ConfirmExit()
		exited = e.Mode() == quiz.ModeExited
		state = quizState(e)
	})
	if exited {
		qc.Sessions.RemoveQuiz(s.ID)
	}
	return c.JSON(fiber.Map{"state": state})
}

// apply runs a state transition and returns the resulting snapshot.
func (qc *QuizController) apply(c *fiber.Ctx, fn func(*quiz.Engine)) error {
	s, errResp := qc.session(c)
	if s == nil {
		return errResp
	}
	var state fiber.Map
	s.Do(func(e *quiz.Engine) {
		fn(e)
		state = quizState(e)
	})
	return c.JSON(fiber.Map{"state": state})
}
