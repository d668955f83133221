package controllers

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gofiber/fiber/v2"

	"sorogan/config"
	"sorogan/engine"
	"sorogan/engine/drill"
	"sorogan/lesson"
	"sorogan/session"
	"sorogan/settings"
	"sorogan/store"
)

// wordRequest addresses one word of the open lesson.
type wordRequest struct {
	Paragraph int `json:"paragraph"`
	Word      int `json:"word"`
}

func (r wordRequest) address() lesson.Address {
	return lesson.Address{Paragraph: r.Paragraph, Word: r.Word}
}

// DrillController hosts tasykil drill sessions. Each session wraps one
// drill engine; all engine access is serialized through the session lock.
type DrillController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Loader   lesson.Loader
	Sessions *session.Registry
	Log      *zap.Logger
}

func NewDrillController(db *gorm.DB, cfg *config.Config, loader lesson.Loader, reg *session.Registry, log *zap.Logger) *DrillController {
	return &DrillController{DB: db, Cfg: cfg, Loader: loader, Sessions: reg, Log: log}
}

// Start godoc
// @Summary Start a tasykil drill over a lesson
// @Tags drill
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /lessons/{id}/drill [post]
func (dc *DrillController) Start(c *fiber.Ctx) error {
	userID := currentUserID(c)
	lessonID := c.Params("id")

	doc, err := dc.Loader.Load(lessonID)
	if err != nil {
		return lessonError(c, err)
	}

	cues := &session.CueRecorder{}
	detail := &session.DetailRecorder{}
	s := dc.Sessions.AddDrill(userID, lessonID, cues, detail, func(sched engine.Scheduler) *drill.Engine {
		return drill.New(doc, drill.Config{
			Scheduler: sched,
			Cues:      cues,
			Detail:    detail,
			Logger:    dc.Log,
		})
	})
	var state fiber.Map
	s.Do(func(e *drill.Engine) {
		e.Start()
		state = drillState(e, true)
	})

	// Entering the drill turns tasykil mode on for the user.
	on := true
	if err := store.NewSettingsStore(dc.DB, userID).Update(settings.Partial{IsTasykilMode: &on}); err != nil {
		dc.Log.Warn("enable tasykil mode", zap.Uint("user", userID), zap.Error(err))
	}

	return c.JSON(fiber.Map{
		"sessionId": s.ID,
		"lessonId":  lessonID,
		"state":     state,
	})
}

func (dc *DrillController) session(c *fiber.Ctx) (*session.DrillSession, error) {
	id, err := uuid.Parse(c.Params("sessionId"))
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session id",
		})
	}
	s, ok := dc.Sessions.Drill(id, currentUserID(c))
	if !ok {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found",
		})
	}
	return s, nil
}

// drillState is the full session snapshot returned by every drill endpoint.
// harakat controls how non-interactive words render.
func drillState(e *drill.Engine, harakat bool) fiber.Map {
	words := make([]fiber.Map, 0, e.TotalInteractive())
	for _, iw := range e.Words() {
		w := fiber.Map{
			"paragraph": iw.Address.Paragraph,
			"word":      iw.Address.Word,
			"text":      e.DisplayText(iw.Address, harakat),
		}
		if r, ok := e.Result(iw.Address); ok {
			w["status"] = r.Status
		}
		words = append(words, w)
	}

	state := fiber.Map{
		"status":           e.Status(),
		"totalInteractive": e.TotalInteractive(),
		"answered":         e.AnsweredCount(),
		"correct":          e.CorrectCount(),
		"wrong":            e.WrongCount(),
		"accuracy":         e.Accuracy(),
		"progress":         e.Progress(),
		"isFinished":       e.IsFinished(),
		"exitPending":      e.ExitPending(),
		"words":            words,
	}
	if target, ok := e.PopoverTarget(); ok {
		state["popover"] = fiber.Map{
			"paragraph": target.Paragraph,
			"word":      target.Word,
			"options":   e.PopoverOptions(),
		}
	}
	return state
}

// State godoc
// @Summary Current drill session state
// @Tags drill
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /drill/{sessionId} [get]
func (dc *DrillController) State(c *fiber.Ctx) error {
	s, errResp := dc.session(c)
	if s == nil {
		return errResp
	}
	harakat := c.QueryBool("harakat", true)
	var state fiber.Map
	s.Do(func(e *drill.Engine) {
		state = drillState(e, harakat)
	})
	return c.JSON(fiber.Map{"state": state})
}

// ClickWord toggles the popover on the addressed word.
func (dc *DrillController) ClickWord(c *fiber.Ctx) error {
	s, errResp := dc.session(c)
	if s == nil {
		return errResp
	}
	var req wordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	var state fiber.Map
	s.Do(func(e *drill.Engine) {
		e.ClickWord(req.address())
		state = drillState(e, true)
	})
	return c.JSON(fiber.Map{"state": state})
}

// DoubleClickWord opens the I'rab detail for the addressed word when the
// engine allows it. The detail payload rides back in the response.
func (dc *DrillController) DoubleClickWord(c *fiber.Ctx) error {
	s, errResp := dc.session(c)
	if s == nil {
		return errResp
	}
	var req wordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	var (
		detail    engine.Detail
		hasDetail bool
	)
	s.Do(func(e *drill.Engine) {
		e.DoubleClickWord(req.address())
		detail, hasDetail = s.Detail.Take()
	})
	resp := fiber.Map{}
	if hasDetail {
		resp["detail"] = detail
	}
	return c.JSON(resp)
}

// SelectOption answers the popover's word. The response carries the sound
// cue so the client can play it when sound is enabled.
func (dc *DrillController) SelectOption(c *fiber.Ctx) error {
	s, errResp := dc.session(c)
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
	s.Do(func(e *drill.Engine) {
		e.SelectOption(req.Option)
		cue, hasCue = s.Cues.Take()
		state = drillState(e, true)
	})
	resp := fiber.Map{"state": state}
	if hasCue {
		resp["cue"] = cue
	}
	return c.JSON(resp)
}

// Layout computes the container scroll needed to keep the rendered popover
// visible. The client measures; the server owns the margins.
func (dc *DrillController) Layout(c *fiber.Ctx) error {
	s, errResp := dc.session(c)
	if s == nil {
		return errResp
	}
	var req struct {
		Popover struct {
			Top    float64 `json:"top"`
			Bottom float64 `json:"bottom"`
		} `json:"popover"`
		Container struct {
			Top    float64 `json:"top"`
			Bottom float64 `json:"bottom"`
		} `json:"container"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	delta := engine.ScrollDelta(
		engine.Box{Top: req.Popover.Top, Bottom: req.Popover.Bottom},
		engine.Box{Top: req.Container.Top, Bottom: req.Container.Bottom},
	)
	return c.JSON(fiber.Map{"scrollBy": delta})
}

// Review enters answer review.
func (dc *DrillController) Review(c *fiber.Ctx) error {
	return dc.apply(c, func(e *drill.Engine) { e.Review() })
}

// BackToSummary returns from review to the score summary.
func (dc *DrillController) BackToSummary(c *fiber.Ctx) error {
	return dc.apply(c, func(e *drill.Engine) { e.BackToSummary() })
}

// Restart starts the drill over.
func (dc *DrillController) Restart(c *fiber.Ctx) error {
	return dc.apply(c, func(e *drill.Engine) { e.Restart() })
}

// RequestExit asks for exit confirmation.
func (dc *DrillController) RequestExit(c *fiber.Ctx) error {
	return dc.apply(c, func(e *drill.Engine) { e.RequestExit() })
}

// CancelExit abandons a pending exit request.
func (dc *DrillController) CancelExit(c *fiber.Ctx) error {
	return dc.apply(c, func(e *drill.Engine) { e.CancelExit() })
}

// ConfirmExit discards the session, turns tasykil mode back off and drops
// the registry entry.
func (dc *DrillController) ConfirmExit(c *fiber.Ctx) error {
	s, errResp := dc.session(c)
	if s == nil {
		return errResp
	}
	var (
		state  fiber.Map
		exited bool
	)
	s.Do(func(e *drill.Engine) {
		e.ConfirmExit()
		exited = e.Status() == drill.StatusExited
		state = drillState(e, true)
	})
	if exited {
		dc.Sessions.RemoveDrill(s.ID)
		off := false
		if err := store.NewSettingsStore(dc.DB, s.UserID).Update(settings.Partial{IsTasykilMode: &off}); err != nil {
			dc.Log.Warn("disable tasykil mode", zap.Uint("user", s.UserID), zap.Error(err))
		}
	}
	return c.JSON(fiber.Map{"state": state})
}

// apply runs a state transition and returns the resulting snapshot.
func (dc *DrillController) apply(c *fiber.Ctx, fn func(*drill.Engine)) error {
	s, errResp := dc.session(c)
	if s == nil {
		return errResp
	}
	var state fiber.Map
	s.Do(func(e *drill.Engine) {
		fn(e)
		state = drillState(e, true)
	})
	return c.JSON(fiber.Map{"state": state})
}
