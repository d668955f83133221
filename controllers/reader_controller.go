package controllers

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gofiber/fiber/v2"

	"sorogan/config"
	"sorogan/engine"
	"sorogan/engine/reader"
	"sorogan/lesson"
	"sorogan/session"
	"sorogan/store"
)

// glossColors is the authored nga-logat color table, shared by every
// reading session.
var glossColors = reader.SymbolColors()

// ReaderController hosts lesson reading sessions. Every request installs
// the user's latest settings snapshot before operating, so toggling a
// display mode between requests clears that mode's reveal history.
type ReaderController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Loader   lesson.Loader
	Sessions *session.Registry
}

func NewReaderController(db *gorm.DB, cfg *config.Config, loader lesson.Loader, reg *session.Registry) *ReaderController {
	return &ReaderController{DB: db, Cfg: cfg, Loader: loader, Sessions: reg}
}

// Start godoc
// @Summary Open a lesson for reading
// @Tags reader
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /lessons/{id}/read [post]
func (rc *ReaderController) Start(c *fiber.Ctx) error {
	userID := currentUserID(c)
	lessonID := c.Params("id")

	doc, err := rc.Loader.Load(lessonID)
	if err != nil {
		return lessonError(c, err)
	}
	cfg, err := store.NewSettingsStore(rc.DB, userID).Get()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load settings",
		})
	}

	detail := &session.DetailRecorder{}
	ctrl := reader.NewController(doc, cfg, detail)
	s := rc.Sessions.AddReader(userID, lessonID, ctrl, detail)

	var state fiber.Map
	s.Do(func(ct *reader.Controller) {
		state = readerState(ct)
	})
	return c.JSON(fiber.Map{
		"sessionId": s.ID,
		"lessonId":  lessonID,
		"state":     state,
	})
}

func (rc *ReaderController) session(c *fiber.Ctx) (*session.ReaderSession, error) {
	id, err := uuid.Parse(c.Params("sessionId"))
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session id",
		})
	}
	s, ok := rc.Sessions.Reader(id, currentUserID(c))
	if !ok {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found",
		})
	}
	return s, nil
}

// readerState renders the whole document under the current reveal state.
// Tooltip widths are a client concern, so no measurer is supplied here.
func readerState(ct *reader.Controller) fiber.Map {
	doc := ct.Lesson()
	cfg := ct.Settings()

	paragraphs := make([]fiber.Map, 0, len(doc.TextData))
	for pi, para := range doc.TextData {
		words := make([]fiber.Map, 0, len(para))
		for wi, w := range para {
			addr := lesson.Address{Paragraph: pi, Word: wi}
			words = append(words, fiber.Map{
				"paragraph": pi,
				"word":      wi,
				"view":      reader.Render(w, ct.Visibility(addr), cfg.UseNgaLogatColorCoding, glossColors, nil),
			})
		}
		paragraphs = append(paragraphs, fiber.Map{
			"dimmed": ct.ParagraphDimmed(pi),
			"words":  words,
		})
	}

	return fiber.Map{
		"lessonId":       doc.ID,
		"settings":       cfg,
		"focusParagraph": ct.FocusParagraph(),
		"paragraphs":     paragraphs,
	}
}

// State godoc
// @Summary Current reading session state
// @Tags reader
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /read/{sessionId} [get]
func (rc *ReaderController) State(c *fiber.Ctx) error {
	return rc.apply(c, nil)
}

// ClickWord toggles the word's reveal flags under the active modes.
func (rc *ReaderController) ClickWord(c *fiber.Ctx) error {
	var req wordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	return rc.apply(c, func(ct *reader.Controller) {
		ct.Click(req.address())
	})
}

// DoubleClickWord opens the I'rab detail for the addressed word. The
// detail payload rides back in the response.
func (rc *ReaderController) DoubleClickWord(c *fiber.Ctx) error {
	s, errResp := rc.session(c)
	if s == nil {
		return errResp
	}
	var req wordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	cfg, err := store.NewSettingsStore(rc.DB, currentUserID(c)).Get()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load settings",
		})
	}
	var (
		detail    engine.Detail
		hasDetail bool
		state     fiber.Map
	)
	s.Do(func(ct *reader.Controller) {
		ct.ApplySettings(cfg)
		ct.DoubleClick(req.address())
		detail, hasDetail = s.Detail.Take()
		state = readerState(ct)
	})
	resp := fiber.Map{"state": state}
	if hasDetail {
		resp["detail"] = detail
	}
	return c.JSON(resp)
}

// SwitchLesson swaps the open document, dropping all reveal history.
func (rc *ReaderController) SwitchLesson(c *fiber.Ctx) error {
	s, errResp := rc.session(c)
	if s == nil {
		return errResp
	}
	var req struct {
		LessonID string `json:"lessonId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	doc, err := rc.Loader.Load(req.LessonID)
	if err != nil {
		return lessonError(c, err)
	}
	var state fiber.Map
	s.Do(func(ct *reader.Controller) {
		ct.SetLesson(doc)
		s.LessonID = req.LessonID
		state = readerState(ct)
	})
	return c.JSON(fiber.Map{"state": state})
}

// Close drops the session from the registry. Reading keeps no score, so
// no confirmation is needed.
func (rc *ReaderController) Close(c *fiber.Ctx) error {
	s, errResp := rc.session(c)
	if s == nil {
		return errResp
	}
	rc.Sessions.RemoveReader(s.ID)
	return c.JSON(fiber.Map{"closed": true})
}

// apply refreshes the settings snapshot, runs the transition and returns
// the resulting state.
func (rc *ReaderController) apply(c *fiber.Ctx, fn func(*reader.Controller)) error {
	s, errResp := rc.session(c)
	if s == nil {
		return errResp
	}
	cfg, err := store.NewSettingsStore(rc.DB, currentUserID(c)).Get()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load settings",
		})
	}
	var state fiber.Map
	s.Do(func(ct *reader.Controller) {
		ct.ApplySettings(cfg)
		if fn != nil {
			fn(ct)
		}
		state = readerState(ct)
	})
	return c.JSON(fiber.Map{"state": state})
}
