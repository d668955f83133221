package controllers

import (
	"errors"

	"gorm.io/gorm"

	"github.com/gofiber/fiber/v2"

	"sorogan/config"
	"sorogan/lesson"
	"sorogan/store"
)

// currentUserID reads the user id placed in locals by the auth middleware.
func currentUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}

// lessonError maps the loader sentinels onto HTTP statuses.
func lessonError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, lesson.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Lesson not found",
		})
	case errors.Is(err, lesson.ErrInvalidFormat):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":   "Invalid lesson format",
			"message": err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load lesson",
		})
	}
}

// LessonsController serves the merged lesson catalog: Studio-authored
// documents shadow the embedded content pack by id.
type LessonsController struct {
	DB   *gorm.DB
	Cfg  *config.Config
	Seed *lesson.IndexLoader
}

func NewLessonsController(db *gorm.DB, cfg *config.Config, seed *lesson.IndexLoader) *LessonsController {
	return &LessonsController{DB: db, Cfg: cfg, Seed: seed}
}

// Loader returns the combined loader used by the reading, drill and quiz
// surfaces.
func (lc *LessonsController) Loader() lesson.Loader {
	return lesson.FallbackLoader{store.NewLessonStore(lc.DB), lc.Seed}
}

// GetLessons godoc
// @Summary List lessons
// @Description Master index with per-user completion flags
// @Tags lessons
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /lessons [get]
func (lc *LessonsController) GetLessons(c *fiber.Ctx) error {
	userID := currentUserID(c)

	authored, err := store.NewLessonStore(lc.DB).Index()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	entries := lc.Seed.Index()
	seen := make(map[string]bool, len(entries))
	for i, e := range entries {
		seen[e.ID] = true
		for _, a := range authored {
			if a.ID == e.ID {
				entries[i] = a
			}
		}
	}
	for _, a := range authored {
		if !seen[a.ID] {
			entries = append(entries, a)
		}
	}

	completed, err := store.NewProgressStore(lc.DB, userID).Completed()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}
	done := make(map[string]bool, len(completed))
	for _, id := range completed {
		done[id] = true
	}

	type entryView struct {
		ID          string `json:"id"`
		Title       string `json:"title"`
		TitleArabic string `json:"titleArabic"`
		Level       string `json:"level"`
		Completed   bool   `json:"completed"`
	}
	out := make([]entryView, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryView{
			ID:          e.ID,
			Title:       e.Title,
			TitleArabic: e.TitleArabic,
			Level:       e.Level,
			Completed:   done[e.ID],
		})
	}

	return c.JSON(fiber.Map{"lessons": out})
}

// GetLesson godoc
// @Summary Fetch one lesson document
// @Tags lessons
// @Produce json
// @Success 200 {object} lesson.Lesson
// @Failure 404 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /lessons/{id} [get]
func (lc *LessonsController) GetLesson(c *fiber.Ctx) error {
	doc, err := lc.Loader().Load(c.Params("id"))
	if err != nil {
		return lessonError(c, err)
	}
	return c.JSON(doc)
}
