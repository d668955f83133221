package controllers

import (
	"errors"

	"gorm.io/gorm"

	"github.com/gofiber/fiber/v2"

	"sorogan/config"
	"sorogan/lesson"
	"sorogan/store"
)

// StudioController is the admin-only authoring surface. Documents are
// edited by whole-document replacement and validated on every save.
type StudioController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewStudioController(db *gorm.DB, cfg *config.Config) *StudioController {
	return &StudioController{DB: db, Cfg: cfg}
}

func (sc *StudioController) store() *store.LessonStore {
	return store.NewLessonStore(sc.DB)
}

// ListLessons godoc
// @Summary List authored lesson documents
// @Tags studio
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /studio/lessons [get]
func (sc *StudioController) ListLessons(c *fiber.Ctx) error {
	entries, err := sc.store().Index()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}
	return c.JSON(fiber.Map{"lessons": entries})
}

// CreateLesson godoc
// @Summary Create an authored lesson document
// @Tags studio
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /studio/lessons [post]
func (sc *StudioController) CreateLesson(c *fiber.Ctx) error {
	var doc lesson.Lesson
	if err := c.BodyParser(&doc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if doc.ID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Lesson id is required",
		})
	}
	if err := sc.store().Save(&doc); err != nil {
		return lessonError(c, err)
	}
	return c.JSON(fiber.Map{"id": doc.ID})
}

// UpdateLesson godoc
// @Summary Replace an authored lesson document
// @Tags studio
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /studio/lessons/{id} [put]
func (sc *StudioController) UpdateLesson(c *fiber.Ctx) error {
	var doc lesson.Lesson
	if err := c.BodyParser(&doc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	doc.ID = c.Params("id")
	if err := sc.store().Save(&doc); err != nil {
		return lessonError(c, err)
	}
	return c.JSON(fiber.Map{"id": doc.ID})
}

// DeleteLesson godoc
// @Summary Delete an authored lesson document
// @Tags studio
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /studio/lessons/{id} [delete]
func (sc *StudioController) DeleteLesson(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := sc.store().Delete(id); err != nil {
		if errors.Is(err, lesson.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Lesson not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete lesson",
		})
	}
	return c.JSON(fiber.Map{"deleted": id})
}

// ExportLesson godoc
// @Summary Export an authored document in the content-pack format
// @Tags studio
// @Produce json
// @Success 200 {object} lesson.Lesson
// @Failure 404 {object} map[string]interface{}
// @Router /studio/lessons/{id}/export [get]
func (sc *StudioController) ExportLesson(c *fiber.Ctx) error {
	doc, err := sc.store().Load(c.Params("id"))
	if err != nil {
		return lessonError(c, err)
	}
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+doc.ID+`.json"`)
	return c.JSON(doc)
}
