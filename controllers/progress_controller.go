package controllers

import (
	"gorm.io/gorm"

	"github.com/gofiber/fiber/v2"

	"sorogan/config"
	"sorogan/store"
)

type ProgressController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewProgressController(db *gorm.DB, cfg *config.Config) *ProgressController {
	return &ProgressController{DB: db, Cfg: cfg}
}

// GetProgress godoc
// @Summary Completed lesson ids
// @Tags progress
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /progress [get]
func (pc *ProgressController) GetProgress(c *fiber.Ctx) error {
	completed, err := store.NewProgressStore(pc.DB, currentUserID(c)).Completed()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}
	return c.JSON(fiber.Map{"completed": completed})
}

// ToggleLesson godoc
// @Summary Toggle a lesson's completed flag
// @Tags progress
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /progress/{lessonId}/toggle [post]
func (pc *ProgressController) ToggleLesson(c *fiber.Ctx) error {
	st := store.NewProgressStore(pc.DB, currentUserID(c))
	lessonID := c.Params("lessonId")
	if err := st.ToggleComplete(lessonID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update progress",
		})
	}
	complete, err := st.IsComplete(lessonID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}
	return c.JSON(fiber.Map{
		"lessonId":  lessonID,
		"completed": complete,
	})
}

// ResetProgress godoc
// @Summary Wipe progress, settings and the tutorial flag
// @Description Destructive; the request body must carry confirm=true
// @Tags progress
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /progress/reset [post]
func (pc *ProgressController) ResetProgress(c *fiber.Ctx) error {
	var input struct {
		Confirm bool `json:"confirm"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if !input.Confirm {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Reset requires confirmation",
		})
	}
	if err := store.ResetAll(pc.DB, currentUserID(c)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not reset progress",
		})
	}
	return c.JSON(fiber.Map{"reset": true})
}
