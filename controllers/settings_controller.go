package controllers

import (
	"gorm.io/gorm"

	"github.com/gofiber/fiber/v2"

	"sorogan/config"
	"sorogan/settings"
	"sorogan/store"
)

type SettingsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewSettingsController(db *gorm.DB, cfg *config.Config) *SettingsController {
	return &SettingsController{DB: db, Cfg: cfg}
}

func (sc *SettingsController) store(c *fiber.Ctx) *store.SettingsStore {
	return store.NewSettingsStore(sc.DB, currentUserID(c))
}

// GetSettings godoc
// @Summary Current display settings
// @Tags settings
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /settings [get]
func (sc *SettingsController) GetSettings(c *fiber.Ctx) error {
	st := sc.store(c)
	cfg, err := st.Get()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load settings",
		})
	}
	seen, err := st.TutorialSeen()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load settings",
		})
	}
	return c.JSON(fiber.Map{
		"settings":        cfg,
		"hasSeenTutorial": seen,
	})
}

// UpdateSettings godoc
// @Summary Patch display settings
// @Description Applies only the fields present in the request body
// @Tags settings
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /settings [patch]
func (sc *SettingsController) UpdateSettings(c *fiber.Ctx) error {
	var patch settings.Partial
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	st := sc.store(c)
	if err := st.Update(patch); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save settings",
		})
	}
	cfg, err := st.Get()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load settings",
		})
	}
	return c.JSON(fiber.Map{"settings": cfg})
}

// ToggleMode godoc
// @Summary Toggle a display mode
// @Description Flips harakat, translation or nga-logat mode with the
// toolbar's show-all coupling
// @Tags settings
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /settings/toggle/{mode} [post]
func (sc *SettingsController) ToggleMode(c *fiber.Ctx) error {
	st := sc.store(c)
	cfg, err := st.Get()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load settings",
		})
	}

	var patch settings.Partial
	switch c.Params("mode") {
	case "harakat":
		patch = settings.ToggleHarakatMode(cfg)
	case "translation":
		patch = settings.ToggleTranslationMode(cfg)
	case "nga-logat":
		patch = settings.ToggleNgaLogatMode(cfg)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown mode",
		})
	}

	if err := st.Update(patch); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save settings",
		})
	}
	cfg, err = st.Get()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load settings",
		})
	}
	return c.JSON(fiber.Map{"settings": cfg})
}

// ResetSettings godoc
// @Summary Reset settings to defaults
// @Tags settings
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /settings/reset [post]
func (sc *SettingsController) ResetSettings(c *fiber.Ctx) error {
	st := sc.store(c)
	if err := st.ResetToDefaults(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save settings",
		})
	}
	return c.JSON(fiber.Map{"settings": settings.Defaults()})
}

// MarkTutorialSeen godoc
// @Summary Record that the onboarding tips were shown
// @Tags settings
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /settings/tutorial-seen [post]
func (sc *SettingsController) MarkTutorialSeen(c *fiber.Ctx) error {
	if err := sc.store(c).MarkTutorialSeen(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save settings",
		})
	}
	return c.JSON(fiber.Map{"hasSeenTutorial": true})
}
