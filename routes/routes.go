package routes

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gofiber/fiber/v2"

	"sorogan/config"
	"sorogan/controllers"
	"sorogan/lesson"
	"sorogan/middleware"
	"sorogan/session"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, logger *zap.Logger) error {
	seed, err := lesson.SeedLoader()
	if err != nil {
		return err
	}
	sessions := session.NewRegistry()

	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	adminMiddleware := middleware.AdminMiddleware(db, cfg)

	// Lesson routes
	lessonsController := controllers.NewLessonsController(db, cfg, seed)
	app.Get("/api/lessons", authMiddleware, lessonsController.GetLessons)
	app.Get("/api/lessons/:id", authMiddleware, lessonsController.GetLesson)

	// Settings routes
	settingsController := controllers.NewSettingsController(db, cfg)
	app.Get("/api/settings", authMiddleware, settingsController.GetSettings)
	app.Patch("/api/settings", authMiddleware, settingsController.UpdateSettings)
	app.Post("/api/settings/reset", authMiddleware, settingsController.ResetSettings)
	app.Post("/api/settings/toggle/:mode", authMiddleware, settingsController.ToggleMode)
	app.Post("/api/settings/tutorial-seen", authMiddleware, settingsController.MarkTutorialSeen)

	// Progress routes
	progressController := controllers.NewProgressController(db, cfg)
	app.Get("/api/progress", authMiddleware, progressController.GetProgress)
	app.Post("/api/progress/:lessonId/toggle", authMiddleware, progressController.ToggleLesson)
	app.Post("/api/progress/reset", authMiddleware, progressController.ResetProgress)

	loader := lessonsController.Loader()

	// Reading routes
	readerController := controllers.NewReaderController(db, cfg, loader, sessions)
	app.Post("/api/lessons/:id/read", authMiddleware, readerController.Start)
	readGroup := app.Group("/api/read/:sessionId", authMiddleware)
	readGroup.Get("/", readerController.State)
	readGroup.Post("/click-word", readerController.ClickWord)
	readGroup.Post("/double-click-word", readerController.DoubleClickWord)
	readGroup.Post("/switch-lesson", readerController.SwitchLesson)
	readGroup.Post("/close", readerController.Close)

	// Drill routes
	drillController := controllers.NewDrillController(db, cfg, loader, sessions, logger)
	app.Post("/api/lessons/:id/drill", authMiddleware, drillController.Start)
	drillGroup := app.Group("/api/drill/:sessionId", authMiddleware)
	drillGroup.Get("/", drillController.State)
	drillGroup.Post("/click-word", drillController.ClickWord)
	drillGroup.Post("/double-click-word", drillController.DoubleClickWord)
	drillGroup.Post("/select-option", drillController.SelectOption)
	drillGroup.Post("/layout", drillController.Layout)
	drillGroup.Post("/review", drillController.Review)
	drillGroup.Post("/back-to-summary", drillController.BackToSummary)
	drillGroup.Post("/restart", drillController.Restart)
	drillGroup.Post("/exit", drillController.RequestExit)
	drillGroup.Post("/exit/cancel", drillController.CancelExit)
	drillGroup.Post("/exit/confirm", drillController.ConfirmExit)

	// Quiz routes
	quizController := controllers.NewQuizController(db, cfg, loader, sessions, logger)
	app.Post("/api/lessons/:id/quiz", authMiddleware, quizController.Start)
	quizGroup := app.Group("/api/quiz/:sessionId", authMiddleware)
	quizGroup.Get("/", quizController.State)
	quizGroup.Post("/answer", quizController.Answer)
	quizGroup.Post("/review", quizController.Review)
	quizGroup.Post("/review/next", quizController.ReviewNext)
	quizGroup.Post("/review/prev", quizController.ReviewPrev)
	quizGroup.Post("/back-to-summary", quizController.BackToSummary)
	quizGroup.Post("/restart", quizController.Restart)
	quizGroup.Post("/exit", quizController.RequestExit)
	quizGroup.Post("/exit/cancel", quizController.CancelExit)
	quizGroup.Post("/exit/confirm", quizController.ConfirmExit)

	// Studio routes (admin)
	studioController := controllers.NewStudioController(db, cfg)
	studio := app.Group("/api/studio/lessons", adminMiddleware)
	studio.Get("/", studioController.ListLessons)
	studio.Post("/", studioController.CreateLesson)
	studio.Put("/:id", studioController.UpdateLesson)
	studio.Delete("/:id", studioController.DeleteLesson)
	studio.Get("/:id/export", studioController.ExportLesson)

	return nil
}
