package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"project/backend/config"
	"project/backend/controllers"
	"project/backend/middleware"
	"project/backend/services"
	"project/backend/store"
)

func SetupRoutes(app *fiber.App, st store.Store, cfg *config.Config, logger *log.Logger) {
	searchService := services.NewSearchService(st, st, st, logger)
	recService := services.NewRecommendationService(st, st, st, logger)
	quizService := services.NewQuizService(st, logger)
	eventService := services.NewEventService(st)
	notificationService := services.NewNotificationService(st)

	authMiddleware := middleware.AuthMiddleware(cfg)
	optionalAuth := middleware.OptionalAuthMiddleware(cfg)
	adminMiddleware := middleware.AdminMiddleware(cfg, st)

	// Auth routes
	authController := controllers.NewAuthController(st, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Search routes
	searchController := controllers.NewSearchController(searchService)
	search := app.Group("/api/search", optionalAuth)
	search.Get("/courses", searchController.SearchCourses)
	search.Get("/suggestions", searchController.GetSuggestions)
	search.Get("/popular", searchController.GetPopularSearches)

	// Category routes
	app.Get("/api/categories", searchController.GetCategories)
	app.Get("/api/categories/tree", searchController.GetCategoryTree)
	app.Post("/api/categories", adminMiddleware, searchController.UpsertCategory)
	app.Delete("/api/categories/:id", adminMiddleware, searchController.DeleteCategory)

	// Catalog routes
	catalogController := controllers.NewCatalogController(st)
	app.Get("/api/courses", catalogController.ListCourses)
	app.Get("/api/courses/:id", catalogController.GetCourse)
	adminCourses := app.Group("/api/admin/courses", authMiddleware, adminMiddleware)
	adminCourses.Post("/", catalogController.CreateCourse)
	adminCourses.Put("/:id", catalogController.UpdateCourse)
	adminCourses.Delete("/:id", catalogController.DeleteCourse)

	// Recommendation routes
	recController := controllers.NewRecommendationController(recService)
	app.Post("/api/recommendations", optionalAuth, recController.GetRecommendations)
	app.Get("/api/recommendations/trending", recController.GetTrendingCourses)
	app.Get("/api/courses/:id/similar", recController.GetSimilarCourses)
	app.Post("/api/activity", optionalAuth, recController.RecordActivity)

	// Quiz routes
	quizController := controllers.NewQuizController(quizService)
	quizzes := app.Group("/api/quizzes")
	quizzes.Get("/:id", authMiddleware, quizController.GetQuiz)
	quizzes.Post("/:id/submissions", authMiddleware, quizController.SubmitQuiz)
	app.Get("/api/submissions/:id/result", authMiddleware, quizController.GetResult)
	adminQuizzes := app.Group("/api/admin/quizzes", authMiddleware, adminMiddleware)
	adminQuizzes.Post("/", quizController.CreateQuiz)
	adminQuizzes.Put("/:id", quizController.UpdateQuiz)
	adminQuizzes.Delete("/:id", quizController.DeleteQuiz)

	// Event log routes
	eventController := controllers.NewEventController(eventService)
	events := app.Group("/api/events", authMiddleware)
	events.Post("/", eventController.LogEvent)
	events.Get("/user/:id", eventController.ListUserEvents)
	events.Get("/type/:type", eventController.ListEventsByType)

	// Notification preference routes
	notificationController := controllers.NewNotificationController(notificationService)
	notifications := app.Group("/api/notifications", authMiddleware)
	notifications.Get("/preferences", notificationController.GetPreferences)
	notifications.Put("/preferences", notificationController.UpdatePreferences)
}
