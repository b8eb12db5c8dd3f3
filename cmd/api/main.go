package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"leadhub/internal/config"
	"leadhub/internal/handler"
	"leadhub/internal/middleware"
	"leadhub/internal/repository"
	"leadhub/internal/service/auth"
	"leadhub/internal/service/comment"
	"leadhub/internal/service/dashboard"
	"leadhub/internal/service/email"
	"leadhub/internal/service/export"
	"leadhub/internal/service/lead"
	"leadhub/internal/service/livesync"
	"leadhub/internal/service/media"
	"leadhub/internal/service/notification"
	"leadhub/internal/service/user"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redisClient, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to MinIO: %v (avatar upload will not work)", err)
	}

	repos := repository.NewRepositories(db)

	broker := livesync.NewRedisBroker(redisClient)
	hub := livesync.NewHub(broker)

	authSvc := auth.NewService(repos.User, repos.Session, cfg)
	notifSvc := notification.NewService(repos.Notification, repos.User, repos.Lead, broker)
	commentSvc := comment.NewService(repos.Comment, repos.Lead, notifSvc, broker)
	leadSvc := lead.NewService(repos.Lead, repos.StatusHistory, repos.User, commentSvc, notifSvc, broker)
	userSvc := user.NewService(repos.User, repos.Session, broker)
	dashboardSvc := dashboard.NewService(repos.Lead, repos.User, repos.Comment, repos.StatusHistory, redisClient)
	emailSvc := email.NewService(repos.Settings, cfg)
	exportSvc := export.NewService(repos.Lead, repos.User, leadSvc)
	mediaSvc := media.NewService(repos.User, minioClient, cfg, broker)

	handlers := handler.NewHandlers(&handler.Services{
		Auth:         authSvc,
		User:         userSvc,
		Lead:         leadSvc,
		Comment:      commentSvc,
		Notification: notifSvc,
		Dashboard:    dashboardSvc,
		Email:        emailSvc,
		Export:       exportSvc,
		Media:        mediaSvc,
		Hub:          hub,
	})

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, authSvc)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService auth.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	v1.Get("/vocabulary", h.Vocab.Get)

	authGroup := v1.Group("/auth")
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.RefreshToken)

	protected := v1.Group("", middleware.AuthRequired(authService))

	protected.Post("/auth/logout", h.Auth.Logout)
	protected.Get("/auth/me", h.Auth.Me)

	users := protected.Group("/users")
	users.Get("/", middleware.RequireRole("admin"), h.User.List)
	users.Get("/directory", h.User.Directory)
	users.Put("/me", h.User.UpdateProfile)
	users.Post("/me/avatar", h.Media.UploadAvatar)
	users.Post("/assign-role", middleware.RequireRole("admin"), h.User.AssignRole)
	users.Post("/set-active", middleware.RequireRole("admin"), h.User.SetActive)
	users.Get("/:userId", h.User.Get)

	leads := protected.Group("/leads")
	leads.Post("/", h.Lead.Create)
	leads.Get("/", h.Lead.List)
	leads.Get("/:leadId", h.Lead.Get)
	leads.Get("/:leadId/edit", middleware.RequireRole("admin"), h.Lead.BeginEdit)
	leads.Put("/:leadId", middleware.RequireRole("admin"), h.Lead.Save)
	leads.Post("/:leadId/status", middleware.RequireRole("admin"), h.Lead.TransitionStatus)
	leads.Post("/:leadId/assign", middleware.RequireRole("admin"), h.Lead.Reassign)
	leads.Post("/:leadId/creator", middleware.RequireRole("admin"), h.Lead.SetCreatedBy)
	leads.Delete("/:leadId", middleware.RequireRole("admin"), h.Lead.Delete)
	leads.Get("/:leadId/history", h.Lead.StatusHistory)

	comments := protected.Group("/leads/:leadId/comments")
	comments.Post("/", h.Comment.Create)
	comments.Get("/", h.Comment.List)
	protected.Patch("/comments/:commentId/pin", middleware.RequireRole("admin"), h.Comment.SetPinned)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.UnreadCount)
	notifications.Patch("/:notificationId/read", h.Notification.MarkRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllRead)

	dashboardGroup := protected.Group("/dashboard")
	dashboardGroup.Get("/stats", h.Dashboard.Stats)
	dashboardGroup.Get("/activity", h.Dashboard.RecentActivity)

	emailGroup := protected.Group("/email", middleware.RequireRole("admin"))
	emailGroup.Get("/template", h.Email.GetTemplate)
	emailGroup.Put("/template", h.Email.SaveTemplate)
	emailGroup.Get("/preview/:leadId", h.Email.Preview)
	emailGroup.Post("/send/:leadId", h.Email.SendOutreach)

	exportGroup := protected.Group("/export")
	exportGroup.Get("/leads.csv", h.Export.ExportCSV)
	exportGroup.Get("/import-template.csv", h.Export.ImportTemplate)
	exportGroup.Post("/import", middleware.RequireRole("admin"), h.Export.ImportCSV)

	protected.Get("/stream", h.Stream.Stream)
}
