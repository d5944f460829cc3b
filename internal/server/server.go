package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/crewdesk/crewdesk/internal/config"
	"github.com/crewdesk/crewdesk/internal/domain"
	"github.com/crewdesk/crewdesk/internal/handler"
	"github.com/crewdesk/crewdesk/internal/middleware"
	"github.com/crewdesk/crewdesk/internal/realtime"
	"github.com/crewdesk/crewdesk/internal/repository"
	"github.com/crewdesk/crewdesk/internal/service"
	"github.com/crewdesk/crewdesk/internal/telemetry"
)

// AppDependencies holds the dependencies required to start the application
type AppDependencies struct {
	Config      *config.Config
	MongoDB     *mongo.Database
	RedisClient *redis.Client
	BlobStore   domain.BlobStore
}

// NewApp creates and configures the Fiber application with the given dependencies
func NewApp(deps AppDependencies) *fiber.App {
	// Initialize repositories
	userRepo := repository.NewMongoUserRepository(deps.MongoDB)
	attendanceRepo := repository.NewMongoAttendanceRepository(deps.MongoDB)
	payrollRepo := repository.NewMongoPayrollRepository(deps.MongoDB)
	ticketRepo := repository.NewMongoTicketRepository(deps.MongoDB)
	documentRepo := repository.NewMongoDocumentRepository(deps.MongoDB)
	meetingRepo := repository.NewMongoMeetingRepository(deps.MongoDB)
	reviewRepo := repository.NewMongoReviewRepository(deps.MongoDB)
	cacheRepo := repository.NewRedisCacheRepository(deps.RedisClient)

	// Realtime hub doubles as the notifier for domain services
	hub := realtime.NewHub()

	// Initialize services
	tokenService := service.NewTokenService(deps.Config.JWT)
	authService := service.NewAuthService(userRepo, tokenService)
	attendanceService := service.NewAttendanceService(attendanceRepo, cacheRepo)
	payrollService := service.NewPayrollService(payrollRepo, userRepo, cacheRepo, hub)
	ticketService := service.NewTicketService(ticketRepo, cacheRepo, hub)
	documentService := service.NewDocumentService(documentRepo, deps.BlobStore)
	meetingService := service.NewMeetingService(meetingRepo, hub, deps.Config.Meeting.BaseURL)
	reviewService := service.NewReviewService(reviewRepo, userRepo, hub)
	dashboardService := service.NewDashboardService(userRepo, attendanceRepo, ticketRepo, payrollRepo, meetingRepo, cacheRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	employeeHandler := handler.NewEmployeeHandler(userRepo)
	attendanceHandler := handler.NewAttendanceHandler(attendanceService)
	payrollHandler := handler.NewPayrollHandler(payrollService)
	ticketHandler := handler.NewTicketHandler(ticketService)
	documentHandler := handler.NewDocumentHandler(documentService, deps.Config.Server.MaxUploadSizeMB, deps.Config.Server.AllowedUploadTypes)
	meetingHandler := handler.NewMeetingHandler(meetingService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "CrewDesk API",
		BodyLimit:    int(deps.Config.Server.MaxUploadSizeMB * 1024 * 1024),
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))
	if deps.Config.OTEL.Enabled {
		app.Use(telemetry.FiberMiddleware())
	}

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "crewdesk",
		})
	})

	// Realtime channel: token is verified in the handshake frame, not here
	app.Use("/ws", realtime.Upgrade())
	app.Get("/ws", realtime.Handler(hub, tokenService))

	// API v1 routes
	v1 := app.Group("/v1")

	// Auth endpoints (public)
	auth := v1.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// ===========================================
	// AUTHENTICATED API (any role)
	// ===========================================
	authed := v1.Group("", middleware.RequireAuth(tokenService))

	authed.Get("/me", authHandler.Me)
	authed.Put("/me", authHandler.UpdateMe)

	attendance := authed.Group("/attendance")
	attendance.Post("/checkin", attendanceHandler.CheckIn)
	attendance.Post("/checkout", attendanceHandler.CheckOut)
	attendance.Get("/", attendanceHandler.History)

	authed.Get("/payroll", payrollHandler.ListMine)

	tickets := authed.Group("/tickets")
	tickets.Post("/", ticketHandler.Create)
	tickets.Get("/", ticketHandler.List)
	tickets.Get("/:id", ticketHandler.Get)
	tickets.Post("/:id/messages", ticketHandler.AddMessage)

	files := authed.Group("/files")
	files.Post("/", documentHandler.Upload)
	files.Get("/", documentHandler.List)
	files.Get("/:id", documentHandler.Get)
	files.Post("/:id/share", documentHandler.Share)
	files.Delete("/:id", documentHandler.Delete)

	meetings := authed.Group("/meetings")
	meetings.Post("/", meetingHandler.Create)
	meetings.Get("/", meetingHandler.List)
	meetings.Get("/:id", meetingHandler.Get)
	meetings.Put("/:id", meetingHandler.Update)
	meetings.Delete("/:id", meetingHandler.Delete)

	authed.Get("/reviews", reviewHandler.ListMine)
	authed.Post("/reviews/:id/ack", reviewHandler.Acknowledge)

	// ===========================================
	// ADMIN API - /v1/admin/* (requires 'admin' role)
	// ===========================================
	// The role gate is a prefix-matched Use, so nothing that managers may
	// reach can live under /v1/admin.
	admin := v1.Group("/admin")
	admin.Use(middleware.RequireAuth(tokenService))
	admin.Use(middleware.RequireRole(domain.RoleAdmin))

	adminEmployees := admin.Group("/employees")
	adminEmployees.Get("/", employeeHandler.List)
	adminEmployees.Post("/", employeeHandler.Create)
	adminEmployees.Get("/:id", employeeHandler.Get)
	adminEmployees.Put("/:id", employeeHandler.Update)
	adminEmployees.Delete("/:id", employeeHandler.Delete)

	admin.Get("/attendance", attendanceHandler.ListByDate)
	admin.Get("/attendance/export", attendanceHandler.ExportCSV)

	adminPayroll := admin.Group("/payroll")
	adminPayroll.Post("/", payrollHandler.Create)
	adminPayroll.Get("/", payrollHandler.ListAll)
	adminPayroll.Post("/:id/release", payrollHandler.Release)

	admin.Patch("/tickets/:id/status", ticketHandler.UpdateStatus)

	admin.Get("/dashboard", dashboardHandler.Summary)

	// ===========================================
	// MANAGER API - /v1/manager/* (manager or admin)
	// ===========================================
	manager := v1.Group("/manager")
	manager.Use(middleware.RequireAuth(tokenService))
	manager.Use(middleware.RequireRole(domain.RoleManager))

	manager.Post("/reviews", reviewHandler.Create)
	manager.Get("/reviews", reviewHandler.ListAll)

	return app
}

// customErrorHandler renders uncaught errors as the standard JSON envelope
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}
