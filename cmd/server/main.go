package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"

	"github.com/KOD666/study-group-plus/internal/cache"
	"github.com/KOD666/study-group-plus/internal/handlers"
	"github.com/KOD666/study-group-plus/internal/middleware"
	"github.com/KOD666/study-group-plus/internal/repository"
	"github.com/KOD666/study-group-plus/internal/service"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	app := fiber.New(fiber.Config{
		AppName: "StudyGroup+ Backend",
	})

	// Middleware
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(middleware.OriginAllowed())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     os.Getenv("ALLOWED_ORIGINS"),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// Initialize database connection
	db, err := repository.InitDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize Redis cache (best-effort; the app runs without it)
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisDB := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if parsedDB, err := strconv.Atoi(dbStr); err == nil {
			redisDB = parsedDB
		}
	}
	redisCache := cache.NewRedisCache(redisAddr, os.Getenv("REDIS_PASSWORD"), redisDB)
	if err := redisCache.Ping(); err != nil {
		log.Printf("WARNING: Redis connection failed: %v. Running without cache.", err)
		redisCache = nil
	} else {
		log.Println("Redis cache connected successfully")
	}

	messageCache := cache.NewMessageCache(redisCache)
	userCache := cache.NewUserCache(redisCache)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	noteRepo := repository.NewNoteRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo)
	groupService := service.NewGroupService(groupRepo, userRepo, messageRepo, noteRepo)
	messageService := service.NewMessageService(messageRepo, groupRepo, userRepo, messageCache, userCache)
	noteService := service.NewNoteService(noteRepo, groupRepo, userRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	groupHandler := handlers.NewGroupHandler(groupService)
	messageHandler := handlers.NewMessageHandler(messageService)
	noteHandler := handlers.NewNoteHandler(noteService)

	// Auth routes
	auth := app.Group("/auth", limiter.New(limiter.Config{
		Max:        20,
		Expiration: time.Minute,
	}))
	auth.Post("/signup", authHandler.Signup)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(), authHandler.Me)

	// Group routes. Static paths registered before the :id wildcard.
	groups := app.Group("/groups")
	groups.Post("/create", groupHandler.CreateGroup)
	groups.Get("/discover", groupHandler.Discover)
	groups.Post("/join", groupHandler.JoinGroup)
	groups.Get("/:id", groupHandler.GetGroup)
	groups.Put("/:id", groupHandler.UpdateGroup)
	groups.Delete("/:id", groupHandler.DeleteGroup)
	groups.Get("/:id/messages", messageHandler.GetMessages)
	groups.Post("/:id/messages", messageHandler.SendMessage)
	groups.Delete("/:id/messages", messageHandler.DeleteMessage)
	groups.Get("/:id/notes", noteHandler.GetNotes)
	groups.Post("/:id/notes", noteHandler.CreateNote)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "StudyGroup+ is running",
		})
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s...", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
