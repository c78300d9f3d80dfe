package main

import (
	"context"
	"log"
	"time"

	config "github.com/bilal-attab/tuition_manager/configs"
	"github.com/bilal-attab/tuition_manager/handlers"
	"github.com/bilal-attab/tuition_manager/ledger"
	"github.com/bilal-attab/tuition_manager/repository"
	"github.com/bilal-attab/tuition_manager/routes"
	"github.com/bilal-attab/tuition_manager/services"
	"github.com/bilal-attab/tuition_manager/store"
	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func newStore() store.KV {
	switch config.ConfigOr("STORE_BACKEND", "file") {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr: config.ConfigOr("REDIS_ADDR", "localhost:6379"),
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("🔥 Failed to connect to Redis: %v", err)
		}
		log.Println("✅ Redis store connected successfully")
		return store.NewRedisKV(client)
	default:
		kv, err := store.NewFileKV(config.ConfigOr("DATA_DIR", "./data"))
		if err != nil {
			log.Fatalf("🔥 Failed to open data directory: %v", err)
		}
		return kv
	}
}

func main() {
	kv := newStore()
	repo := repository.New(kv)
	repo.Load(context.Background())

	locale := config.ConfigOr("REPORT_LOCALE", "ar")
	report := services.NewReportService(repo, locale)
	h := handlers.NewAPIHandler(repo, report, ledger.NewCollator(locale))

	app := fiber.New(fiber.Config{
		AppName:       "Tuition Manager",
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, PATCH, DELETE, OPTIONS",
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	routes.GroupRoutes(app, h)
	routes.StudentRoutes(app, h)
	routes.ReportRoutes(app, h)
	routes.TransferRoutes(app, h)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	port := config.ConfigOr("PORT", "8080")
	log.Printf("✅ Server is running on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
