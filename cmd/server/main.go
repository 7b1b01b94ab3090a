// main.go
//
// Server-side data and lead-capture service for the Terravista estates site
// Copyright (c) 2026 Terravista Realty Advisors
//
// This file is part of estates.
// estates is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// estates is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with estates.
// If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/terravista/estates/internal/config"
	"github.com/terravista/estates/internal/database"
	"github.com/terravista/estates/internal/handlers"
	"github.com/terravista/estates/internal/middleware"
	"github.com/terravista/estates/internal/storage"
	"github.com/terravista/estates/internal/types"

	_ "github.com/terravista/estates/docs/api" // Swagger docs
)

// @title Terravista Estates API
// @version 1.0.0
// @description Data and lead-capture service for the Terravista estates site
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/terravista/estates

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name cookie_session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	uploads := storage.New(cfg)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("estates")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Health check
	healthHandler := &handlers.HealthHandler{Config: cfg, DB: db}
	app.Get("/health", healthHandler.Check)

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.VersionMiddleware())

	// Create handlers
	propertyHandler := &handlers.PropertyHandler{DB: db, Uploads: uploads}
	blogHandler := &handlers.BlogHandler{DB: db, Uploads: uploads}
	leadHandler := &handlers.LeadHandler{DB: db}
	uploadHandler := &handlers.UploadHandler{DB: db, Uploads: uploads}

	// Public property routes (published rows only)
	api.Get("/properties", propertyHandler.ListProperties)
	api.Get("/properties/:id", propertyHandler.GetProperty)

	// Owner property routes
	api.Get("/user/properties", middleware.AuthUser(cfg), propertyHandler.ListUserProperties)
	api.Post("/properties", middleware.AuthUser(cfg), propertyHandler.CreateProperty)
	api.Put("/properties/:id", middleware.AuthUser(cfg), propertyHandler.UpdateProperty)
	api.Delete("/properties/:id", middleware.AuthUser(cfg), propertyHandler.DeleteProperty)
	api.Post("/properties/:id/gallery", middleware.AuthUser(cfg), propertyHandler.AddGalleryImage)

	// Public blog routes (published rows only)
	api.Get("/blogs", blogHandler.ListBlogs)
	api.Get("/blogs/:slug", blogHandler.GetBlogBySlug)

	// Owner blog routes; the update target id travels in the payload
	api.Get("/user/blogs", middleware.AuthUser(cfg), blogHandler.ListUserBlogs)
	api.Post("/blogs", middleware.AuthUser(cfg), blogHandler.CreateBlog)
	api.Put("/blogs", middleware.AuthUser(cfg), blogHandler.UpdateBlog)
	api.Delete("/blogs/:id", middleware.AuthUser(cfg), blogHandler.DeleteBlog)

	// Image uploads for the CMS editor
	api.Post("/images/:entity", middleware.AuthUser(cfg), uploadHandler.UploadImage)

	// Lead capture (anonymous write, admin read/delete)
	api.Post("/leads", leadHandler.CreateLead)
	api.Get("/leads", middleware.AuthAdmin(cfg), leadHandler.ListLeads)
	api.Delete("/leads", middleware.AuthAdmin(cfg), leadHandler.DeleteLeads)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success":   false,
			"error":     "[404] Resource Not Found",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// The Authorizer client initializes on the first authenticated request
	log.Printf("Authorizer will be initialized on first authenticated request")

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler renders any error that escapes a handler in the
// failure envelope.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	var fields map[string]string

	switch e := err.(type) {
	case *types.CustomError:
		code = e.Code
		message = e.Message
		fields = e.Fields
	case *fiber.Error:
		code = e.Code
		message = e.Message
	}

	body := fiber.Map{
		"success": false,
		"error":   message,
	}
	if len(fields) > 0 {
		body["fields"] = fields
	}
	return c.Status(code).JSON(body)
}
