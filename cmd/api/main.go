package main

import (
	"academiq/config"
	"academiq/internal/api/healthcheck"
	"academiq/internal/api/history"
	"academiq/internal/api/ingest"
	"academiq/internal/api/papers"
	"academiq/internal/api/query"
	"academiq/internal/api/quiz"
	"academiq/internal/api/retriever"
	"academiq/internal/database"
	"academiq/internal/middleware"
	"academiq/pkg/logger"
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	malvus "github.com/milvus-io/milvus-sdk-go/v2/client"
)

func main() {
	app := fiber.New(fiber.Config{
		AppName:     config.Cfg.Server.AppName,
		BodyLimit:   config.Cfg.Server.BodyLimit,
		Concurrency: config.Cfg.Server.Concurrency,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.Cfg.Cors.AllowOrigins,
		AllowMethods: config.Cfg.Cors.AllowMethods,
		AllowHeaders: config.Cfg.Cors.AllowHeaders,
	}))
	middleware.Register(app, config.Cfg.Server.Concurrency)

	if err := database.Migrate(); err != nil {
		logger.Fatal(err, "database migrate error")
	}

	// Milvus connectivity check on startup
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	cli, err := malvus.NewClient(ctx, malvus.Config{Address: config.Cfg.Milvus.Address})
	cancel()
	if err != nil {
		logger.Error(err, "milvus connect error")
	} else {
		cli.Close()
		logger.Info("milvus ok")
	}

	// routes
	healthcheck.RegisterRoutes(app)
	papers.RegisterRoutes(app)
	ingest.RegisterRoutes(app)
	retriever.RegisterRoutes(app)
	query.RegisterRoutes(app)
	quiz.RegisterRoutes(app)
	history.RegisterRoutes(app)

	addr := fmt.Sprintf(":%d", config.Cfg.Server.Port)
	if err := app.Listen(addr); err != nil {
		logger.Error(err, "server error")
	}
}
