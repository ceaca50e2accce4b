package cmd

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sitemint/sitemint-backend/internal/application"
	"github.com/sitemint/sitemint-backend/internal/application/commands"
	"github.com/sitemint/sitemint-backend/internal/application/query"
	"github.com/sitemint/sitemint-backend/internal/infra/cache"
	"github.com/sitemint/sitemint-backend/internal/infra/client/github"
	ai "github.com/sitemint/sitemint-backend/internal/infra/client/openai"
	"github.com/sitemint/sitemint-backend/internal/infra/config"
	"github.com/sitemint/sitemint-backend/internal/infra/scraper"
	"github.com/sitemint/sitemint-backend/internal/presentation/render"
	"github.com/sitemint/sitemint-backend/internal/presentation/rest"
	"github.com/sitemint/sitemint-backend/pkg/db"
)

func Init() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded", "err", err)
	}

	// DB
	dbConfig := db.NewConfig()
	pool, err := pgxpool.New(context.Background(), dbConfig.GetDSN())
	if err != nil {
		log.Panicf("failed to create pool: %v", err)
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Panicf("failed to connect to db: %v", err)
	}
	uowFactory := db.NewUoWFactory(pool)

	// Configs
	appConfig := config.NewAppConfig()
	ghConfig := github.NewConfig()

	// Clients
	fetcher := scraper.NewCollyFetcher(scraper.NewFetcherConfig())
	extractor := ai.NewOpenAIClient(ai.NewOpenAIConfig())
	ghClient := github.NewClient(ghConfig)
	siteCache := cache.NewSiteCache(cache.NewCacheConfig())

	getSite := query.NewGetSite(uowFactory, siteCache)
	handlers := &application.Handlers{
		ScrapeSite: commands.NewScrapeSite(fetcher, extractor),
		SaveConfig: commands.NewSaveConfig(uowFactory, siteCache),
		UpdateSite: commands.NewUpdateSite(uowFactory, siteCache),
		DeleteSite: commands.NewDeleteSite(uowFactory, siteCache),
		DeploySite: commands.NewDeploySite(uowFactory, ghClient, ghConfig),
		GetSite:    getSite,
		ListSites:  query.NewListSites(uowFactory),
	}

	app := fiber.New(fiber.Config{
		IdleTimeout: 5 * time.Second,
		Views:       render.NewEngine(),
	})
	app.Use(cors.New(cors.Config{
		AllowOrigins:     appConfig.CORSOrigin,
		AllowMethods:     "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	// Hostname-based tenant resolution runs before any route handling.
	app.Use(rest.NewTenantResolver(appConfig))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handler := rest.NewServer(handlers)
	rest.RegisterHandlers(app, handler)

	renderer := render.NewSiteRenderer(getSite)
	app.Get("/sites/:subdomain", renderer.RenderSite)
	app.Get("/sites/:subdomain/*", renderer.RenderSite)

	go func() {
		if err := app.Listen(":" + appConfig.Port); err != nil {
			log.Panic(err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c
	slog.Info("gracefully shutting down...")
	_ = app.Shutdown()

	siteCache.Close()
	uowFactory.Pool.Close()
	slog.Info("server was successfully shutdown")
}
