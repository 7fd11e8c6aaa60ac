package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Cotizador-api/docs"
	appanalytics "github.com/jhoicas/Cotizador-api/internal/application/analytics"
	"github.com/jhoicas/Cotizador-api/internal/application/auth"
	"github.com/jhoicas/Cotizador-api/internal/application/ports"
	"github.com/jhoicas/Cotizador-api/internal/application/quoting"
	"github.com/jhoicas/Cotizador-api/internal/application/usecase"
	infracache "github.com/jhoicas/Cotizador-api/internal/infrastructure/cache"
	"github.com/jhoicas/Cotizador-api/internal/infrastructure/fetch"
	"github.com/jhoicas/Cotizador-api/internal/infrastructure/mail"
	infrapdf "github.com/jhoicas/Cotizador-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Cotizador-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Cotizador-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Cotizador-api/internal/interfaces/http"
	"github.com/jhoicas/Cotizador-api/pkg/config"
	"github.com/jhoicas/Cotizador-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Strs("applied", applied).Msg("migraciones aplicadas")
	}

	// Caché de usuarios autenticados (opcional)
	var userCache ports.UserCache = ports.NoopUserCache{}
	if cfg.Redis.URL != "" {
		rc, err := infracache.NewRedisUserCache(ctx, cfg.Redis.URL, cfg.Redis.UserTTL)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, se continúa sin caché")
		} else {
			defer rc.Close()
			userCache = rc
		}
	}

	fetcher := fetch.NewHTTPFetcher()
	var mailer ports.Mailer = mail.NoEmail{}
	if cfg.SMTP.Enabled() {
		mailer = mail.NewSMTPMailer(cfg.SMTP, fetcher)
	} else {
		log.Warn().Msg("SMTP sin configurar: los correos fallarán con error de despacho")
	}

	fileStorage, err := storage.NewCloudinaryStorage(cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("configuración de Cloudinary")
	}

	userRepo := postgres.NewUserRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	quotationRepo := postgres.NewQuotationRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)

	authUC := auth.NewAuthUseCase(userRepo, userCache, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log.Component("auth"))
	userUC := usecase.NewUserUseCase(userRepo, mailer, userCache, authUC, usecase.InviteConfig{
		FrontendURL: cfg.HTTP.FrontendURL,
		TTL:         cfg.Company.InviteTTL,
	}, log.Component("users"))

	clientUC := quoting.NewClientUseCase(clientRepo, log.Component("clients"))
	notifier := quoting.NewNotifier(mailer, fetcher, cfg.Company.Name, log.Component("notifier"))
	quotationUC := quoting.NewQuotationUseCase(quotationRepo, clientUC, notifier, log.Component("quotations"))
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, quotationRepo)

	// PDF de la cotización generado en el servidor
	pdfUC := quoting.NewPDFUseCase(quotationUC, infrapdf.NewMarotoQuotationPDF(cfg.Company.Name))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    12 << 20,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.HTTP.AllowedOrigins, ","),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowCredentials: true,
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	docs.SwaggerInfo.Host = cfg.HTTP.Addr()
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    docs.SwaggerInfo.Title,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      userUC,
		ClientUC:    clientUC,
		QuotationUC: quotationUC,
		DashboardUC: dashboardUC,
		PDFUC:       pdfUC,
		Storage:     fileStorage,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
