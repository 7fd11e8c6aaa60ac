// init_db prepara la base de datos: aplica las migraciones embebidas e informa si ya existe
// un Super Admin (si no, el primer usuario se crea con POST /api/auth/setup).
//
// Uso: go run ./cmd/init_db [-test-email destinatario@dominio] [-pdf-url https://...]
// Con -test-email envía además un correo de prueba con el PDF indicado adjunto por URL.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/Cotizador-api/internal/application/ports"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/infrastructure/fetch"
	"github.com/jhoicas/Cotizador-api/internal/infrastructure/mail"
	"github.com/jhoicas/Cotizador-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Cotizador-api/pkg/config"
	"github.com/jhoicas/Cotizador-api/pkg/logger"
)

const defaultTestPDF = "https://www.w3.org/WAI/ER/tests/xhtml/testfiles/resources/pdf/dummy.pdf"

func main() {
	testEmail := flag.String("test-email", "", "destinatario del correo de prueba con adjunto")
	pdfURL := flag.String("pdf-url", defaultTestPDF, "PDF a adjuntar en el correo de prueba")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	if len(applied) == 0 {
		log.Info().Msg("esquema al día, sin migraciones pendientes")
	} else {
		log.Info().Strs("applied", applied).Msg("migraciones aplicadas")
	}

	users, err := postgres.NewUserRepository(pool).List(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("listar usuarios")
	}
	if admin := firstSuperAdmin(users); admin != nil {
		log.Info().Str("email", admin.Email).Msg("ya existe un Super Admin")
	} else {
		log.Info().Msg("no hay Super Admin: crear el primero con POST /api/auth/setup")
	}

	if *testEmail != "" {
		if !cfg.SMTP.Enabled() {
			log.Fatal().Msg("SMTP sin configurar (SMTP_HOST / SMTP_USER)")
		}
		mailer := mail.NewSMTPMailer(cfg.SMTP, fetch.NewHTTPFetcher())
		err := mailer.Send(ctx, ports.Message{
			To:      *testEmail,
			Subject: "Test Email WITH ATTACHMENT",
			HTML:    "<h1>Attachment Test</h1><p>Checking if URL attachment works.</p>",
			Attachments: []ports.Attachment{
				{Filename: "test-attachment.pdf", URL: *pdfURL, ContentType: "application/pdf"},
			},
		})
		if err != nil {
			log.Fatal().Err(err).Msg("envío del correo de prueba")
		}
		log.Info().Str("to", *testEmail).Msg("correo de prueba enviado")
	}

	log.Info().Msg("verificación de base de datos completada")
}

func firstSuperAdmin(users []*entity.User) *entity.User {
	for _, u := range users {
		if u.Role == entity.RoleSuperAdmin {
			return u
		}
	}
	return nil
}
