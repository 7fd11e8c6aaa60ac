package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cotizador-api/internal/application/analytics"
	"github.com/jhoicas/Cotizador-api/internal/application/auth"
	"github.com/jhoicas/Cotizador-api/internal/application/ports"
	"github.com/jhoicas/Cotizador-api/internal/application/quoting"
	"github.com/jhoicas/Cotizador-api/internal/application/usecase"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	ClientUC    *quoting.ClientUseCase
	QuotationUC *quoting.QuotationUseCase
	DashboardUC *analytics.DashboardUseCase
	PDFUC       *quoting.PDFUseCase
	Storage     ports.FileStorage
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/accept-invite", authHandler.AcceptInvite)
	authGroup.Post("/setup", authHandler.Setup)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.AuthUC))
	superAdmin := RequireRole(entity.RoleSuperAdmin)

	// Users: perfil propio para cualquiera; el resto solo Super Admin
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Put("/profile", userHandler.UpdateProfile)
	users.Post("/invite", superAdmin, userHandler.Invite)
	users.Get("/", superAdmin, userHandler.List)
	users.Delete("/:id", superAdmin, userHandler.Delete)

	// Clients: lectura para cualquiera; escritura solo Super Admin
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Get("/", clientHandler.List)
	clients.Post("/", superAdmin, clientHandler.Create)
	clients.Put("/:id", superAdmin, clientHandler.Update)
	clients.Delete("/:id", superAdmin, clientHandler.Delete)

	// Quotations
	quotations := protected.Group("/quotations")
	quotationHandler := NewQuotationHandler(deps.QuotationUC, deps.DashboardUC, deps.PDFUC)
	quotations.Get("/stats", quotationHandler.Stats)
	quotations.Get("/", quotationHandler.List)
	quotations.Post("/", quotationHandler.Create)
	quotations.Get("/:id/pdf", quotationHandler.PDF)
	quotations.Get("/:id", quotationHandler.GetByID)
	quotations.Put("/:id", quotationHandler.Update)
	quotations.Delete("/:id", quotationHandler.Delete)

	// Upload
	uploadHandler := NewUploadHandler(deps.Storage)
	protected.Post("/upload", uploadHandler.Upload)
}
