package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cotizador-api/internal/application/analytics"
	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/application/quoting"
)

// QuotationHandler CRUD de cotizaciones, estadísticas del dashboard y PDF.
type QuotationHandler struct {
	uc        *quoting.QuotationUseCase
	dashboard *analytics.DashboardUseCase
	pdf       *quoting.PDFUseCase
}

// NewQuotationHandler construye el handler de cotizaciones.
func NewQuotationHandler(uc *quoting.QuotationUseCase, dashboard *analytics.DashboardUseCase, pdf *quoting.PDFUseCase) *QuotationHandler {
	return &QuotationHandler{uc: uc, dashboard: dashboard, pdf: pdf}
}

// Create godoc
// @Summary      Crear cotización
// @Description  Concilia el cliente y, si el estado es sent con PDF y email, la envía por correo.
// @Tags         quotations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.QuotationRequest  true  "datos de la cotización"
// @Success      201   {object}  dto.QuotationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/quotations [post]
func (h *QuotationHandler) Create(c *fiber.Ctx) error {
	var in dto.QuotationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar cotizaciones
// @Tags         quotations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.QuotationResponse
// @Router       /api/quotations [get]
func (h *QuotationHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetActor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Estadísticas del dashboard
// @Tags         quotations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.DashboardStatsDTO
// @Router       /api/quotations/stats [get]
func (h *QuotationHandler) Stats(c *fiber.Ctx) error {
	out, err := h.dashboard.GetStats(c.UserContext(), GetActor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener cotización
// @Tags         quotations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "ID de la cotización"
// @Success      200  {object}  dto.QuotationResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotations/{id} [get]
func (h *QuotationHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar cotización
// @Tags         quotations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                true  "ID de la cotización"
// @Param        body  body  dto.QuotationRequest  true  "datos de la cotización"
// @Success      200   {object}  dto.QuotationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/quotations/{id} [put]
func (h *QuotationHandler) Update(c *fiber.Ctx) error {
	var in dto.QuotationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cotización
// @Tags         quotations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "ID de la cotización"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotations/{id} [delete]
func (h *QuotationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetActor(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Quotation removed"})
}

// PDF godoc
// @Summary      Descargar PDF de la cotización
// @Tags         quotations
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la cotización"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotations/{id}/pdf [get]
func (h *QuotationHandler) PDF(c *fiber.Ctx) error {
	b, filename, err := h.pdf.RenderPDF(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, filename))
	return c.Send(b)
}
