package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cotiza-api/internal/application/billing"
	"github.com/jhoicas/Cotiza-api/internal/application/dto"
)

// InvoiceHandler maneja el ciclo de vida de facturas: creación, conversión
// desde cotización, cobro y PDF.
type InvoiceHandler struct {
	uc    *billing.InvoiceUseCase
	pdfUC *billing.PDFUseCase
}

// NewInvoiceHandler construye el handler de facturas.
func NewInvoiceHandler(uc *billing.InvoiceUseCase, pdfUC *billing.PDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, pdfUC: pdfUC}
}

// Create crea una factura independiente.
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	inv, err := h.uc.CreateInvoice(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inv)
}

// CreateFromQuote godoc
// @Summary      Convertir una cotización aceptada en factura
// @Tags         invoices
// @Produce      json
// @Param        quoteId  path  string  true  "ID de la cotización aceptada"
// @Success      201  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/invoices/from-quote/{quoteId} [post]
func (h *InvoiceHandler) CreateFromQuote(c *fiber.Ctx) error {
	inv, err := h.uc.CreateFromQuote(c.UserContext(), GetUserID(c), c.Params("quoteId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inv)
}

// GetByID obtiene una factura (los clientes solo ven las propias).
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	inv, err := h.uc.GetInvoice(c.UserContext(), GetUserID(c), GetRole(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inv)
}

// List lista facturas con paginación.
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	invoices, err := h.uc.ListInvoices(c.UserContext(), GetUserID(c), GetRole(c), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(invoices)
}

// UpdateStatus pasa la factura entre pending y overdue.
func (h *InvoiceHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateInvoiceStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	inv, err := h.uc.UpdateStatus(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inv)
}

// MarkAsPaid registra el pago manual de una factura: fecha, método y
// referencia quedan estampados juntos.
func (h *InvoiceHandler) MarkAsPaid(c *fiber.Ctx) error {
	var in dto.MarkPaidRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	inv, err := h.uc.MarkAsPaid(c.UserContext(), c.Params("id"), in.PaymentMethod, in.PaymentReference)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inv)
}

// CreatePaymentIntent inicia un cobro por pasarela.
func (h *InvoiceHandler) CreatePaymentIntent(c *fiber.Ctx) error {
	intent, err := h.uc.CreatePaymentIntent(c.UserContext(), GetUserID(c), GetRole(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(intent)
}

// DownloadPDF descarga la representación gráfica de la factura.
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdfUC.DownloadInvoicePDF(c.UserContext(), GetUserID(c), GetRole(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
