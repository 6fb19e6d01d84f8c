package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gestion-api/internal/application/catalog"
	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/quotations"
)

// PublicHandler vitrina pública: catálogo y solicitud de cotización sin
// autenticación. El precio de la vitrina SIEMPRE lo fija la cascada; el
// visitante nunca manda precios.
type PublicHandler struct {
	catalogUC   *catalog.UseCase
	quotationUC *quotations.UseCase
}

// NewPublicHandler construye el handler.
func NewPublicHandler(catalogUC *catalog.UseCase, quotationUC *quotations.UseCase) *PublicHandler {
	return &PublicHandler{catalogUC: catalogUC, quotationUC: quotationUC}
}

// ListProducts godoc
// @Summary      Catálogo público con precios de la cascada y stock proyectado
// @Tags         public
// @Produce      json
// @Param        search  query  string  false  "Búsqueda por nombre o código"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {array}  dto.ProductResponse
// @Router       /public/products [get]
func (h *PublicHandler) ListProducts(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.catalogUC.List(c.Context(), c.Query("search"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SubmitQuotation godoc
// @Summary      Solicitar cotización desde la vitrina
// @Description  Crea una cotización PENDING con el siguiente consecutivo;
// @Description  los precios salen de la cascada del catálogo.
// @Tags         public
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PublicQuotationRequest  true  "Solicitud con contacto e ítems"
// @Success      201   {object}  dto.QuotationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /public/quotations [post]
func (h *PublicHandler) SubmitQuotation(c *fiber.Ctx) error {
	var in dto.PublicQuotationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.quotationUC.SubmitPublic(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
