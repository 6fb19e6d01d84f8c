package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gestion-api/internal/application/contacts"
	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// ContactHandler maneja clientes y proveedores (protegido).
type ContactHandler struct {
	uc *contacts.UseCase
}

// NewContactHandler construye el handler.
func NewContactHandler(uc *contacts.UseCase) *ContactHandler {
	return &ContactHandler{uc: uc}
}

// CreateClient godoc
// @Summary      Crear cliente
// @Tags         contacts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ContactRequest  true  "Datos del cliente"
// @Success      201   {object}  dto.ContactResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/clients [post]
func (h *ContactHandler) CreateClient(c *fiber.Ctx) error {
	var in dto.ContactRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	client, err := h.uc.CreateClient(c.Context(), &entity.Client{
		Document: in.Document, Name: in.Name, Email: in.Email, Phone: in.Phone, Address: in.Address,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(clientResponse(client))
}

// GetClient godoc
// @Summary      Obtener cliente por ID
// @Tags         contacts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.ContactResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [get]
func (h *ContactHandler) GetClient(c *fiber.Ctx) error {
	client, err := h.uc.GetClient(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(clientResponse(client))
}

// ListClients godoc
// @Summary      Listar clientes
// @Tags         contacts
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {array}  dto.ContactResponse
// @Router       /api/clients [get]
func (h *ContactHandler) ListClients(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	clients, err := h.uc.ListClients(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ContactResponse, 0, len(clients))
	for _, client := range clients {
		out = append(out, clientResponse(client))
	}
	return c.JSON(out)
}

// UpdateClient godoc
// @Summary      Actualizar cliente
// @Tags         contacts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del cliente"
// @Param        body  body  dto.ContactRequest  true  "Datos del cliente"
// @Success      200   {object}  dto.ContactResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [put]
func (h *ContactHandler) UpdateClient(c *fiber.Ctx) error {
	var in dto.ContactRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	client := &entity.Client{
		ID: c.Params("id"), Document: in.Document, Name: in.Name,
		Email: in.Email, Phone: in.Phone, Address: in.Address,
	}
	if err := h.uc.UpdateClient(c.Context(), client); err != nil {
		return respondError(c, err)
	}
	updated, err := h.uc.GetClient(c.Context(), client.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(clientResponse(updated))
}

// DeleteClient godoc
// @Summary      Eliminar cliente
// @Tags         contacts
// @Security     Bearer
// @Param        id  path  string  true  "ID del cliente"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [delete]
func (h *ContactHandler) DeleteClient(c *fiber.Ctx) error {
	if err := h.uc.DeleteClient(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateSupplier godoc
// @Summary      Crear proveedor
// @Tags         contacts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ContactRequest  true  "Datos del proveedor"
// @Success      201   {object}  dto.ContactResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/suppliers [post]
func (h *ContactHandler) CreateSupplier(c *fiber.Ctx) error {
	var in dto.ContactRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	supplier, err := h.uc.CreateSupplier(c.Context(), &entity.Supplier{
		Document: in.Document, Name: in.Name, Email: in.Email, Phone: in.Phone, Address: in.Address,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(supplierResponse(supplier))
}

// GetSupplier godoc
// @Summary      Obtener proveedor por ID
// @Tags         contacts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proveedor"
// @Success      200  {object}  dto.ContactResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id} [get]
func (h *ContactHandler) GetSupplier(c *fiber.Ctx) error {
	supplier, err := h.uc.GetSupplier(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(supplierResponse(supplier))
}

// ListSuppliers godoc
// @Summary      Listar proveedores
// @Tags         contacts
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {array}  dto.ContactResponse
// @Router       /api/suppliers [get]
func (h *ContactHandler) ListSuppliers(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	suppliers, err := h.uc.ListSuppliers(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ContactResponse, 0, len(suppliers))
	for _, supplier := range suppliers {
		out = append(out, supplierResponse(supplier))
	}
	return c.JSON(out)
}

// UpdateSupplier godoc
// @Summary      Actualizar proveedor
// @Tags         contacts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del proveedor"
// @Param        body  body  dto.ContactRequest  true  "Datos del proveedor"
// @Success      200   {object}  dto.ContactResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id} [put]
func (h *ContactHandler) UpdateSupplier(c *fiber.Ctx) error {
	var in dto.ContactRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	supplier := &entity.Supplier{
		ID: c.Params("id"), Document: in.Document, Name: in.Name,
		Email: in.Email, Phone: in.Phone, Address: in.Address,
	}
	if err := h.uc.UpdateSupplier(c.Context(), supplier); err != nil {
		return respondError(c, err)
	}
	updated, err := h.uc.GetSupplier(c.Context(), supplier.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(supplierResponse(updated))
}

// DeleteSupplier godoc
// @Summary      Eliminar proveedor
// @Tags         contacts
// @Security     Bearer
// @Param        id  path  string  true  "ID del proveedor"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id} [delete]
func (h *ContactHandler) DeleteSupplier(c *fiber.Ctx) error {
	if err := h.uc.DeleteSupplier(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func clientResponse(c *entity.Client) dto.ContactResponse {
	return dto.ContactResponse{
		ID: c.ID, Document: c.Document, Name: c.Name, Email: c.Email,
		Phone: c.Phone, Address: c.Address, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
}

func supplierResponse(s *entity.Supplier) dto.ContactResponse {
	return dto.ContactResponse{
		ID: s.ID, Document: s.Document, Name: s.Name, Email: s.Email,
		Phone: s.Phone, Address: s.Address, CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt,
	}
}
