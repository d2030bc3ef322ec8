package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"contactbook/internal/auth"
	"contactbook/internal/model"
	"contactbook/internal/service"
)

// ContactHandler handles the owner-scoped contact endpoints. Every route is
// mounted behind auth.Gateway.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// CreateContactRequest is the body of a create request. The owner always
// comes from the verified token.
type CreateContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Message string `json:"message"`
}

// Create godoc
// @Summary Create a contact owned by the caller
// @Tags contacts
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param request body CreateContactRequest true "Contact"
// @Success 201 {object} model.Contact
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /contacts [post]
func (h *ContactHandler) Create(c echo.Context) error {
	var req CreateContactRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	contact, err := h.contactService.Create(ctx, auth.UserID(ctx), model.ContactFields{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusCreated, contact)
}

// List godoc
// @Summary List the caller's contacts, newest first
// @Tags contacts
// @Produce json
// @Security TokenAuth
// @Success 200 {array} model.Contact
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /contacts [get]
func (h *ContactHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	contacts, err := h.contactService.List(ctx, auth.UserID(ctx))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, contacts)
}

// Delete godoc
// @Summary Delete one of the caller's contacts
// @Description Deleting an unknown or foreign id succeeds without effect.
// @Tags contacts
// @Produce json
// @Security TokenAuth
// @Param id path string true "Contact ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /contacts/{id} [delete]
func (h *ContactHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.contactService.Delete(ctx, c.Param("id"), auth.UserID(ctx)); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Contact removed"})
}
