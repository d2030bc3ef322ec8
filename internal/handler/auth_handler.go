package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"contactbook/internal/auth"
	"contactbook/internal/errors"
	"contactbook/internal/model"
	"contactbook/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// CredentialsRequest is the body of register and login requests.
type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	Token string         `json:"token"`
	User  model.Identity `json:"user"`
}

// MessageResponse is a plain acknowledgment.
type MessageResponse struct {
	Message string `json:"message"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Registration data"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req CredentialsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.authService.Register(c.Request().Context(), req.Email, req.Password); err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusCreated, MessageResponse{Message: "User registered successfully"})
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req CredentialsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		User:  user.Identity(),
	})
}

// Logout godoc
// @Summary Revoke the presented token
// @Tags auth
// @Produce json
// @Security TokenAuth
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		return mapError(errors.ErrMissingToken)
	}

	if err := h.authService.Logout(c.Request().Context(), claims); err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Logged out"})
}

// bindAndValidate decodes the JSON body into req and runs struct validation.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Msg:  "invalid request body",
			Code: "INVALID_BODY",
		})
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Msg:  err.Error(),
			Code: "VALIDATION_ERROR",
		})
	}
	return nil
}

// mapError converts a service error into an Echo HTTP error.
func mapError(err error) *echo.HTTPError {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse()).SetInternal(err)
}
