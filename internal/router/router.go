package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"contactbook/internal/auth"
	"contactbook/internal/handler"
	"contactbook/internal/logger"
)

// Handlers bundles everything the routes dispatch to.
type Handlers struct {
	Auth    *handler.AuthHandler
	Contact *handler.ContactHandler
	Health  *handler.HealthHandler
}

// Register wires routes and middleware. gateway guards every contact route.
func Register(e *echo.Echo, log *zap.Logger, gateway echo.MiddlewareFunc, h Handlers) {
	e.Use(middleware.RequestID())
	e.Use(logger.RequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderContentType, auth.HeaderToken},
	}))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", h.Health.Live)
	e.GET("/readyz", h.Health.Ready)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/register", h.Auth.Register)
	api.POST("/login", h.Auth.Login)

	// Secured routes (require x-auth-token)
	secured := api.Group("", gateway)
	secured.POST("/logout", h.Auth.Logout)
	secured.POST("/contacts", h.Contact.Create)
	secured.GET("/contacts", h.Contact.List)
	secured.DELETE("/contacts/:id", h.Contact.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
