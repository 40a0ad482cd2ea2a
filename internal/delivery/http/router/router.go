// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"portal/internal/delivery/http/middleware"
	"portal/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	RegistrationHandler *handler.RegistrationHandler
	AuthHandler         *handler.AuthHandler
	SessionHandler      *handler.SessionHandler
	SectionHandler      *handler.SectionHandler
	CSRFMiddleware      *middleware.CSRFMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	registrationHandler *handler.RegistrationHandler
	authHandler         *handler.AuthHandler
	sessionHandler      *handler.SessionHandler
	sectionHandler      *handler.SectionHandler
	csrfMiddleware      *middleware.CSRFMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		registrationHandler: params.RegistrationHandler,
		authHandler:         params.AuthHandler,
		sessionHandler:      params.SessionHandler,
		sectionHandler:      params.SectionHandler,
		csrfMiddleware:      params.CSRFMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Registration form routes. Everything that mutates an in-flight form
	// requires the CSRF token issued when the session was opened.
	registrationGroup := e.Group("/registration")
	{
		registrationGroup.POST("", r.registrationHandler.Start)
		registrationGroup.GET("/:id", r.registrationHandler.Get)
		registrationGroup.POST("/password-strength", r.registrationHandler.PasswordStrength)
		registrationGroup.PATCH("/:id/fields", r.registrationHandler.UpdateField, r.csrfMiddleware.Require)
		registrationGroup.POST("/:id/school-id", r.registrationHandler.RegenerateSchoolID, r.csrfMiddleware.Require)
		registrationGroup.DELETE("/:id", r.registrationHandler.Abandon, r.csrfMiddleware.Require)
	}

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/signup", r.authHandler.SignUp, r.csrfMiddleware.Require)
		authGroup.POST("/signin", r.authHandler.SignIn)
		authGroup.POST("/verify-otp", r.authHandler.VerifyOtp)
		authGroup.POST("/resend-otp", r.authHandler.ResendOtp)
	}

	// Session routes; both take the bearer access token plus session id.
	sessionGroup := e.Group("/session")
	{
		sessionGroup.GET("/current", r.sessionHandler.Current)
		sessionGroup.POST("/signout", r.sessionHandler.SignOut)
	}

	// Cohort browsing
	e.GET("/sections", r.sectionHandler.List)
}
