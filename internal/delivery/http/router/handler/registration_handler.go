package handler

import (
	"net/http"

	"portal/internal/delivery/http/response"
	"portal/internal/domain/registration"
	"portal/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// RegistrationHandler holds dependencies for the sign-up form handlers.
type RegistrationHandler struct {
	uc usecase.RegistrationUsecase
}

// NewRegistrationHandler is the constructor for RegistrationHandler, injected by Fx.
func NewRegistrationHandler(uc usecase.RegistrationUsecase) *RegistrationHandler {
	return &RegistrationHandler{uc: uc}
}

// Start opens a fresh registration session.
func (h *RegistrationHandler) Start(c echo.Context) error {
	output, err := h.uc.StartSession(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output.Session)
}

// Get returns the current state of an in-flight session.
func (h *RegistrationHandler) Get(c echo.Context) error {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid session id", nil)
	}

	session, err := h.uc.GetSession(c.Request().Context(), sessionID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, session)
}

// updateFieldRequest carries one field update.
type updateFieldRequest struct {
	Field string `json:"field" validate:"required"`
	Value string `json:"value"`
}

// UpdateField applies one field update to the session's form.
func (h *RegistrationHandler) UpdateField(c echo.Context) error {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid session id", nil)
	}

	var input updateFieldRequest
	if err := c.Bind(&input); err != nil {
		return response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid field update", nil)
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.UpdateField(c.Request().Context(), usecase.UpdateFieldInput{
		SessionID: sessionID,
		Field:     registration.Field(input.Field),
		Value:     input.Value,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output)
}

// RegenerateSchoolID replaces the generated school id on user request.
func (h *RegistrationHandler) RegenerateSchoolID(c echo.Context) error {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid session id", nil)
	}

	schoolID, err := h.uc.RegenerateSchoolID(c.Request().Context(), sessionID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"schoolId": schoolID})
}

// Abandon discards an in-flight session.
func (h *RegistrationHandler) Abandon(c echo.Context) error {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid session id", nil)
	}

	if err := h.uc.Abandon(c.Request().Context(), sessionID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Registration abandoned"})
}

// passwordStrengthRequest carries a password draft for the strength meter.
type passwordStrengthRequest struct {
	Password string `json:"password"`
}

// PasswordStrength classifies a password draft. The password itself is
// never stored or logged.
func (h *RegistrationHandler) PasswordStrength(c echo.Context) error {
	var input passwordStrengthRequest
	if err := c.Bind(&input); err != nil {
		return response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid password input", nil)
	}

	strength := h.uc.ScorePassword(input.Password)

	return response.Success(c, http.StatusOK, map[string]string{"strength": string(strength)})
}
