package handler

import (
	"net/http"

	"portal/internal/delivery/http/response"
	"portal/internal/domain/entity"
	"portal/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for the sign-up / sign-in handlers.
type AuthHandler struct {
	uc usecase.AuthUsecase
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// signUpRequest submits an in-flight registration session. Only the
// credential travels here; the form fields were accumulated field by field.
type signUpRequest struct {
	SessionID       uuid.UUID `json:"sessionId" validate:"required"`
	Password        string    `json:"password"`
	ConfirmPassword string    `json:"confirmPassword"`
}

// SignUp handles the account creation request. A refused submit is still a
// 200; the flow state in the body says how it resolved.
func (h *AuthHandler) SignUp(c echo.Context) error {
	var input signUpRequest
	if err := c.Bind(&input); err != nil {
		return response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid sign-up input", nil)
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.SignUp(c.Request().Context(), usecase.SignUpInput{
		SessionID:       input.SessionID,
		Password:        input.Password,
		ConfirmPassword: input.ConfirmPassword,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output)
}

// signInRequest defines the credentials and the role tab they were entered
// under.
type signInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

// SignIn handles the sign-in request.
func (h *AuthHandler) SignIn(c echo.Context) error {
	var input signInRequest
	if err := c.Bind(&input); err != nil {
		return response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid sign-in input", nil)
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	role := entity.Role(input.Role)
	if !role.IsValid() {
		return response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Unknown role", nil)
	}

	output, err := h.uc.SignIn(c.Request().Context(), usecase.SignInInput{
		Email:    input.Email,
		Password: input.Password,
		Role:     role,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output)
}

// verifyOtpRequest checks an emailed passcode. SessionID is present when
// the challenge belongs to an in-flight sign-up.
type verifyOtpRequest struct {
	SessionID *uuid.UUID `json:"sessionId,omitempty"`
	Email     string     `json:"email" validate:"required,email"`
	Code      string     `json:"code" validate:"required"`
}

// VerifyOtp handles the passcode check.
func (h *AuthHandler) VerifyOtp(c echo.Context) error {
	var input verifyOtpRequest
	if err := c.Bind(&input); err != nil {
		return response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid verification input", nil)
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.VerifyOtp(c.Request().Context(), usecase.VerifyOtpInput{
		SessionID: input.SessionID,
		Email:     input.Email,
		Code:      input.Code,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output)
}

// resendOtpRequest asks for a fresh passcode.
type resendOtpRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResendOtp handles the passcode resend request.
func (h *AuthHandler) ResendOtp(c echo.Context) error {
	var input resendOtpRequest
	if err := c.Bind(&input); err != nil {
		return response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid resend input", nil)
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.ResendOtp(c.Request().Context(), input.Email); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Verification code sent"})
}
