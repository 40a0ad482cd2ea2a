package identity

import (
	"encoding/json"
	"fmt"
	"strings"

	domainerrors "portal/internal/domain/errors"
)

// errorPayload covers the shapes the provider uses for failures. Older
// endpoints return msg/code, newer ones error_code/message, and the token
// endpoint error/error_description.
type errorPayload struct {
	Code             string `json:"code"`
	ErrorCode        string `json:"error_code"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (p errorPayload) text() string {
	for _, candidate := range []string{p.Msg, p.Message, p.ErrorDescription, p.Error} {
		if candidate != "" {
			return candidate
		}
	}

	return ""
}

func (p errorPayload) code() string {
	if p.ErrorCode != "" {
		return p.ErrorCode
	}

	return p.Code
}

// classify maps a provider failure onto the closed domain taxonomy. The
// provider does not return stable codes for every condition, so message
// substrings participate in the match; nothing outside this function ever
// inspects raw provider strings.
func classify(path string, status int, raw []byte) error {
	var payload errorPayload
	// An unparseable body still classifies; it just falls through to the
	// generic provider error.
	_ = json.Unmarshal(raw, &payload)

	message := strings.ToLower(payload.text())
	code := payload.code()

	switch {
	case code == "user_already_exists" || strings.Contains(message, "already registered"):
		return domainerrors.ErrDuplicateEmail.WrapMessage(path)

	case code == "invalid_credentials" || strings.Contains(message, "invalid login credentials"):
		return domainerrors.ErrInvalidCredentials.WrapMessage(path)

	case code == "email_not_confirmed" || strings.Contains(message, "email not confirmed"):
		return domainerrors.ErrUnverified.WrapMessage(path)

	case code == "otp_expired" || strings.Contains(message, "has expired"):
		return domainerrors.ErrOtpExpired.WrapMessage(path)

	case strings.Contains(path, "/verify"):
		// Any other verify failure reads as a wrong passcode.
		return domainerrors.ErrInvalidOtp.WrapMessage(path)

	default:
		details := payload.text()
		if details == "" {
			details = fmt.Sprintf("provider returned status %d", status)
		}

		return domainerrors.ErrProvider.WithDetails(details).WrapMessage(path)
	}
}
