package security

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"

	"portal/internal/errors"
)

// csrfTokenBytes is the entropy of a CSRF token before hex encoding.
const csrfTokenBytes = 32

var csrfTokenPattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

// GenerateCSRFToken returns 32 cryptographically random bytes encoded as
// 64 lowercase hex characters.
func GenerateCSRFToken() (string, error) {
	buf := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "generate csrf token")
	}

	return hex.EncodeToString(buf), nil
}

// ValidateCSRFToken is a shape-only check: it confirms the token looks like
// one this system issued, not that it is bound to any server-side record.
func ValidateCSRFToken(token string) bool {
	return csrfTokenPattern.MatchString(token)
}
