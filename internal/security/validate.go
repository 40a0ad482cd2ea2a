package security

import "regexp"

// FieldKind selects which format rule ValidateField applies.
type FieldKind string

const (
	FieldEmail    FieldKind = "email"
	FieldUsername FieldKind = "username"
	FieldPassword FieldKind = "password"
	FieldText     FieldKind = "text"
)

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{3,20}$`)
	textPattern     = regexp.MustCompile(`^[A-Za-z0-9\s.,!?@#&()-]*$`)

	lowerPattern  = regexp.MustCompile(`[a-z]`)
	upperPattern  = regexp.MustCompile(`[A-Z]`)
	digitPattern  = regexp.MustCompile(`[0-9]`)
	symbolPattern = regexp.MustCompile(`[^A-Za-z0-9\s]`)
)

// ValidateField checks input against the format rule for the given kind.
// It returns false for empty or non-matching input and never errors; the
// password rule here is the strict recommended format (8+ characters with
// all four character classes), distinct from the submit-time minimum.
func ValidateField(input string, kind FieldKind) bool {
	if input == "" {
		return false
	}

	switch kind {
	case FieldEmail:
		return emailPattern.MatchString(input)
	case FieldUsername:
		return usernamePattern.MatchString(input)
	case FieldPassword:
		return len(input) >= 8 &&
			lowerPattern.MatchString(input) &&
			upperPattern.MatchString(input) &&
			digitPattern.MatchString(input) &&
			symbolPattern.MatchString(input)
	case FieldText:
		return textPattern.MatchString(input)
	default:
		return false
	}
}
