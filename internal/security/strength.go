package security

import "regexp"

// Strength is the coarse password classification shown while signing up.
type Strength string

const (
	StrengthWeak   Strength = "weak"
	StrengthMedium Strength = "medium"
	StrengthStrong Strength = "strong"
)

// ScorePasswordStrength classifies by length and character-class variety.
// Rules apply in order: under 6 characters is Weak; 8 or more characters
// with at least 3 of {lower, upper, digit, symbol} is Strong; everything
// else is Medium.
func ScorePasswordStrength(password string) Strength {
	if len(password) < 6 {
		return StrengthWeak
	}

	variety := 0
	for _, pattern := range []*regexp.Regexp{lowerPattern, upperPattern, digitPattern, symbolPattern} {
		if pattern.MatchString(password) {
			variety++
		}
	}

	if len(password) >= 8 && variety >= 3 {
		return StrengthStrong
	}

	return StrengthMedium
}
