package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	t.Run("strips script tags and keeps the remaining text", func(t *testing.T) {
		got, err := Sanitize("<script>alert(1)</script>hello")
		require.NoError(t, err)
		assert.Equal(t, "hello", got)
	})

	t.Run("strips plain html tags", func(t *testing.T) {
		got, err := Sanitize("<b>Juan</b> <i>Dela Cruz</i>")
		require.NoError(t, err)
		assert.Equal(t, "Juan Dela Cruz", got)
	})

	t.Run("strips javascript uris and event handlers", func(t *testing.T) {
		got, err := Sanitize(`javascript:doEvil() onclick=steal`)
		require.NoError(t, err)
		assert.NotContains(t, got, "javascript:")
		assert.NotContains(t, got, "onclick=")
	})

	t.Run("strips quotes and backslashes", func(t *testing.T) {
		got, err := Sanitize(`O'Brien \ "quoted"`)
		require.NoError(t, err)
		assert.Equal(t, "OBrien  quoted", got)
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		got, err := Sanitize("  Maria  ")
		require.NoError(t, err)
		assert.Equal(t, "Maria", got)
	})

	t.Run("rejects sql keywords case-insensitively", func(t *testing.T) {
		for _, input := range []string{
			"DROP TABLE users",
			"drop table users",
			"Robert; select * from accounts",
		} {
			_, err := Sanitize(input)
			assert.ErrorIs(t, err, ErrUnsafeInput, "input: %s", input)
		}
	})

	t.Run("allows words that merely contain a keyword", func(t *testing.T) {
		got, err := Sanitize("Alteration Dropside")
		require.NoError(t, err)
		assert.Equal(t, "Alteration Dropside", got)
	})
}

func TestValidateField(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  FieldKind
		want  bool
	}{
		{"valid email", "juan@school.edu.ph", FieldEmail, true},
		{"email missing tld", "juan@school", FieldEmail, false},
		{"email missing local part", "@school.edu", FieldEmail, false},
		{"empty input", "", FieldEmail, false},
		{"valid username", "juan_dc-2024", FieldUsername, true},
		{"username too short", "jd", FieldUsername, false},
		{"username with spaces", "juan dc", FieldUsername, false},
		{"strict password", "Abcdef1!", FieldPassword, true},
		{"password without symbol", "Abcdefg1", FieldPassword, false},
		{"password too short", "Ab1!", FieldPassword, false},
		{"plain text", "Grade 11, STEM", FieldText, true},
		{"text with angle brackets", "a<b>", FieldText, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateField(tt.input, tt.kind))
		})
	}
}

func TestScorePasswordStrength(t *testing.T) {
	tests := []struct {
		password string
		want     Strength
	}{
		{"abc", StrengthWeak},
		{"abcde", StrengthWeak},
		{"", StrengthWeak},
		{"abcdef", StrengthMedium},
		{"abcdefgh", StrengthMedium},
		{"abcdefg1", StrengthMedium}, // two classes only
		{"Abcdef1!", StrengthStrong},
		{"Abcdefg1", StrengthStrong}, // lower+upper+digit
		{"Abcd1!", StrengthMedium},   // varied but under 8 chars
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			assert.Equal(t, tt.want, ScorePasswordStrength(tt.password))
		})
	}
}

func TestCSRFToken(t *testing.T) {
	t.Run("generated tokens validate", func(t *testing.T) {
		token, err := GenerateCSRFToken()
		require.NoError(t, err)
		assert.Len(t, token, 64)
		assert.True(t, ValidateCSRFToken(token))
	})

	t.Run("generated tokens are unique", func(t *testing.T) {
		first, err := GenerateCSRFToken()
		require.NoError(t, err)
		second, err := GenerateCSRFToken()
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("rejects malformed tokens", func(t *testing.T) {
		assert.False(t, ValidateCSRFToken("not-hex"))
		assert.False(t, ValidateCSRFToken(strings.Repeat("a", 63)))
		assert.False(t, ValidateCSRFToken(strings.Repeat("A", 64))) // uppercase hex
		assert.False(t, ValidateCSRFToken(""))
	})
}
