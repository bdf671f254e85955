package validate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signupform/internal/validate"
)

func TestEmail(t *testing.T) {
	t.Run("accepts", func(t *testing.T) {
		for _, s := range []string{
			"a@b.com",
			"a@b",
			"user@localhost",
			"User@Example.COM",
			".user.@.example.",
			"user+tag@example.org",
			"ü@例え.jp",
		} {
			got := validate.Email(s)
			assert.True(t, got.OK, "expected %q to pass", s)
			assert.Empty(t, got.Message, "message for %q", s)
		}
	})

	t.Run("rejects", func(t *testing.T) {
		for _, s := range []string{
			"",
			"@",
			"plainaddress",
			"@example.com",
			"user@",
			"user@@example.com",
			"a@b@c",
			"user name@example.com",
			"user@exa mple.com",
			" user@example.com",
			"user@example.com ",
			"user@example.com\n",
			"\tuser@example.com",
			"user @example.com",
			"user\u00a0@example.com",
			"user@example.com\u2028",
			"user@\u200a.com",
			"\uFEFFuser@example.com",
			"user@exa\uFEFFmple.com",
		} {
			got := validate.Email(s)
			assert.False(t, got.OK, "expected %q to fail", s)
			assert.Equal(t, "Please enter a valid email address", got.Message, "message for %q", s)
		}
	})
}

func TestPassword(t *testing.T) {
	for _, s := range []string{"x", " ", "   ", "\t", "correct horse battery staple", strings.Repeat("p", 4096)} {
		assert.Equal(t, validate.Valid(), validate.Password(s), "expected %q to pass", s)
	}

	got := validate.Password("")
	assert.False(t, got.OK)
	assert.Equal(t, "Password is required", got.Message)
}

func strPtr(s string) *string { return &s }

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name   string
		in     *string
		want   string
		wantOK bool
	}{
		{name: "absent", in: nil},
		{name: "empty", in: strPtr("")},
		{name: "spaces", in: strPtr("   ")},
		{name: "mixed whitespace", in: strPtr(" \t\n ")},
		{name: "byte order mark", in: strPtr("\uFEFF")},
		{name: "no-break space", in: strPtr("\u00a0")},
		{name: "unicode separators", in: strPtr("\u2028\u3000\u2029")},
		{name: "nel is not whitespace", in: strPtr("\u0085"), want: "\u0085", wantOK: true},
		{name: "unicode padding", in: strPtr("\u00a0Ada\uFEFF"), want: "Ada", wantOK: true},
		{name: "padded", in: strPtr("  John Doe  "), want: "John Doe", wantOK: true},
		{name: "inner space kept", in: strPtr("Jane   Q  Public"), want: "Jane   Q  Public", wantOK: true},
		{name: "untouched", in: strPtr("Ada"), want: "Ada", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := validate.DisplayName(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEmailAndDisplayNameAgreeOnWhitespace(t *testing.T) {
	for _, r := range []rune{'\t', '\n', '\v', '\f', '\r', ' ', '\u00a0', '\u1680', '\u2000', '\u2028', '\u2029', '\u202f', '\u3000', '\uFEFF', '\u0085', 'x'} {
		s := string(r)
		_, present := validate.DisplayName(&s)
		emailOK := validate.Email("a" + s + "b@c").OK
		assert.Equal(t, present, emailOK, "rune %U: display name present=%v, email accepted=%v", r, present, emailOK)
	}
}

func TestLookup(t *testing.T) {
	fn, ok := validate.Lookup(validate.FieldEmail)
	require.True(t, ok)
	assert.True(t, fn("a@b.com").OK)

	fn, ok = validate.Lookup(validate.FieldPassword)
	require.True(t, ok)
	assert.Equal(t, validate.PasswordMessage, fn("").Message)

	_, ok = validate.Lookup(validate.FieldDisplayName)
	assert.False(t, ok, "display name is normalized, not validated")

	_, ok = validate.Lookup("username")
	assert.False(t, ok)
}
