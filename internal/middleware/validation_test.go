package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerRequest struct {
	FullName string `json:"fullName" validate:"required,min=1"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=50,password"`
}

func newJSONRequest(t *testing.T, body interface{}) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// Feature: teslo-catalog, Property 45: Required field validation works
func TestProperty_RequiredFieldValidationWorks(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("missing required fields are rejected", prop.ForAll(
		func(includeName, includeEmail, includePassword bool) bool {
			body := map[string]interface{}{}
			if includeName {
				body["fullName"] = "Jane Doe"
			}
			if includeEmail {
				body["email"] = "jane@example.com"
			}
			if includePassword {
				body["password"] = "Abc123"
			}

			var req registerRequest
			err := DecodeAndValidate(newJSONRequest(t, body), &req)

			if includeName && includeEmail && includePassword {
				return err == nil
			}
			return err != nil && len(FormatValidationErrors(err)) > 0
		},
		gen.Bool(),
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Feature: teslo-catalog, Property 46: Passwords without an uppercase letter are rejected
func TestProperty_PasswordNeedsUppercase(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("lowercase and digits only never pass", prop.ForAll(
		func(lower string, digit int) bool {
			password := lower + string(rune('0'+digit))
			err := ValidateRequest(&registerRequest{FullName: "A", Email: "a@b.co", Password: password})
			if err == nil {
				return false
			}
			for _, e := range FormatValidationErrors(err) {
				if e.Field == "password" {
					return true
				}
			}
			return false
		},
		gen.RegexMatch(`^[a-z]{6,20}$`),
		gen.IntRange(0, 9),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Feature: teslo-catalog, Property 47: Passwords with upper, lower and a digit pass
func TestProperty_StrongPasswordsPass(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("upper + lower + digit satisfies the password rule", prop.ForAll(
		func(upper, lower string, digit int) bool {
			password := upper + lower + string(rune('0'+digit))
			return ValidateRequest(&registerRequest{FullName: "A", Email: "a@b.co", Password: password}) == nil
		},
		gen.RegexMatch(`^[A-Z]{1,5}$`),
		gen.RegexMatch(`^[a-z]{5,20}$`),
		gen.IntRange(0, 9),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestPasswordRule_Examples(t *testing.T) {
	tests := []struct {
		password string
		valid    bool
	}{
		{"Abc123", true},
		{"Abcdef!", true},
		{"abcdef1", false},
		{"ABCDEF1", false},
		{"Abcdefg", false},
		{".Abc123", false},
		{"Aa1" + strings.Repeat("é", 34), true},
		{"Aa1" + strings.Repeat("é", 47), false},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			err := ValidateRequest(&registerRequest{FullName: "A", Email: "a@b.co", Password: tt.password})
			assert.Equal(t, tt.valid, err == nil, "err: %v", err)
		})
	}
}

func TestDecodeAndValidate_RejectsUnknownFields(t *testing.T) {
	body := map[string]interface{}{
		"fullName": "Jane Doe",
		"email":    "jane@example.com",
		"password": "Abc123",
		"role":     "ADMIN",
	}

	var req registerRequest
	err := DecodeAndValidate(newJSONRequest(t, body), &req)

	require.Error(t, err)
	assert.Empty(t, FormatValidationErrors(err))

	w := httptest.NewRecorder()
	RespondWithDecodeError(w, err)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown field")
}

func TestFormatValidationErrors_UsesJSONNames(t *testing.T) {
	err := ValidateRequest(&registerRequest{Email: "nope", Password: "Abc123"})
	require.Error(t, err)

	fields := map[string]string{}
	for _, e := range FormatValidationErrors(err) {
		fields[e.Field] = e.Message
	}

	assert.Equal(t, "This field is required", fields["fullName"])
	assert.Equal(t, "Invalid email format", fields["email"])
}

func TestDecodeAndValidate_MalformedJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json"))

	var out registerRequest
	err := DecodeAndValidate(req, &out)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid request body")
}
