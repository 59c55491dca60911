package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const signupBody = `{"email":"asha@example.com","password":"secret1","first_name":"Asha","last_name":"Nair","phone":"9876543210","address":"12 Beach Road"}`

func TestAuthHandler_SignUpThenLogin(t *testing.T) {
	s := newTestServer(t)

	w, body := s.post(t, "/signup", signupBody)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Asha Nair", body["username"])
	assert.NotZero(t, body["customer_id"])

	w, body = s.post(t, "/login/", `{"username":"asha@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Asha", body["first_name"])
	assert.Equal(t, "9876543210", body["phone"])
	assert.NotContains(t, body, "success")
}

func TestAuthHandler_Errors(t *testing.T) {
	s := newTestServer(t)
	_, _ = s.post(t, "/signup", signupBody)

	tests := []struct {
		name    string
		path    string
		body    string
		status  int
		message string
	}{
		{"malformed json", "/signup", `{"email":`, http.StatusBadRequest, "Invalid JSON data"},
		{"duplicate email", "/signup", `{"username":"other","email":"asha@example.com","password":"secret1","first_name":"A","last_name":"N","phone":"9876543211"}`, http.StatusBadRequest, "Email already registered"},
		{"wrong password", "/login", `{"username":"asha@example.com","password":"nope"}`, http.StatusUnauthorized, "Invalid username/email or password"},
		{"owner login needs flags", "/Owner-Login", `{"username":"Asha Nair","password":"secret1"}`, http.StatusUnauthorized, ""},
		{"logout without username", "/logout", `{}`, http.StatusBadRequest, "Username is required"},
		{"change password without user", "/change-password", `{"current_password":"a","new_password":"b"}`, http.StatusUnauthorized, "User ID is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := s.post(t, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.NotContains(t, body, "success")
			if tt.message != "" {
				assert.Equal(t, tt.message, body["error"])
			}
		})
	}
}

func TestAuthHandler_ForgotPassword(t *testing.T) {
	s := newTestServer(t)
	_, _ = s.post(t, "/signup", signupBody)

	w, body := s.post(t, "/forgot-password", `{"email":"ASHA@example.com"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Password reset email sent successfully", body["message"])
	require.Len(t, s.mail.sent, 1)
	assert.Equal(t, []string{"asha@example.com"}, s.mail.sent[0].To)

	w, body = s.post(t, "/forgot-password", `{"email":"nobody@example.com"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "If the email exists, a password reset link has been sent", body["message"])
	assert.Len(t, s.mail.sent, 1)
}
