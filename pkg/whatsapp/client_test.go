package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertPhoneNumber(t *testing.T) {
	tests := map[string]string{
		"9876543210":      "919876543210",
		"09876543210":     "919876543210",
		"+91 98765 43210": "919876543210",
		"12345":           "12345",
	}
	for in, want := range tests {
		assert.Equal(t, want, ConvertPhoneNumber(in), in)
	}
}

func TestClient_SendTextMessage(t *testing.T) {
	var got SendMessageRequest
	var user, pass string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wa/send/message", r.URL.Path)
		user, pass, _ = r.BasicAuth()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"code":"SUCCESS","message":"Success","results":{"message_id":"3EB0","status":"sent"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "bot", "secret", "/wa/")
	require.NoError(t, c.SendTextMessage(context.Background(), "9876543210", "Your order is out for delivery"))

	assert.Equal(t, "919876543210@s.whatsapp.net", got.Phone)
	assert.Equal(t, "Your order is out for delivery", got.Message)
	assert.Equal(t, "bot", user)
	assert.Equal(t, "secret", pass)
}

func TestClient_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad phone", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", "", "")
	err := c.SendTextMessage(context.Background(), "1", "hi")
	assert.ErrorContains(t, err, "400")
}
