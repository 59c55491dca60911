package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"seaside_restaurant/internal/logger"
	"seaside_restaurant/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadRequest(t *testing.T, field, name string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	return req
}

func TestUploadHandler(t *testing.T) {
	tests := []struct {
		name      string
		field     string
		content   []byte
		uploadErr error
		status    int
		wantError string
	}{
		{"stores the file", "file", []byte("jpeg bytes"), nil, http.StatusCreated, ""},
		{"missing file field", "image", []byte("x"), nil, http.StatusBadRequest, "No file provided in form-data"},
		{"too large", "file", make([]byte, 1024*1024+1), nil, http.StatusBadRequest, "File size exceeds 1 MB limit"},
		{"s3 error", "file", []byte("x"), &storage.APIError{Code: "AccessDenied", Message: "Access Denied"}, http.StatusInternalServerError, "S3 Error: AccessDenied - Access Denied"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			s.uploader.err = tt.uploadErr

			w := httptest.NewRecorder()
			s.router.ServeHTTP(w, uploadRequest(t, tt.field, "prawn.jpg", tt.content))
			assert.Equal(t, tt.status, w.Code)

			if tt.wantError != "" {
				assert.JSONEq(t, `{"error":"`+tt.wantError+`"}`, w.Body.String())
				assert.Empty(t, s.uploader.keys)
				return
			}
			assert.JSONEq(t, `{
				"file_name": "prawn.jpg",
				"s3_url": "https://bucket.s3.ap-south-1.amazonaws.com/dishes/prawn.jpg",
				"file_size": 10,
				"folder": "dishes/"
			}`, w.Body.String())
		})
	}
}

func TestUploadHandler_NotConfigured(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/upload", NewUploadHandler(nil, 1, logger.Discard().Logger).Upload)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest(t, "file", "a.png", []byte("x")))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
