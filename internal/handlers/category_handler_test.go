package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryHandler_Lifecycle(t *testing.T) {
	s := newTestServer(t)

	w, body := s.post(t, "/create-categories", `{"name":"Starters","description":"Small plates"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	category := body["category"].(map[string]interface{})
	assert.Equal(t, "Starters", category["name"])

	w, body = s.post(t, "/create-categories", `{"name":"Starters"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["success"])

	w, body = s.post(t, "/delete-categories", `{"category_id":"1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `Category "Starters" status updated to inactive`, body["message"])

	_, body = s.get(t, "/categories")
	assert.Empty(t, body["categories"])
	_, body = s.get(t, "/deletedcategories/")
	assert.Len(t, body["categories"], 1)

	w, body = s.post(t, "/updatedeletedcategories", `{"category_id":1}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `Category "Starters" status updated to active`, body["message"])
}

func TestCategoryHandler_SetStatusErrors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		body    string
		status  int
		message string
	}{
		{`{}`, http.StatusBadRequest, "Category ID is required"},
		{`{"category_id":"abc"}`, http.StatusBadRequest, "Category ID must be a valid number"},
		{`{"category_id":42}`, http.StatusNotFound, "Category not found"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			w, body := s.post(t, "/delete-categories", tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.message, body["error"])
		})
	}
}
