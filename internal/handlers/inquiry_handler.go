package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"seaside_restaurant/internal/models"
	"seaside_restaurant/internal/services"

	"github.com/gin-gonic/gin"
)

type InquiryHandler struct {
	inquiries services.InquiryService
	resp      responder
}

func NewInquiryHandler(inquiries services.InquiryService, log *slog.Logger) *InquiryHandler {
	return &InquiryHandler{inquiries: inquiries, resp: responder{log: log, withSuccess: true}}
}

type inquiryRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func inquiryJSON(inquiry *models.Inquiry) gin.H {
	return gin.H{
		"id":         inquiry.ID,
		"name":       inquiry.Name,
		"phone":      inquiry.Phone,
		"email":      inquiry.Email,
		"message":    inquiry.Message,
		"status":     inquiry.Status,
		"created_at": isoTime(inquiry.CreatedAt),
		"updated_at": isoTime(inquiry.UpdatedAt),
	}
}

func (h *InquiryHandler) Create(c *gin.Context) {
	var req inquiryRequest
	if !h.resp.bind(c, &req, "Invalid JSON data") {
		return
	}

	inquiry, err := h.inquiries.Create(c.Request.Context(), services.InquiryInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		h.resp.fail(c, err, "Failed to submit inquiry")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"message":    "Thank you for your message! We will get back to you soon.",
		"inquiry_id": inquiry.ID,
	})
}

// List answers a bare array, newest first.
func (h *InquiryHandler) List(c *gin.Context) {
	inquiries, err := h.inquiries.List()
	if err != nil {
		h.resp.fail(c, err, "Failed to fetch inquiries")
		return
	}

	data := make([]gin.H, 0, len(inquiries))
	for i := range inquiries {
		data = append(data, inquiryJSON(&inquiries[i]))
	}
	c.JSON(http.StatusOK, data)
}

type inquiryStatusRequest struct {
	ID     looseID `json:"id"`
	Status string  `json:"status"`
}

func (h *InquiryHandler) UpdateStatus(c *gin.Context) {
	if !hasBody(c) {
		h.resp.abort(c, http.StatusBadRequest, "Request body is required")
		return
	}
	var req inquiryStatusRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		h.resp.abort(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	// A malformed id is treated like a missing one.
	id, _ := req.ID.Uint()
	inquiry, err := h.inquiries.UpdateStatus(id, strings.TrimSpace(req.Status))
	if err != nil {
		h.resp.fail(c, err, "Failed to update inquiry")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": inquiryJSON(inquiry)})
}
