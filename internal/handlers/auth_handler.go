package handlers

import (
	"log/slog"
	"net/http"

	"seaside_restaurant/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	users services.UserService
	resp  responder
}

func NewAuthHandler(users services.UserService, log *slog.Logger) *AuthHandler {
	return &AuthHandler{users: users, resp: responder{log: log}}
}

type signUpRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

func (r signUpRequest) input() services.SignUpInput {
	return services.SignUpInput{
		Username:  r.Username,
		Email:     r.Email,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
		Address:   r.Address,
	}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req signUpRequest
	if !h.resp.bind(c, &req, "Invalid JSON data") {
		return
	}

	user, customer, err := h.users.SignUp(req.input())
	if err != nil {
		h.resp.fail(c, err, "Registration failed")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "User registered successfully",
		"user_id":     user.ID,
		"customer_id": customer.ID,
		"username":    user.Username,
		"email":       user.Email,
	})
}

func (h *AuthHandler) CreateAdmin(c *gin.Context) {
	var req signUpRequest
	if !h.resp.bind(c, &req, "Invalid JSON data") {
		return
	}

	user, err := h.users.CreateAdmin(req.input())
	if err != nil {
		h.resp.fail(c, err, "Registration failed")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "User registered successfully",
		"user_id":  user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if !h.resp.bind(c, &req, "Invalid JSON data") {
		return
	}

	user, customer, err := h.users.Login(req.Username, req.Password)
	if err != nil {
		h.resp.fail(c, err, "Login failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Login successful",
		"user_id":       user.ID,
		"username":      user.Username,
		"email":         user.Email,
		"first_name":    user.FirstName,
		"last_name":     user.LastName,
		"customer_id":   customer.ID,
		"customer_name": customer.Name,
		"phone":         customer.Phone,
		"address":       customer.Address,
	})
}

func (h *AuthHandler) OwnerLogin(c *gin.Context) {
	var req credentialsRequest
	if !h.resp.bind(c, &req, "Invalid JSON data") {
		return
	}

	user, err := h.users.OwnerLogin(req.Username, req.Password)
	if err != nil {
		h.resp.fail(c, err, "Login failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Login successful",
		"user_id":      user.ID,
		"username":     user.Username,
		"email":        user.Email,
		"first_name":   user.FirstName,
		"last_name":    user.LastName,
		"is_staff":     user.IsStaff,
		"is_superuser": user.IsSuperuser,
	})
}

// Logout only echoes; there is no server-side session to end.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req struct {
		Username *string `json:"username"`
	}
	if !h.resp.bind(c, &req, "Invalid JSON") {
		return
	}
	if req.Username == nil {
		h.resp.abort(c, http.StatusBadRequest, "Username is required")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if !h.resp.bind(c, &req, "Invalid JSON data") {
		return
	}

	result, err := h.users.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		h.resp.fail(c, err, "Failed to send reset email")
		return
	}

	switch {
	case result.Sent:
		c.JSON(http.StatusOK, gin.H{"message": "Password reset email sent successfully"})
	case result.Token != "":
		c.JSON(http.StatusOK, gin.H{
			"message":     "Email service not configured. Use this token for testing.",
			"reset_token": result.Token,
			"reset_link":  result.Link,
		})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "If the email exists, a password reset link has been sent"})
	}
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req struct {
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}
	if !h.resp.bind(c, &req, "Invalid JSON data") {
		return
	}

	if err := h.users.ResetPassword(req.Token, req.NewPassword); err != nil {
		h.resp.fail(c, err, "Password reset failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req struct {
		UserID          looseID `json:"user_id"`
		CurrentPassword *string `json:"current_password"`
		NewPassword     *string `json:"new_password"`
	}
	if !h.resp.bind(c, &req, "Invalid JSON data") {
		return
	}

	if req.UserID == "" || req.UserID == "0" {
		h.resp.abort(c, http.StatusUnauthorized, "User ID is required")
		return
	}
	if req.CurrentPassword == nil {
		h.resp.abort(c, http.StatusBadRequest, "current_password is required")
		return
	}
	if req.NewPassword == nil {
		h.resp.abort(c, http.StatusBadRequest, "new_password is required")
		return
	}
	userID, ok := req.UserID.Uint()
	if !ok {
		h.resp.abort(c, http.StatusUnauthorized, "User not found")
		return
	}

	if err := h.users.ChangePassword(userID, *req.CurrentPassword, *req.NewPassword); err != nil {
		h.resp.fail(c, err, "Password change failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}
