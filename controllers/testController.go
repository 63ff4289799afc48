package controllers

import (
	"net/http"

	"github.com/ChurchPortal/services"
	"github.com/gin-gonic/gin"
)

// TestEmailService sends a test message so an admin can check email delivery.
func TestEmailService(c *gin.Context) {
	type TestEmailRequest struct {
		Email string `json:"email" binding:"required,email"`
	}

	var req TestEmailRequest
	if !bindJSON(c, &req) {
		return
	}

	emailService := services.GetEmailService()
	if emailService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"msg": "Email service is not initialized. Check RESEND_API_KEY.",
		})
		return
	}

	if err := emailService.SendTestEmail(req.Email); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"msg": "Failed to send test email", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Test email sent successfully", "email": req.Email})
}
