package controllers

import (
	"net/http"

	"github.com/ChurchPortal/initializers"
	"github.com/ChurchPortal/models"
	"github.com/ChurchPortal/services"
	"github.com/gin-gonic/gin"
)

func Register(c *gin.Context) {
	var body models.Register
	if !bindJSON(c, &body) {
		return
	}

	user, err := services.Register(c.Request.Context(), body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"msg":               "Account created. Check your email to verify your account.",
		"user":              user.TokenUser(),
		"verificationToken": user.Verification_Token,
	})
}

func VerifyEmail(c *gin.Context) {
	var body models.VerifyEmailRequest
	if !bindJSON(c, &body) {
		return
	}

	user, err := services.VerifyEmail(c.Request.Context(), body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Email verified", "user": user.TokenUser()})
}

func Login(c *gin.Context) {
	var body models.Login
	if !bindJSON(c, &body) {
		return
	}

	sess, err := services.Login(c.Request.Context(), body)
	if err != nil {
		respondError(c, err)
		return
	}

	maxAge := int(initializers.Config.SessionTTL.Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(services.TokenCookie, sess.Token, maxAge, "/", "", initializers.Config.IsProduction(), true)

	c.JSON(http.StatusOK, gin.H{
		"msg":   "Logged in successfully",
		"user":  sess.User.TokenUser(),
		"token": sess.Token,
	})
}

func Logout(c *gin.Context) {
	if sid := c.GetString("sessionID"); sid != "" {
		if err := services.Logout(c.Request.Context(), sid); err != nil {
			respondError(c, err)
			return
		}
	}

	c.SetCookie(services.TokenCookie, "", -1, "/", "", initializers.Config.IsProduction(), true)
	c.JSON(http.StatusOK, gin.H{"msg": "Logged out successfully"})
}

func GetCurrentUser(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user":  currentUser(c).TokenUser(),
		"admin": c.GetBool("admin"),
	})
}
