package middlewares

import (
	"errors"
	"net/http"

	"github.com/ChurchPortal/models"
	"github.com/ChurchPortal/services"
	"github.com/gin-gonic/gin"
)

// CheckAdmin runs after CheckAuth and admits only admin accounts.
func CheckAdmin(c *gin.Context) {
	user, _ := c.Get("currentUser")
	account, _ := user.(models.User)

	if err := services.RequireAdmin(account); err != nil {
		if errors.Is(err, services.ErrForbidden) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"msg": err.Error()})
			return
		}
		c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"msg": "Failed to check access"})
		return
	}
	c.Next()
}
