package controllers

import (
	"net/http"

	"github.com/ChurchPortal/models"
	"github.com/ChurchPortal/services"
	"github.com/gin-gonic/gin"
)

func GetServices(c *gin.Context) {
	list, err := services.ListServices(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hits": len(list), "services": list})
}

func CreateService(c *gin.Context) {
	var body models.ServiceCreate
	if !bindJSON(c, &body) {
		return
	}

	service, err := services.CreateService(c.Request.Context(), body, currentUser(c).User_ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Service created successfully", "service": service})
}

func GetService(c *gin.Context) {
	service, err := services.GetService(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"service": service})
}

func GetServiceAttendance(c *gin.Context) {
	report, err := services.GetServiceAttendance(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report})
}

func DeleteService(c *gin.Context) {
	service, err := services.DeleteService(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Service deleted successfully", "service": service})
}
