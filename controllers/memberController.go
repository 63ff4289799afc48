package controllers

import (
	"net/http"

	"github.com/ChurchPortal/models"
	"github.com/ChurchPortal/services"
	"github.com/gin-gonic/gin"
)

func GetMembers(c *gin.Context) {
	members, err := services.ListMembers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hits": len(members), "members": members})
}

func CreateMember(c *gin.Context) {
	var body models.MemberCreate
	if !bindJSON(c, &body) {
		return
	}

	member, err := services.CreateMember(c.Request.Context(), body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Member created successfully", "member": member})
}

func GetMember(c *gin.Context) {
	member, err := services.GetMember(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"member": member})
}

func UpdateMember(c *gin.Context) {
	var body models.MemberUpdate
	if !bindJSON(c, &body) {
		return
	}

	member, err := services.UpdateMember(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Member updated successfully", "member": member})
}

func DeleteMember(c *gin.Context) {
	member, err := services.DeleteMember(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Member deleted successfully", "member": member})
}
