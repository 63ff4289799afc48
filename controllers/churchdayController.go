package controllers

import (
	"net/http"

	"github.com/ChurchPortal/models"
	"github.com/ChurchPortal/services"
	"github.com/gin-gonic/gin"
)

func GetChurchdays(c *gin.Context) {
	days, err := services.ListChurchdays(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hits": len(days), "churchdays": days})
}

func CreateChurchday(c *gin.Context) {
	var body models.ChurchdayCreate
	if !bindJSON(c, &body) {
		return
	}

	day, err := services.CreateChurchday(c.Request.Context(), body, currentUser(c).User_ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Church day created successfully", "churchday": day})
}

func GetChurchday(c *gin.Context) {
	ctx := c.Request.Context()
	day, err := services.GetChurchday(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	report, err := services.GetChurchdayAttendance(ctx, day.Churchday_ID)
	if err != nil {
		respondError(c, err)
		return
	}
	day.Recorded_Attendance = report.Recorded_Attendance
	c.JSON(http.StatusOK, gin.H{"churchday": day})
}

func GetChurchdayAttendance(c *gin.Context) {
	ctx := c.Request.Context()
	day, err := services.GetChurchday(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	report, err := services.GetChurchdayAttendance(ctx, day.Churchday_ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report})
}

// DeleteChurchday leaves services that reference the day untouched.
func DeleteChurchday(c *gin.Context) {
	day, err := services.DeleteChurchday(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Church day deleted successfully", "churchday": day})
}
