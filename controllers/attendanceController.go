package controllers

import (
	"net/http"

	"github.com/ChurchPortal/models"
	"github.com/ChurchPortal/services"
	"github.com/gin-gonic/gin"
)

func GetAttendanceRecords(c *gin.Context) {
	records, err := services.ListAttendance(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hits": len(records), "attendanceRecords": records})
}

// CreateAttendanceRecord records a check-in. A body with only member_id checks
// the member in at the current time.
func CreateAttendanceRecord(c *gin.Context) {
	var body models.AttendanceCreate
	if !bindJSON(c, &body) {
		return
	}

	record, err := services.RecordAttendance(c.Request.Context(), body, currentUser(c).User_ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Record created successfully", "attendanceRecord": record})
}

func GetAttendanceRecord(c *gin.Context) {
	record, err := services.GetAttendance(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attendanceRecord": record})
}

func CheckOutAttendanceRecord(c *gin.Context) {
	var body models.AttendanceCheckOut
	if c.Request.ContentLength != 0 && !bindJSON(c, &body) {
		return
	}

	record, err := services.CheckOut(c.Request.Context(), c.Param("id"), body.Check_Out)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Checked out successfully", "attendanceRecord": record})
}

func DeleteAttendanceRecord(c *gin.Context) {
	record, err := services.DeleteAttendance(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Record deleted successfully", "attendanceRecord": record})
}
