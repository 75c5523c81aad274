package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"kissan-konnect-api/config"
	"kissan-konnect-api/models"
	"kissan-konnect-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminListApplications returns every application, newest first, with an
// optional status filter.
func AdminListApplications(c *gin.Context) {
	var applications []models.Application
	query := config.DB.Preload("User").Preload("Program").Preload("Crop")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Order("submitted_at DESC").Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch applications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": applications,
		"total":        len(applications),
	})
}

// AdminApplicationDetails returns an application with its applicant,
// program, documents and full status history.
func AdminApplicationDetails(c *gin.Context) {
	id := c.Param("id")

	var application models.Application
	if err := config.DB.Preload("User").Preload("Program").Preload("Program.Crops").
		Preload("Crop").Preload("Documents").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("application_id = ?", id).
		First(&application).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"application": application})
}

// AdminUpdateStatus applies an admin status decision through the workflow
// gates. Every violated precondition comes back as its own 400 message.
func AdminUpdateStatus(c *gin.Context) {
	type StatusUpdateRequest struct {
		Status  string   `json:"status" binding:"required,oneof=pending under_review approved rejected"`
		Remarks *string  `json:"remarks"`
		Score   *float64 `json:"score"`
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	var req StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	adminID, _ := c.Get("userID")

	application, err := services.TransitionApplication(services.TransitionInput{
		ApplicationID: id,
		Target:        req.Status,
		Remarks:       req.Remarks,
		Score:         req.Score,
		AdminID:       adminID.(int),
	})
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "rule": verr.Rule})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Status updated",
		"application": application,
	})
}
