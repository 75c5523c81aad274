package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"kissan-konnect-api/config"
	"kissan-konnect-api/models"
	"kissan-konnect-api/services"
	"kissan-konnect-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateApplication submits a new application for the authenticated farmer.
func CreateApplication(c *gin.Context) {
	type CreateApplicationRequest struct {
		ProgramID int     `json:"program_id" binding:"required"`
		CropID    int     `json:"crop_id" binding:"required"`
		Acreage   float64 `json:"acreage" binding:"required,gt=0"`
		Season    string  `json:"season" binding:"required,oneof=Kharif Rabi Zaid Any"`
	}

	var req CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := c.Get("userID")

	application, err := services.CreateApplication(services.CreateApplicationInput{
		UserID:    userID.(int),
		ProgramID: req.ProgramID,
		CropID:    req.CropID,
		Acreage:   req.Acreage,
		Season:    req.Season,
	})
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.Is(err, services.ErrConflict):
			c.JSON(http.StatusBadRequest, gin.H{"error": "You already have an application in progress for this program."})
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create application"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Application submitted successfully",
		"application": application,
	})
}

// GetApplications returns the authenticated farmer's applications.
func GetApplications(c *gin.Context) {
	userID, _ := c.Get("userID")

	var applications []models.Application
	if err := config.DB.Preload("Program").Preload("Crop").Preload("Documents").
		Where("user_id = ?", userID).
		Order("submitted_at DESC").
		Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch applications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": applications,
		"total":        len(applications),
	})
}

// GetApplication returns one application, 404 unless the caller owns it.
func GetApplication(c *gin.Context) {
	id := c.Param("id")
	userID, _ := c.Get("userID")

	var application models.Application
	if err := config.DB.Preload("Program").Preload("Crop").Preload("Documents").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("application_id = ? AND user_id = ?", id, userID).
		First(&application).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"application": application})
}

// UploadApplicationDocument stores a supporting file for an application the
// caller owns and records a document row pointing at it.
func UploadApplicationDocument(c *gin.Context) {
	id := c.Param("id")
	userID, _ := c.Get("userID")

	var application models.Application
	if err := config.DB.Where("application_id = ? AND user_id = ?", id, userID).
		First(&application).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	kind := utils.SanitizeInput(c.PostForm("kind"))
	if kind == "" {
		kind = models.KindOther
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	uploadPath := os.Getenv("UPLOAD_PATH")
	if uploadPath == "" {
		uploadPath = "./uploads"
	}
	if err := os.MkdirAll(uploadPath, os.ModePerm); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to prepare upload directory"})
		return
	}

	filename := fmt.Sprintf("app%d_%s_%s",
		application.ApplicationID,
		utils.SanitizeFilename(kind),
		utils.SanitizeFilename(file.Filename),
	)
	fullPath := filepath.Join(uploadPath, filename)

	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return
	}

	uid := userID.(int)
	appID := application.ApplicationID
	document := models.Document{
		Kind:          kind,
		FilePath:      fullPath,
		UserID:        &uid,
		ApplicationID: &appID,
		UploadedAt:    time.Now(),
	}

	if err := config.DB.Create(&document).Error; err != nil {
		// Remove the orphaned file if the row could not be written.
		os.Remove(fullPath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save document record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "path": fullPath, "document": document})
}

// UploadFile is the legacy generic upload endpoint: a timestamp-prefixed
// file under uploads/, not linked to any entity.
func UploadFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	uploadPath := os.Getenv("UPLOAD_PATH")
	if uploadPath == "" {
		uploadPath = "./uploads"
	}
	if err := os.MkdirAll(uploadPath, os.ModePerm); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
		return
	}

	filename := strconv.FormatInt(time.Now().UnixNano(), 10) + "_" + utils.SanitizeFilename(file.Filename)
	fullPath := filepath.Join(uploadPath, filename)

	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "File uploaded", "path": fullPath})
}
