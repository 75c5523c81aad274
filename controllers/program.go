package controllers

import (
	"net/http"
	"strconv"

	"kissan-konnect-api/config"
	"kissan-konnect-api/models"
	"kissan-konnect-api/services"

	"github.com/gin-gonic/gin"
)

// GetPrograms lists active programs, with optional crop and season filters,
// ordered by title.
func GetPrograms(c *gin.Context) {
	query := config.DB.Model(&models.Program{}).Where("is_active = ?", true)

	if cropID := c.Query("crop_id"); cropID != "" {
		query = query.
			Joins("JOIN program_crops ON program_crops.program_id = programs.program_id").
			Where("program_crops.crop_id = ?", cropID)
	}
	if season := c.Query("season"); season != "" && season != models.SeasonAny {
		query = query.Where("season = ?", season)
	}

	var programs []models.Program
	if err := query.Order("title ASC").Find(&programs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch programs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"programs": programs})
}

// GetProgram returns a single program with its crops.
func GetProgram(c *gin.Context) {
	id := c.Param("id")

	var program models.Program
	if err := config.DB.Preload("Crops").
		Where("program_id = ?", id).
		First(&program).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Program not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"program": program})
}

// MatchProgramsForMe runs the eligibility filter for the authenticated
// farmer. The land size defaults to the user's first registered farm when
// the query parameter is absent.
func MatchProgramsForMe(c *gin.Context) {
	userID, _ := c.Get("userID")

	var cropID *int
	if raw := c.Query("crop_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid crop_id"})
			return
		}
		cropID = &id
	}

	var landSize *float64
	if raw := c.Query("land_size"); raw != "" {
		size, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid land_size"})
			return
		}
		landSize = &size
	} else {
		var farm models.Farm
		if err := config.DB.Where("user_id = ?", userID).
			Order("farm_id ASC").First(&farm).Error; err == nil {
			landSize = &farm.LandSizeAcres
		}
	}

	season := c.Query("season")

	programs, err := services.EligiblePrograms(cropID, landSize, season)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to match programs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"programs": programs,
		"total":    len(programs),
	})
}
