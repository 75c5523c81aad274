package controllers

import (
	"net/http"

	"kissan-konnect-api/config"
	"kissan-konnect-api/models"
	"kissan-konnect-api/utils"

	"github.com/gin-gonic/gin"
)

// GetUser returns a user's profile by id.
func GetUser(c *gin.Context) {
	id := c.Param("id")

	var user models.User
	if err := config.DB.Where("user_id = ?", id).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateUser applies a partial profile update over an allowlist of fields.
func UpdateUser(c *gin.Context) {
	type UserUpdateRequest struct {
		Name     *string `json:"name"`
		Phone    *string `json:"phone"`
		Gender   *string `json:"gender"`
		Dob      *string `json:"dob"`
		State    *string `json:"state"`
		District *string `json:"district"`
		DocPath  *string `json:"doc_path"`
	}

	id := c.Param("id")

	var user models.User
	if err := config.DB.Where("user_id = ?", id).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var req UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = utils.SanitizeInput(*req.Name)
	}
	if req.Phone != nil {
		if !utils.ValidatePhone(*req.Phone) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Phone must be a valid 10-digit mobile number"})
			return
		}
		updates["phone"] = *req.Phone
	}
	if req.Gender != nil {
		updates["gender"] = *req.Gender
	}
	if req.Dob != nil {
		updates["dob"] = *req.Dob
	}
	if req.State != nil {
		updates["state"] = *req.State
	}
	if req.District != nil {
		updates["district"] = *req.District
	}
	if req.DocPath != nil {
		updates["doc_path"] = *req.DocPath
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No data provided to update"})
		return
	}

	if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	config.DB.Where("user_id = ?", id).First(&user)
	c.JSON(http.StatusOK, gin.H{"user": user})
}
