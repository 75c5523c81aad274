package controllers

import (
	"net/http"
	"time"

	"kissan-konnect-api/config"
	"kissan-konnect-api/middleware"
	"kissan-konnect-api/models"
	"kissan-konnect-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// refreshTokenRepo is swapped for a fake in tests, mirroring how
// passwordResetRepo is injected.
var refreshTokenRepo refreshTokenRepository = &gormRefreshTokenRepository{}

type refreshTokenRepository interface {
	UserByID(id int) (*models.User, error)
	ActiveRefreshToken(token string) (*models.UserToken, error)
	CreateRefreshToken(row *models.UserToken) error
	RotateRefreshToken(oldTokenID int, newRow *models.UserToken, now time.Time) error
}

type gormRefreshTokenRepository struct{}

func (r *gormRefreshTokenRepository) UserByID(id int) (*models.User, error) {
	var user models.User
	if err := config.DB.First(&user, "user_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *gormRefreshTokenRepository) ActiveRefreshToken(token string) (*models.UserToken, error) {
	var row models.UserToken
	if err := config.DB.Where("token = ? AND token_type = ? AND revoked = ?",
		token, models.TokenTypeRefresh, false).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *gormRefreshTokenRepository) CreateRefreshToken(row *models.UserToken) error {
	return config.DB.Create(row).Error
}

// RotateRefreshToken revokes the redeemed row and stores its replacement in
// one transaction, so a failure leaves the presented token usable.
func (r *gormRefreshTokenRepository) RotateRefreshToken(oldTokenID int, newRow *models.UserToken, now time.Time) error {
	return config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.UserToken{}).
			Where("token_id = ?", oldTokenID).
			Updates(map[string]interface{}{"revoked": true, "updated_at": now}).Error; err != nil {
			return err
		}
		return tx.Create(newRow).Error
	})
}

type RegisterRequest struct {
	Name     string  `json:"name" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required"`
	Phone    string  `json:"phone" binding:"required"`
	Gender   *string `json:"gender"`
	Dob      *string `json:"dob"`
	State    string  `json:"state" binding:"required"`
	District string  `json:"district" binding:"required"`
	Aadhar   *string `json:"aadhar"`
	DocPath  *string `json:"doc_path"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	TokenType    string      `json:"token_type"`
	User         models.User `json:"user"`
}

// Register creates a farmer account.
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !utils.ValidatePhone(req.Phone) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone must be a valid 10-digit mobile number"})
		return
	}
	if req.Aadhar != nil && *req.Aadhar != "" && !utils.ValidateAadhar(*req.Aadhar) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aadhaar must be a 12-digit number"})
		return
	}
	if valid, message := utils.ValidatePassword(req.Password); !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": message})
		return
	}

	// Duplicate checks before insert
	var existing models.User
	if err := config.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
		return
	}
	if req.Aadhar != nil && *req.Aadhar != "" {
		if err := config.DB.Where("aadhar = ?", *req.Aadhar).First(&existing).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Aadhaar already registered"})
			return
		}
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	phone := req.Phone
	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        &phone,
		PasswordHash: hash,
		Gender:       req.Gender,
		Dob:          req.Dob,
		State:        req.State,
		District:     req.District,
		Aadhar:       req.Aadhar,
		DocPath:      req.DocPath,
		Role:         models.RoleFarmer,
		CreatedAt:    time.Now(),
	}

	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User creation failed due to duplicate or invalid data"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// Login authenticates either role and returns an access/refresh pair.
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	pair, err := issueTokenPair(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	now := time.Now()
	user.LastLogin = &now
	config.DB.Model(&models.User{}).Where("user_id = ?", user.UserID).Update("last_login", now)

	c.JSON(http.StatusOK, pair)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshToken rotates a refresh token: the presented token is revoked and
// a fresh pair is issued. A revoked or unknown token is rejected, so a
// token can only ever be redeemed once.
func RefreshToken(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token is required"})
		return
	}

	claims, err := middleware.Tokens.Decode(req.RefreshToken)
	if err != nil || claims.TokenType != "refresh" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}

	tokenRow, err := refreshTokenRepo.ActiveRefreshToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}

	user, err := refreshTokenRepo.UserByID(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}

	pair, row, err := buildTokenPair(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	if err := refreshTokenRepo.RotateRefreshToken(tokenRow.TokenID, row, time.Now()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rotate token"})
		return
	}

	c.JSON(http.StatusOK, pair)
}

// GetProfile returns the authenticated user's profile.
func GetProfile(c *gin.Context) {
	userID, _ := c.Get("userID")

	var user models.User
	if err := config.DB.Where("user_id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// issueTokenPair signs an access/refresh pair and persists the refresh row.
func issueTokenPair(user *models.User) (*TokenResponse, error) {
	pair, row, err := buildTokenPair(user)
	if err != nil {
		return nil, err
	}
	if err := refreshTokenRepo.CreateRefreshToken(row); err != nil {
		return nil, err
	}
	return pair, nil
}

// buildTokenPair signs the pair and prepares the unsaved refresh row; the
// caller decides whether it is stored plainly (login) or as part of a
// rotation.
func buildTokenPair(user *models.User) (*TokenResponse, *models.UserToken, error) {
	access, err := middleware.Tokens.IssueAccessToken(user.UserID, user.Role)
	if err != nil {
		return nil, nil, err
	}

	refresh, expiresAt, err := middleware.Tokens.IssueRefreshToken(user.UserID)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	row := models.UserToken{
		UserID:    user.UserID,
		TokenType: models.TokenTypeRefresh,
		Token:     refresh,
		ExpiresAt: expiresAt,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return &TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		User:         *user,
	}, &row, nil
}
