package routes

import (
	"kissan-konnect-api/controllers"
	"kissan-konnect-api/middleware"
	"kissan-konnect-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// Authentication
	auth := router.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/refresh", controllers.RefreshToken)
		auth.POST("/forgot-password", controllers.ForgotPassword)
		auth.POST("/reset-password", controllers.ResetPassword)
		auth.GET("/me", middleware.AuthMiddleware(), controllers.GetProfile)
	}

	// Programs (public read, eligibility match requires auth)
	programs := router.Group("/programs")
	{
		programs.GET("", controllers.GetPrograms)
		programs.GET("/:id", controllers.GetProgram)
		programs.GET("/match/me", middleware.AuthMiddleware(), controllers.MatchProgramsForMe)
	}

	// Applications
	applications := router.Group("/applications")
	applications.Use(middleware.AuthMiddleware())
	{
		// Farmer-scoped routes; ownership is enforced inside the handlers
		applications.POST("", middleware.RequireRole(models.RoleFarmer), controllers.CreateApplication)
		applications.GET("", controllers.GetApplications)
		applications.GET("/:id", controllers.GetApplication)
		applications.POST("/:id/documents", controllers.UploadApplicationDocument)

		// Admin review routes
		admin := applications.Group("/admin", middleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("/list", controllers.AdminListApplications)
			admin.GET("/:id/details", controllers.AdminApplicationDetails)
			admin.POST("/:id/status", controllers.AdminUpdateStatus)
		}
	}

	// Users
	users := router.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("/:id", controllers.GetUser)
		users.PUT("/:id", controllers.UpdateUser)
	}

	// Legacy unscoped upload
	router.POST("/upload", middleware.AuthMiddleware(), controllers.UploadFile)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
}
