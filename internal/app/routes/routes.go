package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mwila/registra/internal/app/controllers"
	"github.com/mwila/registra/internal/app/models"
	"github.com/mwila/registra/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	adminController *controllers.AdminController,
	chatbotController *controllers.ChatbotController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// Health check
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
		auth.POST("/forgot-password", authController.ForgotPassword)
		auth.POST("/reset-password", authController.ResetPassword)
	}

	// --- Public Chatbot route ---
	chatbot := v1.Group("/chatbot")
	{
		chatbot.POST("/ask", chatbotController.Ask)
	}

	// --- Authenticated Routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	// Student routes
	student := authenticated.Group("/student")
	student.Use(authMiddleware.RoleRequired(models.RoleStudent))
	{
		student.GET("/dashboard", studentController.Dashboard)
		student.POST("/payments", studentController.UploadPayment)
		student.DELETE("/payments/:id", studentController.DeletePayment)
		student.GET("/files/:filename", studentController.GetFile)
	}

	// Admin routes
	admin := authenticated.Group("/admin")
	admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/dashboard", adminController.Dashboard)
		admin.POST("/payments/:id/approve", adminController.ApprovePayment)
		admin.POST("/payments/:id/reject", adminController.RejectPayment)
		admin.GET("/students", adminController.ListStudents)
		admin.GET("/students/:id", adminController.StudentDetail)
		admin.POST("/students/:id/slip", adminController.IssueSlip)
		admin.GET("/slips", adminController.ListSlips)
		admin.GET("/logs", adminController.Logs)
		admin.GET("/files/:filename", adminController.GetFile)
	}

	// Unanswered chatbot questions are an admin review surface
	chatbotAdmin := authenticated.Group("/chatbot")
	chatbotAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
	{
		chatbotAdmin.GET("/unanswered", chatbotController.Unanswered)
	}
}
