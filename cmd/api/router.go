package api

import (
	"net/http"

	authDelivery "chorehub-backend/internal/auth/delivery"
	authUsecase "chorehub-backend/internal/auth/usecase"
	hhDelivery "chorehub-backend/internal/household/delivery"
	taskDelivery "chorehub-backend/internal/task/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	r *gin.Engine,
	authUc authUsecase.AuthUsecase,
	authHandler *authDelivery.AuthHandler,
	householdHandler *hhDelivery.HouseholdHandler,
	taskHandler *taskDelivery.TaskHandler,
) {
	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", authDelivery.AuthMiddleware(authUc), authHandler.Me)
			auth.PUT("/preferences", authDelivery.AuthMiddleware(authUc), authHandler.UpdatePreferences)
		}

		// FCM routes (protected)
		fcm := api.Group("/fcm")
		fcm.Use(authDelivery.AuthMiddleware(authUc))
		{
			fcm.POST("/register", authHandler.RegisterFCMToken)
			fcm.DELETE("/:token", authHandler.UnregisterFCMToken)
		}

		// Household routes (protected)
		households := api.Group("/households")
		households.Use(authDelivery.AuthMiddleware(authUc))
		{
			households.GET("", householdHandler.GetHouseholds)
			households.POST("", householdHandler.CreateHousehold)
			households.GET("/invites", householdHandler.GetPendingInvites)
			households.POST("/:id/invite", householdHandler.InviteMember)
			households.POST("/:id/accept", householdHandler.AcceptInvite)
			households.POST("/:id/decline", householdHandler.DeclineInvite)
			households.DELETE("/:id/members/:userId", householdHandler.RemoveMember)
		}

		// Category routes (protected)
		categories := api.Group("/categories")
		categories.Use(authDelivery.AuthMiddleware(authUc))
		{
			categories.GET("", householdHandler.GetCategories)
			categories.POST("", householdHandler.CreateCategory)
			categories.DELETE("/:id", householdHandler.DeleteCategory)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(authDelivery.AuthMiddleware(authUc))
		{
			tasks.GET("", taskHandler.GetTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/archived", taskHandler.GetArchivedTasks)
			tasks.GET("/statistics", taskHandler.GetStatistics)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}
	}
}
