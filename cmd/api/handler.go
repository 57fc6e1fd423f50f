package api

import (
	authDelivery "chorehub-backend/internal/auth/delivery"
	authRepo "chorehub-backend/internal/auth/repository"
	authUsecase "chorehub-backend/internal/auth/usecase"
	hhDelivery "chorehub-backend/internal/household/delivery"
	hhUsecase "chorehub-backend/internal/household/usecase"
	taskDelivery "chorehub-backend/internal/task/delivery"
	taskUsecase "chorehub-backend/internal/task/usecase"
	"chorehub-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase      authUsecase.AuthUsecase
	config           *config.Config
	authHandler      *authDelivery.AuthHandler
	householdHandler *hhDelivery.HouseholdHandler
	taskHandler      *taskDelivery.TaskHandler
}

func NewHandler(
	authUc authUsecase.AuthUsecase,
	householdUc hhUsecase.HouseholdUsecase,
	taskUc taskUsecase.TaskUsecase,
	fcmRepo authRepo.FCMTokenRepository,
	cfg *config.Config,
) *Handler {
	return &Handler{
		authUsecase:      authUc,
		config:           cfg,
		authHandler:      authDelivery.NewAuthHandler(authUc, fcmRepo),
		householdHandler: hhDelivery.NewHouseholdHandler(householdUc),
		taskHandler:      taskDelivery.NewTaskHandler(taskUc),
	}
}

func (h *Handler) Start(addr string) error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	// CORS middleware. Auth is JWT-based, so all origins are allowed.
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.authUsecase, h.authHandler, h.householdHandler, h.taskHandler)

	return r.Run(addr)
}
