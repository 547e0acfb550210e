package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/travelguru/travelguru/internal/logging"
	"github.com/travelguru/travelguru/internal/server/services"
)

// NewRouter wires the auth routes onto a gin engine. The refresh route is
// outside the bearer group: the refresh token authenticates itself and is
// checked against the session store by the service.
func NewRouter(svc *services.AuthService, logger logging.Logger) *gin.Engine {
	router := gin.New()
	router.Use(requestLogger(logger))
	router.Use(gin.Recovery())

	h := NewAuthHandler(svc, logger)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.GET("/refresh-token", h.Refresh)
		authGroup.POST("/password-reset-request", h.RequestPasswordReset)
		authGroup.POST("/reset-password", h.ResetPassword)

		protected := authGroup.Group("")
		protected.Use(bearerAuth(svc))
		{
			protected.GET("/validate-user", h.Validate)
			protected.PATCH("/update-user", h.UpdateUser)
			protected.POST("/delete-user", h.DeleteUser)
			protected.POST("/password-update", h.UpdatePassword)
		}
	}

	return router
}
