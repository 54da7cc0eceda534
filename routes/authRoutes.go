package routes

import (
	"civicreport-be/auth"
	"civicreport-be/controllers"
	"civicreport-be/middlewares"

	"github.com/gin-gonic/gin"
)

// AuthRoutes sets up the authentication routes
func AuthRoutes(r *gin.Engine, ctrl *controllers.AuthController, authenticator auth.Authenticator) {
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/signup", ctrl.Signup)
		authGroup.POST("/login", ctrl.Login)
		authGroup.GET("/session", middlewares.AuthMiddleware(authenticator), ctrl.Session)
	}
}
