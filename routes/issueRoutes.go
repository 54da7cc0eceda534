package routes

import (
	"civicreport-be/auth"
	"civicreport-be/controllers"
	"civicreport-be/middlewares"

	"github.com/gin-gonic/gin"
)

// IssueRoutes sets up the issue routes. rateLimiter may be nil when no
// Redis-backed limiter is configured.
func IssueRoutes(r *gin.Engine, ctrl *controllers.IssueController, authenticator auth.Authenticator, rateLimiter gin.HandlerFunc) {
	api := r.Group("/api", middlewares.AuthMiddleware(authenticator))
	{
		if rateLimiter != nil {
			api.POST("/issues", rateLimiter, ctrl.CreateIssue)
		} else {
			api.POST("/issues", ctrl.CreateIssue)
		}
		api.GET("/issues", ctrl.GetIssues)
		api.GET("/issues/:id", ctrl.GetIssue)
		api.PUT("/issues/:id", ctrl.UpdateIssue)
		api.DELETE("/issues/:id", ctrl.DeleteIssue)
		api.GET("/stats", ctrl.GetStats)
	}
}
