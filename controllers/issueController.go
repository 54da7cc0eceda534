package controllers

import (
	"net/http"

	"civicreport-be/middlewares"
	"civicreport-be/models"
	"civicreport-be/repository"
	"civicreport-be/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// IssueController exposes the issue service over HTTP. All handlers convert
// service errors into {"error": ...} responses via respondError; no error
// crosses the HTTP boundary unconverted.
type IssueController struct {
	svc *services.IssueService
	log zerolog.Logger
}

func NewIssueController(svc *services.IssueService, log zerolog.Logger) *IssueController {
	return &IssueController{svc: svc, log: log}
}

// CreateIssue handles the creation of a new issue
func (ctrl *IssueController) CreateIssue(c *gin.Context) {
	identity, ok := middlewares.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Type        string   `json:"type" binding:"required,max=100"`
		Location    string   `json:"location" binding:"required,max=200"`
		Description string   `json:"description" binding:"max=1000"`
		Latitude    *float64 `json:"latitude,omitempty"`
		Longitude   *float64 `json:"longitude,omitempty"`
		ImageURL    *string  `json:"imageUrl,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	issue, _, err := ctrl.svc.Create(c.Request.Context(), identity, services.CreateIssueInput{
		Type:        input.Type,
		Location:    input.Location,
		Description: input.Description,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		ImageURL:    input.ImageURL,
	})
	if err != nil {
		respondError(c, ctrl.log, err, "create issue")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "issue": issue})
}

// GetIssues returns all issues visible to the caller, newest first.
func (ctrl *IssueController) GetIssues(c *gin.Context) {
	identity, ok := middlewares.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	issues, err := ctrl.svc.List(c.Request.Context(), identity)
	if err != nil {
		respondError(c, ctrl.log, err, "list issues")
		return
	}
	if issues == nil {
		issues = []models.Issue{}
	}

	c.JSON(http.StatusOK, gin.H{"issues": issues})
}

// GetIssue retrieves a single issue by its ID.
func (ctrl *IssueController) GetIssue(c *gin.Context) {
	identity, ok := middlewares.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	issue, err := ctrl.svc.Get(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		respondError(c, ctrl.log, err, "get issue")
		return
	}

	c.JSON(http.StatusOK, gin.H{"issue": issue})
}

// UpdateIssue merges partial fields into an issue. Admin only.
func (ctrl *IssueController) UpdateIssue(c *gin.Context) {
	identity, ok := middlewares.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var fields repository.UpdateFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issue, err := ctrl.svc.Update(c.Request.Context(), identity, c.Param("id"), fields)
	if err != nil {
		respondError(c, ctrl.log, err, "update issue")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "issue": issue})
}

// DeleteIssue removes an issue. Admin only.
func (ctrl *IssueController) DeleteIssue(c *gin.Context) {
	identity, ok := middlewares.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := ctrl.svc.Delete(c.Request.Context(), identity, c.Param("id")); err != nil {
		respondError(c, ctrl.log, err, "delete issue")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetStats returns aggregate counts over the caller-visible issues.
func (ctrl *IssueController) GetStats(c *gin.Context) {
	identity, ok := middlewares.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	issueStats, err := ctrl.svc.Stats(c.Request.Context(), identity)
	if err != nil {
		respondError(c, ctrl.log, err, "get stats")
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": issueStats})
}
