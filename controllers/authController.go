package controllers

import (
	"net/http"

	"civicreport-be/middlewares"
	"civicreport-be/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AuthController exposes the token-issuing collaborator over HTTP.
type AuthController struct {
	svc *services.AuthService
	log zerolog.Logger
}

func NewAuthController(svc *services.AuthService, log zerolog.Logger) *AuthController {
	return &AuthController{svc: svc, log: log}
}

// Signup handles user registration
func (ctrl *AuthController) Signup(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required,max=50"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		Role     string `json:"role,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	user, err := ctrl.svc.Register(c.Request.Context(), services.RegisterInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Role:     input.Role,
	})
	if err != nil {
		respondError(c, ctrl.log, err, "signup")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user.AsIdentity()})
}

// Login handles user login
func (ctrl *AuthController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing email or password"})
		return
	}

	user, token, err := ctrl.svc.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondError(c, ctrl.log, err, "login")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user.AsIdentity(),
		"token":   token,
	})
}

// Session returns the identity behind the presented credential.
func (ctrl *AuthController) Session(c *gin.Context) {
	identity, ok := middlewares.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": identity})
}
