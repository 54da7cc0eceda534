package controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"civicreport-be/auth"
	"civicreport-be/controllers"
	"civicreport-be/kvstore"
	"civicreport-be/models"
	"civicreport-be/repository"
	"civicreport-be/routes"
	"civicreport-be/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := kvstore.NewMemoryStore()
	log := zerolog.Nop()
	authenticator := auth.NewJWTAuthenticator("test-secret")
	svc := services.NewAuthService(repository.NewUserRepository(store), authenticator, log)
	ctrl := controllers.NewAuthController(svc, log)

	r := gin.New()
	routes.AuthRoutes(r, ctrl, authenticator)
	return r
}

func TestSignupLoginSessionFlow(t *testing.T) {
	r := newAuthRouter(t)

	w := doRequest(t, r, http.MethodPost, "/api/auth/signup", "", map[string]any{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "hunter22",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var signupResp struct {
		Success bool            `json:"success"`
		User    models.Identity `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &signupResp))
	assert.True(t, signupResp.Success)
	assert.Equal(t, models.RoleCitizen, signupResp.User.Role)
	assert.NotEmpty(t, signupResp.User.ID)

	w = doRequest(t, r, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "alice@example.com",
		"password": "hunter22",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var loginResp struct {
		Success bool            `json:"success"`
		User    models.Identity `json:"user"`
		Token   string          `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))
	require.NotEmpty(t, loginResp.Token)
	assert.Equal(t, signupResp.User, loginResp.User)

	w = doRequest(t, r, http.MethodGet, "/api/auth/session", loginResp.Token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var sessionResp struct {
		User models.Identity `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sessionResp))
	assert.Equal(t, signupResp.User, sessionResp.User)
}

func TestSignupValidation(t *testing.T) {
	r := newAuthRouter(t)

	tests := []map[string]any{
		{"email": "alice@example.com", "password": "hunter22"},      // no name
		{"name": "Alice", "password": "hunter22"},                   // no email
		{"name": "Alice", "email": "not-an-email", "password": "hunter22"},
		{"name": "Alice", "email": "alice@example.com", "password": "short"},
	}
	for _, body := range tests {
		w := doRequest(t, r, http.MethodPost, "/api/auth/signup", "", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "%v", body)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	r := newAuthRouter(t)

	body := map[string]any{"name": "Alice", "email": "alice@example.com", "password": "hunter22"}
	w := doRequest(t, r, http.MethodPost, "/api/auth/signup", "", body)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodPost, "/api/auth/signup", "", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	r := newAuthRouter(t)

	w := doRequest(t, r, http.MethodPost, "/api/auth/signup", "", map[string]any{
		"name": "Alice", "email": "alice@example.com", "password": "hunter22",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "alice@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, r, http.MethodGet, "/api/auth/session", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
