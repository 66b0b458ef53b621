package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/db/dbtest"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewAuthHandler(dbtest.New(t), &config.Config{JWTSecret: "test-secret", TokenTTLHours: 2})
	h.emailDomainOK = func(context.Context, string) bool { return true }

	r := gin.New()
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	return r
}

func postJSON(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type authBody struct {
	Token string `json:"token"`
	User  struct {
		ID   uint   `json:"id"`
		Role string `json:"role"`
	} `json:"user"`
}

func TestRegisterThenLogin(t *testing.T) {
	r := newAuthRouter(t)

	w := postJSON(r, "/register", gin.H{"name": "Ana", "email": "Ana@Example.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var reg authBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))
	assert.Equal(t, models.RoleCustomer, reg.User.Role)

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(reg.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, float64(reg.User.ID), claims["sub"])
	assert.Equal(t, models.RoleCustomer, claims["role"])

	w = postJSON(r, "/register", gin.H{"name": "Ana", "email": "ana@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = postJSON(r, "/login", gin.H{"email": "ANA@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = postJSON(r, "/login", gin.H{"email": "ana@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(r, "/login", gin.H{"email": "nobody@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterValidation(t *testing.T) {
	r := newAuthRouter(t)

	w := postJSON(r, "/register", gin.H{"name": "Ana", "email": "not-an-email", "password": "secret1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(r, "/register", gin.H{"name": "Ana", "email": "ana@example.com", "password": "123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
