package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hmchef/hmchef/internal/service"
)

// AuthHandler serves the form-encoded login and registration endpoints.
// Responses carry either access_token or detail, which is all the client
// inspects.
type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	username, password, ok := credentials(c)
	if !ok {
		return
	}

	token, err := h.auth.Login(username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid username or password"})
			return
		}
		log.Printf("login failed for %s: %v", username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token})
}

func (h *AuthHandler) Register(c *gin.Context) {
	username, password, ok := credentials(c)
	if !ok {
		return
	}

	token, err := h.auth.Register(username, password)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Username is already taken"})
			return
		}
		log.Printf("registration failed for %s: %v", username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Registration failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"access_token": token})
}

func credentials(c *gin.Context) (username, password string, ok bool) {
	username = c.PostForm("username")
	password = c.PostForm("password")
	if username == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "username and password are required"})
		return "", "", false
	}
	return username, password, true
}
