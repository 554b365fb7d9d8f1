package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trivora/trivora/internal/models"
	"github.com/trivora/trivora/internal/service"
	"github.com/trivora/trivora/internal/session"
)

type AuthHandler struct {
	creds    *service.CredentialService
	sessions *session.Manager
}

func NewAuthHandler(creds *service.CredentialService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{creds: creds, sessions: sessions}
}

func (h *AuthHandler) SignupPage(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{"Username": currentUsername(c)})
}

// Signup handles user registration and logs the new user in.
func (h *AuthHandler) Signup(c *gin.Context) {
	var input models.RegisterRequest
	if err := c.ShouldBind(&input); err != nil {
		c.HTML(http.StatusBadRequest, "signup.html", gin.H{"Error": "All fields are required"})
		return
	}

	user, err := h.creds.Register(c.Request.Context(), input.Username, input.Email, input.Password)
	switch {
	case errors.Is(err, service.ErrConflict):
		c.HTML(http.StatusConflict, "signup.html", gin.H{"Error": "Email already exists!"})
		return
	case errors.Is(err, service.ErrInvalidInput):
		c.HTML(http.StatusBadRequest, "signup.html", gin.H{"Error": "All fields are required"})
		return
	case err != nil:
		c.String(http.StatusInternalServerError, "Failed to create user")
		return
	}

	if err := h.setSession(c, user); err != nil {
		c.String(http.StatusInternalServerError, "Failed to establish session")
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"Username": currentUsername(c)})
}

// Login handles user login
func (h *AuthHandler) Login(c *gin.Context) {
	var input models.LoginRequest
	if err := c.ShouldBind(&input); err != nil {
		c.HTML(http.StatusBadRequest, "login.html", gin.H{"Error": "Email and password are required"})
		return
	}

	user, err := h.creds.Authenticate(c.Request.Context(), input.Email, input.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{"Error": "Invalid Credentials!"})
		return
	}
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to log in")
		return
	}

	if err := h.setSession(c, user); err != nil {
		c.String(http.StatusInternalServerError, "Failed to establish session")
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// Logout clears the session cookie. Logging out twice is harmless.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) setSession(c *gin.Context, user *models.User) error {
	token, err := h.sessions.Issue(user)
	if err != nil {
		return err
	}
	c.SetCookie(session.CookieName, token, h.sessions.MaxAge(), "/", "", false, true)
	return nil
}
