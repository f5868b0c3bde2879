package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/quiz-history-api/internal/application"
	"github.com/oksasatya/quiz-history-api/pkg/helpers"
	"github.com/oksasatya/quiz-history-api/pkg/response"
)

type AuthHandler struct {
	Session *app.SessionService
	Cookies *helpers.Manager
	Logger  *logrus.Logger
}

func NewAuthHandler(session *app.SessionService, cookies *helpers.Manager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Session: session, Cookies: cookies, Logger: logger}
}

type signupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Name     string `json:"name" binding:"omitempty,max=100"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Signup POST /api/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.Session.Signup(c.Request.Context(), app.SignupInput{Email: req.Email, Password: req.Password, Name: req.Name})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.Cookies.SetToken(c, res.Token, res.ExpiresAt)
	response.JSON(c, http.StatusCreated, toAuthView(res), "account created")
}

// Login POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.Session.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.Cookies.SetToken(c, res.Token, res.ExpiresAt)
	response.JSON(c, http.StatusOK, toAuthView(res), "login successful")
}

// Logout POST /api/logout clears the cookie. Tokens stay valid until they expire.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.JSON(c, http.StatusOK, gin.H{"logged_out": true}, "logged out")
}
