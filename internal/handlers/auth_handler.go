package handlers

import (
	"net/http"
	"strings"

	"contacts_backend/internal/services"
	"contacts_backend/internal/services/dto"
	"contacts_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
	baseURL     string
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService, baseURL string) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
		baseURL:     baseURL,
	}
}

// linkHost is the base for links embedded in outgoing emails. Falls back
// to the request host when no public base URL is configured.
func (h *AuthHandler) linkHost(c *gin.Context) string {
	if h.baseURL != "" {
		return h.baseURL
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.authService.Signup(h.GetDB(c), &req, h.linkHost(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	tokens, err := h.authService.Login(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokens)
}

// Refresh expects the refresh token as a bearer credential.
func (h *AuthHandler) Refresh(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		h.HandleServiceError(c, apperrors.ErrInvalidToken)
		return
	}
	refreshToken := strings.TrimPrefix(authHeader, "Bearer ")

	tokens, err := h.authService.Refresh(h.GetDB(c), refreshToken)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokens)
}

func (h *AuthHandler) ConfirmEmail(c *gin.Context) {
	token := c.Param("token")

	message, err := h.authService.ConfirmEmail(h.GetDB(c), token)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

func (h *AuthHandler) RequestEmail(c *gin.Context) {
	var req dto.RequestEmailRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	message, err := h.authService.RequestEmail(h.GetDB(c), req.Email, h.linkHost(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}
