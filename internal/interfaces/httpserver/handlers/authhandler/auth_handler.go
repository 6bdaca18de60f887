package authhandler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"todo-server/internal/domain/user"
	"todo-server/internal/infrastructure/auth"
	"todo-server/internal/infrastructure/metrics"
	"todo-server/internal/interfaces/httpserver/requests/authrequests"
	"todo-server/internal/interfaces/httpserver/responses"
)

// AuthHandler serves registration and login, returning bearer tokens.
type AuthHandler struct {
	users  *user.Service
	tokens *auth.TokenService
	logger zerolog.Logger
}

func NewAuthHandler(users *user.Service, tokens *auth.TokenService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		users:  users,
		tokens: tokens,
		logger: logger.With().Str("handler", "auth").Logger(),
	}
}

// Register creates an account and signs the caller in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req authrequests.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Error(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	u, err := h.users.Register(c.Request.Context(), user.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		metrics.AuthRequestsTotal.WithLabelValues("register", "error").Inc()
		responses.HandleError(c, err)
		return
	}

	token, err := h.tokens.Issue(u.PublicID)
	if err != nil {
		metrics.AuthRequestsTotal.WithLabelValues("register", "error").Inc()
		responses.HandleError(c, err)
		return
	}

	metrics.AuthRequestsTotal.WithLabelValues("register", "ok").Inc()
	c.JSON(http.StatusCreated, responses.TokenResponse{
		AccessToken: token,
		TokenType:   auth.TokenType,
	})
}

// Login exchanges credentials for an access token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req authrequests.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Error(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	u, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		metrics.AuthRequestsTotal.WithLabelValues("login", "error").Inc()
		responses.HandleError(c, err)
		return
	}

	token, err := h.tokens.Issue(u.PublicID)
	if err != nil {
		metrics.AuthRequestsTotal.WithLabelValues("login", "error").Inc()
		responses.HandleError(c, err)
		return
	}

	metrics.AuthRequestsTotal.WithLabelValues("login", "ok").Inc()
	c.JSON(http.StatusOK, responses.TokenResponse{
		AccessToken: token,
		TokenType:   auth.TokenType,
	})
}
