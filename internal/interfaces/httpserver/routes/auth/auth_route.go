package auth

import (
	"github.com/gin-gonic/gin"

	"todo-server/internal/interfaces/httpserver/handlers/authhandler"
)

// AuthRoute wires the public authentication endpoints.
type AuthRoute struct {
	authHandler *authhandler.AuthHandler
}

func NewAuthRoute(authHandler *authhandler.AuthHandler) *AuthRoute {
	return &AuthRoute{authHandler: authHandler}
}

// RegisterRouter registers routes on the public router.
func (r *AuthRoute) RegisterRouter(router gin.IRouter) {
	group := router.Group("/auth")
	group.POST("/register", r.authHandler.Register)
	group.POST("/login", r.authHandler.Login)
}
