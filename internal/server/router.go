package server

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Deps collects everything the router needs. The same store value may back
// several interfaces (MemStore does).
type Deps struct {
	Products   ProductStore
	Categories CategoryStore
	Users      UserStore
	History    LoginHistoryStore
	Tokens     *TokenManager
	Log        *logrus.Logger
}

// NewRouter builds the gin engine serving the admin API contract under
// /api. Login is open; products, categories and login history require a
// bearer token.
func NewRouter(deps Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(deps.Log))

	api := router.Group("/api")
	authed := api.Group("/")
	authed.Use(AuthMiddleware(deps.Tokens, deps.Log))

	authHandler := NewAuthHandler(deps.Users, deps.History, deps.Tokens, deps.Log)
	authHandler.RegisterRoutes(api, authed)

	productHandler := NewProductHandler(deps.Products, deps.Categories, deps.Log)
	productHandler.RegisterRoutes(authed)

	return router
}
