package handlers

import (
	"net/http"

	"recipeshare/internal/logger"
	"recipeshare/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
// Paths mirror the public API: flat, no version prefix.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Open endpoints
	router.POST("/signup", h.signUp)
	router.POST("/login", h.login)

	// Session-aware endpoints. The middleware resolves the cookie; each
	// handler decides its own 401 message.
	sess := router.Group("/", h.sessionMiddleware)
	{
		sess.GET("/check_session", h.checkSession)
		sess.DELETE("/logout", h.logout)
		sess.GET("/recipes", h.listRecipes)
		sess.POST("/recipes", h.createRecipe)
		sess.GET("/activity", h.getActivity)
		sess.GET("/ws", h.wsActivity)
	}

	return router
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
