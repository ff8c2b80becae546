package handlers

import (
	"net/http"
	"strings"

	"todo_service/internal/logger"
	"todo_service/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services       *service.Service
	log            *logger.Logger
	allowedOrigins []string
}

// NewHandler constructs a new HTTP handler with dependencies.
// CORS is enabled only when allowedOrigins is non-empty; "*" allows any origin.
func NewHandler(services *service.Service, log *logger.Logger, allowedOrigins ...string) *Handler {
	return &Handler{services: services, log: log, allowedOrigins: allowedOrigins}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger)
	if mw := h.corsMiddleware(); mw != nil {
		router.Use(mw)
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/", h.root)
	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerTodoRoutes(router)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	r.POST("/signup", h.signUp)
	r.POST("/login", h.login)
}

func (h *Handler) registerTodoRoutes(r *gin.Engine) {
	todos := r.Group("", h.authMiddleware)
	{
		todos.POST("/create", h.createTodo)
		todos.GET("/getAll", h.listTodos)
		todos.GET("/getAll/:id", h.getTodo)
		todos.PUT("/update/:id", h.updateTodo)
		todos.DELETE("/delete/:id", h.deleteTodo)
	}
}

func (h *Handler) corsMiddleware() gin.HandlerFunc {
	if len(h.allowedOrigins) == 0 {
		return nil
	}
	cfg := cors.DefaultConfig()
	cfg.AddAllowHeaders("Authorization")
	cfg.AddExposeHeaders(requestIDHeader)
	for _, o := range h.allowedOrigins {
		if strings.TrimSpace(o) == "*" {
			cfg.AllowAllOrigins = true
		}
	}
	if !cfg.AllowAllOrigins {
		cfg.AllowOrigins = h.allowedOrigins
	}
	if err := cfg.Validate(); err != nil {
		if h.log != nil {
			h.log.Errorw("cors_config_invalid", "err", err, "origins", h.allowedOrigins)
		}
		return nil
	}
	return cors.New(cfg)
}

// @Summary      Greeting
// @Tags         system
// @Produce      json
// @Success      200  {string}  string  "hello-world"
// @Router       / [get]
func (h *Handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, "hello-world")
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
