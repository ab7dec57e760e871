package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers item request routes. Every endpoint requires the
// acting user header. The static /all route is registered before /:id so the
// router keeps them apart.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, identityMiddleware gin.HandlerFunc) {
	group := g.Group("/requests")

	group.Use(identityMiddleware)
	{
		group.POST("", h.Create)
		group.GET("", h.ListOwn)
		group.GET("/all", h.ListOthers)
		group.GET("/:id", h.Get)
	}
}
