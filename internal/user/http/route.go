package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers user CRUD routes. User endpoints carry no acting
// user header; accounts are managed directly by id.
func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	group := g.Group("/users")
	{
		group.POST("", h.Create)
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.PATCH("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
	}
}
