package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers booking routes. Every endpoint requires the acting
// user header. The static /owner route is registered before /:id so the
// router keeps them apart.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, identityMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")

	group.Use(identityMiddleware)
	{
		group.POST("", h.Create)
		group.GET("", h.ListByBooker)
		group.GET("/owner", h.ListByOwner)
		group.GET("/:id", h.Get)
		group.PATCH("/:id", h.Approve)
	}
}
