package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/salonflowpro/salon-api/internal/middleware"
)

func currentUserID(c *gin.Context) *uint {
	if v, ok := c.Get(middleware.ContextUserID); ok {
		if id, ok := v.(uint); ok {
			return &id
		}
	}
	return nil
}
