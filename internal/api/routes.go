package api

import (
	"github.com/gin-gonic/gin"

	"github.com/FurmanCenter/nyc-hotels/internal/database"
)

func SetupRoutes(router *gin.Engine, db *database.Database) {
	handler := NewHandler(db, nil)

	api := router.Group("/api")
	{
		api.GET("/hotels", handler.GetHotels)
		api.GET("/stats", handler.GetStats)
		api.GET("/boroughs/:borough", handler.GetBoroughStats)
	}
}
