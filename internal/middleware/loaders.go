package middleware

import (
	"gareddit/internal/loader"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const LoadersKey = "loaders"

// Loaders attaches a fresh loader bundle to each request. The bundle's caches
// live exactly as long as the request; nothing is shared across requests.
func Loaders(conn *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(LoadersKey, loader.NewBundle(conn))
		c.Next()
	}
}

// GetLoaders returns the request's loader bundle.
func GetLoaders(c *gin.Context) *loader.Bundle {
	return c.MustGet(LoadersKey).(*loader.Bundle)
}
