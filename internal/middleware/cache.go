package middleware

import "github.com/gin-gonic/gin"

// NoStore marks responses as uncacheable. Roster state changes on every
// mark, so neither the API nor the exports may be served from a cache.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}
