package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS answers browser preflights for the configured origins. An empty list
// or a "*" entry allows any origin; other origins get no Allow-Origin header
// and the browser blocks the response.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	permitidos := make(map[string]bool, len(allowedOrigins))
	cualquiera := len(allowedOrigins) == 0
	for _, o := range allowedOrigins {
		if o == "*" {
			cualquiera = true
		}
		permitidos[o] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		switch {
		case cualquiera:
			c.Header("Access-Control-Allow-Origin", "*")
		case origin != "" && permitidos[origin]:
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
		c.Header("Access-Control-Expose-Headers", "X-Request-ID")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
