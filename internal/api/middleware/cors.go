package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORSConfig holds the allowed-origin policy for browser clients.
type CORSConfig struct {
	AllowedOrigins  []string
	AllowAllOrigins bool
}

// CORS returns a middleware applying the configured origin policy. The chat
// widget is embedded on clinic sites, so the default deployment allows all
// origins without credentials.
func CORS(config CORSConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		switch {
		case config.AllowAllOrigins:
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		case originAllowed(origin, config.AllowedOrigins):
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		default:
			c.Next()
			return
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Origin, Authorization, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func originAllowed(origin string, allowed []string) bool {
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
	}
	return false
}
