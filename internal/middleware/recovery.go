package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery returns a middleware that turns a panic into a 500 INTERNAL_ERROR
// response and logs it with the stack.
func Recovery(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			logger.Errorw("panic recovered",
				"error", rec,
				"request_id", RequestID(c),
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"stack", string(debug.Stack()),
			)
			abortWithError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}()

		c.Next()
	}
}

func abortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
