package middleware

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"unihop/internal/redis"
)

const idempotencyHeader = "Idempotency-Key"

// responseWriter wraps gin.ResponseWriter to capture the response body.
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware returns middleware that replays cached responses
// for mutating requests re-sent with the same Idempotency-Key. Webhook
// redeliveries that carry the provider's delivery ID as the key are
// answered without reprocessing the job.
func IdempotencyMiddleware(cache *redis.ResponseCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		key := c.GetHeader(idempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()

		cached, err := cache.Get(ctx, key)
		if err != nil {
			// Redis is degraded; reprocessing is safe because the
			// reconciler and invoice sync are idempotent on their own.
			c.Next()
			return
		}

		if cached != nil {
			c.Data(cached.StatusCode, "application/json", cached.Body)
			c.Abort()
			return
		}

		w := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = w

		c.Next()

		// Server errors are not cached so redelivery can retry them.
		if c.Writer.Status() >= 200 && c.Writer.Status() < 500 {
			_ = cache.Set(ctx, key, &redis.CachedResponse{
				StatusCode: c.Writer.Status(),
				Body:       w.body.Bytes(),
			})
		}
	}
}
