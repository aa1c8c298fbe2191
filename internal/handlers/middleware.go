package handlers

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"saferail/internal/ratelimit"

	"github.com/gin-gonic/gin"
)

const ctxUserID = "userId"

func (h *Handler) userIdMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	userId, err := h.services.ParseToken(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	// store in Gin context
	c.Set(ctxUserID, userId)
	c.Next()
}

// wsUserIdMiddleware guards websocket upgrades. Browsers cannot set headers
// on a websocket handshake, so ?token= is accepted when the header is absent.
func (h *Handler) wsUserIdMiddleware(c *gin.Context) {
	if c.GetHeader("Authorization") != "" {
		h.userIdMiddleware(c)
		return
	}
	token := c.Query("token")
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing token",
		})
		return
	}
	userId, err := h.services.ParseToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}
	c.Set(ctxUserID, userId)
	c.Next()
}

// userID reads the id stored by userIdMiddleware.
func userID(c *gin.Context) int {
	return c.GetInt(ctxUserID)
}

// accessLog writes one line per request. Bodies are never logged.
func (h *Handler) accessLog(c *gin.Context) {
	start := time.Now()
	c.Next()
	if h.log == nil {
		return
	}
	h.log.Infow("http_request",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"status", c.Writer.Status(),
		"latency", time.Since(start),
		"client_ip", c.ClientIP(),
	)
}

func (h *Handler) rateLimitByIP(rule ratelimit.Rule) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !h.allow(c, rule, c.ClientIP()) {
			return
		}
		c.Next()
	}
}

// allow consults the limiter and writes 429 when the key is over its limit.
// Limiter failures let the request through.
func (h *Handler) allow(c *gin.Context, rule ratelimit.Rule, key string) bool {
	d, err := h.opts.Limiter.Allow(c.Request.Context(), rule, key)
	if err != nil {
		if h.log != nil {
			h.log.Warnw("ratelimit_unavailable", "rule", rule.Name, "err", err)
		}
		return true
	}
	if d.Allowed {
		return true
	}
	secs := int(math.Ceil(d.RetryAfter.Seconds()))
	c.Header("Retry-After", strconv.Itoa(secs))
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
		"error":       "Too many attempts. Please try again later.",
		"retry_after": secs,
	})
	return false
}
