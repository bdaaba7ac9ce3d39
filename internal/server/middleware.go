package server

import (
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ncobase/example-api/config"
	"github.com/ncobase/example-api/consts"
	"github.com/ncobase/example-api/ctxutil"
	"github.com/ncobase/example-api/logging/observes"
	"github.com/ncobase/example-api/net/resp"
)

// TraceHeader carries the request trace id in both directions
const TraceHeader = consts.TraceKey

func corsMiddleware(c *config.Cors) gin.HandlerFunc {
	if c == nil {
		return cors.New(cors.Config{
			AllowAllOrigins: true,
			AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:    []string{"Origin", "Content-Type", "Accept", TraceHeader},
			ExposeHeaders:   []string{TraceHeader, consts.TotalKey},
		})
	}

	cc := cors.Config{
		AllowMethods:     c.AllowMethods,
		AllowHeaders:     c.AllowHeaders,
		ExposeHeaders:    c.ExposeHeaders,
		AllowCredentials: c.AllowCredentials,
		MaxAge:           c.MaxAge,
	}
	if len(c.AllowOrigins) == 0 || slices.Contains(c.AllowOrigins, "*") {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = c.AllowOrigins
	}
	return cors.New(cc)
}

// traceMiddleware reuses an inbound trace id or mints one and echoes it back
func traceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := ctxutil.WithGinContext(c.Request.Context(), c)
		if id := c.GetHeader(TraceHeader); id != "" {
			ctx = ctxutil.SetTraceID(ctx, id)
		}
		ctx, traceID := ctxutil.EnsureTraceID(ctx)
		ctx = ctxutil.SetClientInfo(ctx, ctxutil.ClientIP(c), c.Request.UserAgent())

		c.Request = c.Request.WithContext(ctx)
		c.Header(TraceHeader, traceID)
		c.Next()
	}
}

func (s *Server) loggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		s.logger.Info(c.Request.Context(), "HTTP request",
			"method", method,
			"path", path,
			"status", status,
			"duration", duration.String(),
			"ip", ctxutil.GetClientIP(c.Request.Context()),
		)
	}
}

func (s *Server) recoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		ctx := c.Request.Context()
		observes.CapturePanic(ctx, recovered)
		s.logger.Error(ctx, "Panic recovered", "panic", fmt.Sprint(recovered), "path", c.Request.URL.Path)
		resp.Fail(c.Writer, resp.InternalServer(http.StatusText(http.StatusInternalServerError)))
		c.Abort()
	})
}
