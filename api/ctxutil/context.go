// Package ctxutil bridges gin request state into the context.Context the
// application and infrastructure layers receive.
package ctxutil

import (
	"context"

	"shopping-api/api/response"
	"shopping-api/infrastructure/persistence"

	"github.com/gin-gonic/gin"
)

// WithRequestID returns the request context tagged with the request id, so
// SQL logs and outbound lookups carry it.
func WithRequestID(ctx *gin.Context) context.Context {
	requestID := response.GetRequestID(ctx)
	return persistence.ContextWithRequestID(ctx.Request.Context(), requestID)
}
