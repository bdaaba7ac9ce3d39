// Package ctxutil carries request-scoped values (trace id, client info)
// through context.Context, bridging to *gin.Context when one is embedded.
package ctxutil
