package consts

// GinContextKey gin context key
const GinContextKey = "gin-context"

// TraceKey trace id header
const TraceKey string = "X-Trace-Id"

// TotalKey result total with response
const TotalKey string = "X-Total-Count"
