package httpkit

import (
	"net/http"
	"time"

	phttp "warden/internal/platform/net/http"
	"warden/internal/platform/net/middleware"
)

// CommonStack returns a baseline per module middleware slice
// compose with the bearer auth middleware as needed in main
func CommonStack() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),

		// safety
		middleware.RecoverJSON(phttp.JSON),

		// cache / freshness
		middleware.NoCache(),

		// observability
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: 2 * time.Second}),

		// cross-origin (tweak config in main if needed)
		middleware.CORS(middleware.CORSOptions{}),
		middleware.RedirectSlashes(),
		middleware.Timeout(30 * time.Second),
	}
}

// Bearer wires the bearer auth middleware to the platform JSON writer
func Bearer(token string) func(http.Handler) http.Handler {
	return middleware.Bearer(token, phttp.JSON)
}
