package middleware

import (
	stdhttp "net/http"
	"runtime/debug"
	"strings"

	perr "warden/internal/platform/errors"
	"warden/internal/platform/logger"
	pnet "warden/internal/platform/net"
)

type panicWire struct {
	StatusCode int    `json:"status_code"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
	RequestID  string `json:"request_id,omitempty"`
}

// RecoverJSON converts panics into a JSON 500 and logs stack with request id
func RecoverJSON(write func(w stdhttp.ResponseWriter, status int, body any)) func(stdhttp.Handler) stdhttp.Handler {
	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			defer func() {
				if v := recover(); v != nil {
					reqID := pnet.RequestID(r.Context())

					raw := debug.Stack()
					stack := strings.Join(strings.Split(string(raw), "\n"), "\n\t")

					logger.C(r.Context()).Error().
						Str("request_id", reqID).
						Interface("panic", v).
						Msgf("panic recovered\n%s", stack)

					if reqID != "" {
						w.Header().Set("X-Request-ID", reqID)
					}
					write(w, stdhttp.StatusInternalServerError, panicWire{
						StatusCode: stdhttp.StatusInternalServerError,
						Status:     stdhttp.StatusText(stdhttp.StatusInternalServerError),
						Error:      perr.Root(perr.PanicErrf("panic recovered")).Error(),
						RequestID:  reqID,
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
