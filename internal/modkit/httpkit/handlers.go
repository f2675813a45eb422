package httpkit

import (
	"net/http"

	phttp "warden/internal/platform/net/http"
)

// HandlerFunc is the module handler shape: return data or a coded error
// and let the envelope writer deal with serialization
type HandlerFunc func(r *http.Request) (any, error)

func wrap(fn HandlerFunc) Handler {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := fn(r)
		if err != nil {
			phttp.RespondError(w, r, err)
			return
		}
		phttp.RespondOK(w, r, data)
	}
}

// Get registers an enveloped GET handler
func Get(r Router, path string, fn HandlerFunc) { r.Get(path, wrap(fn)) }

// Post registers an enveloped POST handler
func Post(r Router, path string, fn HandlerFunc) { r.Post(path, wrap(fn)) }

// Delete registers an enveloped DELETE handler
func Delete(r Router, path string, fn HandlerFunc) { r.Delete(path, wrap(fn)) }
