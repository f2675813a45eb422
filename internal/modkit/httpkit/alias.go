// Package httpkit provides route mounting helpers for modules
package httpkit

import (
	phttp "warden/internal/platform/net/http"
)

// Router aliases the platform router seam so modules only import httpkit
type Router = phttp.Router

// Handler aliases the platform handler type
type Handler = phttp.Handler
