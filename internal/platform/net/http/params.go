package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Param returns the named URL parameter for the current route
func Param(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}
