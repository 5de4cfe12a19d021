// Package middleware provides thin adapters over chi middleware without leaking chi types
package middleware

import (
	"net/http"
	"time"

	pstrings "portreg/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// RequestID attaches or propagates X-Request-ID and stores it on context
func RequestID() func(http.Handler) http.Handler { return chimw.RequestID }

// RealIP sets RemoteAddr to the upstream IP based on X-Forwarded-For headers
func RealIP() func(http.Handler) http.Handler { return chimw.RealIP }

// Timeout cancels the request context after d
func Timeout(d time.Duration) func(http.Handler) http.Handler { return chimw.Timeout(d) }

// NoCache sets headers to disable client and proxy caching
func NoCache() func(http.Handler) http.Handler { return chimw.NoCache }

// RedirectSlashes redirects /foo/ to /foo
func RedirectSlashes() func(http.Handler) http.Handler { return chimw.RedirectSlashes }

// StripSlashes strips a trailing slash from the request path
func StripSlashes() func(http.Handler) http.Handler { return chimw.StripSlashes }

// Heartbeat replies with 200 OK to GET path, useful for LB health checks
func Heartbeat(path string) func(http.Handler) http.Handler { return chimw.Heartbeat(path) }

// CORSOptions is a narrow surface over go-chi/cors
type CORSOptions struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// CORS wraps go-chi/cors with sane defaults applied
func CORS(o CORSOptions) func(http.Handler) http.Handler {
	return chicors.Handler(chicors.Options{
		AllowedOrigins: o.AllowedOrigins,
		AllowedMethods: pstrings.IfEmpty(o.AllowedMethods, []string{"GET", "POST", "OPTIONS"}),
		AllowedHeaders: pstrings.IfEmpty(
			o.AllowedHeaders,
			[]string{
				"Accept",
				"Content-Type",
				"X-Request-ID",
			},
		),
		ExposedHeaders:   o.ExposedHeaders,
		AllowCredentials: o.AllowCredentials,
		MaxAge:           o.MaxAge,
	})
}

// StackOptions tunes the baseline middleware stack
type StackOptions struct {
	// Slow marks requests taking >= Slow as warn in the access log
	Slow time.Duration
	// Timeout cancels request contexts, 0 uses the default
	Timeout time.Duration
	// Heartbeat path served before routing, "" disables
	Heartbeat string
	CORS      CORSOptions
}

// Stack returns the baseline middleware slice for the lookup API
func Stack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Slow <= 0 {
		o.Slow = 500 * time.Millisecond
	}
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	mws := []func(http.Handler) http.Handler{
		RequestID(),
		RealIP(),
		RecoverJSON,
		NoCache(),
		AccessLogZerolog(AccessLogOptions{Slow: o.Slow}),
		CORS(o.CORS),
	}
	if o.Heartbeat != "" {
		mws = append(mws, Heartbeat(o.Heartbeat))
	}
	return append(mws,
		RedirectSlashes(),
		StripSlashes(),
		Timeout(o.Timeout),
	)
}

// CommonStack returns Stack with defaults
func CommonStack() []func(http.Handler) http.Handler {
	return Stack(StackOptions{})
}
