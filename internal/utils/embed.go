package utils

import "net/http"

// EmbedHeaders makes every response safe to serve inside the CRM's iframe:
// embedding is allowed from any origin, caching is disabled so stale bundles
// never stick inside the frame, and CORS is fully permissive. Preflight
// requests are answered here, before any other handler runs.
func EmbedHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Frame-Options", "ALLOWALL")
		h.Set("Content-Security-Policy", "frame-ancestors *")

		h.Set("Cache-Control", "no-cache, no-store, must-revalidate")
		h.Set("Pragma", "no-cache")
		h.Set("Expires", "0")

		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Session-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
