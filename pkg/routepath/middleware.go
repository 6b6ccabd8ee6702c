package routepath

import "net/http"

// Middleware redirects non-canonical paths with 308 Permanent Redirect,
// which preserves the method and body, and rejects malformed paths with
// 400.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		target := r.URL.EscapedPath()
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}

		res, err := Canonicalize(target)
		if err != nil {
			http.Error(w, "Invalid path", http.StatusBadRequest)
			return
		}
		if res.Changed {
			http.Redirect(w, r, res.Target(), http.StatusPermanentRedirect)
			return
		}
		next.ServeHTTP(w, r)
	})
}
