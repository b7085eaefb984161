package guard

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strings"

	"usermgmt/portal-service/internal/nav"
	"usermgmt/portal-service/internal/session"
)

// Middleware protects next with a Guard driven by the request's session
// context. Browsers are redirected to loginPath with the original URL in
// "next"; JSON clients get a 401.
func Middleware(loginPath string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		g := New(redirector(w, r), loginPath)

		sc, ok := session.FromContext(r.Context())
		if !ok {
			g.Observe(nil, false)
			return
		}

		g.Observe(sc.State())
		sc.Resolve(r.Context())
		switch g.Observe(sc.State()) {
		case RenderContent:
			next.ServeHTTP(w, r)
		case RenderRedirecting:
			// response already written by the navigator
		default:
			log.Printf("guard still checking path=%s", r.URL.Path)
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	})
}

func redirector(w http.ResponseWriter, r *http.Request) nav.Navigator {
	return nav.NavigatorFunc(func(path string) {
		if wantsJSON(r) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]map[string]string{
				"error": {"code": "unauthorized", "message": "sign in required", "location": path},
			})
			return
		}
		target := path
		if r.Method == http.MethodGet {
			target = path + "?next=" + url.QueryEscape(r.URL.RequestURI())
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
	})
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
