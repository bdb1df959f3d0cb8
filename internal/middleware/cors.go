package middleware

import (
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
)

const allowedHeaders = "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization, " +
	TokenHeader + ", " + MCPSecretHeader + ", " + MCPUserHeader + ", MCP-Protocol-Version, MCP-Session-Id"

// Cors allows requests from the given origins. Requests without an Origin header
// (native clients, curl) and requests to /mcp pass through.
func Cors(allowedOrigins ...string) func(next http.Handler) http.Handler {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			switch {
			case origins[origin]:
				w.Header().Set("Access-Control-Allow-Origin", origin)
			case strings.HasPrefix(r.URL.Path, "/mcp"):
				// MCP clients often send no Origin
				if origin == "" {
					origin = "*"
				}
				w.Header().Set("Access-Control-Allow-Origin", origin)
			case origin == "":
				next.ServeHTTP(w, r)
				return
			default:
				log.Warnf("CORS: origin not allowed for path [%s] and origin [%s]", r.URL.Path, origin)
				w.WriteHeader(http.StatusForbidden)
				return
			}

			w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
			next.ServeHTTP(w, r)
		})
	}
}
