package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	TokenHeader     = "X-LIFTLOG-TOKEN"
	MCPSecretHeader = "X-MCP-Secret"
	MCPUserHeader   = "X-LIFTLOG-USER"
)

//go:generate mockgen -source=$GOFILE -destination=auth_mocks_test.go -package=middleware_test

type userChecker interface {
	UserForToken(ctx context.Context, token string) (string, bool, error)
}

type AuthMiddlewareHandler struct {
	mcpSecret    string
	checker      userChecker
	allowedPaths map[string]bool
}

func NewAuthMiddlewareHandler(
	mcpSecret string,
	checker userChecker,
) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		mcpSecret: mcpSecret,
		checker:   checker,
		allowedPaths: map[string]bool{
			"/":        true,
			"/health":  true,
			"/version": true,
		},
	}
}

// TokenFromRequest reads the session token either from a bearer Authorization
// header, or from the X-LIFTLOG-TOKEN header.
func TokenFromRequest(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		scheme, token, found := strings.Cut(authHeader, " ")
		if found && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	return strings.TrimSpace(r.Header.Get(TokenHeader))
}

func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, PUT, DELETE, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			if h.allowedPaths[r.URL.Path] {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			// MCP clients are machines, they authenticate with a shared secret and name the user
			if strings.HasPrefix(r.URL.Path, "/mcp") {
				secret := r.Header.Get(MCPSecretHeader)
				if h.mcpSecret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(h.mcpSecret)) != 1 {
					log.Tracef("[mcp] [auth middleware] unauthorized => %s", r.URL.Path)
					http.Error(w, "no can do", http.StatusUnauthorized)
					span.SetStatus(codes.Error, "invalid-mcp-secret")
					return
				}
				userID := strings.TrimSpace(r.Header.Get(MCPUserHeader))
				if userID == "" {
					http.Error(w, "missing user", http.StatusUnauthorized)
					span.SetStatus(codes.Error, "missing-mcp-user")
					return
				}
				span.SetAttributes(attribute.String("user.id", userID))
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
				return
			}

			authToken := TokenFromRequest(r)
			if authToken == "" {
				log.Tracef("[missing token] [auth middleware] unauthorized => %s", r.URL.Path)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "missing-auth-token")
				return
			}

			userID, ok, err := h.checker.UserForToken(ctx, authToken)
			if err != nil {
				log.Errorf("[failed login check] => %s: %s", r.URL.Path, err)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "check-logged-err")
				span.RecordError(err)
				return
			}
			if !ok {
				log.Tracef("[invalid token] [auth middleware] unauthorized => %s", r.URL.Path)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "not-logged")
				return
			}

			span.SetAttributes(attribute.String("user.id", userID))
			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
		})
	}
}
