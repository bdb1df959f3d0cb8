package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAuthMiddlewareHandler_AuthCheck(t *testing.T) {
	testCases := []struct {
		name               string
		path               string
		method             string
		headers            map[string]string
		expectLookup       string
		mockUserID         string
		mockOK             bool
		mockErr            error
		expectedStatusCode int
		expectedUserID     string
	}{
		{
			name:               "AllowedPathWithoutToken",
			path:               "/health",
			method:             http.MethodGet,
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "Preflight",
			path:               "/exercises/search",
			method:             http.MethodOptions,
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "MissingToken",
			path:               "/exercises/search",
			method:             http.MethodGet,
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "ValidBearerToken",
			path:               "/exercises/search",
			method:             http.MethodGet,
			headers:            map[string]string{"Authorization": "Bearer valid-token"},
			expectLookup:       "valid-token",
			mockUserID:         "user-1",
			mockOK:             true,
			expectedStatusCode: http.StatusOK,
			expectedUserID:     "user-1",
		},
		{
			name:               "ValidCustomHeaderToken",
			path:               "/progress/volume",
			method:             http.MethodGet,
			headers:            map[string]string{middleware.TokenHeader: "valid-token"},
			expectLookup:       "valid-token",
			mockUserID:         "user-2",
			mockOK:             true,
			expectedStatusCode: http.StatusOK,
			expectedUserID:     "user-2",
		},
		{
			name:               "InvalidToken",
			path:               "/progress/volume",
			method:             http.MethodGet,
			headers:            map[string]string{"Authorization": "Bearer nope"},
			expectLookup:       "nope",
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "CheckerError",
			path:               "/progress/volume",
			method:             http.MethodGet,
			headers:            map[string]string{"Authorization": "Bearer some-token"},
			expectLookup:       "some-token",
			mockErr:            errors.New("redis down"),
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "MCPValidSecret",
			path:               "/mcp",
			method:             http.MethodPost,
			headers:            map[string]string{middleware.MCPSecretHeader: "mcp-secret", middleware.MCPUserHeader: "user-9"},
			expectedStatusCode: http.StatusOK,
			expectedUserID:     "user-9",
		},
		{
			name:               "MCPInvalidSecret",
			path:               "/mcp",
			method:             http.MethodPost,
			headers:            map[string]string{middleware.MCPSecretHeader: "wrong", middleware.MCPUserHeader: "user-9"},
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "MCPMissingUser",
			path:               "/mcp",
			method:             http.MethodPost,
			headers:            map[string]string{middleware.MCPSecretHeader: "mcp-secret"},
			expectedStatusCode: http.StatusUnauthorized,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			checker := NewMockuserChecker(ctrl)
			authMiddleware := middleware.NewAuthMiddlewareHandler("mcp-secret", checker)

			if tc.expectLookup != "" {
				checker.EXPECT().
					UserForToken(gomock.Any(), tc.expectLookup).
					Return(tc.mockUserID, tc.mockOK, tc.mockErr)
			}

			req, err := http.NewRequest(tc.method, tc.path, nil)
			require.NoError(t, err)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}

			var gotUserID string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUserID = auth.UserID(r.Context())
			})

			rr := httptest.NewRecorder()
			authMiddleware.AuthCheck()(next).ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatusCode, rr.Code)
			assert.Equal(t, tc.expectedUserID, gotUserID)
		})
	}
}

func TestAuthMiddlewareHandler_MCPDisabledWithoutSecret(t *testing.T) {
	ctrl := gomock.NewController(t)
	authMiddleware := middleware.NewAuthMiddlewareHandler("", NewMockuserChecker(ctrl))

	req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	req.Header.Set(middleware.MCPUserHeader, "user-1")
	rr := httptest.NewRecorder()
	authMiddleware.AuthCheck()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler must not be called")
	})).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestTokenFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, middleware.TokenFromRequest(req))

	req.Header.Set(middleware.TokenHeader, " header-token ")
	assert.Equal(t, "header-token", middleware.TokenFromRequest(req))

	req.Header.Set("Authorization", "bearer bearer-token")
	assert.Equal(t, "bearer-token", middleware.TokenFromRequest(req))

	// unsupported scheme falls back to the custom header
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	assert.Equal(t, "header-token", middleware.TokenFromRequest(req))
}
