package middleware

import (
	"net/http"
	"strings"

	"sitebuilder/internal/auth"
	"sitebuilder/internal/httputil"
)

// publicPaths are reachable without a bearer token.
var publicPaths = map[string]bool{
	"/health": true,
}

// AuthMiddleware verifies the Authorization bearer token on every request
// and stores the authenticated user ID in the request context.
func AuthMiddleware(verifier auth.JWTVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized.")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized.")
				return
			}

			next.ServeHTTP(w, httputil.WithUserID(r, claims.GetUserID()))
		})
	}
}
