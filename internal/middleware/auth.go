package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/lmorazan/corresponsal-backend/internal/auth"
	"github.com/lmorazan/corresponsal-backend/internal/http/respond"
	"github.com/lmorazan/corresponsal-backend/internal/models"
)

type contextKey string

const agentKey contextKey = "agent"

// RequireAuth verifies the bearer token and attaches the decoded agent
// to the request context. Missing token is a 401, a token that fails
// verification (bad signature, expired) is a 403.
func RequireAuth(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			parts := strings.SplitN(header, " ", 2)
			if header == "" || len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				respond.Error(w, http.StatusUnauthorized, respond.CodeAuth, "Access token required")
				return
			}
			agent, err := tokens.Verify(parts[1])
			if err != nil {
				respond.Error(w, http.StatusForbidden, respond.CodeAuth, "Invalid token")
				return
			}
			ctx := context.WithValue(r.Context(), agentKey, agent)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AgentFrom extracts the authenticated agent set by RequireAuth.
func AgentFrom(ctx context.Context) (models.Agent, bool) {
	agent, ok := ctx.Value(agentKey).(models.Agent)
	return agent, ok
}
